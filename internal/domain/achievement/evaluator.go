// Package achievement evaluates unlock eligibility. The evaluator
// re-checks in rounds because one unlock's XP reward can make the next
// achievement eligible within the same request.
package achievement

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnverse/backend/internal/domain/progression"
	"github.com/learnverse/backend/internal/domain/transition"
	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
)

const defaultMaxCascadeRounds = 5

// Unlocked reports one achievement granted by an evaluator run,
// together with the XP actually credited for it.
type Unlocked struct {
	Achievement entity.Achievement
	ActualXP    int64
}

type Evaluator struct {
	store           store.AtomicStore
	achievementRepo repository.AchievementRepository
	activityRepo    repository.ActivityRepository
	engine          *progression.Engine
}

func NewEvaluator(
	st store.AtomicStore,
	achievementRepo repository.AchievementRepository,
	activityRepo repository.ActivityRepository,
	engine *progression.Engine,
) *Evaluator {
	return &Evaluator{
		store:           st,
		achievementRepo: achievementRepo,
		activityRepo:    activityRepo,
		engine:          engine,
	}
}

// Evaluate runs bounded re-check rounds for the player. Each candidate
// is judged against state re-read from the store at that moment, and
// the unlock itself goes through the transition protocol, so two
// concurrent evaluations of the same player cannot double-award.
func (e *Evaluator) Evaluate(ctx context.Context, playerID string) ([]Unlocked, error) {
	definitions, err := e.achievementRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievements: %v", err)
		return nil, errorx.Unknown
	}

	maxRounds := xcontext.Configs(ctx).Achievement.MaxCascadeRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxCascadeRounds
	}

	var unlocked []Unlocked
	for round := 0; round < maxRounds; round++ {
		changed := false

		for i := range definitions {
			definition := definitions[i]

			// Fresh state per candidate; awards earlier in this round
			// must be visible to later candidates.
			snapshot, err := e.store.Get(ctx, store.CollectionPlayers, playerID)
			if err != nil {
				if err == store.ErrNotFound {
					return nil, errorx.New(errorx.NotFound, "Not found player")
				}

				xcontext.Logger(ctx).Errorf("Cannot get player state: %v", err)
				return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
			}

			if snapshot.InSet(store.SetAchievements, definition.ID) {
				continue
			}

			state, err := entity.PlayerStateFromSnapshot(snapshot)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot decode player state: %v", err)
				return nil, errorx.Unknown
			}

			eligible, err := Eligible(&definition, state)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot evaluate achievement %s: %v", definition.ID, err)
				continue
			}

			if !eligible {
				continue
			}

			_, err = transition.Perform(ctx, e.store, transition.Transition{
				Collection: store.CollectionPlayers,
				EntityID:   playerID,
				Field:      store.SetAchievements,
				Member:     definition.ID,
			})
			if err != nil {
				if errorx.Is(err, errorx.AlreadyExists) {
					// A concurrent request unlocked it first; its side
					// effects are that request's business.
					continue
				}

				return nil, err
			}

			result, err := e.engine.AwardXP(ctx, playerID, definition.XPReward)
			if err != nil {
				return nil, err
			}

			err = e.activityRepo.Create(ctx, &entity.Activity{
				Base:        entity.Base{ID: uuid.NewString()},
				PlayerID:    playerID,
				Kind:        entity.ActivityAchievementUnlocked,
				Description: "Unlocked " + definition.Name,
				Metadata: entity.Map{
					"achievement_id": definition.ID,
					"xp":             result.ActualXP,
				},
			})
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot create unlock activity: %v", err)
			}

			unlocked = append(unlocked, Unlocked{
				Achievement: definition,
				ActualXP:    result.ActualXP,
			})
			changed = true
		}

		if !changed {
			break
		}
	}

	return unlocked, nil
}
