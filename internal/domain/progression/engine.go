package progression

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
)

const dayLayout = "2006-01-02"

type AwardResult struct {
	// ActualXP is the credited post-multiplier amount. Everything the
	// player sees (activity metadata, responses) reports this value,
	// never the base amount.
	ActualXP int64

	NewXP     int64
	NewLevel  int64
	LeveledUp bool
}

// Engine applies XP awards and streak touches to player documents
// through the atomic store.
type Engine struct {
	store           store.AtomicStore
	activityRepo    repository.ActivityRepository
	leaderboardRepo repository.LeaderboardRepository
}

func NewEngine(
	st store.AtomicStore,
	activityRepo repository.ActivityRepository,
	leaderboardRepo repository.LeaderboardRepository,
) *Engine {
	return &Engine{
		store:           st,
		activityRepo:    activityRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

// AwardXP credits floor(base * multiplier) XP to the player, raises
// the stored level if the new total crosses a threshold, and returns
// the actual amount. The xp increment is atomic; the level update only
// moves forward, so a concurrent award can never lower it. Extra
// leaderboard scopes (such as a course id) receive the same delta as
// the global board.
func (e *Engine) AwardXP(
	ctx context.Context, playerID string, base int64, extraScopes ...string,
) (*AwardResult, error) {
	if base < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative base amount")
	}

	snapshot, err := e.store.Get(ctx, store.CollectionPlayers, playerID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	state, err := entity.PlayerStateFromSnapshot(snapshot)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode player state: %v", err)
		return nil, errorx.Unknown
	}

	actual := int64(math.Floor(float64(base) * Multiplier(ctx, state)))

	after, err := e.store.Increment(ctx, store.CollectionPlayers, playerID, store.FieldXP, actual)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increment xp: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	newXP := after.Int(store.FieldXP)
	newLevel := Level(newXP)
	leveledUp := newLevel > after.Int(store.FieldLevel)

	if leveledUp {
		_, err := e.store.SetMax(ctx, store.CollectionPlayers, playerID, store.FieldLevel, newLevel)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot raise level: %v", err)
			return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
		}

		// One level-up record per award, even when the award crosses
		// several thresholds at once.
		err = e.activityRepo.Create(ctx, &entity.Activity{
			Base:        entity.Base{ID: uuid.NewString()},
			PlayerID:    playerID,
			Kind:        entity.ActivityLevelUp,
			Description: "Reached a new level",
			Metadata:    entity.Map{"level": newLevel},
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create level-up activity: %v", err)
		}
	}

	e.increaseScores(ctx, playerID, actual, extraScopes)

	return &AwardResult{
		ActualXP:  actual,
		NewXP:     newXP,
		NewLevel:  newLevel,
		LeveledUp: leveledUp,
	}, nil
}

// increaseScores feeds the leaderboards. The xp mutation is already
// committed at this point, so a failure here downgrades to a log line.
func (e *Engine) increaseScores(
	ctx context.Context, playerID string, delta int64, extraScopes []string,
) {
	if e.leaderboardRepo == nil || delta == 0 {
		return
	}

	scopes := append([]string{common.GlobalLeaderboardScope}, extraScopes...)
	for _, scope := range scopes {
		if err := e.leaderboardRepo.IncreaseScore(ctx, scope, playerID, delta); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard %s: %v", scope, err)
		}
	}
}

// Touch records activity for today and maintains the consecutive-day
// streak. It is idempotent within a day; a missed day resets the
// streak to 1.
func (e *Engine) Touch(ctx context.Context, playerID string, now time.Time) (int64, error) {
	snapshot, err := e.store.Get(ctx, store.CollectionPlayers, playerID)
	if err != nil {
		if err == store.ErrNotFound {
			return 0, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player state: %v", err)
		return 0, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	today := now.UTC().Format(dayLayout)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(dayLayout)

	lastActive := snapshot.Str(store.FieldLastActiveDay)
	if lastActive == today {
		return snapshot.Int(store.FieldStreak), nil
	}

	err = e.store.SetField(ctx, store.CollectionPlayers, playerID, store.FieldLastActiveDay, today)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set last active day: %v", err)
		return 0, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	if lastActive == yesterday {
		after, err := e.store.Increment(
			ctx, store.CollectionPlayers, playerID, store.FieldStreak, 1)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase streak: %v", err)
			return 0, errorx.New(errorx.Unavailable, "Store is unavailable")
		}

		return after.Int(store.FieldStreak), nil
	}

	err = e.store.SetField(ctx, store.CollectionPlayers, playerID, store.FieldStreak, "1")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset streak: %v", err)
		return 0, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	return 1, nil
}
