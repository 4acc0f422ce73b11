package domain

import (
	"context"
	"errors"

	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/domain/achievement"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/learnverse/backend/pkg/xredis"
)

type AchievementDomain interface {
	Check(context.Context, *model.CheckAchievementsRequest) (*model.CheckAchievementsResponse, error)
	GetMy(context.Context, *model.GetMyAchievementsRequest) (*model.GetMyAchievementsResponse, error)
}

type achievementDomain struct {
	achievementRepo repository.AchievementRepository
	playerStateRepo repository.PlayerStateRepository
	evaluator       *achievement.Evaluator
	redisClient     xredis.Client
}

func NewAchievementDomain(
	achievementRepo repository.AchievementRepository,
	playerStateRepo repository.PlayerStateRepository,
	evaluator *achievement.Evaluator,
	redisClient xredis.Client,
) *achievementDomain {
	return &achievementDomain{
		achievementRepo: achievementRepo,
		playerStateRepo: playerStateRepo,
		evaluator:       evaluator,
		redisClient:     redisClient,
	}
}

// Check runs an on-demand evaluation for the requesting player. The
// same evaluator runs after every rewarding operation, so this only
// matters when definitions changed since the player's last action.
func (d *achievementDomain) Check(
	ctx context.Context, req *model.CheckAchievementsRequest,
) (*model.CheckAchievementsResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	unlocked, err := d.evaluator.Evaluate(ctx, requestUserID)
	if err != nil {
		return nil, err
	}

	if len(unlocked) > 0 {
		common.InvalidateDerived(ctx, d.redisClient, requestUserID)
	}

	resp := &model.CheckAchievementsResponse{
		Unlocked: []model.UnlockedAchievement{},
	}

	for _, u := range unlocked {
		resp.Unlocked = append(resp.Unlocked, model.UnlockedAchievement{
			ID:        u.Achievement.ID,
			Name:      u.Achievement.Name,
			XPAwarded: u.ActualXP,
		})
	}

	return resp, nil
}

func (d *achievementDomain) GetMy(
	ctx context.Context, req *model.GetMyAchievementsRequest,
) (*model.GetMyAchievementsResponse, error) {
	state, err := d.playerStateRepo.Get(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	definitions, err := d.achievementRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievements: %v", err)
		return nil, errorx.Unknown
	}

	achievements := []model.Achievement{}
	for i := range definitions {
		if !state.HasAchievement(definitions[i].ID) {
			continue
		}

		achievements = append(achievements, model.ConvertAchievement(&definitions[i]))
	}

	return &model.GetMyAchievementsResponse{Achievements: achievements}, nil
}
