package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/domain/progression"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/learnverse/backend/pkg/xredis"
)

type PlayerDomain interface {
	Register(context.Context, *model.RegisterPlayerRequest) (*model.RegisterPlayerResponse, error)
	Get(context.Context, *model.GetPlayerRequest) (*model.GetPlayerResponse, error)
	TouchStreak(context.Context, *model.TouchStreakRequest) (*model.TouchStreakResponse, error)
}

type playerDomain struct {
	playerStateRepo repository.PlayerStateRepository
	engine          *progression.Engine
	redisClient     xredis.Client
}

func NewPlayerDomain(
	playerStateRepo repository.PlayerStateRepository,
	engine *progression.Engine,
	redisClient xredis.Client,
) *playerDomain {
	return &playerDomain{
		playerStateRepo: playerStateRepo,
		engine:          engine,
		redisClient:     redisClient,
	}
}

func (d *playerDomain) Register(
	ctx context.Context, req *model.RegisterPlayerRequest,
) (*model.RegisterPlayerResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	err := d.playerStateRepo.Create(ctx, requestUserID, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errorx.New(errorx.AlreadyExists, "Already registered")
		}

		xcontext.Logger(ctx).Errorf("Cannot create player: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	return &model.RegisterPlayerResponse{}, nil
}

// Get returns the player profile. The response is a derived view
// rebuilt from the authoritative documents and cached in redis; every
// rewarding operation invalidates the cache entry.
func (d *playerDomain) Get(
	ctx context.Context, req *model.GetPlayerRequest,
) (*model.GetPlayerResponse, error) {
	playerID := req.PlayerID
	if playerID == "" {
		playerID = xcontext.RequestUserID(ctx)
	}

	cacheKey := common.RedisKeyProfileCache(playerID)
	if cached, err := d.redisClient.Get(ctx, cacheKey); err == nil && cached != "" {
		resp := model.GetPlayerResponse{}
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}

		xcontext.Logger(ctx).Warnf("Cannot decode cached profile of %s", playerID)
	}

	state, err := d.playerStateRepo.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	progressXP, neededXP := progression.Progress(state.XP)
	resp := &model.GetPlayerResponse{
		ID:               playerID,
		Name:             state.Name,
		XP:               state.XP,
		Level:            state.Level,
		Streak:           state.Streak,
		TeamID:           state.TeamID,
		ProgressXP:       progressXP,
		NeededXP:         neededXP,
		Multiplier:       progression.Multiplier(ctx, state),
		FriendCount:      len(state.Friends),
		AchievementCount: len(state.Achievements),
		LessonsCompleted: state.LessonsCompleted,
		QuestsCompleted:  state.QuestsCompleted,
	}

	if b, err := json.Marshal(resp); err == nil {
		if err := d.redisClient.Set(ctx, cacheKey, string(b)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache profile of %s: %v", playerID, err)
		}
	}

	return resp, nil
}

func (d *playerDomain) TouchStreak(
	ctx context.Context, req *model.TouchStreakRequest,
) (*model.TouchStreakResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	streak, err := d.engine.Touch(ctx, requestUserID, time.Now())
	if err != nil {
		return nil, err
	}

	common.InvalidateDerived(ctx, d.redisClient, requestUserID)

	return &model.TouchStreakResponse{Streak: streak}, nil
}
