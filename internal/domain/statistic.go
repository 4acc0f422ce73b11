package domain

import (
	"context"
	"errors"

	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetRank(context.Context, *model.GetRankRequest) (*model.GetRankResponse, error)
}

type statisticDomain struct {
	leaderboardRepo repository.LeaderboardRepository
}

func NewStatisticDomain(leaderboardRepo repository.LeaderboardRepository) *statisticDomain {
	return &statisticDomain{leaderboardRepo: leaderboardRepo}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	scope := req.Scope
	if scope == "" {
		scope = common.GlobalLeaderboardScope
	}

	offset, limit := common.NormalizePagination(ctx, req.Offset, req.Limit)

	entries, err := d.leaderboardRepo.GetRange(ctx, scope, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	clientEntries := []model.LeaderboardEntry{}
	for _, e := range entries {
		clientEntries = append(clientEntries, model.LeaderboardEntry{
			PlayerID: e.PlayerID,
			Score:    e.Score,
			Rank:     e.Rank,
		})
	}

	return &model.GetLeaderboardResponse{Entries: clientEntries}, nil
}

// GetRank returns the player's one-based position on a leaderboard. A
// player with no score on the board is not ranked at all rather than
// ranked last.
func (d *statisticDomain) GetRank(
	ctx context.Context, req *model.GetRankRequest,
) (*model.GetRankResponse, error) {
	playerID := req.PlayerID
	if playerID == "" {
		playerID = xcontext.RequestUserID(ctx)
	}

	scope := req.Scope
	if scope == "" {
		scope = common.GlobalLeaderboardScope
	}

	rank, err := d.leaderboardRepo.GetRank(ctx, scope, playerID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorx.New(errorx.NotFound, "Not ranked on this leaderboard")
		}

		xcontext.Logger(ctx).Errorf("Cannot get rank: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRankResponse{PlayerID: playerID, Rank: rank}, nil
}
