package repository

import (
	"context"

	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/pkg/xredis"
)

type LeaderboardEntry struct {
	PlayerID string
	Score    int64
	Rank     int
}

type LeaderboardRepository interface {
	// IncreaseScore adds the actually credited XP to the scope's
	// sorted set.
	IncreaseScore(ctx context.Context, scope, playerID string, delta int64) error
	GetRange(ctx context.Context, scope string, offset, limit int) ([]LeaderboardEntry, error)
	GetRank(ctx context.Context, scope, playerID string) (uint64, error)
}

type leaderboardRepository struct {
	redisClient xredis.Client
}

func NewLeaderboardRepository(redisClient xredis.Client) *leaderboardRepository {
	return &leaderboardRepository{redisClient: redisClient}
}

func (r *leaderboardRepository) IncreaseScore(
	ctx context.Context, scope, playerID string, delta int64,
) error {
	return r.redisClient.ZIncrBy(ctx, common.RedisKeyLeaderboard(scope), delta, playerID)
}

func (r *leaderboardRepository) GetRange(
	ctx context.Context, scope string, offset, limit int,
) ([]LeaderboardEntry, error) {
	zs, err := r.redisClient.ZRevRangeWithScores(
		ctx, common.RedisKeyLeaderboard(scope), offset, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}

		entries = append(entries, LeaderboardEntry{
			PlayerID: member,
			Score:    int64(z.Score),
			Rank:     offset + i + 1,
		})
	}

	return entries, nil
}

func (r *leaderboardRepository) GetRank(
	ctx context.Context, scope, playerID string,
) (uint64, error) {
	rank, err := r.redisClient.ZRevRank(ctx, common.RedisKeyLeaderboard(scope), playerID)
	if err != nil {
		return 0, err
	}

	return rank + 1, nil
}
