package domain

import (
	"context"
	"testing"

	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()

	redisClient := &testutil.MockRedisClient{
		ZRevRangeWithScoresFunc: func(
			ctx context.Context, key string, offset, limit int,
		) ([]redis.Z, error) {
			require.Equal(t, common.RedisKeyLeaderboard(common.GlobalLeaderboardScope), key)
			return []redis.Z{
				{Member: testutil.Player2, Score: 300},
				{Member: testutil.Player1, Score: 150},
			}, nil
		},
	}

	statisticDomain := NewStatisticDomain(repository.NewLeaderboardRepository(redisClient))

	// An empty scope falls back to the global board.
	resp, err := statisticDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, testutil.Player2, resp.Entries[0].PlayerID)
	require.Equal(t, int64(300), resp.Entries[0].Score)
	require.Equal(t, 1, resp.Entries[0].Rank)
	require.Equal(t, testutil.Player1, resp.Entries[1].PlayerID)
	require.Equal(t, 2, resp.Entries[1].Rank)
}

func Test_statisticDomain_GetLeaderboard_courseScope(t *testing.T) {
	ctx := testutil.MockContext()

	redisClient := &testutil.MockRedisClient{
		ZRevRangeWithScoresFunc: func(
			ctx context.Context, key string, offset, limit int,
		) ([]redis.Z, error) {
			require.Equal(t, common.RedisKeyLeaderboard(testutil.Course1), key)
			require.Equal(t, 5, offset)
			return []redis.Z{{Member: testutil.Player3, Score: 10}}, nil
		},
	}

	statisticDomain := NewStatisticDomain(repository.NewLeaderboardRepository(redisClient))

	resp, err := statisticDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Scope:  testutil.Course1,
		Offset: 5,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	// Ranks continue from the requested offset.
	require.Equal(t, 6, resp.Entries[0].Rank)
}

func Test_statisticDomain_GetRank(t *testing.T) {
	ctx := testutil.MockContext()

	redisClient := &testutil.MockRedisClient{
		ZRevRankFunc: func(ctx context.Context, key, member string) (uint64, error) {
			if member == testutil.Player1 {
				return 2, nil
			}

			return 0, redis.Nil
		},
	}

	statisticDomain := NewStatisticDomain(repository.NewLeaderboardRepository(redisClient))

	// An omitted player id means the requesting player.
	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)
	resp, err := statisticDomain.GetRank(ctxPlayer1, &model.GetRankRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.Player1, resp.PlayerID)
	require.Equal(t, uint64(3), resp.Rank)

	// A player without a score is not ranked.
	_, err = statisticDomain.GetRank(ctx, &model.GetRankRequest{PlayerID: "nobody"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}
