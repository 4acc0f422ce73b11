package common

import (
	"context"

	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/learnverse/backend/pkg/xredis"
)

// InvalidateDerived drops cached aggregates touched by a confirmed
// transition: the player's profile cache plus any listing caches for
// the given scopes. The membership fact is already committed when this
// runs, so a failure here must not fail the operation; it downgrades
// to a log line.
func InvalidateDerived(
	ctx context.Context, redisClient xredis.Client, playerID string, scopes ...string,
) {
	if redisClient == nil {
		return
	}

	if playerID != "" {
		if err := redisClient.Del(ctx, RedisKeyProfileCache(playerID)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate profile cache: %v", err)
		}
	}

	for _, scope := range scopes {
		if err := redisClient.DelByPrefix(ctx, RedisKeyListingCachePrefix(scope)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate listing cache %s: %v", scope, err)
		}
	}
}
