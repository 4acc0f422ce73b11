package common

import (
	"fmt"
)

// GlobalLeaderboardScope is the scope of the all-players leaderboard;
// per-course scopes use the course id.
const GlobalLeaderboardScope = "global"

func RedisKeyLeaderboard(scope string) string {
	return fmt.Sprintf("leaderboard:%s", scope)
}

func RedisKeyProfileCache(playerID string) string {
	return fmt.Sprintf("cache:profile:%s", playerID)
}

// RedisKeyListingCachePrefix prefixes every cached listing page of a
// scope; invalidation deletes by this prefix.
func RedisKeyListingCachePrefix(scope string) string {
	return fmt.Sprintf("cache:listing:%s:", scope)
}
