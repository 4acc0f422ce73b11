package common

import (
	"context"

	"github.com/learnverse/backend/pkg/xcontext"
	mathutil "github.com/pkg/math"
)

const (
	FallbackDefaultLimit = 20
	FallbackMaxLimit     = 50
)

// NormalizePagination clamps caller-supplied bounds instead of
// rejecting them. A non-positive limit becomes the configured default
// and no limit can exceed the configured maximum; attacker-supplied
// bounds must never grow a query.
func NormalizePagination(ctx context.Context, offset, limit int) (int, int) {
	cfg := xcontext.Configs(ctx).ApiServer

	defaultLimit := cfg.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = FallbackDefaultLimit
	}

	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = FallbackMaxLimit
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	limit = mathutil.MinInt(limit, maxLimit)
	offset = mathutil.MaxInt(offset, 0)

	return offset, limit
}
