package common

import (
	"context"
	"testing"

	"github.com/learnverse/backend/config"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func paginationContext(defaultLimit, maxLimit int) context.Context {
	return xcontext.WithConfigs(context.Background(), config.Configs{
		ApiServer: config.APIServerConfigs{
			DefaultLimit: defaultLimit,
			MaxLimit:     maxLimit,
		},
	})
}

func Test_NormalizePagination(t *testing.T) {
	ctx := paginationContext(10, 25)

	offset, limit := NormalizePagination(ctx, 5, 20)
	require.Equal(t, 5, offset)
	require.Equal(t, 20, limit)

	// A non-positive limit falls back to the configured default.
	_, limit = NormalizePagination(ctx, 0, 0)
	require.Equal(t, 10, limit)

	_, limit = NormalizePagination(ctx, 0, -3)
	require.Equal(t, 10, limit)

	// The limit is clamped to the configured maximum.
	_, limit = NormalizePagination(ctx, 0, 1000)
	require.Equal(t, 25, limit)

	// A negative offset is clamped to zero.
	offset, _ = NormalizePagination(ctx, -7, 1)
	require.Equal(t, 0, offset)
}

func Test_NormalizePagination_fallbackConfig(t *testing.T) {
	// Unset config limits fall back to the package defaults.
	ctx := paginationContext(0, 0)

	_, limit := NormalizePagination(ctx, 0, 0)
	require.Equal(t, FallbackDefaultLimit, limit)

	_, limit = NormalizePagination(ctx, 0, 10000)
	require.Equal(t, FallbackMaxLimit, limit)
}
