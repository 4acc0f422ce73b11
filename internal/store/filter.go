package store

import (
	"context"

	"github.com/learnverse/backend/internal/common"
)

// clampFilter normalizes caller-supplied pagination before a query
// runs. The clamp applies regardless of caller input; an unbounded
// query is a resource exhaustion vector.
func clampFilter(ctx context.Context, f Filter) Filter {
	f.Offset, f.Limit = common.NormalizePagination(ctx, f.Offset, f.Limit)
	return f
}
