// Package transition implements the membership transition protocol:
// the one algorithm behind every "add fact to a set" operation
// (enroll, complete, befriend, join team, unlock achievement).
//
// The naive check-then-add sequence is wrong under concurrency, and so
// is deciding "did this request change anything" by checking whether
// the member is present afterwards: after a conditional add the member
// is always present, whether this request or a concurrent one added
// it. The protocol instead compares set cardinality before and after
// the add, with the pre-mutation cardinality captured atomically with
// the mutation; only a strict increase means this request performed
// the transition, and only then may the caller run reward side
// effects.
package transition

import (
	"context"
	"errors"

	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
)

// Transition names one set-membership fact: member belongs to the
// field's set on the given document.
type Transition struct {
	Collection string
	EntityID   string
	Field      string
	Member     string
}

// Unbounded marks a transition without a capacity limit.
const Unbounded = 0

func storeError(ctx context.Context, err error, action string) error {
	if errors.Is(err, store.ErrNotFound) {
		return errorx.New(errorx.NotFound, "Not found entity")
	}

	xcontext.Logger(ctx).Errorf("Cannot %s: %v", action, err)
	return errorx.New(errorx.Unavailable, "Store is unavailable")
}

// Perform runs the protocol for an unbounded transition. It returns
// the post-mutation snapshot when this request performed the
// transition, and errorx.AlreadyExists when the fact already held, no
// matter whether it was added by an earlier request or by a concurrent
// one. Callers must gate every side effect on a nil error.
func Perform(ctx context.Context, st store.AtomicStore, t Transition) (*store.Snapshot, error) {
	return perform(ctx, st, t, Unbounded)
}

// PerformBounded adds a capacity bound. The pre-check rejects requests
// that can no longer fit; the post-check catches the race where two
// requests both passed the pre-check for the last slot, in which case
// the over-admitting request removes its own member and reports
// CapacityExceeded.
func PerformBounded(
	ctx context.Context, st store.AtomicStore, t Transition, capacity int,
) (*store.Snapshot, error) {
	return perform(ctx, st, t, capacity)
}

func perform(
	ctx context.Context, st store.AtomicStore, t Transition, capacity int,
) (*store.Snapshot, error) {
	// Fast-path idempotency read. Repeat requests are the common case,
	// so reject them before touching anything.
	snapshot, err := st.Get(ctx, t.Collection, t.EntityID)
	if err != nil {
		return nil, storeError(ctx, err, "get entity")
	}

	if snapshot.InSet(t.Field, t.Member) {
		return nil, errorx.New(errorx.AlreadyExists, "Already recorded")
	}

	// Freshness re-check right before the mutation. This narrows the
	// race window but cannot close it; the cardinality comparison
	// below is the load-bearing guarantee.
	fresh, err := st.Get(ctx, t.Collection, t.EntityID)
	if err != nil {
		return nil, storeError(ctx, err, "re-check entity")
	}

	if fresh.InSet(t.Field, t.Member) {
		return nil, errorx.New(errorx.AlreadyExists, "Already recorded")
	}

	if capacity != Unbounded && fresh.Card(t.Field) >= capacity {
		return nil, errorx.New(errorx.CapacityExceeded, "No remaining capacity")
	}

	after, err := st.ConditionalAddToSet(ctx, t.Collection, t.EntityID, t.Field, t.Member)
	if err != nil {
		return nil, storeError(ctx, err, "add to set")
	}

	// PrevCard was captured atomically with the add, so exactly one of
	// the racing requests can observe an increase.
	postCard := after.Card(t.Field)
	if postCard <= after.PrevCard {
		// The member is present in `after`, but this request did not
		// put it there.
		return nil, errorx.New(errorx.AlreadyExists, "Already recorded")
	}

	if capacity != Unbounded && postCard > capacity {
		// Two requests raced past the pre-check for the last slot.
		// This request performed the over-admitting add (the check
		// above proved it), so it removes exactly its own member.
		xcontext.Logger(ctx).Warnf(
			"Over-admission on %s/%s.%s: %d > %d",
			t.Collection, t.EntityID, t.Field, postCard, capacity)

		_, err := st.ConditionalRemoveFromSet(ctx, t.Collection, t.EntityID, t.Field, t.Member)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot undo over-admission: %v", err)
		}

		return nil, errorx.New(errorx.CapacityExceeded, "No remaining capacity")
	}

	return after, nil
}

// Remove is the protocol's mirror image for fact removal. A strict
// cardinality decrease means this request performed the removal;
// anything else reports NotFound for the fact.
func Remove(ctx context.Context, st store.AtomicStore, t Transition) (*store.Snapshot, error) {
	snapshot, err := st.Get(ctx, t.Collection, t.EntityID)
	if err != nil {
		return nil, storeError(ctx, err, "get entity")
	}

	if !snapshot.InSet(t.Field, t.Member) {
		return nil, errorx.New(errorx.NotFound, "Not recorded")
	}

	after, err := st.ConditionalRemoveFromSet(ctx, t.Collection, t.EntityID, t.Field, t.Member)
	if err != nil {
		return nil, storeError(ctx, err, "remove from set")
	}

	if after.Card(t.Field) >= after.PrevCard {
		return nil, errorx.New(errorx.NotFound, "Not recorded")
	}

	return after, nil
}

// RemoveQuietly removes a fact without caring whether this request
// performed the removal. Used for best-effort cleanup that must not
// gate side effects, such as clearing pending friend requests during
// an accept.
func RemoveQuietly(ctx context.Context, st store.AtomicStore, t Transition) {
	_, err := st.ConditionalRemoveFromSet(ctx, t.Collection, t.EntityID, t.Field, t.Member)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cleanup %s/%s.%s: %v",
			t.Collection, t.EntityID, t.Field, err)
	}
}
