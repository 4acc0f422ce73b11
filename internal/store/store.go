package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
)

// ErrNotFound is returned when the referenced document does not exist.
// It is the store-level counterpart of errorx.NotFound; repositories
// translate it at the domain boundary.
var ErrNotFound = errors.New("document not found")

// ErrAlreadyExists is returned by Create when the document id is
// already taken.
var ErrAlreadyExists = errors.New("document already exists")

// AtomicStore is the only mutation surface the core is allowed to use
// for shared documents. Every conditional primitive is indivisible with
// respect to concurrent callers; no caller may run its own
// read-modify-write cycle on a set field.
type AtomicStore interface {
	// Get returns a detached snapshot of the document.
	Get(ctx context.Context, collection, id string) (*Snapshot, error)

	// Create inserts a new document with the given scalar fields. It
	// fails with no effect if the document already exists.
	Create(ctx context.Context, collection, id string, fields map[string]string) error

	// SetField assigns a scalar field. Not valid for set fields.
	SetField(ctx context.Context, collection, id, field, value string) error

	// ConditionalAddToSet adds member to the named set field if absent
	// and returns the post-mutation snapshot. Adding an already present
	// member is a no-op that still returns the current snapshot. The
	// snapshot's PrevCard holds the set's pre-mutation cardinality,
	// captured atomically with the add.
	ConditionalAddToSet(ctx context.Context, collection, id, field, member string) (*Snapshot, error)

	// ConditionalRemoveFromSet is the symmetric removal primitive.
	ConditionalRemoveFromSet(ctx context.Context, collection, id, field, member string) (*Snapshot, error)

	// Increment atomically adds delta to a numeric scalar field and
	// returns the post-mutation snapshot.
	Increment(ctx context.Context, collection, id, field string, delta int64) (*Snapshot, error)

	// SetMax raises a numeric scalar field to value if the current
	// value is lower. It never lowers the field, so concurrent callers
	// can only move it forward.
	SetMax(ctx context.Context, collection, id, field string, value int64) (*Snapshot, error)

	// Query returns document snapshots matching the filter. The
	// filter's limit is clamped server-side regardless of caller input.
	Query(ctx context.Context, collection string, filter Filter) ([]Snapshot, error)
}

// Filter selects documents whose scalar field contains a substring.
// An empty field matches against the document id.
type Filter struct {
	Field     string
	Substring string
	Offset    int
	Limit     int
}

// Snapshot is a detached copy of one document: scalar fields plus set
// fields keyed by canonical string ids. Mutating a snapshot never
// affects the store.
type Snapshot struct {
	ID     string
	Fields map[string]string
	Sets   map[string]map[string]struct{}

	// PrevCard is populated only on snapshots returned by
	// ConditionalAddToSet and ConditionalRemoveFromSet: the touched
	// set's cardinality immediately before the mutation, captured
	// atomically with it. Comparing Card against PrevCard is the only
	// race-free way to tell whether the mutation took effect in this
	// call.
	PrevCard int
}

func (s *Snapshot) Str(field string) string {
	return s.Fields[field]
}

func (s *Snapshot) Int(field string) int64 {
	n, err := strconv.ParseInt(s.Fields[field], 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// Card returns the cardinality of a set field.
func (s *Snapshot) Card(field string) int {
	return len(s.Sets[field])
}

func (s *Snapshot) InSet(field, member string) bool {
	_, ok := s.Sets[field][member]
	return ok
}

// Members returns the set members in a stable order.
func (s *Snapshot) Members(field string) []string {
	members := make([]string, 0, len(s.Sets[field]))
	for m := range s.Sets[field] {
		members = append(members, m)
	}

	sort.Strings(members)
	return members
}

// EnsureDocument creates the document if it does not exist yet.
// Catalog entities live in the relational database; their membership
// documents here are created lazily on first use, so a concurrent
// creation is not an error.
func EnsureDocument(
	ctx context.Context, st AtomicStore, collection, id string, fields map[string]string,
) error {
	err := st.Create(ctx, collection, id, fields)
	if err != nil && !errors.Is(err, ErrAlreadyExists) {
		return err
	}

	return nil
}
