package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/learnverse/backend/config"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func testContext() context.Context {
	return xcontext.WithConfigs(context.Background(), config.Configs{
		ApiServer: config.APIServerConfigs{
			DefaultLimit: 2,
			MaxLimit:     3,
		},
	})
}

func Test_memoryStore_CreateAndGet(t *testing.T) {
	ctx := testContext()
	st := NewMemoryStore(DefaultSchema())

	_, err := st.Get(ctx, CollectionPlayers, "player1")
	require.ErrorIs(t, err, ErrNotFound)

	err = st.Create(ctx, CollectionPlayers, "player1", map[string]string{
		FieldName: "Alice",
		FieldXP:   "0",
	})
	require.NoError(t, err)

	err = st.Create(ctx, CollectionPlayers, "player1", nil)
	require.ErrorIs(t, err, ErrAlreadyExists)

	snapshot, err := st.Get(ctx, CollectionPlayers, "player1")
	require.NoError(t, err)
	require.Equal(t, "Alice", snapshot.Str(FieldName))
	require.Equal(t, int64(0), snapshot.Int(FieldXP))
}

func Test_memoryStore_PrevCard(t *testing.T) {
	ctx := testContext()
	st := NewMemoryStore(DefaultSchema())
	require.NoError(t, st.Create(ctx, CollectionPlayers, "player1", nil))

	snapshot, err := st.ConditionalAddToSet(
		ctx, CollectionPlayers, "player1", SetFriends, "player2")
	require.NoError(t, err)
	require.Equal(t, 0, snapshot.PrevCard)
	require.Equal(t, 1, snapshot.Card(SetFriends))

	// Re-adding is a no-op; no cardinality increase is observable.
	snapshot, err = st.ConditionalAddToSet(
		ctx, CollectionPlayers, "player1", SetFriends, "player2")
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.PrevCard)
	require.Equal(t, 1, snapshot.Card(SetFriends))

	snapshot, err = st.ConditionalRemoveFromSet(
		ctx, CollectionPlayers, "player1", SetFriends, "player2")
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.PrevCard)
	require.Equal(t, 0, snapshot.Card(SetFriends))
}

func Test_memoryStore_SnapshotDetached(t *testing.T) {
	ctx := testContext()
	st := NewMemoryStore(DefaultSchema())
	require.NoError(t, st.Create(ctx, CollectionPlayers, "player1", map[string]string{
		FieldXP: "10",
	}))

	snapshot, err := st.ConditionalAddToSet(
		ctx, CollectionPlayers, "player1", SetBadges, "badge1")
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	snapshot.Fields[FieldXP] = "9999"
	delete(snapshot.Sets[SetBadges], "badge1")

	fresh, err := st.Get(ctx, CollectionPlayers, "player1")
	require.NoError(t, err)
	require.Equal(t, int64(10), fresh.Int(FieldXP))
	require.True(t, fresh.InSet(SetBadges, "badge1"))
}

func Test_memoryStore_IncrementConcurrent(t *testing.T) {
	ctx := testContext()
	st := NewMemoryStore(DefaultSchema())
	require.NoError(t, st.Create(ctx, CollectionPlayers, "player1", map[string]string{
		FieldXP: "0",
	}))

	const n = 100
	eg := errgroup.Group{}
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			_, err := st.Increment(ctx, CollectionPlayers, "player1", FieldXP, 7)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	snapshot, err := st.Get(ctx, CollectionPlayers, "player1")
	require.NoError(t, err)
	require.Equal(t, int64(n*7), snapshot.Int(FieldXP))
}

func Test_memoryStore_SetMax(t *testing.T) {
	ctx := testContext()
	st := NewMemoryStore(DefaultSchema())
	require.NoError(t, st.Create(ctx, CollectionPlayers, "player1", map[string]string{
		FieldLevel: "3",
	}))

	snapshot, err := st.SetMax(ctx, CollectionPlayers, "player1", FieldLevel, 5)
	require.NoError(t, err)
	require.Equal(t, int64(5), snapshot.Int(FieldLevel))

	// A lower value never wins.
	snapshot, err = st.SetMax(ctx, CollectionPlayers, "player1", FieldLevel, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), snapshot.Int(FieldLevel))
}

func Test_memoryStore_QueryClamp(t *testing.T) {
	ctx := testContext()
	st := NewMemoryStore(DefaultSchema())

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("player%02d", i)
		require.NoError(t, st.Create(ctx, CollectionPlayers, id, map[string]string{
			FieldName: "Player " + id,
		}))
	}

	// An oversized limit is clamped to the configured maximum.
	result, err := st.Query(ctx, CollectionPlayers, Filter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, result, 3)

	// A non-positive limit falls back to the default.
	result, err = st.Query(ctx, CollectionPlayers, Filter{Limit: 0})
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Negative offsets are normalized, not rejected.
	result, err = st.Query(ctx, CollectionPlayers, Filter{Offset: -5, Limit: 2})
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, "player00", result[0].ID)

	// Substring match on a scalar field.
	result, err = st.Query(ctx, CollectionPlayers, Filter{
		Field:     FieldName,
		Substring: "player07",
		Limit:     3,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "player07", result[0].ID)
}
