package repository

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/store"
)

// PlayerStateRepository reads player documents from the atomic store
// and decodes them. Mutations are not exposed here; they go through
// the transition protocol and the progression engine so that no caller
// can fall back to a read-modify-write cycle.
type PlayerStateRepository interface {
	Get(ctx context.Context, playerID string) (*entity.PlayerState, error)
	Create(ctx context.Context, playerID, name string) error
}

type playerStateRepository struct {
	store store.AtomicStore
}

func NewPlayerStateRepository(st store.AtomicStore) *playerStateRepository {
	return &playerStateRepository{store: st}
}

func (r *playerStateRepository) Get(
	ctx context.Context, playerID string,
) (*entity.PlayerState, error) {
	snapshot, err := r.store.Get(ctx, store.CollectionPlayers, playerID)
	if err != nil {
		return nil, err
	}

	return entity.PlayerStateFromSnapshot(snapshot)
}

func (r *playerStateRepository) Create(ctx context.Context, playerID, name string) error {
	return r.store.Create(ctx, store.CollectionPlayers, playerID, map[string]string{
		store.FieldName:   name,
		store.FieldXP:     "0",
		store.FieldLevel:  "1",
		store.FieldStreak: "0",
	})
}
