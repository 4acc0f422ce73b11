package repository

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	Create(ctx context.Context, data *entity.Team) error
}

type teamRepository struct{}

func NewTeamRepository() *teamRepository {
	return &teamRepository{}
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	var result entity.Team
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *teamRepository) Create(ctx context.Context, data *entity.Team) error {
	return xcontext.DB(ctx).Create(data).Error
}
