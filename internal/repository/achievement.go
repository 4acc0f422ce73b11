package repository

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

type AchievementRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Achievement, error)
	GetAll(ctx context.Context) ([]entity.Achievement, error)
	Create(ctx context.Context, data *entity.Achievement) error
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) GetByID(
	ctx context.Context, id string,
) (*entity.Achievement, error) {
	var result entity.Achievement
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *achievementRepository) GetAll(ctx context.Context) ([]entity.Achievement, error) {
	var result []entity.Achievement
	if err := xcontext.DB(ctx).Order("id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementRepository) Create(ctx context.Context, data *entity.Achievement) error {
	return xcontext.DB(ctx).Create(data).Error
}
