package repository

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

type GetListQuestFilter struct {
	ActiveOnly bool
	Offset     int
	Limit      int
}

type QuestRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetList(ctx context.Context, filter GetListQuestFilter) ([]entity.Quest, error)
	Create(ctx context.Context, data *entity.Quest) error
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	var result entity.Quest
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questRepository) GetList(
	ctx context.Context, filter GetListQuestFilter,
) ([]entity.Quest, error) {
	var result []entity.Quest
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.ActiveOnly {
		tx = tx.Where("is_active=?", true)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) Create(ctx context.Context, data *entity.Quest) error {
	return xcontext.DB(ctx).Create(data).Error
}
