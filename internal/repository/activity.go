package repository

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

type GetListActivityFilter struct {
	PlayerID string
	Offset   int
	Limit    int
}

// ActivityRepository is append-only. An activity row is immutable
// once created.
type ActivityRepository interface {
	Create(ctx context.Context, data *entity.Activity) error
	GetList(ctx context.Context, filter GetListActivityFilter) ([]entity.Activity, error)
	Count(ctx context.Context, playerID string, kind entity.ActivityKind) (int64, error)
}

type activityRepository struct{}

func NewActivityRepository() *activityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(ctx context.Context, data *entity.Activity) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *activityRepository) GetList(
	ctx context.Context, filter GetListActivityFilter,
) ([]entity.Activity, error) {
	var result []entity.Activity
	err := xcontext.DB(ctx).
		Where("player_id=?", filter.PlayerID).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityRepository) Count(
	ctx context.Context, playerID string, kind entity.ActivityKind,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Activity{}).
		Where("player_id=? AND kind=?", playerID, kind).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
