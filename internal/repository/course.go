package repository

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

type GetListCourseFilter struct {
	Q      string
	Offset int
	Limit  int
}

type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	GetList(ctx context.Context, filter GetListCourseFilter) ([]entity.Course, error)
	Create(ctx context.Context, data *entity.Course) error
}

type courseRepository struct{}

func NewCourseRepository() *courseRepository {
	return &courseRepository{}
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	var result entity.Course
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *courseRepository) GetList(
	ctx context.Context, filter GetListCourseFilter,
) ([]entity.Course, error) {
	var result []entity.Course
	tx := xcontext.DB(ctx).Model(&entity.Course{}).
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.Q != "" {
		tx = tx.Where("title LIKE ?", "%"+filter.Q+"%")
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *courseRepository) Create(ctx context.Context, data *entity.Course) error {
	return xcontext.DB(ctx).Create(data).Error
}
