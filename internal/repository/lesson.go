package repository

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

type LessonRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Lesson, error)
	GetListByCourseID(ctx context.Context, courseID string) ([]entity.Lesson, error)
	Create(ctx context.Context, data *entity.Lesson) error
}

type lessonRepository struct{}

func NewLessonRepository() *lessonRepository {
	return &lessonRepository{}
}

func (r *lessonRepository) GetByID(ctx context.Context, id string) (*entity.Lesson, error) {
	var result entity.Lesson
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *lessonRepository) GetListByCourseID(
	ctx context.Context, courseID string,
) ([]entity.Lesson, error) {
	var result []entity.Lesson
	err := xcontext.DB(ctx).
		Where("course_id=?", courseID).
		Order("position ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lessonRepository) Create(ctx context.Context, data *entity.Lesson) error {
	return xcontext.DB(ctx).Create(data).Error
}
