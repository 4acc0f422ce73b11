package migration

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Course{},
		&entity.Lesson{},
		&entity.Quest{},
		&entity.Achievement{},
		&entity.Team{},
		&entity.Activity{},
	)
}
