package testutil

import (
	"context"

	"github.com/learnverse/backend/config"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/migration"
	"github.com/learnverse/backend/pkg/logger"
	"github.com/learnverse/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 1,
		},
		Store: config.StoreConfigs{
			Driver:    "memory",
			KeyPrefix: "test",
		},
		Progression: config.ProgressionConfigs{
			StreakBonusPerDay: 0.01,
			StreakBonusMax:    0.5,
			TeamBonus:         0.1,
		},
		Achievement: config.AchievementConfigs{
			MaxCascadeRounds: 5,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// MockContextWithUserID derives a request context for the given user
// from a shared base context, keeping the same database and configs.
func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

// NewStore returns a memory-backed atomic store with the default
// schema.
func NewStore() store.AtomicStore {
	return store.NewMemoryStore(store.DefaultSchema())
}
