package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/learnverse/backend/migration"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startEngine(ct *cli.Context) error {
	s.ctx = context.Background()
	s.loadConfig()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadStore()
	s.loadRepos()
	s.loadDomains()

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	s.logger.Infof("Engine is ready with store driver %s", s.configs.Store.Driver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Infof("Engine is shutting down")
	return nil
}

func (s *srv) migrate(ct *cli.Context) error {
	s.ctx = context.Background()
	s.loadConfig()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.loadLogger()
	s.loadDatabase()

	return migration.AutoMigrate(s.ctx)
}
