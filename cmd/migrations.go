package cmd

import (
	"context"
	"fmt"

	"github.com/lurelab/lurelab-backend/infra"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

func RunMigrations() error {
	pgConfig := loadPgConfig()

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := repositories.RunMigrations(ctx, pgConfig.GetConnectionString(), logger); err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("error running migrations: %v", err))
		return err
	}

	// The task queue keeps its own schema, migrated with its own tool.
	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(), 2)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return err
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("error running task queue migrations: %v", err))
		return err
	}

	logger.InfoContext(ctx, "Task queue migrations applied")
	return nil
}
