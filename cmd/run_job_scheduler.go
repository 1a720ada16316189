package cmd

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/infra"
	"github.com/lurelab/lurelab-backend/jobs"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/usecases"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/getsentry/sentry-go"
)

func RunJobScheduler() error {
	pgConfig := loadPgConfig()
	env := utils.GetEnv("ENV", "development")
	sentryDsn := utils.GetEnv("SENTRY_DSN", "")

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(sentryDsn, env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		return err
	}

	repos := repositories.NewRepositories(pool)
	uc := usecases.NewUsecases(repos,
		usecases.WithCallConfig(loadCallConfig()),
	)

	jobs.RunScheduler(ctx, uc)
	return nil
}
