package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lurelab/lurelab-backend/api"
	"github.com/lurelab/lurelab-backend/infra"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/usecases"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

func RunServer() error {
	pgConfig := loadPgConfig()
	llmConfig := loadLlmConfig()
	speechConfig := loadSpeechConfig()
	dispatchConfig := loadDispatchConfig()

	apiConfig := api.Configuration{
		Env:     utils.GetEnv("ENV", "development"),
		AppName: appName,
		Port:    utils.GetRequiredEnv[string]("PORT"),
	}
	sentryDsn := utils.GetEnv("SENTRY_DSN", "")

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(sentryDsn, apiConfig.Env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		return err
	}

	// Insert-only client: jobs are worked by the worker process.
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		return err
	}

	llmClient, err := infra.NewLlmClient(llmConfig)
	if err != nil {
		return err
	}
	speechClient, err := infra.NewSpeechClient(ctx, speechConfig)
	if err != nil {
		return err
	}

	repos := repositories.NewRepositories(pool,
		repositories.WithRiverClient(riverClient),
		repositories.WithLlmClient(llmClient, llmConfig.Model),
		repositories.WithSpeech(speechClient, speechConfig.AudioBucketUrl,
			speechConfig.SynthesisUrl, speechConfig.Timeout),
		repositories.WithDispatch(dispatchConfig.ChannelUrls, dispatchConfig.Timeout),
	)

	uc := usecases.NewUsecases(repos,
		usecases.WithCallConfig(loadCallConfig()),
		usecases.WithReconciliationConfig(loadReconciliationConfig()),
		usecases.WithScoringConfig(loadScoringConfig()),
	)

	router := api.InitRouter(apiConfig, uc, logger)
	server := api.NewServer(router, apiConfig.Port)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "Starting server", "port", apiConfig.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, err)
		}
	}()

	<-notify.Done()
	logger.InfoContext(ctx, "Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
