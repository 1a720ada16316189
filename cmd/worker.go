package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lurelab/lurelab-backend/infra"
	"github.com/lurelab/lurelab-backend/jobs"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/usecases"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
)

func RunTaskQueue() error {
	pgConfig := loadPgConfig()
	llmConfig := loadLlmConfig()
	speechConfig := loadSpeechConfig()
	dispatchConfig := loadDispatchConfig()
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

	llmClient, err := infra.NewLlmClient(llmConfig)
	if err != nil {
		return err
	}
	speechClient, err := infra.NewSpeechClient(ctx, speechConfig)
	if err != nil {
		return err
	}

	workers := river.NewWorkers()
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval: 100 * time.Millisecond,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		// Must be larger than the time it takes to process a job.
		RescueStuckJobsAfter: 5 * time.Minute,
		WorkerMiddleware: []rivertype.WorkerMiddleware{
			jobs.NewLoggerMiddleware(logger),
			jobs.NewRecoveredMiddleware(),
		},
		Workers: workers,
	})
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

	river.AddWorker(workers, uc.NewCallVerdictWorker())
	river.AddWorker(workers, uc.NewFollowUpDispatchWorker())

	if err := riverClient.Start(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)
	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "Task queue client stopped")
	return nil
}

// cleanStop waits for SIGINT/SIGTERM and first tries a soft stop, giving
// running jobs a chance to finish. A second signal, or a soft stop timeout,
// escalates to a hard stop that cancels job contexts.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 5*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; exiting unsafely")
	} else if err != nil {
		panic(err)
	}
}
