package usecases

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/repositories/clock"
	"github.com/lurelab/lurelab-backend/usecases/calls"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
	"github.com/lurelab/lurelab-backend/usecases/worker_jobs"
)

type options struct {
	clock                clock.Clock
	callConfig           models.CallConfig
	reconciliationConfig models.ReconciliationConfig
	scoringConfig        models.ScoringConfig
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func WithCallConfig(config models.CallConfig) Option {
	return func(o *options) {
		o.callConfig = config
	}
}

func WithReconciliationConfig(config models.ReconciliationConfig) Option {
	return func(o *options) {
		o.reconciliationConfig = config
	}
}

func WithScoringConfig(config models.ScoringConfig) Option {
	return func(o *options) {
		o.scoringConfig = config
	}
}

type Usecases struct {
	Repositories repositories.Repositories

	clock                clock.Clock
	registry             *calls.Registry
	callConfig           models.CallConfig
	reconciliationConfig models.ReconciliationConfig
	scoringConfig        models.ScoringConfig
}

func NewUsecases(repos repositories.Repositories, opts ...Option) Usecases {
	o := options{
		clock: clock.New(),
		callConfig: models.CallConfig{
			VerdictDelay:    2 * time.Minute,
			StalledGrace:    5 * time.Minute,
			UpstreamTimeout: 10 * time.Second,
		},
		reconciliationConfig: models.ReconciliationConfig{
			ClockSkewCompensation: 10 * time.Minute,
		},
		scoringConfig: models.ScoringConfig{
			MinAggregateSample: 5,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return Usecases{
		Repositories:         repos,
		clock:                o.clock,
		registry:             calls.NewRegistry(),
		callConfig:           o.callConfig,
		reconciliationConfig: o.reconciliationConfig,
		scoringConfig:        o.scoringConfig,
	}
}

func (u Usecases) NewExecutorFactory() executor_factory.DbExecutorFactory {
	return executor_factory.NewDbExecutorFactory(u.Repositories.ExecutorGetter)
}

func (u Usecases) NewOutcomeUsecase() OutcomeUsecase {
	return OutcomeUsecase{
		repository:         u.Repositories.LurelabDbRepository,
		executorFactory:    u.NewExecutorFactory(),
		transactionFactory: u.NewExecutorFactory(),
		clock:              u.clock,
	}
}

func (u Usecases) NewReportUsecase() ReportUsecase {
	return ReportUsecase{
		repository:         u.Repositories.LurelabDbRepository,
		executorFactory:    u.NewExecutorFactory(),
		transactionFactory: u.NewExecutorFactory(),
		clock:              u.clock,
		config:             u.reconciliationConfig,
	}
}

func (u Usecases) NewScoringUsecase() ScoringUsecase {
	return ScoringUsecase{
		repository:      u.Repositories.LurelabDbRepository,
		executorFactory: u.NewExecutorFactory(),
		config:          u.scoringConfig,
	}
}

func (u Usecases) NewCallUsecase() calls.CallUsecase {
	return calls.NewCallUsecase(
		u.Repositories.LurelabDbRepository,
		u.NewExecutorFactory(),
		u.NewExecutorFactory(),
		u.Repositories.TaskQueueRepository,
		u.Repositories.GenerativeTextRepository,
		u.Repositories.SpeechRepository,
		u.registry,
		u.clock,
		u.callConfig,
	)
}

func (u Usecases) NewCallVerdictWorker() *worker_jobs.CallVerdictWorker {
	return worker_jobs.NewCallVerdictWorker(
		u.Repositories.LurelabDbRepository,
		u.NewOutcomeUsecase(),
		u.Repositories.GenerativeTextRepository,
		u.NewExecutorFactory(),
		u.NewExecutorFactory(),
		u.Repositories.TaskQueueRepository,
		u.clock,
		u.callConfig,
	)
}

func (u Usecases) NewFollowUpDispatchWorker() *worker_jobs.FollowUpDispatchWorker {
	return worker_jobs.NewFollowUpDispatchWorker(
		u.Repositories.LurelabDbRepository,
		u.Repositories.GenerativeTextRepository,
		u.Repositories.DispatchRepository,
		u.NewExecutorFactory(),
	)
}

func (u Usecases) CallConfig() models.CallConfig {
	return u.callConfig
}

func (u Usecases) Clock() clock.Clock {
	return u.clock
}
