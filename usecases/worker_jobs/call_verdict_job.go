package worker_jobs

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/repositories/clock"
	"github.com/lurelab/lurelab-backend/usecases/calls"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

type callVerdictWorkerRepository interface {
	GetCallById(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID) (models.Call, error)
	ListCallTurns(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID) ([]models.CallTurn, error)
	SetCallVerdict(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID, verdict models.CallVerdict, at time.Time) error
	UpdateCallStatus(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID, status models.CallStatus, at time.Time) error
}

type outcomeRecorder interface {
	RecordFailure(ctx context.Context, employeeId, eventId uuid.UUID,
		failedAt *time.Time, severe *bool) (models.ParticipantOutcome, error)
	RecordReport(ctx context.Context, employeeId, eventId uuid.UUID,
		reportedAt time.Time) (models.ParticipantOutcome, error)
}

type objectiveJudge interface {
	JudgeObjective(ctx context.Context, instruction, prompt string) (models.ObjectiveJudgment, error)
}

// CallVerdictWorker runs the one-shot deferred verdict of a call. It is
// scheduled when the call is created and fires on the queue's own context,
// independent of the request that started the call and of whether the
// conversation is still going.
type CallVerdictWorker struct {
	river.WorkerDefaults[models.CallVerdictArgs]

	repository         callVerdictWorkerRepository
	outcomes           outcomeRecorder
	generator          objectiveJudge
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	taskQueue          repositories.TaskQueueRepository
	clock              clock.Clock
	config             models.CallConfig
}

func NewCallVerdictWorker(
	repository callVerdictWorkerRepository,
	outcomes outcomeRecorder,
	generator objectiveJudge,
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	taskQueue repositories.TaskQueueRepository,
	clock clock.Clock,
	config models.CallConfig,
) *CallVerdictWorker {
	return &CallVerdictWorker{
		repository:         repository,
		outcomes:           outcomes,
		generator:          generator,
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		taskQueue:          taskQueue,
		clock:              clock,
		config:             config,
	}
}

func (w *CallVerdictWorker) Work(ctx context.Context, job *river.Job[models.CallVerdictArgs]) error {
	logger := utils.LoggerFromContext(ctx)
	exec := w.executorFactory.NewExecutor()

	call, err := w.repository.GetCallById(ctx, exec, job.Args.CallId)
	if err != nil {
		return err
	}
	if call.Verdict != nil {
		logger.InfoContext(ctx, "Call already has a verdict, skipping",
			"call_id", call.Id, "verdict", *call.Verdict)
		return nil
	}

	turns, err := w.repository.ListCallTurns(ctx, exec, call.Id)
	if err != nil {
		return err
	}

	upstreamCtx, cancel := context.WithTimeout(ctx, w.config.UpstreamTimeout)
	defer cancel()

	judgment, err := w.generator.JudgeObjective(upstreamCtx,
		calls.VerdictInstruction(), calls.VerdictPrompt(call, turns))
	if errors.Is(err, models.ErrVerdictUnparsable) {
		// No outcome is written: the enrollment stays PENDING and the
		// stalled-verdict sweep keeps surfacing this call until an operator
		// resolves it.
		utils.LogAndReportSentryError(ctx, err)
		now := w.clock.Now()
		if err := w.repository.SetCallVerdict(ctx, exec, call.Id, models.VerdictUnparsable, now); err != nil {
			return err
		}
		return w.completeCall(ctx, exec, call, now)
	}
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	now := w.clock.Now()
	verdict := models.VerdictObjectiveNotMet
	if judgment.ObjectiveMet {
		verdict = models.VerdictObjectiveMet
		if _, err := w.outcomes.RecordFailure(ctx, call.EmployeeId, call.EventId, nil, nil); err != nil {
			return err
		}
	} else {
		if _, err := w.outcomes.RecordReport(ctx, call.EmployeeId, call.EventId, now); err != nil {
			return err
		}
	}

	if err := w.repository.SetCallVerdict(ctx, exec, call.Id, verdict, now); err != nil {
		return err
	}
	if err := w.completeCall(ctx, exec, call, now); err != nil {
		return err
	}

	if judgment.ObjectiveMet && call.FollowUpChannel != nil {
		err := w.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
			return w.taskQueue.EnqueueFollowUpDispatchTask(ctx, tx, call.Id, *call.FollowUpChannel)
		})
		if err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "Call verdict decided",
		"call_id", call.Id,
		"verdict", verdict,
		"justification", judgment.Justification,
		"turns", len(turns))
	return nil
}

// completeCall closes the call through the transition table: every live
// state may complete, an already completed call is left alone.
func (w *CallVerdictWorker) completeCall(ctx context.Context, exec repositories.Executor,
	call models.Call, at time.Time,
) error {
	if !models.CanTransitionCall(call.Status, models.CallCompleted) {
		return nil
	}
	return w.repository.UpdateCallStatus(ctx, exec, call.Id, models.CallCompleted, at)
}
