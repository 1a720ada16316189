package worker_jobs

import (
	"context"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/usecases/calls"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

type followUpWorkerRepository interface {
	GetCallById(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID) (models.Call, error)
	ListCallTurns(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID) ([]models.CallTurn, error)
	GetEmployeeById(ctx context.Context, exec repositories.Executor,
		employeeId uuid.UUID) (models.Employee, error)
}

type textGenerator interface {
	GenerateText(ctx context.Context, instruction string,
		conversation []models.CallTurn) (string, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, channel models.ChannelType,
		recipient, content string) (string, error)
}

// FollowUpDispatchWorker generates and delivers the post-call artifact on
// the configured follow-up channel. Delivery failures are retried by the
// queue; only an unreachable recipient cancels the job.
type FollowUpDispatchWorker struct {
	river.WorkerDefaults[models.FollowUpDispatchArgs]

	repository      followUpWorkerRepository
	generator       textGenerator
	dispatch        dispatcher
	executorFactory executor_factory.ExecutorFactory
}

func NewFollowUpDispatchWorker(
	repository followUpWorkerRepository,
	generator textGenerator,
	dispatch dispatcher,
	executorFactory executor_factory.ExecutorFactory,
) *FollowUpDispatchWorker {
	return &FollowUpDispatchWorker{
		repository:      repository,
		generator:       generator,
		dispatch:        dispatch,
		executorFactory: executorFactory,
	}
}

func (w *FollowUpDispatchWorker) Work(ctx context.Context, job *river.Job[models.FollowUpDispatchArgs]) error {
	logger := utils.LoggerFromContext(ctx)
	exec := w.executorFactory.NewExecutor()

	call, err := w.repository.GetCallById(ctx, exec, job.Args.CallId)
	if err != nil {
		return err
	}
	employee, err := w.repository.GetEmployeeById(ctx, exec, call.EmployeeId)
	if err != nil {
		return err
	}

	recipient := recipientFor(employee, job.Args.Channel)
	if recipient == "" {
		utils.LogAndReportSentryError(ctx, errors.Wrapf(models.ErrRecipientNotEnrollable,
			"call %s, channel %s", call.Id, job.Args.Channel))
		return river.JobCancel(errors.Newf("employee %s has no address on channel %s",
			employee.Id, job.Args.Channel))
	}

	turns, err := w.repository.ListCallTurns(ctx, exec, call.Id)
	if err != nil {
		return err
	}

	content, err := w.generator.GenerateText(ctx,
		calls.FollowUpInstruction(call, job.Args.Channel), turns)
	if err != nil {
		return err
	}

	receiptId, err := w.dispatch.Dispatch(ctx, job.Args.Channel, recipient, content)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Follow-up artifact dispatched",
		"call_id", call.Id, "channel", job.Args.Channel, "receipt_id", receiptId)
	return nil
}

func recipientFor(employee models.Employee, channel models.ChannelType) string {
	switch channel {
	case models.ChannelEmail, models.ChannelCallEmail:
		return employee.Email
	case models.ChannelChatMessage, models.ChannelCallChat:
		return employee.ChatHandle
	case models.ChannelCallSms:
		return employee.Phone
	}
	return ""
}
