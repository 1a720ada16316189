package repositories

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

const (
	// The verdict decision itself must not be retried: a second LLM judgment
	// could contradict the first and corrupt the scoring inputs.
	nbAttemptsCallVerdict = 1
	priorityCallVerdict   = 2

	nbRetriesFollowUpDispatch = 5
	priorityFollowUpDispatch  = 3
)

type TaskQueueRepository interface {
	EnqueueCallVerdictTask(
		ctx context.Context,
		tx Transaction,
		callId uuid.UUID,
		scheduledAt time.Time,
	) error
	EnqueueFollowUpDispatchTask(
		ctx context.Context,
		tx Transaction,
		callId uuid.UUID,
		channel models.ChannelType,
	) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

func (r riverRepository) EnqueueCallVerdictTask(
	ctx context.Context,
	tx Transaction,
	callId uuid.UUID,
	scheduledAt time.Time,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.CallVerdictArgs{
		CallId: callId,
	}, &river.InsertOpts{
		MaxAttempts: nbAttemptsCallVerdict,
		Priority:    priorityCallVerdict,
		ScheduledAt: scheduledAt,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued call verdict task",
		"call_id", callId, "job_id", res.Job.ID, "scheduled_at", scheduledAt)
	return nil
}

func (r riverRepository) EnqueueFollowUpDispatchTask(
	ctx context.Context,
	tx Transaction,
	callId uuid.UUID,
	channel models.ChannelType,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.FollowUpDispatchArgs{
		CallId:  callId,
		Channel: channel,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesFollowUpDispatch,
		Priority:    priorityFollowUpDispatch,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued follow-up dispatch task",
		"call_id", callId, "channel", channel, "job_id", res.Job.ID)
	return nil
}
