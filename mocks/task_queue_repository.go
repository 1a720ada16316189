package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (m *TaskQueueRepository) EnqueueCallVerdictTask(
	ctx context.Context,
	tx repositories.Transaction,
	callId uuid.UUID,
	scheduledAt time.Time,
) error {
	args := m.Called(ctx, tx, callId, scheduledAt)
	return args.Error(0)
}

func (m *TaskQueueRepository) EnqueueFollowUpDispatchTask(
	ctx context.Context,
	tx repositories.Transaction,
	callId uuid.UUID,
	channel models.ChannelType,
) error {
	args := m.Called(ctx, tx, callId, channel)
	return args.Error(0)
}
