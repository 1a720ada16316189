package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
)

type OutcomeRecorder struct {
	mock.Mock
}

func (m *OutcomeRecorder) RecordFailure(ctx context.Context, employeeId, eventId uuid.UUID,
	failedAt *time.Time, severe *bool,
) (models.ParticipantOutcome, error) {
	args := m.Called(ctx, employeeId, eventId, failedAt, severe)
	return args.Get(0).(models.ParticipantOutcome), args.Error(1)
}

func (m *OutcomeRecorder) RecordReport(ctx context.Context, employeeId, eventId uuid.UUID,
	reportedAt time.Time,
) (models.ParticipantOutcome, error) {
	args := m.Called(ctx, employeeId, eventId, reportedAt)
	return args.Get(0).(models.ParticipantOutcome), args.Error(1)
}
