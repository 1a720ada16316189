package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
)

type ReportAttemptRepository struct {
	mock.Mock
}

func (r *ReportAttemptRepository) CreateReportAttempt(ctx context.Context, exec repositories.Executor,
	attempt models.ReportAttempt,
) error {
	args := r.Called(ctx, exec, attempt)
	return args.Error(0)
}

func (r *ReportAttemptRepository) GetReportAttemptById(ctx context.Context, exec repositories.Executor,
	attemptId uuid.UUID,
) (models.ReportAttempt, error) {
	args := r.Called(ctx, exec, attemptId)
	return args.Get(0).(models.ReportAttempt), args.Error(1)
}

func (r *ReportAttemptRepository) UpdateReportAttempt(ctx context.Context, exec repositories.Executor,
	attempt models.ReportAttempt,
) error {
	args := r.Called(ctx, exec, attempt)
	return args.Error(0)
}

func (r *ReportAttemptRepository) ListReportAttempts(ctx context.Context, exec repositories.Executor,
	employeeId uuid.UUID,
) ([]models.ReportAttempt, error) {
	args := r.Called(ctx, exec, employeeId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportAttempt), args.Error(1)
}

func (r *ReportAttemptRepository) ListVerifiedEventIds(ctx context.Context, exec repositories.Executor,
	employeeId uuid.UUID,
) ([]uuid.UUID, error) {
	args := r.Called(ctx, exec, employeeId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (r *ReportAttemptRepository) ListEnrolledEventsInWindow(ctx context.Context, exec repositories.Executor,
	employeeId uuid.UUID, channelType models.ChannelType, windowStart, windowEnd time.Time,
) ([]models.SimulatedEvent, error) {
	args := r.Called(ctx, exec, employeeId, channelType, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SimulatedEvent), args.Error(1)
}

func (r *ReportAttemptRepository) GetOutcomeForUpdate(ctx context.Context, tx repositories.Transaction,
	employeeId, eventId uuid.UUID,
) (*models.ParticipantOutcome, error) {
	args := r.Called(ctx, tx, employeeId, eventId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParticipantOutcome), args.Error(1)
}

func (r *ReportAttemptRepository) UpdateOutcome(ctx context.Context, exec repositories.Executor,
	outcome models.ParticipantOutcome,
) error {
	args := r.Called(ctx, exec, outcome)
	return args.Error(0)
}
