package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
)

type OutcomeRepository struct {
	mock.Mock
}

func (r *OutcomeRepository) GetOutcomeForUpdate(ctx context.Context, tx repositories.Transaction,
	employeeId, eventId uuid.UUID,
) (*models.ParticipantOutcome, error) {
	args := r.Called(ctx, tx, employeeId, eventId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParticipantOutcome), args.Error(1)
}

func (r *OutcomeRepository) GetOutcome(ctx context.Context, exec repositories.Executor,
	employeeId, eventId uuid.UUID,
) (*models.ParticipantOutcome, error) {
	args := r.Called(ctx, exec, employeeId, eventId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParticipantOutcome), args.Error(1)
}

func (r *OutcomeRepository) CreateOutcome(ctx context.Context, exec repositories.Executor,
	outcome models.ParticipantOutcome,
) error {
	args := r.Called(ctx, exec, outcome)
	return args.Error(0)
}

func (r *OutcomeRepository) UpdateOutcome(ctx context.Context, exec repositories.Executor,
	outcome models.ParticipantOutcome,
) error {
	args := r.Called(ctx, exec, outcome)
	return args.Error(0)
}

func (r *OutcomeRepository) ListOutcomes(ctx context.Context, exec repositories.Executor,
	filter models.OutcomeFilter,
) ([]models.ParticipantOutcome, error) {
	args := r.Called(ctx, exec, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipantOutcome), args.Error(1)
}

func (r *OutcomeRepository) GetSimulatedEventById(ctx context.Context, exec repositories.Executor,
	eventId uuid.UUID,
) (models.SimulatedEvent, error) {
	args := r.Called(ctx, exec, eventId)
	return args.Get(0).(models.SimulatedEvent), args.Error(1)
}
