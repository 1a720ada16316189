package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
)

type CallRepository struct {
	mock.Mock
}

func (r *CallRepository) GetEmployeeById(ctx context.Context, exec repositories.Executor,
	employeeId uuid.UUID,
) (models.Employee, error) {
	args := r.Called(ctx, exec, employeeId)
	return args.Get(0).(models.Employee), args.Error(1)
}

func (r *CallRepository) CreateSimulatedEvent(ctx context.Context, exec repositories.Executor,
	eventId uuid.UUID, input models.CreateSimulatedEventInput, createdAt time.Time,
) error {
	args := r.Called(ctx, exec, eventId, input, createdAt)
	return args.Error(0)
}

func (r *CallRepository) CreateOutcome(ctx context.Context, exec repositories.Executor,
	outcome models.ParticipantOutcome,
) error {
	args := r.Called(ctx, exec, outcome)
	return args.Error(0)
}

func (r *CallRepository) CreateCall(ctx context.Context, exec repositories.Executor,
	call models.Call,
) error {
	args := r.Called(ctx, exec, call)
	return args.Error(0)
}

func (r *CallRepository) GetCallById(ctx context.Context, exec repositories.Executor,
	callId uuid.UUID,
) (models.Call, error) {
	args := r.Called(ctx, exec, callId)
	return args.Get(0).(models.Call), args.Error(1)
}

func (r *CallRepository) UpdateCallStatus(ctx context.Context, exec repositories.Executor,
	callId uuid.UUID, status models.CallStatus, at time.Time,
) error {
	args := r.Called(ctx, exec, callId, status, at)
	return args.Error(0)
}

func (r *CallRepository) SetCallVerdict(ctx context.Context, exec repositories.Executor,
	callId uuid.UUID, verdict models.CallVerdict, at time.Time,
) error {
	args := r.Called(ctx, exec, callId, verdict, at)
	return args.Error(0)
}

func (r *CallRepository) CreateCallTurn(ctx context.Context, exec repositories.Executor,
	turn models.CallTurn,
) error {
	args := r.Called(ctx, exec, turn)
	return args.Error(0)
}

func (r *CallRepository) ListCallTurns(ctx context.Context, exec repositories.Executor,
	callId uuid.UUID,
) ([]models.CallTurn, error) {
	args := r.Called(ctx, exec, callId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CallTurn), args.Error(1)
}

func (r *CallRepository) CountCallTurns(ctx context.Context, exec repositories.Executor,
	callId uuid.UUID,
) (int, error) {
	args := r.Called(ctx, exec, callId)
	return args.Int(0), args.Error(1)
}
