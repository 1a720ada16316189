package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
)

type ScoringRepository struct {
	mock.Mock
}

func (r *ScoringRepository) ListOutcomes(ctx context.Context, exec repositories.Executor,
	filter models.OutcomeFilter,
) ([]models.ParticipantOutcome, error) {
	args := r.Called(ctx, exec, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipantOutcome), args.Error(1)
}

func (r *ScoringRepository) ListEmployeeIdsByArea(ctx context.Context, exec repositories.Executor,
	areaId uuid.UUID,
) ([]uuid.UUID, error) {
	args := r.Called(ctx, exec, areaId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
