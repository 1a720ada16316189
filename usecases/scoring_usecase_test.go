package usecases

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/mocks"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
)

func scoringUsecaseTestHarness(t *testing.T) (ScoringUsecase, *mocks.ScoringRepository) {
	t.Helper()

	repo := new(mocks.ScoringRepository)
	uc := ScoringUsecase{
		repository:      repo,
		executorFactory: executor_factory.NewExecutorFactoryStub(),
		config:          models.ScoringConfig{MinAggregateSample: 5},
	}
	return uc, repo
}

func TestScoreFromOutcomes(t *testing.T) {
	employeeId := uuid.New()

	tests := []struct {
		name     string
		outcomes []models.ParticipantOutcome
		points   int
		tier     models.RiskTier
	}{
		{
			name:   "no history",
			points: 100,
			tier:   models.RiskTierNone,
		},
		{
			name: "one simple failure",
			outcomes: []models.ParticipantOutcome{
				{Result: models.OutcomeFailed, HasFailedBefore: true},
			},
			points: 95,
			tier:   models.RiskTierLow,
		},
		{
			name: "one severe failure",
			outcomes: []models.ParticipantOutcome{
				{Result: models.OutcomeFailed, IsSevereFailure: true, HasFailedBefore: true},
			},
			points: 90,
			tier:   models.RiskTierLow,
		},
		{
			name: "clean report earns the bonus but never exceeds the cap",
			outcomes: []models.ParticipantOutcome{
				{Result: models.OutcomeReported},
			},
			points: 100,
			tier:   models.RiskTierNone,
		},
		{
			name: "reporting after a severe failure softens but keeps the scar",
			outcomes: []models.ParticipantOutcome{
				{Result: models.OutcomeReported, IsSevereFailure: true, HasFailedBefore: true},
			},
			points: 95,
			tier:   models.RiskTierLow,
		},
		{
			name: "mixed history",
			outcomes: []models.ParticipantOutcome{
				{Result: models.OutcomeFailed, IsSevereFailure: true, HasFailedBefore: true},
				{Result: models.OutcomeFailed, HasFailedBefore: true},
				{Result: models.OutcomeReported},
				{Result: models.OutcomePending},
			},
			points: 90,
			tier:   models.RiskTierLow,
		},
		{
			name: "score is clamped at zero",
			outcomes: func() []models.ParticipantOutcome {
				outcomes := make([]models.ParticipantOutcome, 12)
				for i := range outcomes {
					outcomes[i] = models.ParticipantOutcome{
						Result:          models.OutcomeFailed,
						IsSevereFailure: true,
						HasFailedBefore: true,
					}
				}
				return outcomes
			}(),
			points: 0,
			tier:   models.RiskTierMaximum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scoreFromOutcomes(employeeId, tt.outcomes)
			assert.Equal(t, tt.points, score.Points)
			assert.Equal(t, tt.tier, score.Tier)
			assert.Equal(t, len(tt.outcomes), score.OutcomeCount)
		})
	}
}

func TestScoreReadsFullHistory(t *testing.T) {
	uc, repo := scoringUsecaseTestHarness(t)
	employeeId := uuid.New()

	repo.On("ListOutcomes", mock.Anything, mock.Anything,
		mock.MatchedBy(func(f models.OutcomeFilter) bool {
			return f.EmployeeId != nil && *f.EmployeeId == employeeId
		})).
		Return([]models.ParticipantOutcome{
			{Result: models.OutcomeFailed, HasFailedBefore: true},
			{Result: models.OutcomeReported},
		}, nil)

	score, err := uc.Score(t.Context(), employeeId)

	assert.NoError(t, err)
	assert.Equal(t, 100, score.Points)
	assert.Equal(t, 5, score.PointsLostToFailure)
	assert.Equal(t, 5, score.PointsFromReports)
	repo.AssertExpectations(t)
}

func TestAggregateScoreRequiresScope(t *testing.T) {
	uc, _ := scoringUsecaseTestHarness(t)

	_, err := uc.AggregateScore(t.Context(), models.AggregateFilter{})
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestAggregateScoreInsufficientData(t *testing.T) {
	uc, repo := scoringUsecaseTestHarness(t)
	employeeIds := []uuid.UUID{uuid.New(), uuid.New()}

	for _, employeeId := range employeeIds {
		repo.On("ListOutcomes", mock.Anything, mock.Anything,
			mock.MatchedBy(matchEmployeeFilter(employeeId))).
			Return([]models.ParticipantOutcome{
				{Result: models.OutcomeFailed, HasFailedBefore: true},
			}, nil)
	}

	aggregate, err := uc.AggregateScore(t.Context(), models.AggregateFilter{EmployeeIds: employeeIds})

	assert.NoError(t, err)
	assert.True(t, aggregate.InsufficientData)
	assert.Equal(t, 2, aggregate.EmployeeCount)
	assert.Equal(t, 2, aggregate.OutcomeCount)
	assert.Zero(t, aggregate.Mean)
}

func TestAggregateScoreByArea(t *testing.T) {
	uc, repo := scoringUsecaseTestHarness(t)
	areaId := uuid.New()

	severeFailure := models.ParticipantOutcome{
		Result: models.OutcomeFailed, IsSevereFailure: true, HasFailedBefore: true,
	}
	simpleFailure := models.ParticipantOutcome{
		Result: models.OutcomeFailed, HasFailedBefore: true,
	}
	report := models.ParticipantOutcome{Result: models.OutcomeReported}

	histories := map[uuid.UUID][]models.ParticipantOutcome{
		uuid.New(): {severeFailure},                // 90
		uuid.New(): {simpleFailure},                // 95
		uuid.New(): {report},                       // 100
		uuid.New(): {simpleFailure, simpleFailure}, // 90
		uuid.New(): {severeFailure, simpleFailure}, // 85
	}

	employeeIds := make([]uuid.UUID, 0, len(histories))
	for employeeId, outcomes := range histories {
		employeeIds = append(employeeIds, employeeId)
		repo.On("ListOutcomes", mock.Anything, mock.Anything,
			mock.MatchedBy(matchEmployeeFilter(employeeId))).
			Return(outcomes, nil)
	}
	repo.On("ListEmployeeIdsByArea", mock.Anything, mock.Anything, areaId).
		Return(employeeIds, nil)

	aggregate, err := uc.AggregateScore(t.Context(), models.AggregateFilter{AreaId: &areaId})

	assert.NoError(t, err)
	assert.False(t, aggregate.InsufficientData)
	assert.Equal(t, 5, aggregate.EmployeeCount)
	assert.Equal(t, 7, aggregate.OutcomeCount)
	assert.Equal(t, 92.0, aggregate.Mean)
	assert.Equal(t, 90.0, aggregate.Median)
	assert.Equal(t, 87.0, aggregate.P10)
}

func matchEmployeeFilter(employeeId uuid.UUID) func(models.OutcomeFilter) bool {
	return func(f models.OutcomeFilter) bool {
		return f.EmployeeId != nil && *f.EmployeeId == employeeId
	}
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	assert.Equal(t, 25.0, percentile(sorted, 50))
	assert.Equal(t, 13.0, percentile(sorted, 10))
	assert.Equal(t, 10.0, percentile(sorted, 0))
	assert.Equal(t, 40.0, percentile(sorted, 100))
	assert.Equal(t, 7.0, percentile([]float64{7}, 50))
}
