package usecases

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/mocks"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/pure_utils"
	"github.com/lurelab/lurelab-backend/repositories/clock"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func outcomeUsecaseTestHarness(t *testing.T) (OutcomeUsecase, *mocks.OutcomeRepository) {
	t.Helper()

	repo := new(mocks.OutcomeRepository)
	transactionFactory := &mocks.TransactionFactory{TxMock: new(mocks.Transaction)}
	transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)

	uc := OutcomeUsecase{
		repository:         repo,
		executorFactory:    executor_factory.NewExecutorFactoryStub(),
		transactionFactory: transactionFactory,
		clock:              clock.NewMock(testNow),
	}
	return uc, repo
}

func TestEnrollCreatesPendingOutcome(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(nil, nil)
	repo.On("CreateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.EmployeeId == employeeId && o.EventId == eventId &&
				o.Result == models.OutcomePending && !o.HasFailedBefore
		})).Return(nil)

	outcome, err := uc.Enroll(t.Context(), employeeId, eventId)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomePending, outcome.Result)
	assert.Equal(t, testNow, outcome.CreatedAt)
	repo.AssertExpectations(t)
}

func TestEnrollIsIdempotent(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()
	existing := models.ParticipantOutcome{
		Id:         uuid.New(),
		EmployeeId: employeeId,
		EventId:    eventId,
		Result:     models.OutcomeReported,
	}

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&existing, nil)

	outcome, err := uc.Enroll(t.Context(), employeeId, eventId)

	assert.NoError(t, err)
	assert.Equal(t, existing, outcome)
	repo.AssertNotCalled(t, "CreateOutcome", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordFailureDerivesSeverityFromDifficulty(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId: employeeId,
			EventId:    eventId,
			Result:     models.OutcomePending,
		}, nil)
	repo.On("GetSimulatedEventById", mock.Anything, mock.Anything, eventId).
		Return(models.SimulatedEvent{Id: eventId, Difficulty: models.DifficultyHigh}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.Result == models.OutcomeFailed && o.IsSevereFailure &&
				o.HasFailedBefore && o.FailedAt != nil
		})).Return(nil)

	outcome, err := uc.RecordFailure(t.Context(), employeeId, eventId, nil, nil)

	assert.NoError(t, err)
	assert.True(t, outcome.IsSevereFailure)
	repo.AssertExpectations(t)
}

func TestRecordFailureWithExplicitSeverity(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId: employeeId,
			EventId:    eventId,
			Result:     models.OutcomePending,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.Result == models.OutcomeFailed && !o.IsSevereFailure
		})).Return(nil)

	_, err := uc.RecordFailure(t.Context(), employeeId, eventId, nil, pure_utils.Ptr(false))

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "GetSimulatedEventById", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordFailureDowngradesSeverity(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()
	failedAt := testNow.Add(-time.Hour)

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId:      employeeId,
			EventId:         eventId,
			Result:          models.OutcomeFailed,
			FailedAt:        &failedAt,
			IsSevereFailure: true,
			HasFailedBefore: true,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.Result == models.OutcomeFailed && !o.IsSevereFailure && o.HasFailedBefore
		})).Return(nil)

	outcome, err := uc.RecordFailure(t.Context(), employeeId, eventId, nil, pure_utils.Ptr(false))

	assert.NoError(t, err)
	assert.False(t, outcome.IsSevereFailure, "an explicit non-severe re-record corrects the severity")
	assert.True(t, outcome.HasFailedBefore)
	repo.AssertExpectations(t)
}

func TestRecordFailureHonorsExplicitTimestamp(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()
	failedAt := testNow.Add(-30 * time.Minute)

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId: employeeId,
			EventId:    eventId,
			Result:     models.OutcomePending,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.FailedAt != nil && o.FailedAt.Equal(failedAt) && o.UpdatedAt.Equal(testNow)
		})).Return(nil)

	outcome, err := uc.RecordFailure(t.Context(), employeeId, eventId, &failedAt, pure_utils.Ptr(false))

	assert.NoError(t, err)
	assert.Equal(t, failedAt, *outcome.FailedAt)
	repo.AssertExpectations(t)
}

func TestRecordFailureRequiresEnrollment(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(nil, nil)

	_, err := uc.RecordFailure(t.Context(), employeeId, eventId, nil, nil)

	assert.ErrorIs(t, err, models.ErrNotEnrolled)
}

func TestRecordReportKeepsFailureScar(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()
	failedAt := testNow.Add(-time.Hour)

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId:      employeeId,
			EventId:         eventId,
			Result:          models.OutcomeFailed,
			FailedAt:        &failedAt,
			IsSevereFailure: true,
			HasFailedBefore: true,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.Result == models.OutcomeReported && o.HasFailedBefore &&
				o.IsSevereFailure && o.ReportedAt != nil && o.FailedAt != nil
		})).Return(nil)

	outcome, err := uc.RecordReport(t.Context(), employeeId, eventId, testNow)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeReported, outcome.Result)
	assert.True(t, outcome.HasFailedBefore)
	repo.AssertExpectations(t)
}

func TestSetResultRejectsUnknownResult(t *testing.T) {
	uc, _ := outcomeUsecaseTestHarness(t)

	_, err := uc.SetResult(t.Context(), models.SetResultInput{
		EmployeeId: uuid.New(),
		EventId:    uuid.New(),
		Result:     models.OutcomeResult("CLICKED"),
	})

	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestSetResultCreatesMissingOutcome(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(nil, nil)
	repo.On("CreateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.Result == models.OutcomeFailed && o.HasFailedBefore
		})).Return(nil)

	outcome, err := uc.SetResult(t.Context(), models.SetResultInput{
		EmployeeId: employeeId,
		EventId:    eventId,
		Result:     models.OutcomeFailed,
	})

	assert.NoError(t, err)
	assert.True(t, outcome.HasFailedBefore, "a directly set failure still scars")
	repo.AssertExpectations(t)
}

func TestSetResultOverridesFlags(t *testing.T) {
	uc, repo := outcomeUsecaseTestHarness(t)
	employeeId, eventId := uuid.New(), uuid.New()

	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId:      employeeId,
			EventId:         eventId,
			Result:          models.OutcomeFailed,
			IsSevereFailure: true,
			HasFailedBefore: true,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.Result == models.OutcomePending && !o.IsSevereFailure && !o.HasFailedBefore
		})).Return(nil)

	outcome, err := uc.SetResult(t.Context(), models.SetResultInput{
		EmployeeId:      employeeId,
		EventId:         eventId,
		Result:          models.OutcomePending,
		IsSevereFailure: pure_utils.Ptr(false),
		HasFailedBefore: pure_utils.Ptr(false),
	})

	assert.NoError(t, err)
	assert.False(t, outcome.HasFailedBefore)
	repo.AssertExpectations(t)
}
