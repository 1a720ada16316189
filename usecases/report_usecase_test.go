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

const testClockSkew = 10 * time.Minute

func reportUsecaseTestHarness(t *testing.T) (ReportUsecase, *mocks.ReportAttemptRepository) {
	t.Helper()

	repo := new(mocks.ReportAttemptRepository)
	transactionFactory := &mocks.TransactionFactory{TxMock: new(mocks.Transaction)}
	transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)

	uc := ReportUsecase{
		repository:         repo,
		executorFactory:    executor_factory.NewExecutorFactoryStub(),
		transactionFactory: transactionFactory,
		clock:              clock.NewMock(testNow),
		config:             models.ReconciliationConfig{ClockSkewCompensation: testClockSkew},
	}
	return uc, repo
}

func submitInput(employeeId uuid.UUID) models.SubmitReportInput {
	return models.SubmitReportInput{
		EmployeeId:         employeeId,
		ClaimedChannelType: models.ChannelEmail,
		WindowStart:        testNow.Add(-time.Hour),
		WindowEnd:          testNow,
	}
}

func TestSubmitReportRejectsInvertedWindow(t *testing.T) {
	uc, _ := reportUsecaseTestHarness(t)

	input := submitInput(uuid.New())
	input.WindowStart, input.WindowEnd = input.WindowEnd, input.WindowStart

	_, err := uc.SubmitReport(t.Context(), input)
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestSubmitReportRejectsUnknownChannel(t *testing.T) {
	uc, _ := reportUsecaseTestHarness(t)

	input := submitInput(uuid.New())
	input.ClaimedChannelType = models.ChannelType("CARRIER_PIGEON")

	_, err := uc.SubmitReport(t.Context(), input)
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestSubmitReportWithoutCandidatesQueuesForReview(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	employeeId := uuid.New()
	input := submitInput(employeeId)

	// The claimed window is queried shifted back by the skew compensation.
	repo.On("ListEnrolledEventsInWindow", mock.Anything, mock.Anything, employeeId,
		models.ChannelEmail, input.WindowStart.Add(-testClockSkew), input.WindowEnd.Add(-testClockSkew)).
		Return([]models.SimulatedEvent{}, nil)
	repo.On("CreateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			return a.Status == models.ReportAttemptPending &&
				a.Note == models.ReportNoteNoCandidateEvents &&
				a.MatchedEventId == nil
		})).Return(nil)

	result, err := uc.SubmitReport(t.Context(), input)

	assert.NoError(t, err)
	assert.Equal(t, models.ReportThankYouMessage, result.Message)
	assert.Equal(t, models.ReportAttemptPending, result.Attempt.Status)
	repo.AssertExpectations(t)
}

func TestSubmitReportMatchesOldestUnclaimedCandidate(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	employeeId := uuid.New()
	input := submitInput(employeeId)

	claimedEvent := models.SimulatedEvent{Id: uuid.New(), ChannelType: models.ChannelEmail}
	freshEvent := models.SimulatedEvent{Id: uuid.New(), ChannelType: models.ChannelEmail}

	repo.On("ListEnrolledEventsInWindow", mock.Anything, mock.Anything, employeeId,
		models.ChannelEmail, mock.Anything, mock.Anything).
		Return([]models.SimulatedEvent{claimedEvent, freshEvent}, nil)
	repo.On("ListVerifiedEventIds", mock.Anything, mock.Anything, employeeId).
		Return([]uuid.UUID{claimedEvent.Id}, nil)
	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, freshEvent.Id).
		Return(&models.ParticipantOutcome{
			EmployeeId: employeeId,
			EventId:    freshEvent.Id,
			Result:     models.OutcomePending,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.EventId == freshEvent.Id && o.Result == models.OutcomeReported
		})).Return(nil)
	repo.On("CreateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			return a.Status == models.ReportAttemptVerified &&
				a.MatchedEventId != nil && *a.MatchedEventId == freshEvent.Id
		})).Return(nil)

	result, err := uc.SubmitReport(t.Context(), input)

	assert.NoError(t, err)
	assert.Equal(t, models.ReportAttemptVerified, result.Attempt.Status)
	assert.Equal(t, models.ReportThankYouMessage, result.Message)
	repo.AssertExpectations(t)
}

func TestSubmitReportAllCandidatesClaimed(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	employeeId := uuid.New()
	input := submitInput(employeeId)

	event := models.SimulatedEvent{Id: uuid.New(), ChannelType: models.ChannelEmail}

	repo.On("ListEnrolledEventsInWindow", mock.Anything, mock.Anything, employeeId,
		models.ChannelEmail, mock.Anything, mock.Anything).
		Return([]models.SimulatedEvent{event}, nil)
	repo.On("ListVerifiedEventIds", mock.Anything, mock.Anything, employeeId).
		Return([]uuid.UUID{event.Id}, nil)
	repo.On("CreateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			return a.Status == models.ReportAttemptPending &&
				a.Note == models.ReportNoteAllCandidatesClaimed
		})).Return(nil)

	result, err := uc.SubmitReport(t.Context(), input)

	assert.NoError(t, err)
	assert.Equal(t, models.ReportAttemptPending, result.Attempt.Status)
	repo.AssertNotCalled(t, "UpdateOutcome", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyMatchesAttemptManually(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	attemptId, eventId, employeeId := uuid.New(), uuid.New(), uuid.New()
	submittedAt := testNow.Add(-time.Hour)

	repo.On("GetReportAttemptById", mock.Anything, mock.Anything, attemptId).
		Return(models.ReportAttempt{
			Id:          attemptId,
			EmployeeId:  employeeId,
			Status:      models.ReportAttemptPending,
			SubmittedAt: submittedAt,
		}, nil)
	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId: employeeId,
			EventId:    eventId,
			Result:     models.OutcomePending,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			// The report timestamp is the original submission, not the review.
			return o.Result == models.OutcomeReported && o.ReportedAt.Equal(submittedAt)
		})).Return(nil)
	repo.On("UpdateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			return a.Status == models.ReportAttemptVerified &&
				a.MatchedEventId != nil && *a.MatchedEventId == eventId &&
				a.Note == "confirmed against the campaign log"
		})).Return(nil)

	attempt, err := uc.Verify(t.Context(), attemptId, eventId,
		pure_utils.Ptr("confirmed against the campaign log"))

	assert.NoError(t, err)
	assert.Equal(t, models.ReportAttemptVerified, attempt.Status)
	assert.Equal(t, "confirmed against the campaign log", attempt.Note)
	repo.AssertExpectations(t)
}

func TestRejectRevertsVerifiedMatch(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	attemptId, eventId, employeeId := uuid.New(), uuid.New(), uuid.New()
	reportedAt := testNow.Add(-time.Hour)

	repo.On("GetReportAttemptById", mock.Anything, mock.Anything, attemptId).
		Return(models.ReportAttempt{
			Id:             attemptId,
			EmployeeId:     employeeId,
			Status:         models.ReportAttemptVerified,
			MatchedEventId: &eventId,
		}, nil)
	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId: employeeId,
			EventId:    eventId,
			Result:     models.OutcomeReported,
			ReportedAt: &reportedAt,
		}, nil)
	repo.On("UpdateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.Result == models.OutcomePending && o.ReportedAt == nil
		})).Return(nil)
	repo.On("UpdateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			return a.Status == models.ReportAttemptRejected && a.MatchedEventId == nil &&
				a.Note == "duplicate of an earlier attempt"
		})).Return(nil)

	attempt, err := uc.Reject(t.Context(), attemptId,
		pure_utils.Ptr("duplicate of an earlier attempt"))

	assert.NoError(t, err)
	assert.Equal(t, models.ReportAttemptRejected, attempt.Status)
	repo.AssertExpectations(t)
}

func TestRejectKeepsLaterFailure(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	attemptId, eventId, employeeId := uuid.New(), uuid.New(), uuid.New()

	repo.On("GetReportAttemptById", mock.Anything, mock.Anything, attemptId).
		Return(models.ReportAttempt{
			Id:             attemptId,
			EmployeeId:     employeeId,
			Status:         models.ReportAttemptVerified,
			MatchedEventId: &eventId,
		}, nil)
	// The outcome has since moved to FAILED; the revert must not touch it.
	repo.On("GetOutcomeForUpdate", mock.Anything, mock.Anything, employeeId, eventId).
		Return(&models.ParticipantOutcome{
			EmployeeId: employeeId,
			EventId:    eventId,
			Result:     models.OutcomeFailed,
		}, nil)
	repo.On("UpdateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			return a.Status == models.ReportAttemptRejected
		})).Return(nil)

	_, err := uc.Reject(t.Context(), attemptId, nil)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateOutcome", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateWithoutEventLeavesOutcomesAlone(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	attemptId := uuid.New()

	repo.On("GetReportAttemptById", mock.Anything, mock.Anything, attemptId).
		Return(models.ReportAttempt{
			Id:     attemptId,
			Status: models.ReportAttemptPending,
			Note:   models.ReportNoteNoCandidateEvents,
		}, nil)
	repo.On("UpdateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			// Without a reviewer note, the reconciliation note stays.
			return a.Status == models.ReportAttemptValidatedWithoutEvent &&
				a.Note == models.ReportNoteNoCandidateEvents
		})).Return(nil)

	attempt, err := uc.ValidateWithoutEvent(t.Context(), attemptId, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.ReportAttemptValidatedWithoutEvent, attempt.Status)
	repo.AssertNotCalled(t, "GetOutcomeForUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateWithoutEventRecordsReviewNote(t *testing.T) {
	uc, repo := reportUsecaseTestHarness(t)
	attemptId := uuid.New()

	repo.On("GetReportAttemptById", mock.Anything, mock.Anything, attemptId).
		Return(models.ReportAttempt{
			Id:     attemptId,
			Status: models.ReportAttemptPending,
			Note:   models.ReportNoteNoCandidateEvents,
		}, nil)
	repo.On("UpdateReportAttempt", mock.Anything, mock.Anything,
		mock.MatchedBy(func(a models.ReportAttempt) bool {
			return a.Status == models.ReportAttemptValidatedWithoutEvent &&
				a.Note == "real vendor phishing, forwarded to security"
		})).Return(nil)

	attempt, err := uc.ValidateWithoutEvent(t.Context(), attemptId,
		pure_utils.Ptr("real vendor phishing, forwarded to security"))

	assert.NoError(t, err)
	assert.Equal(t, "real vendor phishing, forwarded to security", attempt.Note)
	repo.AssertExpectations(t)
}
