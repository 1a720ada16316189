package usecases

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/repositories/clock"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v2"
)

type ReportUsecaseRepository interface {
	CreateReportAttempt(ctx context.Context, exec repositories.Executor,
		attempt models.ReportAttempt) error
	GetReportAttemptById(ctx context.Context, exec repositories.Executor,
		attemptId uuid.UUID) (models.ReportAttempt, error)
	UpdateReportAttempt(ctx context.Context, exec repositories.Executor,
		attempt models.ReportAttempt) error
	ListReportAttempts(ctx context.Context, exec repositories.Executor,
		employeeId uuid.UUID) ([]models.ReportAttempt, error)
	ListVerifiedEventIds(ctx context.Context, exec repositories.Executor,
		employeeId uuid.UUID) ([]uuid.UUID, error)
	ListEnrolledEventsInWindow(ctx context.Context, exec repositories.Executor,
		employeeId uuid.UUID, channelType models.ChannelType,
		windowStart, windowEnd time.Time) ([]models.SimulatedEvent, error)
	GetOutcomeForUpdate(ctx context.Context, tx repositories.Transaction,
		employeeId, eventId uuid.UUID) (*models.ParticipantOutcome, error)
	UpdateOutcome(ctx context.Context, exec repositories.Executor,
		outcome models.ParticipantOutcome) error
}

// ReportUsecase reconciles employee self-reports with simulated events. An
// attempt is stored for every submission, matched or not, and the employee
// always gets the same thank-you answer; only the admin surface ever sees
// the reconciliation detail.
type ReportUsecase struct {
	repository         ReportUsecaseRepository
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	clock              clock.Clock
	config             models.ReconciliationConfig
}

// SubmitReport records the attempt and tries to reconcile it against the
// candidate events of the claimed window, oldest first. The claimed window
// is shifted back by the configured clock skew compensation before querying.
func (uc ReportUsecase) SubmitReport(ctx context.Context, input models.SubmitReportInput) (models.SubmitReportResult, error) {
	if models.ChannelTypeFrom(input.ClaimedChannelType.String()) == models.ChannelUnknown {
		return models.SubmitReportResult{}, errors.Wrapf(models.BadParameterError,
			"unknown channel type %s", input.ClaimedChannelType)
	}
	if input.WindowEnd.Before(input.WindowStart) {
		return models.SubmitReportResult{}, errors.Wrap(models.BadParameterError,
			"report window ends before it starts")
	}

	now := uc.clock.Now()
	windowStart := input.WindowStart.Add(-uc.config.ClockSkewCompensation)
	windowEnd := input.WindowEnd.Add(-uc.config.ClockSkewCompensation)

	logger := utils.LoggerFromContext(ctx)

	attempt, err := executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ReportAttempt, error) {
			attempt := models.ReportAttempt{
				Id:                 uuid.New(),
				EmployeeId:         input.EmployeeId,
				ClaimedChannelType: input.ClaimedChannelType,
				WindowStart:        input.WindowStart,
				WindowEnd:          input.WindowEnd,
				SubmittedAt:        now,
				Status:             models.ReportAttemptPending,
				CreatedAt:          now,
				UpdatedAt:          now,
			}

			candidates, err := uc.repository.ListEnrolledEventsInWindow(ctx, tx,
				input.EmployeeId, input.ClaimedChannelType, windowStart, windowEnd)
			if err != nil {
				return models.ReportAttempt{}, err
			}

			if len(candidates) == 0 {
				attempt.Note = models.ReportNoteNoCandidateEvents
				logger.InfoContext(ctx, "Self-report matched no event, queued for review",
					"employee_id", input.EmployeeId, "channel_type", input.ClaimedChannelType)
				return attempt, uc.repository.CreateReportAttempt(ctx, tx, attempt)
			}

			claimedIds, err := uc.repository.ListVerifiedEventIds(ctx, tx, input.EmployeeId)
			if err != nil {
				return models.ReportAttempt{}, err
			}
			claimed := set.From(claimedIds)

			for _, candidate := range candidates {
				if claimed.Contains(candidate.Id) {
					continue
				}

				if err := uc.markReported(ctx, tx, input.EmployeeId, candidate.Id, now); err != nil {
					return models.ReportAttempt{}, err
				}
				attempt.Status = models.ReportAttemptVerified
				attempt.MatchedEventId = &candidate.Id
				return attempt, uc.repository.CreateReportAttempt(ctx, tx, attempt)
			}

			attempt.Note = models.ReportNoteAllCandidatesClaimed
			logger.InfoContext(ctx, "Self-report candidates all claimed, queued for review",
				"employee_id", input.EmployeeId, "candidates", len(candidates))
			return attempt, uc.repository.CreateReportAttempt(ctx, tx, attempt)
		})
	if err != nil {
		return models.SubmitReportResult{}, err
	}

	return models.SubmitReportResult{
		Attempt: attempt,
		Message: models.ReportThankYouMessage,
	}, nil
}

// Verify manually matches a pending attempt to an event and records the
// report on the outcome. An optional note keeps the reviewer's reasoning on
// the attempt.
func (uc ReportUsecase) Verify(ctx context.Context, attemptId, eventId uuid.UUID,
	note *string,
) (models.ReportAttempt, error) {
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ReportAttempt, error) {
			attempt, err := uc.repository.GetReportAttemptById(ctx, tx, attemptId)
			if err != nil {
				return models.ReportAttempt{}, err
			}
			if attempt.Status == models.ReportAttemptVerified {
				return attempt, nil
			}

			if err := uc.markReported(ctx, tx, attempt.EmployeeId, eventId, attempt.SubmittedAt); err != nil {
				return models.ReportAttempt{}, err
			}

			attempt.Status = models.ReportAttemptVerified
			attempt.MatchedEventId = &eventId
			if note != nil {
				attempt.Note = *note
			}
			attempt.UpdatedAt = uc.clock.Now()
			return attempt, uc.repository.UpdateReportAttempt(ctx, tx, attempt)
		})
}

// ValidateWithoutEvent accepts an attempt as a genuine report of something
// that was not a simulation (real phishing, vendor mail). No outcome is
// touched, except to revert a previous verification.
func (uc ReportUsecase) ValidateWithoutEvent(ctx context.Context, attemptId uuid.UUID,
	note *string,
) (models.ReportAttempt, error) {
	return uc.moveAwayFromVerified(ctx, attemptId, models.ReportAttemptValidatedWithoutEvent, note)
}

// Reject marks an attempt as spurious. A previously verified match is
// reverted: the outcome returns to PENDING unless something else moved it.
func (uc ReportUsecase) Reject(ctx context.Context, attemptId uuid.UUID,
	note *string,
) (models.ReportAttempt, error) {
	return uc.moveAwayFromVerified(ctx, attemptId, models.ReportAttemptRejected, note)
}

func (uc ReportUsecase) ListAttempts(ctx context.Context, employeeId uuid.UUID) ([]models.ReportAttempt, error) {
	return uc.repository.ListReportAttempts(ctx, uc.executorFactory.NewExecutor(), employeeId)
}

func (uc ReportUsecase) moveAwayFromVerified(ctx context.Context, attemptId uuid.UUID,
	target models.ReportAttemptStatus, note *string,
) (models.ReportAttempt, error) {
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ReportAttempt, error) {
			attempt, err := uc.repository.GetReportAttemptById(ctx, tx, attemptId)
			if err != nil {
				return models.ReportAttempt{}, err
			}

			if attempt.Status == models.ReportAttemptVerified && attempt.MatchedEventId != nil {
				if err := uc.revertReportedOutcome(ctx, tx, attempt.EmployeeId, *attempt.MatchedEventId); err != nil {
					return models.ReportAttempt{}, err
				}
				attempt.MatchedEventId = nil
			}

			attempt.Status = target
			if note != nil {
				attempt.Note = *note
			}
			attempt.UpdatedAt = uc.clock.Now()
			return attempt, uc.repository.UpdateReportAttempt(ctx, tx, attempt)
		})
}

func (uc ReportUsecase) markReported(ctx context.Context, tx repositories.Transaction,
	employeeId, eventId uuid.UUID, reportedAt time.Time,
) error {
	outcome, err := uc.repository.GetOutcomeForUpdate(ctx, tx, employeeId, eventId)
	if err != nil {
		return err
	}
	if outcome == nil {
		return errors.Wrapf(models.ErrNotEnrolled, "employee %s, event %s", employeeId, eventId)
	}
	if !models.CanTransitionOutcome(outcome.Result, models.OutcomeReported) {
		return errors.Wrapf(models.ErrInvalidTransition, "%s to %s",
			outcome.Result, models.OutcomeReported)
	}

	outcome.Result = models.OutcomeReported
	outcome.ReportedAt = &reportedAt
	outcome.UpdatedAt = uc.clock.Now()
	return uc.repository.UpdateOutcome(ctx, tx, *outcome)
}

// revertReportedOutcome undoes the outcome side of a verification. Only a
// still-REPORTED outcome is reverted; a later failure wins and is kept.
func (uc ReportUsecase) revertReportedOutcome(ctx context.Context, tx repositories.Transaction,
	employeeId, eventId uuid.UUID,
) error {
	outcome, err := uc.repository.GetOutcomeForUpdate(ctx, tx, employeeId, eventId)
	if err != nil {
		return err
	}
	if outcome == nil || outcome.Result != models.OutcomeReported {
		return nil
	}

	outcome.Result = models.OutcomePending
	outcome.ReportedAt = nil
	outcome.UpdatedAt = uc.clock.Now()
	return uc.repository.UpdateOutcome(ctx, tx, *outcome)
}
