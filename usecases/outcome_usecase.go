package usecases

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/pure_utils"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/repositories/clock"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type OutcomeUsecaseRepository interface {
	GetOutcomeForUpdate(ctx context.Context, tx repositories.Transaction,
		employeeId, eventId uuid.UUID) (*models.ParticipantOutcome, error)
	GetOutcome(ctx context.Context, exec repositories.Executor,
		employeeId, eventId uuid.UUID) (*models.ParticipantOutcome, error)
	CreateOutcome(ctx context.Context, exec repositories.Executor,
		outcome models.ParticipantOutcome) error
	UpdateOutcome(ctx context.Context, exec repositories.Executor,
		outcome models.ParticipantOutcome) error
	ListOutcomes(ctx context.Context, exec repositories.Executor,
		filter models.OutcomeFilter) ([]models.ParticipantOutcome, error)
	GetSimulatedEventById(ctx context.Context, exec repositories.Executor,
		eventId uuid.UUID) (models.SimulatedEvent, error)
}

// OutcomeUsecase is the single write path for participant outcomes. All
// transitions go through the transition table, inside a transaction holding a
// row lock on the outcome, so concurrent recorders converge on last write
// wins without ever producing a half-applied row.
type OutcomeUsecase struct {
	repository         OutcomeUsecaseRepository
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	clock              clock.Clock
}

// Enroll creates the PENDING outcome row for an (employee, event) pair.
// Enrolling an already enrolled pair returns the existing row unchanged.
func (uc OutcomeUsecase) Enroll(ctx context.Context, employeeId, eventId uuid.UUID) (models.ParticipantOutcome, error) {
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ParticipantOutcome, error) {
			existing, err := uc.repository.GetOutcomeForUpdate(ctx, tx, employeeId, eventId)
			if err != nil {
				return models.ParticipantOutcome{}, err
			}
			if existing != nil {
				return *existing, nil
			}

			now := uc.clock.Now()
			outcome := models.ParticipantOutcome{
				Id:         uuid.New(),
				EmployeeId: employeeId,
				EventId:    eventId,
				Result:     models.OutcomePending,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := uc.repository.CreateOutcome(ctx, tx, outcome); err != nil {
				return models.ParticipantOutcome{}, err
			}
			return outcome, nil
		})
}

// RecordFailure transitions the outcome to FAILED and marks the permanent
// failure scar. Re-recording overwrites the timestamp and the severity, so a
// correction can downgrade a failure previously recorded as severe. When
// failedAt is nil the current time is used; when severe is nil, severity is
// derived from the event difficulty (HIGH means severe).
func (uc OutcomeUsecase) RecordFailure(ctx context.Context, employeeId, eventId uuid.UUID,
	failedAt *time.Time, severe *bool,
) (models.ParticipantOutcome, error) {
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ParticipantOutcome, error) {
			outcome, err := uc.repository.GetOutcomeForUpdate(ctx, tx, employeeId, eventId)
			if err != nil {
				return models.ParticipantOutcome{}, err
			}
			if outcome == nil {
				return models.ParticipantOutcome{}, errors.Wrapf(models.ErrNotEnrolled,
					"employee %s, event %s", employeeId, eventId)
			}
			if !models.CanTransitionOutcome(outcome.Result, models.OutcomeFailed) {
				return models.ParticipantOutcome{}, errors.Wrapf(models.ErrInvalidTransition,
					"%s to %s", outcome.Result, models.OutcomeFailed)
			}

			isSevere := severe != nil && *severe
			if severe == nil {
				event, err := uc.repository.GetSimulatedEventById(ctx, tx, eventId)
				if err != nil {
					return models.ParticipantOutcome{}, err
				}
				isSevere = event.Difficulty.Severe()
			}

			now := uc.clock.Now()
			at := pure_utils.PtrValueOrDefault(failedAt, now)
			outcome.Result = models.OutcomeFailed
			outcome.FailedAt = &at
			outcome.IsSevereFailure = isSevere
			outcome.HasFailedBefore = true
			outcome.UpdatedAt = now

			if err := uc.repository.UpdateOutcome(ctx, tx, *outcome); err != nil {
				return models.ParticipantOutcome{}, err
			}
			return *outcome, nil
		})
}

// RecordReport transitions the outcome to REPORTED. A report after a failure
// overwrites the current result but leaves the failure scar in place.
func (uc OutcomeUsecase) RecordReport(ctx context.Context, employeeId, eventId uuid.UUID,
	reportedAt time.Time,
) (models.ParticipantOutcome, error) {
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ParticipantOutcome, error) {
			outcome, err := uc.repository.GetOutcomeForUpdate(ctx, tx, employeeId, eventId)
			if err != nil {
				return models.ParticipantOutcome{}, err
			}
			if outcome == nil {
				return models.ParticipantOutcome{}, errors.Wrapf(models.ErrNotEnrolled,
					"employee %s, event %s", employeeId, eventId)
			}
			if !models.CanTransitionOutcome(outcome.Result, models.OutcomeReported) {
				return models.ParticipantOutcome{}, errors.Wrapf(models.ErrInvalidTransition,
					"%s to %s", outcome.Result, models.OutcomeReported)
			}

			outcome.Result = models.OutcomeReported
			outcome.ReportedAt = &reportedAt
			outcome.UpdatedAt = uc.clock.Now()

			if err := uc.repository.UpdateOutcome(ctx, tx, *outcome); err != nil {
				return models.ParticipantOutcome{}, err
			}
			return *outcome, nil
		})
}

// SetResult is the administrative direct set. It is the only write path that
// may create the outcome row, covering first time enrollment by campaign
// tooling.
func (uc OutcomeUsecase) SetResult(ctx context.Context, input models.SetResultInput) (models.ParticipantOutcome, error) {
	if models.OutcomeResultFrom(input.Result.String()) == models.OutcomeUnknown {
		return models.ParticipantOutcome{}, errors.Wrapf(models.BadParameterError,
			"unknown outcome result %s", input.Result)
	}

	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ParticipantOutcome, error) {
			now := uc.clock.Now()

			outcome, err := uc.repository.GetOutcomeForUpdate(ctx, tx, input.EmployeeId, input.EventId)
			if err != nil {
				return models.ParticipantOutcome{}, err
			}

			if outcome == nil {
				created := models.ParticipantOutcome{
					Id:              uuid.New(),
					EmployeeId:      input.EmployeeId,
					EventId:         input.EventId,
					Result:          input.Result,
					FailedAt:        input.FailedAt,
					ReportedAt:      input.ReportedAt,
					IsSevereFailure: pure_utils.PtrValueOrDefault(input.IsSevereFailure, false),
					HasFailedBefore: pure_utils.PtrValueOrDefault(input.HasFailedBefore, false) ||
						input.Result == models.OutcomeFailed,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := uc.repository.CreateOutcome(ctx, tx, created); err != nil {
					return models.ParticipantOutcome{}, err
				}
				return created, nil
			}

			if !models.CanTransitionOutcome(outcome.Result, input.Result) {
				return models.ParticipantOutcome{}, errors.Wrapf(models.ErrInvalidTransition,
					"%s to %s", outcome.Result, input.Result)
			}

			outcome.Result = input.Result
			if input.FailedAt != nil {
				outcome.FailedAt = input.FailedAt
			}
			if input.ReportedAt != nil {
				outcome.ReportedAt = input.ReportedAt
			}
			if input.IsSevereFailure != nil {
				outcome.IsSevereFailure = *input.IsSevereFailure
			}
			if input.HasFailedBefore != nil {
				outcome.HasFailedBefore = *input.HasFailedBefore
			} else if input.Result == models.OutcomeFailed {
				outcome.HasFailedBefore = true
			}
			outcome.UpdatedAt = now

			if err := uc.repository.UpdateOutcome(ctx, tx, *outcome); err != nil {
				return models.ParticipantOutcome{}, err
			}
			return *outcome, nil
		})
}

func (uc OutcomeUsecase) GetOutcome(ctx context.Context, employeeId, eventId uuid.UUID) (models.ParticipantOutcome, error) {
	outcome, err := uc.repository.GetOutcome(ctx, uc.executorFactory.NewExecutor(), employeeId, eventId)
	if err != nil {
		return models.ParticipantOutcome{}, err
	}
	if outcome == nil {
		return models.ParticipantOutcome{}, errors.Wrapf(models.ErrNotEnrolled,
			"employee %s, event %s", employeeId, eventId)
	}
	return *outcome, nil
}

func (uc OutcomeUsecase) ListOutcomes(ctx context.Context, filter models.OutcomeFilter) ([]models.ParticipantOutcome, error) {
	outcomes, err := uc.repository.ListOutcomes(ctx, uc.executorFactory.NewExecutor(), filter)
	if err != nil {
		return nil, err
	}
	utils.LoggerFromContext(ctx).DebugContext(ctx, "Listed outcomes", "count", len(outcomes))
	return outcomes, nil
}
