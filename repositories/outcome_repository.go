package repositories

import (
	"context"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// GetOutcomeForUpdate reads the outcome row of an (employee, event) pair with
// a row lock, so that a transition reads and writes a consistent row. Returns
// nil when the pair is not enrolled.
func (repo *LurelabDbRepository) GetOutcomeForUpdate(ctx context.Context, tx Transaction,
	employeeId, eventId uuid.UUID,
) (*models.ParticipantOutcome, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectParticipantOutcomeColumns...).
		From(dbmodels.TABLE_PARTICIPANT_OUTCOMES).
		Where("employee_id = ?", employeeId).
		Where("event_id = ?", eventId).
		Suffix("FOR UPDATE")

	return SqlToOptionalModel(ctx, tx, query, dbmodels.AdaptParticipantOutcome)
}

func (repo *LurelabDbRepository) GetOutcome(ctx context.Context, exec Executor,
	employeeId, eventId uuid.UUID,
) (*models.ParticipantOutcome, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectParticipantOutcomeColumns...).
		From(dbmodels.TABLE_PARTICIPANT_OUTCOMES).
		Where("employee_id = ?", employeeId).
		Where("event_id = ?", eventId)

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptParticipantOutcome)
}

func (repo *LurelabDbRepository) CreateOutcome(ctx context.Context, exec Executor,
	outcome models.ParticipantOutcome,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_PARTICIPANT_OUTCOMES).
		Columns(
			"id",
			"employee_id",
			"event_id",
			"result",
			"failed_at",
			"reported_at",
			"is_severe_failure",
			"has_failed_before",
			"created_at",
			"updated_at",
		).
		Values(
			outcome.Id,
			outcome.EmployeeId,
			outcome.EventId,
			outcome.Result.String(),
			outcome.FailedAt,
			outcome.ReportedAt,
			outcome.IsSevereFailure,
			outcome.HasFailedBefore,
			outcome.CreatedAt,
			outcome.UpdatedAt,
		)

	_, err := ExecBuilder(ctx, exec, query)
	if IsUniqueViolationError(err) {
		return errors.Wrapf(models.ConflictError,
			"employee %s is already enrolled in event %s", outcome.EmployeeId, outcome.EventId)
	}
	return err
}

func (repo *LurelabDbRepository) UpdateOutcome(ctx context.Context, exec Executor,
	outcome models.ParticipantOutcome,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_PARTICIPANT_OUTCOMES).
		Set("result", outcome.Result.String()).
		Set("failed_at", outcome.FailedAt).
		Set("reported_at", outcome.ReportedAt).
		Set("is_severe_failure", outcome.IsSevereFailure).
		Set("has_failed_before", outcome.HasFailedBefore).
		Set("updated_at", outcome.UpdatedAt).
		Where("id = ?", outcome.Id)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *LurelabDbRepository) ListOutcomes(ctx context.Context, exec Executor,
	filter models.OutcomeFilter,
) ([]models.ParticipantOutcome, error) {
	query := NewQueryBuilder().
		Select(pqColumnsWithPrefix(dbmodels.SelectParticipantOutcomeColumns, "o")...).
		From(dbmodels.TABLE_PARTICIPANT_OUTCOMES + " AS o").
		OrderBy("o.created_at ASC")

	if filter.EmployeeId != nil {
		query = query.Where("o.employee_id = ?", *filter.EmployeeId)
	}
	if filter.Result != nil {
		query = query.Where("o.result = ?", filter.Result.String())
	}
	if filter.AreaId != nil {
		query = query.
			Join(dbmodels.TABLE_EMPLOYEES + " AS emp ON emp.id = o.employee_id").
			Where(squirrel.Eq{"emp.area_id": *filter.AreaId})
	}
	if filter.ChannelType != nil || filter.From != nil || filter.To != nil {
		query = query.Join(dbmodels.TABLE_SIMULATED_EVENTS + " AS e ON e.id = o.event_id")
		if filter.ChannelType != nil {
			query = query.Where("e.channel_type = ?", filter.ChannelType.String())
		}
		if filter.From != nil {
			query = query.Where("e.created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("e.created_at <= ?", *filter.To)
		}
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptParticipantOutcome)
}
