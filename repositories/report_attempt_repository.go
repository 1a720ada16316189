package repositories

import (
	"context"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories/dbmodels"

	"github.com/google/uuid"
)

func (repo *LurelabDbRepository) CreateReportAttempt(ctx context.Context, exec Executor,
	attempt models.ReportAttempt,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_REPORT_ATTEMPTS).
		Columns(
			"id",
			"employee_id",
			"claimed_channel_type",
			"window_start",
			"window_end",
			"submitted_at",
			"status",
			"matched_event_id",
			"note",
			"created_at",
			"updated_at",
		).
		Values(
			attempt.Id,
			attempt.EmployeeId,
			attempt.ClaimedChannelType.String(),
			attempt.WindowStart,
			attempt.WindowEnd,
			attempt.SubmittedAt,
			attempt.Status.String(),
			attempt.MatchedEventId,
			attempt.Note,
			attempt.CreatedAt,
			attempt.UpdatedAt,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *LurelabDbRepository) GetReportAttemptById(ctx context.Context, exec Executor,
	attemptId uuid.UUID,
) (models.ReportAttempt, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectReportAttemptColumns...).
		From(dbmodels.TABLE_REPORT_ATTEMPTS).
		Where("id = ?", attemptId)

	return SqlToModel(ctx, exec, query, dbmodels.AdaptReportAttempt)
}

func (repo *LurelabDbRepository) UpdateReportAttempt(ctx context.Context, exec Executor,
	attempt models.ReportAttempt,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_REPORT_ATTEMPTS).
		Set("status", attempt.Status.String()).
		Set("matched_event_id", attempt.MatchedEventId).
		Set("note", attempt.Note).
		Set("updated_at", attempt.UpdatedAt).
		Where("id = ?", attempt.Id)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *LurelabDbRepository) ListReportAttempts(ctx context.Context, exec Executor,
	employeeId uuid.UUID,
) ([]models.ReportAttempt, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectReportAttemptColumns...).
		From(dbmodels.TABLE_REPORT_ATTEMPTS).
		Where("employee_id = ?", employeeId).
		OrderBy("submitted_at DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptReportAttempt)
}

// ListVerifiedEventIds returns the ids of events already claimed by a
// VERIFIED report attempt of this employee.
func (repo *LurelabDbRepository) ListVerifiedEventIds(ctx context.Context, exec Executor,
	employeeId uuid.UUID,
) ([]uuid.UUID, error) {
	query := NewQueryBuilder().
		Select("matched_event_id").
		From(dbmodels.TABLE_REPORT_ATTEMPTS).
		Where("employee_id = ?", employeeId).
		Where("status = ?", models.ReportAttemptVerified.String()).
		Where("matched_event_id IS NOT NULL")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
