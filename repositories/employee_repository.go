package repositories

import (
	"context"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories/dbmodels"

	"github.com/google/uuid"
)

func (repo *LurelabDbRepository) GetEmployeeById(ctx context.Context, exec Executor,
	employeeId uuid.UUID,
) (models.Employee, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectEmployeeColumns...).
		From(dbmodels.TABLE_EMPLOYEES).
		Where("id = ?", employeeId)

	return SqlToModel(ctx, exec, query, dbmodels.AdaptEmployee)
}

func (repo *LurelabDbRepository) ListEmployeeIdsByArea(ctx context.Context, exec Executor,
	areaId uuid.UUID,
) ([]uuid.UUID, error) {
	query := NewQueryBuilder().
		Select("id").
		From(dbmodels.TABLE_EMPLOYEES).
		Where("area_id = ?", areaId).
		OrderBy("created_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	return ids, rows.Err()
}
