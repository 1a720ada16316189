package dbmodels

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBEmployee struct {
	Id         uuid.UUID   `db:"id"`
	FullName   string      `db:"full_name"`
	Email      string      `db:"email"`
	Phone      string      `db:"phone"`
	ChatHandle string      `db:"chat_handle"`
	AreaId     pgtype.UUID `db:"area_id"`
	CreatedAt  time.Time   `db:"created_at"`
}

const TABLE_EMPLOYEES = "employees"

var SelectEmployeeColumns = utils.ColumnList[DBEmployee]()

func AdaptEmployee(db DBEmployee) (models.Employee, error) {
	employee := models.Employee{
		Id:         db.Id,
		FullName:   db.FullName,
		Email:      db.Email,
		Phone:      db.Phone,
		ChatHandle: db.ChatHandle,
		CreatedAt:  db.CreatedAt,
	}
	if db.AreaId.Valid {
		areaId, err := uuid.FromBytes(db.AreaId.Bytes[:])
		if err != nil {
			return models.Employee{}, err
		}
		employee.AreaId = &areaId
	}
	return employee, nil
}
