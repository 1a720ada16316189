package dbmodels

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBParticipantOutcome struct {
	Id              uuid.UUID          `db:"id"`
	EmployeeId      uuid.UUID          `db:"employee_id"`
	EventId         uuid.UUID          `db:"event_id"`
	Result          string             `db:"result"`
	FailedAt        pgtype.Timestamptz `db:"failed_at"`
	ReportedAt      pgtype.Timestamptz `db:"reported_at"`
	IsSevereFailure bool               `db:"is_severe_failure"`
	HasFailedBefore bool               `db:"has_failed_before"`
	CreatedAt       time.Time          `db:"created_at"`
	UpdatedAt       time.Time          `db:"updated_at"`
}

const TABLE_PARTICIPANT_OUTCOMES = "participant_outcomes"

var SelectParticipantOutcomeColumns = utils.ColumnList[DBParticipantOutcome]()

func AdaptParticipantOutcome(db DBParticipantOutcome) (models.ParticipantOutcome, error) {
	outcome := models.ParticipantOutcome{
		Id:              db.Id,
		EmployeeId:      db.EmployeeId,
		EventId:         db.EventId,
		Result:          models.OutcomeResultFrom(db.Result),
		IsSevereFailure: db.IsSevereFailure,
		HasFailedBefore: db.HasFailedBefore,
		CreatedAt:       db.CreatedAt,
		UpdatedAt:       db.UpdatedAt,
	}
	if db.FailedAt.Valid {
		failedAt := db.FailedAt.Time
		outcome.FailedAt = &failedAt
	}
	if db.ReportedAt.Valid {
		reportedAt := db.ReportedAt.Time
		outcome.ReportedAt = &reportedAt
	}
	return outcome, nil
}
