package dbmodels

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBReportAttempt struct {
	Id                 uuid.UUID   `db:"id"`
	EmployeeId         uuid.UUID   `db:"employee_id"`
	ClaimedChannelType string      `db:"claimed_channel_type"`
	WindowStart        time.Time   `db:"window_start"`
	WindowEnd          time.Time   `db:"window_end"`
	SubmittedAt        time.Time   `db:"submitted_at"`
	Status             string      `db:"status"`
	MatchedEventId     pgtype.UUID `db:"matched_event_id"`
	Note               string      `db:"note"`
	CreatedAt          time.Time   `db:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at"`
}

const TABLE_REPORT_ATTEMPTS = "report_attempts"

var SelectReportAttemptColumns = utils.ColumnList[DBReportAttempt]()

func AdaptReportAttempt(db DBReportAttempt) (models.ReportAttempt, error) {
	attempt := models.ReportAttempt{
		Id:                 db.Id,
		EmployeeId:         db.EmployeeId,
		ClaimedChannelType: models.ChannelTypeFrom(db.ClaimedChannelType),
		WindowStart:        db.WindowStart,
		WindowEnd:          db.WindowEnd,
		SubmittedAt:        db.SubmittedAt,
		Status:             models.ReportAttemptStatusFrom(db.Status),
		Note:               db.Note,
		CreatedAt:          db.CreatedAt,
		UpdatedAt:          db.UpdatedAt,
	}
	if db.MatchedEventId.Valid {
		eventId, err := uuid.FromBytes(db.MatchedEventId.Bytes[:])
		if err != nil {
			return models.ReportAttempt{}, err
		}
		attempt.MatchedEventId = &eventId
	}
	return attempt, nil
}
