package dbmodels

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBCall struct {
	Id              uuid.UUID          `db:"id"`
	EmployeeId      uuid.UUID          `db:"employee_id"`
	EventId         uuid.UUID          `db:"event_id"`
	CallerPersonaId uuid.UUID          `db:"caller_persona_id"`
	Objective       string             `db:"objective"`
	Pretext         string             `db:"pretext"`
	Difficulty      string             `db:"difficulty"`
	VoiceProfileId  string             `db:"voice_profile_id"`
	FollowUpChannel pgtype.Text        `db:"follow_up_channel"`
	Status          string             `db:"status"`
	Verdict         pgtype.Text        `db:"verdict"`
	StartedAt       time.Time          `db:"started_at"`
	VerdictDueAt    time.Time          `db:"verdict_due_at"`
	CompletedAt     pgtype.Timestamptz `db:"completed_at"`
	CreatedAt       time.Time          `db:"created_at"`
	UpdatedAt       time.Time          `db:"updated_at"`
}

const TABLE_CALLS = "calls"

var SelectCallColumns = utils.ColumnList[DBCall]()

func AdaptCall(db DBCall) (models.Call, error) {
	call := models.Call{
		Id:              db.Id,
		EmployeeId:      db.EmployeeId,
		EventId:         db.EventId,
		CallerPersonaId: db.CallerPersonaId,
		Objective:       db.Objective,
		Pretext:         db.Pretext,
		Difficulty:      models.DifficultyFrom(db.Difficulty),
		VoiceProfileId:  db.VoiceProfileId,
		Status:          models.CallStatusFrom(db.Status),
		StartedAt:       db.StartedAt,
		VerdictDueAt:    db.VerdictDueAt,
		CreatedAt:       db.CreatedAt,
		UpdatedAt:       db.UpdatedAt,
	}
	if db.FollowUpChannel.Valid {
		channel := models.ChannelTypeFrom(db.FollowUpChannel.String)
		call.FollowUpChannel = &channel
	}
	if db.Verdict.Valid {
		verdict := models.CallVerdict(db.Verdict.String)
		call.Verdict = &verdict
	}
	if db.CompletedAt.Valid {
		completedAt := db.CompletedAt.Time
		call.CompletedAt = &completedAt
	}
	return call, nil
}
