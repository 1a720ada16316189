package dbmodels

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBCallTurn struct {
	Id        uuid.UUID   `db:"id"`
	CallId    uuid.UUID   `db:"call_id"`
	TurnIndex int         `db:"turn_index"`
	Speaker   string      `db:"speaker"`
	Content   string      `db:"content"`
	AudioKey  pgtype.Text `db:"audio_key"`
	CreatedAt time.Time   `db:"created_at"`
}

const TABLE_CALL_TURNS = "call_turns"

var SelectCallTurnColumns = utils.ColumnList[DBCallTurn]()

func AdaptCallTurn(db DBCallTurn) (models.CallTurn, error) {
	turn := models.CallTurn{
		Id:        db.Id,
		CallId:    db.CallId,
		TurnIndex: db.TurnIndex,
		Speaker:   models.Speaker(db.Speaker),
		Content:   db.Content,
		CreatedAt: db.CreatedAt,
	}
	if db.AudioKey.Valid {
		turn.AudioKey = &db.AudioKey.String
	}
	return turn, nil
}
