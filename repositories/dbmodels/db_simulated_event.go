package dbmodels

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBSimulatedEvent struct {
	Id             uuid.UUID   `db:"id"`
	ChannelType    string      `db:"channel_type"`
	Difficulty     string      `db:"difficulty"`
	DeliveryMedium pgtype.Text `db:"delivery_medium"`
	CreatedAt      time.Time   `db:"created_at"`
}

const TABLE_SIMULATED_EVENTS = "simulated_events"

var SelectSimulatedEventColumns = utils.ColumnList[DBSimulatedEvent]()

func AdaptSimulatedEvent(db DBSimulatedEvent) (models.SimulatedEvent, error) {
	event := models.SimulatedEvent{
		Id:          db.Id,
		ChannelType: models.ChannelTypeFrom(db.ChannelType),
		Difficulty:  models.DifficultyFrom(db.Difficulty),
		CreatedAt:   db.CreatedAt,
	}
	if db.DeliveryMedium.Valid {
		event.DeliveryMedium = &db.DeliveryMedium.String
	}
	return event, nil
}
