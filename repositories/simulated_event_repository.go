package repositories

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories/dbmodels"

	"github.com/google/uuid"
)

func (repo *LurelabDbRepository) CreateSimulatedEvent(ctx context.Context, exec Executor,
	eventId uuid.UUID, input models.CreateSimulatedEventInput, createdAt time.Time,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_SIMULATED_EVENTS).
		Columns(
			"id",
			"channel_type",
			"difficulty",
			"delivery_medium",
			"created_at",
		).
		Values(
			eventId,
			input.ChannelType.String(),
			string(input.Difficulty),
			input.DeliveryMedium,
			createdAt,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *LurelabDbRepository) GetSimulatedEventById(ctx context.Context, exec Executor,
	eventId uuid.UUID,
) (models.SimulatedEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSimulatedEventColumns...).
		From(dbmodels.TABLE_SIMULATED_EVENTS).
		Where("id = ?", eventId)

	return SqlToModel(ctx, exec, query, dbmodels.AdaptSimulatedEvent)
}

// ListEnrolledEventsInWindow returns the simulated events of the given type
// that enroll the employee and were created inside the window, oldest first.
// This is the candidate list for self-report reconciliation.
func (repo *LurelabDbRepository) ListEnrolledEventsInWindow(ctx context.Context, exec Executor,
	employeeId uuid.UUID, channelType models.ChannelType, windowStart, windowEnd time.Time,
) ([]models.SimulatedEvent, error) {
	query := NewQueryBuilder().
		Select(pqColumnsWithPrefix(dbmodels.SelectSimulatedEventColumns, "e")...).
		From(dbmodels.TABLE_SIMULATED_EVENTS + " AS e").
		Join(dbmodels.TABLE_PARTICIPANT_OUTCOMES + " AS o ON o.event_id = e.id").
		Where("o.employee_id = ?", employeeId).
		Where("e.channel_type = ?", channelType.String()).
		Where("e.created_at >= ?", windowStart).
		Where("e.created_at <= ?", windowEnd).
		OrderBy("e.created_at ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptSimulatedEvent)
}

func pqColumnsWithPrefix(columns []string, prefix string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = prefix + "." + column
	}
	return out
}
