package repositories

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories/dbmodels"

	"github.com/google/uuid"
)

func (repo *LurelabDbRepository) CreateCall(ctx context.Context, exec Executor,
	call models.Call,
) error {
	var followUpChannel *string
	if call.FollowUpChannel != nil {
		channel := call.FollowUpChannel.String()
		followUpChannel = &channel
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_CALLS).
		Columns(
			"id",
			"employee_id",
			"event_id",
			"caller_persona_id",
			"objective",
			"pretext",
			"difficulty",
			"voice_profile_id",
			"follow_up_channel",
			"status",
			"started_at",
			"verdict_due_at",
			"created_at",
			"updated_at",
		).
		Values(
			call.Id,
			call.EmployeeId,
			call.EventId,
			call.CallerPersonaId,
			call.Objective,
			call.Pretext,
			string(call.Difficulty),
			call.VoiceProfileId,
			followUpChannel,
			call.Status.String(),
			call.StartedAt,
			call.VerdictDueAt,
			call.CreatedAt,
			call.UpdatedAt,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *LurelabDbRepository) GetCallById(ctx context.Context, exec Executor,
	callId uuid.UUID,
) (models.Call, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectCallColumns...).
		From(dbmodels.TABLE_CALLS).
		Where("id = ?", callId)

	return SqlToModel(ctx, exec, query, dbmodels.AdaptCall)
}

func (repo *LurelabDbRepository) UpdateCallStatus(ctx context.Context, exec Executor,
	callId uuid.UUID, status models.CallStatus, at time.Time,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_CALLS).
		Set("status", status.String()).
		Set("updated_at", at).
		Where("id = ?", callId)

	if status == models.CallCompleted {
		query = query.Set("completed_at", at)
	}

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *LurelabDbRepository) SetCallVerdict(ctx context.Context, exec Executor,
	callId uuid.UUID, verdict models.CallVerdict, at time.Time,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_CALLS).
		Set("verdict", string(verdict)).
		Set("updated_at", at).
		Where("id = ?", callId)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

// CreateCallTurn persists one transcript turn. The unique (call_id,
// turn_index) constraint makes the write idempotent per turn.
func (repo *LurelabDbRepository) CreateCallTurn(ctx context.Context, exec Executor,
	turn models.CallTurn,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_CALL_TURNS).
		Columns(
			"id",
			"call_id",
			"turn_index",
			"speaker",
			"content",
			"audio_key",
			"created_at",
		).
		Values(
			turn.Id,
			turn.CallId,
			turn.TurnIndex,
			string(turn.Speaker),
			turn.Content,
			turn.AudioKey,
			turn.CreatedAt,
		).
		Suffix("ON CONFLICT (call_id, turn_index) DO NOTHING")

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *LurelabDbRepository) ListCallTurns(ctx context.Context, exec Executor,
	callId uuid.UUID,
) ([]models.CallTurn, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectCallTurnColumns...).
		From(dbmodels.TABLE_CALL_TURNS).
		Where("call_id = ?", callId).
		OrderBy("turn_index ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptCallTurn)
}

func (repo *LurelabDbRepository) CountCallTurns(ctx context.Context, exec Executor,
	callId uuid.UUID,
) (int, error) {
	query := NewQueryBuilder().
		Select("count(*)").
		From(dbmodels.TABLE_CALL_TURNS).
		Where("call_id = ?", callId)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListStalledCalls returns calls whose verdict deadline passed more than
// grace ago without any verdict being written, plus calls whose verdict was
// unparsable, so that operators see events stuck in PENDING.
func (repo *LurelabDbRepository) ListStalledCalls(ctx context.Context, exec Executor,
	now time.Time, grace time.Duration,
) ([]models.Call, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectCallColumns...).
		From(dbmodels.TABLE_CALLS).
		Where("(verdict IS NULL AND verdict_due_at < ?) OR verdict = ?",
			now.Add(-grace), string(models.VerdictUnparsable)).
		OrderBy("verdict_due_at ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptCall)
}
