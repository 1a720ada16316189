package dto

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
)

type StartCallBody struct {
	EmployeeId      string  `json:"employee_id" binding:"required,uuid"`
	CallerPersonaId string  `json:"caller_persona_id" binding:"required,uuid"`
	Objective       string  `json:"objective" binding:"required"`
	Pretext         string  `json:"pretext" binding:"required"`
	Difficulty      string  `json:"difficulty" binding:"required"`
	VoiceProfileId  string  `json:"voice_profile_id" binding:"required"`
	FollowUpChannel *string `json:"follow_up_channel"`
}

type CallDto struct {
	Id              string     `json:"id"`
	EmployeeId      string     `json:"employee_id"`
	EventId         string     `json:"event_id"`
	CallerPersonaId string     `json:"caller_persona_id"`
	Objective       string     `json:"objective"`
	Pretext         string     `json:"pretext"`
	Difficulty      string     `json:"difficulty"`
	VoiceProfileId  string     `json:"voice_profile_id"`
	FollowUpChannel *string    `json:"follow_up_channel,omitempty"`
	Status          string     `json:"status"`
	Verdict         *string    `json:"verdict,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	VerdictDueAt    time.Time  `json:"verdict_due_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func AdaptCallDto(call models.Call) CallDto {
	dto := CallDto{
		Id:              call.Id.String(),
		EmployeeId:      call.EmployeeId.String(),
		EventId:         call.EventId.String(),
		CallerPersonaId: call.CallerPersonaId.String(),
		Objective:       call.Objective,
		Pretext:         call.Pretext,
		Difficulty:      string(call.Difficulty),
		VoiceProfileId:  call.VoiceProfileId,
		Status:          call.Status.String(),
		StartedAt:       call.StartedAt,
		VerdictDueAt:    call.VerdictDueAt,
		CompletedAt:     call.CompletedAt,
	}
	if call.FollowUpChannel != nil {
		channel := call.FollowUpChannel.String()
		dto.FollowUpChannel = &channel
	}
	if call.Verdict != nil {
		verdict := string(*call.Verdict)
		dto.Verdict = &verdict
	}
	return dto
}

// SpokenTurnBody carries one employee utterance, either already transcribed
// by the telephony layer or as a stored audio handle to transcribe here.
type SpokenTurnBody struct {
	Transcript string `json:"transcript"`
	AudioKey   string `json:"audio_key"`
}

type SpokenTurnDto struct {
	CallId    string `json:"call_id"`
	TurnIndex int    `json:"turn_index"`
	Text      string `json:"text"`
	AudioKey  string `json:"audio_key"`
}

func AdaptSpokenTurnDto(result models.SpokenTurnResult) SpokenTurnDto {
	return SpokenTurnDto{
		CallId:    result.CallId.String(),
		TurnIndex: result.TurnIndex,
		Text:      result.Text,
		AudioKey:  result.AudioKey,
	}
}

type CallStatusDto struct {
	Call      CallDto `json:"call"`
	TurnCount int     `json:"turn_count"`
}

func AdaptCallStatusDto(view models.CallStatusView) CallStatusDto {
	return CallStatusDto{
		Call:      AdaptCallDto(view.Call),
		TurnCount: view.TurnCount,
	}
}
