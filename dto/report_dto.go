package dto

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
)

type SubmitReportBody struct {
	EmployeeId  string    `json:"employee_id" binding:"required,uuid"`
	ChannelType string    `json:"channel_type" binding:"required"`
	WindowStart time.Time `json:"window_start" binding:"required"`
	WindowEnd   time.Time `json:"window_end" binding:"required"`
}

// SubmitReportResponse is what the reporting employee sees: always the same
// thank-you shape, never the reconciliation detail.
type SubmitReportResponse struct {
	Message   string `json:"message"`
	AttemptId string `json:"attempt_id"`
}

type ReportAttemptDto struct {
	Id                 string    `json:"id"`
	EmployeeId         string    `json:"employee_id"`
	ClaimedChannelType string    `json:"claimed_channel_type"`
	WindowStart        time.Time `json:"window_start"`
	WindowEnd          time.Time `json:"window_end"`
	SubmittedAt        time.Time `json:"submitted_at"`
	Status             string    `json:"status"`
	MatchedEventId     *string   `json:"matched_event_id,omitempty"`
	Note               string    `json:"note,omitempty"`
}

func AdaptReportAttemptDto(attempt models.ReportAttempt) ReportAttemptDto {
	dto := ReportAttemptDto{
		Id:                 attempt.Id.String(),
		EmployeeId:         attempt.EmployeeId.String(),
		ClaimedChannelType: attempt.ClaimedChannelType.String(),
		WindowStart:        attempt.WindowStart,
		WindowEnd:          attempt.WindowEnd,
		SubmittedAt:        attempt.SubmittedAt,
		Status:             attempt.Status.String(),
		Note:               attempt.Note,
	}
	if attempt.MatchedEventId != nil {
		eventId := attempt.MatchedEventId.String()
		dto.MatchedEventId = &eventId
	}
	return dto
}

type VerifyReportBody struct {
	EventId string  `json:"event_id" binding:"required,uuid"`
	Note    *string `json:"note"`
}

// ReviewReportBody is the optional payload of the validate and reject
// reviews, carrying the reviewer's free-text note.
type ReviewReportBody struct {
	Note *string `json:"note"`
}
