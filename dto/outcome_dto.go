package dto

import (
	"time"

	"github.com/lurelab/lurelab-backend/models"
)

type ParticipantOutcomeDto struct {
	Id              string     `json:"id"`
	EmployeeId      string     `json:"employee_id"`
	EventId         string     `json:"event_id"`
	Result          string     `json:"result"`
	FailedAt        *time.Time `json:"failed_at,omitempty"`
	ReportedAt      *time.Time `json:"reported_at,omitempty"`
	IsSevereFailure bool       `json:"is_severe_failure"`
	HasFailedBefore bool       `json:"has_failed_before"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func AdaptParticipantOutcomeDto(outcome models.ParticipantOutcome) ParticipantOutcomeDto {
	return ParticipantOutcomeDto{
		Id:              outcome.Id.String(),
		EmployeeId:      outcome.EmployeeId.String(),
		EventId:         outcome.EventId.String(),
		Result:          outcome.Result.String(),
		FailedAt:        outcome.FailedAt,
		ReportedAt:      outcome.ReportedAt,
		IsSevereFailure: outcome.IsSevereFailure,
		HasFailedBefore: outcome.HasFailedBefore,
		CreatedAt:       outcome.CreatedAt,
		UpdatedAt:       outcome.UpdatedAt,
	}
}

type RecordFailureBody struct {
	FailedAt *time.Time `json:"failed_at"`
	Severe   *bool      `json:"severe"`
}

type RecordReportBody struct {
	ReportedAt *time.Time `json:"reported_at"`
}

type SetResultBody struct {
	Result          string     `json:"result" binding:"required"`
	FailedAt        *time.Time `json:"failed_at"`
	ReportedAt      *time.Time `json:"reported_at"`
	IsSevereFailure *bool      `json:"is_severe_failure"`
	HasFailedBefore *bool      `json:"has_failed_before"`
}
