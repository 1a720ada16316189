package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type OutcomeResult string

const (
	OutcomePending  OutcomeResult = "PENDING"
	OutcomeFailed   OutcomeResult = "FAILED"
	OutcomeReported OutcomeResult = "REPORTED"

	OutcomeUnknown OutcomeResult = "UNKNOWN"
)

func OutcomeResultFrom(s string) OutcomeResult {
	switch OutcomeResult(s) {
	case OutcomePending, OutcomeFailed, OutcomeReported:
		return OutcomeResult(s)
	}
	return OutcomeUnknown
}

func (r OutcomeResult) String() string {
	return string(r)
}

// OutcomeTransitions is the transition table for participant outcomes.
// Every transition is currently allowed, matching the historical permissive
// behavior (an employee can fail then report, and administrative corrections
// can move a reported outcome back to failed). Tightening the policy is a
// change to this table, not to the store.
var OutcomeTransitions = map[OutcomeResult][]OutcomeResult{
	OutcomePending:  {OutcomeFailed, OutcomeReported},
	OutcomeFailed:   {OutcomeFailed, OutcomeReported, OutcomePending},
	OutcomeReported: {OutcomeFailed, OutcomeReported, OutcomePending},
}

func CanTransitionOutcome(from, to OutcomeResult) bool {
	return slices.Contains(OutcomeTransitions[from], to)
}

// ParticipantOutcome is the result of exposing one employee to one simulated
// event. There is at most one row per (employee, event) pair.
//
// HasFailedBefore is sticky: once the employee has failed on this event it
// stays true, even when the current result later becomes REPORTED.
// IsSevereFailure is only meaningful when a failure occurred, currently or
// historically, and likewise survives a later report.
type ParticipantOutcome struct {
	Id              uuid.UUID
	EmployeeId      uuid.UUID
	EventId         uuid.UUID
	Result          OutcomeResult
	FailedAt        *time.Time
	ReportedAt      *time.Time
	IsSevereFailure bool
	HasFailedBefore bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SetResultInput is the administrative direct-set used by campaign tooling.
// It is the only write path allowed to create the outcome row (first-time
// enrollment).
type SetResultInput struct {
	EmployeeId      uuid.UUID
	EventId         uuid.UUID
	Result          OutcomeResult
	FailedAt        *time.Time
	ReportedAt      *time.Time
	IsSevereFailure *bool
	HasFailedBefore *bool
}

type OutcomeFilter struct {
	EmployeeId  *uuid.UUID
	AreaId      *uuid.UUID
	ChannelType *ChannelType
	Result      *OutcomeResult
	From        *time.Time
	To          *time.Time
}
