package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportAttemptStatus string

const (
	ReportAttemptPending               ReportAttemptStatus = "PENDING"
	ReportAttemptVerified              ReportAttemptStatus = "VERIFIED"
	ReportAttemptRejected              ReportAttemptStatus = "REJECTED"
	ReportAttemptValidatedWithoutEvent ReportAttemptStatus = "VALIDATED_WITHOUT_EVENT"

	ReportAttemptUnknown ReportAttemptStatus = "UNKNOWN"
)

func ReportAttemptStatusFrom(s string) ReportAttemptStatus {
	switch ReportAttemptStatus(s) {
	case ReportAttemptPending, ReportAttemptVerified, ReportAttemptRejected,
		ReportAttemptValidatedWithoutEvent:
		return ReportAttemptStatus(s)
	}
	return ReportAttemptUnknown
}

func (s ReportAttemptStatus) String() string {
	return string(s)
}

// Notes recorded on attempts that could not be reconciled automatically.
const (
	ReportNoteAllCandidatesClaimed = "all matching events were already claimed by a previous report from this employee, queued for review"
	ReportNoteNoCandidateEvents    = "no simulated event of the claimed type was found in the claimed window, queued for review"
)

// ReportThankYouMessage is always returned to the reporting employee,
// whatever the reconciliation outcome, so that a failed match never
// discourages future reporting.
const ReportThankYouMessage = "Thank you for reporting this message. Our security team will take a look."

// ReportAttempt is an employee's self-report claim. It is independent of any
// specific simulated event until reconciled.
type ReportAttempt struct {
	Id                 uuid.UUID
	EmployeeId         uuid.UUID
	ClaimedChannelType ChannelType
	WindowStart        time.Time
	WindowEnd          time.Time
	SubmittedAt        time.Time
	Status             ReportAttemptStatus
	MatchedEventId     *uuid.UUID
	Note               string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type SubmitReportInput struct {
	EmployeeId         uuid.UUID
	ClaimedChannelType ChannelType
	WindowStart        time.Time
	WindowEnd          time.Time
}

// SubmitReportResult carries both the stored attempt (for the admin surface)
// and the user-facing message (always success shaped).
type SubmitReportResult struct {
	Attempt ReportAttempt
	Message string
}

// ReconciliationConfig holds the reconciliation tunables. The clock skew
// compensation is subtracted from both window bounds to absorb known
// client/server drift before querying candidate events.
type ReconciliationConfig struct {
	ClockSkewCompensation time.Duration
}
