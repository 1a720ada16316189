package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type CallStatus string

const (
	CallQueued     CallStatus = "QUEUED"
	CallInitiated  CallStatus = "INITIATED"
	CallRinging    CallStatus = "RINGING"
	CallInProgress CallStatus = "IN_PROGRESS"
	CallCompleted  CallStatus = "COMPLETED"

	CallStatusUnknown CallStatus = "UNKNOWN"
)

func CallStatusFrom(s string) CallStatus {
	switch CallStatus(s) {
	case CallQueued, CallInitiated, CallRinging, CallInProgress, CallCompleted:
		return CallStatus(s)
	}
	return CallStatusUnknown
}

func (s CallStatus) String() string {
	return string(s)
}

// CallTransitions encodes the call state machine. The dial sequence is
// forward-only; COMPLETED is reachable from every live state because the
// deferred verdict closes the call wherever it stalled, and is terminal.
var CallTransitions = map[CallStatus][]CallStatus{
	CallQueued:     {CallInitiated, CallCompleted},
	CallInitiated:  {CallRinging, CallCompleted},
	CallRinging:    {CallInProgress, CallCompleted},
	CallInProgress: {CallCompleted},
	CallCompleted:  {},
}

func CanTransitionCall(from, to CallStatus) bool {
	return slices.Contains(CallTransitions[from], to)
}

type CallVerdict string

const (
	VerdictObjectiveMet    CallVerdict = "OBJECTIVE_MET"
	VerdictObjectiveNotMet CallVerdict = "OBJECTIVE_NOT_MET"
	VerdictUnparsable      CallVerdict = "UNPARSABLE"
)

type Speaker string

const (
	SpeakerCaller   Speaker = "CALLER"
	SpeakerEmployee Speaker = "EMPLOYEE"
)

// Call is one live voice-phishing call, from dialing through a multi-turn
// spoken exchange to the deferred post-call verdict.
type Call struct {
	Id              uuid.UUID
	EmployeeId      uuid.UUID
	EventId         uuid.UUID
	CallerPersonaId uuid.UUID
	Objective       string
	Pretext         string
	Difficulty      Difficulty
	VoiceProfileId  string
	FollowUpChannel *ChannelType
	Status          CallStatus
	Verdict         *CallVerdict
	StartedAt       time.Time
	VerdictDueAt    time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CallTurn is one persisted utterance of a call transcript. Turns are
// written before the turn is acknowledged to the telephony layer, so the
// transcript on disk is never behind what the employee heard.
type CallTurn struct {
	Id        uuid.UUID
	CallId    uuid.UUID
	TurnIndex int
	Speaker   Speaker
	Content   string
	AudioKey  *string
	CreatedAt time.Time
}

type StartCallInput struct {
	EmployeeId      uuid.UUID
	CallerPersonaId uuid.UUID
	Objective       string
	Pretext         string
	Difficulty      Difficulty
	VoiceProfileId  string
	FollowUpChannel *ChannelType
}

// SpokenTurnResult is returned to the telephony layer after each employee
// utterance: the next caller line and the synthesized audio to play.
type SpokenTurnResult struct {
	CallId    uuid.UUID
	TurnIndex int
	Text      string
	AudioKey  string
}

type CallStatusView struct {
	Call      Call
	TurnCount int
}

// CallConfig groups the orchestrator tunables. VerdictDelay is the fixed
// interval between a call going IN_PROGRESS and the one-shot verdict
// evaluation; the timer fires whether or not the call is still active.
type CallConfig struct {
	VerdictDelay    time.Duration
	StalledGrace    time.Duration
	UpstreamTimeout time.Duration
}
