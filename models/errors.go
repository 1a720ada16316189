package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// UnprocessableEntityError is rendered with the http status code 422
	UnprocessableEntityError = errors.New("unprocessable entity")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Outcome store errors
var (
	// ErrNotEnrolled is returned when an outcome operation targets an
	// (employee, event) pair with no existing outcome row.
	ErrNotEnrolled = errors.Wrap(NotFoundError, "employee is not enrolled in this event")

	// ErrInvalidTransition is reserved for a stricter transition policy; the
	// current transition table allows every transition.
	ErrInvalidTransition = errors.Wrap(UnprocessableEntityError, "outcome transition is not allowed")
)

// Call orchestration errors
var (
	ErrRecipientNotEnrollable = errors.Wrap(UnprocessableEntityError,
		"callee has no contactable channel or no organizational unit")
	ErrDuplicateParticipants = errors.Wrap(BadParameterError,
		"caller persona and callee are the same identity")

	// ErrUpstreamUnavailable covers any failed or timed out call to an
	// external collaborator (generative text, speech, dispatch).
	ErrUpstreamUnavailable = errors.New("upstream collaborator unavailable")

	// ErrVerdictUnparsable means the deferred verdict could not interpret the
	// objective or the model output. No outcome is written; the event stays
	// PENDING and the stalled-verdict sweep surfaces it to operators.
	ErrVerdictUnparsable = errors.New("deferred verdict output could not be parsed")
)
