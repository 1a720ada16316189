package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeTransitionsArePermissive(t *testing.T) {
	for _, from := range []OutcomeResult{OutcomePending, OutcomeFailed, OutcomeReported} {
		assert.True(t, CanTransitionOutcome(from, OutcomeFailed), "%s to FAILED", from)
		assert.True(t, CanTransitionOutcome(from, OutcomeReported), "%s to REPORTED", from)
	}

	// Reverting to PENDING is an administrative correction, allowed from
	// any state except PENDING itself.
	assert.False(t, CanTransitionOutcome(OutcomePending, OutcomePending))
	assert.True(t, CanTransitionOutcome(OutcomeFailed, OutcomePending))
	assert.True(t, CanTransitionOutcome(OutcomeReported, OutcomePending))
}

func TestOutcomeResultFrom(t *testing.T) {
	assert.Equal(t, OutcomeFailed, OutcomeResultFrom("FAILED"))
	assert.Equal(t, OutcomeReported, OutcomeResultFrom("REPORTED"))
	assert.Equal(t, OutcomeUnknown, OutcomeResultFrom("failed"))
	assert.Equal(t, OutcomeUnknown, OutcomeResultFrom(""))
}
