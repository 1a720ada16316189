package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallTransitionsAreForwardOnly(t *testing.T) {
	assert.True(t, CanTransitionCall(CallQueued, CallInitiated))
	assert.True(t, CanTransitionCall(CallInitiated, CallRinging))
	assert.True(t, CanTransitionCall(CallRinging, CallInProgress))
	assert.True(t, CanTransitionCall(CallInProgress, CallCompleted))

	assert.False(t, CanTransitionCall(CallQueued, CallInProgress), "no skipping ahead")
	assert.False(t, CanTransitionCall(CallInProgress, CallRinging), "no going back")
	assert.False(t, CanTransitionCall(CallCompleted, CallInProgress), "COMPLETED is terminal")
	assert.False(t, CanTransitionCall(CallCompleted, CallCompleted))
}

func TestCallCompletesFromAnyLiveState(t *testing.T) {
	for _, from := range []CallStatus{CallQueued, CallInitiated, CallRinging, CallInProgress} {
		assert.True(t, CanTransitionCall(from, CallCompleted), string(from))
	}
}

func TestCallStatusFrom(t *testing.T) {
	assert.Equal(t, CallInProgress, CallStatusFrom("IN_PROGRESS"))
	assert.Equal(t, CallStatusUnknown, CallStatusFrom("DIALING"))
}
