package calls

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lurelab/lurelab-backend/models"
)

func TestRegistryReturnsSameSessionPerCall(t *testing.T) {
	registry := NewRegistry()
	callId := uuid.New()

	first := registry.acquire(callId)
	second := registry.acquire(callId)
	other := registry.acquire(uuid.New())

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestRegistryDropForgetsTurns(t *testing.T) {
	registry := NewRegistry()
	callId := uuid.New()

	s := registry.acquire(callId)
	s.turns = []models.CallTurn{{CallId: callId}}

	registry.drop(callId)

	assert.Empty(t, registry.acquire(callId).turns)
}

func TestRegistryConcurrentAcquire(t *testing.T) {
	registry := NewRegistry()
	callId := uuid.New()

	var wg sync.WaitGroup
	sessions := make([]*session, 20)
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions[i] = registry.acquire(callId)
		}()
	}
	wg.Wait()

	for _, s := range sessions {
		assert.Same(t, sessions[0], s)
	}
}
