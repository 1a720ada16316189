package calls

import (
	"sync"

	"github.com/lurelab/lurelab-backend/models"

	"github.com/google/uuid"
)

// session is the in-memory state of one live call: the transcript so far and
// a mutex serializing turn handling. All conversational state is keyed by
// call id; nothing is shared across calls.
type session struct {
	mu    sync.Mutex
	turns []models.CallTurn
}

// Registry holds the live call sessions of this process. A session missing
// from the registry (restart, another process) is rehydrated from the
// persisted transcript on first use.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*session),
	}
}

func (r *Registry) acquire(callId uuid.UUID) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[callId]
	if !ok {
		s = &session{}
		r.sessions[callId] = s
	}
	return s
}

func (r *Registry) drop(callId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, callId)
}
