package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/powderlabs/skitutor/domain"
)

// MemoryStore keeps sessions in a mutex-guarded map. Sessions live for the
// process lifetime unless explicitly cleared; there is no expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Message
	seed     func() []domain.Message
}

// NewMemoryStore creates an in-memory store. seed produces the initial
// history for every new session.
func NewMemoryStore(seed func() []domain.Message) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]domain.Message),
		seed:     seed,
	}
}

var _ Store = (*MemoryStore)(nil)

// GetOrCreate resolves or mints a session.
func (s *MemoryStore) GetOrCreate(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if messages, ok := s.sessions[id]; ok {
			return &domain.Session{ID: id, Messages: copyMessages(messages)}, nil
		}
	}

	newID := uuid.NewString()
	messages := s.seed()
	s.sessions[newID] = messages
	return &domain.Session{ID: newID, Messages: copyMessages(messages)}, nil
}

// Append adds a message to an existing session; unknown ids are ignored.
func (s *MemoryStore) Append(ctx context.Context, id string, message domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if messages, ok := s.sessions[id]; ok {
		s.sessions[id] = append(messages, message)
	}
	return nil
}

// Messages returns a copy of the session's ordered history.
func (s *MemoryStore) Messages(ctx context.Context, id string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyMessages(s.sessions[id]), nil
}

// Clear removes the session if present.
func (s *MemoryStore) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func copyMessages(messages []domain.Message) []domain.Message {
	out := make([]domain.Message, len(messages))
	copy(out, messages)
	return out
}
