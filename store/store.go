// Package store defines the session store interface and implementations.
package store

import (
	"context"

	"github.com/powderlabs/skitutor/domain"
)

// Store owns conversation histories keyed by session id. Implementations are
// safe for concurrent use across sessions; serializing concurrent turns
// against the same session is the orchestrator's job.
type Store interface {
	// GetOrCreate resolves a session. When id is empty or unknown it mints a
	// fresh identifier and seeds the new session with the initial messages.
	// The returned session is a snapshot; later appends are not reflected in
	// its Messages slice.
	GetOrCreate(ctx context.Context, id string) (*domain.Session, error)

	// Append adds a message to the end of the session's history. Appending to
	// an unknown session is a silent no-op; callers always resolve the
	// session first.
	Append(ctx context.Context, id string, message domain.Message) error

	// Messages returns the session's full ordered history. Unknown sessions
	// yield an empty slice.
	Messages(ctx context.Context, id string) ([]domain.Message, error)

	// Clear removes the session. Clearing an unknown or empty id is a no-op,
	// not an error.
	Clear(ctx context.Context, id string) error

	Close() error
}
