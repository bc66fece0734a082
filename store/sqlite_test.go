package store

import (
	"context"
	"testing"

	"github.com/powderlabs/skitutor/domain"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", seedMessages)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestSQLiteStoreSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	session, err := s.GetOrCreate(ctx, "")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected a minted session id")
	}
	if len(session.Messages) != 3 || session.Messages[0].Role != domain.RoleSystem {
		t.Fatalf("unexpected seed: %+v", session.Messages)
	}

	if err := s.Append(ctx, session.ID, domain.Message{Role: domain.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	resolved, err := s.GetOrCreate(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if resolved.ID != session.ID {
		t.Fatalf("expected same session id, got %s and %s", session.ID, resolved.ID)
	}
	if len(resolved.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(resolved.Messages))
	}
	if last := resolved.Messages[3]; last.Role != domain.RoleUser || last.Content != "hi" {
		t.Fatalf("messages out of order: %+v", resolved.Messages)
	}
}

func TestSQLiteStoreAppendUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	if err := s.Append(ctx, "missing", domain.Message{Role: domain.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	messages, err := s.Messages(ctx, "missing")
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestSQLiteStoreClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	session, err := s.GetOrCreate(ctx, "")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if err := s.Clear(ctx, session.ID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := s.Clear(ctx, session.ID); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
	if err := s.Clear(ctx, ""); err != nil {
		t.Fatalf("Clear with empty id failed: %v", err)
	}

	messages, err := s.Messages(ctx, session.ID)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected cleared session, got %d messages", len(messages))
	}
}
