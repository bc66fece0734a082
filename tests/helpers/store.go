package helpers

import (
	"testing"

	"github.com/powderlabs/skitutor/prompt"
	"github.com/powderlabs/skitutor/store"
)

func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:", prompt.InitialMessages)
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
