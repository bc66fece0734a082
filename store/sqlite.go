package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/powderlabs/skitutor/domain"
)

// SQLiteStore implements Store using SQLite, for deployments that want
// histories to survive a restart. Message order is the insertion order.
type SQLiteStore struct {
	db   *sql.DB
	seed func() []domain.Message
}

// NewSQLiteStore opens the database and runs migrations. seed produces the
// initial history for every new session.
func NewSQLiteStore(dsn string, seed func() []domain.Message) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db, seed: seed}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

var _ Store = (*SQLiteStore)(nil)

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// GetOrCreate resolves or mints a session.
func (s *SQLiteStore) GetOrCreate(ctx context.Context, id string) (*domain.Session, error) {
	if id != "" {
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM sessions WHERE session_id = ?`, id).Scan(&exists)
		if err == nil {
			messages, err := s.Messages(ctx, id)
			if err != nil {
				return nil, err
			}
			return &domain.Session{ID: id, Messages: messages}, nil
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
	}

	newID := uuid.NewString()
	messages := s.seed()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (session_id) VALUES (?)`, newID); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	for _, m := range messages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (session_id, role, content) VALUES (?, ?, ?)`,
			newID, m.Role, m.Content); err != nil {
			return nil, fmt.Errorf("failed to seed session: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	return &domain.Session{ID: newID, Messages: messages}, nil
}

// Append adds a message to an existing session; unknown ids are ignored.
func (s *SQLiteStore) Append(ctx context.Context, id string, message domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content)
		 SELECT ?, ?, ? WHERE EXISTS (SELECT 1 FROM sessions WHERE session_id = ?)`,
		id, message.Role, message.Content, id)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// Messages returns the session's full ordered history.
func (s *SQLiteStore) Messages(ctx context.Context, id string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM messages WHERE session_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Clear removes the session and its messages if present.
func (s *SQLiteStore) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
