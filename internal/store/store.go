// Package store keeps the local session history in SQLite.
//
// History is written after each request and browsed by the history command.
// It is never consulted to answer a request.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/promptcraft/internal"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrAmbiguous = errors.New("session id prefix is ambiguous")
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		language TEXT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		input TEXT NOT NULL,
		output TEXT NOT NULL DEFAULT '',
		error_kind TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSession records sess and returns its id. A missing id or timestamp is
// filled in.
func (s *Store) SaveSession(ctx context.Context, sess internal.Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.Timestamp.IsZero() {
		sess.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, mode, language, provider, model, input, output, error_kind, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Mode, sess.Language, sess.Provider, sess.Model,
		normalizeText(sess.Input), sess.Output, sess.ErrorKind, sess.Timestamp.UTC())
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

const sessionColumns = `id, mode, language, provider, model, input, output, error_kind, created_at`

// ListSessions returns up to limit sessions, newest first. A limit of zero or
// less returns everything.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]internal.Session, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []internal.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// GetSession looks a session up by its full id or by a unique id prefix.
func (s *Store) GetSession(ctx context.Context, id string) (*internal.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id = ? DESC LIMIT 2`,
		id, escapeLike(id)+"%", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*internal.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case found[0].ID == id:
		return found[0], nil
	case len(found) > 1:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
	return found[0], nil
}

// DeleteSession removes the session with the given id or unique id prefix.
func (s *Store) DeleteSession(ctx context.Context, id string) (string, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sess.ID); err != nil {
		return "", err
	}
	return sess.ID, nil
}

// ClearSessions removes all history.
func (s *Store) ClearSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats summarises the stored history.
type Stats struct {
	Total   int
	Enhance int
	Craft   int
	Failed  int
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN mode = 'enhance' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN mode = 'craft' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN error_kind != '' THEN 1 ELSE 0 END), 0)
		FROM sessions`).Scan(
		&stats.Total,
		&stats.Enhance,
		&stats.Craft,
		&stats.Failed,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*internal.Session, error) {
	var sess internal.Session
	if err := row.Scan(&sess.ID, &sess.Mode, &sess.Language, &sess.Provider, &sess.Model,
		&sess.Input, &sess.Output, &sess.ErrorKind, &sess.Timestamp); err != nil {
		return nil, err
	}
	return &sess, nil
}

// normalizeText trims whitespace and applies Unicode NFC normalization.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
