// Package store handles SQLite persistence of finished typing sessions.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Session is one finished typing session as recorded in history.
type Session struct {
	ID         int64
	FinishedAt time.Time
	Source     string
	Typed      int
	Correct    int
	Incorrect  int
	DurationMs int64
	Score      float64
	Streak     int
	Multiplier float64
}

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			finished_at TEXT NOT NULL,
			source TEXT NOT NULL,
			typed INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			score REAL NOT NULL,
			streak INTEGER NOT NULL,
			multiplier REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_finished_at ON sessions(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession records a finished session.
func (s *Store) InsertSession(ctx context.Context, sess Session) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (finished_at, source, typed, correct, incorrect, duration_ms, score, streak, multiplier)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.FinishedAt.Format(time.RFC3339Nano),
		sess.Source,
		sess.Typed,
		sess.Correct,
		sess.Incorrect,
		sess.DurationMs,
		sess.Score,
		sess.Streak,
		sess.Multiplier,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns sessions ordered oldest-first. A positive limit
// keeps only the most recent sessions.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, finished_at, source, typed, correct, incorrect, duration_ms, score, streak, multiplier
		 FROM sessions
		 ORDER BY finished_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var finishedAt string
		if err := rows.Scan(&sess.ID, &finishedAt, &sess.Source, &sess.Typed, &sess.Correct,
			&sess.Incorrect, &sess.DurationMs, &sess.Score, &sess.Streak, &sess.Multiplier); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		sess.FinishedAt = parsed
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[len(sessions)-limit:]
	}
	return sessions, nil
}
