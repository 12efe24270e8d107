package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tomatillo/internal/core/model"
	"tomatillo/internal/core/pomodoro"

	_ "modernc.org/sqlite"
)

const sessionDBFileName = "sessions.db"

// SessionLog persists the pomodoro cycle counter and an append-only
// history of completed sessions in SQLite. It implements the state
// machine's SessionStore contract.
type SessionLog struct {
	db *sql.DB
}

// StatsRow aggregates completed sessions for one task/kind pair.
type StatsRow struct {
	Task    model.TaskType
	Kind    pomodoro.SessionKind
	Count   int
	Minutes int
}

// DefaultSessionLogPath returns the per-user database location.
func DefaultSessionLogPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, sessionDBFileName), nil
}

// OpenSessionLog opens (creating if needed) the session database.
func OpenSessionLog(dbPath string) (*SessionLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sessionLog := &SessionLog{db: db}
	if err := sessionLog.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sessionLog, nil
}

// Close releases the underlying database handle.
func (sessionLog *SessionLog) Close() error {
	return sessionLog.db.Close()
}

func (sessionLog *SessionLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS cycle_state (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  completed_sessions INTEGER NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  task TEXT NOT NULL,
  kind TEXT NOT NULL,
  minutes INTEGER NOT NULL,
  finished_at TEXT NOT NULL
);
`
	if _, err := sessionLog.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session tables: %w", err)
	}
	return nil
}

// CompletedSessions returns the persisted cycle counter, zero when the
// database has never been written.
func (sessionLog *SessionLog) CompletedSessions() (int, error) {
	var count int
	err := sessionLog.db.QueryRow(
		`SELECT completed_sessions FROM cycle_state WHERE id = 1`,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read completed sessions: %w", err)
	}
	return count, nil
}

// SaveCompletedSessions upserts the cycle counter.
func (sessionLog *SessionLog) SaveCompletedSessions(count int) error {
	const stmt = `
INSERT INTO cycle_state (id, completed_sessions, updated_at)
VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  completed_sessions=excluded.completed_sessions,
  updated_at=excluded.updated_at;
`
	if _, err := sessionLog.db.Exec(stmt, count, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save completed sessions: %w", err)
	}
	return nil
}

// RecordCompletion appends one completed session to the history.
func (sessionLog *SessionLog) RecordCompletion(task model.TaskType, kind pomodoro.SessionKind, minutes int, finishedAt time.Time) error {
	const stmt = `
INSERT INTO sessions (task, kind, minutes, finished_at)
VALUES (?, ?, ?, ?);
`
	if _, err := sessionLog.db.Exec(stmt, string(task), string(kind), minutes, finishedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Summary aggregates the history since the given time, grouped by task
// and session kind.
func (sessionLog *SessionLog) Summary(since time.Time) ([]StatsRow, error) {
	const query = `
SELECT task, kind, COUNT(*), SUM(minutes)
FROM sessions
WHERE finished_at >= ?
GROUP BY task, kind
ORDER BY task, kind;
`
	rows, err := sessionLog.db.Query(query, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query session summary: %w", err)
	}
	defer rows.Close()

	var summary []StatsRow
	for rows.Next() {
		var row StatsRow
		var task, kind string
		if err := rows.Scan(&task, &kind, &row.Count, &row.Minutes); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		row.Task = model.TaskType(task)
		row.Kind = pomodoro.SessionKind(kind)
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summary: %w", err)
	}
	return summary, nil
}
