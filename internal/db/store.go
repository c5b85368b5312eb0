package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/minehint/internal/minefield"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Session is one parsing run over a single input source.
type Session struct {
	SessionID   string     `json:"session_id"`
	Source      string     `json:"source"`
	Orientation string     `json:"orientation"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	FieldCount  int        `json:"field_count"`
	Error       string     `json:"error,omitempty"`
}

// FieldRecord is a rendered field as stored for a session.
type FieldRecord struct {
	SessionID string `json:"session_id"`
	FieldID   string `json:"field_id"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Mines     int    `json:"mines"`
	Rendering string `json:"rendering"`
}

// Field rebuilds a computed field from the stored rendering. Hint digits
// are read back as safe cells, so the result renders identically.
func (r FieldRecord) Field() (*minefield.Field, error) {
	lines := strings.Split(strings.TrimRight(r.Rendering, "\n"), "\n")
	if len(lines) != r.Rows+1 {
		return nil, fmt.Errorf("mine field #%s: stored rendering has %d grid lines, want %d", r.FieldID, len(lines)-1, r.Rows)
	}
	f, err := minefield.NewField(r.FieldID, r.Rows, r.Cols, minefield.Rows)
	if err != nil {
		return nil, err
	}
	for _, line := range lines[1:] {
		pattern := strings.Map(func(c rune) rune {
			if c >= '0' && c <= '9' {
				return '.'
			}
			return c
		}, line)
		if err := f.AcceptRow(pattern); err != nil {
			return nil, err
		}
	}
	f.Finalize()
	return f, nil
}

// BeginSession inserts a new session and returns its generated ID.
func (db *DB) BeginSession(source string, o minefield.Orientation) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO sessions (session_id, source, orientation, started_at) VALUES (?, ?, ?, ?)`,
		id, source, o.String(), db.clock.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to begin session: %w", err)
	}
	return id, nil
}

// RecordField stores a finalized field under sessionID.
func (db *DB) RecordField(sessionID string, f *minefield.Field) error {
	_, err := db.Exec(
		`INSERT INTO fields (session_id, field_id, "rows", cols, mines, rendering) VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, f.ID(), f.Rows(), f.Cols(), f.MineCount(), f.Render(),
	)
	if err != nil {
		return fmt.Errorf("failed to record mine field #%s: %w", f.ID(), err)
	}
	return nil
}

// FinishSession stamps the end time and field count. A non-nil runErr is
// stored as the session's error text.
func (db *DB) FinishSession(sessionID string, fieldCount int, runErr error) error {
	var errText sql.NullString
	if runErr != nil {
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}
	res, err := db.Exec(
		`UPDATE sessions SET finished_at = ?, field_count = ?, error = ? WHERE session_id = ?`,
		db.clock.Now().UnixNano(), fieldCount, errText, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

// Sessions returns up to limit sessions, newest first. A limit of zero or
// less returns them all.
func (db *DB) Sessions(limit int) ([]Session, error) {
	query := `SELECT session_id, source, orientation, started_at, finished_at, field_count, error
		FROM sessions ORDER BY started_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Session returns a single session by ID.
func (db *DB) Session(sessionID string) (Session, error) {
	row := db.QueryRow(`SELECT session_id, source, orientation, started_at, finished_at, field_count, error
		FROM sessions WHERE session_id = ?`, sessionID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(sc scanner) (Session, error) {
	var (
		s        Session
		started  int64
		finished sql.NullInt64
		errText  sql.NullString
	)
	if err := sc.Scan(&s.SessionID, &s.Source, &s.Orientation, &started, &finished, &s.FieldCount, &errText); err != nil {
		return Session{}, err
	}
	s.StartedAt = time.Unix(0, started).UTC()
	if finished.Valid {
		t := time.Unix(0, finished.Int64).UTC()
		s.FinishedAt = &t
	}
	s.Error = errText.String
	return s, nil
}

// Fields returns the fields recorded for sessionID in emission order.
func (db *DB) Fields(sessionID string) ([]FieldRecord, error) {
	rows, err := db.Query(`SELECT session_id, field_id, "rows", cols, mines, rendering
		FROM fields WHERE session_id = ? ORDER BY rowid`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []FieldRecord{}
	for rows.Next() {
		var r FieldRecord
		if err := rows.Scan(&r.SessionID, &r.FieldID, &r.Rows, &r.Cols, &r.Mines, &r.Rendering); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FieldSink records each emitted field under one session. It satisfies
// parse.Sink.
type FieldSink struct {
	DB        *DB
	SessionID string
	count     int
}

func (s *FieldSink) Emit(f *minefield.Field) error {
	if err := s.DB.RecordField(s.SessionID, f); err != nil {
		return err
	}
	s.count++
	return nil
}

// Count returns the number of fields recorded so far.
func (s *FieldSink) Count() int { return s.count }
