// Package draftlog keeps an append-only sqlite journal of committed draft
// mutations for post-draft review. Journal writes are best-effort; the
// session treats a failed write as a warning, not a rejection.
package draftlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Actions recorded in the journal.
const (
	ActionPick = "PICK"
	ActionUndo = "UNDO"
	ActionDrop = "DROP"
)

const schema = `
CREATE TABLE IF NOT EXISTS draft_events (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	action      TEXT NOT NULL,
	pick        INTEGER NOT NULL,
	player      TEXT NOT NULL,
	position    TEXT NOT NULL,
	slot        TEXT NOT NULL,
	team        TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_draft_events_session ON draft_events (session_id, recorded_at);
`

// Entry is one journal row. Slot is empty for picks by other teams and for
// drops that freed a bench slot without a pick number.
type Entry struct {
	ID        uuid.UUID
	SessionID string
	Action    string
	Pick      int
	Player    string
	Position  string
	Slot      string
	Team      string
	At        time.Time
}

// Journal is a sqlite-backed event log.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize draft journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends one event.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO draft_events (id, session_id, action, pick, player, position, slot, team, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.SessionID, e.Action, e.Pick, e.Player, e.Position, e.Slot, e.Team, e.At.UTC())
	if err != nil {
		return fmt.Errorf("failed to record draft event: %w", err)
	}
	return nil
}

// RecentPicks returns the newest n events for a session, newest first.
func (j *Journal) RecentPicks(ctx context.Context, sessionID string, n int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, session_id, action, pick, player, position, slot, team, recorded_at
		 FROM draft_events WHERE session_id = ?
		 ORDER BY recorded_at DESC, pick DESC LIMIT ?`,
		sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query draft events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var id string
		if err := rows.Scan(&id, &e.SessionID, &e.Action, &e.Pick, &e.Player, &e.Position, &e.Slot, &e.Team, &e.At); err != nil {
			return nil, fmt.Errorf("failed to scan draft event: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse draft event id: %w", err)
		}
		e.ID = parsed
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read draft events: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
