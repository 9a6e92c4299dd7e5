package audit

import (
	"context"
	"database/sql"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage"
	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/audit"
)

// SQLiteStore implements the audit Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an audit event.
// PRE: event is valid
// POST: Event is persisted
func (s *SQLiteStore) Save(ctx context.Context, event domain.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_event (id, timestamp, action, team_id, description, ip_address) VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, storage.FormatTime(event.Timestamp), string(event.Action), event.TeamID, event.Description, event.IPAddress)
	return err
}

// List returns audit events with optional filtering.
// PRE: limit > 0, offset >= 0
// POST: Returns events ordered by timestamp desc, then id desc
func (s *SQLiteStore) List(ctx context.Context, filter Filter, limit, offset int) ([]domain.Event, error) {
	where, args := filter.where()
	query := `SELECT id, timestamp, action, team_id, description, ip_address FROM audit_event` + where +
		` ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Count returns the number of events matching filter.
func (s *SQLiteStore) Count(ctx context.Context, filter Filter) (int, error) {
	where, args := filter.where()
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_event`+where, args...).Scan(&n)
	return n, err
}

func (f Filter) where() (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	if f.TeamID != nil {
		clause += " AND team_id = ?"
		args = append(args, *f.TeamID)
	}
	if f.Action != nil {
		clause += " AND action = ?"
		args = append(args, string(*f.Action))
	}
	return clause, args
}

// scanEvents scans multiple rows into a slice of Events.
func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var timestamp string
		if err := rows.Scan(&e.ID, &timestamp, &e.Action, &e.TeamID, &e.Description, &e.IPAddress); err != nil {
			return nil, err
		}
		at, err := storage.ParseTime(timestamp)
		if err != nil {
			return nil, err
		}
		e.Timestamp = at
		events = append(events, e)
	}
	return events, rows.Err()
}
