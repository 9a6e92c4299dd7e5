package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage"
	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Attendance record by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping both domain.ErrNotFound and sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Attendance, error) {
	var entity domain.Attendance
	err := s.db.QueryRowContext(ctx,
		"SELECT id, athlete_id, practice_id, status FROM attendance WHERE id = ?", id,
	).Scan(&entity.ID, &entity.AthleteID, &entity.PracticeID, &entity.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Attendance{}, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return entity, err
}

// CreateMissing bulk-inserts records in one transaction.
// PRE: every record has been validated
// POST: exactly one row exists per (athlete_id, practice_id) in records; existing rows are untouched
func (s *SQLiteStore) CreateMissing(ctx context.Context, records []domain.Attendance) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO attendance (id, athlete_id, practice_id, status) VALUES (?, ?, ?, ?)
		ON CONFLICT(athlete_id, practice_id) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range records {
		res, err := stmt.ExecContext(ctx, r.ID, r.AthleteID, r.PracticeID, r.Status)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// UpdateStatus sets the status of one record.
// PRE: status is a valid attendance status
// POST: returns an error wrapping domain.ErrNotFound when no record has id
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE attendance SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update attendance %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListDetailed applies filter in SQL and returns annotated records.
func (s *SQLiteStore) ListDetailed(ctx context.Context, teamID string, filter stats.Filter) ([]stats.Record, error) {
	where := []string{"p.team_id = ?"}
	args := []any{teamID}
	if filter.PracticeID != "" {
		where = append(where, "p.id = ?")
		args = append(args, filter.PracticeID)
	}
	if !filter.Start.IsZero() {
		where = append(where, "p.date >= ?")
		args = append(args, storage.FormatTime(filter.Start))
	}
	if !filter.End.IsZero() {
		where = append(where, "p.date <= ?")
		args = append(args, storage.FormatTime(filter.End))
	}

	query := `SELECT at.id, at.status, p.id, p.date, p.type, p.title, a.id, a.full_name, a.grade, a.jersey_number
		FROM attendance at
		JOIN practice p ON p.id = at.practice_id
		JOIN athlete a ON a.id = at.athlete_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY p.date ASC, a.full_name ASC, at.id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []stats.Record
	for rows.Next() {
		var rec stats.Record
		var date string
		var title sql.NullString
		if err := rows.Scan(
			&rec.AttendanceID,
			&rec.Status,
			&rec.PracticeID,
			&date,
			&rec.PracticeType,
			&title,
			&rec.AthleteID,
			&rec.AthleteName,
			&rec.Grade,
			&rec.JerseyNumber,
		); err != nil {
			return nil, err
		}
		if rec.PracticeDate, err = storage.ParseTime(date); err != nil {
			return nil, err
		}
		rec.PracticeTitle = title.String
		results = append(results, rec)
	}
	return results, rows.Err()
}
