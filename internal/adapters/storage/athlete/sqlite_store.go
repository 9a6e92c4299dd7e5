package athlete

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage"
	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
)

const selectColumns = "SELECT id, team_id, full_name, grade, jersey_number FROM athlete"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new athlete Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Athlete by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Athlete, error) {
	var entity domain.Athlete
	err := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id).Scan(
		&entity.ID,
		&entity.TeamID,
		&entity.FullName,
		&entity.Grade,
		&entity.JerseyNumber,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Athlete{}, fmt.Errorf("athlete not found: %w", err)
	}
	return entity, err
}

// ListByTeam returns a team's roster ordered by full name.
func (s *SQLiteStore) ListByTeam(ctx context.Context, teamID string) ([]domain.Athlete, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE team_id = ? ORDER BY full_name ASC, id ASC", teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Athlete
	for rows.Next() {
		var entity domain.Athlete
		if err := rows.Scan(
			&entity.ID,
			&entity.TeamID,
			&entity.FullName,
			&entity.Grade,
			&entity.JerseyNumber,
		); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountByTeam returns the number of athletes on a team.
func (s *SQLiteStore) CountByTeam(ctx context.Context, teamID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM athlete WHERE team_id = ?", teamID).Scan(&n)
	return n, err
}

// Save persists an Athlete to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); team_id never changes on update
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Athlete) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO athlete (id, team_id, full_name, grade, jersey_number) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET full_name=excluded.full_name, grade=excluded.grade, jersey_number=excluded.jersey_number`,
		entity.ID,
		entity.TeamID,
		entity.FullName,
		entity.Grade,
		entity.JerseyNumber,
	)
	return err
}

// Delete removes an Athlete that belongs to teamID. Attendance rows cascade.
// PRE: id and teamID are non-empty
// POST: no athlete with id remains on teamID; deleting a missing athlete is not an error
func (s *SQLiteStore) Delete(ctx context.Context, teamID, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM athlete WHERE id = ? AND team_id = ?", id, teamID)
	return err
}
