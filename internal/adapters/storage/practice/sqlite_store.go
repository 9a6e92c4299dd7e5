package practice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage"
	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
)

const selectColumns = "SELECT id, team_id, date, type, title FROM practice"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new practice Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPractice(row scanner) (domain.Practice, error) {
	var entity domain.Practice
	var date string
	var title sql.NullString
	if err := row.Scan(&entity.ID, &entity.TeamID, &date, &entity.Type, &title); err != nil {
		return domain.Practice{}, err
	}
	t, err := storage.ParseTime(date)
	if err != nil {
		return domain.Practice{}, err
	}
	entity.Date = t
	entity.Title = title.String
	return entity, nil
}

// GetByID retrieves a Practice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Practice, error) {
	entity, err := scanPractice(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Practice{}, fmt.Errorf("practice not found: %w", err)
	}
	return entity, err
}

// ListByTeam returns a team's sessions, most recent first.
func (s *SQLiteStore) ListByTeam(ctx context.Context, teamID string) ([]domain.Practice, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE team_id = ? ORDER BY date DESC, id ASC", teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Practice
	for rows.Next() {
		entity, err := scanPractice(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountByTeam returns the number of sessions logged for a team.
func (s *SQLiteStore) CountByTeam(ctx context.Context, teamID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM practice WHERE team_id = ?", teamID).Scan(&n)
	return n, err
}

// Save persists a Practice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Practice) error {
	var title any
	if entity.Title != "" {
		title = entity.Title
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO practice (id, team_id, date, type, title) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date=excluded.date, type=excluded.type, title=excluded.title`,
		entity.ID,
		entity.TeamID,
		storage.FormatTime(entity.Date),
		entity.Type,
		title,
	)
	return err
}
