package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage"
	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

const selectColumns = "SELECT id, name, level, grade_range, pin, season_label, google_sheet_url FROM team"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new team Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTeam(row scanner) (domain.Team, error) {
	var entity domain.Team
	var sheet sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Level,
		&entity.GradeRange,
		&entity.PIN,
		&entity.SeasonLabel,
		&sheet,
	)
	entity.GoogleSheetURL = sheet.String
	return entity, err
}

// GetByID retrieves a Team by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Team, error) {
	entity, err := scanTeam(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Team{}, fmt.Errorf("team not found: %w", err)
	}
	return entity, err
}

// GetByName retrieves the first Team with the exact given name.
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Team, error) {
	entity, err := scanTeam(s.db.QueryRowContext(ctx, selectColumns+" WHERE name = ? ORDER BY id LIMIT 1", name))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Team{}, fmt.Errorf("team not found: %w", err)
	}
	return entity, err
}

// List returns every team ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Team
	for rows.Next() {
		entity, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a Team to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Team) error {
	fields := []string{"id", "name", "level", "grade_range", "pin", "season_label", "google_sheet_url"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "level=excluded.level", "grade_range=excluded.grade_range", "pin=excluded.pin", "season_label=excluded.season_label", "google_sheet_url=excluded.google_sheet_url"}

	query := fmt.Sprintf(
		"INSERT INTO team (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var sheet any
	if entity.GoogleSheetURL != "" {
		sheet = entity.GoogleSheetURL
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Level,
		entity.GradeRange,
		entity.PIN,
		entity.SeasonLabel,
		sheet,
	)
	return err
}
