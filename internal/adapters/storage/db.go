package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// TimeLayout is the fixed-width UTC layout used for every stored timestamp.
// Lexical order of formatted values equals chronological order.
const TimeLayout = "2006-01-02T15:04:05Z"

// FormatTime renders t for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

// migration is a single forward schema step.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "baseline",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS team (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				level TEXT NOT NULL,
				grade_range TEXT NOT NULL,
				pin TEXT NOT NULL,
				season_label TEXT NOT NULL,
				google_sheet_url TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS athlete (
				id TEXT PRIMARY KEY,
				team_id TEXT NOT NULL,
				full_name TEXT NOT NULL,
				grade TEXT NOT NULL,
				jersey_number TEXT NOT NULL,
				FOREIGN KEY (team_id) REFERENCES team(id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS practice (
				id TEXT PRIMARY KEY,
				team_id TEXT NOT NULL,
				date TEXT NOT NULL,
				type TEXT NOT NULL DEFAULT 'PRACTICE',
				title TEXT,
				FOREIGN KEY (team_id) REFERENCES team(id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS attendance (
				id TEXT PRIMARY KEY,
				athlete_id TEXT NOT NULL,
				practice_id TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'ABSENT',
				UNIQUE (athlete_id, practice_id),
				FOREIGN KEY (athlete_id) REFERENCES athlete(id) ON DELETE CASCADE,
				FOREIGN KEY (practice_id) REFERENCES practice(id) ON DELETE CASCADE
			)`,
		},
	},
	{
		version: 2,
		name:    "lookup indexes",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_athlete_team ON athlete(team_id)`,
			`CREATE INDEX IF NOT EXISTS idx_practice_team_date ON practice(team_id, date)`,
			`CREATE INDEX IF NOT EXISTS idx_attendance_practice ON attendance(practice_id)`,
		},
	},
	{
		version: 3,
		name:    "audit events",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS audit_event (
				id TEXT PRIMARY KEY,
				timestamp TEXT NOT NULL,
				action TEXT NOT NULL,
				team_id TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				ip_address TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_audit_event_timestamp ON audit_event(timestamp)`,
		},
	},
}

// LatestSchemaVersion returns the version the migration chain ends at.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, or 0 for an untracked database.
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema_version: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var v int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema_version: %w", err)
	}
	return v, nil
}

// MigrateDB applies every migration newer than the current schema version.
// PRE: db is a valid database connection
// POST: schema is at LatestSchemaVersion, each step applied in its own transaction
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func apply(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
		m.version, FormatTime(time.Now())); err != nil {
		return err
	}
	return tx.Commit()
}
