// Package storagetest opens migrated in-memory databases for store tests.
package storagetest

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage"
)

// Open returns a single-connection in-memory database with foreign keys enforced
// and every migration applied. It is closed when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// MustExec runs stmt and fails the test on error.
func MustExec(t testing.TB, db *sql.DB, stmt string, args ...any) {
	t.Helper()
	if _, err := db.Exec(stmt, args...); err != nil {
		t.Fatalf("exec %q: %v", stmt, err)
	}
}

// InsertTeam inserts a minimal team row.
func InsertTeam(t testing.TB, db *sql.DB, id, name string) {
	t.Helper()
	MustExec(t, db, `INSERT INTO team (id, name, level, grade_range, pin, season_label) VALUES (?, ?, 'Flag', 'K-1', '1001', '2025')`, id, name)
}
