package attendance

import (
	"context"

	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
)

// Store persists Attendance state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Attendance, error)
	// CreateMissing inserts records, skipping any (athlete, practice) pair that already exists,
	// and reports how many rows were written.
	CreateMissing(ctx context.Context, records []domain.Attendance) (int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ListDetailed returns a team's attendance joined with practice and athlete,
	// ordered by practice date then athlete name.
	ListDetailed(ctx context.Context, teamID string, filter stats.Filter) ([]stats.Record, error)
}
