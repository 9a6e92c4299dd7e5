package projections

import (
	"context"
	"database/sql"
	"errors"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// ErrTeamNotFound is returned when the requested team does not exist.
var ErrTeamNotFound = errors.New("team not found")

// ErrPracticeNotFound is returned when the practice is missing or belongs to another team.
var ErrPracticeNotFound = errors.New("practice not found")

// TeamStore interface for team queries.
type TeamStore interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
	List(ctx context.Context) ([]team.Team, error)
}

// AthleteStore interface for roster queries.
type AthleteStore interface {
	ListByTeam(ctx context.Context, teamID string) ([]athlete.Athlete, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
}

// PracticeStore interface for session queries.
type PracticeStore interface {
	GetByID(ctx context.Context, id string) (practice.Practice, error)
	ListByTeam(ctx context.Context, teamID string) ([]practice.Practice, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
}

// AttendanceStore interface for annotated attendance queries.
type AttendanceStore interface {
	ListDetailed(ctx context.Context, teamID string, filter stats.Filter) ([]stats.Record, error)
}

// loadTeam maps a missing row to ErrTeamNotFound.
func loadTeam(ctx context.Context, store TeamStore, id string) (team.Team, error) {
	t, err := store.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return team.Team{}, ErrTeamNotFound
	}
	return t, err
}
