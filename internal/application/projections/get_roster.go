package projections

import (
	"context"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// GetRosterQuery carries query parameters.
type GetRosterQuery struct {
	TeamID string
}

// GetRosterResult carries the team and its athletes ordered by name.
type GetRosterResult struct {
	Team     team.Team
	Athletes []athlete.Athlete
}

// GetRosterDeps holds dependencies for GetRoster.
type GetRosterDeps struct {
	TeamStore    TeamStore
	AthleteStore AthleteStore
}

// QueryGetRoster lists a team's athletes.
func QueryGetRoster(ctx context.Context, query GetRosterQuery, deps GetRosterDeps) (GetRosterResult, error) {
	t, err := loadTeam(ctx, deps.TeamStore, query.TeamID)
	if err != nil {
		return GetRosterResult{}, err
	}
	athletes, err := deps.AthleteStore.ListByTeam(ctx, t.ID)
	if err != nil {
		return GetRosterResult{}, err
	}
	return GetRosterResult{Team: t, Athletes: athletes}, nil
}
