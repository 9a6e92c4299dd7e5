package projections

import (
	"context"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// GetAdminTeamsDeps holds dependencies for GetAdminTeams.
type GetAdminTeamsDeps struct {
	TeamStore TeamStore
}

// QueryGetAdminTeams lists every team by name, PINs included, for the admin page.
// PRE: caller holds admin access
func QueryGetAdminTeams(ctx context.Context, deps GetAdminTeamsDeps) ([]team.Team, error) {
	return deps.TeamStore.List(ctx)
}

// TeamSummary is the public face of a team on the landing page.
type TeamSummary struct {
	ID          string
	Name        string
	Level       string
	GradeRange  string
	SeasonLabel string
}

// QueryListTeams lists every team by name without secrets.
// POST: no PIN or sheet link leaves this projection
func QueryListTeams(ctx context.Context, deps GetAdminTeamsDeps) ([]TeamSummary, error) {
	teams, err := deps.TeamStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamSummary{ID: t.ID, Name: t.Name, Level: t.Level, GradeRange: t.GradeRange, SeasonLabel: t.SeasonLabel})
	}
	return out, nil
}
