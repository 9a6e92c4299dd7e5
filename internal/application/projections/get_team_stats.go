package projections

import (
	"context"
	"time"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// GetTeamStatsQuery carries the raw filter values from the stats page.
type GetTeamStatsQuery struct {
	TeamID     string
	Start      string // YYYY-MM-DD, optional
	End        string // YYYY-MM-DD, optional, inclusive through end of day
	PracticeID string
	Location   *time.Location
}

// GetTeamStatsResult carries the aggregated view and the options for the filter form.
type GetTeamStatsResult struct {
	Team      team.Team
	Filter    stats.Filter
	Summary   stats.Summary
	Practices []practice.Practice
}

// GetTeamStatsDeps holds dependencies for GetTeamStats.
type GetTeamStatsDeps struct {
	TeamStore       TeamStore
	PracticeStore   PracticeStore
	AttendanceStore AttendanceStore
}

// QueryGetTeamStats filters a team's attendance in the store and aggregates the result.
// PRE: caller holds team access
// POST: unparseable dates are ignored rather than rejected
func QueryGetTeamStats(ctx context.Context, query GetTeamStatsQuery, deps GetTeamStatsDeps) (GetTeamStatsResult, error) {
	t, err := loadTeam(ctx, deps.TeamStore, query.TeamID)
	if err != nil {
		return GetTeamStatsResult{}, err
	}
	loc := query.Location
	if loc == nil {
		loc = time.UTC
	}
	filter := stats.ParseFilter(query.Start, query.End, query.PracticeID, loc)

	records, err := deps.AttendanceStore.ListDetailed(ctx, t.ID, filter)
	if err != nil {
		return GetTeamStatsResult{}, err
	}
	practices, err := deps.PracticeStore.ListByTeam(ctx, t.ID)
	if err != nil {
		return GetTeamStatsResult{}, err
	}

	summary := stats.Aggregate(records)
	for i := range summary.Practices {
		if summary.Practices[i].Title == "" {
			summary.Practices[i].Title = practice.DefaultTitle
		}
	}
	return GetTeamStatsResult{Team: t, Filter: filter, Summary: summary, Practices: practices}, nil
}
