package projections

import (
	"context"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// GetPracticesQuery carries query parameters.
type GetPracticesQuery struct {
	TeamID string
}

// GetPracticesResult carries sessions most recent first.
type GetPracticesResult struct {
	Team      team.Team
	Practices []practice.Practice
}

// GetPracticesDeps holds dependencies for GetPractices.
type GetPracticesDeps struct {
	TeamStore     TeamStore
	PracticeStore PracticeStore
}

// QueryGetPractices lists a team's sessions.
func QueryGetPractices(ctx context.Context, query GetPracticesQuery, deps GetPracticesDeps) (GetPracticesResult, error) {
	t, err := loadTeam(ctx, deps.TeamStore, query.TeamID)
	if err != nil {
		return GetPracticesResult{}, err
	}
	practices, err := deps.PracticeStore.ListByTeam(ctx, t.ID)
	if err != nil {
		return GetPracticesResult{}, err
	}
	return GetPracticesResult{Team: t, Practices: practices}, nil
}
