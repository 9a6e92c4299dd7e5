package projections

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// GetTeamHomeQuery carries query parameters.
type GetTeamHomeQuery struct {
	TeamID string
}

// GetTeamHomeResult carries the dashboard counts for one team.
type GetTeamHomeResult struct {
	Team          team.Team
	AthleteCount  int
	PracticeCount int
}

// GetTeamHomeDeps holds dependencies for GetTeamHome.
type GetTeamHomeDeps struct {
	TeamStore     TeamStore
	AthleteStore  AthleteStore
	PracticeStore PracticeStore
}

// QueryGetTeamHome loads a team with its roster and session counts.
// PRE: caller holds team access
// POST: ErrTeamNotFound when the team does not exist; counts are fetched concurrently
func QueryGetTeamHome(ctx context.Context, query GetTeamHomeQuery, deps GetTeamHomeDeps) (GetTeamHomeResult, error) {
	t, err := loadTeam(ctx, deps.TeamStore, query.TeamID)
	if err != nil {
		return GetTeamHomeResult{}, err
	}

	result := GetTeamHomeResult{Team: t}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := deps.AthleteStore.CountByTeam(gCtx, t.ID)
		result.AthleteCount = n
		return err
	})
	g.Go(func() error {
		n, err := deps.PracticeStore.CountByTeam(gCtx, t.ID)
		result.PracticeCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return GetTeamHomeResult{}, err
	}
	return result, nil
}
