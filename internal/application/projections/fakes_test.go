package projections

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

type stubTeamStore struct {
	teams []team.Team
}

func (s *stubTeamStore) GetByID(_ context.Context, id string) (team.Team, error) {
	for _, t := range s.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return team.Team{}, fmt.Errorf("team not found: %w", sql.ErrNoRows)
}

func (s *stubTeamStore) List(_ context.Context) ([]team.Team, error) {
	out := append([]team.Team(nil), s.teams...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubAthleteStore struct {
	athletes []athlete.Athlete
	countErr error
}

func (s *stubAthleteStore) ListByTeam(_ context.Context, teamID string) ([]athlete.Athlete, error) {
	var out []athlete.Athlete
	for _, a := range s.athletes {
		if a.TeamID == teamID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAthleteStore) CountByTeam(ctx context.Context, teamID string) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	list, _ := s.ListByTeam(ctx, teamID)
	return len(list), nil
}

type stubPracticeStore struct {
	practices []practice.Practice
}

func (s *stubPracticeStore) GetByID(_ context.Context, id string) (practice.Practice, error) {
	for _, p := range s.practices {
		if p.ID == id {
			return p, nil
		}
	}
	return practice.Practice{}, fmt.Errorf("practice not found: %w", sql.ErrNoRows)
}

func (s *stubPracticeStore) ListByTeam(_ context.Context, teamID string) ([]practice.Practice, error) {
	var out []practice.Practice
	for _, p := range s.practices {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPracticeStore) CountByTeam(ctx context.Context, teamID string) (int, error) {
	list, _ := s.ListByTeam(ctx, teamID)
	return len(list), nil
}

// stubAttendanceStore records the last filter and applies it to its records.
type stubAttendanceStore struct {
	records    []stats.Record
	lastFilter stats.Filter
}

func (s *stubAttendanceStore) ListDetailed(_ context.Context, _ string, filter stats.Filter) ([]stats.Record, error) {
	s.lastFilter = filter
	return filter.Apply(append([]stats.Record(nil), s.records...)), nil
}
