package orchestrators

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// SeedTeam is one entry of a team seed file.
type SeedTeam struct {
	Name        string `yaml:"name"`
	Level       string `yaml:"level"`
	GradeRange  string `yaml:"grade_range"`
	PIN         string `yaml:"pin"`
	SeasonLabel string `yaml:"season_label"`
}

// seedFile is the YAML document shape.
type seedFile struct {
	Teams []SeedTeam `yaml:"teams"`
}

// DefaultSeedTeams are the Cadott youth programs created on first start.
var DefaultSeedTeams = []SeedTeam{
	{Name: "Cadott Flag Football K-1", Level: "Flag", GradeRange: "K-1", PIN: "1001", SeasonLabel: "2025"},
	{Name: "Cadott Flag Football 2-3", Level: "Flag", GradeRange: "2-3", PIN: "1002", SeasonLabel: "2025"},
	{Name: "Cadott Flag Football 4-6", Level: "Flag", GradeRange: "4-6", PIN: "1003", SeasonLabel: "2025"},
	{Name: "Cadott CVYF 5-6", Level: "CVYF", GradeRange: "5-6", PIN: "2001", SeasonLabel: "2025"},
	{Name: "Cadott Middle School 7-8", Level: "Middle School", GradeRange: "7-8", PIN: "3001", SeasonLabel: "2025"},
	{Name: "Cadott High School 9-12", Level: "High School", GradeRange: "9-12", PIN: "4001", SeasonLabel: "2025"},
}

// ParseSeedTeams decodes a YAML seed document of the form "teams: [{name, level, grade_range, pin, season_label}]".
func ParseSeedTeams(r io.Reader) ([]SeedTeam, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return f.Teams, nil
}

// TeamStoreForSeed defines the store interface needed by SeedTeams.
type TeamStoreForSeed interface {
	GetByName(ctx context.Context, name string) (team.Team, error)
	Save(ctx context.Context, t team.Team) error
}

// SeedTeamsDeps holds dependencies for SeedTeams.
type SeedTeamsDeps struct {
	TeamStore  TeamStoreForSeed
	GenerateID func() string
}

// ExecuteSeedTeams creates every listed team whose name does not exist yet.
// PRE: none
// POST: returns the number of teams created; existing teams are never modified
// INVARIANT: idempotent by team name
func ExecuteSeedTeams(ctx context.Context, teams []SeedTeam, deps SeedTeamsDeps) (int, error) {
	created := 0
	for _, st := range teams {
		t := team.Team{
			Name:        st.Name,
			Level:       st.Level,
			GradeRange:  st.GradeRange,
			PIN:         st.PIN,
			SeasonLabel: st.SeasonLabel,
		}
		t.Normalize()
		if err := t.Validate(); err != nil {
			return created, fmt.Errorf("seed team %q: %w", st.Name, err)
		}

		_, err := deps.TeamStore.GetByName(ctx, t.Name)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			return created, err
		}

		t.ID = deps.GenerateID()
		if err := deps.TeamStore.Save(ctx, t); err != nil {
			return created, fmt.Errorf("seed team %q: %w", t.Name, err)
		}
		created++
	}
	if created > 0 {
		slog.Info("seed_event", "event", "teams_seeded", "teams", created)
	}
	return created, nil
}
