package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// TeamStoreForCreate defines the store interface needed by CreateTeam.
type TeamStoreForCreate interface {
	Save(ctx context.Context, t team.Team) error
}

// CreateTeamInput carries the setup form fields.
type CreateTeamInput struct {
	Name        string
	Level       string
	GradeRange  string
	PIN         string
	SeasonLabel string
}

// CreateTeamDeps holds dependencies for CreateTeam.
type CreateTeamDeps struct {
	TeamStore  TeamStoreForCreate
	GenerateID func() string
}

// ExecuteCreateTeam validates and stores a new team.
// PRE: none
// POST: on success the team is persisted with a default season when none was given
// INVARIANT: nothing is written when validation fails
func ExecuteCreateTeam(ctx context.Context, input CreateTeamInput, deps CreateTeamDeps) (team.Team, error) {
	t := team.Team{
		ID:          deps.GenerateID(),
		Name:        input.Name,
		Level:       input.Level,
		GradeRange:  input.GradeRange,
		PIN:         input.PIN,
		SeasonLabel: input.SeasonLabel,
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return team.Team{}, err
	}
	if err := deps.TeamStore.Save(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("save team: %w", err)
	}
	slog.Info("team_event", "event", "team_created", "team_id", t.ID, "name", t.Name)
	return t, nil
}

// TeamStoreForUpdate defines the store interface needed by orchestrators that modify a team.
type TeamStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
	Save(ctx context.Context, t team.Team) error
}

// UpdateTeamPinInput carries the admin PIN change form.
type UpdateTeamPinInput struct {
	TeamID string
	PIN    string
}

// UpdateTeamPinDeps holds dependencies for UpdateTeamPin.
type UpdateTeamPinDeps struct {
	TeamStore TeamStoreForUpdate
}

// ExecuteUpdateTeamPin replaces a team's PIN.
// PRE: caller holds admin access
// POST: the new PIN is stored; every previously issued team cookie stops authorizing
func ExecuteUpdateTeamPin(ctx context.Context, input UpdateTeamPinInput, deps UpdateTeamPinDeps) error {
	pin := strings.TrimSpace(input.PIN)
	if pin == "" {
		return team.ErrPINRequired
	}
	t, err := deps.TeamStore.GetByID(ctx, input.TeamID)
	if err != nil {
		if isNotFound(err) {
			return ErrTeamNotFound
		}
		return err
	}
	t.PIN = pin
	if err := deps.TeamStore.Save(ctx, t); err != nil {
		return fmt.Errorf("save team: %w", err)
	}
	slog.Info("auth_event", "event", "team_pin_changed", "team_id", t.ID)
	return nil
}
