package orchestrators

import (
	"context"
	"log/slog"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/access"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// TeamStoreForLookup defines the store interface needed to resolve a team.
type TeamStoreForLookup interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
}

// VerifyTeamPinInput carries a coach's PIN attempt.
type VerifyTeamPinInput struct {
	TeamID string
	PIN    string
}

// VerifyTeamPinResult is the cookie value to issue on success.
type VerifyTeamPinResult struct {
	Team  team.Team
	Token string
}

// VerifyTeamPinDeps holds dependencies for VerifyTeamPin.
type VerifyTeamPinDeps struct {
	TeamStore TeamStoreForLookup
	Guard     *access.Guard
}

// ExecuteVerifyTeamPin checks a PIN against the team and returns its access token.
// PRE: none
// POST: Token is set only when the PIN matches; ErrTeamNotFound for unknown teams
func ExecuteVerifyTeamPin(ctx context.Context, input VerifyTeamPinInput, deps VerifyTeamPinDeps) (VerifyTeamPinResult, error) {
	t, err := deps.TeamStore.GetByID(ctx, input.TeamID)
	if err != nil {
		if isNotFound(err) {
			return VerifyTeamPinResult{}, ErrTeamNotFound
		}
		return VerifyTeamPinResult{}, err
	}
	token, err := deps.Guard.VerifyTeamPIN(t, input.PIN)
	if err != nil {
		slog.Info("auth_event", "event", "team_pin_rejected", "team_id", t.ID)
		return VerifyTeamPinResult{}, err
	}
	slog.Info("auth_event", "event", "team_pin_accepted", "team_id", t.ID)
	return VerifyTeamPinResult{Team: t, Token: token}, nil
}

// VerifyAdminPinInput carries an administrator PIN attempt.
type VerifyAdminPinInput struct {
	PIN string
}

// VerifyAdminPinDeps holds dependencies for VerifyAdminPin.
type VerifyAdminPinDeps struct {
	Guard *access.Guard
}

// ExecuteVerifyAdminPin checks the administrator PIN and returns the admin token.
// POST: access.ErrAdminDisabled when no admin PIN is configured, access.ErrInvalidPIN on mismatch
func ExecuteVerifyAdminPin(_ context.Context, input VerifyAdminPinInput, deps VerifyAdminPinDeps) (string, error) {
	token, err := deps.Guard.VerifyAdminPIN(input.PIN)
	if err != nil {
		slog.Info("auth_event", "event", "admin_pin_rejected", "reason", err.Error())
		return "", err
	}
	slog.Info("auth_event", "event", "admin_pin_accepted")
	return token, nil
}
