package web

import (
	"errors"
	"net/http"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/http/middleware"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/listutil"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/orchestrators"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/projections"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/access"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/audit"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// invalidPINMessage is shown for every rejected team PIN, never the reason.
const invalidPINMessage = "Invalid PIN. Try again."

// handleHome handles GET / with the list of teams.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	teams, err := projections.QueryListTeams(r.Context(), projections.GetAdminTeamsDeps{TeamStore: s.stores.TeamStore})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "home.html", map[string]any{"Teams": teams})
}

// handleSetupForm handles GET /setup
func (s *Server) handleSetupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "setup.html", map[string]any{"DefaultSeason": team.DefaultSeasonLabel})
}

// handleSetup handles POST /setup. Incomplete submissions return to the form unchanged.
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	t, err := orchestrators.ExecuteCreateTeam(r.Context(), orchestrators.CreateTeamInput{
		Name:        r.FormValue("name"),
		Level:       r.FormValue("level"),
		GradeRange:  r.FormValue("gradeRange"),
		PIN:         r.FormValue("pin"),
		SeasonLabel: r.FormValue("seasonLabel"),
	}, orchestrators.CreateTeamDeps{TeamStore: s.stores.TeamStore, GenerateID: s.opts.GenerateID})
	if err != nil {
		if isValidation(err) {
			seeOther(w, r, "/setup")
			return
		}
		internalError(w, err)
		return
	}
	s.recordAudit(r, audit.ActionTeamCreated, t.ID, "Team "+t.Name+" created")
	seeOther(w, r, teamPath(t.ID))
}

// handleTeamPinForm handles GET /team/{teamID}/pin
func (s *Server) handleTeamPinForm(w http.ResponseWriter, r *http.Request) {
	t, err := s.lookupTeam(r.Context(), r.PathValue("teamID"))
	if err != nil {
		if isMissing(err) {
			seeOther(w, r, "/")
			return
		}
		internalError(w, err)
		return
	}
	s.render(w, r, "pin.html", map[string]any{"Team": t})
}

// handleTeamPin handles POST /team/{teamID}/pin
func (s *Server) handleTeamPin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	teamID := r.PathValue("teamID")
	result, err := orchestrators.ExecuteVerifyTeamPin(r.Context(), orchestrators.VerifyTeamPinInput{
		TeamID: teamID,
		PIN:    r.FormValue("pin"),
	}, orchestrators.VerifyTeamPinDeps{TeamStore: s.stores.TeamStore, Guard: s.opts.Guard})
	switch {
	case errors.Is(err, orchestrators.ErrTeamNotFound):
		seeOther(w, r, "/")
		return
	case errors.Is(err, access.ErrInvalidPIN):
		t, lookupErr := s.lookupTeam(r.Context(), teamID)
		if lookupErr != nil {
			internalError(w, lookupErr)
			return
		}
		s.recordAudit(r, audit.ActionPINRejected, t.ID, "Wrong team PIN entered")
		s.renderStatus(w, r, http.StatusUnauthorized, "pin.html", map[string]any{"Team": t, "Error": invalidPINMessage})
		return
	case err != nil:
		internalError(w, err)
		return
	}

	middleware.SetAccessCookie(w, access.TeamCookieName(teamID), access.TeamCookiePath(teamID), result.Token, s.opts.Secure)
	s.recordAudit(r, audit.ActionTeamUnlocked, teamID, "")
	seeOther(w, r, teamPath(teamID))
}

// handleAdmin handles GET /admin: the PIN form, or the team PIN table once authorized.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r, s.opts.Guard) {
		data := map[string]any{"Enabled": s.opts.Guard.AdminEnabled()}
		if !s.opts.Guard.AdminEnabled() {
			data["Error"] = "Admin PIN is not configured."
		}
		s.render(w, r, "admin.html", data)
		return
	}
	teams, err := projections.QueryGetAdminTeams(r.Context(), projections.GetAdminTeamsDeps{TeamStore: s.stores.TeamStore})
	if err != nil {
		internalError(w, err)
		return
	}
	var activity projections.GetActivityResult
	if s.stores.AuditStore != nil {
		activity, err = projections.QueryGetActivity(r.Context(), listutil.ParsePageParams(r.URL.Query()), projections.GetActivityDeps{
			AuditStore: s.stores.AuditStore,
			TeamStore:  s.stores.TeamStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
	}
	s.render(w, r, "admin.html", map[string]any{
		"Enabled":    true,
		"Authorized": true,
		"Teams":      teams,
		"Activity":   activity,
		"Updated":    r.URL.Query().Get("updated"),
	})
}

// handleAdminPin handles POST /admin/pin
func (s *Server) handleAdminPin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	token, err := orchestrators.ExecuteVerifyAdminPin(r.Context(), orchestrators.VerifyAdminPinInput{PIN: r.FormValue("pin")},
		orchestrators.VerifyAdminPinDeps{Guard: s.opts.Guard})
	if err != nil {
		msg := "Invalid admin PIN."
		if errors.Is(err, access.ErrAdminDisabled) {
			msg = "Admin PIN is not configured."
		}
		s.renderStatus(w, r, http.StatusUnauthorized, "admin.html", map[string]any{
			"Enabled": s.opts.Guard.AdminEnabled(),
			"Error":   msg,
		})
		return
	}
	middleware.SetAccessCookie(w, access.AdminCookieName, access.AdminCookiePath, token, s.opts.Secure)
	s.recordAudit(r, audit.ActionAdminLogin, "", "")
	seeOther(w, r, "/admin")
}

// handleAdminLogout handles POST /admin/logout
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAccessCookie(w, access.AdminCookieName, access.AdminCookiePath, s.opts.Secure)
	seeOther(w, r, "/admin")
}

// handleAdminTeamPin handles POST /admin/teams/{teamID}/pin. Unauthorized or empty
// submissions are silently ignored.
func (s *Server) handleAdminTeamPin(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r, s.opts.Guard) {
		seeOther(w, r, "/admin")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	teamID := r.PathValue("teamID")
	err := orchestrators.ExecuteUpdateTeamPin(r.Context(), orchestrators.UpdateTeamPinInput{TeamID: teamID, PIN: r.FormValue("pin")},
		orchestrators.UpdateTeamPinDeps{TeamStore: s.stores.TeamStore})
	switch {
	case err == nil:
		s.recordAudit(r, audit.ActionPINReset, teamID, "Team PIN reset by admin")
		seeOther(w, r, "/admin?updated="+teamID)
	case isValidation(err), errors.Is(err, orchestrators.ErrTeamNotFound):
		seeOther(w, r, "/admin")
	default:
		internalError(w, err)
	}
}
