package web

import (
	"net/http"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/http/middleware"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/audit"
)

// recordAudit saves an activity event for the admin page. A failed save is logged and
// never fails the request.
func (s *Server) recordAudit(r *http.Request, action audit.Action, teamID, description string) {
	if s.stores.AuditStore == nil {
		return
	}
	event := audit.NewEvent(s.opts.GenerateID(), s.opts.Clock.Now(), action).
		WithTeam(teamID).
		WithDescription(description).
		WithIP(middleware.ClientIP(r))
	if err := s.stores.AuditStore.Save(r.Context(), event); err != nil {
		s.opts.Logger.Warn("audit_save_failed", "action", string(action), "team_id", teamID, "error", err.Error())
	}
}
