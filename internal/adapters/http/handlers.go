package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/http/middleware"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// currentTeam returns the team authorized by RequireTeam.
func currentTeam(w http.ResponseWriter, r *http.Request) (team.Team, bool) {
	t, ok := middleware.TeamFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
	return t, ok
}

// formValue returns a trimmed form field.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// seeOther redirects after a form post.
func seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func teamPath(teamID string, parts ...string) string {
	p := "/team/" + teamID
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
