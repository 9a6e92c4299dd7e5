package web

import (
	"net/http"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/http/middleware"
)

// Routes registers every page and form endpoint.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	team := middleware.RequireTeam(s.lookupTeam, s.opts.Guard)
	teamFile := middleware.RequireTeamFile(s.lookupTeam, s.opts.Guard)
	guarded := func(h http.HandlerFunc) http.Handler { return team(h) }

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /setup", s.handleSetupForm)
	mux.HandleFunc("POST /setup", s.handleSetup)

	mux.HandleFunc("GET /admin", s.handleAdmin)
	mux.HandleFunc("POST /admin/pin", s.handleAdminPin)
	mux.HandleFunc("POST /admin/logout", s.handleAdminLogout)
	mux.HandleFunc("POST /admin/teams/{teamID}/pin", s.handleAdminTeamPin)

	mux.HandleFunc("GET /team/{teamID}/pin", s.handleTeamPinForm)
	mux.HandleFunc("POST /team/{teamID}/pin", s.handleTeamPin)

	mux.Handle("GET /team/{teamID}", guarded(s.handleTeamHome))
	mux.Handle("GET /team/{teamID}/roster", guarded(s.handleRoster))
	mux.Handle("POST /team/{teamID}/roster/athletes", guarded(s.handleAddAthlete))
	mux.Handle("POST /team/{teamID}/roster/athletes/{athleteID}/delete", guarded(s.handleDeleteAthlete))

	mux.Handle("GET /team/{teamID}/practices", guarded(s.handlePractices))
	mux.Handle("GET /team/{teamID}/practices/new", guarded(s.handleNewPracticeForm))
	mux.Handle("POST /team/{teamID}/practices/new", guarded(s.handleCreatePractice))
	mux.Handle("GET /team/{teamID}/practices/{practiceID}", guarded(s.handlePracticeCheckIn))
	mux.Handle("POST /team/{teamID}/practices/{practiceID}/attendance/{attendanceID}", guarded(s.handleUpdateAttendance))

	mux.Handle("GET /team/{teamID}/import", guarded(s.handleImport))
	mux.Handle("POST /team/{teamID}/import/csv", guarded(s.handleImportCSV))
	mux.Handle("POST /team/{teamID}/import/sheet", guarded(s.handleSaveSheet))
	mux.Handle("POST /team/{teamID}/import/sync", guarded(s.handleSyncSheet))

	mux.Handle("GET /team/{teamID}/stats", guarded(s.handleStats))
	mux.Handle("GET /team/{teamID}/export", guarded(s.handleExport))
	mux.Handle("GET /team/{teamID}/export/download", teamFile(http.HandlerFunc(s.handleExportDownload)))
	mux.Handle("POST /team/{teamID}/export/email", guarded(s.handleExportEmail))

	return mux
}
