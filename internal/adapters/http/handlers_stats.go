package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/orchestrators"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/projections"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/audit"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/export"
)

var exportMessages = map[string]string{
	"sent":          "Attendance export sent.",
	"invalid-email": "Enter a valid email address.",
	"send-failed":   "Unable to send the export email. Try again later.",
}

// handleStats handles GET /team/{teamID}/stats?start=&end=&practice=
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	result, err := projections.QueryGetTeamStats(r.Context(), projections.GetTeamStatsQuery{
		TeamID:     t.ID,
		Start:      q.Get("start"),
		End:        q.Get("end"),
		PracticeID: q.Get("practice"),
		Location:   s.opts.Location,
	}, projections.GetTeamStatsDeps{
		TeamStore:       s.stores.TeamStore,
		PracticeStore:   s.stores.PracticeStore,
		AttendanceStore: s.stores.AttendanceStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "stats.html", result)
}

// handleExport handles GET /team/{teamID}/export
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	s.render(w, r, "export.html", map[string]any{
		"Team":          t,
		"StatusMessage": exportMessages[status],
		"Failed":        status != "" && status != "sent",
		"Filename":      export.Filename(t.Name),
	})
}

// handleExportDownload handles GET /team/{teamID}/export/download
// POST: a CSV attachment named after the team, or a plain-text error
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	result, err := projections.QueryGetExport(r.Context(), projections.GetExportQuery{TeamID: t.ID}, projections.GetExportDeps{
		TeamStore:       s.stores.TeamStore,
		AttendanceStore: s.stores.AttendanceStore,
	})
	if errors.Is(err, projections.ErrTeamNotFound) {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, result.Document, s.opts.Location); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("write_response_failed", "page", "export", "error", err)
	}
}

// handleExportEmail handles POST /team/{teamID}/export/email
func (s *Server) handleExportEmail(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteEmailExport(r.Context(), orchestrators.EmailExportInput{
		TeamID: t.ID,
		To:     formValue(r, "email"),
	}, orchestrators.EmailExportDeps{
		TeamStore:       s.stores.TeamStore,
		AttendanceStore: s.stores.AttendanceStore,
		Sender:          s.opts.EmailSender,
		From:            s.opts.EmailFrom,
		Location:        s.opts.Location,
	})
	status := "sent"
	switch {
	case err == nil:
		s.recordAudit(r, audit.ActionExportEmailed, t.ID, "Export emailed")
	case errors.Is(err, orchestrators.ErrInvalidRecipient):
		status = "invalid-email"
	case err != nil:
		slog.Warn("export_email_failed", "team_id", t.ID, "error", err.Error())
		status = "send-failed"
	}
	seeOther(w, r, teamPath(t.ID, "export")+"?status="+status)
}
