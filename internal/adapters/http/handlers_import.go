package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/orchestrators"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/audit"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/roster"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// maxUploadBytes caps roster uploads.
const maxUploadBytes = 2 << 20

// Import page status values carried in the redirect query.
const (
	statusSaved       = "saved"
	statusSynced      = "synced"
	statusImported    = "imported"
	statusInvalidLink = "invalid-link"
	statusMissingLink = "missing-link"
	statusSyncFailed  = "sync-failed"
)

var importMessages = map[string]string{
	statusSaved:       "Google Sheet link saved.",
	statusSynced:      "Roster synced from Google Sheets.",
	statusImported:    "Roster imported from CSV.",
	statusInvalidLink: "That link does not look like a Google Sheet.",
	statusMissingLink: "Add a Google Sheet link before syncing.",
	statusSyncFailed:  "Unable to sync. Check sharing settings and try again.",
}

func (s *Server) importDeps() orchestrators.ImportRosterDeps {
	return orchestrators.ImportRosterDeps{
		AthleteStore:    s.stores.AthleteStore,
		PracticeStore:   s.stores.PracticeStore,
		AttendanceStore: s.stores.AttendanceStore,
		GenerateID:      s.opts.GenerateID,
	}
}

// importRedirect sends the browser back to the import page with a status and optional counts.
func importRedirect(w http.ResponseWriter, r *http.Request, teamID, status string, result *orchestrators.ImportRosterResult) {
	q := url.Values{"status": {status}}
	if result != nil {
		q.Set("created", strconv.Itoa(result.Created))
		q.Set("updated", strconv.Itoa(result.Updated))
		q.Set("unchanged", strconv.Itoa(result.Unchanged))
	}
	seeOther(w, r, teamPath(teamID, "import")+"?"+q.Encode())
}

// handleImport handles GET /team/{teamID}/import
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	data := map[string]any{
		"Team":          t,
		"Help":          s.pages.importHelp,
		"StatusMessage": importMessages[q.Get("status")],
		"Failed":        strings.HasSuffix(q.Get("status"), "-link") || q.Get("status") == statusSyncFailed,
		"Counts":        importCounts(q),
		"SheetLabel":    sheetLinkLabel(t),
	}
	s.render(w, r, "import.html", data)
}

func importCounts(q url.Values) map[string]string {
	if q.Get("created") == "" {
		return nil
	}
	return map[string]string{
		"Created":   q.Get("created"),
		"Updated":   q.Get("updated"),
		"Unchanged": q.Get("unchanged"),
	}
}

// handleImportCSV handles POST /team/{teamID}/import/csv with a "file" upload or pasted "csv" text.
// A submission with neither returns to the import page unchanged.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	body, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if body == nil {
		seeOther(w, r, teamPath(t.ID, "import"))
		return
	}

	result, err := orchestrators.ExecuteImportRoster(r.Context(), orchestrators.ImportRosterInput{
		TeamID: t.ID,
		Reader: body,
		Source: orchestrators.ImportSourceUpload,
	}, s.importDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	s.recordAudit(r, audit.ActionRosterImported, t.ID, importSummary("CSV upload", result))
	importRedirect(w, r, t.ID, statusImported, &result)
}

// readUpload returns the uploaded file or pasted text, or nil when the form has neither.
func readUpload(r *http.Request) (io.Reader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		if f, _, err := r.FormFile("file"); err == nil {
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				return nil, err
			}
			if len(data) > 0 {
				return bytes.NewReader(data), nil
			}
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}
	if text := r.FormValue("csv"); strings.TrimSpace(text) != "" {
		return strings.NewReader(text), nil
	}
	return nil, nil
}

// handleSaveSheet handles POST /team/{teamID}/import/sheet
func (s *Server) handleSaveSheet(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteSaveSheetURL(r.Context(), orchestrators.SaveSheetURLInput{
		TeamID: t.ID,
		URL:    r.FormValue("sheetUrl"),
	}, orchestrators.SaveSheetURLDeps{TeamStore: s.stores.TeamStore})
	switch {
	case errors.Is(err, roster.ErrInvalidSheetLink):
		importRedirect(w, r, t.ID, statusInvalidLink, nil)
	case err != nil:
		internalError(w, err)
	default:
		importRedirect(w, r, t.ID, statusSaved, nil)
	}
}

// handleSyncSheet handles POST /team/{teamID}/import/sync
func (s *Server) handleSyncSheet(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	result, err := orchestrators.ExecuteSyncSheet(r.Context(), orchestrators.SyncSheetInput{TeamID: t.ID}, orchestrators.SyncSheetDeps{
		TeamStore: s.stores.TeamStore,
		Fetcher:   s.opts.SheetFetcher,
		Timeout:   s.opts.SheetTimeout,
		Import:    s.importDeps(),
	})
	switch {
	case errors.Is(err, orchestrators.ErrMissingSheetLink):
		importRedirect(w, r, t.ID, statusMissingLink, nil)
	case errors.Is(err, orchestrators.ErrSheetSyncFailed):
		importRedirect(w, r, t.ID, statusSyncFailed, nil)
	case err != nil:
		internalError(w, err)
	default:
		s.recordAudit(r, audit.ActionSheetSynced, t.ID, importSummary("Google Sheet", result))
		importRedirect(w, r, t.ID, statusSynced, &result)
	}
}

func importSummary(source string, result orchestrators.ImportRosterResult) string {
	return fmt.Sprintf("%s: %d created, %d updated, %d unchanged", source, result.Created, result.Updated, result.Unchanged)
}

// sheetLinkLabel shows where a saved link points without echoing the full URL.
func sheetLinkLabel(t team.Team) string {
	if !t.HasSheet() {
		return ""
	}
	u, err := url.Parse(t.GoogleSheetURL)
	if err != nil {
		return "saved"
	}
	return u.Host + u.Path
}
