package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/email"
	athleteStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/athlete"
	attendanceStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/attendance"
	auditStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/audit"
	practiceStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/storagetest"
	teamStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/team"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/access"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

const rosterCSV = "Full Name,Grade,Jersey Number\nAva Smith,7,12\nBen Jones,8,4\n"

type fakeFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeFetcher) FetchCSV(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

type fakeSender struct {
	sent []email.SendRequest
	err  error
}

func (f *fakeSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if f.err != nil {
		return email.SendResult{}, f.err
	}
	f.sent = append(f.sent, req)
	return email.SendResult{MessageID: "msg-1"}, nil
}

type testApp struct {
	server  *Server
	stores  Stores
	guard   *access.Guard
	fetcher *fakeFetcher
	sender  *fakeSender
	team    team.Team
}

func newTestApp(t *testing.T, adminPIN string) *testApp {
	t.Helper()
	db := storagetest.Open(t)
	stores := Stores{
		TeamStore:       teamStore.NewSQLiteStore(db),
		AthleteStore:    athleteStore.NewSQLiteStore(db),
		PracticeStore:   practiceStore.NewSQLiteStore(db),
		AttendanceStore: attendanceStore.NewSQLiteStore(db),
		AuditStore:      auditStore.NewSQLiteStore(db),
	}
	guard := access.NewGuard(access.Config{Secret: "test-secret", AdminPIN: adminPIN})
	fetcher := &fakeFetcher{body: []byte(rosterCSV)}
	sender := &fakeSender{}

	n := 0
	srv, err := NewServer(stores, Options{
		Guard:        guard,
		CSRFKey:      bytes.Repeat([]byte("k"), 32),
		Location:     time.UTC,
		EmailSender:  sender,
		EmailFrom:    "Cadott Attendance <attendance@example.com>",
		SheetFetcher: fetcher,
		SheetTimeout: time.Second,
		GenerateID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	require.NoError(t, err)

	tm := team.Team{ID: "t1", Name: "Cadott Middle School 7-8", Level: "Middle School", GradeRange: "7-8", PIN: "2468", SeasonLabel: "2025"}
	require.NoError(t, stores.TeamStore.Save(context.Background(), tm))

	return &testApp{server: srv, stores: stores, guard: guard, fetcher: fetcher, sender: sender, team: tm}
}

// do sends a request through the routes without the middleware chain.
func (a *testApp) do(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	a.server.Routes().ServeHTTP(rr, req)
	return rr
}

func (a *testApp) teamCookie() *http.Cookie {
	return &http.Cookie{Name: access.TeamCookieName(a.team.ID), Value: a.guard.TeamToken(a.team)}
}

func (a *testApp) adminCookie() *http.Cookie {
	return &http.Cookie{Name: access.AdminCookieName, Value: a.guard.AdminToken()}
}

func TestHome_ListsTeamsWithoutPIN(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "GET", "/", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cadott Middle School 7-8")
	assert.NotContains(t, rr.Body.String(), "2468")
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestSetup_CreatesTeam(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "POST", "/setup", url.Values{
		"name":       {"Cadott Flag"},
		"level":      {"Flag"},
		"gradeRange": {"K-1"},
		"pin":        {"1111"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/team/id-1", rr.Header().Get("Location"))
	got, err := app.stores.TeamStore.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, team.DefaultSeasonLabel, got.SeasonLabel)
}

func TestSetup_IncompleteReturnsToForm(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "POST", "/setup", url.Values{"name": {"No PIN"}, "level": {"Flag"}, "gradeRange": {"K-1"}})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/setup", rr.Header().Get("Location"))
}

func TestTeamPages_RequireAccess(t *testing.T) {
	app := newTestApp(t, "")

	rr := app.do(t, "GET", "/team/t1/roster", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/team/t1/pin", rr.Header().Get("Location"))

	rr = app.do(t, "GET", "/team/missing/roster", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = app.do(t, "GET", "/team/t1", nil, app.teamCookie())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "0 athletes")
}

func TestTeamPin(t *testing.T) {
	app := newTestApp(t, "")

	rr := app.do(t, "POST", "/team/t1/pin", url.Values{"pin": {"0000"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid PIN. Try again.")

	rr = app.do(t, "POST", "/team/t1/pin", url.Values{"pin": {"2468"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/team/t1", rr.Header().Get("Location"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, access.TeamCookieName("t1"), cookies[0].Name)
	assert.True(t, app.guard.AuthorizeTeam(cookies[0].Value, app.team))
}

func TestPracticeCheckInFlow(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()
	cookie := app.teamCookie()

	rr := app.do(t, "POST", "/team/t1/roster/athletes", url.Values{
		"fullName": {"Ava Smith"}, "grade": {"7"}, "jerseyNumber": {"12"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = app.do(t, "POST", "/team/t1/practices/new", url.Values{
		"date": {"2025-09-01T15:30"}, "type": {"practice"}, "title": {"Tackling"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	location := rr.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/team/t1/practices/"), location)

	rr = app.do(t, "GET", location, nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ava Smith")
	assert.Contains(t, rr.Body.String(), "0 of 1 present")

	records, err := app.stores.AttendanceStore.ListDetailed(ctx, "t1", stats.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusAbsent, records[0].Status)

	rr = app.do(t, "POST", location+"/attendance/"+records[0].AttendanceID, url.Values{"status": {"PRESENT"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, location, rr.Header().Get("Location"))

	got, err := app.stores.AttendanceStore.GetByID(ctx, records[0].AttendanceID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, got.Status)

	rr = app.do(t, "GET", "/team/t1/stats", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Overall: 100%")
}

func TestCreatePractice_InvalidDateReturnsToForm(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "POST", "/team/t1/practices/new", url.Values{"date": {"someday"}}, app.teamCookie())

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/team/t1/practices/new", rr.Header().Get("Location"))
}

func TestPracticeCheckIn_UnknownPracticeRedirects(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "GET", "/team/t1/practices/nope", nil, app.teamCookie())

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/team/t1/practices", rr.Header().Get("Location"))
}

func TestImportCSV_Upload(t *testing.T) {
	app := newTestApp(t, "")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(rosterCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/team/t1/import/csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(app.teamCookie())
	rr := httptest.NewRecorder()
	app.server.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/team/t1/import", loc.Path)
	assert.Equal(t, "imported", loc.Query().Get("status"))
	assert.Equal(t, "2", loc.Query().Get("created"))

	count, err := app.stores.AthleteStore.CountByTeam(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	page := app.do(t, "GET", rr.Header().Get("Location"), nil, app.teamCookie())
	assert.Contains(t, page.Body.String(), "Created 2, updated 0, unchanged 0.")
}

func TestImportCSV_PastedText(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "POST", "/team/t1/import/csv", url.Values{"csv": {rosterCSV}}, app.teamCookie())

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "created=2")
}

func TestImportCSV_NoFileReturnsToImport(t *testing.T) {
	app := newTestApp(t, "")
	rr := app.do(t, "POST", "/team/t1/import/csv", url.Values{}, app.teamCookie())

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/team/t1/import", rr.Header().Get("Location"))
}

func TestSheetLinkAndSync(t *testing.T) {
	app := newTestApp(t, "")
	cookie := app.teamCookie()

	rr := app.do(t, "POST", "/team/t1/import/sync", nil, cookie)
	assert.Contains(t, rr.Header().Get("Location"), "status=missing-link")

	rr = app.do(t, "POST", "/team/t1/import/sheet", url.Values{"sheetUrl": {"https://example.com/roster"}}, cookie)
	assert.Contains(t, rr.Header().Get("Location"), "status=invalid-link")

	rr = app.do(t, "POST", "/team/t1/import/sheet", url.Values{"sheetUrl": {"https://docs.google.com/spreadsheets/d/ABC123/edit#gid=7"}}, cookie)
	assert.Contains(t, rr.Header().Get("Location"), "status=saved")

	rr = app.do(t, "POST", "/team/t1/import/sync", nil, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "status=synced")
	require.Len(t, app.fetcher.urls, 1)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/ABC123/export?format=csv&gid=7", app.fetcher.urls[0])

	page := app.do(t, "GET", rr.Header().Get("Location"), nil, cookie)
	assert.Contains(t, page.Body.String(), "Roster synced from Google Sheets.")
}

func TestSheetSync_FetchFailure(t *testing.T) {
	app := newTestApp(t, "")
	cookie := app.teamCookie()
	app.fetcher.err = errors.New("403 from sheets")

	app.do(t, "POST", "/team/t1/import/sheet", url.Values{"sheetUrl": {"https://docs.google.com/spreadsheets/d/ABC123/edit"}}, cookie)
	rr := app.do(t, "POST", "/team/t1/import/sync", nil, cookie)

	assert.Contains(t, rr.Header().Get("Location"), "status=sync-failed")
	count, err := app.stores.AthleteStore.CountByTeam(context.Background(), "t1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExportDownload(t *testing.T) {
	app := newTestApp(t, "")

	rr := app.do(t, "GET", "/team/missing/export/download", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Team not found")

	rr = app.do(t, "GET", "/team/t1/export/download", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Unauthorized")

	rr = app.do(t, "GET", "/team/t1/export/download", nil, app.teamCookie())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/csv"))
	assert.Equal(t, `attachment; filename="cadott-middle-school-7-8-attendance.csv"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), `"Team","Season"`), rr.Body.String())
}

func TestExportEmail(t *testing.T) {
	app := newTestApp(t, "")
	cookie := app.teamCookie()

	rr := app.do(t, "POST", "/team/t1/export/email", url.Values{"email": {"not-an-address"}}, cookie)
	assert.Equal(t, "/team/t1/export?status=invalid-email", rr.Header().Get("Location"))
	assert.Empty(t, app.sender.sent)

	rr = app.do(t, "POST", "/team/t1/export/email", url.Values{"email": {"coach@example.com"}}, cookie)
	assert.Equal(t, "/team/t1/export?status=sent", rr.Header().Get("Location"))
	require.Len(t, app.sender.sent, 1)
	assert.Equal(t, []string{"coach@example.com"}, app.sender.sent[0].To)
	require.Len(t, app.sender.sent[0].Attachments, 1)

	app.sender.err = errors.New("provider down")
	rr = app.do(t, "POST", "/team/t1/export/email", url.Values{"email": {"coach@example.com"}}, cookie)
	assert.Equal(t, "/team/t1/export?status=send-failed", rr.Header().Get("Location"))

	page := app.do(t, "GET", "/team/t1/export?status=sent", nil, cookie)
	assert.Contains(t, page.Body.String(), "Attendance export sent.")
}

func TestAdmin_Disabled(t *testing.T) {
	app := newTestApp(t, "")

	rr := app.do(t, "GET", "/admin", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Admin PIN is not configured.")

	rr = app.do(t, "POST", "/admin/pin", url.Values{"pin": {"anything"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdmin_ResetsTeamPin(t *testing.T) {
	app := newTestApp(t, "9999")

	rr := app.do(t, "POST", "/admin/pin", url.Values{"pin": {"1234"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid admin PIN.")

	rr = app.do(t, "POST", "/admin/pin", url.Values{"pin": {"9999"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Len(t, rr.Result().Cookies(), 1)

	rr = app.do(t, "POST", "/admin/teams/t1/pin", url.Values{"pin": {"1357"}})
	assert.Equal(t, "/admin", rr.Header().Get("Location"))

	rr = app.do(t, "POST", "/admin/teams/t1/pin", url.Values{"pin": {"1357"}}, app.adminCookie())
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin?updated=t1", rr.Header().Get("Location"))

	got, err := app.stores.TeamStore.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "1357", got.PIN)

	// the old cookie no longer unlocks the team
	rr = app.do(t, "GET", "/team/t1", nil, app.teamCookie())
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	page := app.do(t, "GET", "/admin?updated=t1", nil, app.adminCookie())
	body := page.Body.String()
	assert.Contains(t, body, "Recent activity")
	assert.Contains(t, body, "team_pin_reset")
	assert.Contains(t, body, "admin_login")
	assert.NotContains(t, body, "2468")
}

func TestHandler_RejectsPostWithoutCSRFToken(t *testing.T) {
	app := newTestApp(t, "")
	h := app.server.Handler()

	req := httptest.NewRequest("POST", "/team/t1/pin", strings.NewReader("pin=2468"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
	assert.Contains(t, rr.Body.String(), "Cadott Middle School 7-8")
}
