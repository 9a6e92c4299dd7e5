package web

import (
	"errors"
	"net/http"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/orchestrators"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/projections"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
)

// handleTeamHome handles GET /team/{teamID}
func (s *Server) handleTeamHome(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	result, err := projections.QueryGetTeamHome(r.Context(), projections.GetTeamHomeQuery{TeamID: t.ID}, projections.GetTeamHomeDeps{
		TeamStore:     s.stores.TeamStore,
		AthleteStore:  s.stores.AthleteStore,
		PracticeStore: s.stores.PracticeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "team.html", result)
}

// handleRoster handles GET /team/{teamID}/roster
func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	result, err := projections.QueryGetRoster(r.Context(), projections.GetRosterQuery{TeamID: t.ID}, projections.GetRosterDeps{
		TeamStore:    s.stores.TeamStore,
		AthleteStore: s.stores.AthleteStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "roster.html", result)
}

// handleAddAthlete handles POST /team/{teamID}/roster/athletes
func (s *Server) handleAddAthlete(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteAddAthlete(r.Context(), orchestrators.AddAthleteInput{
		TeamID:       t.ID,
		FullName:     r.FormValue("fullName"),
		Grade:        r.FormValue("grade"),
		JerseyNumber: r.FormValue("jerseyNumber"),
	}, orchestrators.AddAthleteDeps{
		AthleteStore:    s.stores.AthleteStore,
		PracticeStore:   s.stores.PracticeStore,
		AttendanceStore: s.stores.AttendanceStore,
		GenerateID:      s.opts.GenerateID,
	})
	if err != nil && !isValidation(err) {
		internalError(w, err)
		return
	}
	seeOther(w, r, teamPath(t.ID, "roster"))
}

// handleDeleteAthlete handles POST /team/{teamID}/roster/athletes/{athleteID}/delete
func (s *Server) handleDeleteAthlete(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	err := orchestrators.ExecuteDeleteAthlete(r.Context(), orchestrators.DeleteAthleteInput{
		TeamID:    t.ID,
		AthleteID: r.PathValue("athleteID"),
	}, orchestrators.DeleteAthleteDeps{AthleteStore: s.stores.AthleteStore})
	if err != nil && !isValidation(err) {
		internalError(w, err)
		return
	}
	seeOther(w, r, teamPath(t.ID, "roster"))
}

// handlePractices handles GET /team/{teamID}/practices
func (s *Server) handlePractices(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	result, err := projections.QueryGetPractices(r.Context(), projections.GetPracticesQuery{TeamID: t.ID}, projections.GetPracticesDeps{
		TeamStore:     s.stores.TeamStore,
		PracticeStore: s.stores.PracticeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "practices.html", result)
}

// handleNewPracticeForm handles GET /team/{teamID}/practices/new
func (s *Server) handleNewPracticeForm(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	s.render(w, r, "practice_new.html", map[string]any{
		"Team":  t,
		"Types": practice.Types,
		"Now":   s.opts.Clock.Now().In(s.opts.Location).Format("2006-01-02T15:04"),
	})
}

// handleCreatePractice handles POST /team/{teamID}/practices/new
func (s *Server) handleCreatePractice(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	result, err := orchestrators.ExecuteCreatePractice(r.Context(), orchestrators.CreatePracticeInput{
		TeamID: t.ID,
		Date:   r.FormValue("date"),
		Type:   r.FormValue("type"),
		Title:  r.FormValue("title"),
	}, orchestrators.CreatePracticeDeps{
		PracticeStore:   s.stores.PracticeStore,
		AthleteStore:    s.stores.AthleteStore,
		AttendanceStore: s.stores.AttendanceStore,
		GenerateID:      s.opts.GenerateID,
		Location:        s.opts.Location,
	})
	if err != nil {
		if isValidation(err) {
			seeOther(w, r, teamPath(t.ID, "practices", "new"))
			return
		}
		internalError(w, err)
		return
	}
	seeOther(w, r, teamPath(t.ID, "practices", result.Practice.ID))
}

// handlePracticeCheckIn handles GET /team/{teamID}/practices/{practiceID}
func (s *Server) handlePracticeCheckIn(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	result, err := projections.QueryGetPracticeCheckIn(r.Context(), projections.GetPracticeCheckInQuery{
		TeamID:     t.ID,
		PracticeID: r.PathValue("practiceID"),
	}, projections.GetPracticeCheckInDeps{
		TeamStore:       s.stores.TeamStore,
		PracticeStore:   s.stores.PracticeStore,
		AttendanceStore: s.stores.AttendanceStore,
	})
	if errors.Is(err, projections.ErrPracticeNotFound) {
		seeOther(w, r, teamPath(t.ID, "practices"))
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "practice.html", result)
}

// handleUpdateAttendance handles POST /team/{teamID}/practices/{practiceID}/attendance/{attendanceID}.
// Records outside the practice, or unknown statuses, leave the sheet unchanged.
func (s *Server) handleUpdateAttendance(w http.ResponseWriter, r *http.Request) {
	t, ok := currentTeam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	practiceID := r.PathValue("practiceID")
	err := orchestrators.ExecuteUpdateAttendanceStatus(r.Context(), orchestrators.UpdateAttendanceStatusInput{
		TeamID:       t.ID,
		PracticeID:   practiceID,
		AttendanceID: r.PathValue("attendanceID"),
		Status:       r.FormValue("status"),
	}, orchestrators.UpdateAttendanceStatusDeps{
		PracticeStore:   s.stores.PracticeStore,
		AttendanceStore: s.stores.AttendanceStore,
	})
	switch {
	case errors.Is(err, orchestrators.ErrPracticeNotFound):
		seeOther(w, r, teamPath(t.ID, "practices"))
	case err == nil, isValidation(err), errors.Is(err, attendance.ErrNotFound):
		seeOther(w, r, teamPath(t.ID, "practices", practiceID))
	default:
		internalError(w, err)
	}
}
