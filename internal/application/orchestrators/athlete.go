package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
)

// AthleteStoreForRoster defines the athlete store interface needed by roster orchestrators.
type AthleteStoreForRoster interface {
	GetByID(ctx context.Context, id string) (athlete.Athlete, error)
	ListByTeam(ctx context.Context, teamID string) ([]athlete.Athlete, error)
	Save(ctx context.Context, a athlete.Athlete) error
}

// PracticeStoreForBackfill lists the sessions an athlete must be back-filled into.
type PracticeStoreForBackfill interface {
	ListByTeam(ctx context.Context, teamID string) ([]practice.Practice, error)
}

// AttendanceStoreForBackfill inserts attendance rows, skipping existing pairs.
type AttendanceStoreForBackfill interface {
	CreateMissing(ctx context.Context, records []attendance.Attendance) (int, error)
}

// AddAthleteInput carries the manual roster form.
type AddAthleteInput struct {
	TeamID       string
	FullName     string
	Grade        string
	JerseyNumber string
}

// AddAthleteResult reports the created athlete and how many attendance rows were added.
type AddAthleteResult struct {
	Athlete    athlete.Athlete
	BackFilled int
}

// AddAthleteDeps holds dependencies for AddAthlete.
type AddAthleteDeps struct {
	AthleteStore    AthleteStoreForRoster
	PracticeStore   PracticeStoreForBackfill
	AttendanceStore AttendanceStoreForBackfill
	GenerateID      func() string
}

// ExecuteAddAthlete creates an athlete and back-fills ABSENT attendance for every existing session.
// PRE: caller holds team access
// POST: exactly one attendance row exists for the athlete and each team practice
// INVARIANT: nothing is written when a required field is blank
func ExecuteAddAthlete(ctx context.Context, input AddAthleteInput, deps AddAthleteDeps) (AddAthleteResult, error) {
	a := athlete.Athlete{
		ID:           deps.GenerateID(),
		TeamID:       input.TeamID,
		FullName:     strings.TrimSpace(input.FullName),
		Grade:        strings.TrimSpace(input.Grade),
		JerseyNumber: strings.TrimSpace(input.JerseyNumber),
	}
	if err := a.Validate(); err != nil {
		return AddAthleteResult{}, err
	}
	if err := deps.AthleteStore.Save(ctx, a); err != nil {
		return AddAthleteResult{}, fmt.Errorf("save athlete: %w", err)
	}

	practices, err := deps.PracticeStore.ListByTeam(ctx, input.TeamID)
	if err != nil {
		return AddAthleteResult{}, fmt.Errorf("list practices: %w", err)
	}
	n, err := backfillAthlete(ctx, a.ID, practices, deps.AttendanceStore, deps.GenerateID)
	if err != nil {
		return AddAthleteResult{}, err
	}
	slog.Info("roster_event", "event", "athlete_added", "team_id", a.TeamID, "athlete_id", a.ID, "backfilled", n)
	return AddAthleteResult{Athlete: a, BackFilled: n}, nil
}

// backfillAthlete creates one ABSENT record per practice for athleteID.
func backfillAthlete(ctx context.Context, athleteID string, practices []practice.Practice, store AttendanceStoreForBackfill, genID func() string) (int, error) {
	if len(practices) == 0 {
		return 0, nil
	}
	records := make([]attendance.Attendance, 0, len(practices))
	for _, p := range practices {
		records = append(records, attendance.New(genID(), athleteID, p.ID))
	}
	n, err := store.CreateMissing(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("backfill attendance: %w", err)
	}
	return n, nil
}

// AthleteStoreForDelete defines the store interface needed by DeleteAthlete.
type AthleteStoreForDelete interface {
	Delete(ctx context.Context, teamID, id string) error
}

// DeleteAthleteInput identifies the athlete to remove.
type DeleteAthleteInput struct {
	TeamID    string
	AthleteID string
}

// DeleteAthleteDeps holds dependencies for DeleteAthlete.
type DeleteAthleteDeps struct {
	AthleteStore AthleteStoreForDelete
}

// ExecuteDeleteAthlete removes an athlete from a team; its attendance cascades.
// PRE: caller holds team access
// POST: the athlete no longer appears on the roster or in statistics
func ExecuteDeleteAthlete(ctx context.Context, input DeleteAthleteInput, deps DeleteAthleteDeps) error {
	if input.TeamID == "" || input.AthleteID == "" {
		return athlete.ErrTeamRequired
	}
	if err := deps.AthleteStore.Delete(ctx, input.TeamID, input.AthleteID); err != nil {
		return fmt.Errorf("delete athlete: %w", err)
	}
	slog.Info("roster_event", "event", "athlete_deleted", "team_id", input.TeamID, "athlete_id", input.AthleteID)
	return nil
}
