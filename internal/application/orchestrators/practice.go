package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
)

// PracticeStoreForCreate defines the store interface needed by CreatePractice.
type PracticeStoreForCreate interface {
	Save(ctx context.Context, p practice.Practice) error
}

// AthleteStoreForBackfill lists the athletes a new session must be back-filled for.
type AthleteStoreForBackfill interface {
	ListByTeam(ctx context.Context, teamID string) ([]athlete.Athlete, error)
}

// CreatePracticeInput carries the new-session form.
type CreatePracticeInput struct {
	TeamID string
	Date   string // datetime-local form value
	Type   string
	Title  string
}

// CreatePracticeResult reports the created session and how many attendance rows were added.
type CreatePracticeResult struct {
	Practice   practice.Practice
	BackFilled int
}

// CreatePracticeDeps holds dependencies for CreatePractice.
type CreatePracticeDeps struct {
	PracticeStore   PracticeStoreForCreate
	AthleteStore    AthleteStoreForBackfill
	AttendanceStore AttendanceStoreForBackfill
	GenerateID      func() string
	Location        *time.Location
}

// ExecuteCreatePractice stores a session and creates an ABSENT attendance row for every athlete on the team.
// PRE: caller holds team access
// POST: M athletes on the team yield exactly M new attendance rows
// INVARIANT: nothing is written when the date is missing or the type is unknown
func ExecuteCreatePractice(ctx context.Context, input CreatePracticeInput, deps CreatePracticeDeps) (CreatePracticeResult, error) {
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	date, err := practice.ParseDate(input.Date, loc)
	if err != nil {
		return CreatePracticeResult{}, err
	}
	typ, err := practice.ParseType(input.Type)
	if err != nil {
		return CreatePracticeResult{}, err
	}

	p := practice.Practice{
		ID:     deps.GenerateID(),
		TeamID: input.TeamID,
		Date:   date,
		Type:   typ,
		Title:  strings.TrimSpace(input.Title),
	}
	if err := p.Validate(); err != nil {
		return CreatePracticeResult{}, err
	}
	if err := deps.PracticeStore.Save(ctx, p); err != nil {
		return CreatePracticeResult{}, fmt.Errorf("save practice: %w", err)
	}

	athletes, err := deps.AthleteStore.ListByTeam(ctx, input.TeamID)
	if err != nil {
		return CreatePracticeResult{}, fmt.Errorf("list athletes: %w", err)
	}
	records := make([]attendance.Attendance, 0, len(athletes))
	for _, a := range athletes {
		records = append(records, attendance.New(deps.GenerateID(), a.ID, p.ID))
	}
	n, err := deps.AttendanceStore.CreateMissing(ctx, records)
	if err != nil {
		return CreatePracticeResult{}, fmt.Errorf("backfill attendance: %w", err)
	}

	slog.Info("practice_event", "event", "practice_created", "team_id", p.TeamID, "practice_id", p.ID, "type", p.Type, "backfilled", n)
	return CreatePracticeResult{Practice: p, BackFilled: n}, nil
}
