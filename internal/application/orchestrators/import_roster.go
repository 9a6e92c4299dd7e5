package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/roster"
)

// Import sources recorded in the audit log.
const (
	ImportSourceUpload = "upload"
	ImportSourceSheet  = "sheet"
)

// ImportRosterInput carries CSV text for one team.
// PRE: Reader yields CSV with a header row; TeamID identifies an existing team.
// INVARIANT: Callers serialize imports per team; two overlapping batches may both create the same athlete.
type ImportRosterInput struct {
	TeamID string
	Reader io.Reader
	Source string
}

// ImportRosterResult holds aggregate counts from one reconciliation batch.
type ImportRosterResult struct {
	Rows       int // usable rows after mapping
	Created    int
	Updated    int
	Unchanged  int
	Duplicates int
	BackFilled int
}

// ImportRosterDeps holds external dependencies for the import orchestrator.
type ImportRosterDeps struct {
	AthleteStore    AthleteStoreForRoster
	PracticeStore   PracticeStoreForBackfill
	AttendanceStore AttendanceStoreForBackfill
	GenerateID      func() string
}

// ExecuteImportRoster maps CSV rows, reconciles them against the roster and applies the plan in order.
// PRE: caller holds team access
// POST: every created athlete has an attendance row for each existing team practice;
//
//	writes are committed row by row, so a store error leaves earlier rows applied.
//
// INVARIANT: re-importing the same CSV produces no further writes
func ExecuteImportRoster(ctx context.Context, input ImportRosterInput, deps ImportRosterDeps) (ImportRosterResult, error) {
	rows, err := roster.ParseCSV(input.Reader)
	if err != nil && !errors.Is(err, roster.ErrEmptyCSV) {
		return ImportRosterResult{}, err
	}
	result := ImportRosterResult{Rows: len(rows)}
	if len(rows) == 0 {
		logImport(input, result)
		return result, nil
	}

	existing, err := deps.AthleteStore.ListByTeam(ctx, input.TeamID)
	if err != nil {
		return result, fmt.Errorf("list athletes: %w", err)
	}
	plan := roster.Reconcile(rows, existing)
	result.Unchanged = plan.Unchanged
	result.Duplicates = plan.Duplicates

	var practices []practice.Practice
	if plan.Creates() > 0 {
		if practices, err = deps.PracticeStore.ListByTeam(ctx, input.TeamID); err != nil {
			return result, fmt.Errorf("list practices: %w", err)
		}
	}

	for _, op := range plan.Ops {
		switch op.Kind {
		case roster.OpCreate:
			a := athlete.Athlete{ID: deps.GenerateID(), TeamID: input.TeamID}
			op.Apply(&a)
			if err := deps.AthleteStore.Save(ctx, a); err != nil {
				return result, fmt.Errorf("create athlete %q: %w", a.FullName, err)
			}
			result.Created++
			n, err := backfillAthlete(ctx, a.ID, practices, deps.AttendanceStore, deps.GenerateID)
			if err != nil {
				return result, err
			}
			result.BackFilled += n
		default:
			a, err := deps.AthleteStore.GetByID(ctx, op.AthleteID)
			if err != nil {
				return result, fmt.Errorf("load athlete %s: %w", op.AthleteID, err)
			}
			op.Apply(&a)
			if err := deps.AthleteStore.Save(ctx, a); err != nil {
				return result, fmt.Errorf("update athlete %s: %w", a.ID, err)
			}
			result.Updated++
		}
	}

	logImport(input, result)
	return result, nil
}

func logImport(input ImportRosterInput, result ImportRosterResult) {
	slog.Info("roster_import",
		"team_id", input.TeamID,
		"source", input.Source,
		"rows", result.Rows,
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"duplicates", result.Duplicates,
		"backfilled", result.BackFilled,
	)
}
