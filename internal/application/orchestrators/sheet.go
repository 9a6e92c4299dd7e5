package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/roster"
)

// SaveSheetURLInput carries the submitted sheet link.
type SaveSheetURLInput struct {
	TeamID string
	URL    string
}

// SaveSheetURLDeps holds dependencies for SaveSheetURL.
type SaveSheetURLDeps struct {
	TeamStore TeamStoreForUpdate
}

// ExecuteSaveSheetURL normalizes a sheet link to its CSV export form and stores it on the team.
// PRE: caller holds team access
// POST: roster.ErrInvalidSheetLink with no write when the link has no spreadsheet id
func ExecuteSaveSheetURL(ctx context.Context, input SaveSheetURLInput, deps SaveSheetURLDeps) (string, error) {
	normalized, err := roster.NormalizeSheetURL(input.URL)
	if err != nil {
		return "", err
	}
	t, err := deps.TeamStore.GetByID(ctx, input.TeamID)
	if err != nil {
		if isNotFound(err) {
			return "", ErrTeamNotFound
		}
		return "", err
	}
	t.GoogleSheetURL = normalized
	if err := deps.TeamStore.Save(ctx, t); err != nil {
		return "", fmt.Errorf("save team: %w", err)
	}
	slog.Info("import_event", "event", "sheet_link_saved", "team_id", t.ID)
	return normalized, nil
}

// SheetFetcher downloads a CSV export.
type SheetFetcher interface {
	FetchCSV(ctx context.Context, url string) ([]byte, error)
}

// SyncSheetInput identifies the team to sync.
type SyncSheetInput struct {
	TeamID string
}

// SyncSheetDeps holds dependencies for SyncSheet.
type SyncSheetDeps struct {
	TeamStore TeamStoreForLookup
	Fetcher   SheetFetcher
	Timeout   time.Duration
	Import    ImportRosterDeps
}

// ExecuteSyncSheet fetches the team's sheet and imports it like an uploaded CSV.
// PRE: caller holds team access
// POST: ErrMissingSheetLink when none is stored; ErrSheetSyncFailed on any fetch failure,
//
//	in which case no roster writes happen
func ExecuteSyncSheet(ctx context.Context, input SyncSheetInput, deps SyncSheetDeps) (ImportRosterResult, error) {
	t, err := deps.TeamStore.GetByID(ctx, input.TeamID)
	if err != nil {
		if isNotFound(err) {
			return ImportRosterResult{}, ErrTeamNotFound
		}
		return ImportRosterResult{}, err
	}
	if !t.HasSheet() {
		return ImportRosterResult{}, ErrMissingSheetLink
	}

	fetchCtx := ctx
	if deps.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, deps.Timeout)
		defer cancel()
	}
	body, err := deps.Fetcher.FetchCSV(fetchCtx, t.GoogleSheetURL)
	if err != nil {
		slog.Warn("sheet_sync_failed", "team_id", t.ID, "error", err)
		return ImportRosterResult{}, fmt.Errorf("%w: %w", ErrSheetSyncFailed, err)
	}

	return ExecuteImportRoster(ctx, ImportRosterInput{
		TeamID: t.ID,
		Reader: bytes.NewReader(body),
		Source: ImportSourceSheet,
	}, deps.Import)
}
