package projections

import (
	"context"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/export"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// GetExportQuery carries query parameters.
type GetExportQuery struct {
	TeamID string
}

// GetExportResult carries the export document and its download name.
type GetExportResult struct {
	Team     team.Team
	Document export.Document
	Filename string
}

// GetExportDeps holds dependencies for GetExport.
type GetExportDeps struct {
	TeamStore       TeamStore
	AttendanceStore AttendanceStore
}

// QueryGetExport builds the full attendance export for a team.
// POST: rows are ordered by practice date, then athlete name
func QueryGetExport(ctx context.Context, query GetExportQuery, deps GetExportDeps) (GetExportResult, error) {
	t, err := loadTeam(ctx, deps.TeamStore, query.TeamID)
	if err != nil {
		return GetExportResult{}, err
	}
	records, err := deps.AttendanceStore.ListDetailed(ctx, t.ID, stats.Filter{})
	if err != nil {
		return GetExportResult{}, err
	}
	return GetExportResult{
		Team:     t,
		Document: export.FromRecords(t.Name, t.SeasonLabel, records),
		Filename: export.Filename(t.Name),
	}, nil
}
