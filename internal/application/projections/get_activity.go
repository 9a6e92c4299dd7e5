package projections

import (
	"context"
	"time"

	auditStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/audit"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/listutil"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/audit"
)

// AuditStore defines the audit read needed by the activity projection.
type AuditStore interface {
	List(ctx context.Context, filter auditStore.Filter, limit, offset int) ([]audit.Event, error)
	Count(ctx context.Context, filter auditStore.Filter) (int, error)
}

// ActivityRow is one line of the admin activity list.
type ActivityRow struct {
	Timestamp   time.Time
	Action      audit.Action
	TeamName    string // empty when the event has no team or the team is gone
	Description string
	IPAddress   string
}

// GetActivityResult is one page of the activity log.
type GetActivityResult struct {
	Rows []ActivityRow
	Page listutil.PageInfo
}

// GetActivityDeps holds dependencies for GetActivity.
type GetActivityDeps struct {
	AuditStore AuditStore
	TeamStore  TeamStore
}

// QueryGetActivity lists one page of audit events, newest first, with team names resolved.
// PRE: caller holds admin access
// POST: a page past the end is clamped to the last page
func QueryGetActivity(ctx context.Context, page listutil.PageParams, deps GetActivityDeps) (GetActivityResult, error) {
	total, err := deps.AuditStore.Count(ctx, auditStore.Filter{})
	if err != nil {
		return GetActivityResult{}, err
	}
	info := listutil.NewPageInfo(page, total)
	events, err := deps.AuditStore.List(ctx, auditStore.Filter{}, info.PerPage, info.Offset())
	if err != nil {
		return GetActivityResult{}, err
	}
	teams, err := deps.TeamStore.List(ctx)
	if err != nil {
		return GetActivityResult{}, err
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	rows := make([]ActivityRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, ActivityRow{
			Timestamp:   e.Timestamp,
			Action:      e.Action,
			TeamName:    names[e.TeamID],
			Description: e.Description,
			IPAddress:   e.IPAddress,
		})
	}
	return GetActivityResult{Rows: rows, Page: info}, nil
}
