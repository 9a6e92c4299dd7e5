package projections

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// GetPracticeCheckInQuery carries query parameters.
type GetPracticeCheckInQuery struct {
	TeamID     string
	PracticeID string
}

// GetPracticeCheckInResult carries one session's attendance sheet.
type GetPracticeCheckInResult struct {
	Team     team.Team
	Practice practice.Practice
	Records  []stats.Record // ordered by athlete name
	Totals   stats.Totals
	Statuses []string
}

// GetPracticeCheckInDeps holds dependencies for GetPracticeCheckIn.
type GetPracticeCheckInDeps struct {
	TeamStore       TeamStore
	PracticeStore   PracticeStore
	AttendanceStore AttendanceStore
}

// QueryGetPracticeCheckIn loads a session and every attendance row for it.
// PRE: caller holds team access
// POST: ErrPracticeNotFound when the practice is missing or owned by another team
func QueryGetPracticeCheckIn(ctx context.Context, query GetPracticeCheckInQuery, deps GetPracticeCheckInDeps) (GetPracticeCheckInResult, error) {
	t, err := loadTeam(ctx, deps.TeamStore, query.TeamID)
	if err != nil {
		return GetPracticeCheckInResult{}, err
	}
	p, err := deps.PracticeStore.GetByID(ctx, query.PracticeID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && p.TeamID != t.ID) {
		return GetPracticeCheckInResult{}, ErrPracticeNotFound
	}
	if err != nil {
		return GetPracticeCheckInResult{}, err
	}

	records, err := deps.AttendanceStore.ListDetailed(ctx, t.ID, stats.Filter{PracticeID: p.ID})
	if err != nil {
		return GetPracticeCheckInResult{}, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].AthleteName < records[j].AthleteName })

	return GetPracticeCheckInResult{
		Team:     t,
		Practice: p,
		Records:  records,
		Totals:   stats.Aggregate(records).Totals,
		Statuses: attendance.Statuses,
	}, nil
}
