// Package stats computes attendance rates for a team over a set of attendance records.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
)

// Record is one attendance row annotated with its practice and athlete.
type Record struct {
	AttendanceID  string
	Status        string
	PracticeID    string
	PracticeDate  time.Time
	PracticeType  string
	PracticeTitle string
	AthleteID     string
	AthleteName   string
	Grade         string
	JerseyNumber  string
}

// Totals is a present/total pair with its rounded percentage.
type Totals struct {
	Present int
	Total   int
	Rate    int
}

func (t *Totals) add(status string) {
	t.Total++
	if status == attendance.StatusPresent {
		t.Present++
	}
}

// PracticeRow summarizes one practice.
type PracticeRow struct {
	PracticeID string
	Date       time.Time
	Type       string
	Title      string
	Totals
}

// AthleteRow summarizes one athlete.
type AthleteRow struct {
	AthleteID    string
	Name         string
	Grade        string
	JerseyNumber string
	Totals
}

// Summary is the aggregate view of a filtered record set.
type Summary struct {
	Totals
	Practices []PracticeRow // most recent first
	Athletes  []AthleteRow  // highest rate first, ties in encounter order
}

// Rate returns round(present/total*100) with halves rounded up, or 0 when total is 0.
func Rate(present, total int) int {
	if total <= 0 {
		return 0
	}
	return (present*200 + total) / (2 * total)
}

// Aggregate computes overall, per-practice and per-athlete totals in a single pass.
// PRE: records are already filtered
// POST: every distinct practice and athlete in records appears exactly once
func Aggregate(records []Record) Summary {
	var sum Summary
	practiceIdx := make(map[string]int)
	athleteIdx := make(map[string]int)

	for _, rec := range records {
		sum.add(rec.Status)

		i, ok := practiceIdx[rec.PracticeID]
		if !ok {
			i = len(sum.Practices)
			practiceIdx[rec.PracticeID] = i
			sum.Practices = append(sum.Practices, PracticeRow{
				PracticeID: rec.PracticeID,
				Date:       rec.PracticeDate,
				Type:       rec.PracticeType,
				Title:      rec.PracticeTitle,
			})
		}
		sum.Practices[i].add(rec.Status)

		j, ok := athleteIdx[rec.AthleteID]
		if !ok {
			j = len(sum.Athletes)
			athleteIdx[rec.AthleteID] = j
			sum.Athletes = append(sum.Athletes, AthleteRow{
				AthleteID:    rec.AthleteID,
				Name:         rec.AthleteName,
				Grade:        rec.Grade,
				JerseyNumber: rec.JerseyNumber,
			})
		}
		sum.Athletes[j].add(rec.Status)
	}

	sum.Rate = Rate(sum.Present, sum.Total)
	for i := range sum.Practices {
		sum.Practices[i].Rate = Rate(sum.Practices[i].Present, sum.Practices[i].Total)
	}
	for i := range sum.Athletes {
		sum.Athletes[i].Rate = Rate(sum.Athletes[i].Present, sum.Athletes[i].Total)
	}

	sort.SliceStable(sum.Practices, func(a, b int) bool {
		return sum.Practices[a].Date.After(sum.Practices[b].Date)
	})
	sort.SliceStable(sum.Athletes, func(a, b int) bool {
		return sum.Athletes[a].Rate > sum.Athletes[b].Rate
	})
	return sum
}

// Filter narrows records by practice date and practice id. Zero values disable a bound.
type Filter struct {
	Start      time.Time
	End        time.Time
	PracticeID string
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() && f.PracticeID == ""
}

// Matches reports whether rec falls inside the filter. Both bounds are inclusive.
func (f Filter) Matches(rec Record) bool {
	if f.PracticeID != "" && rec.PracticeID != f.PracticeID {
		return false
	}
	if !f.Start.IsZero() && rec.PracticeDate.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && rec.PracticeDate.After(f.End) {
		return false
	}
	return true
}

// ParseFilter builds a Filter from YYYY-MM-DD query values interpreted in loc.
// The end date is extended to the last instant of that day. Unparseable dates are ignored.
func ParseFilter(start, end, practiceID string, loc *time.Location) Filter {
	f := Filter{PracticeID: strings.TrimSpace(practiceID)}
	if d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(start), loc); err == nil {
		f.Start = d
	}
	if d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(end), loc); err == nil {
		f.End = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return f
}

// Apply returns the records matching f, preserving order.
func (f Filter) Apply(records []Record) []Record {
	if f.IsZero() {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
