package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
)

var (
	day1 = time.Date(2025, 9, 1, 17, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 9, 3, 17, 0, 0, 0, time.UTC)
	day3 = time.Date(2025, 9, 5, 17, 0, 0, 0, time.UTC)
)

func rec(practiceID string, date time.Time, athleteID, status string) Record {
	return Record{
		AttendanceID: practiceID + "-" + athleteID,
		Status:       status,
		PracticeID:   practiceID,
		PracticeDate: date,
		AthleteID:    athleteID,
		AthleteName:  "Athlete " + athleteID,
	}
}

func TestRate(t *testing.T) {
	tests := []struct{ present, total, want int }{
		{0, 0, 0},
		{7, 10, 70},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},  // 12.5 rounds up
		{1, 200, 1}, // 0.5 rounds up
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := Rate(tt.present, tt.total); got != tt.want {
			t.Errorf("Rate(%d, %d) = %d, want %d", tt.present, tt.total, got, tt.want)
		}
	}
}

func TestAggregate_OverallRate(t *testing.T) {
	var records []Record
	for i := 0; i < 10; i++ {
		status := attendance.StatusAbsent
		if i < 7 {
			status = attendance.StatusPresent
		}
		records = append(records, rec("p1", day1, fmt.Sprintf("a%d", i), status))
	}
	sum := Aggregate(records)
	if sum.Rate != 70 || sum.Present != 7 || sum.Total != 10 {
		t.Errorf("summary = %+v, want 7/10 = 70", sum.Totals)
	}
}

func TestAggregate_Empty(t *testing.T) {
	sum := Aggregate(nil)
	if sum.Rate != 0 || sum.Total != 0 {
		t.Errorf("empty summary = %+v", sum.Totals)
	}
	if len(sum.Practices) != 0 || len(sum.Athletes) != 0 {
		t.Error("empty input should produce no rows")
	}
}

func TestAggregate_PracticesSortedByDateDesc(t *testing.T) {
	records := []Record{
		rec("p1", day1, "a1", attendance.StatusPresent),
		rec("p3", day3, "a1", attendance.StatusAbsent),
		rec("p2", day2, "a1", attendance.StatusPresent),
		rec("p2", day2, "a2", attendance.StatusExcused),
	}
	sum := Aggregate(records)
	if len(sum.Practices) != 3 {
		t.Fatalf("len(Practices) = %d, want 3", len(sum.Practices))
	}
	order := []string{sum.Practices[0].PracticeID, sum.Practices[1].PracticeID, sum.Practices[2].PracticeID}
	if order[0] != "p3" || order[1] != "p2" || order[2] != "p1" {
		t.Errorf("practice order = %v, want [p3 p2 p1]", order)
	}
	if p2 := sum.Practices[1]; p2.Present != 1 || p2.Total != 2 || p2.Rate != 50 {
		t.Errorf("p2 totals = %+v, want 1/2 = 50", p2.Totals)
	}
}

func TestAggregate_AthletesSortedByRateStable(t *testing.T) {
	records := []Record{
		rec("p1", day1, "low", attendance.StatusAbsent),
		rec("p1", day1, "tieA", attendance.StatusPresent),
		rec("p1", day1, "high", attendance.StatusPresent),
		rec("p1", day1, "tieB", attendance.StatusPresent),
		rec("p2", day2, "low", attendance.StatusAbsent),
		rec("p2", day2, "tieA", attendance.StatusAbsent),
		rec("p2", day2, "high", attendance.StatusPresent),
		rec("p2", day2, "tieB", attendance.StatusAbsent),
	}
	sum := Aggregate(records)
	var got []string
	for _, a := range sum.Athletes {
		got = append(got, a.AthleteID)
	}
	want := []string{"high", "tieA", "tieB", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("athlete order = %v, want %v", got, want)
		}
	}
	if sum.Athletes[0].Rate != 100 || sum.Athletes[1].Rate != 50 || sum.Athletes[3].Rate != 0 {
		t.Errorf("rates = %+v", sum.Athletes)
	}
}

func TestAggregate_ExcusedCountsTowardTotal(t *testing.T) {
	sum := Aggregate([]Record{
		rec("p1", day1, "a1", attendance.StatusPresent),
		rec("p1", day1, "a2", attendance.StatusExcused),
	})
	if sum.Rate != 50 {
		t.Errorf("Rate = %d, want 50", sum.Rate)
	}
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter("2025-09-01", "2025-09-03", " p2 ", time.UTC)
	if !f.Start.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", f.Start)
	}
	if f.End.Day() != 3 || f.End.Hour() != 23 || f.End.Minute() != 59 {
		t.Errorf("End = %v, want end of 2025-09-03", f.End)
	}
	if f.PracticeID != "p2" {
		t.Errorf("PracticeID = %q", f.PracticeID)
	}

	empty := ParseFilter("not-a-date", "", "", time.UTC)
	if !empty.IsZero() {
		t.Errorf("unparseable filter = %+v, want zero", empty)
	}
}

func TestFilter_ApplyInclusiveBounds(t *testing.T) {
	records := []Record{
		rec("p1", day1, "a1", attendance.StatusPresent),
		rec("p2", day2, "a1", attendance.StatusPresent),
		rec("p3", day3, "a1", attendance.StatusPresent),
	}
	f := ParseFilter("2025-09-03", "2025-09-05", "", time.UTC)
	got := f.Apply(records)
	if len(got) != 2 || got[0].PracticeID != "p2" || got[1].PracticeID != "p3" {
		t.Errorf("filtered = %+v, want p2 and p3", got)
	}

	byPractice := Filter{PracticeID: "p1"}.Apply(records)
	if len(byPractice) != 1 || byPractice[0].PracticeID != "p1" {
		t.Errorf("practice filter = %+v", byPractice)
	}
}
