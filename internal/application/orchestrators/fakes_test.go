package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	emailAdapter "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/email"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// sequentialIDs returns a generator producing prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type fakeTeamStore struct {
	teams   map[string]team.Team
	saveErr error
	saves   int
}

func newFakeTeamStore(teams ...team.Team) *fakeTeamStore {
	s := &fakeTeamStore{teams: make(map[string]team.Team)}
	for _, t := range teams {
		s.teams[t.ID] = t
	}
	return s
}

func (s *fakeTeamStore) GetByID(_ context.Context, id string) (team.Team, error) {
	t, ok := s.teams[id]
	if !ok {
		return team.Team{}, fmt.Errorf("team not found: %w", sql.ErrNoRows)
	}
	return t, nil
}

func (s *fakeTeamStore) GetByName(_ context.Context, name string) (team.Team, error) {
	for _, t := range s.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return team.Team{}, fmt.Errorf("team not found: %w", sql.ErrNoRows)
}

func (s *fakeTeamStore) Save(_ context.Context, t team.Team) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.teams[t.ID] = t
	return nil
}

type fakeAthleteStore struct {
	athletes map[string]athlete.Athlete
	saves    int
	saveErr  error
}

func newFakeAthleteStore(athletes ...athlete.Athlete) *fakeAthleteStore {
	s := &fakeAthleteStore{athletes: make(map[string]athlete.Athlete)}
	for _, a := range athletes {
		s.athletes[a.ID] = a
	}
	return s
}

func (s *fakeAthleteStore) GetByID(_ context.Context, id string) (athlete.Athlete, error) {
	a, ok := s.athletes[id]
	if !ok {
		return athlete.Athlete{}, fmt.Errorf("athlete not found: %w", sql.ErrNoRows)
	}
	return a, nil
}

func (s *fakeAthleteStore) ListByTeam(_ context.Context, teamID string) ([]athlete.Athlete, error) {
	var out []athlete.Athlete
	for _, a := range s.athletes {
		if a.TeamID == teamID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (s *fakeAthleteStore) Save(_ context.Context, a athlete.Athlete) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.athletes[a.ID] = a
	return nil
}

func (s *fakeAthleteStore) Delete(_ context.Context, teamID, id string) error {
	if a, ok := s.athletes[id]; ok && a.TeamID == teamID {
		delete(s.athletes, id)
	}
	return nil
}

type fakePracticeStore struct {
	practices map[string]practice.Practice
}

func newFakePracticeStore(practices ...practice.Practice) *fakePracticeStore {
	s := &fakePracticeStore{practices: make(map[string]practice.Practice)}
	for _, p := range practices {
		s.practices[p.ID] = p
	}
	return s
}

func (s *fakePracticeStore) GetByID(_ context.Context, id string) (practice.Practice, error) {
	p, ok := s.practices[id]
	if !ok {
		return practice.Practice{}, fmt.Errorf("practice not found: %w", sql.ErrNoRows)
	}
	return p, nil
}

func (s *fakePracticeStore) ListByTeam(_ context.Context, teamID string) ([]practice.Practice, error) {
	var out []practice.Practice
	for _, p := range s.practices {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *fakePracticeStore) Save(_ context.Context, p practice.Practice) error {
	s.practices[p.ID] = p
	return nil
}

// fakeAttendanceStore enforces one record per (athlete, practice).
type fakeAttendanceStore struct {
	records map[string]attendance.Attendance
	pairs   map[[2]string]bool
	updates int
	// detailed is returned verbatim by ListDetailed.
	detailed []stats.Record
}

func newFakeAttendanceStore(records ...attendance.Attendance) *fakeAttendanceStore {
	s := &fakeAttendanceStore{records: make(map[string]attendance.Attendance), pairs: make(map[[2]string]bool)}
	for _, r := range records {
		s.records[r.ID] = r
		s.pairs[[2]string{r.AthleteID, r.PracticeID}] = true
	}
	return s
}

func (s *fakeAttendanceStore) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r, ok := s.records[id]
	if !ok {
		return attendance.Attendance{}, fmt.Errorf("%w: %w", attendance.ErrNotFound, sql.ErrNoRows)
	}
	return r, nil
}

func (s *fakeAttendanceStore) CreateMissing(_ context.Context, records []attendance.Attendance) (int, error) {
	n := 0
	for _, r := range records {
		key := [2]string{r.AthleteID, r.PracticeID}
		if s.pairs[key] {
			continue
		}
		s.pairs[key] = true
		s.records[r.ID] = r
		n++
	}
	return n, nil
}

func (s *fakeAttendanceStore) UpdateStatus(_ context.Context, id, status string) error {
	r, ok := s.records[id]
	if !ok {
		return attendance.ErrNotFound
	}
	r.Status = status
	s.records[id] = r
	s.updates++
	return nil
}

func (s *fakeAttendanceStore) ListDetailed(_ context.Context, _ string, filter stats.Filter) ([]stats.Record, error) {
	return filter.Apply(s.detailed), nil
}

// countFor returns how many records reference athleteID.
func (s *fakeAttendanceStore) countFor(athleteID string) int {
	n := 0
	for _, r := range s.records {
		if r.AthleteID == athleteID {
			n++
		}
	}
	return n
}

type fakeSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

func (s *fakeSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if s.err != nil {
		return emailAdapter.SendResult{}, s.err
	}
	s.sent = append(s.sent, req)
	return emailAdapter.SendResult{MessageID: fmt.Sprintf("msg-%d", len(s.sent))}, nil
}

type fakeFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeFetcher) FetchCSV(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}
