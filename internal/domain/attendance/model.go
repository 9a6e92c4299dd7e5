package attendance

import (
	"errors"
	"strings"
)

// Attendance statuses
const (
	StatusAbsent  = "ABSENT"
	StatusPresent = "PRESENT"
	StatusExcused = "EXCUSED"
)

// Statuses lists the accepted statuses in check-in button order.
var Statuses = []string{StatusPresent, StatusAbsent, StatusExcused}

// Domain errors
var (
	ErrAthleteRequired  = errors.New("attendance must reference an athlete")
	ErrPracticeRequired = errors.New("attendance must reference a practice")
	ErrInvalidStatus    = errors.New("status must be PRESENT, ABSENT, or EXCUSED")
	ErrNotFound         = errors.New("attendance record not found")
)

// Attendance links one athlete to one practice.
// INVARIANT: at most one record exists per (AthleteID, PracticeID)
type Attendance struct {
	ID         string
	AthleteID  string
	PracticeID string
	Status     string
}

// New returns an ABSENT record for the athlete/practice pair.
func New(id, athleteID, practiceID string) Attendance {
	return Attendance{ID: id, AthleteID: athleteID, PracticeID: practiceID, Status: StatusAbsent}
}

// Validate checks if the Attendance has valid data.
// PRE: Attendance struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (a *Attendance) Validate() error {
	if a.AthleteID == "" {
		return ErrAthleteRequired
	}
	if a.PracticeID == "" {
		return ErrPracticeRequired
	}
	if !IsValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsPresent reports whether the athlete was marked present.
func (a *Attendance) IsPresent() bool {
	return a.Status == StatusPresent
}

// IsValidStatus reports whether s is one of the three statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusAbsent, StatusPresent, StatusExcused:
		return true
	}
	return false
}

// ParseStatus upper-cases and validates a submitted status.
func ParseStatus(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
