package athlete

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrTeamRequired   = errors.New("athlete must belong to a team")
	ErrNameRequired   = errors.New("athlete name is required")
	ErrGradeRequired  = errors.New("athlete grade is required")
	ErrJerseyRequired = errors.New("athlete jersey number is required")
)

// Athlete is a roster entry belonging to exactly one team.
type Athlete struct {
	ID           string
	TeamID       string
	FullName     string
	Grade        string
	JerseyNumber string
}

// Validate checks if the Athlete has valid data.
// PRE: Athlete struct is initialized
// POST: Returns error if any required field is blank
// INVARIANT: Stored values keep their original casing
func (a *Athlete) Validate() error {
	if a.TeamID == "" {
		return ErrTeamRequired
	}
	if strings.TrimSpace(a.FullName) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(a.Grade) == "" {
		return ErrGradeRequired
	}
	if strings.TrimSpace(a.JerseyNumber) == "" {
		return ErrJerseyRequired
	}
	return nil
}
