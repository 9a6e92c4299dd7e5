package team

import (
	"errors"
	"strings"
)

// DefaultSeasonLabel is applied when a team is created without a season.
const DefaultSeasonLabel = "2025"

// MaxNameLength bounds user-editable team names.
const MaxNameLength = 100

// Domain errors
var (
	ErrNameRequired       = errors.New("team name is required")
	ErrNameTooLong        = errors.New("team name cannot exceed 100 characters")
	ErrLevelRequired      = errors.New("team level is required")
	ErrGradeRangeRequired = errors.New("team grade range is required")
	ErrPINRequired        = errors.New("team PIN is required")
)

// Team is a roster owner: it holds athletes and practices and the PIN coaches use to reach them.
type Team struct {
	ID             string
	Name           string
	Level          string
	GradeRange     string
	PIN            string
	SeasonLabel    string
	GoogleSheetURL string
}

// Normalize trims every user-supplied field and applies the default season.
// POST: SeasonLabel is never empty
func (t *Team) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Level = strings.TrimSpace(t.Level)
	t.GradeRange = strings.TrimSpace(t.GradeRange)
	t.PIN = strings.TrimSpace(t.PIN)
	t.SeasonLabel = strings.TrimSpace(t.SeasonLabel)
	t.GoogleSheetURL = strings.TrimSpace(t.GoogleSheetURL)
	if t.SeasonLabel == "" {
		t.SeasonLabel = DefaultSeasonLabel
	}
}

// Validate checks if the Team has valid data.
// PRE: Normalize has been called
// POST: Returns the first missing required field, nil otherwise
func (t *Team) Validate() error {
	if t.Name == "" {
		return ErrNameRequired
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if t.Level == "" {
		return ErrLevelRequired
	}
	if t.GradeRange == "" {
		return ErrGradeRangeRequired
	}
	if t.PIN == "" {
		return ErrPINRequired
	}
	return nil
}

// HasSheet reports whether an external roster source is configured.
func (t *Team) HasSheet() bool {
	return t.GoogleSheetURL != ""
}
