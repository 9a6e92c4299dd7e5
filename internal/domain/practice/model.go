package practice

import (
	"errors"
	"strings"
	"time"
)

// Session types
const (
	TypePractice = "PRACTICE"
	TypeGame     = "GAME"
	TypeOther    = "OTHER"
)

// DefaultTitle is shown for sessions created without a title.
const DefaultTitle = "Practice Session"

// Domain errors
var (
	ErrTeamRequired = errors.New("practice must belong to a team")
	ErrDateRequired = errors.New("practice date is required")
	ErrInvalidType  = errors.New("practice type must be PRACTICE, GAME, or OTHER")
)

// Types lists the accepted session types in display order.
var Types = []string{TypePractice, TypeGame, TypeOther}

// Practice is a dated session (practice, game or other event) for which attendance is tracked.
type Practice struct {
	ID     string
	TeamID string
	Date   time.Time
	Type   string
	Title  string
}

// Validate checks if the Practice has valid data.
// PRE: Practice struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Practice) Validate() error {
	if p.TeamID == "" {
		return ErrTeamRequired
	}
	if p.Date.IsZero() {
		return ErrDateRequired
	}
	if !IsValidType(p.Type) {
		return ErrInvalidType
	}
	return nil
}

// DisplayTitle returns the title, or DefaultTitle when none was given.
func (p *Practice) DisplayTitle() string {
	if p.Title == "" {
		return DefaultTitle
	}
	return p.Title
}

// IsValidType reports whether t is one of the session types.
func IsValidType(t string) bool {
	switch t {
	case TypePractice, TypeGame, TypeOther:
		return true
	}
	return false
}

// ParseType upper-cases and validates a submitted type, defaulting blank input to PRACTICE.
// PRE: none
// POST: Returns a valid type or ErrInvalidType
func ParseType(raw string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return TypePractice, nil
	}
	if !IsValidType(t) {
		return "", ErrInvalidType
	}
	return t, nil
}

// dateLayouts are the accepted form encodings for a session date.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseDate parses a datetime-local or date form value in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrDateRequired
	}
	for _, layout := range dateLayouts {
		if d, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return d, nil
		}
	}
	return time.Time{}, ErrDateRequired
}
