// Package audit records coach and administrator actions for the admin activity log.
package audit

import (
	"errors"
	"time"
)

// Action names what happened.
type Action string

const (
	ActionTeamCreated    Action = "team_created"
	ActionTeamUnlocked   Action = "team_unlocked"
	ActionPINRejected    Action = "pin_rejected"
	ActionPINReset       Action = "team_pin_reset"
	ActionAdminLogin     Action = "admin_login"
	ActionRosterImported Action = "roster_imported"
	ActionSheetSynced    Action = "sheet_synced"
	ActionExportEmailed  Action = "export_emailed"
)

var (
	ErrIDRequired     = errors.New("audit event id is required")
	ErrActionRequired = errors.New("audit event action is required")
)

// Event represents a single audit log entry.
type Event struct {
	ID          string
	Timestamp   time.Time
	Action      Action
	TeamID      string // empty for events outside a team
	Description string
	IPAddress   string
}

// NewEvent creates an event for action at the given time.
// PRE: id and action are non-empty
func NewEvent(id string, at time.Time, action Action) Event {
	return Event{ID: id, Timestamp: at, Action: action}
}

// WithTeam sets the team the event concerns.
func (e Event) WithTeam(teamID string) Event {
	e.TeamID = teamID
	return e
}

// WithDescription sets the human-readable summary.
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}

// WithIP sets the client address.
func (e Event) WithIP(ip string) Event {
	e.IPAddress = ip
	return e
}

// Validate checks the event is storable.
func (e Event) Validate() error {
	if e.ID == "" {
		return ErrIDRequired
	}
	if e.Action == "" {
		return ErrActionRequired
	}
	return nil
}
