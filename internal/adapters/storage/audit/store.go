package audit

import (
	"context"

	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/audit"
)

// Store defines the interface for audit event persistence.
type Store interface {
	// Save persists an audit event.
	// PRE: event is valid
	// POST: Event is persisted
	Save(ctx context.Context, event domain.Event) error

	// List returns one page of events, optionally limited to one team.
	// PRE: limit > 0, offset >= 0
	// POST: Returns events ordered by timestamp desc
	List(ctx context.Context, filter Filter, limit, offset int) ([]domain.Event, error)

	// Count returns the number of events matching filter.
	Count(ctx context.Context, filter Filter) (int, error)
}

// Filter defines query parameters for listing audit events.
type Filter struct {
	TeamID *string
	Action *domain.Action
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)
