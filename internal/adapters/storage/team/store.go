package team

import (
	"context"

	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// Store persists Team state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Team, error)
	GetByName(ctx context.Context, name string) (domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Save(ctx context.Context, value domain.Team) error
}
