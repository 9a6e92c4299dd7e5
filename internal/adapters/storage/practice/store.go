package practice

import (
	"context"

	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
)

// Store persists Practice state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Practice, error)
	ListByTeam(ctx context.Context, teamID string) ([]domain.Practice, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
	Save(ctx context.Context, value domain.Practice) error
}
