package athlete

import (
	"context"

	domain "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
)

// Store persists Athlete state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Athlete, error)
	ListByTeam(ctx context.Context, teamID string) ([]domain.Athlete, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
	Save(ctx context.Context, value domain.Athlete) error
	Delete(ctx context.Context, teamID, id string) error
}
