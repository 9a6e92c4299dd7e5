package orchestrators

import (
	"context"
	"fmt"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
)

// PracticeStoreForLookup resolves a session.
type PracticeStoreForLookup interface {
	GetByID(ctx context.Context, id string) (practice.Practice, error)
}

// AttendanceStoreForUpdate defines the store interface needed by UpdateAttendanceStatus.
type AttendanceStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (attendance.Attendance, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// UpdateAttendanceStatusInput identifies one check-in tap.
type UpdateAttendanceStatusInput struct {
	TeamID       string
	PracticeID   string
	AttendanceID string
	Status       string
}

// UpdateAttendanceStatusDeps holds dependencies for UpdateAttendanceStatus.
type UpdateAttendanceStatusDeps struct {
	PracticeStore   PracticeStoreForLookup
	AttendanceStore AttendanceStoreForUpdate
}

// ExecuteUpdateAttendanceStatus sets the status of one attendance record.
// PRE: caller holds team access
// POST: the record changes only if it belongs to the practice and the practice belongs to the team
func ExecuteUpdateAttendanceStatus(ctx context.Context, input UpdateAttendanceStatusInput, deps UpdateAttendanceStatusDeps) error {
	status, err := attendance.ParseStatus(input.Status)
	if err != nil {
		return err
	}

	p, err := deps.PracticeStore.GetByID(ctx, input.PracticeID)
	if err != nil {
		if isNotFound(err) {
			return ErrPracticeNotFound
		}
		return err
	}
	if p.TeamID != input.TeamID {
		return ErrPracticeNotFound
	}

	rec, err := deps.AttendanceStore.GetByID(ctx, input.AttendanceID)
	if err != nil {
		return err
	}
	if rec.PracticeID != p.ID {
		return fmt.Errorf("attendance %s is not part of practice %s: %w", rec.ID, p.ID, attendance.ErrNotFound)
	}
	if rec.Status == status {
		return nil
	}
	return deps.AttendanceStore.UpdateStatus(ctx, rec.ID, status)
}
