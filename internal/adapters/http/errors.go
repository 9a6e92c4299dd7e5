package web

import (
	"database/sql"
	"errors"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/attendance"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// validationErrors are form problems answered with a silent redirect.
var validationErrors = []error{
	team.ErrNameRequired,
	team.ErrNameTooLong,
	team.ErrLevelRequired,
	team.ErrGradeRangeRequired,
	team.ErrPINRequired,
	athlete.ErrTeamRequired,
	athlete.ErrNameRequired,
	athlete.ErrGradeRequired,
	athlete.ErrJerseyRequired,
	practice.ErrTeamRequired,
	practice.ErrDateRequired,
	practice.ErrInvalidType,
	attendance.ErrInvalidStatus,
}

func isValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// isMissing reports a store-level not-found.
func isMissing(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
