package orchestrators

import (
	"database/sql"
	"errors"
)

// Orchestrator errors mapped by the HTTP layer.
var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrPracticeNotFound = errors.New("practice not found")
	ErrMissingSheetLink = errors.New("team has no sheet link")
	ErrSheetSyncFailed  = errors.New("sheet sync failed")
	ErrInvalidRecipient = errors.New("invalid recipient email address")
)

// isNotFound reports whether a store error means the row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
