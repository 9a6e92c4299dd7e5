package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/access"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const teamContextKey contextKey = "team"

// TeamLookup loads a team by id; a missing team must wrap sql.ErrNoRows.
type TeamLookup func(ctx context.Context, id string) (team.Team, error)

// RequireTeam returns middleware for pages under /team/{teamID}. Unknown teams go back to
// the team list and callers without a valid access cookie go to the team's PIN form.
// PRE: the route pattern declares a {teamID} wildcard
func RequireTeam(lookup TeamLookup, guard *access.Guard) func(http.Handler) http.Handler {
	return teamGate(lookup, guard, func(w http.ResponseWriter, r *http.Request, teamID string, found bool) {
		if !found {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/team/"+teamID+"/pin", http.StatusSeeOther)
	})
}

// RequireTeamFile is RequireTeam for file downloads: it answers with plain 404 or 401
// bodies instead of redirects.
func RequireTeamFile(lookup TeamLookup, guard *access.Guard) func(http.Handler) http.Handler {
	return teamGate(lookup, guard, func(w http.ResponseWriter, _ *http.Request, _ string, found bool) {
		if !found {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

type denyFunc func(w http.ResponseWriter, r *http.Request, teamID string, found bool)

func teamGate(lookup TeamLookup, guard *access.Guard, deny denyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			teamID := r.PathValue("teamID")
			t, err := lookup(r.Context(), teamID)
			if errors.Is(err, sql.ErrNoRows) {
				deny(w, r, teamID, false)
				return
			}
			if err != nil {
				slog.Error("internal_error", "error", err.Error())
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !guard.AuthorizeTeam(CookieValue(r, access.TeamCookieName(t.ID)), t) {
				deny(w, r, t.ID, true)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithTeam(r.Context(), t)))
		})
	}
}

// IsAdmin reports whether the request carries a valid admin cookie.
func IsAdmin(r *http.Request, guard *access.Guard) bool {
	return guard.AuthorizeAdmin(CookieValue(r, access.AdminCookieName))
}

// ContextWithTeam returns a context carrying the authorized team.
func ContextWithTeam(ctx context.Context, t team.Team) context.Context {
	return context.WithValue(ctx, teamContextKey, t)
}

// TeamFromContext extracts the team set by RequireTeam.
func TeamFromContext(ctx context.Context) (team.Team, bool) {
	t, ok := ctx.Value(teamContextKey).(team.Team)
	return t, ok
}

// CookieValue returns the named cookie's value, or "" when absent.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetAccessCookie stores an access token. The cookie has no expiry and lives until the
// browser session ends or the token stops matching.
func SetAccessCookie(w http.ResponseWriter, name, path, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     path,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAccessCookie removes an access cookie.
func ClearAccessCookie(w http.ResponseWriter, name, path string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
