// Package access decides whether a presented cookie value proves knowledge of a team
// or administrator PIN.
//
// A token is hex(HMAC-SHA256(secret, pin)). It carries no expiry: it stays valid until
// the PIN or the process secret changes.
package access

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// DefaultSecret is used when no signing secret is configured.
const DefaultSecret = "dev-change-me"

// Cookie names and paths.
const (
	AdminCookieName  = "admin_access"
	AdminCookiePath  = "/admin"
	teamCookiePrefix = "team_access_"
)

// Domain errors
var (
	ErrInvalidPIN    = errors.New("invalid PIN")
	ErrAdminDisabled = errors.New("admin PIN is not configured")
)

// Config carries the process-wide signing inputs.
type Config struct {
	Secret   string
	AdminPIN string
}

// Guard checks presented tokens against team and admin PINs.
type Guard struct {
	secret   string
	adminPIN string
}

// NewGuard builds a Guard from explicit configuration.
// POST: an empty Secret falls back to DefaultSecret; an empty AdminPIN disables admin access
func NewGuard(cfg Config) *Guard {
	secret := cfg.Secret
	if secret == "" {
		secret = DefaultSecret
	}
	return &Guard{secret: secret, adminPIN: strings.TrimSpace(cfg.AdminPIN)}
}

// Sign returns the hex-encoded keyed signature of pin.
func Sign(pin, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(pin))
	return hex.EncodeToString(mac.Sum(nil))
}

// TeamCookieName returns the cookie carrying the token for teamID.
func TeamCookieName(teamID string) string {
	return teamCookiePrefix + teamID
}

// TeamCookiePath scopes the team cookie to that team's pages.
func TeamCookiePath(teamID string) string {
	return "/team/" + teamID
}

// TeamToken returns the token that authorizes t.
func (g *Guard) TeamToken(t team.Team) string {
	return Sign(t.PIN, g.secret)
}

// AuthorizeTeam reports whether token proves knowledge of t's PIN.
// PRE: t was loaded from storage
// POST: false for an empty token or a team without a PIN
func (g *Guard) AuthorizeTeam(token string, t team.Team) bool {
	if token == "" || t.ID == "" || t.PIN == "" {
		return false
	}
	return equal(token, g.TeamToken(t))
}

// VerifyTeamPIN checks a submitted PIN and returns the cookie token on success.
func (g *Guard) VerifyTeamPIN(t team.Team, pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" || t.PIN == "" || !equal(pin, t.PIN) {
		return "", ErrInvalidPIN
	}
	return Sign(pin, g.secret), nil
}

// AdminEnabled reports whether an administrator PIN is configured.
func (g *Guard) AdminEnabled() bool {
	return g.adminPIN != ""
}

// AdminToken returns the admin token, or "" when admin access is disabled.
func (g *Guard) AdminToken() string {
	if !g.AdminEnabled() {
		return ""
	}
	return Sign(g.adminPIN, g.secret)
}

// AuthorizeAdmin reports whether token proves knowledge of the admin PIN.
// INVARIANT: never true while the admin PIN is unconfigured
func (g *Guard) AuthorizeAdmin(token string) bool {
	if !g.AdminEnabled() || token == "" {
		return false
	}
	return equal(token, g.AdminToken())
}

// VerifyAdminPIN checks a submitted admin PIN and returns the cookie token on success.
func (g *Guard) VerifyAdminPIN(pin string) (string, error) {
	if !g.AdminEnabled() {
		return "", ErrAdminDisabled
	}
	pin = strings.TrimSpace(pin)
	if pin == "" || !equal(pin, g.adminPIN) {
		return "", ErrInvalidPIN
	}
	return g.AdminToken(), nil
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
