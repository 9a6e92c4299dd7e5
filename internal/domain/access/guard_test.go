package access

import (
	"errors"
	"testing"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

func TestSign_DeterministicAndKeyed(t *testing.T) {
	a := Sign("1001", "s3cret")
	if a != Sign("1001", "s3cret") {
		t.Fatal("Sign is not deterministic")
	}
	if a == Sign("1002", "s3cret") {
		t.Error("different PIN produced the same token")
	}
	if a == Sign("1001", "other") {
		t.Error("different secret produced the same token")
	}
	if len(a) != 64 {
		t.Errorf("len(token) = %d, want 64 hex chars", len(a))
	}
}

func TestSign_KnownVector(t *testing.T) {
	// HMAC-SHA256(key="key", msg="The quick brown fox jumps over the lazy dog")
	got := Sign("The quick brown fox jumps over the lazy dog", "key")
	want := "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"
	if got != want {
		t.Errorf("Sign = %s, want %s", got, want)
	}
}

func TestGuard_AuthorizeTeam(t *testing.T) {
	g := NewGuard(Config{Secret: "s3cret"})
	tm := team.Team{ID: "t1", PIN: "1001"}

	if !g.AuthorizeTeam(Sign("1001", "s3cret"), tm) {
		t.Error("correct token was rejected")
	}
	for _, token := range []string{"", "1001", Sign("9999", "s3cret"), Sign("1001", "wrong")} {
		if g.AuthorizeTeam(token, tm) {
			t.Errorf("token %q was accepted", token)
		}
	}
	if g.AuthorizeTeam(Sign("1001", "s3cret"), team.Team{}) {
		t.Error("unknown team was authorized")
	}
}

func TestGuard_TokenInvalidatedByPINChange(t *testing.T) {
	g := NewGuard(Config{Secret: "s3cret"})
	tm := team.Team{ID: "t1", PIN: "1001"}
	token := g.TeamToken(tm)

	tm.PIN = "2002"
	if g.AuthorizeTeam(token, tm) {
		t.Error("old token still valid after PIN change")
	}
}

func TestGuard_DefaultSecret(t *testing.T) {
	g := NewGuard(Config{})
	tm := team.Team{ID: "t1", PIN: "1001"}
	if !g.AuthorizeTeam(Sign("1001", DefaultSecret), tm) {
		t.Error("guard without secret should sign with DefaultSecret")
	}
}

func TestGuard_VerifyTeamPIN(t *testing.T) {
	g := NewGuard(Config{Secret: "s3cret"})
	tm := team.Team{ID: "t1", PIN: "1001"}

	token, err := g.VerifyTeamPIN(tm, " 1001 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.AuthorizeTeam(token, tm) {
		t.Error("issued token does not authorize the team")
	}
	if _, err := g.VerifyTeamPIN(tm, "1234"); !errors.Is(err, ErrInvalidPIN) {
		t.Errorf("wrong PIN err = %v, want ErrInvalidPIN", err)
	}
	if _, err := g.VerifyTeamPIN(tm, ""); !errors.Is(err, ErrInvalidPIN) {
		t.Errorf("blank PIN err = %v, want ErrInvalidPIN", err)
	}
}

func TestGuard_AdminDisabled(t *testing.T) {
	g := NewGuard(Config{Secret: "s3cret"})
	if g.AdminEnabled() {
		t.Fatal("admin should be disabled without a PIN")
	}
	if g.AuthorizeAdmin(Sign("", "s3cret")) {
		t.Error("admin authorized while disabled")
	}
	if _, err := g.VerifyAdminPIN("anything"); !errors.Is(err, ErrAdminDisabled) {
		t.Errorf("err = %v, want ErrAdminDisabled", err)
	}
}

func TestGuard_Admin(t *testing.T) {
	g := NewGuard(Config{Secret: "s3cret", AdminPIN: "9999"})
	token, err := g.VerifyAdminPIN("9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.AuthorizeAdmin(token) {
		t.Error("admin token rejected")
	}
	if g.AuthorizeAdmin(Sign("1111", "s3cret")) {
		t.Error("wrong admin token accepted")
	}
	if _, err := g.VerifyAdminPIN("1111"); !errors.Is(err, ErrInvalidPIN) {
		t.Errorf("err = %v, want ErrInvalidPIN", err)
	}
}

func TestTeamCookie(t *testing.T) {
	if TeamCookieName("abc") != "team_access_abc" {
		t.Errorf("TeamCookieName = %q", TeamCookieName("abc"))
	}
	if TeamCookiePath("abc") != "/team/abc" {
		t.Errorf("TeamCookiePath = %q", TeamCookiePath("abc"))
	}
}
