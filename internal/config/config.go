// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/access"
)

// EnvProduction is the ATTENDANCE_ENV value that enables production behaviour.
const EnvProduction = "production"

// Config is the resolved process configuration.
type Config struct {
	Addr         string
	DBPath       string
	Env          string
	PINSecret    string
	AdminPIN     string
	CSRFKey      []byte
	SeedFile     string
	SheetTimeout time.Duration
	SlowQuery    time.Duration
	RateLimit    int
	ResendKey    string
	EmailFrom    string
	LogLevel     slog.Level
	Location     *time.Location
}

// Config errors
var (
	ErrCSRFKeyRequired = errors.New("ATTENDANCE_CSRF_KEY is required in production")
	ErrCSRFKeyInvalid  = errors.New("ATTENDANCE_CSRF_KEY must be 64 hex characters")
)

// Load reads .env (if present) and the ATTENDANCE_* environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup resolves configuration through lookup, which has the shape of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup("ATTENDANCE_" + key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Addr:      get("ADDR", ":8080"),
		DBPath:    get("DB_PATH", "attendance.db"),
		Env:       get("ENV", "development"),
		PINSecret: get("PIN_SECRET", access.DefaultSecret),
		AdminPIN:  get("ADMIN_PIN", ""),
		SeedFile:  get("SEED_FILE", ""),
		ResendKey: get("RESEND_KEY", ""),
		EmailFrom: get("EMAIL_FROM", "Cadott Attendance <attendance@cadott.example>"),
	}

	var err error
	if cfg.SheetTimeout, err = time.ParseDuration(get("SHEET_TIMEOUT", "15s")); err != nil {
		return Config{}, fmt.Errorf("ATTENDANCE_SHEET_TIMEOUT: %w", err)
	}
	slowMS, err := strconv.Atoi(get("SLOW_QUERY_MS", "50"))
	if err != nil || slowMS < 0 {
		return Config{}, fmt.Errorf("ATTENDANCE_SLOW_QUERY_MS: invalid value %q", get("SLOW_QUERY_MS", ""))
	}
	cfg.SlowQuery = time.Duration(slowMS) * time.Millisecond
	if cfg.RateLimit, err = strconv.Atoi(get("RATE_LIMIT", "20")); err != nil || cfg.RateLimit <= 0 {
		return Config{}, fmt.Errorf("ATTENDANCE_RATE_LIMIT: invalid value %q", get("RATE_LIMIT", ""))
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("ATTENDANCE_LOG_LEVEL: %w", err)
	}
	if cfg.Location, err = time.LoadLocation(get("TIMEZONE", "America/Chicago")); err != nil {
		return Config{}, fmt.Errorf("ATTENDANCE_TIMEZONE: %w", err)
	}
	if cfg.CSRFKey, err = csrfKey(get("CSRF_KEY", ""), cfg.IsProduction()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Access returns the explicit signing configuration for the access guard.
func (c Config) Access() access.Config {
	return access.Config{Secret: c.PINSecret, AdminPIN: c.AdminPIN}
}

// csrfKey decodes the configured key or, outside production, generates a random one.
func csrfKey(raw string, production bool) ([]byte, error) {
	if raw == "" {
		if production {
			return nil, ErrCSRFKeyRequired
		}
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate csrf key: %w", err)
		}
		return key, nil
	}
	key, err := hex.DecodeString(raw)
	if err != nil || len(key) != 32 {
		return nil, ErrCSRFKeyInvalid
	}
	return key, nil
}
