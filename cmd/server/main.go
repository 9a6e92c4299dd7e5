package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/email"
	web "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/http"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/sheets"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage"
	athleteStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/athlete"
	attendanceStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/attendance"
	auditStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/audit"
	practiceStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/practice"
	teamStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/team"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/orchestrators"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/config"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/access"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// WAL mode, foreign keys and busy timeout on every connection
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	timedDB := storage.NewTimedDB(db, cfg.SlowQuery, logger)
	stores := web.Stores{
		TeamStore:       teamStore.NewSQLiteStore(timedDB),
		AthleteStore:    athleteStore.NewSQLiteStore(timedDB),
		PracticeStore:   practiceStore.NewSQLiteStore(timedDB),
		AttendanceStore: attendanceStore.NewSQLiteStore(timedDB),
		AuditStore:      auditStore.NewSQLiteStore(timedDB),
	}

	seeds, err := loadSeedTeams(cfg.SeedFile)
	if err != nil {
		log.Fatalf("failed to load seed teams: %v", err)
	}
	created, err := orchestrators.ExecuteSeedTeams(context.Background(), seeds, orchestrators.SeedTeamsDeps{
		TeamStore:  stores.TeamStore,
		GenerateID: func() string { return uuid.New().String() },
	})
	if err != nil {
		log.Fatalf("failed to seed teams: %v", err)
	}
	if created > 0 {
		logger.Info("teams_seeded", "count", created)
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, logger)
		logger.Info("email_sender_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender(logger)
		if cfg.IsProduction() {
			logger.Warn("email_sender_configured", "provider", "noop", "note", "ATTENDANCE_RESEND_KEY is not set; export emails are not delivered")
		} else {
			logger.Info("email_sender_configured", "provider", "noop")
		}
	}
	if cfg.AdminPIN == "" {
		logger.Warn("admin_disabled", "note", "set ATTENDANCE_ADMIN_PIN to enable the admin page")
	}

	srv, err := web.NewServer(stores, web.Options{
		Guard:        access.NewGuard(cfg.Access()),
		CSRFKey:      cfg.CSRFKey,
		Secure:       cfg.IsProduction(),
		RateLimit:    cfg.RateLimit,
		Location:     cfg.Location,
		EmailSender:  sender,
		EmailFrom:    cfg.EmailFrom,
		SheetFetcher: sheets.NewClient(cfg.SheetTimeout),
		SheetTimeout: cfg.SheetTimeout,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("failed to load pages: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown_failed", "error", err.Error())
		}
	}()

	logger.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "schema", storage.LatestSchemaVersion())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	logger.Info("server_stopped")
}

// newLogger writes JSON in production and text elsewhere.
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadSeedTeams reads path, or returns the built-in Cadott teams when path is empty.
func loadSeedTeams(path string) ([]orchestrators.SeedTeam, error) {
	if path == "" {
		return orchestrators.DefaultSeedTeams, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return orchestrators.ParseSeedTeams(f)
}
