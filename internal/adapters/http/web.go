package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/email"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/http/middleware"
	athleteStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/athlete"
	attendanceStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/attendance"
	auditStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/audit"
	practiceStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/practice"
	teamStore "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/storage/team"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/application/orchestrators"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/access"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/team"
)

// Stores holds all storage dependencies.
type Stores struct {
	TeamStore       teamStore.Store
	AthleteStore    athleteStore.Store
	PracticeStore   practiceStore.Store
	AttendanceStore attendanceStore.Store
	AuditStore      auditStore.Store // optional; nil disables the activity log
}

// Options configures a Server. Zero values fall back to development defaults.
type Options struct {
	Guard          *access.Guard
	CSRFKey        []byte // 32 bytes
	Secure         bool   // HTTPS deployment: secure cookies and strict CSRF origin checks
	TrustedOrigins []string
	RateLimit      int // requests per second per IP; 0 disables
	SlowRequest    time.Duration
	Location       *time.Location
	EmailSender    email.Sender
	EmailFrom      string
	SheetFetcher   orchestrators.SheetFetcher
	SheetTimeout   time.Duration
	Clock          clockwork.Clock
	Logger         *slog.Logger
	GenerateID     func() string
}

// Server serves the attendance web UI.
type Server struct {
	stores Stores
	opts   Options
	pages  *pageSet
}

// NewServer wires handlers for the app.
// PRE: stores are non-nil; opts.Guard, opts.SheetFetcher and opts.EmailSender are set
func NewServer(stores Stores, opts Options) (*Server, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.GenerateID == nil {
		opts.GenerateID = generateID
	}
	pages, err := loadPages(opts.Location)
	if err != nil {
		return nil, err
	}
	return &Server{stores: stores, opts: opts, pages: pages}, nil
}

// Handler returns the routes wrapped in the middleware chain.
// Order (outer to inner): Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux
func (s *Server) Handler() http.Handler {
	limiter := middleware.NewRateLimiter(s.opts.RateLimit, time.Second, s.opts.Clock)
	return middleware.Chain(s.Routes(),
		middleware.SecurityHeaders,
		middleware.CSRF(s.opts.CSRFKey, s.opts.Secure, s.opts.TrustedOrigins),
		middleware.RateLimit(limiter),
		middleware.Timing(s.opts.Logger, s.opts.SlowRequest),
	)
}

// lookupTeam adapts the team store for the access middleware.
func (s *Server) lookupTeam(ctx context.Context, id string) (team.Team, error) {
	return s.stores.TeamStore.GetByID(ctx, id)
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}
