package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repcycle/internal/session"
	"github.com/claude/repcycle/internal/timer"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	engine *session.Engine
	timers *timer.Manager
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// disables authentication on mutating routes.
func New(engine *session.Engine, timers *timer.Manager, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		engine: engine,
		timers: timers,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints
	s.router.Get("/api/v1/session", s.handleGetSession)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/templates", s.handleTemplates)
	s.router.Get("/api/v1/templates/{id}", s.handleGetTemplate)
	s.router.Get("/api/v1/timer", s.handleGetTimer)

	// Mutating endpoints (API key required when configured)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/session/start", s.handleStartSession)
		r.Post("/api/v1/session/advance", s.handleAdvance)
		r.Post("/api/v1/session/exercises/{section}/{exercise}/complete", s.handleCompleteExercise)
		r.Post("/api/v1/session/save", s.handleSaveProgress)
		r.Post("/api/v1/session/reset", s.handleResetSession)

		r.Post("/api/v1/timer/show", s.handleTimerShow)
		r.Post("/api/v1/timer/start", s.handleTimerStart)
		r.Post("/api/v1/timer/pause", s.handleTimerPause)
		r.Post("/api/v1/timer/reset", s.handleTimerReset)
		r.Post("/api/v1/timer/complete", s.handleTimerComplete)
		r.Post("/api/v1/timer/dismiss", s.handleTimerDismiss)
	})
}
