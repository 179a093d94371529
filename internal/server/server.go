package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/coach"
	"github.com/meltforce/liftlog/internal/storage"
	"github.com/meltforce/liftlog/internal/workout"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	sessions *workout.Service
	coach    *coach.Client
	log      *slog.Logger
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, sessions *workout.Service, coachClient *coach.Client, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		sessions: sessions,
		coach:    coachClient,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/programs", s.handleListPrograms)
		r.Get("/programs/{programID}/days", s.handleProgramDays)

		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/recent", s.handleRecentSessions)
		r.Get("/sessions/{sessionID}/exercises", s.handleSessionExercises)
		r.Get("/sessions/{sessionID}/exercises/{exerciseID}", s.handleSessionExerciseDetail)
		r.Post("/sessions/{sessionID}/complete", s.handleCompleteSession)

		r.Put("/sets/{setID}", s.handleUpdateSet)
	})
}
