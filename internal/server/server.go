package server

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/planforge/internal/models"
	"github.com/claude/planforge/internal/session"
	"github.com/go-chi/chi/v5"
)

// Generator abstracts the plan generation service for handler tests.
type Generator interface {
	Generate(ctx context.Context, requestText string) (*models.WorkoutPlan, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *session.Store
	generator  Generator
	log        *slog.Logger
	router     chi.Router
	genTimeout time.Duration
}

// New creates a new Server with all routes configured. genTimeout bounds the
// wall-clock time of one model call.
func New(store *session.Store, generator Generator, genTimeout time.Duration, log *slog.Logger) *Server {
	s := &Server{
		store:      store,
		generator:  generator,
		log:        log,
		router:     chi.NewRouter(),
		genTimeout: genTimeout,
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

	s.router.Post("/api/generate-plan", s.handleGeneratePlan)

	s.router.Route("/api/plan", func(r chi.Router) {
		r.Get("/", s.handleGetPlan)
		r.Delete("/", s.handleClearPlan)
		r.Post("/circuits/delete", s.handleDeleteCircuit)
		r.Post("/circuits/reorder", s.handleReorderCircuits)
	})
}

// SetFrontend mounts the embedded SPA filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
