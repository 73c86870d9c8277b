// Package httpapi serves the name hierarchy of a catalog over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"

	"github.com/ersonp/namesift/internal/application/handlers"
	"github.com/ersonp/namesift/internal/domain/services"
)

// Server is the read-only HTTP API over stored runs.
type Server struct {
	router   chi.Router
	group    *handlers.GroupHandler
	review   *handlers.ReviewHandler
	runs     *handlers.RunsHandler
	opts     services.GroupOptions
	markdown goldmark.Markdown
	log      *slog.Logger
}

// NewServer creates and configures the HTTP server. opts are the grouping
// defaults; requests may override ConsiderDates.
func NewServer(group *handlers.GroupHandler, review *handlers.ReviewHandler, runs *handlers.RunsHandler, opts services.GroupOptions, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		group:    group,
		review:   review,
		runs:     runs,
		opts:     opts,
		markdown: goldmark.New(),
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/report", s.handleReport)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/overlaps", s.handleOverlaps)
		r.Get("/review", s.handleReview)
		r.Get("/runs", s.handleListRuns)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
