package api

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/metrics"
	"github.com/vytor/ergolog/internal/services"
	"github.com/vytor/ergolog/internal/summarychart"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB        Pinger
	Workouts  services.WorkoutService
	Imports   services.ImportService
	Summaries services.SummaryService
	Charts    *summarychart.Renderer
	Metrics   *metrics.Manager
	Gatherer  prometheus.Gatherer
	Templates *template.Template
	StaticDir string
	PerPage   int
	// MaxUploadBytes bounds a whole import request.
	MaxUploadBytes int64
	Now            func() time.Time
}

type pageData map[string]any

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Server) perPage() int {
	if s.PerPage > 0 {
		return s.PerPage
	}
	return 50
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
	}
}
