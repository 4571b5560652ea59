package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	if s.Metrics != nil {
		r.Use(s.metricsMiddleware)
	}

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/api/pace", s.handlePace)

	r.Get("/workouts", s.handleWorkouts)
	r.Post("/workouts", s.handleCreateWorkout)
	r.Get("/workouts/{id}", s.handleWorkoutDetail)
	r.Post("/workouts/{id}/delete", s.handleDeleteWorkout)
	r.Get("/equipment", s.handleEquipment)
	r.Post("/equipment/{id}/totals", s.handleEquipmentTotals)
	r.Post("/import", s.handleImport)

	r.Get("/summary/{period}", s.handleSummary)
	r.Get("/summary/{period}/chart", s.handleSummaryChart)

	staticDir := s.StaticDir
	if staticDir == "" {
		staticDir = "web/static"
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return r
}
