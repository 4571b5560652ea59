package api

import (
	"net/http"

	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/pace"
	"github.com/vytor/ergolog/internal/services"
)

// manualForm is the manual entry form as the template sees it.
type manualForm struct {
	services.ManualWorkout
	Pace  string
	Error string
	Field string
}

// newManualForm derives the pace field from the submitted values and
// pre-fills today's date when none was given.
func (s *Server) newManualForm(in services.ManualWorkout) manualForm {
	date := pace.NewValue(in.Date)
	out := pace.NewValue("")
	form := pace.Form{
		Date:     date,
		Time:     pace.NewValue(in.Time),
		Distance: pace.NewValue(in.Distance),
		Pace:     out,
	}
	if in.Date == "" {
		form.Init(s.now())
	} else {
		form.Recompute()
	}
	in.Date = date.Value()
	return manualForm{ManualWorkout: in, Pace: out.Value()}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderHome(w, r, http.StatusOK, s.newManualForm(services.ManualWorkout{}))
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, status int, form manualForm) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	log.Debug("rendering home page")

	equipment, err := s.Workouts.Equipment(ctx)
	if err != nil {
		log.Warn("failed to load equipment: %v", err)
	}
	overall, err := s.Summaries.Overall(ctx)
	if err != nil {
		log.Warn("failed to load overall totals: %v", err)
	}
	recent, total, err := s.Workouts.List(ctx, models.WorkoutFilter{}, 1, 5)
	if err != nil {
		log.Warn("failed to load recent workouts: %v", err)
	}

	s.renderStatus(w, r, status, "pages/home.html", pageData{
		"title":         "Log a workout",
		"form":          form,
		"equipment":     equipment,
		"overall":       overall,
		"recent":        recent,
		"workout_count": total,
		"periods":       models.Periods,
		"message":       r.URL.Query().Get("msg"),
	})
}

// handlePace answers the live pace preview of the entry form.
func (s *Server) handlePace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string]string{
		"pace": pace.Calculate(q.Get("time"), q.Get("distance")),
	})
}
