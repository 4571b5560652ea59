package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vytor/ergolog/internal/errors"
	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/services"
)

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid form"))
		return
	}
	in := services.ManualWorkout{
		Date:      r.PostFormValue("date"),
		Time:      r.PostFormValue("time"),
		Distance:  r.PostFormValue("distance"),
		Equipment: r.PostFormValue("equipment"),
		Name:      r.PostFormValue("name"),
		Target:    r.PostFormValue("target"),
		Level:     r.PostFormValue("level"),
		Notes:     r.PostFormValue("notes"),
	}

	workout, err := s.Workouts.Create(r.Context(), in)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.Code == errors.ErrCodeValidation && !wantsJSON(r) {
			log.Debug("manual workout invalid: %v", appErr)
			form := s.newManualForm(in)
			form.Error = appErr.Message
			form.Field = appErr.Field
			s.renderHome(w, r, appErr.Status, form)
			return
		}
		s.handleError(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, workout)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/workouts/%d", workout.ID), http.StatusSeeOther)
}

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var filter models.WorkoutFilter
	if raw := q.Get("equipment"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.handleError(w, r, errors.NewValidationError("equipment", "must be an id"))
			return
		}
		filter.EquipmentTypeID = id
	}
	from, err := queryDate(r, "from")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	filter.From, filter.To = from, to
	if q.Get("order") == "asc" {
		filter.OrderDir = "ASC"
	}

	page := queryInt(r, "page", 1)
	workouts, total, err := s.Workouts.List(ctx, filter, page, s.perPage())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	equipment, err := s.Workouts.Equipment(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load equipment: %v", err)
	}

	s.render(w, r, "pages/workouts.html", pageData{
		"title":      "Workouts",
		"workouts":   workouts,
		"equipment":  equipment,
		"filters":    q,
		"pagination": newPagination(page, s.perPage(), total),
	})
}

func (s *Server) handleWorkoutDetail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	workout, err := s.Workouts.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, workout)
		return
	}
	s.render(w, r, "pages/workout.html", pageData{
		"title":   workout.Name,
		"workout": workout,
	})
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.Workouts.Delete(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/workouts", http.StatusSeeOther)
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := s.Workouts.Equipment(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.render(w, r, "pages/equipment.html", pageData{
		"title":     "Equipment",
		"equipment": equipment,
	})
}

// handleEquipmentTotals toggles whether an equipment type counts towards summaries.
func (s *Server) handleEquipmentTotals(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	include := r.PostFormValue("include") == "on" || r.PostFormValue("include") == "true"
	if err := s.Workouts.SetEquipmentIncluded(r.Context(), id, include); err != nil {
		s.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/equipment", http.StatusSeeOther)
}
