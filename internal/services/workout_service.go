package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/ergolog/internal/errors"
	"github.com/vytor/ergolog/internal/jobs"
	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/pace"
	"github.com/vytor/ergolog/internal/repository"
)

// DefaultWorkoutName names manual workouts submitted without one.
const DefaultWorkoutName = "Rowing"

// ManualWorkout is the raw manual entry form.
type ManualWorkout struct {
	Date      string
	Time      string
	Distance  string
	Equipment string
	Name      string
	Target    string
	Level     string
	Notes     string
}

// WorkoutService handles workout business logic
type WorkoutService interface {
	Create(ctx context.Context, in ManualWorkout) (*models.Workout, error)
	Get(ctx context.Context, id int64) (*models.Workout, error)
	List(ctx context.Context, filter models.WorkoutFilter, page, perPage int) ([]models.Workout, int, error)
	Delete(ctx context.Context, id int64) error
	Equipment(ctx context.Context) ([]models.EquipmentType, error)
	SetEquipmentIncluded(ctx context.Context, id int64, include bool) error
}

type workoutService struct {
	workouts  repository.WorkoutRepository
	equipment repository.EquipmentRepository
	queue     jobs.JobQueue
}

// NewWorkoutService creates a new WorkoutService
func NewWorkoutService(workouts repository.WorkoutRepository, equipment repository.EquipmentRepository, queue jobs.JobQueue) WorkoutService {
	return &workoutService{workouts: workouts, equipment: equipment, queue: queue}
}

// ValidateManual checks a manual entry and converts it into a workout
// without an equipment id.
func ValidateManual(in ManualWorkout) (models.Workout, error) {
	var w models.Workout

	dateStr := strings.TrimSpace(in.Date)
	if dateStr == "" {
		return w, errors.NewValidationError("date", "is required")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return w, errors.NewValidationError("date", "must be YYYY-MM-DD")
	}

	if strings.TrimSpace(in.Time) == "" {
		return w, errors.NewValidationError("time", "is required")
	}
	seconds := pace.ParseTimeString(strings.TrimSpace(in.Time))
	if math.IsNaN(seconds) || seconds <= 0 {
		return w, errors.NewValidationError("time", "must be a positive duration like 7:30.5")
	}

	if strings.TrimSpace(in.Distance) == "" {
		return w, errors.NewValidationError("distance", "is required")
	}
	meters := pace.ParseDistance(strings.TrimSpace(in.Distance))
	if !(meters > 0) || math.IsInf(meters, 0) {
		return w, errors.NewValidationError("distance", "must be greater than zero")
	}

	if strings.TrimSpace(in.Equipment) == "" {
		return w, errors.NewValidationError("equipment", "is required")
	}

	if lv := strings.TrimSpace(in.Level); lv != "" {
		level, err := strconv.ParseFloat(lv, 64)
		if err != nil || math.IsNaN(level) || level < 0 {
			return w, errors.NewValidationError("level", "must be a number of at least 0")
		}
		w.Level = &level
	}

	w.Name = strings.TrimSpace(in.Name)
	if w.Name == "" {
		w.Name = DefaultWorkoutName
	}
	w.CardioLogID = "manual_" + uuid.NewString()
	w.Date = date
	w.TargetDescription = strings.TrimSpace(in.Target)
	w.Notes = strings.TrimSpace(in.Notes)
	w.DurationSeconds = seconds
	w.DistanceMeters = meters
	w.SplitSeconds = pace.Seconds(seconds, meters)
	return w, nil
}

func (s *workoutService) Create(ctx context.Context, in ManualWorkout) (*models.Workout, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating manual workout: date=%s, time=%s, distance=%s", in.Date, in.Time, in.Distance)

	w, err := ValidateManual(in)
	if err != nil {
		log.Debug("manual workout rejected: %v", err)
		return nil, err
	}

	equipment, err := s.equipment.GetOrCreate(ctx, in.Equipment)
	if err != nil {
		log.Error("failed to resolve equipment: %v", err)
		return nil, errors.NewInternalError(err)
	}
	w.EquipmentTypeID = equipment.ID
	w.EquipmentName = equipment.Name

	id, err := s.workouts.Insert(ctx, w)
	if err != nil {
		log.Error("failed to insert workout: %v", err)
		return nil, errors.NewInternalError(err)
	}
	w.ID = id
	log.Info("manual workout created: id=%d, cardio_log_id=%s", id, w.CardioLogID)

	s.refresh(ctx)
	return &w, nil
}

func (s *workoutService) Get(ctx context.Context, id int64) (*models.Workout, error) {
	w, err := s.workouts.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("workout", id)
		}
		logger.FromContext(ctx).Error("failed to get workout: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return w, nil
}

func (s *workoutService) List(ctx context.Context, filter models.WorkoutFilter, page, perPage int) ([]models.Workout, int, error) {
	log := logger.FromContext(ctx)
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	filter.Limit = perPage
	filter.Offset = (page - 1) * perPage
	log.Debug("listing workouts: page=%d, per_page=%d", page, perPage)

	workouts, err := s.workouts.List(ctx, filter)
	if err != nil {
		log.Error("failed to list workouts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.workouts.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count workouts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return workouts, total, nil
}

func (s *workoutService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	if err := s.workouts.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("workout", id)
		}
		log.Error("failed to delete workout: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("workout deleted: id=%d", id)
	s.refresh(ctx)
	return nil
}

func (s *workoutService) Equipment(ctx context.Context) ([]models.EquipmentType, error) {
	list, err := s.equipment.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list equipment: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return list, nil
}

func (s *workoutService) SetEquipmentIncluded(ctx context.Context, id int64, include bool) error {
	if err := s.equipment.SetIncludeInTotals(ctx, id, include); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("equipment type", id)
		}
		logger.FromContext(ctx).Error("failed to update equipment: %v", err)
		return errors.NewInternalError(err)
	}
	s.refresh(ctx)
	return nil
}

// refresh queues a summary rebuild. Failures are only logged.
func (s *workoutService) refresh(ctx context.Context) {
	if err := s.queue.EnqueueSummaryRefresh(); err != nil {
		logger.FromContext(ctx).Warn("failed to enqueue summary refresh: %v", err)
	}
}
