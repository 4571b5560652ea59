package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"math"
	"path/filepath"
	"strings"

	"github.com/vytor/ergolog/internal/ergdata"
	"github.com/vytor/ergolog/internal/errors"
	"github.com/vytor/ergolog/internal/jobs"
	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/pace"
	"github.com/vytor/ergolog/internal/repository"
)

// Import sources and results reported to an ImportRecorder.
const (
	SourceJSON = "json"
	SourceFIT  = "fit"

	ImportOK        = "imported"
	ImportDuplicate = "duplicate"
	ImportInvalid   = "invalid"
	ImportFailed    = "failed"
)

// ImportRecorder counts import outcomes.
type ImportRecorder interface {
	WorkoutImported(source, result string)
}

// UploadedFile is one file from a multi-file upload.
type UploadedFile struct {
	Name string
	Data []byte
}

// ImportService handles workout export imports
type ImportService interface {
	ImportFile(ctx context.Context, filename string, data []byte) (*models.Workout, error)
	ImportJSON(ctx context.Context, data []byte) (*models.Workout, error)
	ImportFIT(ctx context.Context, data []byte) (*models.Workout, error)
	QueueFiles(ctx context.Context, files []UploadedFile) (int, error)
}

type importService struct {
	workouts  repository.WorkoutRepository
	equipment repository.EquipmentRepository
	queue     jobs.JobQueue
	recorder  ImportRecorder
}

// NewImportService creates a new ImportService. recorder may be nil.
func NewImportService(workouts repository.WorkoutRepository, equipment repository.EquipmentRepository, queue jobs.JobQueue, recorder ImportRecorder) ImportService {
	return &importService{workouts: workouts, equipment: equipment, queue: queue, recorder: recorder}
}

// IsFIT reports whether data carries the ".FIT" file header signature.
func IsFIT(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT"))
}

func (s *importService) ImportFile(ctx context.Context, filename string, data []byte) (*models.Workout, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".fit":
		return s.ImportFIT(ctx, data)
	case ".json":
		return s.ImportJSON(ctx, data)
	}
	if IsFIT(data) {
		return s.ImportFIT(ctx, data)
	}
	return s.ImportJSON(ctx, data)
}

func (s *importService) ImportJSON(ctx context.Context, data []byte) (*models.Workout, error) {
	log := logger.FromContext(ctx).WithField("source", SourceJSON)
	parsed, err := ergdata.ParseJSON(data)
	if err != nil {
		log.Debug("rejected json export: %v", err)
		s.record(SourceJSON, ImportInvalid)
		return nil, invalidExport(err)
	}
	return s.save(logger.NewContext(ctx, log), SourceJSON, parsed)
}

func (s *importService) ImportFIT(ctx context.Context, data []byte) (*models.Workout, error) {
	log := logger.FromContext(ctx).WithField("source", SourceFIT)
	parsed, err := ergdata.ParseFIT(data)
	if err != nil {
		log.Debug("rejected fit file: %v", err)
		s.record(SourceFIT, ImportInvalid)
		return nil, invalidExport(err)
	}
	return s.save(logger.NewContext(ctx, log), SourceFIT, parsed)
}

// QueueFiles hands every file to the background importer and returns how
// many were accepted.
func (s *importService) QueueFiles(ctx context.Context, files []UploadedFile) (int, error) {
	log := logger.FromContext(ctx)
	queued := 0
	for _, f := range files {
		if err := s.queue.EnqueueImport(s, f.Name, f.Data); err != nil {
			log.Warn("failed to queue import of %s: %v", f.Name, err)
			return queued, errors.NewInternalError(err)
		}
		queued++
	}
	log.Info("queued %d files for import", queued)
	return queued, nil
}

func invalidExport(err error) *errors.AppError {
	var de *ergdata.DateError
	switch {
	case stderrors.As(err, &de):
		return errors.NewValidationError("date", err.Error())
	case stderrors.Is(err, ergdata.ErrMissingCardioLogID):
		return errors.NewValidationError("cardioLogId", "is missing")
	default:
		return errors.NewBadRequestError(err.Error())
	}
}

func (s *importService) save(ctx context.Context, source string, parsed *ergdata.Workout) (*models.Workout, error) {
	log := logger.FromContext(ctx).WithField("cardio_log_id", parsed.CardioLogID)

	exists, err := s.workouts.ExistsByCardioLogID(ctx, parsed.CardioLogID)
	if err != nil {
		log.Error("failed to check for existing workout: %v", err)
		s.record(source, ImportFailed)
		return nil, errors.NewInternalError(err)
	}
	if exists {
		log.Info("workout already imported")
		s.record(source, ImportDuplicate)
		return nil, errors.NewConflictError("workout with cardio log id", parsed.CardioLogID)
	}

	equipment, err := s.equipment.GetOrCreate(ctx, parsed.Equipment)
	if err != nil {
		log.Error("failed to resolve equipment: %v", err)
		s.record(source, ImportFailed)
		return nil, errors.NewInternalError(err)
	}

	w := toWorkout(parsed)
	w.EquipmentTypeID = equipment.ID
	w.EquipmentName = equipment.Name

	id, err := s.workouts.Insert(ctx, w)
	if err != nil {
		log.Error("failed to insert imported workout: %v", err)
		s.record(source, ImportFailed)
		return nil, errors.NewInternalError(err)
	}
	w.ID = id
	log.Info("workout imported: id=%d", id)
	s.record(source, ImportOK)

	if err := s.queue.EnqueueSummaryRefresh(); err != nil {
		log.Warn("failed to enqueue summary refresh: %v", err)
	}
	return &w, nil
}

func toWorkout(p *ergdata.Workout) models.Workout {
	w := models.Workout{
		CardioLogID:       p.CardioLogID,
		Name:              p.Name,
		Date:              p.Date,
		TargetDescription: p.Target,
		IsoReps:           p.IsoReps,
		Level:             p.Level,
	}
	if w.Name == "" {
		w.Name = DefaultWorkoutName
	}
	if p.DurationSeconds != nil {
		w.DurationSeconds = *p.DurationSeconds
	}
	if p.DistanceMeters != nil {
		w.DistanceMeters = *p.DistanceMeters
	}
	if split := pace.Seconds(w.DurationSeconds, w.DistanceMeters); !math.IsNaN(split) {
		w.SplitSeconds = split
	}
	return w
}

func (s *importService) record(source, result string) {
	if s.recorder != nil {
		s.recorder.WorkoutImported(source, result)
	}
}
