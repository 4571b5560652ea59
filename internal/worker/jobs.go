package worker

import (
	"context"

	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
)

// SummaryRefresher rebuilds the cached period totals.
type SummaryRefresher interface {
	RefreshSummaries(ctx context.Context) error
}

// Importer turns one uploaded export file into a stored workout.
type Importer interface {
	ImportFile(ctx context.Context, filename string, data []byte) (*models.Workout, error)
}

// RefreshSummaryJob recomputes summaries after workouts change.
// Started is called before the refresh begins so callers can accept
// another request while this one is running.
type RefreshSummaryJob struct {
	Refresher SummaryRefresher
	Started   func()
}

func (j *RefreshSummaryJob) Name() string { return "refresh_summaries" }

func (j *RefreshSummaryJob) Run(ctx context.Context) error {
	if j.Started != nil {
		j.Started()
	}
	return j.Refresher.RefreshSummaries(ctx)
}

// ImportFileJob imports one file in the background.
type ImportFileJob struct {
	Importer Importer
	Filename string
	Data     []byte
}

func (j *ImportFileJob) Name() string { return "import_file" }

func (j *ImportFileJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"file":  j.Filename,
		"bytes": len(j.Data),
	})
	w, err := j.Importer.ImportFile(ctx, j.Filename, j.Data)
	if err != nil {
		log.Warn("import failed: %v", err)
		return err
	}
	log.Info("imported workout: id=%d, cardio_log_id=%s", w.ID, w.CardioLogID)
	return nil
}
