package jobs

import "github.com/vytor/ergolog/internal/worker"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueSummaryRefresh() error
	EnqueueImport(importer worker.Importer, filename string, data []byte) error
}
