package jobs

import (
	"sync/atomic"

	"github.com/vytor/ergolog/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool       *worker.Pool
	summaries  worker.SummaryRefresher
	refreshing atomic.Bool
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, summaries worker.SummaryRefresher) *WorkerQueue {
	return &WorkerQueue{pool: pool, summaries: summaries}
}

// EnqueueSummaryRefresh queues a refresh unless one is already waiting.
func (q *WorkerQueue) EnqueueSummaryRefresh() error {
	if !q.refreshing.CompareAndSwap(false, true) {
		return nil
	}
	err := q.pool.Submit(&worker.RefreshSummaryJob{
		Refresher: q.summaries,
		Started:   func() { q.refreshing.Store(false) },
	})
	if err != nil {
		q.refreshing.Store(false)
	}
	return err
}

func (q *WorkerQueue) EnqueueImport(importer worker.Importer, filename string, data []byte) error {
	return q.pool.Submit(&worker.ImportFileJob{
		Importer: importer,
		Filename: filename,
		Data:     data,
	})
}
