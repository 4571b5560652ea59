package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/ergolog/internal/logger"
)

var (
	ErrPoolStopped = errors.New("worker pool stopped")
	ErrQueueFull   = errors.New("worker queue full")
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// JobObserver is told about every finished job.
type JobObserver interface {
	JobFinished(name string, elapsed time.Duration, err error)
}

type Pool struct {
	mu       sync.RWMutex
	jobs     chan Job
	wg       sync.WaitGroup
	workers  int
	queue    int
	stopped  bool
	cancel   context.CancelFunc
	observer JobObserver
	log      *logger.Logger
}

type PoolOption func(*Pool)

// WithJobObserver reports job outcomes to o.
func WithJobObserver(o JobObserver) PoolOption {
	return func(p *Pool) { p.observer = o }
}

func NewPool(workers, queueSize int, opts ...PoolOption) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	p := &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		queue:   queueSize,
		log:     log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug("worker shutting down (context cancelled)")
					return
				case job, ok := <-p.jobs:
					if !ok {
						workerLog.Debug("worker shutting down (queue closed)")
						return
					}
					p.run(logger.NewContext(ctx, workerLog.WithField("job", job.Name())), job)
				}
			}
		}(i + 1)
	}
}

func (p *Pool) run(ctx context.Context, job Job) {
	jobLog := logger.FromContext(ctx)
	jobLog.Debug("starting job")
	start := time.Now()

	err := job.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		jobLog.Error("job failed after %v: %v", elapsed, err)
	} else {
		jobLog.Info("job completed in %v", elapsed)
	}
	if p.observer != nil {
		p.observer.JobFinished(job.Name(), elapsed, err)
	}
}

// Stop closes the queue and waits for the workers to finish the jobs
// already queued. Cancelling the Start context ends them sooner.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.log.Info("stopping worker pool")
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Info("worker pool stopped")
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	default:
		p.log.Warn("queue full, dropping job: %s", job.Name())
		return ErrQueueFull
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
