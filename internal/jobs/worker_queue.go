package jobs

import (
	"context"
	"time"

	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	sweeper worker.Sweeper
	idleTTL time.Duration
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, sweeper worker.Sweeper, idleTTL time.Duration) JobQueue {
	return &WorkerQueue{pool: pool, sweeper: sweeper, idleTTL: idleTTL}
}

func (q *WorkerQueue) EnqueueSweep() error {
	return q.pool.Submit(&worker.SweepJob{Sweeper: q.sweeper, MaxIdle: q.idleTTL})
}

// Schedule enqueues a sweep every interval until ctx is cancelled.
func Schedule(ctx context.Context, q JobQueue, interval time.Duration) {
	log := logger.Default().WithPrefix("scheduler")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("scheduling screen sweeps every %v", interval)
	for {
		select {
		case <-ctx.Done():
			log.Debug("scheduler stopped")
			return
		case <-ticker.C:
			if err := q.EnqueueSweep(); err != nil {
				log.Warn("failed to enqueue sweep: %v", err)
			}
		}
	}
}
