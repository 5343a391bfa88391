package jobs_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/nahuatl/internal/jobs"
	"github.com/vytor/nahuatl/internal/worker"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(context.Context, time.Duration) int {
	s.calls.Add(1)
	return 0
}

func TestSchedule_EnqueuesSweeps(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	sweeper := &countingSweeper{}
	queue := jobs.NewWorkerQueue(pool, sweeper, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		jobs.Schedule(ctx, queue, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestEnqueueSweep_StoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Stop()

	queue := jobs.NewWorkerQueue(pool, &countingSweeper{}, time.Minute)
	assert.ErrorIs(t, queue.EnqueueSweep(), worker.ErrPoolStopped)
}
