package worker

import (
	"context"
	"time"

	"github.com/vytor/nahuatl/internal/logger"
)

// Sweeper drops screen state idle for longer than maxIdle and reports how
// many entries it removed. Defined here so worker does not import screens.
type Sweeper interface {
	Sweep(ctx context.Context, maxIdle time.Duration) int
}

// SweepJob releases idle per-device screens.
type SweepJob struct {
	Sweeper Sweeper
	MaxIdle time.Duration
}

func (j *SweepJob) Name() string { return "sweep_screens" }

func (j *SweepJob) Run(ctx context.Context) error {
	removed := j.Sweeper.Sweep(ctx, j.MaxIdle)
	if removed > 0 {
		logger.FromContext(ctx).Info("released %d idle screens", removed)
	}
	return nil
}
