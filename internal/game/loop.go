package game

import (
	"context"
	"log/slog"
	"time"
)

// System is one simulation collaborator driven by the loop. Update is
// called from the loop goroutine and must not block; long work belongs
// on worker goroutines.
type System interface {
	Name() string
	Update(dt time.Duration)
}

// Loop drives registered systems at a fixed rate. Dialogue generation
// runs on its own goroutines, so a slow provider never stalls a tick.
type Loop struct {
	systems []System
	step    time.Duration
	logger  *slog.Logger
}

// NewLoop creates a simulation loop running at ups updates per second.
func NewLoop(ups int, logger *slog.Logger, systems ...System) *Loop {
	if ups <= 0 {
		ups = 30
	}
	return &Loop{
		systems: systems,
		step:    time.Second / time.Duration(ups),
		logger:  logger,
	}
}

// Run ticks systems until ctx is cancelled. The dt passed to systems is
// wall-clock time since the previous tick, so a delayed tick does not
// lose simulation time.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("Game loop starting",
		"step_ms", l.step.Milliseconds(),
		"systems", len(l.systems))

	ticker := time.NewTicker(l.step)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Game loop stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			for _, s := range l.systems {
				s.Update(dt)
			}
		}
	}
}
