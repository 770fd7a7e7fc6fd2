package game

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type countingSystem struct {
	ticks atomic.Int64
}

func (c *countingSystem) Name() string            { return "counter" }
func (c *countingSystem) Update(dt time.Duration) { c.ticks.Add(1) }

func TestLoop_TicksSystems(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys := &countingSystem{}
	loop := NewLoop(100, logger, sys)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	loop.Run(ctx)

	// At 100 UPS over 200ms we expect roughly 20 ticks; allow wide
	// margins for scheduler jitter.
	ticks := sys.ticks.Load()
	if ticks < 5 {
		t.Errorf("expected at least 5 ticks, got %d", ticks)
	}
}

func TestLoop_DefaultsInvalidUPS(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loop := NewLoop(0, logger)
	if loop.step != time.Second/30 {
		t.Errorf("expected 30 UPS default, got step %v", loop.step)
	}
}

func TestPlayer_PlaytimeExperience(t *testing.T) {
	p := NewPlayer()
	start := p.Snapshot()

	// Just under the interval: nothing accrues.
	p.Update(playtimeXPInterval - time.Second)
	if got := p.Snapshot(); got != start {
		t.Errorf("experience accrued early: %+v", got)
	}

	p.Update(time.Second)
	p.AddExperience(200)
	if got := p.Snapshot(); got.Level < 2 {
		t.Errorf("expected level up after 201 xp, got %+v", got)
	}
}

func TestWorld_DayCycle(t *testing.T) {
	w := NewWorld()

	if w.TimeOfDay() != 0 {
		t.Errorf("expected dawn at start, got %f", w.TimeOfDay())
	}
	if w.IsNight() {
		t.Error("should start in daylight")
	}

	w.Update(dayLength / 2)
	if !w.IsNight() {
		t.Error("half cycle should be night")
	}

	// Wrapping past a full day returns to morning.
	w.Update(dayLength / 2)
	if w.IsNight() {
		t.Error("full cycle should wrap to day")
	}
}
