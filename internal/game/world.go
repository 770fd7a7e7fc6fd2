package game

import (
	"sync"
	"time"
)

// dayLength is one full day-night cycle of simulation time.
const dayLength = 10 * time.Minute

// World tracks coarse world state shared with NPCs, currently the
// day-night clock.
type World struct {
	mu      sync.Mutex
	elapsed time.Duration
}

func NewWorld() *World {
	return &World{}
}

// Name identifies the world system to the game loop.
func (w *World) Name() string { return "world" }

// Update advances the world clock.
func (w *World) Update(dt time.Duration) {
	w.mu.Lock()
	w.elapsed = (w.elapsed + dt) % dayLength
	w.mu.Unlock()
}

// TimeOfDay returns the position in the day cycle in [0, 1), where 0 is
// dawn and 0.5 is dusk.
func (w *World) TimeOfDay() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return float64(w.elapsed) / float64(dayLength)
}

// IsNight reports whether the world clock is in the night half.
func (w *World) IsNight() bool {
	return w.TimeOfDay() >= 0.5
}
