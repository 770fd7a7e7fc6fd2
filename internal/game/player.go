package game

import (
	"sync"
	"time"

	"github.com/poorcraft/npc-engine/pkg/player"
)

// playtimeXPInterval is how often passive playtime experience accrues.
const playtimeXPInterval = time.Minute

// Player owns the local player's progression and feeds NPC dialogue the
// player snapshot.
type Player struct {
	mu   sync.Mutex
	prog *player.Progression
	acc  time.Duration
}

func NewPlayer() *Player {
	return &Player{prog: player.NewProgression()}
}

// Name identifies the player system to the game loop.
func (p *Player) Name() string { return "player" }

// Update accrues passive playtime experience.
func (p *Player) Update(dt time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acc += dt
	for p.acc >= playtimeXPInterval {
		p.acc -= playtimeXPInterval
		p.prog.AddExperience(1)
	}
}

// AddExperience grants experience from game events.
func (p *Player) AddExperience(amount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prog.AddExperience(amount)
}

// Snapshot returns the read-only view NPC dialogue consumes.
func (p *Player) Snapshot() player.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prog.Snapshot()
}
