package npc

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
	"github.com/poorcraft/npc-engine/pkg/resources"
)

// Snapshot is the serializable form of an agent's state, taken at
// despawn and restored at spawn. Persistence is optional; the dialogue
// core never requires it.
type Snapshot struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Personality     dialogue.Personality   `json:"personality"`
	Memories        map[string]string      `json:"memories,omitempty"`
	Transcript      []dialogue.Turn        `json:"transcript,omitempty"`
	Inventory       map[resources.Type]int `json:"inventory,omitempty"`
	Quests          []string               `json:"quests,omitempty"`
	AIEnabled       bool                   `json:"ai_enabled"`
	CurrentAction   string                 `json:"current_action"`
	LastInteraction time.Time              `json:"last_interaction"`
	X               float64                `json:"x"`
	Y               float64                `json:"y"`
	Z               float64                `json:"z"`
}

// SnapshotStore persists agent snapshots. Load returns (nil, nil) when
// no snapshot exists for the id.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	LoadSnapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error
}

// Snapshot captures the agent's current state.
func (a *Agent) Snapshot() *Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	quests := make([]string, 0, len(a.quests))
	for q := range a.quests {
		quests = append(quests, q)
	}

	return &Snapshot{
		ID:              a.id,
		Name:            a.name,
		Personality:     a.personality,
		Memories:        copyMemories(a.memories),
		Transcript:      a.transcript.Turns(),
		Inventory:       copyInventory(a.inventory),
		Quests:          quests,
		AIEnabled:       a.aiEnabled,
		CurrentAction:   a.currentAction,
		LastInteraction: a.lastInteraction,
		X:               a.x,
		Y:               a.y,
		Z:               a.z,
	}
}

// restore overwrites mutable agent state from a snapshot.
func (a *Agent) restore(snap *Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.memories = copyMemories(snap.Memories)
	a.inventory = copyInventory(snap.Inventory)
	a.quests = make(map[string]struct{}, len(snap.Quests))
	for _, q := range snap.Quests {
		a.quests[q] = struct{}{}
	}
	a.transcript.Restore(snap.Transcript)
	a.aiEnabled = snap.AIEnabled
	if snap.CurrentAction != "" {
		a.currentAction = snap.CurrentAction
	}
	if !snap.LastInteraction.IsZero() {
		a.lastInteraction = snap.LastInteraction
	}
	a.x, a.y, a.z = snap.X, snap.Y, snap.Z
}
