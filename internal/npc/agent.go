package npc

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poorcraft/npc-engine/internal/services"
	"github.com/poorcraft/npc-engine/pkg/dialogue"
	"github.com/poorcraft/npc-engine/pkg/player"
	"github.com/poorcraft/npc-engine/pkg/prompts"
	"github.com/poorcraft/npc-engine/pkg/resources"
)

// Agent is one conversational NPC: identity, bounded conversational
// memory, inventory ledger and quest set, plus the orchestration that
// turns player input into an in-character reply.
//
// All state mutation goes through the agent mutex. The mutex is never
// held across a gateway call.
type Agent struct {
	id          uuid.UUID
	name        string
	personality dialogue.Personality

	mu              sync.Mutex
	memories        map[string]string
	transcript      dialogue.Transcript
	inventory       map[resources.Type]int
	quests          map[string]struct{}
	aiEnabled       bool
	currentAction   string
	lastInteraction time.Time
	x, y, z         float64

	gateway services.DialogueSender
	logger  *slog.Logger
}

// NewAgent creates an NPC agent with AI enabled and no history.
func NewAgent(id uuid.UUID, name string, p dialogue.Personality, gateway services.DialogueSender, logger *slog.Logger) *Agent {
	a := &Agent{
		id:              id,
		name:            name,
		personality:     p,
		memories:        make(map[string]string),
		inventory:       make(map[resources.Type]int),
		quests:          make(map[string]struct{}),
		aiEnabled:       true,
		currentAction:   "idle",
		lastInteraction: time.Now(),
		gateway:         gateway,
		logger:          logger,
	}
	logger.Info("Created NPC agent", "name", name, "personality", p.Label())
	return a
}

// GenerateResponse produces an in-character reply to player input.
// It never fails: any gateway error is absorbed into a deterministic
// fallback reply, and the transcript is only mutated on a genuinely
// successful remote round-trip.
func (a *Agent) GenerateResponse(ctx context.Context, input string, snap player.Snapshot) string {
	a.mu.Lock()
	a.lastInteraction = time.Now()

	if !a.aiEnabled {
		a.mu.Unlock()
		// Pre-attempt path: personality-keyed canned reply, no
		// transcript mutation, no gateway call.
		return dialogue.CannedReply(a.personality)
	}

	builder := prompts.New().
		WithNPC(a.name, a.personality, a.currentAction).
		WithInventory(copyInventory(a.inventory)).
		WithMemories(copyMemories(a.memories)).
		WithPlayer(snap).
		WithHistory(a.transcript.Recent(prompts.HistoryWindow)).
		WithInput(input)
	a.mu.Unlock()

	prompt, err := builder.Build()
	if err != nil {
		a.logger.Error("Failed to build prompt", "npc", a.name, "error", err)
		return dialogue.KeywordReply(a.name, input)
	}

	reply, err := a.gateway.Send(ctx, prompt)
	if err != nil {
		a.logger.Warn("Dialogue generation failed, using fallback",
			"npc", a.name, "error", err)
		return dialogue.KeywordReply(a.name, input)
	}

	// A reply that lands after cancellation must not touch the transcript.
	if ctx.Err() != nil {
		return dialogue.KeywordReply(a.name, input)
	}

	a.mu.Lock()
	a.transcript.Append(
		dialogue.Turn{Speaker: dialogue.SpeakerPlayer, Text: input},
		dialogue.Turn{Speaker: a.name, Text: reply},
	)
	a.mu.Unlock()

	return reply
}

// AddMemory upserts a long-term memory. Memories are unbounded;
// pruning is deliberately not done here.
func (a *Agent) AddMemory(key, value string) {
	a.mu.Lock()
	a.memories[key] = value
	a.mu.Unlock()
	a.logger.Debug("NPC remembered", "npc", a.name, "key", key, "value", value)
}

// Memory returns a stored memory value.
func (a *Agent) Memory(key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.memories[key]
	return v, ok
}

// Memories returns a copy of all memories.
func (a *Agent) Memories() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyMemories(a.memories)
}

// AddToInventory adds a non-negative amount of a resource.
func (a *Agent) AddToInventory(t resources.Type, amount int) {
	if amount < 0 {
		return
	}
	a.mu.Lock()
	a.inventory[t] += amount
	a.mu.Unlock()
}

// RemoveFromInventory withdraws from the ledger. The check and the
// decrement happen under one lock acquisition; a withdrawal beyond the
// balance is rejected without mutation, never clamped.
func (a *Agent) RemoveFromInventory(t resources.Type, amount int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inventory[t] < amount {
		return false
	}
	a.inventory[t] -= amount
	return true
}

// InventoryCount returns the current balance for a resource.
func (a *Agent) InventoryCount(t resources.Type) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inventory[t]
}

// Inventory returns a copy of the inventory ledger.
func (a *Agent) Inventory() map[resources.Type]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyInventory(a.inventory)
}

// AddQuest inserts a quest id; insertion is idempotent.
func (a *Agent) AddQuest(id string) {
	a.mu.Lock()
	a.quests[id] = struct{}{}
	a.mu.Unlock()
}

// HasQuest reports quest membership.
func (a *Agent) HasQuest(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.quests[id]
	return ok
}

// Quests returns all quest ids, unordered.
func (a *Agent) Quests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.quests))
	for q := range a.quests {
		out = append(out, q)
	}
	return out
}

// SetAIEnabled toggles remote generation for this NPC.
func (a *Agent) SetAIEnabled(enabled bool) {
	a.mu.Lock()
	a.aiEnabled = enabled
	a.mu.Unlock()
}

// AIEnabled reports whether remote generation is active.
func (a *Agent) AIEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.aiEnabled
}

// SetCurrentAction updates the action label used in prompt context.
func (a *Agent) SetCurrentAction(action string) {
	a.mu.Lock()
	a.currentAction = action
	a.mu.Unlock()
}

// CurrentAction returns the current action label.
func (a *Agent) CurrentAction() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentAction
}

// SetPosition moves the NPC in world space.
func (a *Agent) SetPosition(x, y, z float64) {
	a.mu.Lock()
	a.x, a.y, a.z = x, y, z
	a.mu.Unlock()
}

// Position returns the NPC's world position.
func (a *Agent) Position() (x, y, z float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.x, a.y, a.z
}

// LastInteraction returns the time of the most recent player interaction.
func (a *Agent) LastInteraction() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastInteraction
}

// TranscriptTurns returns a copy of the conversation history.
func (a *Agent) TranscriptTurns() []dialogue.Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transcript.Turns()
}

// TranscriptLen returns the current history length.
func (a *Agent) TranscriptLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transcript.Len()
}

// ID returns the agent's immutable id.
func (a *Agent) ID() uuid.UUID { return a.id }

// Name returns the agent's immutable name.
func (a *Agent) Name() string { return a.name }

// Personality returns the agent's immutable personality.
func (a *Agent) Personality() dialogue.Personality { return a.personality }

func copyInventory(inv map[resources.Type]int) map[resources.Type]int {
	out := make(map[resources.Type]int, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

func copyMemories(mem map[string]string) map[string]string {
	out := make(map[string]string, len(mem))
	for k, v := range mem {
		out[k] = v
	}
	return out
}
