package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
	"github.com/poorcraft/npc-engine/pkg/player"
	"github.com/poorcraft/npc-engine/pkg/resources"
)

// HistoryWindow is the number of recent exchanges included in a prompt.
const HistoryWindow = 3

// Builder constructs the generation prompt for one NPC turn using a
// fluent interface. Field ordering in the output is fixed (identity
// block, then player block) so that an unchanged state always produces
// an identical prompt.
type Builder struct {
	name        string
	personality dialogue.Personality
	action      string
	inventory   map[resources.Type]int
	memories    map[string]string
	snapshot    player.Snapshot
	history     []dialogue.Turn
	input       string
}

// New creates an empty prompt builder.
func New() *Builder {
	return &Builder{}
}

// WithNPC sets the NPC identity and current action.
func (b *Builder) WithNPC(name string, p dialogue.Personality, action string) *Builder {
	b.name = name
	b.personality = p
	b.action = action
	return b
}

// WithInventory sets the NPC's inventory contents.
func (b *Builder) WithInventory(inv map[resources.Type]int) *Builder {
	b.inventory = inv
	return b
}

// WithMemories sets the NPC's long-term memory contents.
func (b *Builder) WithMemories(mem map[string]string) *Builder {
	b.memories = mem
	return b
}

// WithPlayer sets the player progression snapshot.
func (b *Builder) WithPlayer(snap player.Snapshot) *Builder {
	b.snapshot = snap
	return b
}

// WithHistory sets the recent conversation turns, oldest first.
// Callers should pass at most HistoryWindow exchanges.
func (b *Builder) WithHistory(turns []dialogue.Turn) *Builder {
	b.history = turns
	return b
}

// WithInput sets the verbatim player input.
func (b *Builder) WithInput(input string) *Builder {
	b.input = input
	return b
}

// Context renders the deterministic context block: NPC identity first,
// then the player block. Map contents are emitted in sorted key order.
func (b *Builder) Context() string {
	var sb strings.Builder

	sb.WriteString("NPC Info:\n")
	fmt.Fprintf(&sb, "Name: %s\n", b.name)
	fmt.Fprintf(&sb, "Personality: %s\n", b.personality.Label())
	fmt.Fprintf(&sb, "Current Action: %s\n", b.action)
	fmt.Fprintf(&sb, "Inventory: %s\n", formatInventory(b.inventory))
	fmt.Fprintf(&sb, "Memories: %s\n", formatMemories(b.memories))

	sb.WriteString("\nPlayer Info:\n")
	fmt.Fprintf(&sb, "Level: %d\n", b.snapshot.Level)
	fmt.Fprintf(&sb, "Resources: %d types\n", b.snapshot.ResourceTypes)

	return sb.String()
}

// Build renders the full prompt.
func (b *Builder) Build() (string, error) {
	if b.name == "" {
		return "", fmt.Errorf("npc name is required")
	}
	if !b.personality.Valid() {
		return "", fmt.Errorf("personality is required")
	}

	var conversation strings.Builder
	for i, turn := range b.history {
		if i > 0 {
			conversation.WriteString("\n")
		}
		fmt.Fprintf(&conversation, "%s: %s", turn.Speaker, turn.Text)
	}

	prompt := fmt.Sprintf(`You are %s, an NPC in a voxel RPG world with personality: %s.

Context:
%s
Recent conversation:
%s

Player says: %q

Respond naturally as %s, staying in character and considering the context.
Keep responses concise (1-3 sentences) and relevant to the game world.`,
		b.name, b.personality.Description(), b.Context(),
		conversation.String(), b.input, b.name)

	return prompt, nil
}

func formatInventory(inv map[resources.Type]int) string {
	if len(inv) == 0 {
		return "(empty)"
	}
	keys := make([]string, 0, len(inv))
	for t := range inv {
		keys = append(keys, string(t))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		t := resources.Type(k)
		parts = append(parts, fmt.Sprintf("%s x%d", t.DisplayName(), inv[t]))
	}
	return strings.Join(parts, ", ")
}

func formatMemories(mem map[string]string) string {
	if len(mem) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(mem))
	for k := range mem {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, mem[k]))
	}
	return strings.Join(parts, ", ")
}
