package prompts

import (
	"strings"
	"testing"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
	"github.com/poorcraft/npc-engine/pkg/player"
	"github.com/poorcraft/npc-engine/pkg/resources"
)

func testBuilder() *Builder {
	return New().
		WithNPC("Elda", dialogue.PersonalityMerchant, "tending the stall").
		WithInventory(map[resources.Type]int{
			resources.Wood:  3,
			resources.Apple: 7,
		}).
		WithMemories(map[string]string{
			"player_name":  "Rina",
			"last_request": "iron ingots",
		}).
		WithPlayer(player.Snapshot{Level: 4, ResourceTypes: 6}).
		WithHistory([]dialogue.Turn{
			{Speaker: dialogue.SpeakerPlayer, Text: "Any bread today?"},
			{Speaker: "Elda", Text: "Fresh from the oven."},
		}).
		WithInput("How much for the apples?")
}

func TestBuild_ContainsAllBlocks(t *testing.T) {
	prompt, err := testBuilder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, want := range []string{
		"You are Elda",
		"Focuses on trading and business",
		"Name: Elda",
		"Personality: Merchant",
		"Current Action: tending the stall",
		"Apple x7, Wood x3",
		"last_request=iron ingots, player_name=Rina",
		"Level: 4",
		"Resources: 6 types",
		"Player: Any bread today?",
		"Elda: Fresh from the oven.",
		`Player says: "How much for the apples?"`,
		"Keep responses concise (1-3 sentences)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	// Maps have random iteration order; the prompt must not.
	first, err := testBuilder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i := 0; i < 50; i++ {
		prompt, err := testBuilder().Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if prompt != first {
			t.Fatal("identical state produced different prompts")
		}
	}
}

func TestBuild_IdentityBeforePlayer(t *testing.T) {
	prompt, err := testBuilder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	npcIdx := strings.Index(prompt, "NPC Info:")
	playerIdx := strings.Index(prompt, "Player Info:")
	if npcIdx == -1 || playerIdx == -1 || npcIdx > playerIdx {
		t.Error("identity block must precede player block")
	}
}

func TestBuild_EmptyCollections(t *testing.T) {
	prompt, err := New().
		WithNPC("Brom", dialogue.PersonalityGuard, "idle").
		WithPlayer(player.Snapshot{Level: 1}).
		WithInput("hello").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !strings.Contains(prompt, "Inventory: (empty)") {
		t.Error("expected empty inventory placeholder")
	}
	if !strings.Contains(prompt, "Memories: (none)") {
		t.Error("expected empty memories placeholder")
	}
}

func TestBuild_Validation(t *testing.T) {
	if _, err := New().WithInput("hi").Build(); err == nil {
		t.Error("expected error without npc identity")
	}
	if _, err := New().WithNPC("Elda", dialogue.Personality("bogus"), "idle").WithInput("hi").Build(); err == nil {
		t.Error("expected error for invalid personality")
	}
}
