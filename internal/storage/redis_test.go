package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/poorcraft/npc-engine/internal/npc"
	"github.com/poorcraft/npc-engine/pkg/dialogue"
	"github.com/poorcraft/npc-engine/pkg/resources"
)

func testStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewRedisStore(mr.Addr(), logger)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStore_SaveAndLoadSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	snap := &npc.Snapshot{
		ID:          uuid.New(),
		Name:        "Elda",
		Personality: dialogue.PersonalityMerchant,
		Memories:    map[string]string{"player_name": "Rina"},
		Transcript: []dialogue.Turn{
			{Speaker: dialogue.SpeakerPlayer, Text: "hello"},
			{Speaker: "Elda", Text: "Greetings, traveler."},
		},
		Inventory:       map[resources.Type]int{resources.Apple: 7},
		Quests:          []string{"gather_wood"},
		AIEnabled:       true,
		CurrentAction:   "tending the stall",
		LastInteraction: time.Now().Truncate(time.Second),
		X:               1, Y: 2, Z: 3,
	}

	if err := store.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := store.LoadSnapshot(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil snapshot")
	}

	if loaded.ID != snap.ID {
		t.Errorf("Expected ID %v, got %v", snap.ID, loaded.ID)
	}
	if loaded.Name != "Elda" || loaded.Personality != dialogue.PersonalityMerchant {
		t.Errorf("Identity not preserved: %q %q", loaded.Name, loaded.Personality)
	}
	if loaded.Memories["player_name"] != "Rina" {
		t.Error("Memories not preserved")
	}
	if len(loaded.Transcript) != 2 || loaded.Transcript[1].Text != "Greetings, traveler." {
		t.Errorf("Transcript not preserved: %+v", loaded.Transcript)
	}
	if loaded.Inventory[resources.Apple] != 7 {
		t.Error("Inventory not preserved")
	}
	if len(loaded.Quests) != 1 || loaded.Quests[0] != "gather_wood" {
		t.Error("Quests not preserved")
	}
	if loaded.CurrentAction != "tending the stall" {
		t.Error("Current action not preserved")
	}
	if loaded.X != 1 || loaded.Y != 2 || loaded.Z != 3 {
		t.Error("Position not preserved")
	}
}

func TestRedisStore_LoadNonExistentSnapshot(t *testing.T) {
	store := testStore(t)

	loaded, err := store.LoadSnapshot(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for non-existent snapshot, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for non-existent snapshot")
	}
}

func TestRedisStore_DeleteSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	snap := &npc.Snapshot{
		ID:          uuid.New(),
		Name:        "Elda",
		Personality: dialogue.PersonalityMerchant,
	}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := store.LoadSnapshot(ctx, snap.ID)
	if err != nil || loaded == nil {
		t.Fatal("Snapshot should exist before deletion")
	}

	if err := store.DeleteSnapshot(ctx, snap.ID); err != nil {
		t.Fatalf("Failed to delete snapshot: %v", err)
	}

	loaded, err = store.LoadSnapshot(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Unexpected error after deletion: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil after deletion")
	}
}

func TestRedisStore_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewRedisStore(mr.Addr(), logger)
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	mr.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Error("Expected ping failure after server close")
	}
}
