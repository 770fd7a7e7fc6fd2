package resources

import "testing"

func TestDisplayName(t *testing.T) {
	if got := DragonScale.DisplayName(); got != "Dragon Scale" {
		t.Errorf("expected 'Dragon Scale', got %q", got)
	}
	if got := Wood.DisplayName(); got != "Wood" {
		t.Errorf("expected 'Wood', got %q", got)
	}

	// Unregistered types derive a readable name from the identifier
	if got := Type("obsidian_shard").DisplayName(); got != "Obsidian Shard" {
		t.Errorf("expected 'Obsidian Shard', got %q", got)
	}
}

func TestRarityBands(t *testing.T) {
	tests := []struct {
		typ       Type
		basic     bool
		rare      bool
		epic      bool
		legendary bool
	}{
		{Wood, true, false, false, false},
		{Gold, true, false, false, false},
		{Diamond, false, true, false, false},
		{Sapphire, false, true, false, false},
		{DragonScale, false, false, true, false},
		{NetherStar, false, false, true, false},
		{DragonEgg, false, false, false, true},
	}

	for _, tt := range tests {
		if got := tt.typ.IsBasic(); got != tt.basic {
			t.Errorf("%s.IsBasic() = %v", tt.typ, got)
		}
		if got := tt.typ.IsRare(); got != tt.rare {
			t.Errorf("%s.IsRare() = %v", tt.typ, got)
		}
		if got := tt.typ.IsEpic(); got != tt.epic {
			t.Errorf("%s.IsEpic() = %v", tt.typ, got)
		}
		if got := tt.typ.IsLegendary(); got != tt.legendary {
			t.Errorf("%s.IsLegendary() = %v", tt.typ, got)
		}
	}
}

func TestRegistryComplete(t *testing.T) {
	for typ, in := range registry {
		if in.DisplayName == "" || in.Description == "" {
			t.Errorf("%s missing display name or description", typ)
		}
		if in.Rarity < 1 || in.Rarity > 15 {
			t.Errorf("%s rarity out of range: %d", typ, in.Rarity)
		}
		if !typ.Known() {
			t.Errorf("%s not reported as known", typ)
		}
	}
}
