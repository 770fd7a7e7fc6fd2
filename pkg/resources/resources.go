package resources

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type identifies a resource kind. Resources are opaque keyed quantities
// to the dialogue subsystem; the registry below exists for display and
// rarity classification.
type Type string

const (
	Wood    Type = "wood"
	Stone   Type = "stone"
	Iron    Type = "iron"
	Gold    Type = "gold"
	Diamond Type = "diamond"

	Crystal     Type = "crystal"
	Mythril     Type = "mythril"
	DragonScale Type = "dragon_scale"

	Leather Type = "leather"
	Feather Type = "feather"
	Bone    Type = "bone"

	Apple       Type = "apple"
	Bread       Type = "bread"
	Meat        Type = "meat"
	GoldenApple Type = "golden_apple"

	ManaCrystal      Type = "mana_crystal"
	FireEssence      Type = "fire_essence"
	IceEssence       Type = "ice_essence"
	LightningEssence Type = "lightning_essence"

	IronIngot  Type = "iron_ingot"
	GoldIngot  Type = "gold_ingot"
	SteelIngot Type = "steel_ingot"

	String Type = "string"
	Stick  Type = "stick"
	Flint  Type = "flint"

	Emerald  Type = "emerald"
	Ruby     Type = "ruby"
	Sapphire Type = "sapphire"

	EnderPearl Type = "ender_pearl"
	NetherStar Type = "nether_star"
	DragonEgg  Type = "dragon_egg"
)

type info struct {
	DisplayName string
	Description string
	Rarity      int // 1-15
}

var registry = map[Type]info{
	Wood:    {"Wood", "Basic building material from trees", 1},
	Stone:   {"Stone", "Solid mineral material", 1},
	Iron:    {"Iron", "Strong metallic material", 2},
	Gold:    {"Gold", "Valuable precious metal", 3},
	Diamond: {"Diamond", "Extremely hard crystal", 4},

	Crystal:     {"Crystal", "Magical energy source", 5},
	Mythril:     {"Mythril", "Lightweight magical alloy", 6},
	DragonScale: {"Dragon Scale", "Rare dragon material", 8},

	Leather: {"Leather", "Flexible animal hide", 2},
	Feather: {"Feather", "Light bird material", 1},
	Bone:    {"Bone", "Hard skeletal material", 2},

	Apple:       {"Apple", "Basic food source", 1},
	Bread:       {"Bread", "Sustaining food item", 2},
	Meat:        {"Meat", "Protein-rich food", 3},
	GoldenApple: {"Golden Apple", "Magical healing food", 5},

	ManaCrystal:      {"Mana Crystal", "Pure magical energy", 4},
	FireEssence:      {"Fire Essence", "Elemental fire energy", 5},
	IceEssence:       {"Ice Essence", "Elemental ice energy", 5},
	LightningEssence: {"Lightning Essence", "Elemental lightning energy", 6},

	IronIngot:  {"Iron Ingot", "Refined iron material", 3},
	GoldIngot:  {"Gold Ingot", "Refined gold material", 4},
	SteelIngot: {"Steel Ingot", "Strong alloy material", 5},

	String: {"String", "Flexible fiber material", 1},
	Stick:  {"Stick", "Basic tool handle", 1},
	Flint:  {"Flint", "Sharp stone material", 2},

	Emerald:  {"Emerald", "Rare green gem", 6},
	Ruby:     {"Ruby", "Rare red gem", 7},
	Sapphire: {"Sapphire", "Rare blue gem", 7},

	EnderPearl: {"Ender Pearl", "Teleportation material", 5},
	NetherStar: {"Nether Star", "Boss drop material", 10},
	DragonEgg:  {"Dragon Egg", "Ultimate rare item", 15},
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the human-readable name. Unregistered types get a
// name derived from the identifier, so mod-added resources still render.
func (t Type) DisplayName() string {
	if in, ok := registry[t]; ok {
		return in.DisplayName
	}
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

// Description returns the resource description, empty for unregistered types.
func (t Type) Description() string {
	return registry[t].Description
}

// Rarity returns the rarity level (1-15), 0 for unregistered types.
func (t Type) Rarity() int {
	return registry[t].Rarity
}

// Known reports whether the type is in the registry.
func (t Type) Known() bool {
	_, ok := registry[t]
	return ok
}

// Rarity bands.

func (t Type) IsBasic() bool     { return t.Rarity() >= 1 && t.Rarity() <= 3 }
func (t Type) IsRare() bool      { return t.Rarity() >= 4 && t.Rarity() <= 7 }
func (t Type) IsEpic() bool      { return t.Rarity() >= 8 && t.Rarity() <= 12 }
func (t Type) IsLegendary() bool { return t.Rarity() >= 13 }
