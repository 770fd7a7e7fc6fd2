package dialogue

import "fmt"

// Personality drives both prompt framing and offline canned replies.
type Personality string

const (
	PersonalityFriendly Personality = "friendly"
	PersonalityMerchant Personality = "merchant"
	PersonalityWarrior  Personality = "warrior"
	PersonalityMage     Personality = "mage"
	PersonalityTrader   Personality = "trader"
	PersonalityExplorer Personality = "explorer"
	PersonalityGuard    Personality = "guard"
	PersonalityVillager Personality = "villager"
)

// Personalities lists all personalities in a stable order.
var Personalities = []Personality{
	PersonalityFriendly,
	PersonalityMerchant,
	PersonalityWarrior,
	PersonalityMage,
	PersonalityTrader,
	PersonalityExplorer,
	PersonalityGuard,
	PersonalityVillager,
}

type personalityInfo struct {
	label       string
	description string
}

var personalityInfos = map[Personality]personalityInfo{
	PersonalityFriendly: {"Friendly", "Helpful and encouraging"},
	PersonalityMerchant: {"Merchant", "Focuses on trading and business"},
	PersonalityWarrior:  {"Warrior", "Combat-focused and brave"},
	PersonalityMage:     {"Mage", "Magical and mysterious"},
	PersonalityTrader:   {"Trader", "Good at finding rare items"},
	PersonalityExplorer: {"Explorer", "Knowledgeable about the world"},
	PersonalityGuard:    {"Guard", "Protective and dutiful"},
	PersonalityVillager: {"Villager", "Simple and hardworking"},
}

// Label returns the display name, e.g. "Merchant".
func (p Personality) Label() string {
	return personalityInfos[p].label
}

// Description returns the behavioral description used in prompt framing.
func (p Personality) Description() string {
	return personalityInfos[p].description
}

// Valid reports whether p is a known personality.
func (p Personality) Valid() bool {
	_, ok := personalityInfos[p]
	return ok
}

// ParsePersonality converts a string into a Personality.
func ParsePersonality(s string) (Personality, error) {
	p := Personality(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown personality %q", s)
	}
	return p, nil
}
