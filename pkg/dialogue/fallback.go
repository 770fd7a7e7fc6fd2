package dialogue

import "strings"

// Two fallback policies exist and fire from different call sites:
// CannedReply before any remote attempt (AI disabled for the NPC), and
// KeywordReply after a live attempt failed. The asymmetry is deliberate;
// do not merge them.

var cannedReplies = map[Personality]string{
	PersonalityFriendly: "Hello there! I'm happy to help you on your adventure!",
	PersonalityMerchant: "Looking to trade? I have some interesting items available.",
	PersonalityWarrior:  "Greetings, adventurer! Ready for battle?",
	PersonalityMage:     "The arcane energies are strong today... How may I assist you?",
	PersonalityTrader:   "I deal in things most merchants never see. Interested?",
	PersonalityExplorer: "I've walked every road on this map. Ask me anything.",
	PersonalityGuard:    "Halt! State your business, traveler.",
	PersonalityVillager: "Good day to you. The fields won't tend themselves, you know.",
}

const cannedDefault = "Hello! What can I do for you?"

// CannedReply returns the fixed in-character line for a personality.
// Pure and total: never empty, for any input.
func CannedReply(p Personality) string {
	if reply, ok := cannedReplies[p]; ok {
		return reply
	}
	return cannedDefault
}

// KeywordReply scans the player's input for known topics and returns a
// deterministic reply. Matches are checked in fixed order; first wins.
// Pure and total: never empty, for any input.
func KeywordReply(npcName, input string) string {
	lower := strings.ToLower(input)

	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return "Hello! I'm " + npcName + ". Nice to meet you!"
	case strings.Contains(lower, "trade") || strings.Contains(lower, "buy") || strings.Contains(lower, "sell"):
		return "I have some items for trade. What are you looking for?"
	case strings.Contains(lower, "quest") || strings.Contains(lower, "mission"):
		return "I might have a task for someone of your level. Are you interested?"
	default:
		return "I'm not sure how to respond to that. Is there something specific you need?"
	}
}
