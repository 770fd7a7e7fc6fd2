package dialogue

const (
	// SpeakerPlayer tags player turns in a transcript.
	SpeakerPlayer = "Player"

	transcriptMax  = 20
	transcriptTrim = 10
)

// Turn is one message in a conversation. Speaker is either
// SpeakerPlayer or the NPC's name.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Transcript is the bounded exchange history for one NPC.
//
// The bound is trim-by-half, not a sliding window: when an append would
// push the length past 20 entries, the oldest 10 are dropped in one step
// before the append. Callers relying on history windows (prompt building,
// snapshots) see at most 20 entries at all times.
type Transcript struct {
	turns []Turn
}

// Append adds turns under the trim-by-half policy.
func (t *Transcript) Append(turns ...Turn) {
	for _, turn := range turns {
		if len(t.turns)+1 > transcriptMax {
			t.turns = append(t.turns[:0], t.turns[transcriptTrim:]...)
		}
		t.turns = append(t.turns, turn)
	}
}

// Len returns the current number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Turns returns a copy of all turns, oldest first.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Recent returns the last n exchanges (up to n*2 turns), oldest first.
func (t *Transcript) Recent(n int) []Turn {
	start := len(t.turns) - n*2
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(t.turns)-start)
	copy(out, t.turns[start:])
	return out
}

// Restore replaces the transcript contents, re-applying the bound.
// Used when loading an agent snapshot.
func (t *Transcript) Restore(turns []Turn) {
	t.turns = t.turns[:0]
	t.Append(turns...)
}
