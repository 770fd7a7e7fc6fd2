package services

import (
	"fmt"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

// ProviderAdapter translates between plain prompt text and one backend's
// wire schema. Adapters are stateless; adding a backend means adding one
// adapter, never modifying existing ones.
type ProviderAdapter interface {
	// Provider returns the backend this adapter serves.
	Provider() dialogue.Provider

	// Encode builds the request payload for a prompt. It is pure data
	// construction and never fails; a nil or empty payload signals a
	// build failure the caller must treat as such.
	Encode(prompt string) []byte

	// Decode extracts the first candidate utterance from a response
	// body. A malformed, absent or empty structure yields "" rather
	// than an error; parse faults never escape this boundary.
	Decode(body []byte) string
}

var adapters = map[dialogue.Provider]ProviderAdapter{
	dialogue.ProviderGemini:     &GeminiAdapter{},
	dialogue.ProviderOllama:     &OllamaAdapter{},
	dialogue.ProviderOpenRouter: &OpenRouterAdapter{},
}

// AdapterFor returns the adapter for a provider. An unknown provider is
// a programming error surfaced at configuration time, not at send time.
func AdapterFor(p dialogue.Provider) (ProviderAdapter, error) {
	adapter, ok := adapters[p]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for provider %q", p)
	}
	return adapter, nil
}
