package dialogue

import "fmt"

// Provider identifies a remote text-generation backend.
// Each provider has its own request/response wire format.
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOllama     Provider = "ollama"
	ProviderOpenRouter Provider = "openrouter"
)

// Providers lists all supported providers in a stable order.
var Providers = []Provider{ProviderGemini, ProviderOllama, ProviderOpenRouter}

var providerLabels = map[Provider]string{
	ProviderGemini:     "Gemini",
	ProviderOllama:     "Ollama",
	ProviderOpenRouter: "OpenRouter",
}

var providerEndpoints = map[Provider]string{
	ProviderGemini:     "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent",
	ProviderOllama:     "http://localhost:11434/api/generate",
	ProviderOpenRouter: "https://openrouter.ai/api/v1/chat/completions",
}

// Label returns the human-readable provider name.
func (p Provider) Label() string {
	return providerLabels[p]
}

// Endpoint returns the default chat completion URL for the provider.
func (p Provider) Endpoint() string {
	return providerEndpoints[p]
}

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	_, ok := providerLabels[p]
	return ok
}

// ParseProvider converts a string into a Provider,
// rejecting unknown values at configuration time.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown provider %q", s)
	}
	return p, nil
}
