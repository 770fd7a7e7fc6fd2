package services

import (
	"encoding/json"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

const ollamaDefaultModel = "llama2"

// OllamaAdapter implements ProviderAdapter for the Ollama generate API:
// a flat prompt/response schema.
type OllamaAdapter struct{}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (a *OllamaAdapter) Provider() dialogue.Provider {
	return dialogue.ProviderOllama
}

func (a *OllamaAdapter) Encode(prompt string) []byte {
	req := ollamaRequest{
		Model:  ollamaDefaultModel,
		Prompt: prompt,
		Stream: false,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil
	}
	return payload
}

func (a *OllamaAdapter) Decode(body []byte) string {
	var resp ollamaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Response
}
