package services

import (
	"encoding/json"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

const openRouterDefaultModel = "openai/gpt-3.5-turbo"

// OpenRouterAdapter implements ProviderAdapter for OpenRouter's chat
// completions API: a chat-message-array schema.
type OpenRouterAdapter struct{}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`
}

type openRouterResponse struct {
	Choices []struct {
		Message openRouterMessage `json:"message"`
	} `json:"choices"`
}

func (a *OpenRouterAdapter) Provider() dialogue.Provider {
	return dialogue.ProviderOpenRouter
}

func (a *OpenRouterAdapter) Encode(prompt string) []byte {
	req := openRouterRequest{
		Model: openRouterDefaultModel,
		Messages: []openRouterMessage{
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil
	}
	return payload
}

func (a *OpenRouterAdapter) Decode(body []byte) string {
	var resp openRouterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
