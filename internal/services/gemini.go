package services

import (
	"encoding/json"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

// GeminiAdapter implements ProviderAdapter for the Gemini
// generateContent API: nested content parts in both directions.
type GeminiAdapter struct{}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (a *GeminiAdapter) Provider() dialogue.Provider {
	return dialogue.ProviderGemini
}

func (a *GeminiAdapter) Encode(prompt string) []byte {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil
	}
	return payload
}

func (a *GeminiAdapter) Decode(body []byte) string {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return resp.Candidates[0].Content.Parts[0].Text
}
