package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type NPCView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Personality   string    `json:"personality"`
	AIEnabled     bool      `json:"ai_enabled"`
	CurrentAction string    `json:"current_action"`
}

type SpawnRequest struct {
	Name        string `json:"name"`
	Personality string `json:"personality"`
}

type ChatRequest struct {
	Message       string `json:"message"`
	PlayerLevel   int    `json:"player_level"`
	ResourceTypes int    `json:"resource_types"`
}

type ChatResponse struct {
	NPCID uuid.UUID `json:"npc_id"`
	Name  string    `json:"name"`
	Reply string    `json:"reply"`
	Busy  bool      `json:"busy,omitempty"`
}

type AIToggleRequest struct {
	Enabled bool `json:"enabled"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listNPCs(client *http.Client, baseURL string) ([]NPCView, error) {
	resp, err := client.Get(baseURL + "/v1/npcs")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body, "failed to list NPCs")
	}

	var npcs []NPCView
	if err := json.Unmarshal(body, &npcs); err != nil {
		return nil, fmt.Errorf("failed to parse NPC list: %w", err)
	}
	return npcs, nil
}

func spawnNPC(client *http.Client, baseURL, name, personality string) (*NPCView, error) {
	jsonData, err := json.Marshal(SpawnRequest{Name: name, Personality: personality})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/npcs", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp.StatusCode, body, "failed to spawn NPC")
	}

	var view NPCView
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("failed to parse spawn response: %w", err)
	}
	return &view, nil
}

func chatNPC(client *http.Client, baseURL string, id uuid.UUID, message string) (*ChatResponse, error) {
	jsonData, err := json.Marshal(ChatRequest{Message: message, PlayerLevel: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/npcs/%s/chat", baseURL, id),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body, "chat request failed")
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}

func toggleAI(client *http.Client, baseURL string, id uuid.UUID, enabled bool) (*NPCView, error) {
	jsonData, err := json.Marshal(AIToggleRequest{Enabled: enabled})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/v1/npcs/%s/ai", baseURL, id),
		bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body, "toggle request failed")
	}

	var view NPCView
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("failed to parse toggle response: %w", err)
	}
	return &view, nil
}

func apiError(status int, body []byte, msg string) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s: %s", msg, errorResp.Error)
}
