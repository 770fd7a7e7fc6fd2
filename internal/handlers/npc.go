package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/poorcraft/npc-engine/internal/npc"
	"github.com/poorcraft/npc-engine/pkg/dialogue"
	"github.com/poorcraft/npc-engine/pkg/player"
)

type SpawnRequest struct {
	ID          uuid.UUID `json:"id,omitempty"`
	Name        string    `json:"name"`
	Personality string    `json:"personality"`
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

// NPCView is the read model returned for NPC queries.
type NPCView struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Personality   string          `json:"personality"`
	AIEnabled     bool            `json:"ai_enabled"`
	CurrentAction string          `json:"current_action"`
	Transcript    []dialogue.Turn `json:"transcript,omitempty"`
}

// NPCHandler handles NPC lifecycle and chat requests
type NPCHandler struct {
	manager *npc.Manager
	logger  *slog.Logger
}

func NewNPCHandler(manager *npc.Manager, logger *slog.Logger) *NPCHandler {
	return &NPCHandler{
		manager: manager,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for NPC operations
// Routes:
// GET /v1/npcs              - List spawned NPCs
// POST /v1/npcs             - Spawn an NPC
// GET /v1/npcs/{id}         - Read one NPC
// DELETE /v1/npcs/{id}      - Despawn an NPC
// POST /v1/npcs/{id}/chat   - Talk to an NPC
// PATCH /v1/npcs/{id}/ai    - Toggle remote generation
func (h *NPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/npcs"), "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w)
		case http.MethodPost:
			h.handleSpawn(w, r)
		default:
			h.methodNotAllowed(w, r, "GET, POST")
		}
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid NPC ID", "id", parts[0], "error", err)
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid NPC ID format"})
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, id)
		case http.MethodDelete:
			h.handleDespawn(w, r, id)
		default:
			h.methodNotAllowed(w, r, "GET, DELETE")
		}
		return
	}

	switch parts[1] {
	case "chat":
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleChat(w, r, id)
	case "ai":
		if r.Method != http.MethodPatch {
			h.methodNotAllowed(w, r, "PATCH")
			return
		}
		h.handleAIToggle(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "Unknown NPC operation"})
	}
}

func (h *NPCHandler) handleList(w http.ResponseWriter) {
	agents := h.manager.List()
	views := make([]NPCView, 0, len(agents))
	for _, a := range agents {
		views = append(views, view(a, false))
	}
	h.encode(w, views)
}

func (h *NPCHandler) handleSpawn(w http.ResponseWriter, r *http.Request) {
	var req SpawnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid spawn body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'name' and 'personality' fields."})
		return
	}
	if req.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Name cannot be empty."})
		return
	}
	personality, err := dialogue.ParsePersonality(req.Personality)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Unknown personality."})
		return
	}

	agent, err := h.manager.Spawn(r.Context(), req.ID, req.Name, personality)
	if err != nil {
		h.logger.Warn("Failed to spawn NPC", "name", req.Name, "error", err)
		w.WriteHeader(http.StatusConflict)
		h.encode(w, ErrorResponse{Error: "Failed to spawn NPC."})
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.encode(w, view(agent, false))
}

func (h *NPCHandler) handleRead(w http.ResponseWriter, id uuid.UUID) {
	agent, err := h.manager.Agent(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "NPC not found"})
		return
	}
	h.encode(w, view(agent, true))
}

func (h *NPCHandler) handleDespawn(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.manager.Despawn(r.Context(), id); err != nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "NPC not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NPCHandler) handleChat(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid chat body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'message' field."})
		return
	}
	if req.Message == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Message cannot be empty."})
		return
	}

	snap := player.Snapshot{
		Level:         req.PlayerLevel,
		ResourceTypes: req.ResourceTypes,
	}

	agent, err := h.manager.Agent(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "NPC not found"})
		return
	}

	ch, err := h.manager.Talk(id, req.Message, snap)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "NPC not found"})
		return
	}

	select {
	case res := <-ch:
		// Fallback text is still a successful chat from the player's
		// point of view; only observability distinguishes the cases.
		if res.Err != nil && !errors.Is(res.Err, npc.ErrBusy) {
			h.logger.Warn("Chat completed with error", "npc_id", id, "error", res.Err)
		}
		h.encode(w, ChatResponse{
			NPCID: id,
			Name:  agent.Name(),
			Reply: res.Text,
			Busy:  errors.Is(res.Err, npc.ErrBusy),
		})
	case <-r.Context().Done():
		h.logger.Warn("Chat request abandoned", "npc_id", id)
	}
}

func (h *NPCHandler) handleAIToggle(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req AIToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'enabled' field."})
		return
	}
	agent, err := h.manager.Agent(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "NPC not found"})
		return
	}
	if err := h.manager.SetAIEnabled(id, req.Enabled); err != nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "NPC not found"})
		return
	}
	h.encode(w, view(agent, false))
}

func (h *NPCHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request, supported string) {
	h.logger.Warn("Method not allowed for NPC endpoint",
		"method", r.Method,
		"path", r.URL.Path)
	w.WriteHeader(http.StatusMethodNotAllowed)
	h.encode(w, ErrorResponse{Error: "Method not allowed. Supported methods: " + supported})
}

func (h *NPCHandler) encode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func view(a *npc.Agent, withTranscript bool) NPCView {
	v := NPCView{
		ID:            a.ID(),
		Name:          a.Name(),
		Personality:   string(a.Personality()),
		AIEnabled:     a.AIEnabled(),
		CurrentAction: a.CurrentAction(),
	}
	if withTranscript {
		v.Transcript = a.TranscriptTurns()
	}
	return v
}
