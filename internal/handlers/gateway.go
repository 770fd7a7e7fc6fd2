package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/poorcraft/npc-engine/internal/services"
	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ConfigureRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
}

type GatewayStatus struct {
	Provider   string `json:"provider"`
	Configured bool   `json:"configured"`
}

// GatewayHandler exposes the dialogue gateway's provider configuration.
type GatewayHandler struct {
	gateway *services.Gateway
	logger  *slog.Logger
}

func NewGatewayHandler(gateway *services.Gateway, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// ServeHTTP handles gateway configuration
// Routes:
// GET /v1/gateway  - Read active provider and configuration state
// PUT /v1/gateway  - Switch provider and credential
func (h *GatewayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		h.writeStatus(w)

	case http.MethodPut:
		var req ConfigureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Warn("Invalid gateway configure body", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'provider' and 'api_key' fields."})
			return
		}

		provider, err := dialogue.ParseProvider(req.Provider)
		if err != nil {
			h.logger.Warn("Unknown provider requested", "provider", req.Provider)
			w.WriteHeader(http.StatusBadRequest)
			h.encode(w, ErrorResponse{Error: "Unknown provider. Supported: gemini, ollama, openrouter."})
			return
		}

		if err := h.gateway.Configure(provider, req.APIKey); err != nil {
			h.logger.Error("Failed to configure gateway", "provider", provider, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			h.encode(w, ErrorResponse{Error: "Failed to configure gateway."})
			return
		}
		h.writeStatus(w)

	default:
		h.logger.Warn("Method not allowed for gateway endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		h.encode(w, ErrorResponse{Error: "Method not allowed. Supported methods: GET, PUT"})
	}
}

func (h *GatewayHandler) writeStatus(w http.ResponseWriter) {
	h.encode(w, GatewayStatus{
		Provider:   string(h.gateway.Provider()),
		Configured: h.gateway.Configured(),
	})
}

func (h *GatewayHandler) encode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
