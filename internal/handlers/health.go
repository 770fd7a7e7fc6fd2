package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/poorcraft/npc-engine/internal/services"
)

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

// Pinger is the health surface of the snapshot store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger // nil when persistence is not wired
	gateway *services.Gateway
	logger  *slog.Logger
}

func NewHealthHandler(store Pinger, gateway *services.Gateway, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		gateway: gateway,
		logger:  logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	components := make(map[string]interface{})
	overallStatus := "healthy"

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("Storage health check failed", "error", err)
			components["storage"] = "unhealthy"
			overallStatus = "degraded"
		} else {
			components["storage"] = "healthy"
		}
	} else {
		components["storage"] = "disabled"
	}

	// An unconfigured gateway is not a failure: NPCs fall back to
	// deterministic replies.
	if h.gateway.Configured() {
		components["gateway"] = string(h.gateway.Provider())
	} else {
		components["gateway"] = "unconfigured"
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "npc-engine",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding health response",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
