package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poorcraft/npc-engine/internal/services"
	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name            string
		store           Pinger
		configure       bool
		expectedStatus  int
		expectedHealth  string
		expectedStorage string
		expectedGateway string
	}{
		{
			name:            "healthy with storage and gateway",
			store:           &stubPinger{},
			configure:       true,
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedStorage: "healthy",
			expectedGateway: "ollama",
		},
		{
			name:            "unhealthy storage",
			store:           &stubPinger{err: errors.New("connection failed")},
			configure:       true,
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "degraded",
			expectedStorage: "unhealthy",
			expectedGateway: "ollama",
		},
		{
			name:            "no storage, unconfigured gateway",
			store:           nil,
			configure:       false,
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedStorage: "disabled",
			expectedGateway: "unconfigured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := services.NewGateway(testLogger())
			if tt.configure {
				require.NoError(t, gw.Configure(dialogue.ProviderOllama, "key"))
			}

			h := NewHealthHandler(tt.store, gw, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedHealth, resp.Status)
			assert.Equal(t, "npc-engine", resp.Service)
			assert.Equal(t, tt.expectedStorage, resp.Components["storage"])
			assert.Equal(t, tt.expectedGateway, resp.Components["gateway"])
		})
	}
}
