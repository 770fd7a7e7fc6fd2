package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poorcraft/npc-engine/internal/services"
)

func TestGatewayHandler_Status(t *testing.T) {
	gw := services.NewGateway(testLogger())
	h := NewGatewayHandler(gw, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/gateway", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var status GatewayStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "gemini", status.Provider)
	assert.False(t, status.Configured)
}

func TestGatewayHandler_Configure(t *testing.T) {
	gw := services.NewGateway(testLogger())
	h := NewGatewayHandler(gw, testLogger())

	body, _ := json.Marshal(ConfigureRequest{Provider: "ollama", APIKey: "key"})
	req := httptest.NewRequest(http.MethodPut, "/v1/gateway", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var status GatewayStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "ollama", status.Provider)
	assert.True(t, status.Configured)
}

func TestGatewayHandler_ConfigureUnknownProvider(t *testing.T) {
	gw := services.NewGateway(testLogger())
	h := NewGatewayHandler(gw, testLogger())

	body, _ := json.Marshal(ConfigureRequest{Provider: "bedrock", APIKey: "key"})
	req := httptest.NewRequest(http.MethodPut, "/v1/gateway", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Active configuration is untouched by the rejected request.
	assert.False(t, gw.Configured())
}

func TestGatewayHandler_MethodNotAllowed(t *testing.T) {
	gw := services.NewGateway(testLogger())
	h := NewGatewayHandler(gw, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/v1/gateway", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
