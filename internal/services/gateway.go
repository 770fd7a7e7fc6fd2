package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

// DefaultTimeout bounds a full gateway round-trip. An unbounded call
// would stall the caller's turn-taking, so the timeout is always finite.
const DefaultTimeout = 30 * time.Second

// DialogueSender is the interface agents use to reach a backend.
type DialogueSender interface {
	Send(ctx context.Context, prompt string) (string, error)
}

type gatewayConfig struct {
	provider   dialogue.Provider
	credential string
}

// Gateway dispatches prompts to the currently configured provider.
// Configuration swaps are atomic and take effect on the next Send only;
// an in-flight Send keeps the snapshot it took at dispatch time. The
// config lock is never held across a network call.
type Gateway struct {
	mu        sync.RWMutex
	cfg       gatewayConfig
	endpoints map[dialogue.Provider]string

	httpClient *http.Client
	logger     *slog.Logger
}

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient replaces the transport client (tests).
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.httpClient = c }
}

// WithEndpoint overrides the endpoint for one provider (tests).
func WithEndpoint(p dialogue.Provider, url string) GatewayOption {
	return func(g *Gateway) { g.endpoints[p] = url }
}

// NewGateway creates a gateway with no credential configured.
func NewGateway(logger *slog.Logger, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		cfg:       gatewayConfig{provider: dialogue.ProviderGemini},
		endpoints: make(map[dialogue.Provider]string),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
	for _, p := range dialogue.Providers {
		g.endpoints[p] = p.Endpoint()
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configure replaces the active provider and credential atomically.
// Unknown providers are rejected here so that Send never has to deal
// with a missing adapter.
func (g *Gateway) Configure(p dialogue.Provider, credential string) error {
	if _, err := AdapterFor(p); err != nil {
		return err
	}

	g.mu.Lock()
	g.cfg = gatewayConfig{provider: p, credential: credential}
	g.mu.Unlock()

	g.logger.Info("Dialogue gateway configured", "provider", p.Label())
	return nil
}

// Provider returns the currently configured provider.
func (g *Gateway) Provider() dialogue.Provider {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg.provider
}

// Configured reports whether a credential is set.
func (g *Gateway) Configured() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg.credential != ""
}

// Send delivers a prompt to the configured backend and returns the
// decoded reply text. Failures are ErrUnconfigured, *TransportError or
// ErrEmptyResponse; callers handle all three the same way.
func (g *Gateway) Send(ctx context.Context, prompt string) (string, error) {
	g.mu.RLock()
	cfg := g.cfg
	endpoint := g.endpoints[cfg.provider]
	g.mu.RUnlock()

	if cfg.credential == "" {
		return "", ErrUnconfigured
	}

	adapter, err := AdapterFor(cfg.provider)
	if err != nil {
		return "", err
	}

	payload := adapter.Encode(prompt)
	if len(payload) == 0 {
		return "", fmt.Errorf("empty request payload for provider %q", cfg.provider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.credential)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("Dialogue backend unreachable",
			"provider", cfg.provider.Label(),
			"error", err)
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("Dialogue backend returned error status",
			"provider", cfg.provider.Label(),
			"status", resp.StatusCode)
		return "", &TransportError{Status: resp.StatusCode}
	}

	text := adapter.Decode(body)
	if text == "" {
		g.logger.Warn("Dialogue backend reply had no usable text",
			"provider", cfg.provider.Label())
		return "", ErrEmptyResponse
	}

	g.logger.Debug("Dialogue backend replied",
		"provider", cfg.provider.Label(),
		"duration_ms", time.Since(start).Milliseconds())
	return text, nil
}
