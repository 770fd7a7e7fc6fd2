package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGateway_SendUnconfigured(t *testing.T) {
	g := NewGateway(testLogger())

	_, err := g.Send(context.Background(), "hello")
	if !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}
	if g.Configured() {
		t.Error("gateway should not report configured")
	}
}

func TestGateway_ConfigureRejectsUnknownProvider(t *testing.T) {
	g := NewGateway(testLogger())

	if err := g.Configure(dialogue.Provider("bedrock"), "key"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if err := g.Configure(dialogue.ProviderOllama, "key"); err != nil {
		t.Fatalf("valid configure failed: %v", err)
	}
	if g.Provider() != dialogue.ProviderOllama {
		t.Errorf("expected active provider ollama, got %q", g.Provider())
	}
}

func TestGateway_SendSuccess(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"response":"Greetings, traveler."}`))
	}))
	defer srv.Close()

	g := NewGateway(testLogger(), WithEndpoint(dialogue.ProviderOllama, srv.URL))
	if err := g.Configure(dialogue.ProviderOllama, "secret-key"); err != nil {
		t.Fatal(err)
	}

	text, err := g.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if text != "Greetings, traveler." {
		t.Errorf("unexpected reply: %q", text)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("unexpected Authorization header: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("unexpected Content-Type: %q", gotContentType)
	}
}

func TestGateway_SendHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGateway(testLogger(), WithEndpoint(dialogue.ProviderOpenRouter, srv.URL))
	if err := g.Configure(dialogue.ProviderOpenRouter, "key"); err != nil {
		t.Fatal(err)
	}

	_, err := g.Send(context.Background(), "hello")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", te.Status)
	}
}

func TestGateway_SendTransportFault(t *testing.T) {
	// Server closed before the call: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	g := NewGateway(testLogger(), WithEndpoint(dialogue.ProviderGemini, url))
	if err := g.Configure(dialogue.ProviderGemini, "key"); err != nil {
		t.Fatal(err)
	}

	_, err := g.Send(context.Background(), "hello")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Status != 0 {
		t.Errorf("expected no HTTP status, got %d", te.Status)
	}
}

func TestGateway_SendEmptyResponse(t *testing.T) {
	// HTTP 200 with a body lacking the expected field.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"gen-123","model":"openai/gpt-3.5-turbo"}`))
	}))
	defer srv.Close()

	g := NewGateway(testLogger(), WithEndpoint(dialogue.ProviderOpenRouter, srv.URL))
	if err := g.Configure(dialogue.ProviderOpenRouter, "key"); err != nil {
		t.Fatal(err)
	}

	_, err := g.Send(context.Background(), "hello")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGateway_SendCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	g := NewGateway(testLogger(), WithEndpoint(dialogue.ProviderOllama, srv.URL))
	if err := g.Configure(dialogue.ProviderOllama, "key"); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Send(ctx, "hello")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError for cancelled context, got %v", err)
	}
}

func TestGateway_ReconfigureAppliesToNextSend(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	defer srv.Close()

	g := NewGateway(testLogger(), WithEndpoint(dialogue.ProviderOllama, srv.URL))

	// Unconfigured first, then configured: only the second send lands.
	if _, err := g.Send(context.Background(), "one"); !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}
	if err := g.Configure(dialogue.ProviderOllama, "key"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Send(context.Background(), "two"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected exactly one backend hit, got %d", hits)
	}
}
