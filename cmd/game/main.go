package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/poorcraft/npc-engine/internal/config"
	"github.com/poorcraft/npc-engine/internal/game"
	"github.com/poorcraft/npc-engine/internal/handlers"
	"github.com/poorcraft/npc-engine/internal/logger"
	"github.com/poorcraft/npc-engine/internal/middleware"
	"github.com/poorcraft/npc-engine/internal/npc"
	"github.com/poorcraft/npc-engine/internal/services"
	"github.com/poorcraft/npc-engine/internal/storage"
	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting NPC Engine",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"provider", cfg.Provider,
		"ups", cfg.UPS)

	gateway := services.NewGateway(log)
	if cfg.APIKey != "" {
		if err := gateway.Configure(cfg.Provider, cfg.APIKey); err != nil {
			log.Error("Invalid dialogue provider specified",
				"provider", cfg.Provider,
				"supported", dialogue.Providers)
			os.Exit(1)
		}
	} else {
		// No credential: NPCs answer with deterministic fallbacks until
		// the gateway is configured over the API.
		log.Warn("Dialogue gateway starting unconfigured")
	}

	var snapStore npc.SnapshotStore
	var pinger handlers.Pinger
	if cfg.RedisURL != "" {
		store := storage.NewRedisStore(cfg.RedisURL, log)
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := store.WaitForConnection(storageCtx); err != nil {
			storageCancel()
			log.Error("Failed to connect to storage", "error", err)
			os.Exit(1)
		}
		storageCancel()
		defer store.Close()
		snapStore = store
		pinger = store
		log.Info("Snapshot persistence enabled", "redis_url", cfg.RedisURL)
	}

	manager := npc.NewManager(gateway, snapStore, log)
	world := game.NewWorld()
	playerSys := game.NewPlayer()

	loopCtx, loopCancel := context.WithCancel(context.Background())
	defer loopCancel()
	loop := game.NewLoop(cfg.UPS, log, world, playerSys, manager)
	go loop.Run(loopCtx)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(pinger, gateway, log)
	mux.Handle("/health", healthHandler)

	gatewayHandler := handlers.NewGatewayHandler(gateway, log)
	mux.Handle("/v1/gateway", gatewayHandler)

	npcHandler := handlers.NewNPCHandler(manager, log)
	mux.Handle("/v1/npcs", npcHandler)
	mux.Handle("/v1/npcs/", npcHandler)

	handler := middleware.Logger(log)(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	loopCancel()
	if err := manager.Shutdown(shutdownCtx); err != nil {
		log.Error("NPC manager shutdown incomplete", "error", err)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
