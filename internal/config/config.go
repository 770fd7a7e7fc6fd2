package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poorcraft/npc-engine/pkg/dialogue"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Dialogue provider settings. APIKey empty means the gateway starts
	// unconfigured and all NPCs answer with fallback replies.
	Provider dialogue.Provider
	APIKey   string

	// RedisURL empty disables snapshot persistence.
	RedisURL string

	// Simulation updates per second for the game loop.
	UPS int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Provider:    dialogue.Provider(strings.ToLower(getEnv("AI_PROVIDER", string(dialogue.ProviderGemini)))),
		APIKey:      getEnv("AI_API_KEY", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		UPS:         parseUPS(getEnv("GAME_UPS", "30")),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseUPS(s string) int {
	ups, err := strconv.Atoi(s)
	if err != nil || ups <= 0 || ups > 240 {
		return 30
	}
	return ups
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
