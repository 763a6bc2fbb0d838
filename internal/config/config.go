package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config aggregates client configuration values.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Logging LoggingConfig
}

// APIConfig governs connectivity to the FundPal backend API.
type APIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	IdentityMode string // header|query
}

// SessionConfig selects the persistence backend for the session store.
type SessionConfig struct {
	Backend       string // file|memory|redis
	FilePath      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

// Identity propagation modes. The web client sends a user-id header, the mobile
// client appends a user_id query parameter; a deployment picks one.
const (
	IdentityModeHeader = "header"
	IdentityModeQuery  = "query"
)

// Session persistence backends.
const (
	SessionBackendFile   = "file"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

const (
	defaultBaseURL       = "http://localhost:8000/api"
	defaultAPITimeout    = 30 * time.Second
	defaultIdentityMode  = IdentityModeHeader
	defaultBackend       = SessionBackendFile
	defaultRedisAddr     = "localhost:6379"
	defaultLoggingLevel  = "info"
	defaultLoggingFormat = "text"
	defaultSessionFile   = "session.json"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL:      valueOrDefault("FUNDPAL_API_BASE_URL", defaultBaseURL),
			Timeout:      defaultAPITimeout,
			IdentityMode: valueOrDefault("FUNDPAL_IDENTITY_MODE", defaultIdentityMode),
		},
		Session: SessionConfig{
			Backend:       valueOrDefault("FUNDPAL_STORAGE", defaultBackend),
			FilePath:      valueOrDefault("FUNDPAL_STORAGE_PATH", defaultSessionPath()),
			RedisAddr:     valueOrDefault("FUNDPAL_REDIS_ADDR", defaultRedisAddr),
			RedisPassword: os.Getenv("FUNDPAL_REDIS_PASSWORD"),
			RedisDB:       parseIntWithDefault("FUNDPAL_REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	if v := os.Getenv("FUNDPAL_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FUNDPAL_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}

	switch cfg.API.IdentityMode {
	case IdentityModeHeader, IdentityModeQuery:
	default:
		return Config{}, fmt.Errorf("invalid FUNDPAL_IDENTITY_MODE %q: must be %q or %q",
			cfg.API.IdentityMode, IdentityModeHeader, IdentityModeQuery)
	}

	switch cfg.Session.Backend {
	case SessionBackendFile, SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.Session.RedisAddr == "" {
			return Config{}, fmt.Errorf("FUNDPAL_REDIS_ADDR is required when FUNDPAL_STORAGE=redis")
		}
	default:
		return Config{}, fmt.Errorf("invalid FUNDPAL_STORAGE %q: must be file, memory or redis", cfg.Session.Backend)
	}

	return cfg, nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultSessionFile
	}
	return filepath.Join(home, ".fundpal", defaultSessionFile)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}
