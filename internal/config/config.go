// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default external endpoints. Overridable for staging and tests.
const (
	DefaultStatsFeedURL = "https://api.hirefraction.com/api/test/baseball"
	DefaultOpenAIURL    = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel  = "gpt-4o-mini"
)

// Table names — single source of truth, matches the migration DDL.
const (
	PlayersTable      = "players"
	DescriptionsTable = "player_descriptions"
)

// Config is populated from environment variables.
type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// External stats feed
	StatsFeedURL     string
	StatsFeedTimeout time.Duration

	// OpenAI description generation
	OpenAIAPIKey  string
	OpenAIURL     string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// Response cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		dbURL = discreteDatabaseURL()
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL (or DB_HOST/DB_NAME/DB_USER) must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		StatsFeedURL:     envOr("STATS_FEED_URL", DefaultStatsFeedURL),
		StatsFeedTimeout: time.Duration(envInt("STATS_FEED_TIMEOUT_SECONDS", 10)) * time.Second,

		OpenAIAPIKey:  envOr("OPENAI_API_KEY", ""),
		OpenAIURL:     envOr("OPENAI_API_URL", DefaultOpenAIURL),
		OpenAIModel:   envOr("OPENAI_MODEL", DefaultOpenAIModel),
		OpenAITimeout: time.Duration(envInt("OPENAI_TIMEOUT_SECONDS", 30)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// discreteDatabaseURL assembles a connection URL from the legacy discrete
// variables (DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD). Returns ""
// if DB_NAME is unset.
func discreteDatabaseURL() string {
	name := os.Getenv("DB_NAME")
	if name == "" {
		return ""
	}
	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", envOr("USER", "postgres"))

	u := url.URL{
		Scheme: "postgres",
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	if pw := os.Getenv("DB_PASSWORD"); pw != "" {
		u.User = url.UserPassword(user, pw)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
