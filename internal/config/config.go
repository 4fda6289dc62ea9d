// ABOUTME: Centralized configuration for the pagesmith CLI and servers
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Storage backend names accepted by PAGESMITH_STORAGE
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageCharm  = "charm"
)

// AppName names the data directory under XDG_DATA_HOME
const AppName = "pagesmith"

// Config holds all configuration for pagesmith
type Config struct {
	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Rule store settings
	DataDir      string
	IndexPrefix  string
	IndexMode    string
	Storage      string
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	RequireTags  bool

	// Rule sources
	StaticRulesPath    string
	LengthGuidancePath string

	// Server and logging
	HTTPAddr  string
	LogLevel  string
	LogFormat string
}

// DefaultDataDir returns $XDG_DATA_HOME/pagesmith
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dataDir := getEnv("PAGESMITH_DATA_DIR", DefaultDataDir())

	cfg := &Config{
		// Defaults
		CharmHost:          getEnv("CHARM_HOST", "charm.2389.dev"),
		CharmDBName:        getEnv("CHARM_DB", AppName),
		AutoSync:           getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		ChatModel:          getEnv("PAGESMITH_CHAT_MODEL", "gpt-4.1-mini"),
		EmbeddingModel:     getEnv("PAGESMITH_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		DataDir:            dataDir,
		IndexPrefix:        getEnv("PAGESMITH_INDEX_PREFIX", filepath.Join(dataDir, "index", "golden_rules")),
		IndexMode:          getEnv("PAGESMITH_INDEX_MODE", "flat"),
		Storage:            getEnv("PAGESMITH_STORAGE", StorageFile),
		ChunkSize:          getEnvInt("PAGESMITH_CHUNK_SIZE", 260),
		ChunkOverlap:       getEnvInt("PAGESMITH_CHUNK_OVERLAP", 40),
		TopK:               getEnvInt("PAGESMITH_TOP_K", 5),
		RequireTags:        getEnvBool("PAGESMITH_REQUIRE_TAGS", true),
		StaticRulesPath:    os.Getenv("PAGESMITH_STATIC_RULES"),
		LengthGuidancePath: os.Getenv("PAGESMITH_LENGTH_GUIDANCE"),
		HTTPAddr:           getEnv("PAGESMITH_HTTP_ADDR", ":8080"),
		LogLevel:           getEnv("PAGESMITH_LOG_LEVEL", "info"),
		LogFormat:          getEnv("PAGESMITH_LOG_FORMAT", "console"),
	}

	return cfg, cfg.Validate()
}

// Validate range-checks numeric settings and enumerations
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("PAGESMITH_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("PAGESMITH_CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.TopK <= 0 || c.TopK > 100 {
		return fmt.Errorf("PAGESMITH_TOP_K must be 1-100, got %d", c.TopK)
	}
	switch c.IndexMode {
	case "flat", "bruteforce":
	default:
		return fmt.Errorf("PAGESMITH_INDEX_MODE must be flat or bruteforce, got %q", c.IndexMode)
	}
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageCharm:
	default:
		return fmt.Errorf("PAGESMITH_STORAGE must be file, sqlite, or charm, got %q", c.Storage)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("PAGESMITH_LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// SQLitePath is the database file used by the sqlite backend and run history
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, AppName+".db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
