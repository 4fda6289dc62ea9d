// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"CHARM_HOST", "CHARM_DB", "CHARM_AUTO_SYNC",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_TIMEOUT", "OPENAI_MAX_RETRIES", "OPENAI_RETRY_DELAY",
	"PAGESMITH_CHAT_MODEL", "PAGESMITH_EMBEDDING_MODEL",
	"PAGESMITH_DATA_DIR", "PAGESMITH_INDEX_PREFIX", "PAGESMITH_INDEX_MODE", "PAGESMITH_STORAGE",
	"PAGESMITH_CHUNK_SIZE", "PAGESMITH_CHUNK_OVERLAP", "PAGESMITH_TOP_K", "PAGESMITH_REQUIRE_TAGS",
	"PAGESMITH_STATIC_RULES", "PAGESMITH_LENGTH_GUIDANCE",
	"PAGESMITH_HTTP_ADDR", "PAGESMITH_LOG_LEVEL", "PAGESMITH_LOG_FORMAT",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CharmDBName != "pagesmith" {
		t.Errorf("CharmDBName = %s, want pagesmith", cfg.CharmDBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync = false, want true")
	}
	if cfg.ChatModel != "gpt-4.1-mini" {
		t.Errorf("ChatModel = %s, want gpt-4.1-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.ChunkSize != 260 || cfg.ChunkOverlap != 40 {
		t.Errorf("chunking = %d/%d, want 260/40", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if !cfg.RequireTags {
		t.Error("RequireTags = false, want true")
	}
	if cfg.IndexMode != "flat" || cfg.Storage != StorageFile {
		t.Errorf("IndexMode/Storage = %s/%s, want flat/file", cfg.IndexMode, cfg.Storage)
	}
	if cfg.DataDir != DefaultDataDir() {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, DefaultDataDir())
	}
	if want := filepath.Join(cfg.DataDir, "index", "golden_rules"); cfg.IndexPrefix != want {
		t.Errorf("IndexPrefix = %s, want %s", cfg.IndexPrefix, want)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CHARM_HOST", "custom.charm.sh")
	t.Setenv("CHARM_AUTO_SYNC", "false")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("PAGESMITH_CHAT_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TIMEOUT", "60s")
	t.Setenv("OPENAI_MAX_RETRIES", "5")
	t.Setenv("PAGESMITH_DATA_DIR", "/srv/pagesmith")
	t.Setenv("PAGESMITH_INDEX_MODE", "bruteforce")
	t.Setenv("PAGESMITH_STORAGE", "sqlite")
	t.Setenv("PAGESMITH_CHUNK_SIZE", "120")
	t.Setenv("PAGESMITH_CHUNK_OVERLAP", "20")
	t.Setenv("PAGESMITH_TOP_K", "8")
	t.Setenv("PAGESMITH_REQUIRE_TAGS", "0")
	t.Setenv("PAGESMITH_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CharmHost != "custom.charm.sh" {
		t.Errorf("CharmHost = %s, want custom.charm.sh", cfg.CharmHost)
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
	if cfg.OpenAIKey != "test-key" || cfg.ChatModel != "gpt-4o" {
		t.Errorf("OpenAI = %s/%s", cfg.OpenAIKey, cfg.ChatModel)
	}
	if cfg.Timeout != 60*time.Second || cfg.MaxRetries != 5 {
		t.Errorf("Timeout/MaxRetries = %v/%d", cfg.Timeout, cfg.MaxRetries)
	}
	if cfg.IndexPrefix != filepath.Join("/srv/pagesmith", "index", "golden_rules") {
		t.Errorf("IndexPrefix = %s", cfg.IndexPrefix)
	}
	if cfg.SQLitePath() != filepath.Join("/srv/pagesmith", "pagesmith.db") {
		t.Errorf("SQLitePath() = %s", cfg.SQLitePath())
	}
	if cfg.IndexMode != "bruteforce" || cfg.Storage != StorageSQLite {
		t.Errorf("IndexMode/Storage = %s/%s", cfg.IndexMode, cfg.Storage)
	}
	if cfg.ChunkSize != 120 || cfg.ChunkOverlap != 20 || cfg.TopK != 8 {
		t.Errorf("retrieval = %d/%d/%d", cfg.ChunkSize, cfg.ChunkOverlap, cfg.TopK)
	}
	if cfg.RequireTags {
		t.Error("RequireTags = true, want false")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			MaxRetries: 3, ChunkSize: 260, ChunkOverlap: 40, TopK: 5,
			IndexMode: "flat", Storage: StorageFile, LogFormat: "console",
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() on defaults = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max retries too high", func(c *Config) { c.MaxRetries = 15 }},
		{"max retries negative", func(c *Config) { c.MaxRetries = -1 }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -5 }},
		{"zero top k", func(c *Config) { c.TopK = 0 }},
		{"unknown index mode", func(c *Config) { c.IndexMode = "hnsw" }},
		{"unknown storage", func(c *Config) { c.Storage = "redis" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal bool
		want       bool
	}{
		{"empty uses default true", "", true, true},
		{"empty uses default false", "", false, false},
		{"true", "true", false, true},
		{"1", "1", false, true},
		{"false", "false", true, false},
		{"0", "0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			got := getEnvBool("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}
