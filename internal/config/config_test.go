package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"InsightsFeeder/internal/domain"
)

// clearEnv blanks every setting the loader reads so ambient values from the
// host cannot leak into assertions. t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"INSIGHTS_FEEDER_CONFIG",
		"MONGO_URI", "MONGO_DB", "SOURCE_COLLECTION", "LEDGER_COLLECTION", "PROCESS_SINCE",
		"ASSISTANT_API_URL", "ASSISTANT_API_KEY", "ASSISTANT_ID",
		"BATCH_SIZE", "ITEM_DELAY_MS", "BATCH_DELAY_MS",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Store.URI != "" {
		t.Fatalf("store uri should have no default, got %q", cfg.Store.URI)
	}
	if cfg.Store.SourceCollection != "responses" {
		t.Fatalf("unexpected source collection: %s", cfg.Store.SourceCollection)
	}
	if cfg.Store.LedgerCollection != "processed_responses" {
		t.Fatalf("unexpected ledger collection: %s", cfg.Store.LedgerCollection)
	}
	if cfg.Assistant.AssistantID != "insights-agent" {
		t.Fatalf("unexpected assistant id: %s", cfg.Assistant.AssistantID)
	}
	if cfg.Batch.Size != 5 {
		t.Fatalf("unexpected batch size: %d", cfg.Batch.Size)
	}
	if cfg.Batch.ItemDelay() != time.Second {
		t.Fatalf("unexpected item delay: %v", cfg.Batch.ItemDelay())
	}
	if cfg.Batch.BatchDelay() != 2*time.Minute {
		t.Fatalf("unexpected batch delay: %v", cfg.Batch.BatchDelay())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Store.SinceTime().Equal(want) {
		t.Fatalf("unexpected default cutoff: %v", cfg.Store.SinceTime())
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "insights")
	t.Setenv("SOURCE_COLLECTION", "raw_responses")
	t.Setenv("ASSISTANT_API_URL", "https://assistant.example.com")
	t.Setenv("ASSISTANT_API_KEY", "secret")
	t.Setenv("BATCH_SIZE", "10")
	t.Setenv("ITEM_DELAY_MS", "50")
	t.Setenv("PROCESS_SINCE", "2025-06-01T00:00:00Z")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	if cfg.Store.URI != "mongodb://localhost:27017" {
		t.Fatalf("unexpected uri: %s", cfg.Store.URI)
	}
	if cfg.Store.Database != "insights" {
		t.Fatalf("unexpected database: %s", cfg.Store.Database)
	}
	if cfg.Store.SourceCollection != "raw_responses" {
		t.Fatalf("unexpected source collection: %s", cfg.Store.SourceCollection)
	}
	if cfg.Assistant.BaseURL != "https://assistant.example.com" {
		t.Fatalf("unexpected base url: %s", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.APIKey != "secret" {
		t.Fatalf("unexpected api key: %s", cfg.Assistant.APIKey)
	}
	if cfg.Batch.Size != 10 || cfg.Batch.ItemDelayMS != 50 {
		t.Fatalf("unexpected batch overrides: %+v", cfg.Batch)
	}
	if cfg.Batch.BatchDelayMS != 120000 {
		t.Fatalf("batch delay should keep its default, got %d", cfg.Batch.BatchDelayMS)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %s", cfg.Logging.Format)
	}

	want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Store.SinceTime().Equal(want) {
		t.Fatalf("unexpected cutoff: %v", cfg.Store.SinceTime())
	}
}

func TestInvalidEnvValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BATCH_SIZE", "many")
	t.Setenv("ITEM_DELAY_MS", "-5")
	t.Setenv("PROCESS_SINCE", "yesterday")

	cfg := Load()

	if cfg.Batch.Size != 5 {
		t.Fatalf("junk batch size should keep default, got %d", cfg.Batch.Size)
	}
	if cfg.Batch.ItemDelayMS != 1000 {
		t.Fatalf("negative delay should keep default, got %d", cfg.Batch.ItemDelayMS)
	}
	if cfg.Store.Since != "2025-01-01T00:00:00Z" {
		t.Fatalf("junk cutoff should keep default, got %s", cfg.Store.Since)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
store:
  uri: mongodb://file-host:27017
  database: filedb
batch:
  size: 3
  batchDelayMs: 1000
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	clearEnv(t)
	t.Setenv("INSIGHTS_FEEDER_CONFIG", path)
	t.Setenv("MONGO_DB", "envdb")

	cfg := Load()

	if cfg.Store.URI != "mongodb://file-host:27017" {
		t.Fatalf("unexpected uri: %s", cfg.Store.URI)
	}
	if cfg.Store.Database != "envdb" {
		t.Fatalf("env should override file, got %s", cfg.Store.Database)
	}
	if cfg.Batch.Size != 3 || cfg.Batch.BatchDelayMS != 1000 {
		t.Fatalf("unexpected batch config: %+v", cfg.Batch)
	}
	if cfg.Batch.ItemDelayMS != 1000 {
		t.Fatalf("item delay should keep default, got %d", cfg.Batch.ItemDelayMS)
	}
}

func TestValidateListsMissing(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if len(cfgErr.Missing) != 3 {
		t.Fatalf("expected 3 missing settings, got %v", cfgErr.Missing)
	}

	cfg.Store.URI = "mongodb://localhost:27017"
	cfg.Store.Database = "insights"
	cfg.Assistant.BaseURL = "https://assistant.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
