package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"InsightsFeeder/internal/domain"
)

const (
	defaultSince     = "2025-01-01T00:00:00Z"
	configPathEnv    = "INSIGHTS_FEEDER_CONFIG"
	storeURIEnv      = "MONGO_URI"
	storeDatabaseEnv = "MONGO_DB"
	sourceCollEnv    = "SOURCE_COLLECTION"
	ledgerCollEnv    = "LEDGER_COLLECTION"
	sinceEnv         = "PROCESS_SINCE"
	assistantURLEnv  = "ASSISTANT_API_URL"
	assistantKeyEnv  = "ASSISTANT_API_KEY"
	assistantIDEnv   = "ASSISTANT_ID"
	batchSizeEnv     = "BATCH_SIZE"
	itemDelayEnv     = "ITEM_DELAY_MS"
	batchDelayEnv    = "BATCH_DELAY_MS"
	logLevelEnv      = "LOG_LEVEL"
	logFormatEnv     = "LOG_FORMAT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Assistant AssistantConfig `yaml:"assistant"`
	Batch     BatchConfig     `yaml:"batch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StoreConfig describes the document store holding responses and the ledger.
// URI and Database carry no defaults: they must be provided or startup fails.
type StoreConfig struct {
	URI              string `yaml:"uri"`
	Database         string `yaml:"database"`
	SourceCollection string `yaml:"sourceCollection"`
	LedgerCollection string `yaml:"ledgerCollection"`
	Since            string `yaml:"since"`
}

// SinceTime resolves the eligibility cutoff, reverting to the default when
// the configured value does not parse.
func (s StoreConfig) SinceTime() time.Time {
	if ts, err := time.Parse(time.RFC3339, s.Since); err == nil {
		return ts
	}
	ts, _ := time.Parse(time.RFC3339, defaultSince)
	return ts
}

// AssistantConfig defines how to contact the assistant API.
type AssistantConfig struct {
	BaseURL     string `yaml:"baseUrl"`
	APIKey      string `yaml:"apiKey"`
	AssistantID string `yaml:"assistantId"`
}

// BatchConfig controls batching and pacing of the driver.
type BatchConfig struct {
	Size         int `yaml:"size"`
	ItemDelayMS  int `yaml:"itemDelayMs"`
	BatchDelayMS int `yaml:"batchDelayMs"`
}

// ItemDelay returns the pause applied after every dispatched item.
func (b BatchConfig) ItemDelay() time.Duration {
	return time.Duration(b.ItemDelayMS) * time.Millisecond
}

// BatchDelay returns the pause applied after every batch.
func (b BatchConfig) BatchDelay() time.Duration {
	return time.Duration(b.BatchDelayMS) * time.Millisecond
}

// LoggingConfig selects log verbosity and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate reports every required setting that is still missing.
func (c Config) Validate() error {
	var missing []string
	if c.Store.URI == "" {
		missing = append(missing, storeURIEnv)
	}
	if c.Store.Database == "" {
		missing = append(missing, storeDatabaseEnv)
	}
	if c.Assistant.BaseURL == "" {
		missing = append(missing, assistantURLEnv)
	}
	if len(missing) > 0 {
		return &domain.ConfigError{Missing: missing}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storeURIEnv); v != "" {
		c.Store.URI = v
	}
	if v := os.Getenv(storeDatabaseEnv); v != "" {
		c.Store.Database = v
	}
	if v := os.Getenv(sourceCollEnv); v != "" {
		c.Store.SourceCollection = v
	}
	if v := os.Getenv(ledgerCollEnv); v != "" {
		c.Store.LedgerCollection = v
	}
	if v := os.Getenv(sinceEnv); v != "" {
		if _, err := time.Parse(time.RFC3339, v); err != nil {
			log.Printf("config: invalid %s=%q, keeping %s", sinceEnv, v, c.Store.Since)
		} else {
			c.Store.Since = v
		}
	}

	if v := os.Getenv(assistantURLEnv); v != "" {
		c.Assistant.BaseURL = v
	}
	if v := os.Getenv(assistantKeyEnv); v != "" {
		c.Assistant.APIKey = v
	}
	if v := os.Getenv(assistantIDEnv); v != "" {
		c.Assistant.AssistantID = v
	}

	c.Batch.Size = overrideInt(batchSizeEnv, c.Batch.Size)
	c.Batch.ItemDelayMS = overrideInt(itemDelayEnv, c.Batch.ItemDelayMS)
	c.Batch.BatchDelayMS = overrideInt(batchDelayEnv, c.Batch.BatchDelayMS)

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Logging.Format = v
	}
}

func overrideInt(env string, current int) int {
	v := os.Getenv(env)
	if v == "" {
		return current
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("config: invalid %s=%q, keeping %d", env, v, current)
		return current
	}
	return n
}

func mergeConfig(base, override Config) Config {
	if override.Store.URI != "" {
		base.Store.URI = override.Store.URI
	}
	if override.Store.Database != "" {
		base.Store.Database = override.Store.Database
	}
	if override.Store.SourceCollection != "" {
		base.Store.SourceCollection = override.Store.SourceCollection
	}
	if override.Store.LedgerCollection != "" {
		base.Store.LedgerCollection = override.Store.LedgerCollection
	}
	if override.Store.Since != "" {
		base.Store.Since = override.Store.Since
	}

	if override.Assistant.BaseURL != "" {
		base.Assistant.BaseURL = override.Assistant.BaseURL
	}
	if override.Assistant.APIKey != "" {
		base.Assistant.APIKey = override.Assistant.APIKey
	}
	if override.Assistant.AssistantID != "" {
		base.Assistant.AssistantID = override.Assistant.AssistantID
	}

	if override.Batch.Size > 0 {
		base.Batch.Size = override.Batch.Size
	}
	if override.Batch.ItemDelayMS > 0 {
		base.Batch.ItemDelayMS = override.Batch.ItemDelayMS
	}
	if override.Batch.BatchDelayMS > 0 {
		base.Batch.BatchDelayMS = override.Batch.BatchDelayMS
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			SourceCollection: "responses",
			LedgerCollection: "processed_responses",
			Since:            defaultSince,
		},
		Assistant: AssistantConfig{
			AssistantID: "insights-agent",
		},
		Batch: BatchConfig{
			Size:         5,
			ItemDelayMS:  1000,
			BatchDelayMS: 120000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
