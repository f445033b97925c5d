package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/alphapie/pieview/internal/common"
)

// Config represents the application configuration, shared by the portal
// server and the snapshot builder.
type Config struct {
	Environment string               `toml:"environment"`
	Server      ServerConfig         `toml:"server"`
	MarketData  MarketDataConfig     `toml:"marketdata"`
	Snapshot    SnapshotConfig       `toml:"snapshot"`
	Cache       CacheConfig          `toml:"cache"`
	Logging     common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// MarketDataConfig holds the upstream EOD price provider settings.
type MarketDataConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *MarketDataConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SnapshotConfig holds the paths of the two JSON documents the portal
// joins: the builder-generated snapshot and the static allocations file.
// Either may be a filesystem path or an http(s) URL.
type SnapshotConfig struct {
	Path            string `toml:"path"`
	AllocationsPath string `toml:"allocations_path"`
}

// CacheConfig controls the portal-side snapshot cache.
type CacheConfig struct {
	TTL string `toml:"ttl"`
}

// GetTTL parses and returns the cache freshness window.
func (c *CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return common.FreshnessSnapshot
	}
	return d
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies PIEVIEW_* environment variable overrides to
// config. The market-data API key additionally honours EODHD_API_KEY, the
// name the provider's own docs use.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PIEVIEW_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("PIEVIEW_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PIEVIEW_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		config.MarketData.APIKey = key
	}
	if key := os.Getenv("PIEVIEW_EODHD_API_KEY"); key != "" {
		config.MarketData.APIKey = key
	}
	if url := os.Getenv("PIEVIEW_MARKETDATA_URL"); url != "" {
		config.MarketData.BaseURL = url
	}
	if path := os.Getenv("PIEVIEW_SNAPSHOT_PATH"); path != "" {
		config.Snapshot.Path = path
	}
	if path := os.Getenv("PIEVIEW_ALLOCATIONS_PATH"); path != "" {
		config.Snapshot.AllocationsPath = path
	}
	if level := os.Getenv("PIEVIEW_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns human-readable issues for mandatory fields. Only the
// builder needs the API key, so that check lives in ValidateBuilder.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Snapshot.Path == "" {
		issues = append(issues, "snapshot.path must be set")
	}
	if c.Snapshot.AllocationsPath == "" {
		issues = append(issues, "snapshot.allocations_path must be set")
	}
	return issues
}

// ValidateBuilder returns issues for fields the snapshot builder requires.
func (c *Config) ValidateBuilder() []string {
	var issues []string
	if c.MarketData.APIKey == "" {
		issues = append(issues, "marketdata.api_key must be set (or EODHD_API_KEY in the environment)")
	}
	if c.MarketData.BaseURL == "" {
		issues = append(issues, "marketdata.base_url must be set")
	}
	if c.Snapshot.Path == "" {
		issues = append(issues, "snapshot.path must be set")
	}
	return issues
}
