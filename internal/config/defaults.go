package config

import "github.com/alphapie/pieview/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4270,
			Host: "0.0.0.0",
		},
		MarketData: MarketDataConfig{
			BaseURL: "https://eodhd.com/api",
			Timeout: "30s",
		},
		Snapshot: SnapshotConfig{
			Path:            "data/stock-data.json",
			AllocationsPath: "data/portfolio-allocations.json",
		},
		Cache: CacheConfig{
			TTL: "1h",
		},
		Logging: common.LoggingConfig{
			Level:    "info",
			Outputs:  []string{"console", "file"},
			FilePath: "logs/pieview.log",
		},
	}
}
