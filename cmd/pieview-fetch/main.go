// Command pieview-fetch runs one snapshot build: it fetches 12 months of
// history for every ticker in the universe, computes returns, and writes the
// snapshot document the portal serves.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/alphapie/pieview/internal/builder"
	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/marketdata"
)

var (
	configFile  = flag.String("config", "", "Configuration file path")
	outputPath  = flag.String("output", "", "Snapshot output path (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("pieview-fetch version %s\n", config.GetVersion())
		os.Exit(0)
	}

	// Local development convenience; missing .env is not an error.
	godotenv.Load()

	cfg, err := config.LoadFromFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *outputPath != "" {
		cfg.Snapshot.Path = *outputPath
	}

	if issues := cfg.ValidateBuilder(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error: mandatory fields are missing or invalid:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	client := marketdata.NewClient(&cfg.MarketData)
	b := builder.New(client, builder.Universe, logger)

	snap := b.Build(context.Background())

	if err := builder.WriteSnapshot(cfg.Snapshot.Path, snap); err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to write snapshot")
		os.Exit(1)
	}

	builder.PrintSummary(os.Stdout, snap, cfg.Snapshot.Path)
}
