// Package builder drives the return calculator across the ticker universe
// and assembles the snapshot document the portal reads.
package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/marketdata"
	"github.com/alphapie/pieview/internal/models"
	"github.com/alphapie/pieview/internal/returns"
)

// requestDelay is the fixed pause between upstream requests: a deliberate
// self-imposed rate limit, not a retry/backoff scheme. One request is in
// flight at any time.
const requestDelay = 1 * time.Second

// Builder produces a Snapshot from the ticker universe. Tickers are
// processed strictly sequentially; a single ticker's failure never aborts
// the run.
type Builder struct {
	source   marketdata.HistorySource
	universe []models.StockRef
	logger   *common.Logger
	delay    time.Duration
	now      func() time.Time
}

// New creates a Builder over the given history source and universe.
func New(source marketdata.HistorySource, universe []models.StockRef, logger *common.Logger) *Builder {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Builder{
		source:   source,
		universe: universe,
		logger:   logger,
		delay:    requestDelay,
		now:      time.Now,
	}
}

// Build runs the full universe and assembles the snapshot in memory.
// Nothing is written here: the caller persists the result once, at the end,
// so an interrupted run leaves no partial document behind.
func (b *Builder) Build(ctx context.Context) *models.Snapshot {
	start := b.now()
	baseline := common.RollingBaseline(start)
	today := common.ISODate(start)
	runID := uuid.New().String()
	log := b.logger.WithCorrelationId(runID)

	log.Info().
		Str("baseline_date", baseline).
		Str("run_date", today).
		Int("tickers", len(b.universe)).
		Msg("snapshot run starting")

	var succeeded []models.TickerReturn
	var failed []models.FailedTicker

	for i, stock := range b.universe {
		result, err := b.processStock(ctx, stock, baseline, today)
		if err != nil {
			log.Warn().
				Str("ticker", stock.Ticker).
				Str("error", err.Error()).
				Msg("ticker failed")
			failed = append(failed, models.FailedTicker{
				Ticker: stock.Ticker,
				Name:   stock.Name,
				Error:  err.Error(),
			})
		} else {
			log.Info().
				Str("ticker", stock.Ticker).
				Str("total_return", common.FormatSignedPct(result.StockReturn)).
				Str("one_month", common.FormatSignedPct(result.OneMonthReturn)).
				Str("three_month", common.FormatSignedPct(result.ThreeMonthReturn)).
				Msg("ticker processed")
			succeeded = append(succeeded, result)
		}

		// Pace requests to respect upstream rate limits.
		if i < len(b.universe)-1 {
			time.Sleep(b.delay)
		}
	}

	sort.Slice(succeeded, func(i, j int) bool {
		return succeeded[i].StockReturn > succeeded[j].StockReturn
	})

	snap := &models.Snapshot{
		Metadata: models.SnapshotMetadata{
			BaselineDate:      baseline,
			LastUpdated:       b.now().Format(time.RFC3339),
			TotalStocks:       len(b.universe),
			SuccessfulFetches: len(succeeded),
			FailedFetches:     len(failed),
		},
		Stocks: succeeded,
	}
	if len(failed) > 0 {
		snap.Errors = failed
	}

	log.Info().
		Int("successful", len(succeeded)).
		Int("failed", len(failed)).
		Msg("snapshot run complete")

	return snap
}

// processStock fetches one ticker's rolling 12-month history and computes
// its returns. Upstream errors and calculator errors are treated alike:
// converted into the per-ticker failure the caller records.
func (b *Builder) processStock(ctx context.Context, stock models.StockRef, baseline, today string) (models.TickerReturn, error) {
	bars, err := b.source.History(ctx, stock.Ticker, baseline, today)
	if err != nil {
		return models.TickerReturn{}, err
	}

	perf, err := returns.Calculate(bars)
	if err != nil {
		return models.TickerReturn{}, err
	}

	return models.TickerReturn{
		Ticker:           stock.Ticker,
		Name:             stock.Name,
		BaselinePrice:    perf.BaselinePrice,
		CurrentPrice:     perf.CurrentPrice,
		StockReturn:      perf.TotalReturn,
		OneMonthReturn:   perf.OneMonthReturn,
		ThreeMonthReturn: perf.ThreeMonthReturn,
		BaselineDate:     baseline,
		LastUpdated:      today,
	}, nil
}

// WriteSnapshot serialises the snapshot to path, creating the directory if
// needed. This is the single durable write of a run; its success determines
// the process exit status.
func WriteSnapshot(path string, snap *models.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", path, err)
	}

	return nil
}

// PrintSummary writes the human-readable run report: counts, top
// performers, and the failure list.
func PrintSummary(w io.Writer, snap *models.Snapshot, outputPath string) {
	meta := snap.Metadata

	fmt.Fprintf(w, "\nSnapshot complete (baseline %s)\n", meta.BaselineDate)
	fmt.Fprintf(w, "  total:      %d\n", meta.TotalStocks)
	fmt.Fprintf(w, "  successful: %d\n", meta.SuccessfulFetches)
	fmt.Fprintf(w, "  failed:     %d\n", meta.FailedFetches)
	fmt.Fprintf(w, "  written to: %s\n", outputPath)

	if len(snap.Stocks) > 0 {
		fmt.Fprintf(w, "\nTop performers:\n")
		top := snap.Stocks
		if len(top) > 5 {
			top = top[:5]
		}
		for i, stock := range top {
			fmt.Fprintf(w, "  %d. %s (%s): %s\n", i+1, stock.Ticker, stock.Name, common.FormatSignedPct(stock.StockReturn))
		}
	}

	if len(snap.Errors) > 0 {
		fmt.Fprintf(w, "\nFailed tickers:\n")
		for _, f := range snap.Errors {
			fmt.Fprintf(w, "  - %s (%s): %s\n", f.Ticker, f.Name, f.Error)
		}
	}
}
