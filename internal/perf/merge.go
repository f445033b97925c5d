// Package perf joins the static allocation set with the builder's snapshot
// and derives the portfolio-level figures the portal displays.
package perf

import (
	"errors"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/models"
)

// Data source labels reported on the merged view.
const (
	SourceLive   = "live"
	SourceStatic = "static"
)

// The merge fails when either input document is entirely absent; the
// caller renders an error rather than partial figures.
var (
	ErrNoAllocations = errors.New("no allocation set available")
	ErrNoSnapshot    = errors.New("no snapshot available")
)

// Merge overlays snapshot returns onto the allocation holdings, keyed by
// ticker. The join is holdings-driven: every holding appears exactly once in
// the result, and snapshot entries with no matching holding are ignored.
// A holding without a snapshot entry keeps its stale return and is logged;
// DataSource reports "static" when no holding received a live overlay.
func Merge(snap *models.Snapshot, alloc *models.AllocationSet, logger *common.Logger) (*models.MergedView, error) {
	if alloc == nil {
		return nil, ErrNoAllocations
	}
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	view := &models.MergedView{
		Holdings:     make([]models.MergedHolding, 0, len(alloc.Holdings)),
		SectorColors: alloc.SectorColors,
		DataSource:   SourceStatic,
		LastUpdated:  snap.Metadata.LastUpdated,
	}

	live := snap.TickerMap()

	for _, holding := range alloc.Holdings {
		merged := models.MergedHolding{Holding: holding}

		if entry, ok := live[holding.Ticker]; ok {
			// Live data wins over whatever stale return the holding carried.
			merged.TotalReturn = entry.StockReturn
			merged.OneMonthReturn = entry.OneMonthReturn
			merged.ThreeMonthReturn = entry.ThreeMonthReturn
			merged.BaselinePrice = entry.BaselinePrice
			merged.CurrentPrice = entry.CurrentPrice
			merged.LastUpdated = entry.LastUpdated
			merged.Live = true
			view.DataSource = SourceLive
		} else {
			logger.Warn().
				Str("ticker", holding.Ticker).
				Msg("holding has no snapshot entry, using stale return")
		}

		view.Holdings = append(view.Holdings, merged)
	}

	return view, nil
}
