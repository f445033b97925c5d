package perf

import (
	"sort"

	"github.com/alphapie/pieview/internal/models"
)

// WeightedReturn computes the allocation-weighted portfolio return for one
// timeframe. Only holdings with a live snapshot entry contribute; the
// result is normalised over the weight that actually contributed, so a few
// missing tickers skew nothing. The boolean is false when no holding had
// live data for the window — "unavailable", which callers must distinguish
// from a genuine 0% return.
func WeightedReturn(snap *models.Snapshot, alloc *models.AllocationSet, tf models.Timeframe) (float64, bool) {
	if snap == nil || alloc == nil {
		return 0, false
	}

	live := snap.TickerMap()

	var weightedSum, allocSum float64
	for _, holding := range alloc.Holdings {
		entry, ok := live[holding.Ticker]
		if !ok || holding.Allocation <= 0 {
			continue
		}
		weightedSum += holding.Allocation * entry.ReturnFor(tf)
		allocSum += holding.Allocation
	}

	if allocSum == 0 {
		return 0, false
	}
	return weightedSum / allocSum, true
}

// Metrics derives the weighted portfolio return for all three reporting
// windows.
func Metrics(snap *models.Snapshot, alloc *models.AllocationSet) models.PerformanceMetrics {
	var m models.PerformanceMetrics
	m.OneMonth.Portfolio, m.OneMonth.Available = WeightedReturn(snap, alloc, models.TimeframeOneMonth)
	m.ThreeMonth.Portfolio, m.ThreeMonth.Available = WeightedReturn(snap, alloc, models.TimeframeThreeMonth)
	m.OneYear.Portfolio, m.OneYear.Available = WeightedReturn(snap, alloc, models.TimeframeOneYear)
	return m
}

// TopPerformers returns the count best-performing snapshot entries by total
// return. The snapshot is stored sorted, but the slice is re-sorted here so
// the contract holds even for a hand-edited document.
func TopPerformers(snap *models.Snapshot, count int) []models.TickerReturn {
	if snap == nil || count <= 0 {
		return nil
	}

	top := make([]models.TickerReturn, len(snap.Stocks))
	copy(top, snap.Stocks)
	sort.Slice(top, func(i, j int) bool { return top[i].StockReturn > top[j].StockReturn })

	if len(top) > count {
		top = top[:count]
	}
	return top
}
