// Package returns converts a ticker's daily close history into percentage
// returns over the three reporting windows.
package returns

import (
	"errors"
	"math"

	"github.com/alphapie/pieview/internal/models"
)

var (
	// ErrNoData is returned when the price sequence is empty.
	ErrNoData = errors.New("no data available")

	// ErrMissingPrice is returned when any close the calculation divides
	// by (baseline, current, or a window reference) is zero. Absent closes
	// decode to zero, so one check covers both.
	ErrMissingPrice = errors.New("missing price data")
)

// Reference offsets into the ascending daily sequence, counting trading-day
// entries rather than calendar days. The policy deliberately approximates
// "30/90 trading days ago" instead of calendar months.
const (
	oneMonthOffset   = 30
	threeMonthOffset = 90
)

// Performance holds the computed figures for one ticker.
type Performance struct {
	BaselinePrice    float64
	CurrentPrice     float64
	TotalReturn      float64
	OneMonthReturn   float64
	ThreeMonthReturn float64
}

// Calculate derives baseline/current prices and the 1-month, 3-month, and
// total percentage returns from a chronologically ascending close sequence.
// Pure function: same input always yields the same figures.
//
// When the sequence has fewer than 30 (or 90) entries the reference index
// collapses to 0 and the window return degenerates to the total return.
// That is accepted, documented behaviour, not a bug.
func Calculate(bars []models.EODBar) (Performance, error) {
	if len(bars) == 0 {
		return Performance{}, ErrNoData
	}

	baseline := bars[0].Close
	current := bars[len(bars)-1].Close
	if baseline == 0 || current == 0 {
		return Performance{}, ErrMissingPrice
	}

	oneMonthIdx := max(0, len(bars)-oneMonthOffset)
	threeMonthIdx := max(0, len(bars)-threeMonthOffset)

	// The window references are divisors too: a zero close there would
	// yield an infinite return, which is unencodable downstream.
	if bars[oneMonthIdx].Close == 0 || bars[threeMonthIdx].Close == 0 {
		return Performance{}, ErrMissingPrice
	}

	return Performance{
		BaselinePrice:    round2(baseline),
		CurrentPrice:     round2(current),
		TotalReturn:      pctChange(baseline, current),
		OneMonthReturn:   pctChange(bars[oneMonthIdx].Close, current),
		ThreeMonthReturn: pctChange(bars[threeMonthIdx].Close, current),
	}, nil
}

// pctChange returns the percentage change from ref to current, rounded to
// two decimal places.
func pctChange(ref, current float64) float64 {
	return round2((current - ref) / ref * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
