// Package models defines data structures for Pieview.
package models

// TickerReturn holds one ticker's computed performance for a snapshot run.
// A ticker either has complete results or appears in the snapshot's error
// list — never both. Entries are created fresh on every builder run and are
// never mutated afterwards.
type TickerReturn struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	BaselinePrice    float64 `json:"baselinePrice"`
	CurrentPrice     float64 `json:"currentPrice"`
	StockReturn      float64 `json:"stockReturn"` // total return since baseline, percent
	OneMonthReturn   float64 `json:"oneMonthReturn"`
	ThreeMonthReturn float64 `json:"threeMonthReturn"`
	BaselineDate     string  `json:"baselineDate"` // ISO date, rolling 12 months before the run
	LastUpdated      string  `json:"lastUpdated"`  // ISO date of the run
}

// ReturnFor returns the percentage return for the requested timeframe.
func (t TickerReturn) ReturnFor(tf Timeframe) float64 {
	switch tf {
	case TimeframeOneMonth:
		return t.OneMonthReturn
	case TimeframeThreeMonth:
		return t.ThreeMonthReturn
	default:
		return t.StockReturn
	}
}

// FailedTicker records a ticker the builder could not produce results for.
type FailedTicker struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Error  string `json:"error"`
}

// SnapshotMetadata describes one builder run.
// Invariant: SuccessfulFetches + FailedFetches == TotalStocks.
type SnapshotMetadata struct {
	BaselineDate      string `json:"baselineDate"`
	LastUpdated       string `json:"lastUpdated"` // RFC3339 generation timestamp
	TotalStocks       int    `json:"totalStocks"`
	SuccessfulFetches int    `json:"successfulFetches"`
	FailedFetches     int    `json:"failedFetches"`
}

// Snapshot is the full output of one builder run, written as a static JSON
// document and read by the portal. Stocks are sorted descending by
// StockReturn — a display contract (highest performer first), not insertion
// order.
type Snapshot struct {
	Metadata SnapshotMetadata `json:"metadata"`
	Stocks   []TickerReturn   `json:"stocks"`
	Errors   []FailedTicker   `json:"errors,omitempty"`
}

// TickerMap returns the successful entries keyed by ticker symbol.
func (s *Snapshot) TickerMap() map[string]TickerReturn {
	m := make(map[string]TickerReturn, len(s.Stocks))
	for _, stock := range s.Stocks {
		m[stock.Ticker] = stock
	}
	return m
}

// Timeframe identifies one of the three reporting windows.
type Timeframe string

const (
	TimeframeOneMonth   Timeframe = "1M"
	TimeframeThreeMonth Timeframe = "3M"
	TimeframeOneYear    Timeframe = "12M"
)
