package models

// MergedHolding is one allocation record with live snapshot returns
// overlaid. Live reports whether a matching snapshot entry was found; when
// false the embedded Holding passes through with whatever stale return it
// already carried.
type MergedHolding struct {
	Holding
	OneMonthReturn   float64 `json:"oneMonthReturn,omitempty"`
	ThreeMonthReturn float64 `json:"threeMonthReturn,omitempty"`
	BaselinePrice    float64 `json:"baselinePrice,omitempty"`
	CurrentPrice     float64 `json:"currentPrice,omitempty"`
	LastUpdated      string  `json:"lastUpdated,omitempty"`
	Live             bool    `json:"live"`
}

// MergedView is the runtime join of a Snapshot and an AllocationSet,
// keyed by ticker. Every Holding appears exactly once; tickers present only
// in the snapshot never appear. Recomputed fresh on every load, never
// persisted.
type MergedView struct {
	Holdings     []MergedHolding   `json:"holdings"`
	SectorColors map[string]string `json:"sectorColors"`
	LastUpdated  string            `json:"lastUpdated"`
	DataSource   string            `json:"dataSource"`
}

// TimeframeMetric is the portfolio-weighted return for one timeframe.
// Available is false when the aggregation had no usable inputs (the
// "unavailable" sentinel — not an error).
type TimeframeMetric struct {
	Portfolio float64 `json:"portfolio"`
	Available bool    `json:"available"`
}

// PerformanceMetrics holds the weighted portfolio return per timeframe.
// Each figure is derived independently — the three windows read different
// return fields, so no intermediate sums are shared.
type PerformanceMetrics struct {
	OneMonth   TimeframeMetric `json:"oneMonth"`
	ThreeMonth TimeframeMetric `json:"threeMonth"`
	OneYear    TimeframeMetric `json:"oneYear"`
}

// PortfolioPerformance is the single view-model the portal publishes: the
// merged holdings plus the per-timeframe weighted metrics and the top
// performers. Built once per load and treated as read-only by render code.
type PortfolioPerformance struct {
	MergedView
	Metrics       PerformanceMetrics `json:"metrics"`
	TopPerformers []TickerReturn     `json:"topPerformers"`
}
