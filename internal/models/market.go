package models

// EODBar represents a single trading day's price data from the market-data
// provider. Dates arrive as ISO strings ("2006-01-02") and stay that way —
// the return calculator works on sequence position, not calendar arithmetic.
type EODBar struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjusted_close"`
	Volume   int64   `json:"volume"`
}

// StockRef identifies one ticker in the configured universe.
type StockRef struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}
