package models

// Holding is one static allocation record from the allocations reference
// file. It is the source of truth for target weights; return fields on it
// are stale placeholders that a live snapshot overlays at merge time.
// Edited out-of-band, never computed.
type Holding struct {
	Name        string  `json:"name"`
	Ticker      string  `json:"ticker"`
	Sector      string  `json:"sector"`
	Allocation  float64 `json:"allocation"` // target allocation, percent
	Category    string  `json:"aiCategory,omitempty"`
	Description string  `json:"description,omitempty"`
	TotalReturn float64 `json:"totalReturn,omitempty"` // stale fallback value
}

// AllocationSet is the full allocations reference document: the holdings
// plus the sector colour lookup the pie chart uses.
type AllocationSet struct {
	Holdings     []Holding         `json:"holdings"`
	SectorColors map[string]string `json:"sectorColors"`
}
