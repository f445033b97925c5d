package handlers

import (
	"net/http"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/loader"
)

// fallbackSliceColor is used when a holding's sector has no colour mapping.
const fallbackSliceColor = "#9aa0a6"

// ChartHandler serves the pie chart dataset: one slice per holding, sized
// by allocation and coloured by sector.
type ChartHandler struct {
	logger *common.Logger
	loader *loader.Loader
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(logger *common.Logger, l *loader.Loader) *ChartHandler {
	return &ChartHandler{logger: logger, loader: l}
}

// pieChart is the response shape the chart renderer consumes directly.
type pieChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// ServeHTTP handles GET /api/chart/pie.
func (h *ChartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	perf, err := h.loader.Load(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to load portfolio data")
		}
		WriteError(w, http.StatusServiceUnavailable, "portfolio data unavailable")
		return
	}

	chart := pieChart{
		Labels: make([]string, 0, len(perf.Holdings)),
		Values: make([]float64, 0, len(perf.Holdings)),
		Colors: make([]string, 0, len(perf.Holdings)),
	}
	for _, holding := range perf.Holdings {
		color, ok := perf.SectorColors[holding.Sector]
		if !ok {
			color = fallbackSliceColor
		}
		chart.Labels = append(chart.Labels, holding.Name)
		chart.Values = append(chart.Values, holding.Allocation)
		chart.Colors = append(chart.Colors, color)
	}

	WriteJSON(w, http.StatusOK, chart)
}
