package handlers

import (
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/loader"
)

const testSnapshotJSON = `{
	"metadata": {"baselineDate": "2024-06-15", "lastUpdated": "2025-06-15T06:00:00Z", "totalStocks": 2, "successfulFetches": 2, "failedFetches": 0},
	"stocks": [
		{"ticker": "AAA", "name": "Aaa Corp", "stockReturn": 10, "oneMonthReturn": 2, "threeMonthReturn": 5, "baselinePrice": 100, "currentPrice": 110},
		{"ticker": "BBB", "name": "Bbb Corp", "stockReturn": -5, "oneMonthReturn": -1, "threeMonthReturn": -2, "baselinePrice": 200, "currentPrice": 190}
	]
}`

const testAllocationsJSON = `{
	"holdings": [
		{"name": "Aaa Corp", "ticker": "AAA", "sector": "Tech", "allocation": 60},
		{"name": "Bbb Corp", "ticker": "BBB", "sector": "Other", "allocation": 40}
	],
	"sectorColors": {"Tech": "#4285f4"}
}`

func newTestLoader(t *testing.T, snapshotJSON string) *loader.Loader {
	t.Helper()
	dir := t.TempDir()

	cfg := config.NewDefaultConfig()
	cfg.Snapshot.AllocationsPath = filepath.Join(dir, "allocations.json")
	if err := os.WriteFile(cfg.Snapshot.AllocationsPath, []byte(testAllocationsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg.Snapshot.Path = filepath.Join(dir, "snapshot.json")
	if snapshotJSON == "" {
		// Leave the file missing so loads fail.
	} else if err := os.WriteFile(cfg.Snapshot.Path, []byte(snapshotJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	return loader.New(cfg, nil)
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(nil)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
	if body["service"] != "pieview" {
		t.Errorf("expected service pieview, got %q", body["service"])
	}
	if body["version"] == "" {
		t.Error("expected version in health payload")
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	h := NewHealthHandler(nil)

	req := httptest.NewRequest("POST", "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestVersionHandler(t *testing.T) {
	h := NewVersionHandler(nil)

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["version"] == "" {
		t.Error("expected non-empty version")
	}
}

func TestPerformanceHandler(t *testing.T) {
	h := NewPerformanceHandler(nil, newTestLoader(t, testSnapshotJSON))

	req := httptest.NewRequest("GET", "/api/performance", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Holdings []struct {
			Ticker string `json:"ticker"`
			Live   bool   `json:"live"`
		} `json:"holdings"`
		Metrics struct {
			OneYear struct {
				Portfolio float64 `json:"portfolio"`
				Available bool    `json:"available"`
			} `json:"oneYear"`
		} `json:"metrics"`
		TopPerformers []struct {
			Ticker string `json:"ticker"`
		} `json:"topPerformers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(body.Holdings) != 2 || !body.Holdings[0].Live {
		t.Errorf("unexpected holdings: %+v", body.Holdings)
	}
	if !body.Metrics.OneYear.Available || body.Metrics.OneYear.Portfolio != 4.0 {
		t.Errorf("unexpected one-year metric: %+v", body.Metrics.OneYear)
	}
	if len(body.TopPerformers) != 2 || body.TopPerformers[0].Ticker != "AAA" {
		t.Errorf("unexpected top performers: %+v", body.TopPerformers)
	}
}

func TestPerformanceHandler_LoadFailure(t *testing.T) {
	h := NewPerformanceHandler(nil, newTestLoader(t, ""))

	req := httptest.NewRequest("GET", "/api/performance", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "error" {
		t.Errorf("expected error status, got %+v", body)
	}
}

func TestChartHandler(t *testing.T) {
	h := NewChartHandler(nil, newTestLoader(t, testSnapshotJSON))

	req := httptest.NewRequest("GET", "/api/chart/pie", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var chart pieChart
	if err := json.Unmarshal(w.Body.Bytes(), &chart); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(chart.Labels) != 2 || len(chart.Values) != 2 || len(chart.Colors) != 2 {
		t.Fatalf("expected parallel slices of 2, got %+v", chart)
	}
	if chart.Labels[0] != "Aaa Corp" || chart.Values[0] != 60 {
		t.Errorf("unexpected first slice: %+v", chart)
	}
	if chart.Colors[0] != "#4285f4" {
		t.Errorf("expected sector colour, got %q", chart.Colors[0])
	}
	// BBB's sector has no mapping and falls back.
	if chart.Colors[1] != fallbackSliceColor {
		t.Errorf("expected fallback colour, got %q", chart.Colors[1])
	}
}

func TestPageHandler_Landing(t *testing.T) {
	h := NewPageHandler(nil, newTestLoader(t, testSnapshotJSON))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Landing(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	// html/template entity-escapes the "+" sign, so decode before matching.
	body := html.UnescapeString(w.Body.String())
	if !strings.Contains(body, "Aaa Corp") {
		t.Error("expected holding name in rendered page")
	}
	if !strings.Contains(body, "+10.00%") {
		t.Error("expected formatted return in rendered page")
	}
}

func TestPageHandler_LandingRendersErrorPageOnLoadFailure(t *testing.T) {
	h := NewPageHandler(nil, newTestLoader(t, ""))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Landing(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unable to load portfolio data") {
		t.Error("expected error message in rendered page")
	}
}

func TestStaticFileHandler_BlocksTraversal(t *testing.T) {
	h := &PageHandler{}

	req := httptest.NewRequest("GET", "/static/../../etc/passwd", nil)
	// The mux normally cleans paths; hit the handler directly to check the guard.
	req.URL.Path = "/static/../../etc/passwd"
	w := httptest.NewRecorder()
	h.StaticFileHandler(w, req)

	if w.Code == http.StatusOK {
		t.Error("expected traversal to be rejected")
	}
}
