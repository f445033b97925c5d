package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alphapie/pieview/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.MarketDataConfig{
		BaseURL: baseURL,
		APIKey:  "test-token",
		Timeout: "5s",
	})
}

func TestHistory_ParsesAscendingBars(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2025-01-02","open":99,"high":101,"low":98,"close":100,"adjusted_close":100,"volume":1000},
			{"date":"2025-01-03","open":100,"high":103,"low":100,"close":102,"adjusted_close":102,"volume":1100}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	bars, err := c.History(context.Background(), "NVDA", "2024-01-02", "2025-01-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/eod/NVDA.US" {
		t.Errorf("expected path /eod/NVDA.US, got %s", gotPath)
	}
	if !strings.Contains(gotQuery, "from=2024-01-02") || !strings.Contains(gotQuery, "api_token=test-token") {
		t.Errorf("unexpected query: %s", gotQuery)
	}

	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Date != "2025-01-02" || bars[0].Close != 100 {
		t.Errorf("unexpected first bar: %+v", bars[0])
	}
	if bars[1].Date != "2025-01-03" || bars[1].Close != 102 {
		t.Errorf("unexpected last bar: %+v", bars[1])
	}
}

func TestHistory_SortsDescendingInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date":"2025-01-03","close":102},
			{"date":"2025-01-02","close":100}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	bars, err := c.History(context.Background(), "AAPL", "2024-01-02", "2025-01-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bars[0].Date != "2025-01-02" {
		t.Errorf("expected bars sorted ascending, first date was %s", bars[0].Date)
	}
}

func TestHistory_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown symbol", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.History(context.Background(), "NOPE", "2024-01-02", "2025-01-03")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status code in error, got: %v", err)
	}
}

func TestHistory_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.History(context.Background(), "AAPL", "2024-01-02", "2025-01-03")
	if err == nil {
		t.Fatal("expected parse error for malformed body")
	}
}
