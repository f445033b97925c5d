package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alphapie/pieview/internal/app"
	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/config"
)

const testSnapshotJSON = `{
	"metadata": {"baselineDate": "2024-06-15", "lastUpdated": "2025-06-15T06:00:00Z", "totalStocks": 1, "successfulFetches": 1, "failedFetches": 0},
	"stocks": [{"ticker": "AAA", "name": "Aaa Corp", "stockReturn": 10}]
}`

const testAllocationsJSON = `{
	"holdings": [{"name": "Aaa Corp", "ticker": "AAA", "sector": "Tech", "allocation": 100}],
	"sectorColors": {"Tech": "#4285f4"}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	cfg := config.NewDefaultConfig()
	cfg.Snapshot.Path = filepath.Join(dir, "snapshot.json")
	cfg.Snapshot.AllocationsPath = filepath.Join(dir, "allocations.json")
	if err := os.WriteFile(cfg.Snapshot.Path, []byte(testSnapshotJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Snapshot.AllocationsPath, []byte(testAllocationsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return New(application)
}

func TestRoutes_LandingPage(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Aaa Corp") {
		t.Error("expected holding name in landing page")
	}
}

func TestRoutes_UnknownPathIs404(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRoutes_APIEndpoints(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/health", http.StatusOK},
		{"/api/version", http.StatusOK},
		{"/api/performance", http.StatusOK},
		{"/api/chart/pie", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
				t.Errorf("expected JSON content type, got %q", ct)
			}
		})
	}
}

func TestRoutes_UnknownAPIRouteReturnsJSON404(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/nope", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body: %v", err)
	}
	if body["error"] != "Not Found" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestMiddleware_CorrelationID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected a generated correlation ID header")
	}

	req = httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-Request-ID", "given-id")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Correlation-ID"); got != "given-id" {
		t.Errorf("expected supplied ID echoed, got %q", got)
	}
}

func TestMiddleware_SecurityHeaders(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for name, want := range headers {
		if got := w.Header().Get(name); got != want {
			t.Errorf("expected %s: %s, got %q", name, want, got)
		}
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected a content security policy")
	}
}

func TestMiddleware_CORSPreflights(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/performance", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS allow-origin header")
	}
}
