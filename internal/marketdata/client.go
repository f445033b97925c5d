// Package marketdata implements the client for the upstream EOD price
// provider. The provider is treated as an opaque external dependency: one
// request per ticker per builder run, no retry or backoff.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-resty/resty/v2"

	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/models"
)

// HistorySource provides daily close history for one ticker over a date
// range. Satisfied by Client; the builder accepts the interface so tests
// can substitute a fake.
type HistorySource interface {
	History(ctx context.Context, ticker, from, to string) ([]models.EODBar, error)
}

// Client fetches daily EOD bars from an EODHD-style HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

// NewClient creates a market-data client from config.
func NewClient(cfg *config.MarketDataConfig) *Client {
	client := resty.New()
	client.SetTimeout(cfg.GetTimeout())

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

// History fetches the daily close series for ticker between from and to
// (inclusive ISO dates) and returns it ascending by date. US-listed symbols
// are assumed; the exchange suffix is appended here so callers deal in bare
// tickers.
func (c *Client) History(ctx context.Context, ticker, from, to string) ([]models.EODBar, error) {
	url := fmt.Sprintf("%s/eod/%s.US", c.baseURL, ticker)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"from":      from,
			"to":        to,
			"period":    "d",
			"fmt":       "json",
			"api_token": c.apiKey,
		}).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", ticker, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("history request for %s returned %d: %s", ticker, resp.StatusCode(), resp.String())
	}

	var bars []models.EODBar
	if err := json.Unmarshal(resp.Body(), &bars); err != nil {
		return nil, fmt.Errorf("failed to parse history for %s: %w", ticker, err)
	}

	// The API returns ascending data; sort anyway so the calculator's
	// first/last contract never depends on upstream ordering.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })

	return bars, nil
}
