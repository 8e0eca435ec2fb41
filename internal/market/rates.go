// Package market provides thin read-only clients for the third-party
// exchange-rate and crypto listing services the dashboard proxies. The
// clients do no transformation beyond decoding; handlers reshape the
// response envelope.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Rates is the latest exchange-rate table relative to a base currency.
type Rates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// RatesClient fetches exchange rates from the Frankfurter API.
type RatesClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewRatesClient creates a RatesClient against the given base URL
// (e.g. "https://api.frankfurter.dev/v1").
func NewRatesClient(httpClient *http.Client, baseURL string) *RatesClient {
	return &RatesClient{httpClient: httpClient, baseURL: baseURL}
}

// Latest fetches the latest rate table.
func (c *RatesClient) Latest(ctx context.Context) (*Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest", nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates request: unexpected status %d", resp.StatusCode)
	}

	var rates Rates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("decoding rates response: %w", err)
	}

	return &rates, nil
}
