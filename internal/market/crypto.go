package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// CryptoClient fetches top-asset listings from the crypto data service.
// The upstream payload is passed through untouched.
type CryptoClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewCryptoClient creates a CryptoClient against the given base URL
// (e.g. "https://api.freecryptoapi.com/v1").
func NewCryptoClient(httpClient *http.Client, baseURL, apiKey string) *CryptoClient {
	return &CryptoClient{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// Top fetches the top n assets by market cap and returns the raw upstream
// document.
func (c *CryptoClient) Top(ctx context.Context, n int) (json.RawMessage, error) {
	url := c.baseURL + "/getTop?top=" + strconv.Itoa(n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building crypto request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crypto http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crypto request: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading crypto response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("crypto response is not valid JSON")
	}

	return json.RawMessage(body), nil
}
