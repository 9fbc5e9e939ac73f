// Package metadata resolves token display metadata from DexScreener.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.dexscreener.com"

// TokenMetadata is the display information for a mint.
type TokenMetadata struct {
	Mint      string
	Name      string
	Symbol    string
	PriceUSD  string
	MarketCap float64
}

// Client fetches token metadata with an in-process cache. Metadata is
// decorative; lookups that fail return an error the caller is expected to
// shrug at.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]*TokenMetadata
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the DexScreener API base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a DexScreener metadata client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      make(map[string]*TokenMetadata),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type pairsResponse struct {
	Pairs []struct {
		BaseToken struct {
			Address string `json:"address"`
			Name    string `json:"name"`
			Symbol  string `json:"symbol"`
		} `json:"baseToken"`
		PriceUSD  string  `json:"priceUsd"`
		MarketCap float64 `json:"marketCap"`
	} `json:"pairs"`
}

// TokenMetadata returns metadata for mint, consulting the cache first.
func (c *Client) TokenMetadata(ctx context.Context, mint string) (*TokenMetadata, error) {
	c.mu.Lock()
	if md, ok := c.cache[mint]; ok {
		c.mu.Unlock()
		return md, nil
	}
	c.mu.Unlock()

	url := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, mint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch token metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed pairsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Pairs) == 0 {
		return nil, fmt.Errorf("no pairs for mint %s", mint)
	}

	// The first pair is DexScreener's most liquid one.
	p := parsed.Pairs[0]
	md := &TokenMetadata{
		Mint:      mint,
		Name:      p.BaseToken.Name,
		Symbol:    p.BaseToken.Symbol,
		PriceUSD:  p.PriceUSD,
		MarketCap: p.MarketCap,
	}

	c.mu.Lock()
	c.cache[mint] = md
	c.mu.Unlock()

	return md, nil
}
