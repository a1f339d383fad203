package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the rate service used when none is configured.
const DefaultBaseURL = "https://api.exchangerate-api.com/v4/latest"

// Rates is a table of exchange rates relative to a base currency.
type Rates struct {
	Base    string             `json:"base"`
	Date    string             `json:"date,omitempty"`
	Rates   map[string]float64 `json:"rates"`
	Fetched time.Time          `json:"-"`
}

// Rate returns the rate for a currency code.
func (r *Rates) Rate(code string) (float64, error) {
	v, ok := r.Rates[code]
	if !ok {
		return 0, &NotFoundError{Base: r.Base, Code: code}
	}
	return v, nil
}

// RateSource provides exchange rates.
type RateSource interface {
	Rates(ctx context.Context, base string) (*Rates, error)
}

// Client fetches rates over HTTP from a service that answers
// GET {base URL}/{BASE} with a JSON rate table.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the rate service at baseURL. Each request
// is limited to timeout; zero means no limit beyond the context's.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Rates fetches the rate table for base.
func (c *Client) Rates(ctx context.Context, base string) (*Rates, error) {
	url := c.baseURL + "/" + base
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rate service returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var r Rates
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode rates for %s: %w", base, err)
	}
	if r.Base == "" {
		r.Base = base
	}
	r.Fetched = time.Now()
	return &r, nil
}
