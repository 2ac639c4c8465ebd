package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/infrastructure/config"
)

// HTTPRateProvider fetches rates from a third-party rates API
type HTTPRateProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRateProvider creates a provider for the configured rates endpoint
func NewHTTPRateProvider(cfg config.ExchangeConfig) *HTTPRateProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPRateProvider{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Rates fetches the current rate table for the base currency
func (p *HTTPRateProvider) Rates(ctx context.Context, base string) (*RateTable, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s", p.baseURL, url.QueryEscape(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("exchange: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange: rates request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("exchange: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange: rates API returned status %d", resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("exchange: failed to parse response: %w", err)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("exchange: rates API returned no rates")
	}

	table := &RateTable{
		Base:      parsed.Base,
		Rates:     parsed.Rates,
		FetchedAt: time.Now(),
	}
	if table.Base == "" {
		table.Base = base
	}
	// The base currency always rates 1 against itself
	table.Rates[table.Base] = decimal.NewFromInt(1)

	return table, nil
}

var _ RateProvider = (*HTTPRateProvider)(nil)
