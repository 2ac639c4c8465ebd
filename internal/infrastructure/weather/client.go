package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agrihub/backend/internal/infrastructure/config"
)

// Condition summarizes the forecast for a location over the next day
type Condition string

const (
	ConditionClear Condition = "CLEAR"
	ConditionRain  Condition = "RAIN"
	ConditionStorm Condition = "STORM"
	ConditionHeat  Condition = "HEAT"
)

// Forecast is the slice of the provider response the reminder job needs
type Forecast struct {
	Location      string    `json:"location"`
	Condition     Condition `json:"condition"`
	RainChance    float64   `json:"rain_chance"`  // 0..1
	MaxTempC      float64   `json:"max_temp_c"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// RainLikely reports whether rain is probable enough to postpone
// irrigation work
func (f *Forecast) RainLikely() bool {
	return f.Condition == ConditionRain || f.Condition == ConditionStorm || f.RainChance >= 0.6
}

// Provider fetches forecasts for a location
type Provider interface {
	Forecast(ctx context.Context, location string) (*Forecast, error)
}

// Client fetches forecasts from an external weather API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a weather client for the configured provider
func NewClient(cfg config.WeatherConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Forecast fetches the next-day forecast for a location
func (c *Client) Forecast(ctx context.Context, location string) (*Forecast, error) {
	endpoint := fmt.Sprintf("%s/v1/forecast?location=%s", c.baseURL, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("weather: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: provider returned status %d", resp.StatusCode)
	}

	var forecast Forecast
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("weather: failed to parse response: %w", err)
	}

	forecast.Location = location
	forecast.FetchedAt = time.Now()

	return &forecast, nil
}

var _ Provider = (*Client)(nil)
