package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/voice"
	"github.com/agrihub/backend/internal/infrastructure/config"
)

// IntentClient parses voice transcripts through a remote intent service,
// retrying transient failures and falling back to the keyword parser
// when the service stays unavailable.
type IntentClient struct {
	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	fallback   voice.Parser
	logger     *zap.Logger
}

// NewIntentClient creates a client for the configured intent endpoint.
// An empty BaseURL disables the remote call entirely; every parse then
// goes straight to the fallback parser.
func NewIntentClient(cfg config.VoiceConfig, fallback voice.Parser, logger *zap.Logger) *IntentClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if fallback == nil {
		fallback = voice.NewKeywordParser()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		fallback: fallback,
		logger:   logger,
	}
}

type intentRequest struct {
	Transcript string `json:"transcript"`
}

// ParseTranscript resolves a transcript to a structured intent. The
// remote service is tried first; after it fails maxRetries+1 times the
// keyword parser takes over so the command never dies on a network blip.
func (c *IntentClient) ParseTranscript(ctx context.Context, transcript string) (*voice.Intent, error) {
	if c.baseURL == "" {
		return c.parseFallback(transcript)
	}

	var intent *voice.Intent
	err := retryWithBackoff(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		parsed, err := c.callRemote(ctx, transcript)
		if err != nil {
			return err
		}
		intent = parsed
		return nil
	})
	if err != nil {
		c.logger.Warn("remote intent service unavailable, using keyword parser",
			zap.Error(err),
			zap.Int("attempts", c.maxRetries+1),
		)
		return c.parseFallback(transcript)
	}

	return intent, nil
}

func (c *IntentClient) parseFallback(transcript string) (*voice.Intent, error) {
	intent, err := c.fallback.Parse(transcript)
	if err != nil {
		return nil, err
	}
	intent.Source = "fallback"
	return intent, nil
}

func (c *IntentClient) callRemote(ctx context.Context, transcript string) (*voice.Intent, error) {
	payload, err := json.Marshal(intentRequest{Transcript: transcript})
	if err != nil {
		return nil, fmt.Errorf("ai: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/intent", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ai: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai: intent request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("ai: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai: intent service returned status %d", resp.StatusCode)
	}

	var intent voice.Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("ai: failed to parse response: %w", err)
	}
	if !intent.Type.IsValid() {
		return nil, fmt.Errorf("ai: intent service returned unknown type %q", intent.Type)
	}

	intent.Transcript = transcript
	intent.Source = "remote"
	if intent.Confidence == 0 {
		intent.Confidence = 1.0
	}

	return &intent, nil
}
