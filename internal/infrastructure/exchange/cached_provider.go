package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedRateProvider wraps a RateProvider with a Redis cache so the
// third-party API is hit at most once per TTL per base currency.
type CachedRateProvider struct {
	inner  RateProvider
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRateProvider creates a caching wrapper around a provider
func NewCachedRateProvider(inner RateProvider, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRateProvider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRateProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (p *CachedRateProvider) cacheKey(base string) string {
	return "fx:rates:" + base
}

// Rates returns cached rates when fresh, otherwise fetches from the
// inner provider and refreshes the cache.
func (p *CachedRateProvider) Rates(ctx context.Context, base string) (*RateTable, error) {
	key := p.cacheKey(base)

	cached, err := p.client.Get(ctx, key).Bytes()
	if err == nil {
		var table RateTable
		if err := json.Unmarshal(cached, &table); err == nil && len(table.Rates) > 0 {
			return &table, nil
		}
		p.logger.Warn("discarding corrupt cached rate table", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		p.logger.Warn("rate cache read failed", zap.Error(err))
	}

	table, err := p.inner.Rates(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("exchange: fetch after cache miss: %w", err)
	}

	if payload, err := json.Marshal(table); err == nil {
		if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
			p.logger.Warn("rate cache write failed", zap.Error(err))
		}
	}

	return table, nil
}

var _ RateProvider = (*CachedRateProvider)(nil)
