package exchange

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Converter converts amounts between currencies using a rate provider,
// falling back to the hardcoded table when the provider is unavailable.
type Converter struct {
	provider RateProvider
	base     string
	logger   *zap.Logger
}

// NewConverter creates a converter quoting rates against the base currency
func NewConverter(provider RateProvider, baseCurrency string, logger *zap.Logger) *Converter {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		provider: provider,
		base:     strings.ToUpper(baseCurrency),
		logger:   logger,
	}
}

// Convert converts amount from one currency to another. Results keep
// four decimal places so converting back recovers the original amount
// within rounding tolerance under stable rates.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return amount, nil
	}

	table, err := c.provider.Rates(ctx, c.base)
	if err != nil {
		c.logger.Warn("rates provider unavailable, using fallback table", zap.Error(err))
		table = FallbackRateTable()
	}

	fromRate, ok := table.Rates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, ErrUnknownCurrency
	}
	toRate, ok := table.Rates[to]
	if !ok {
		return decimal.Zero, ErrUnknownCurrency
	}

	// Cross rate through the base: amount / rate(from) * rate(to)
	return amount.Div(fromRate).Mul(toRate).Round(4), nil
}

// Rate returns the cross rate from one currency to another
func (c *Converter) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	return c.Convert(ctx, decimal.NewFromInt(1), from, to)
}
