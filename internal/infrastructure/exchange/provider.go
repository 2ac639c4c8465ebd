package exchange

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// RateTable holds exchange rates quoted against a base currency
type RateTable struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// RateProvider fetches current exchange rates for a base currency
type RateProvider interface {
	Rates(ctx context.Context, base string) (*RateTable, error)
}

// ErrUnknownCurrency is returned when a currency code has no known rate
var ErrUnknownCurrency = shared.NewDomainError("UNKNOWN_CURRENCY", "No exchange rate known for currency")

// fallbackRates are used when the rates provider and cache are both
// unavailable. Quoted against USD; refreshed manually on releases.
var fallbackRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"KES": decimal.NewFromFloat(129.0),
	"NGN": decimal.NewFromFloat(1550.0),
	"UGX": decimal.NewFromFloat(3700.0),
	"TZS": decimal.NewFromFloat(2600.0),
	"GHS": decimal.NewFromFloat(15.5),
	"ZAR": decimal.NewFromFloat(18.2),
	"EUR": decimal.NewFromFloat(0.92),
	"GBP": decimal.NewFromFloat(0.79),
	"INR": decimal.NewFromFloat(83.0),
}

// FallbackRateTable returns the hardcoded rate table quoted against USD
func FallbackRateTable() *RateTable {
	rates := make(map[string]decimal.Decimal, len(fallbackRates))
	for code, rate := range fallbackRates {
		rates[code] = rate
	}
	return &RateTable{
		Base:      "USD",
		Rates:     rates,
		FetchedAt: time.Time{},
	}
}
