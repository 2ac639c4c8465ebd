package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
)

// CurrencyConverter converts amounts between currencies.
// Implemented by exchange.Converter.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// SummaryService aggregates expenses against income. Records are stored
// in the farmer's bookkeeping currency; summaries can be requested in
// any supported currency.
type SummaryService struct {
	expenseRepo  finance.ExpenseRepository
	incomeRepo   finance.IncomeRepository
	converter    CurrencyConverter
	baseCurrency string
	logger       *zap.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	expenseRepo finance.ExpenseRepository,
	incomeRepo finance.IncomeRepository,
	converter CurrencyConverter,
	baseCurrency string,
	logger *zap.Logger,
) *SummaryService {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	return &SummaryService{
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
		converter:    converter,
		baseCurrency: strings.ToUpper(baseCurrency),
		logger:       logger,
	}
}

// Summarize builds a finance summary for the given range, converted to
// the requested currency when it differs from the bookkeeping currency.
func (s *SummaryService) Summarize(ctx context.Context, ownerID uuid.UUID, from, to time.Time, currency string) (*FinanceSummary, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Summary range end must be after start")
	}
	currency = strings.ToUpper(currency)
	if currency == "" {
		currency = s.baseCurrency
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	byCategory, err := s.expenseRepo.SumByCategory(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	bySource, err := s.incomeRepo.SumBySource(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &FinanceSummary{
		From:               from,
		To:                 to,
		Currency:           currency,
		ExpensesByCategory: make(map[string]decimal.Decimal, len(byCategory)),
		IncomeBySource:     make(map[string]decimal.Decimal, len(bySource)),
	}

	for category, total := range byCategory {
		converted, err := s.toCurrency(ctx, total, currency)
		if err != nil {
			return nil, err
		}
		summary.ExpensesByCategory[category.String()] = converted
		summary.TotalExpenses = summary.TotalExpenses.Add(converted)
	}
	for source, amount := range bySource {
		converted, err := s.toCurrency(ctx, amount, currency)
		if err != nil {
			return nil, err
		}
		summary.IncomeBySource[source.String()] = converted
		summary.TotalIncome = summary.TotalIncome.Add(converted)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)

	return summary, nil
}

func (s *SummaryService) toCurrency(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	if currency == s.baseCurrency || s.converter == nil {
		return amount, nil
	}
	return s.converter.Convert(ctx, amount, s.baseCurrency, currency)
}
