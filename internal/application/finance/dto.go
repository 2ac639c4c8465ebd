package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/finance"
)

// RecordExpenseRequest contains input for logging a farm expense.
// The total is never accepted from the client; it is derived from
// quantity and unit price.
type RecordExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Currency    string          `json:"currency" binding:"required"`
	FieldID     *uuid.UUID      `json:"field_id"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
	ReceiptURL  string          `json:"receipt_url"`
	Notes       string          `json:"notes"`
}

// UpdateExpenseRequest corrects an existing expense record
type UpdateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
	Notes       string          `json:"notes"`
}

// ExpenseListFilter contains query options for listing expenses
type ExpenseListFilter struct {
	Category string     `form:"category"`
	FieldID  *uuid.UUID `form:"field_id"`
	FromDate *time.Time `form:"from" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,max=100"`
}

// ExpenseResponse is the client shape of an expense record
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	FieldID     *uuid.UUID      `json:"field_id,omitempty"`
	IncurredAt  time.Time       `json:"incurred_at"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToExpenseResponse maps an expense record to its client shape
func ToExpenseResponse(e *finance.ExpenseRecord) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Category:    string(e.Category),
		Description: e.Description,
		Quantity:    e.Quantity,
		Unit:        e.Unit,
		UnitPrice:   e.UnitPrice,
		Total:       e.Total,
		Currency:    e.Currency,
		FieldID:     e.FieldID,
		IncurredAt:  e.IncurredAt,
		ReceiptURL:  e.ReceiptURL,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}

// RecordIncomeRequest contains input for logging farm income
type RecordIncomeRequest struct {
	Source      string          `json:"source" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required"`
	FieldID     *uuid.UUID      `json:"field_id"`
	ReceivedAt  time.Time       `json:"received_at" binding:"required"`
	Notes       string          `json:"notes"`
}

// UpdateIncomeRequest corrects an existing income record
type UpdateIncomeRequest struct {
	Source      string          `json:"source" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ReceivedAt  time.Time       `json:"received_at" binding:"required"`
	Notes       string          `json:"notes"`
}

// IncomeListFilter contains query options for listing income records
type IncomeListFilter struct {
	Source   string     `form:"source"`
	FieldID  *uuid.UUID `form:"field_id"`
	FromDate *time.Time `form:"from" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,max=100"`
}

// IncomeResponse is the client shape of an income record
type IncomeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	FieldID     *uuid.UUID      `json:"field_id,omitempty"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	ReceivedAt  time.Time       `json:"received_at"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToIncomeResponse maps an income record to its client shape
func ToIncomeResponse(i *finance.IncomeRecord) *IncomeResponse {
	return &IncomeResponse{
		ID:          i.ID,
		Source:      string(i.Source),
		Description: i.Description,
		Amount:      i.Amount,
		Currency:    i.Currency,
		FieldID:     i.FieldID,
		OrderID:     i.OrderID,
		ReceivedAt:  i.ReceivedAt,
		Notes:       i.Notes,
		CreatedAt:   i.CreatedAt,
	}
}

// FinanceSummary aggregates income against expenses for a time range.
// All amounts are expressed in the requested currency.
type FinanceSummary struct {
	From               time.Time                  `json:"from"`
	To                 time.Time                  `json:"to"`
	Currency           string                     `json:"currency"`
	TotalExpenses      decimal.Decimal            `json:"total_expenses"`
	TotalIncome        decimal.Decimal            `json:"total_income"`
	Net                decimal.Decimal            `json:"net"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category"`
	IncomeBySource     map[string]decimal.Decimal `json:"income_by_source"`
}
