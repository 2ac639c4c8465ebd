package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ExpenseCategory represents the category of a farm expense
type ExpenseCategory string

const (
	ExpenseCategorySeed       ExpenseCategory = "SEED"
	ExpenseCategoryFertilizer ExpenseCategory = "FERTILIZER"
	ExpenseCategoryPesticide  ExpenseCategory = "PESTICIDE"
	ExpenseCategoryLabor      ExpenseCategory = "LABOR"
	ExpenseCategoryFuel       ExpenseCategory = "FUEL"
	ExpenseCategoryEquipment  ExpenseCategory = "EQUIPMENT"
	ExpenseCategoryIrrigation ExpenseCategory = "IRRIGATION"
	ExpenseCategoryTransport  ExpenseCategory = "TRANSPORT"
	ExpenseCategoryOther      ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategorySeed, ExpenseCategoryFertilizer, ExpenseCategoryPesticide,
		ExpenseCategoryLabor, ExpenseCategoryFuel, ExpenseCategoryEquipment,
		ExpenseCategoryIrrigation, ExpenseCategoryTransport, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// ExpenseRecord represents a farm expense aggregate root.
// Total is always derived from quantity and unit price; callers never
// supply the total directly.
type ExpenseRecord struct {
	shared.OwnedAggregateRoot
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"` // kg, litre, bag, hour, ...
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"` // ISO 4217 code
	FieldID     *uuid.UUID      `json:"field_id"`
	IncurredAt  time.Time       `json:"incurred_at"`
	ReceiptURL  string          `json:"receipt_url"`
	Notes       string          `json:"notes"`
}

// NewExpenseRecord creates a new expense record. The total is computed
// as quantity * unit price.
func NewExpenseRecord(ownerID uuid.UUID, category ExpenseCategory, description string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal, currency string, incurredAt time.Time) (*ExpenseRecord, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Expense quantity must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}
	if incurredAt.After(time.Now().Add(24 * time.Hour)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date cannot be in the future")
	}

	record := &ExpenseRecord{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Category:           category,
		Description:        description,
		Quantity:           quantity,
		Unit:               unit,
		UnitPrice:          unitPrice,
		Total:              quantity.Mul(unitPrice),
		Currency:           currency,
		IncurredAt:         incurredAt,
	}

	record.AddDomainEvent(NewExpenseRecordedEvent(record))

	return record, nil
}

// Update corrects the record; the total is recomputed
func (e *ExpenseRecord) Update(category ExpenseCategory, description string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal, incurredAt time.Time, notes string) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Expense quantity must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}

	e.Category = category
	e.Description = description
	e.Quantity = quantity
	e.Unit = unit
	e.UnitPrice = unitPrice
	e.Total = quantity.Mul(unitPrice)
	e.IncurredAt = incurredAt
	e.Notes = notes
	e.UpdatedAt = time.Now()

	return nil
}

// AttachField links the expense to a field
func (e *ExpenseRecord) AttachField(fieldID uuid.UUID) {
	e.FieldID = &fieldID
	e.UpdatedAt = time.Now()
}

// SetReceiptURL records an uploaded receipt photo
func (e *ExpenseRecord) SetReceiptURL(url string) {
	e.ReceiptURL = url
	e.UpdatedAt = time.Now()
}
