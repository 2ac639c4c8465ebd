package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// IncomeSource represents where farm income came from
type IncomeSource string

const (
	IncomeSourceHarvestSale IncomeSource = "HARVEST_SALE" // Direct produce sale off the farm
	IncomeSourceMarketplace IncomeSource = "MARKETPLACE"  // Order settled through the marketplace
	IncomeSourceSubsidy     IncomeSource = "SUBSIDY"      // Government or co-op subsidy
	IncomeSourceService     IncomeSource = "SERVICE"      // Equipment rental, labor for hire
	IncomeSourceOther       IncomeSource = "OTHER"
)

// IsValid checks if the source is a valid IncomeSource
func (s IncomeSource) IsValid() bool {
	switch s {
	case IncomeSourceHarvestSale, IncomeSourceMarketplace, IncomeSourceSubsidy,
		IncomeSourceService, IncomeSourceOther:
		return true
	}
	return false
}

// String returns the string representation of IncomeSource
func (s IncomeSource) String() string {
	return string(s)
}

// IncomeRecord represents a farm income aggregate root.
// Marketplace settlements create these automatically when an order is
// delivered; the rest are entered by hand.
type IncomeRecord struct {
	shared.OwnedAggregateRoot
	Source      IncomeSource    `json:"source"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	FieldID     *uuid.UUID      `json:"field_id"`
	OrderID     *uuid.UUID      `json:"order_id"` // Set for marketplace settlements
	ReceivedAt  time.Time       `json:"received_at"`
	Notes       string          `json:"notes"`
}

// NewIncomeRecord creates a new income record
func NewIncomeRecord(ownerID uuid.UUID, source IncomeSource, description string, amount decimal.Decimal, currency string, receivedAt time.Time) (*IncomeRecord, error) {
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Income source is not valid")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Income description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Income amount must be positive")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}
	if receivedAt.After(time.Now().Add(24 * time.Hour)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Income date cannot be in the future")
	}

	record := &IncomeRecord{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Source:             source,
		Description:        description,
		Amount:             amount,
		Currency:           currency,
		ReceivedAt:         receivedAt,
	}

	record.AddDomainEvent(NewIncomeRecordedEvent(record))

	return record, nil
}

// Update corrects the record
func (i *IncomeRecord) Update(source IncomeSource, description string, amount decimal.Decimal, receivedAt time.Time, notes string) error {
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Income source is not valid")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Income description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Income amount must be positive")
	}
	if i.OrderID != nil {
		return shared.NewDomainError("INVALID_STATE", "Marketplace settlement records cannot be edited")
	}

	i.Source = source
	i.Description = description
	i.Amount = amount
	i.ReceivedAt = receivedAt
	i.Notes = notes
	i.UpdatedAt = time.Now()

	return nil
}

// AttachField links the income to a field
func (i *IncomeRecord) AttachField(fieldID uuid.UUID) {
	i.FieldID = &fieldID
	i.UpdatedAt = time.Now()
}

// AttachOrder links the income to the marketplace order that produced it
func (i *IncomeRecord) AttachOrder(orderID uuid.UUID) {
	i.OrderID = &orderID
	i.UpdatedAt = time.Now()
}
