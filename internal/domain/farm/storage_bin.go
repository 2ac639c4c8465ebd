package farm

import (
	"time"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StorageBin represents a produce storage container aggregate root.
// Quantities are tracked in kilograms; deposits come from harvest records
// and withdrawals from marketplace sales or manual adjustments.
type StorageBin struct {
	shared.OwnedAggregateRoot
	Name        string          `json:"name"`
	ProduceType string          `json:"produce_type"`
	CapacityKg  decimal.Decimal `json:"capacity_kg"`
	CurrentKg   decimal.Decimal `json:"current_kg"`
	Location    string          `json:"location"`
}

// NewStorageBin creates a new empty storage bin
func NewStorageBin(ownerID uuid.UUID, name, produceType string, capacityKg decimal.Decimal) (*StorageBin, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Bin name cannot be empty")
	}
	if produceType == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCE", "Produce type cannot be empty")
	}
	if capacityKg.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Bin capacity must be positive")
	}

	return &StorageBin{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		ProduceType:        produceType,
		CapacityKg:         capacityKg,
		CurrentKg:          decimal.Zero,
	}, nil
}

// Update updates the bin details. Capacity cannot shrink below the
// currently stored quantity.
func (b *StorageBin) Update(name, produceType string, capacityKg decimal.Decimal, location string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Bin name cannot be empty")
	}
	if capacityKg.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_CAPACITY", "Bin capacity must be positive")
	}
	if capacityKg.LessThan(b.CurrentKg) {
		return shared.NewDomainError("INVALID_CAPACITY", "Bin capacity cannot be below the stored quantity")
	}

	b.Name = name
	if produceType != "" {
		b.ProduceType = produceType
	}
	b.CapacityKg = capacityKg
	b.Location = location
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Deposit adds produce to the bin, bounded by capacity
func (b *StorageBin) Deposit(quantityKg decimal.Decimal) error {
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deposit quantity must be positive")
	}
	if b.CurrentKg.Add(quantityKg).GreaterThan(b.CapacityKg) {
		return shared.ErrBinCapacityExceeded
	}

	b.CurrentKg = b.CurrentKg.Add(quantityKg)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Withdraw removes produce from the bin
func (b *StorageBin) Withdraw(quantityKg decimal.Decimal) error {
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Withdrawal quantity must be positive")
	}
	if quantityKg.GreaterThan(b.CurrentKg) {
		return shared.NewDomainError("INSUFFICIENT_QUANTITY", "Cannot withdraw more than the stored quantity")
	}

	b.CurrentKg = b.CurrentKg.Sub(quantityKg)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// FillRatio returns the stored fraction of capacity (0..1)
func (b *StorageBin) FillRatio() decimal.Decimal {
	if b.CapacityKg.IsZero() {
		return decimal.Zero
	}
	return b.CurrentKg.Div(b.CapacityKg)
}
