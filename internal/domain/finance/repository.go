package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	Category *ExpenseCategory
	FieldID  *uuid.UUID
	FromDate *time.Time
	ToDate   *time.Time
	MinTotal *decimal.Decimal
	MaxTotal *decimal.Decimal
}

// ExpenseRepository defines the interface for expense record persistence
type ExpenseRepository interface {
	// FindByID finds an expense record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)

	// FindByIDForOwner finds an expense record by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ExpenseRecord, error)

	// FindAllForOwner finds all expense records for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter ExpenseFilter) ([]ExpenseRecord, error)

	// SumByCategory sums expense totals per category for an owner within
	// the given time range.
	SumByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[ExpenseCategory]decimal.Decimal, error)

	// SumForOwner sums all expense totals for an owner within a range
	SumForOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// Save creates or updates an expense record
	Save(ctx context.Context, record *ExpenseRecord) error

	// DeleteForOwner soft deletes an expense record for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts expense records for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter ExpenseFilter) (int64, error)
}

// IncomeFilter defines filtering options for income queries
type IncomeFilter struct {
	shared.Filter
	Source   *IncomeSource
	FieldID  *uuid.UUID
	FromDate *time.Time
	ToDate   *time.Time
}

// IncomeRepository defines the interface for income record persistence
type IncomeRepository interface {
	// FindByID finds an income record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*IncomeRecord, error)

	// FindByIDForOwner finds an income record by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*IncomeRecord, error)

	// FindByOrder finds the settlement record created for a marketplace order
	FindByOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*IncomeRecord, error)

	// FindAllForOwner finds all income records for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter IncomeFilter) ([]IncomeRecord, error)

	// SumBySource sums income amounts per source for an owner within a range
	SumBySource(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[IncomeSource]decimal.Decimal, error)

	// SumForOwner sums all income amounts for an owner within a range
	SumForOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// Save creates or updates an income record
	Save(ctx context.Context, record *IncomeRecord) error

	// DeleteForOwner soft deletes an income record for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts income records for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter IncomeFilter) (int64, error)
}
