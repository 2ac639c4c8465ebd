package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseRecord(t *testing.T) {
	ownerID := uuid.New()

	t.Run("total is quantity times unit price", func(t *testing.T) {
		record, err := NewExpenseRecord(
			ownerID,
			ExpenseCategoryFertilizer,
			"NPK 17-17-17",
			decimal.NewFromInt(5),
			"bag",
			decimal.NewFromInt(3500),
			"KES",
			time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, ownerID, record.OwnerID)
		assert.True(t, record.Total.Equal(decimal.NewFromInt(17500)))
		assert.Equal(t, "KES", record.Currency)
		require.Len(t, record.GetDomainEvents(), 1)
		assert.Equal(t, "ExpenseRecorded", record.GetDomainEvents()[0].EventType())
	})

	t.Run("fractional quantity", func(t *testing.T) {
		record, err := NewExpenseRecord(
			ownerID,
			ExpenseCategoryFuel,
			"Diesel for the pump",
			decimal.NewFromFloat(12.5),
			"litre",
			decimal.NewFromFloat(1.80),
			"USD",
			time.Now(),
		)

		require.NoError(t, err)
		assert.True(t, record.Total.Equal(decimal.NewFromFloat(22.5)))
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := NewExpenseRecord(ownerID, ExpenseCategory("RENT"), "desc", decimal.NewFromInt(1), "", decimal.NewFromInt(1), "KES", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Expense category is not valid")
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := NewExpenseRecord(ownerID, ExpenseCategorySeed, "maize seed", decimal.Zero, "kg", decimal.NewFromInt(200), "KES", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Expense quantity must be positive")
	})

	t.Run("non-positive unit price", func(t *testing.T) {
		_, err := NewExpenseRecord(ownerID, ExpenseCategorySeed, "maize seed", decimal.NewFromInt(10), "kg", decimal.Zero, "KES", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unit price must be positive")
	})

	t.Run("bad currency code", func(t *testing.T) {
		_, err := NewExpenseRecord(ownerID, ExpenseCategorySeed, "maize seed", decimal.NewFromInt(10), "kg", decimal.NewFromInt(200), "KSH1", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Currency must be a 3-letter ISO code")
	})
}

func TestExpenseRecord_Update(t *testing.T) {
	record, err := NewExpenseRecord(
		uuid.New(),
		ExpenseCategorySeed,
		"Hybrid maize seed",
		decimal.NewFromInt(10),
		"kg",
		decimal.NewFromInt(200),
		"KES",
		time.Now(),
	)
	require.NoError(t, err)
	require.True(t, record.Total.Equal(decimal.NewFromInt(2000)))

	err = record.Update(ExpenseCategorySeed, "Hybrid maize seed", decimal.NewFromInt(12), "kg", decimal.NewFromInt(180), record.IncurredAt, "supplier changed")

	require.NoError(t, err)
	assert.True(t, record.Total.Equal(decimal.NewFromInt(2160)), "total must follow quantity and unit price")
}

func TestNewIncomeRecord(t *testing.T) {
	ownerID := uuid.New()

	t.Run("successful creation", func(t *testing.T) {
		record, err := NewIncomeRecord(ownerID, IncomeSourceHarvestSale, "Sold 200kg maize at the gate", decimal.NewFromInt(9000), "KES", time.Now())

		require.NoError(t, err)
		assert.Equal(t, IncomeSourceHarvestSale, record.Source)
		require.Len(t, record.GetDomainEvents(), 1)
		assert.Equal(t, "IncomeRecorded", record.GetDomainEvents()[0].EventType())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := NewIncomeRecord(ownerID, IncomeSourceSubsidy, "fertilizer subsidy", decimal.Zero, "KES", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Income amount must be positive")
	})

	t.Run("settlement records are immutable", func(t *testing.T) {
		record, err := NewIncomeRecord(ownerID, IncomeSourceMarketplace, "Order settlement", decimal.NewFromInt(4500), "KES", time.Now())
		require.NoError(t, err)
		record.AttachOrder(uuid.New())

		err = record.Update(IncomeSourceMarketplace, "edited", decimal.NewFromInt(9999), time.Now(), "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Marketplace settlement records cannot be edited")
	})
}
