package marketplace

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrihub/backend/internal/domain/shared"
)

func createTestListing(t *testing.T) *Listing {
	t.Helper()
	listing, err := NewListing(uuid.New(), "Fresh maize, grade A", "maize", "Harvested this week", decimal.NewFromInt(500), decimal.NewFromInt(45), "KES")
	require.NoError(t, err)
	listing.ClearDomainEvents()
	return listing
}

func TestNewListing(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		sellerID := uuid.New()
		listing, err := NewListing(sellerID, "Fresh maize, grade A", "maize", "", decimal.NewFromInt(500), decimal.NewFromInt(45), "KES")

		require.NoError(t, err)
		assert.Equal(t, sellerID, listing.SellerID())
		assert.Equal(t, ListingStatusActive, listing.Status)
		require.Len(t, listing.GetDomainEvents(), 1)
		assert.Equal(t, "ListingCreated", listing.GetDomainEvents()[0].EventType())
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := NewListing(uuid.New(), "Fresh maize", "maize", "", decimal.Zero, decimal.NewFromInt(45), "KES")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Listing quantity must be positive")
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := NewListing(uuid.New(), "Fresh maize", "maize", "", decimal.NewFromInt(500), decimal.Zero, "KES")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unit price must be positive")
	})
}

func TestListing_Reserve(t *testing.T) {
	t.Run("reserve part of the stock", func(t *testing.T) {
		listing := createTestListing(t)

		err := listing.Reserve(decimal.NewFromInt(200))

		require.NoError(t, err)
		assert.True(t, listing.QuantityKg.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, ListingStatusActive, listing.Status)
	})

	t.Run("reserving everything marks sold out", func(t *testing.T) {
		listing := createTestListing(t)

		err := listing.Reserve(decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.True(t, listing.QuantityKg.IsZero())
		assert.Equal(t, ListingStatusSoldOut, listing.Status)
	})

	t.Run("oversell is rejected", func(t *testing.T) {
		listing := createTestListing(t)

		err := listing.Reserve(decimal.NewFromInt(501))

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		assert.True(t, listing.QuantityKg.Equal(decimal.NewFromInt(500)), "failed reserve must not change stock")
	})

	t.Run("cannot reserve on sold out listing", func(t *testing.T) {
		listing := createTestListing(t)
		require.NoError(t, listing.Reserve(decimal.NewFromInt(500)))

		err := listing.Reserve(decimal.NewFromInt(1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Listing is not active")
	})
}

func TestListing_Restock(t *testing.T) {
	t.Run("restock reactivates sold out listing", func(t *testing.T) {
		listing := createTestListing(t)
		require.NoError(t, listing.Reserve(decimal.NewFromInt(500)))
		require.Equal(t, ListingStatusSoldOut, listing.Status)

		err := listing.Restock(decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, ListingStatusActive, listing.Status)
		assert.True(t, listing.QuantityKg.Equal(decimal.NewFromInt(500)))
	})

	t.Run("cannot restock delisted listing", func(t *testing.T) {
		listing := createTestListing(t)
		require.NoError(t, listing.Delist())

		err := listing.Restock(decimal.NewFromInt(10))

		require.Error(t, err)
	})
}

func TestListing_Ratings(t *testing.T) {
	listing := createTestListing(t)

	assert.True(t, listing.AverageRating().IsZero())

	listing.RecordRating(5)
	listing.RecordRating(4)
	listing.RecordRating(4)

	assert.Equal(t, int64(3), listing.RatingCount)
	assert.True(t, listing.AverageRating().Equal(decimal.NewFromFloat(4.33)))
}
