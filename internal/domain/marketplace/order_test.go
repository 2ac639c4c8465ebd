package marketplace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	listing := createTestListing(t)
	order, err := NewOrder(uuid.New(), "ORD-20260829-0001", listing, decimal.NewFromInt(100), "Kibwezi market stall 4")
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("successful checkout snapshot", func(t *testing.T) {
		listing := createTestListing(t)
		buyerID := uuid.New()

		order, err := NewOrder(buyerID, "ORD-20260829-0001", listing, decimal.NewFromInt(100), "Kibwezi market stall 4")

		require.NoError(t, err)
		assert.Equal(t, buyerID, order.BuyerID())
		assert.Equal(t, listing.SellerID(), order.SellerID)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.UnitPrice.Equal(listing.UnitPrice))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(4500)), "total must be quantity times unit price")
		require.Len(t, order.GetDomainEvents(), 1)
		assert.Equal(t, "OrderPlaced", order.GetDomainEvents()[0].EventType())
	})

	t.Run("price edits after checkout do not move the total", func(t *testing.T) {
		listing := createTestListing(t)
		order, err := NewOrder(uuid.New(), "ORD-20260829-0002", listing, decimal.NewFromInt(100), "addr")
		require.NoError(t, err)

		require.NoError(t, listing.Update(listing.Title, "", decimal.NewFromInt(90), ""))

		assert.True(t, order.UnitPrice.Equal(decimal.NewFromInt(45)))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(4500)))
	})

	t.Run("cannot buy own listing", func(t *testing.T) {
		listing := createTestListing(t)

		_, err := NewOrder(listing.SellerID(), "ORD-20260829-0003", listing, decimal.NewFromInt(10), "addr")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot order from your own listing")
	})

	t.Run("missing address", func(t *testing.T) {
		listing := createTestListing(t)

		_, err := NewOrder(uuid.New(), "ORD-20260829-0004", listing, decimal.NewFromInt(10), "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Delivery address cannot be empty")
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("happy path to delivered", func(t *testing.T) {
		order := createTestOrder(t)

		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship())
		require.NoError(t, order.Deliver())

		assert.Equal(t, OrderStatusDelivered, order.Status)
		require.NotNil(t, order.DeliveredAt)
		require.Len(t, order.GetDomainEvents(), 1)
		assert.Equal(t, "OrderDelivered", order.GetDomainEvents()[0].EventType())
	})

	t.Run("cannot ship before confirm", func(t *testing.T) {
		order := createTestOrder(t)

		err := order.Ship()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot ship order in PENDING status")
	})

	t.Run("cancel pending order", func(t *testing.T) {
		order := createTestOrder(t)

		err := order.Cancel("buyer changed mind")

		require.NoError(t, err)
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, "buyer changed mind", order.CancelReason)
	})

	t.Run("cancel confirmed order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Confirm())

		require.NoError(t, order.Cancel("seller out of stock"))
	})

	t.Run("cannot cancel shipped order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship())

		err := order.Cancel("too late")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot cancel order in SHIPPED status")
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship())
		require.NoError(t, order.Deliver())

		require.Error(t, order.Cancel("no"))
		require.Error(t, order.Confirm())
	})
}

func TestNewReview(t *testing.T) {
	deliveredOrder := func(t *testing.T) *Order {
		t.Helper()
		order := createTestOrder(t)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship())
		require.NoError(t, order.Deliver())
		return order
	}

	t.Run("successful review", func(t *testing.T) {
		order := deliveredOrder(t)

		review, err := NewReview(order.BuyerID(), order, 4, "Good quality, slightly late")

		require.NoError(t, err)
		assert.Equal(t, order.ListingID, review.ListingID)
		assert.Equal(t, 4, review.Stars)
	})

	t.Run("only delivered orders", func(t *testing.T) {
		order := createTestOrder(t)

		_, err := NewReview(order.BuyerID(), order, 4, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Only delivered orders can be reviewed")
	})

	t.Run("only the buyer", func(t *testing.T) {
		order := deliveredOrder(t)

		_, err := NewReview(uuid.New(), order, 4, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Only the buyer can review the order")
	})

	t.Run("stars out of range", func(t *testing.T) {
		order := deliveredOrder(t)

		_, err := NewReview(order.BuyerID(), order, 0, "")
		require.Error(t, err)

		_, err = NewReview(order.BuyerID(), order, 6, "")
		require.Error(t, err)
	})
}
