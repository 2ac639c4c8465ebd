package marketplace

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
)

type orderFixture struct {
	listingRepo *fakeListingRepo
	orderRepo   *fakeOrderRepo
	idemStore   *fakeIdempotencyStore
	bus         *capturingEventBus
	svc         *OrderService
	sellerID    uuid.UUID
	buyerID     uuid.UUID
	listingID   uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	listingRepo := newFakeListingRepo()
	orderRepo := newFakeOrderRepo(listingRepo)
	idemStore := newFakeIdempotencyStore()
	bus := &capturingEventBus{}
	svc := NewOrderService(orderRepo, listingRepo, idemStore, nil, bus, zap.NewNop())

	sellerID := uuid.New()
	listing, err := marketplace.NewListing(sellerID, "Fresh maize", "maize", "",
		decimal.NewFromInt(200), decimal.NewFromInt(50), "KES")
	require.NoError(t, err)
	listing.ClearDomainEvents()
	require.NoError(t, listingRepo.Save(context.Background(), listing))

	return &orderFixture{
		listingRepo: listingRepo,
		orderRepo:   orderRepo,
		idemStore:   idemStore,
		bus:         bus,
		svc:         svc,
		sellerID:    sellerID,
		buyerID:     uuid.New(),
		listingID:   listing.ID,
	}
}

func (f *orderFixture) checkout(t *testing.T, qty int64) *OrderResponse {
	t.Helper()
	resp, err := f.svc.Checkout(context.Background(), f.buyerID, CheckoutRequest{
		ListingID:       f.listingID,
		QuantityKg:      decimal.NewFromInt(qty),
		DeliveryAddress: "Mwariki, Nakuru West",
	})
	require.NoError(t, err)
	return resp
}

func TestOrderService_Checkout(t *testing.T) {
	f := newOrderFixture(t)

	resp := f.checkout(t, 80)

	assert.Equal(t, "PENDING", resp.Status)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "ORD-"))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, f.sellerID, resp.SellerID)
	assert.Contains(t, f.bus.eventTypes(), "OrderPlaced")

	stored := f.listingRepo.listings[f.listingID]
	assert.True(t, stored.QuantityKg.Equal(decimal.NewFromInt(120)))
}

func TestOrderService_Checkout_DrainsListing(t *testing.T) {
	f := newOrderFixture(t)

	f.checkout(t, 200)

	stored := f.listingRepo.listings[f.listingID]
	assert.Equal(t, marketplace.ListingStatusSoldOut, stored.Status)
	assert.True(t, stored.QuantityKg.IsZero())
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Checkout(context.Background(), f.buyerID, CheckoutRequest{
		ListingID:       f.listingID,
		QuantityKg:      decimal.NewFromInt(500),
		DeliveryAddress: "Mwariki",
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Empty(t, f.bus.events)
}

func TestOrderService_Checkout_ListingClosed(t *testing.T) {
	f := newOrderFixture(t)
	stored := f.listingRepo.listings[f.listingID]
	require.NoError(t, stored.Delist())

	_, err := f.svc.Checkout(context.Background(), f.buyerID, CheckoutRequest{
		ListingID:       f.listingID,
		QuantityKg:      decimal.NewFromInt(10),
		DeliveryAddress: "Mwariki",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LISTING_NOT_ACTIVE", domainErr.Code)
}

func TestOrderService_Checkout_SelfPurchase(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Checkout(context.Background(), f.sellerID, CheckoutRequest{
		ListingID:       f.listingID,
		QuantityKg:      decimal.NewFromInt(10),
		DeliveryAddress: "Mwariki",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_BUYER", domainErr.Code)
}

func TestOrderService_Checkout_IdempotencyReplay(t *testing.T) {
	f := newOrderFixture(t)

	req := CheckoutRequest{
		ListingID:       f.listingID,
		QuantityKg:      decimal.NewFromInt(10),
		DeliveryAddress: "Mwariki",
		IdempotencyKey:  "client-key-1",
	}
	_, err := f.svc.Checkout(context.Background(), f.buyerID, req)
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), f.buyerID, req)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)

	// a different buyer reusing the same key is not a replay
	_, err = f.svc.Checkout(context.Background(), uuid.New(), req)
	assert.NoError(t, err)
}

func TestOrderService_FulfillmentWalk(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.checkout(t, 50)

	confirmed, err := f.svc.Confirm(ctx, f.sellerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	shipped, err := f.svc.Ship(ctx, f.sellerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", shipped.Status)

	delivered, err := f.svc.Deliver(ctx, f.buyerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)
	assert.Contains(t, f.bus.eventTypes(), "OrderDelivered")
}

func TestOrderService_Confirm_BuyerForbidden(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t, 50)

	_, err := f.svc.Confirm(context.Background(), f.buyerID, order.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestOrderService_Deliver_RequiresShipped(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t, 50)

	_, err := f.svc.Deliver(context.Background(), f.buyerID, order.ID)
	assert.Error(t, err)
}

func TestOrderService_Cancel_RestocksListing(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.checkout(t, 200) // drains the listing
	require.Equal(t, marketplace.ListingStatusSoldOut, f.listingRepo.listings[f.listingID].Status)

	cancelled, err := f.svc.Cancel(ctx, f.buyerID, order.ID, CancelOrderRequest{Reason: "found a closer seller"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.Equal(t, "found a closer seller", cancelled.CancelReason)
	assert.Contains(t, f.bus.eventTypes(), "OrderCancelled")

	stored := f.listingRepo.listings[f.listingID]
	assert.Equal(t, marketplace.ListingStatusActive, stored.Status)
	assert.True(t, stored.QuantityKg.Equal(decimal.NewFromInt(200)))
}

func TestOrderService_Cancel_DeliveredOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.checkout(t, 50)
	_, err := f.svc.Confirm(ctx, f.sellerID, order.ID)
	require.NoError(t, err)
	_, err = f.svc.Ship(ctx, f.sellerID, order.ID)
	require.NoError(t, err)
	_, err = f.svc.Deliver(ctx, f.buyerID, order.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, f.buyerID, order.ID, CancelOrderRequest{})
	assert.Error(t, err)
}

func TestOrderService_ListPurchasesAndSales(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	f.checkout(t, 30)
	f.checkout(t, 40)

	purchases, total, err := f.svc.ListPurchases(ctx, f.buyerID, OrderListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, purchases, 2)

	sales, total, err := f.svc.ListSales(ctx, f.sellerID, OrderListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, sales, 2)

	// strangers see nothing
	_, total, err = f.svc.ListPurchases(ctx, uuid.New(), OrderListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}
