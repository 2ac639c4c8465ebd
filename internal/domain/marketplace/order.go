package marketplace

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// OrderStatus represents the status of a marketplace order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // Placed, waiting for the seller
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // Seller accepted
	OrderStatusShipped   OrderStatus = "SHIPPED"   // Handed to transport
	OrderStatusDelivered OrderStatus = "DELIVERED" // Buyer received, settlement runs
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order represents a marketplace order aggregate root. The aggregate
// owner is the buyer; the seller is looked up through SellerID. The
// listing quantity is reserved in the same transaction that persists
// the order.
type Order struct {
	shared.OwnedAggregateRoot
	OrderNumber     string          `json:"order_number"`
	ListingID       uuid.UUID       `json:"listing_id"`
	SellerID        uuid.UUID       `json:"seller_id"`
	ListingTitle    string          `json:"listing_title"` // Snapshot at checkout
	QuantityKg      decimal.Decimal `json:"quantity_kg"`
	UnitPrice       decimal.Decimal `json:"unit_price"` // Snapshot at checkout
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	Status          OrderStatus     `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	BuyerNote       string          `json:"buyer_note"`
	ConfirmedAt     *time.Time      `json:"confirmed_at"`
	ShippedAt       *time.Time      `json:"shipped_at"`
	DeliveredAt     *time.Time      `json:"delivered_at"`
	CancelledAt     *time.Time      `json:"cancelled_at"`
	CancelReason    string          `json:"cancel_reason"`
}

// NewOrder creates a pending order against a listing. Price and title
// are snapshotted from the listing so later edits do not change the
// order.
func NewOrder(buyerID uuid.UUID, orderNumber string, listing *Listing, quantityKg decimal.Decimal, deliveryAddress string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if listing == nil {
		return nil, shared.NewDomainError("INVALID_LISTING", "Order must reference a listing")
	}
	if buyerID == listing.SellerID() {
		return nil, shared.NewDomainError("INVALID_BUYER", "Cannot order from your own listing")
	}
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order quantity must be positive")
	}
	if deliveryAddress == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Delivery address cannot be empty")
	}

	order := &Order{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(buyerID),
		OrderNumber:        orderNumber,
		ListingID:          listing.ID,
		SellerID:           listing.SellerID(),
		ListingTitle:       listing.Title,
		QuantityKg:         quantityKg,
		UnitPrice:          listing.UnitPrice,
		TotalAmount:        quantityKg.Mul(listing.UnitPrice),
		Currency:           listing.Currency,
		Status:             OrderStatusPending,
		DeliveryAddress:    deliveryAddress,
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// BuyerID returns the owner of the order
func (o *Order) BuyerID() uuid.UUID {
	return o.OwnerID
}

// Confirm marks the order accepted by the seller
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now

	return nil
}

// Ship marks the order handed to transport
func (o *Order) Ship() error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now

	return nil
}

// Deliver marks the order received by the buyer and raises the event
// that triggers seller settlement.
func (o *Order) Deliver() error {
	if !o.Status.CanTransitionTo(OrderStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

// Cancel cancels a pending or confirmed order. The reserved listing
// quantity is restocked by the caller in the same transaction.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}
