package marketplace

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ListingCreatedEvent is raised when a seller publishes a listing
type ListingCreatedEvent struct {
	shared.BaseDomainEvent
	ListingID  uuid.UUID       `json:"listing_id"`
	Title      string          `json:"title"`
	CropType   string          `json:"crop_type"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Currency   string          `json:"currency"`
}

// EventType returns the event type name
func (e *ListingCreatedEvent) EventType() string {
	return "ListingCreated"
}

// NewListingCreatedEvent creates a new ListingCreatedEvent
func NewListingCreatedEvent(listing *Listing) *ListingCreatedEvent {
	return &ListingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ListingCreated", "Listing", listing.ID, listing.OwnerID),
		ListingID:       listing.ID,
		Title:           listing.Title,
		CropType:        listing.CropType,
		QuantityKg:      listing.QuantityKg,
		UnitPrice:       listing.UnitPrice,
		Currency:        listing.Currency,
	}
}

// OrderPlacedEvent is raised when a buyer checks out
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	ListingID   uuid.UUID       `json:"listing_id"`
	SellerID    uuid.UUID       `json:"seller_id"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
}

// EventType returns the event type name
func (e *OrderPlacedEvent) EventType() string {
	return "OrderPlaced"
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("OrderPlaced", "Order", order.ID, order.OwnerID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ListingID:       order.ListingID,
		SellerID:        order.SellerID,
		QuantityKg:      order.QuantityKg,
		TotalAmount:     order.TotalAmount,
		Currency:        order.Currency,
	}
}

// OrderDeliveredEvent is raised when the buyer confirms receipt. The
// finance settlement handler and gamification both subscribe to it.
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	SellerID    uuid.UUID       `json:"seller_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
}

// EventType returns the event type name
func (e *OrderDeliveredEvent) EventType() string {
	return "OrderDelivered"
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(order *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("OrderDelivered", "Order", order.ID, order.OwnerID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SellerID:        order.SellerID,
		TotalAmount:     order.TotalAmount,
		Currency:        order.Currency,
	}
}

// OrderCancelledEvent is raised when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	ListingID  uuid.UUID       `json:"listing_id"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	Reason     string          `json:"reason"`
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return "OrderCancelled"
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("OrderCancelled", "Order", order.ID, order.OwnerID),
		OrderID:         order.ID,
		ListingID:       order.ListingID,
		QuantityKg:      order.QuantityKg,
		Reason:          order.CancelReason,
	}
}
