package marketplace

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/marketplace"
)

// CreateListingRequest contains input for creating a produce listing
type CreateListingRequest struct {
	Title       string          `json:"title" binding:"required"`
	CropType    string          `json:"crop_type" binding:"required"`
	Description string          `json:"description"`
	QuantityKg  decimal.Decimal `json:"quantity_kg" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Currency    string          `json:"currency" binding:"required"`
	PhotoURLs   string          `json:"photo_urls"`
	Location    string          `json:"location"`
}

// UpdateListingRequest contains input for listing edits. Quantity moves
// through restock, not here.
type UpdateListingRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Location    string          `json:"location"`
}

// RestockListingRequest returns quantity to a listing
type RestockListingRequest struct {
	QuantityKg decimal.Decimal `json:"quantity_kg" binding:"required"`
}

// ListingListFilter contains query options for browsing listings
type ListingListFilter struct {
	CropType  string           `form:"crop_type"`
	Status    string           `form:"status"`
	MinPrice  *decimal.Decimal `form:"min_price"`
	MaxPrice  *decimal.Decimal `form:"max_price"`
	Search    string           `form:"search"`
	MinRating *decimal.Decimal `form:"min_rating"`
	Page      int              `form:"page"`
	PageSize  int              `form:"page_size" binding:"omitempty,max=100"`
	SortBy    string           `form:"sort_by"`
	SortDesc  bool             `form:"sort_desc"`
}

// ListingResponse is the client shape of a listing
type ListingResponse struct {
	ID            uuid.UUID       `json:"id"`
	SellerID      uuid.UUID       `json:"seller_id"`
	Title         string          `json:"title"`
	CropType      string          `json:"crop_type"`
	Description   string          `json:"description,omitempty"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PhotoURLs     string          `json:"photo_urls,omitempty"`
	Location      string          `json:"location,omitempty"`
	AverageRating decimal.Decimal `json:"average_rating"`
	RatingCount   int64           `json:"rating_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToListingResponse maps a listing to its client shape
func ToListingResponse(l *marketplace.Listing) *ListingResponse {
	return &ListingResponse{
		ID:            l.ID,
		SellerID:      l.SellerID(),
		Title:         l.Title,
		CropType:      l.CropType,
		Description:   l.Description,
		QuantityKg:    l.QuantityKg,
		UnitPrice:     l.UnitPrice,
		Currency:      l.Currency,
		Status:        string(l.Status),
		PhotoURLs:     l.PhotoURLs,
		Location:      l.Location,
		AverageRating: l.AverageRating(),
		RatingCount:   l.RatingCount,
		CreatedAt:     l.CreatedAt,
	}
}

// CheckoutRequest contains input for placing an order. IdempotencyKey
// comes from the Idempotency-Key header; replays within the TTL are
// rejected instead of double-charging the stock.
type CheckoutRequest struct {
	ListingID       uuid.UUID       `json:"listing_id" binding:"required"`
	QuantityKg      decimal.Decimal `json:"quantity_kg" binding:"required"`
	DeliveryAddress string          `json:"delivery_address" binding:"required"`
	BuyerNote       string          `json:"buyer_note"`
	IdempotencyKey  string          `json:"-"`
}

// CancelOrderRequest contains input for cancelling an order
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderListFilter contains query options for listing orders
type OrderListFilter struct {
	Status   string     `form:"status"`
	FromDate *time.Time `form:"from" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,max=100"`
}

// OrderResponse is the client shape of an order
type OrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	ListingID       uuid.UUID       `json:"listing_id"`
	ListingTitle    string          `json:"listing_title"`
	BuyerID         uuid.UUID       `json:"buyer_id"`
	SellerID        uuid.UUID       `json:"seller_id"`
	QuantityKg      decimal.Decimal `json:"quantity_kg"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	BuyerNote       string          `json:"buyer_note,omitempty"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason    string          `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToOrderResponse maps an order to its client shape
func ToOrderResponse(o *marketplace.Order) *OrderResponse {
	return &OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		ListingID:       o.ListingID,
		ListingTitle:    o.ListingTitle,
		BuyerID:         o.BuyerID(),
		SellerID:        o.SellerID,
		QuantityKg:      o.QuantityKg,
		UnitPrice:       o.UnitPrice,
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		Status:          string(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		BuyerNote:       o.BuyerNote,
		ConfirmedAt:     o.ConfirmedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
	}
}

// CreateReviewRequest contains input for reviewing a delivered order
type CreateReviewRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Stars   int       `json:"stars" binding:"required"`
	Comment string    `json:"comment"`
}

// ReviewResponse is the client shape of a review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	OrderID   uuid.UUID `json:"order_id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToReviewResponse maps a review to its client shape
func ToReviewResponse(r *marketplace.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		ListingID: r.ListingID,
		OrderID:   r.OrderID,
		BuyerID:   r.OwnerID,
		Stars:     r.Stars,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
