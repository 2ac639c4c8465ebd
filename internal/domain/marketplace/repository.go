package marketplace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ListingFilter defines filtering options for listing queries
type ListingFilter struct {
	shared.Filter
	CropType  *string
	Status    *ListingStatus
	SellerID  *uuid.UUID
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Search    *string // matches title or crop type
	MinRating *decimal.Decimal
}

// ListingRepository defines the interface for listing persistence.
// Browsing is marketplace-wide; mutation is seller-scoped.
type ListingRepository interface {
	// FindByID finds a listing by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)

	// FindAll finds listings across the marketplace with filtering
	FindAll(ctx context.Context, filter ListingFilter) ([]Listing, error)

	// FindAllForSeller finds a seller's own listings
	FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter ListingFilter) ([]Listing, error)

	// Save creates or updates a listing
	Save(ctx context.Context, listing *Listing) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, listing *Listing) error

	// DeleteForSeller soft deletes a listing for its seller
	DeleteForSeller(ctx context.Context, sellerID, id uuid.UUID) error

	// Count counts listings with optional filters
	Count(ctx context.Context, filter ListingFilter) (int64, error)
}

// OrderFilter defines filtering options for order queries
type OrderFilter struct {
	shared.Filter
	Status   *OrderStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForParticipant finds an order visible to either the buyer
	// or the seller.
	FindByIDForParticipant(ctx context.Context, userID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAllForBuyer finds orders placed by a buyer
	FindAllForBuyer(ctx context.Context, buyerID uuid.UUID, filter OrderFilter) ([]Order, error)

	// FindAllForSeller finds orders received by a seller
	FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter OrderFilter) ([]Order, error)

	// CheckoutTx atomically persists a new order and reserves its
	// quantity on the listing. Both writes succeed or neither does;
	// a concurrent checkout that would oversell fails with
	// ErrInsufficientStock.
	CheckoutTx(ctx context.Context, order *Order, listing *Listing) error

	// Save updates an order
	Save(ctx context.Context, order *Order) error

	// CancelTx atomically persists the cancellation and restocks the
	// listing quantity.
	CancelTx(ctx context.Context, order *Order, listing *Listing) error

	// CountForBuyer counts orders placed by a buyer
	CountForBuyer(ctx context.Context, buyerID uuid.UUID, filter OrderFilter) (int64, error)

	// CountForSeller counts orders received by a seller
	CountForSeller(ctx context.Context, sellerID uuid.UUID, filter OrderFilter) (int64, error)
}

// ReviewFilter defines filtering options for review queries
type ReviewFilter struct {
	shared.Filter
	Stars *int
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByOrder finds the review written for an order, if any
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*Review, error)

	// FindAllForListing finds reviews for a listing
	FindAllForListing(ctx context.Context, listingID uuid.UUID, filter ReviewFilter) ([]Review, error)

	// FindAllForSeller finds reviews across a seller's listings
	FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter ReviewFilter) ([]Review, error)

	// Save creates a review. Returns ErrDuplicateReview when the order
	// already has one.
	Save(ctx context.Context, review *Review) error

	// CountForListing counts reviews for a listing
	CountForListing(ctx context.Context, listingID uuid.UUID) (int64, error)
}
