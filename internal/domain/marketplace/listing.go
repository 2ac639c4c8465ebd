package marketplace

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ListingStatus represents the status of a marketplace listing
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "ACTIVE"
	ListingStatusSoldOut  ListingStatus = "SOLD_OUT"
	ListingStatusDelisted ListingStatus = "DELISTED"
)

// IsValid checks if the status is a valid ListingStatus
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusActive, ListingStatusSoldOut, ListingStatusDelisted:
		return true
	}
	return false
}

// String returns the string representation of ListingStatus
func (s ListingStatus) String() string {
	return string(s)
}

// Listing represents a produce listing aggregate root. The owner of the
// aggregate is the seller. Available quantity only moves through Reserve
// and Restock so the sold-out transition stays consistent.
type Listing struct {
	shared.OwnedAggregateRoot
	Title       string          `json:"title"`
	CropType    string          `json:"crop_type"`
	Description string          `json:"description"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"` // Remaining quantity for sale
	UnitPrice   decimal.Decimal `json:"unit_price"`  // Price per kilogram
	Currency    string          `json:"currency"`
	Status      ListingStatus   `json:"status"`
	PhotoURLs   string          `json:"photo_urls"` // JSON array of photo URLs
	Location    string          `json:"location"`
	RatingSum   int64           `json:"rating_sum"`   // Denormalized review totals
	RatingCount int64           `json:"rating_count"` //
}

// NewListing creates a new active listing
func NewListing(sellerID uuid.UUID, title, cropType, description string, quantityKg, unitPrice decimal.Decimal, currency string) (*Listing, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Listing title cannot be empty")
	}
	if len(title) > 150 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Listing title cannot exceed 150 characters")
	}
	if cropType == "" {
		return nil, shared.NewDomainError("INVALID_CROP", "Crop type cannot be empty")
	}
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Listing quantity must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	listing := &Listing{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(sellerID),
		Title:              title,
		CropType:           cropType,
		Description:        description,
		QuantityKg:         quantityKg,
		UnitPrice:          unitPrice,
		Currency:           currency,
		Status:             ListingStatusActive,
	}

	listing.AddDomainEvent(NewListingCreatedEvent(listing))

	return listing, nil
}

// SellerID returns the owner of the listing
func (l *Listing) SellerID() uuid.UUID {
	return l.OwnerID
}

// Update updates listing details. Quantity is not edited here; use
// Restock so the status transition stays correct.
func (l *Listing) Update(title, description string, unitPrice decimal.Decimal, location string) error {
	if l.Status == ListingStatusDelisted {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a delisted listing")
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Listing title cannot be empty")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	l.Title = title
	l.Description = description
	l.UnitPrice = unitPrice
	l.Location = location
	l.UpdatedAt = time.Now()

	return nil
}

// Reserve removes quantity for a checkout. Marks the listing sold out
// when the remainder reaches zero.
func (l *Listing) Reserve(quantityKg decimal.Decimal) error {
	if l.Status != ListingStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Listing is not active")
	}
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Order quantity must be positive")
	}
	if quantityKg.GreaterThan(l.QuantityKg) {
		return shared.ErrInsufficientStock
	}

	l.QuantityKg = l.QuantityKg.Sub(quantityKg)
	if l.QuantityKg.IsZero() {
		l.Status = ListingStatusSoldOut
	}
	l.UpdatedAt = time.Now()

	return nil
}

// Restock returns quantity to the listing, e.g. on order cancellation,
// and reactivates a sold-out listing.
func (l *Listing) Restock(quantityKg decimal.Decimal) error {
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}
	if l.Status == ListingStatusDelisted {
		return shared.NewDomainError("INVALID_STATE", "Cannot restock a delisted listing")
	}

	l.QuantityKg = l.QuantityKg.Add(quantityKg)
	if l.Status == ListingStatusSoldOut {
		l.Status = ListingStatusActive
	}
	l.UpdatedAt = time.Now()

	return nil
}

// Delist removes the listing from the marketplace
func (l *Listing) Delist() error {
	if l.Status == ListingStatusDelisted {
		return shared.NewDomainError("INVALID_STATE", "Listing is already delisted")
	}

	l.Status = ListingStatusDelisted
	l.UpdatedAt = time.Now()

	return nil
}

// SetPhotoURLs sets the listing photo URLs (JSON array)
func (l *Listing) SetPhotoURLs(urls string) {
	l.PhotoURLs = urls
	l.UpdatedAt = time.Now()
}

// RecordRating folds a new review star rating into the denormalized totals
func (l *Listing) RecordRating(stars int) {
	l.RatingSum += int64(stars)
	l.RatingCount++
	l.UpdatedAt = time.Now()
}

// AverageRating returns the average star rating, zero when unreviewed
func (l *Listing) AverageRating() decimal.Decimal {
	if l.RatingCount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(l.RatingSum).Div(decimal.NewFromInt(l.RatingCount)).Round(2)
}
