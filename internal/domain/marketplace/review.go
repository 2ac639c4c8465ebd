package marketplace

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// Review represents a buyer's review of a delivered order. One review
// per order; uniqueness is enforced by the repository.
type Review struct {
	shared.OwnedAggregateRoot
	ListingID uuid.UUID `json:"listing_id"`
	OrderID   uuid.UUID `json:"order_id"`
	SellerID  uuid.UUID `json:"seller_id"`
	Stars     int       `json:"stars"` // 1..5
	Comment   string    `json:"comment"`
}

// NewReview creates a new review for a delivered order
func NewReview(buyerID uuid.UUID, order *Order, stars int, comment string) (*Review, error) {
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Review must reference an order")
	}
	if order.Status != OrderStatusDelivered {
		return nil, shared.NewDomainError("INVALID_STATE", "Only delivered orders can be reviewed")
	}
	if buyerID != order.BuyerID() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the buyer can review the order")
	}
	if stars < 1 || stars > 5 {
		return nil, shared.NewDomainError("INVALID_STARS", "Review stars must be between 1 and 5")
	}
	if len(comment) > 1000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Review comment cannot exceed 1000 characters")
	}

	return &Review{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(buyerID),
		ListingID:          order.ListingID,
		OrderID:            order.ID,
		SellerID:           order.SellerID,
		Stars:              stars,
		Comment:            comment,
	}, nil
}

// UpdateComment edits the review text; stars are immutable once given
func (r *Review) UpdateComment(comment string) error {
	if len(comment) > 1000 {
		return shared.NewDomainError("INVALID_COMMENT", "Review comment cannot exceed 1000 characters")
	}

	r.Comment = comment
	r.UpdatedAt = time.Now()

	return nil
}
