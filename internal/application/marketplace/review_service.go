package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
)

// ReviewService handles buyer reviews of delivered orders
type ReviewService struct {
	reviewRepo  marketplace.ReviewRepository
	orderRepo   marketplace.OrderRepository
	listingRepo marketplace.ListingRepository
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo marketplace.ReviewRepository,
	orderRepo marketplace.OrderRepository,
	listingRepo marketplace.ListingRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		logger:      logger,
	}
}

// Create writes a review for a delivered order and folds the stars into
// the listing's rating totals. One review per order.
func (s *ReviewService) Create(ctx context.Context, buyerID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	order, err := s.orderRepo.FindByIDForParticipant(ctx, buyerID, req.OrderID)
	if err != nil {
		return nil, err
	}

	review, err := marketplace.NewReview(buyerID, order, req.Stars, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		if errors.Is(err, shared.ErrDuplicateReview) {
			return nil, shared.NewDomainError("DUPLICATE_REVIEW", "This order has already been reviewed")
		}
		return nil, err
	}

	// The rating totals are denormalized on the listing for browsing;
	// a lost update here self-heals on the next review.
	if listing, err := s.listingRepo.FindByID(ctx, order.ListingID); err == nil {
		listing.RecordRating(req.Stars)
		listing.IncrementVersion()
		if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
			s.logger.Warn("listing rating update failed",
				zap.String("listing_id", listing.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("review created",
		zap.String("order_id", order.ID.String()),
		zap.Int("stars", req.Stars))

	return ToReviewResponse(review), nil
}

// ListForListing retrieves reviews for a listing
func (s *ReviewService) ListForListing(ctx context.Context, listingID uuid.UUID, stars *int, page, pageSize int) ([]ReviewResponse, int64, error) {
	filter := marketplace.ReviewFilter{Stars: stars}
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"

	reviews, err := s.reviewRepo.FindAllForListing(ctx, listingID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviewRepo.CountForListing(ctx, listingID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ToReviewResponse(&reviews[i])
	}
	return responses, total, nil
}

// UpdateComment edits the review text; only the author may edit
func (s *ReviewService) UpdateComment(ctx context.Context, buyerID, id uuid.UUID, comment string) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.OwnerID != buyerID {
		return nil, shared.ErrForbidden
	}

	if err := review.UpdateComment(comment); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	return ToReviewResponse(review), nil
}
