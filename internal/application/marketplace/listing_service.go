package marketplace

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
)

// ListingService handles produce listing management and browsing
type ListingService struct {
	listingRepo marketplace.ListingRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewListingService creates a new ListingService
func NewListingService(listingRepo marketplace.ListingRepository, eventBus shared.EventPublisher, logger *zap.Logger) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create publishes a new listing for the seller
func (s *ListingService) Create(ctx context.Context, sellerID uuid.UUID, req CreateListingRequest) (*ListingResponse, error) {
	listing, err := marketplace.NewListing(sellerID, req.Title, req.CropType, req.Description, req.QuantityKg, req.UnitPrice, req.Currency)
	if err != nil {
		return nil, err
	}
	if req.PhotoURLs != "" {
		listing.SetPhotoURLs(req.PhotoURLs)
	}
	if req.Location != "" {
		if err := listing.Update(req.Title, req.Description, req.UnitPrice, req.Location); err != nil {
			return nil, err
		}
	}

	if err := s.listingRepo.Save(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("crop_type", listing.CropType),
		zap.String("quantity_kg", listing.QuantityKg.String()))

	s.publishEvents(ctx, listing)

	return ToListingResponse(listing), nil
}

// GetByID retrieves a listing. Browsing is marketplace-wide.
func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToListingResponse(listing), nil
}

// Browse retrieves marketplace listings with filtering. Delisted
// listings never appear; the default view shows active ones.
func (s *ListingService) Browse(ctx context.Context, filter ListingListFilter) ([]ListingResponse, int64, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	if domainFilter.Status == nil {
		active := marketplace.ListingStatusActive
		domainFilter.Status = &active
	}

	listings, err := s.listingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.listingRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toListingResponses(listings), total, nil
}

// ListMine retrieves the seller's own listings in any status
func (s *ListingService) ListMine(ctx context.Context, sellerID uuid.UUID, filter ListingListFilter) ([]ListingResponse, int64, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	domainFilter.SellerID = &sellerID

	listings, err := s.listingRepo.FindAllForSeller(ctx, sellerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.listingRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toListingResponses(listings), total, nil
}

// Update edits listing details, seller only
func (s *ListingService) Update(ctx context.Context, sellerID, id uuid.UUID, req UpdateListingRequest) (*ListingResponse, error) {
	listing, err := s.findForSeller(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	if err := listing.Update(req.Title, req.Description, req.UnitPrice, req.Location); err != nil {
		return nil, err
	}
	listing.IncrementVersion()

	if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
		return nil, err
	}
	return ToListingResponse(listing), nil
}

// Restock returns quantity to a listing and reactivates it if sold out
func (s *ListingService) Restock(ctx context.Context, sellerID, id uuid.UUID, req RestockListingRequest) (*ListingResponse, error) {
	listing, err := s.findForSeller(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	if err := listing.Restock(req.QuantityKg); err != nil {
		return nil, err
	}
	listing.IncrementVersion()

	if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
		return nil, err
	}
	return ToListingResponse(listing), nil
}

// Delist removes a listing from the marketplace
func (s *ListingService) Delist(ctx context.Context, sellerID, id uuid.UUID) (*ListingResponse, error) {
	listing, err := s.findForSeller(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	if err := listing.Delist(); err != nil {
		return nil, err
	}
	listing.IncrementVersion()

	if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
		return nil, err
	}
	return ToListingResponse(listing), nil
}

func (s *ListingService) findForSeller(ctx context.Context, sellerID, id uuid.UUID) (*marketplace.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.SellerID() != sellerID {
		return nil, shared.ErrForbidden
	}
	return listing, nil
}

func (s *ListingService) buildFilter(filter ListingListFilter) (marketplace.ListingFilter, error) {
	domainFilter := marketplace.ListingFilter{
		MinPrice:  filter.MinPrice,
		MaxPrice:  filter.MaxPrice,
		MinRating: filter.MinRating,
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.SortBy
	if filter.SortDesc {
		domainFilter.OrderDir = "desc"
	} else {
		domainFilter.OrderDir = "asc"
	}
	if filter.CropType != "" {
		domainFilter.CropType = &filter.CropType
	}
	if filter.Search != "" {
		domainFilter.Search = &filter.Search
	}
	if filter.Status != "" {
		status := marketplace.ListingStatus(filter.Status)
		if !status.IsValid() {
			return domainFilter, shared.NewDomainError("INVALID_STATUS", "Unknown listing status")
		}
		domainFilter.Status = &status
	}
	return domainFilter, nil
}

func toListingResponses(listings []marketplace.Listing) []ListingResponse {
	responses := make([]ListingResponse, len(listings))
	for i := range listings {
		responses[i] = *ToListingResponse(&listings[i])
	}
	return responses
}

func (s *ListingService) publishEvents(ctx context.Context, listing *marketplace.Listing) {
	if s.eventBus == nil {
		return
	}
	for _, event := range listing.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	listing.ClearDomainEvents()
}
