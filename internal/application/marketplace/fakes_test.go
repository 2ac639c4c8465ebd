package marketplace

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
)

// capturingEventBus records published events for assertions
type capturingEventBus struct {
	events []shared.DomainEvent
}

func (b *capturingEventBus) Publish(_ context.Context, events ...shared.DomainEvent) error {
	b.events = append(b.events, events...)
	return nil
}

func (b *capturingEventBus) eventTypes() []string {
	types := make([]string, len(b.events))
	for i, e := range b.events {
		types[i] = e.EventType()
	}
	return types
}

// fakeListingRepo is an in-memory ListingRepository
type fakeListingRepo struct {
	listings map[uuid.UUID]*marketplace.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uuid.UUID]*marketplace.Listing)}
}

func (r *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*marketplace.Listing, error) {
	if l, ok := r.listings[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeListingRepo) FindAll(_ context.Context, filter marketplace.ListingFilter) ([]marketplace.Listing, error) {
	var out []marketplace.Listing
	for _, l := range r.listings {
		if matchesListingFilter(l, filter) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) FindAllForSeller(_ context.Context, sellerID uuid.UUID, filter marketplace.ListingFilter) ([]marketplace.Listing, error) {
	var out []marketplace.Listing
	for _, l := range r.listings {
		if l.SellerID() == sellerID && matchesListingFilter(l, filter) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) Save(_ context.Context, listing *marketplace.Listing) error {
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) SaveWithLock(_ context.Context, listing *marketplace.Listing) error {
	stored, ok := r.listings[listing.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != listing.Version-1 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Listing was modified by another transaction")
	}
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) DeleteForSeller(_ context.Context, sellerID, id uuid.UUID) error {
	if l, ok := r.listings[id]; ok && l.SellerID() == sellerID {
		delete(r.listings, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeListingRepo) Count(_ context.Context, filter marketplace.ListingFilter) (int64, error) {
	var count int64
	for _, l := range r.listings {
		if matchesListingFilter(l, filter) {
			count++
		}
	}
	return count, nil
}

func matchesListingFilter(l *marketplace.Listing, filter marketplace.ListingFilter) bool {
	if filter.Status != nil && l.Status != *filter.Status {
		return false
	}
	if filter.CropType != nil && l.CropType != *filter.CropType {
		return false
	}
	if filter.SellerID != nil && l.SellerID() != *filter.SellerID {
		return false
	}
	return true
}

// fakeOrderRepo is an in-memory OrderRepository sharing the listing
// store so the checkout and cancel transactions can be emulated.
type fakeOrderRepo struct {
	orders      map[uuid.UUID]*marketplace.Order
	listingRepo *fakeListingRepo
}

func newFakeOrderRepo(listingRepo *fakeListingRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*marketplace.Order), listingRepo: listingRepo}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*marketplace.Order, error) {
	if o, ok := r.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByIDForParticipant(_ context.Context, userID, id uuid.UUID) (*marketplace.Order, error) {
	if o, ok := r.orders[id]; ok && (o.BuyerID() == userID || o.SellerID == userID) {
		copied := *o
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*marketplace.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			copied := *o
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindAllForBuyer(_ context.Context, buyerID uuid.UUID, filter marketplace.OrderFilter) ([]marketplace.Order, error) {
	var out []marketplace.Order
	for _, o := range r.orders {
		if o.BuyerID() == buyerID && matchesOrderFilter(o, filter) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAllForSeller(_ context.Context, sellerID uuid.UUID, filter marketplace.OrderFilter) ([]marketplace.Order, error) {
	var out []marketplace.Order
	for _, o := range r.orders {
		if o.SellerID == sellerID && matchesOrderFilter(o, filter) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CheckoutTx(_ context.Context, order *marketplace.Order, listing *marketplace.Listing) error {
	stored, ok := r.listingRepo.listings[listing.ID]
	if !ok || stored.Status != marketplace.ListingStatusActive || stored.QuantityKg.LessThan(order.QuantityKg) {
		return shared.ErrInsufficientStock
	}
	stored.QuantityKg = stored.QuantityKg.Sub(order.QuantityKg)
	if stored.QuantityKg.IsZero() {
		stored.Status = marketplace.ListingStatusSoldOut
	}
	stored.Version++
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *marketplace.Order) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) CancelTx(_ context.Context, order *marketplace.Order, listing *marketplace.Listing) error {
	stored, ok := r.listingRepo.listings[listing.ID]
	if !ok {
		return shared.ErrNotFound
	}
	stored.QuantityKg = stored.QuantityKg.Add(order.QuantityKg)
	if stored.Status == marketplace.ListingStatusSoldOut {
		stored.Status = marketplace.ListingStatusActive
	}
	stored.Version++
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) CountForBuyer(_ context.Context, buyerID uuid.UUID, filter marketplace.OrderFilter) (int64, error) {
	orders, _ := r.FindAllForBuyer(context.Background(), buyerID, filter)
	return int64(len(orders)), nil
}

func (r *fakeOrderRepo) CountForSeller(_ context.Context, sellerID uuid.UUID, filter marketplace.OrderFilter) (int64, error) {
	orders, _ := r.FindAllForSeller(context.Background(), sellerID, filter)
	return int64(len(orders)), nil
}

func matchesOrderFilter(o *marketplace.Order, filter marketplace.OrderFilter) bool {
	if filter.Status != nil && o.Status != *filter.Status {
		return false
	}
	return true
}

// fakeReviewRepo is an in-memory ReviewRepository enforcing one review
// per order
type fakeReviewRepo struct {
	reviews map[uuid.UUID]*marketplace.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*marketplace.Review)}
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*marketplace.Review, error) {
	if review, ok := r.reviews[id]; ok {
		copied := *review
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReviewRepo) FindByOrder(_ context.Context, orderID uuid.UUID) (*marketplace.Review, error) {
	for _, review := range r.reviews {
		if review.OrderID == orderID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReviewRepo) FindAllForListing(_ context.Context, listingID uuid.UUID, _ marketplace.ReviewFilter) ([]marketplace.Review, error) {
	var out []marketplace.Review
	for _, review := range r.reviews {
		if review.ListingID == listingID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) FindAllForSeller(_ context.Context, sellerID uuid.UUID, _ marketplace.ReviewFilter) ([]marketplace.Review, error) {
	var out []marketplace.Review
	for _, review := range r.reviews {
		if review.SellerID == sellerID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Save(_ context.Context, review *marketplace.Review) error {
	for _, existing := range r.reviews {
		if existing.OrderID == review.OrderID && existing.ID != review.ID {
			return shared.ErrDuplicateReview
		}
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) CountForListing(_ context.Context, listingID uuid.UUID) (int64, error) {
	var count int64
	for _, review := range r.reviews {
		if review.ListingID == listingID {
			count++
		}
	}
	return count, nil
}

// fakeIdempotencyStore is an in-memory IdempotencyStore
type fakeIdempotencyStore struct {
	seen map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	return s.seen[key], nil
}

func (s *fakeIdempotencyStore) Close() error { return nil }
