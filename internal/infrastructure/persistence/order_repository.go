package persistence

import (
	"context"
	"errors"

	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Order, error) {
	var order marketplace.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForParticipant finds an order visible to either the buyer or the seller
func (r *GormOrderRepository) FindByIDForParticipant(ctx context.Context, userID, id uuid.UUID) (*marketplace.Order, error) {
	var order marketplace.Order
	if err := r.db.WithContext(ctx).
		Where("id = ? AND (owner_id = ? OR seller_id = ?)", id, userID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*marketplace.Order, error) {
	var order marketplace.Order
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForBuyer finds orders placed by a buyer
func (r *GormOrderRepository) FindAllForBuyer(ctx context.Context, buyerID uuid.UUID, filter marketplace.OrderFilter) ([]marketplace.Order, error) {
	var orders []marketplace.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&marketplace.Order{}).Where("owner_id = ?", buyerID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllForSeller finds orders received by a seller
func (r *GormOrderRepository) FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter marketplace.OrderFilter) ([]marketplace.Order, error) {
	var orders []marketplace.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&marketplace.Order{}).Where("seller_id = ?", sellerID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CheckoutTx atomically persists a new order and reserves its quantity
// on the listing. The decrement is guarded in SQL so two concurrent
// checkouts cannot reserve the same kilograms; the loser fails with
// ErrInsufficientStock and nothing is written.
func (r *GormOrderRepository) CheckoutTx(ctx context.Context, order *marketplace.Order, listing *marketplace.Listing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&marketplace.Listing{}).
			Where("id = ? AND status = ? AND quantity_kg >= ?",
				listing.ID, marketplace.ListingStatusActive, order.QuantityKg).
			Updates(map[string]interface{}{
				"quantity_kg": gorm.Expr("quantity_kg - ?", order.QuantityKg),
				"version":     gorm.Expr("version + 1"),
				"updated_at":  order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrInsufficientStock
		}

		// Flip the listing to sold out once the last kilogram is reserved
		if err := tx.Model(&marketplace.Listing{}).
			Where("id = ? AND quantity_kg <= 0 AND status = ?", listing.ID, marketplace.ListingStatusActive).
			Update("status", marketplace.ListingStatusSoldOut).Error; err != nil {
			return err
		}

		return tx.Create(order).Error
	})
}

// Save updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *marketplace.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// CancelTx atomically persists the cancellation and restocks the
// listing quantity.
func (r *GormOrderRepository) CancelTx(ctx context.Context, order *marketplace.Order, listing *marketplace.Listing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		result := tx.Model(&marketplace.Listing{}).
			Where("id = ?", listing.ID).
			Updates(map[string]interface{}{
				"quantity_kg": gorm.Expr("quantity_kg + ?", order.QuantityKg),
				"version":     gorm.Expr("version + 1"),
				"updated_at":  order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		// Restocking reactivates a sold-out listing
		return tx.Model(&marketplace.Listing{}).
			Where("id = ? AND status = ? AND quantity_kg > 0", listing.ID, marketplace.ListingStatusSoldOut).
			Update("status", marketplace.ListingStatusActive).Error
	})
}

// CountForBuyer counts orders placed by a buyer
func (r *GormOrderRepository) CountForBuyer(ctx context.Context, buyerID uuid.UUID, filter marketplace.OrderFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&marketplace.Order{}).Where("owner_id = ?", buyerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForSeller counts orders received by a seller
func (r *GormOrderRepository) CountForSeller(ctx context.Context, sellerID uuid.UUID, filter marketplace.OrderFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&marketplace.Order{}).Where("seller_id = ?", sellerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter marketplace.OrderFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormOrderRepository) applyConditions(query *gorm.DB, filter marketplace.OrderFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ marketplace.OrderRepository = (*GormOrderRepository)(nil)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Review, error) {
	var review marketplace.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByOrder finds the review written for an order, if any
func (r *GormReviewRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*marketplace.Review, error) {
	var review marketplace.Review
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindAllForListing finds reviews for a listing
func (r *GormReviewRepository) FindAllForListing(ctx context.Context, listingID uuid.UUID, filter marketplace.ReviewFilter) ([]marketplace.Review, error) {
	var reviews []marketplace.Review
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&marketplace.Review{}).Where("listing_id = ?", listingID),
		filter,
	)

	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindAllForSeller finds reviews across a seller's listings
func (r *GormReviewRepository) FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter marketplace.ReviewFilter) ([]marketplace.Review, error) {
	var reviews []marketplace.Review
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&marketplace.Review{}).Where("seller_id = ?", sellerID),
		filter,
	)

	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save creates a review. One review per order is enforced by a unique
// index on order_id.
func (r *GormReviewRepository) Save(ctx context.Context, review *marketplace.Review) error {
	var existing int64
	if err := r.db.WithContext(ctx).
		Model(&marketplace.Review{}).
		Where("order_id = ? AND id <> ?", review.OrderID, review.ID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return shared.ErrDuplicateReview
	}
	return r.db.WithContext(ctx).Save(review).Error
}

// CountForListing counts reviews for a listing
func (r *GormReviewRepository) CountForListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&marketplace.Review{}).
		Where("listing_id = ?", listingID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormReviewRepository) applyFilter(query *gorm.DB, filter marketplace.ReviewFilter) *gorm.DB {
	if filter.Stars != nil {
		query = query.Where("stars = ?", *filter.Stars)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormReviewRepository implements ReviewRepository
var _ marketplace.ReviewRepository = (*GormReviewRepository)(nil)
