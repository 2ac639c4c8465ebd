package persistence

import (
	"context"
	"errors"

	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormListingRepository implements ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Listing, error) {
	var listing marketplace.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// FindAll finds listings across the marketplace with filtering
func (r *GormListingRepository) FindAll(ctx context.Context, filter marketplace.ListingFilter) ([]marketplace.Listing, error) {
	var listings []marketplace.Listing
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&marketplace.Listing{}),
		filter,
	)

	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindAllForSeller finds a seller's own listings
func (r *GormListingRepository) FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter marketplace.ListingFilter) ([]marketplace.Listing, error) {
	var listings []marketplace.Listing
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&marketplace.Listing{}).Where("owner_id = ?", sellerID),
		filter,
	)

	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Save creates or updates a listing
func (r *GormListingRepository) Save(ctx context.Context, listing *marketplace.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormListingRepository) SaveWithLock(ctx context.Context, listing *marketplace.Listing) error {
	result := r.db.WithContext(ctx).
		Model(listing).
		Where("id = ? AND version = ?", listing.ID, listing.Version-1).
		Updates(map[string]interface{}{
			"title":        listing.Title,
			"crop_type":    listing.CropType,
			"description":  listing.Description,
			"quantity_kg":  listing.QuantityKg,
			"unit_price":   listing.UnitPrice,
			"currency":     listing.Currency,
			"status":       listing.Status,
			"photo_urls":   listing.PhotoURLs,
			"location":     listing.Location,
			"rating_sum":   listing.RatingSum,
			"rating_count": listing.RatingCount,
			"version":      listing.Version,
			"updated_at":   listing.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Listing was modified by another transaction")
	}
	return nil
}

// DeleteForSeller deletes a listing within its seller scope
func (r *GormListingRepository) DeleteForSeller(ctx context.Context, sellerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&marketplace.Listing{}, "owner_id = ? AND id = ?", sellerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts listings with optional filters
func (r *GormListingRepository) Count(ctx context.Context, filter marketplace.ListingFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&marketplace.Listing{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormListingRepository) applyFilter(query *gorm.DB, filter marketplace.ListingFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ListingSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormListingRepository) applyConditions(query *gorm.DB, filter marketplace.ListingFilter) *gorm.DB {
	if filter.CropType != nil {
		query = query.Where("crop_type = ?", *filter.CropType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SellerID != nil {
		query = query.Where("owner_id = ?", *filter.SellerID)
	}
	if filter.MinPrice != nil {
		query = query.Where("unit_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("unit_price <= ?", *filter.MaxPrice)
	}
	if filter.MinRating != nil {
		query = query.Where("rating_count > 0 AND (rating_sum::numeric / rating_count) >= ?", *filter.MinRating)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("title ILIKE ? OR crop_type ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormListingRepository implements ListingRepository
var _ marketplace.ListingRepository = (*GormListingRepository)(nil)
