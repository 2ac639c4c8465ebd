package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormHarvestRepository implements HarvestRepository using GORM
type GormHarvestRepository struct {
	db *gorm.DB
}

// NewGormHarvestRepository creates a new GormHarvestRepository
func NewGormHarvestRepository(db *gorm.DB) *GormHarvestRepository {
	return &GormHarvestRepository{db: db}
}

// FindByID finds a harvest record by its ID
func (r *GormHarvestRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.Harvest, error) {
	var harvest farm.Harvest
	if err := r.db.WithContext(ctx).First(&harvest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &harvest, nil
}

// FindByIDForOwner finds a harvest record by ID scoped to an owner
func (r *GormHarvestRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*farm.Harvest, error) {
	var harvest farm.Harvest
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&harvest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &harvest, nil
}

// FindAllForOwner finds all harvest records for an owner with filtering
func (r *GormHarvestRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.HarvestFilter) ([]farm.Harvest, error) {
	var harvests []farm.Harvest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&farm.Harvest{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&harvests).Error; err != nil {
		return nil, err
	}
	return harvests, nil
}

// FindByField finds harvest records for a specific field
func (r *GormHarvestRepository) FindByField(ctx context.Context, ownerID, fieldID uuid.UUID, filter farm.HarvestFilter) ([]farm.Harvest, error) {
	var harvests []farm.Harvest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&farm.Harvest{}).
			Where("owner_id = ? AND field_id = ?", ownerID, fieldID),
		filter,
	)

	if err := query.Find(&harvests).Error; err != nil {
		return nil, err
	}
	return harvests, nil
}

// SumQuantityByCrop sums harvested quantity in kilograms per crop type
// for an owner within the given time range.
func (r *GormHarvestRepository) SumQuantityByCrop(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]string, error) {
	var rows []struct {
		CropType string
		Total    decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&farm.Harvest{}).
		Select("crop_type, COALESCE(SUM(quantity_kg), 0) as total").
		Where("owner_id = ? AND harvested_at >= ? AND harvested_at <= ?", ownerID, from, to).
		Group("crop_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]string, len(rows))
	for _, row := range rows {
		totals[row.CropType] = row.Total.String()
	}
	return totals, nil
}

// Save creates or updates a harvest record
func (r *GormHarvestRepository) Save(ctx context.Context, harvest *farm.Harvest) error {
	return r.db.WithContext(ctx).Save(harvest).Error
}

// RecordWithDepositTx persists a harvest record and deposits its quantity
// into the given storage bin in a single transaction. The bin update is
// guarded in SQL so the deposit never overshoots the bin's capacity.
func (r *GormHarvestRepository) RecordWithDepositTx(ctx context.Context, harvest *farm.Harvest, bin *farm.StorageBin) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&farm.StorageBin{}).
			Where("id = ? AND owner_id = ? AND capacity_kg - current_kg >= ?", bin.ID, harvest.OwnerID, harvest.QuantityKg).
			Updates(map[string]interface{}{
				"current_kg": gorm.Expr("current_kg + ?", harvest.QuantityKg),
				"version":    gorm.Expr("version + 1"),
				"updated_at": harvest.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrBinCapacityExceeded
		}

		return tx.Create(harvest).Error
	})
}

// DeleteForOwner deletes a harvest record within an owner scope
func (r *GormHarvestRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.Harvest{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts harvest records for an owner
func (r *GormHarvestRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.HarvestFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&farm.Harvest{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormHarvestRepository) applyFilter(query *gorm.DB, filter farm.HarvestFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, HarvestSortFields, "harvested_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormHarvestRepository) applyConditions(query *gorm.DB, filter farm.HarvestFilter) *gorm.DB {
	if filter.FieldID != nil {
		query = query.Where("field_id = ?", *filter.FieldID)
	}
	if filter.CropType != nil {
		query = query.Where("crop_type = ?", *filter.CropType)
	}
	if filter.Grade != nil {
		query = query.Where("grade = ?", *filter.Grade)
	}
	if filter.FromDate != nil {
		query = query.Where("harvested_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("harvested_at <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormHarvestRepository implements HarvestRepository
var _ farm.HarvestRepository = (*GormHarvestRepository)(nil)

// GormStorageBinRepository implements StorageBinRepository using GORM
type GormStorageBinRepository struct {
	db *gorm.DB
}

// NewGormStorageBinRepository creates a new GormStorageBinRepository
func NewGormStorageBinRepository(db *gorm.DB) *GormStorageBinRepository {
	return &GormStorageBinRepository{db: db}
}

// FindByID finds a storage bin by its ID
func (r *GormStorageBinRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.StorageBin, error) {
	var bin farm.StorageBin
	if err := r.db.WithContext(ctx).First(&bin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bin, nil
}

// FindByIDForOwner finds a storage bin by ID scoped to an owner
func (r *GormStorageBinRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*farm.StorageBin, error) {
	var bin farm.StorageBin
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&bin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bin, nil
}

// FindAllForOwner finds all storage bins for an owner with filtering
func (r *GormStorageBinRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.StorageBinFilter) ([]farm.StorageBin, error) {
	var bins []farm.StorageBin
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&farm.StorageBin{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

// Save creates or updates a storage bin
func (r *GormStorageBinRepository) Save(ctx context.Context, bin *farm.StorageBin) error {
	return r.db.WithContext(ctx).Save(bin).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStorageBinRepository) SaveWithLock(ctx context.Context, bin *farm.StorageBin) error {
	result := r.db.WithContext(ctx).
		Model(bin).
		Where("id = ? AND version = ?", bin.ID, bin.Version-1).
		Updates(map[string]interface{}{
			"name":         bin.Name,
			"produce_type": bin.ProduceType,
			"capacity_kg":  bin.CapacityKg,
			"current_kg":   bin.CurrentKg,
			"location":     bin.Location,
			"version":      bin.Version,
			"updated_at":   bin.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Storage bin was modified by another transaction")
	}
	return nil
}

// DeleteForOwner deletes a storage bin within an owner scope
func (r *GormStorageBinRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.StorageBin{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts storage bins for an owner
func (r *GormStorageBinRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.StorageBinFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&farm.StorageBin{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormStorageBinRepository) applyFilter(query *gorm.DB, filter farm.StorageBinFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormStorageBinRepository) applyConditions(query *gorm.DB, filter farm.StorageBinFilter) *gorm.DB {
	if filter.ProduceType != nil {
		query = query.Where("produce_type = ?", *filter.ProduceType)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("name ILIKE ? OR produce_type ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormStorageBinRepository implements StorageBinRepository
var _ farm.StorageBinRepository = (*GormStorageBinRepository)(nil)
