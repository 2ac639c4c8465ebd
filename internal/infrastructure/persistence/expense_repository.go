package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense record by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	var record finance.ExpenseRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByIDForOwner finds an expense record by ID scoped to an owner
func (r *GormExpenseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.ExpenseRecord, error) {
	var record finance.ExpenseRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAllForOwner finds all expense records for an owner with filtering
func (r *GormExpenseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter finance.ExpenseFilter) ([]finance.ExpenseRecord, error) {
	var records []finance.ExpenseRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.ExpenseRecord{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumByCategory sums expense totals per category for an owner within
// the given time range.
func (r *GormExpenseRepository) SumByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[finance.ExpenseCategory]decimal.Decimal, error) {
	var rows []struct {
		Category finance.ExpenseCategory
		Total    decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.ExpenseRecord{}).
		Select("category, COALESCE(SUM(total), 0) as total").
		Where("owner_id = ? AND incurred_at >= ? AND incurred_at <= ?", ownerID, from, to).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[finance.ExpenseCategory]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}

// SumForOwner sums all expense totals for an owner within a range
func (r *GormExpenseRepository) SumForOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.ExpenseRecord{}).
		Select("COALESCE(SUM(total), 0) as total").
		Where("owner_id = ? AND incurred_at >= ? AND incurred_at <= ?", ownerID, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates an expense record
func (r *GormExpenseRepository) Save(ctx context.Context, record *finance.ExpenseRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DeleteForOwner deletes an expense record within an owner scope
func (r *GormExpenseRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.ExpenseRecord{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts expense records for an owner
func (r *GormExpenseRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter finance.ExpenseFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&finance.ExpenseRecord{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "incurred_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormExpenseRepository) applyConditions(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FieldID != nil {
		query = query.Where("field_id = ?", *filter.FieldID)
	}
	if filter.FromDate != nil {
		query = query.Where("incurred_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("incurred_at <= ?", *filter.ToDate)
	}
	if filter.MinTotal != nil {
		query = query.Where("total >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		query = query.Where("total <= ?", *filter.MaxTotal)
	}
	return query
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)

// GormIncomeRepository implements IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// FindByID finds an income record by its ID
func (r *GormIncomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.IncomeRecord, error) {
	var record finance.IncomeRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByIDForOwner finds an income record by ID scoped to an owner
func (r *GormIncomeRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.IncomeRecord, error) {
	var record finance.IncomeRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByOrder finds the settlement record created for a marketplace order
func (r *GormIncomeRepository) FindByOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*finance.IncomeRecord, error) {
	var record finance.IncomeRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND order_id = ?", ownerID, orderID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAllForOwner finds all income records for an owner with filtering
func (r *GormIncomeRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter finance.IncomeFilter) ([]finance.IncomeRecord, error) {
	var records []finance.IncomeRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.IncomeRecord{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumBySource sums income amounts per source for an owner within a range
func (r *GormIncomeRepository) SumBySource(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[finance.IncomeSource]decimal.Decimal, error) {
	var rows []struct {
		Source finance.IncomeSource
		Total  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.IncomeRecord{}).
		Select("source, COALESCE(SUM(amount), 0) as total").
		Where("owner_id = ? AND received_at >= ? AND received_at <= ?", ownerID, from, to).
		Group("source").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[finance.IncomeSource]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Source] = row.Total
	}
	return totals, nil
}

// SumForOwner sums all income amounts for an owner within a range
func (r *GormIncomeRepository) SumForOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.IncomeRecord{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("owner_id = ? AND received_at >= ? AND received_at <= ?", ownerID, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates an income record
func (r *GormIncomeRepository) Save(ctx context.Context, record *finance.IncomeRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DeleteForOwner deletes an income record within an owner scope
func (r *GormIncomeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.IncomeRecord{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts income records for an owner
func (r *GormIncomeRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter finance.IncomeFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&finance.IncomeRecord{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormIncomeRepository) applyFilter(query *gorm.DB, filter finance.IncomeFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, IncomeSortFields, "received_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormIncomeRepository) applyConditions(query *gorm.DB, filter finance.IncomeFilter) *gorm.DB {
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	if filter.FieldID != nil {
		query = query.Where("field_id = ?", *filter.FieldID)
	}
	if filter.FromDate != nil {
		query = query.Where("received_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("received_at <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormIncomeRepository implements IncomeRepository
var _ finance.IncomeRepository = (*GormIncomeRepository)(nil)
