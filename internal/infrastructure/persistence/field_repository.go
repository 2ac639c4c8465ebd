package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFieldRepository implements FieldRepository using GORM
type GormFieldRepository struct {
	db *gorm.DB
}

// NewGormFieldRepository creates a new GormFieldRepository
func NewGormFieldRepository(db *gorm.DB) *GormFieldRepository {
	return &GormFieldRepository{db: db}
}

// FindByID finds a field by its ID
func (r *GormFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.Field, error) {
	var field farm.Field
	if err := r.db.WithContext(ctx).First(&field, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &field, nil
}

// FindByIDForOwner finds a field by ID scoped to an owner
func (r *GormFieldRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*farm.Field, error) {
	var field farm.Field
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&field).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &field, nil
}

// FindAllForOwner finds all fields for an owner with filtering
func (r *GormFieldRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.FieldFilter) ([]farm.Field, error) {
	var fields []farm.Field
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&farm.Field{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// FindActiveForOwner finds fields currently planted or growing
func (r *GormFieldRepository) FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]farm.Field, error) {
	var fields []farm.Field
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status IN ?", ownerID, []farm.FieldStatus{farm.FieldStatusPlanted, farm.FieldStatusGrowing}).
		Order("planted_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// Save creates or updates a field
func (r *GormFieldRepository) Save(ctx context.Context, field *farm.Field) error {
	return r.db.WithContext(ctx).Save(field).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormFieldRepository) SaveWithLock(ctx context.Context, field *farm.Field) error {
	result := r.db.WithContext(ctx).
		Model(field).
		Where("id = ? AND version = ?", field.ID, field.Version-1).
		Updates(map[string]interface{}{
			"name":                field.Name,
			"crop_type":           field.CropType,
			"area_hectares":       field.AreaHectares,
			"season":              field.Season,
			"status":              field.Status,
			"planted_at":          field.PlantedAt,
			"expected_harvest_at": field.ExpectedHarvestAt,
			"location":            field.Location,
			"notes":               field.Notes,
			"version":             field.Version,
			"updated_at":          field.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Field was modified by another transaction")
	}
	return nil
}

// DeleteForOwner deletes a field within an owner scope
func (r *GormFieldRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.Field{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts fields for an owner
func (r *GormFieldRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.FieldFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&farm.Field{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormFieldRepository) applyFilter(query *gorm.DB, filter farm.FieldFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, FieldSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormFieldRepository) applyConditions(query *gorm.DB, filter farm.FieldFilter) *gorm.DB {
	if filter.CropType != nil {
		query = query.Where("crop_type = ?", *filter.CropType)
	}
	if filter.Season != nil {
		query = query.Where("season = ?", *filter.Season)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("name ILIKE ? OR crop_type ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormFieldRepository implements FieldRepository
var _ farm.FieldRepository = (*GormFieldRepository)(nil)

// GormFarmTaskRepository implements FarmTaskRepository using GORM
type GormFarmTaskRepository struct {
	db *gorm.DB
}

// NewGormFarmTaskRepository creates a new GormFarmTaskRepository
func NewGormFarmTaskRepository(db *gorm.DB) *GormFarmTaskRepository {
	return &GormFarmTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormFarmTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.FarmTask, error) {
	var task farm.FarmTask
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindByIDForOwner finds a task by ID scoped to an owner
func (r *GormFarmTaskRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*farm.FarmTask, error) {
	var task farm.FarmTask
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindAllForOwner finds all tasks for an owner with filtering
func (r *GormFarmTaskRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.FarmTaskFilter) ([]farm.FarmTask, error) {
	var tasks []farm.FarmTask
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&farm.FarmTask{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindPendingDueBefore finds pending tasks with a due date before the cutoff,
// across all owners. Used by the reminder scheduler.
func (r *GormFarmTaskRepository) FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]farm.FarmTask, error) {
	var tasks []farm.FarmTask
	query := r.db.WithContext(ctx).
		Where("status = ? AND reminder = ? AND due_at IS NOT NULL AND due_at <= ?", farm.TaskStatusPending, true, cutoff).
		Order("due_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save creates or updates a task
func (r *GormFarmTaskRepository) Save(ctx context.Context, task *farm.FarmTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// DeleteForOwner deletes a task within an owner scope
func (r *GormFarmTaskRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.FarmTask{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts tasks for an owner
func (r *GormFarmTaskRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.FarmTaskFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&farm.FarmTask{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormFarmTaskRepository) applyFilter(query *gorm.DB, filter farm.FarmTaskFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, FarmTaskSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormFarmTaskRepository) applyConditions(query *gorm.DB, filter farm.FarmTaskFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.FieldID != nil {
		query = query.Where("field_id = ?", *filter.FieldID)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_at >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_at <= ?", *filter.DueTo)
	}
	if filter.Overdue != nil && *filter.Overdue {
		query = query.Where("status = ? AND due_at < ?", farm.TaskStatusPending, time.Now())
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	return query
}

// Ensure GormFarmTaskRepository implements FarmTaskRepository
var _ farm.FarmTaskRepository = (*GormFarmTaskRepository)(nil)
