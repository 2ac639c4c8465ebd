package persistence

import (
	"context"
	"errors"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByIDForOwner finds a notification by ID scoped to an owner
func (r *GormNotificationRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*farm.Notification, error) {
	var notification farm.Notification
	if err := r.db.WithContext(ctx).First(&notification, "owner_id = ? AND id = ?", ownerID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// FindAllForOwner finds notifications for an owner, newest first
func (r *GormNotificationRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter farm.NotificationFilter) ([]farm.Notification, error) {
	var notifications []farm.Notification
	query := r.db.WithContext(ctx).
		Model(&farm.Notification{}).
		Where("owner_id = ?", ownerID)

	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Unread != nil {
		if *filter.Unread {
			query = query.Where("read_at IS NULL")
		} else {
			query = query.Where("read_at IS NOT NULL")
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	} else {
		query = query.Limit(50)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// ExistsForTask reports whether a notification of the kind exists for a task
func (r *GormNotificationRepository) ExistsForTask(ctx context.Context, taskID uuid.UUID, kind farm.NotificationKind) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&farm.Notification{}).
		Where("task_id = ? AND kind = ?", taskID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, notification *farm.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

// CountUnreadForOwner counts unread notifications for an owner
func (r *GormNotificationRepository) CountUnreadForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&farm.Notification{}).
		Where("owner_id = ? AND read_at IS NULL", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ farm.NotificationRepository = (*GormNotificationRepository)(nil)
