package farm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
)

// NotificationService exposes the owner's notification feed
type NotificationService struct {
	notificationRepo farm.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo farm.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, logger: logger}
}

// List retrieves notifications for an owner, newest first
func (s *NotificationService) List(ctx context.Context, ownerID uuid.UUID, unreadOnly bool, page, pageSize int) ([]NotificationResponse, error) {
	filter := farm.NotificationFilter{
		Filter: buildFilter(page, pageSize, "created_at", true),
	}
	if unreadOnly {
		unread := true
		filter.Unread = &unread
	}

	notifications, err := s.notificationRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *ToNotificationResponse(&notifications[i])
	}
	return responses, nil
}

// MarkRead marks a notification as read. Idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, ownerID, id uuid.UUID) (*NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !notification.IsRead() {
		notification.MarkRead()
		if err := s.notificationRepo.Save(ctx, notification); err != nil {
			return nil, err
		}
	}
	return ToNotificationResponse(notification), nil
}

// UnreadCount returns the number of unread notifications for an owner
func (s *NotificationService) UnreadCount(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnreadForOwner(ctx, ownerID)
}
