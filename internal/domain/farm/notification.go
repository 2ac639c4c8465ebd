package farm

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// NotificationKind classifies what triggered a notification
type NotificationKind string

const (
	NotificationKindTaskReminder  NotificationKind = "TASK_REMINDER"
	NotificationKindWeatherAlert  NotificationKind = "WEATHER_ALERT"
	NotificationKindStreakWarning NotificationKind = "STREAK_WARNING"
	NotificationKindMissionBonus  NotificationKind = "MISSION_BONUS"
)

// IsValid checks if the kind is a valid NotificationKind
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationKindTaskReminder, NotificationKindWeatherAlert,
		NotificationKindStreakWarning, NotificationKindMissionBonus:
		return true
	}
	return false
}

// Notification is a row in the farmer's notification feed. The reminder
// scheduler writes these; the client polls and marks them read.
type Notification struct {
	shared.OwnedAggregateRoot
	TaskID  *uuid.UUID       `json:"task_id,omitempty"`
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	ReadAt  *time.Time       `json:"read_at,omitempty"`
}

// NewNotification creates a notification for an owner
func NewNotification(ownerID uuid.UUID, kind NotificationKind, title, message string) (*Notification, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Invalid notification kind")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot exceed 200 characters")
	}

	return &Notification{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Kind:               kind,
		Title:              title,
		Message:            message,
	}, nil
}

// AttachTask links the notification to the task that triggered it
func (n *Notification) AttachTask(taskID uuid.UUID) {
	n.TaskID = &taskID
	n.UpdatedAt = time.Now()
}

// MarkRead marks the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	if n.ReadAt != nil {
		return
	}
	now := time.Now()
	n.ReadAt = &now
	n.UpdatedAt = now
}

// IsRead reports whether the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
