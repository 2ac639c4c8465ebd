package farm

import (
	"time"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskCreatedEvent is raised when a new farm task is created
type TaskCreatedEvent struct {
	shared.BaseDomainEvent
	TaskID   uuid.UUID    `json:"task_id"`
	Title    string       `json:"title"`
	Category TaskCategory `json:"category"`
	Priority TaskPriority `json:"priority"`
}

// EventType returns the event type name
func (e *TaskCreatedEvent) EventType() string {
	return "FarmTaskCreated"
}

// NewTaskCreatedEvent creates a new TaskCreatedEvent
func NewTaskCreatedEvent(task *FarmTask) *TaskCreatedEvent {
	return &TaskCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FarmTaskCreated", "FarmTask", task.ID, task.OwnerID),
		TaskID:          task.ID,
		Title:           task.Title,
		Category:        task.Category,
		Priority:        task.Priority,
	}
}

// TaskCompletedEvent is raised when a farm task is completed
type TaskCompletedEvent struct {
	shared.BaseDomainEvent
	TaskID      uuid.UUID    `json:"task_id"`
	Title       string       `json:"title"`
	Category    TaskCategory `json:"category"`
	CompletedAt time.Time    `json:"completed_at"`
}

// EventType returns the event type name
func (e *TaskCompletedEvent) EventType() string {
	return "FarmTaskCompleted"
}

// NewTaskCompletedEvent creates a new TaskCompletedEvent
func NewTaskCompletedEvent(task *FarmTask) *TaskCompletedEvent {
	completedAt := time.Now()
	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}
	return &TaskCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FarmTaskCompleted", "FarmTask", task.ID, task.OwnerID),
		TaskID:          task.ID,
		Title:           task.Title,
		Category:        task.Category,
		CompletedAt:     completedAt,
	}
}
