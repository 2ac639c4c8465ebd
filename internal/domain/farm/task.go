package farm

import (
	"fmt"
	"time"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskPriority represents the urgency of a farm task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// IsValid checks if the priority is a valid TaskPriority
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskStatus represents the completion state of a farm task
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "PENDING"
	TaskStatusDone    TaskStatus = "DONE"
)

// TaskCategory classifies what kind of work the task is
type TaskCategory string

const (
	TaskCategoryPlanting    TaskCategory = "PLANTING"
	TaskCategoryIrrigation  TaskCategory = "IRRIGATION"
	TaskCategoryFertilizing TaskCategory = "FERTILIZING"
	TaskCategorySpraying    TaskCategory = "SPRAYING"
	TaskCategoryHarvesting  TaskCategory = "HARVESTING"
	TaskCategoryGeneral     TaskCategory = "GENERAL"
)

// IsValid checks if the category is a valid TaskCategory
func (c TaskCategory) IsValid() bool {
	switch c {
	case TaskCategoryPlanting, TaskCategoryIrrigation, TaskCategoryFertilizing,
		TaskCategorySpraying, TaskCategoryHarvesting, TaskCategoryGeneral:
		return true
	}
	return false
}

// FarmTask represents a to-do item aggregate root.
// Tasks can be created manually, by voice command, or by the weather
// reminder job.
type FarmTask struct {
	shared.OwnedAggregateRoot
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	FieldID     *uuid.UUID   `json:"field_id"`
	DueAt       *time.Time   `json:"due_at"`
	Reminder    bool         `json:"reminder"`
	CompletedAt *time.Time   `json:"completed_at"`
	Source      string       `json:"source"` // manual, voice, weather
}

// NewFarmTask creates a new pending task
func NewFarmTask(ownerID uuid.UUID, title string, category TaskCategory, priority TaskPriority) (*FarmTask, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot exceed 200 characters")
	}
	if !category.IsValid() {
		category = TaskCategoryGeneral
	}
	if !priority.IsValid() {
		priority = TaskPriorityMedium
	}

	task := &FarmTask{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Title:              title,
		Category:           category,
		Priority:           priority,
		Status:             TaskStatusPending,
		Source:             "manual",
	}

	task.AddDomainEvent(NewTaskCreatedEvent(task))

	return task, nil
}

// Update updates the task details
func (t *FarmTask) Update(title, description string, category TaskCategory, priority TaskPriority, dueAt *time.Time, reminder bool) error {
	if t.Status == TaskStatusDone {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a completed task")
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Task category is not valid")
	}
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Task priority is not valid")
	}

	t.Title = title
	t.Description = description
	t.Category = category
	t.Priority = priority
	t.DueAt = dueAt
	t.Reminder = reminder
	t.UpdatedAt = time.Now()

	return nil
}

// AttachField links the task to a field
func (t *FarmTask) AttachField(fieldID uuid.UUID) {
	t.FieldID = &fieldID
	t.UpdatedAt = time.Now()
}

// SetSource records how the task was created (manual, voice, weather)
func (t *FarmTask) SetSource(source string) {
	t.Source = source
	t.UpdatedAt = time.Now()
}

// Complete marks the task as done
func (t *FarmTask) Complete() error {
	if t.Status == TaskStatusDone {
		return shared.NewDomainError("INVALID_STATE", "Task is already completed")
	}

	now := time.Now()
	t.Status = TaskStatusDone
	t.CompletedAt = &now
	t.UpdatedAt = now

	t.AddDomainEvent(NewTaskCompletedEvent(t))

	return nil
}

// Reopen moves a completed task back to pending
func (t *FarmTask) Reopen() error {
	if t.Status != TaskStatusDone {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reopen task in %s status", t.Status))
	}

	t.Status = TaskStatusPending
	t.CompletedAt = nil
	t.UpdatedAt = time.Now()

	return nil
}

// IsOverdue returns true if the task has a due date in the past and is pending
func (t *FarmTask) IsOverdue(now time.Time) bool {
	return t.Status == TaskStatusPending && t.DueAt != nil && t.DueAt.Before(now)
}
