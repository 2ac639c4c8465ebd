package farm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/shared"
)

// TaskService handles farm task operations
type TaskService struct {
	taskRepo  farm.FarmTaskRepository
	fieldRepo farm.FieldRepository
	eventBus  shared.EventPublisher
	logger    *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo farm.FarmTaskRepository,
	fieldRepo farm.FieldRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		fieldRepo: fieldRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Create creates a new task
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	priority := farm.TaskPriority(req.Priority)
	if req.Priority == "" {
		priority = farm.TaskPriorityMedium
	}

	task, err := farm.NewFarmTask(ownerID, req.Title, farm.TaskCategory(req.Category), priority)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.DueAt != nil || req.Reminder {
		if err := task.Update(req.Title, req.Description, task.Category, task.Priority, req.DueAt, req.Reminder); err != nil {
			return nil, err
		}
	}

	if req.FieldID != nil {
		// The field must exist and belong to the same farmer
		if _, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, *req.FieldID); err != nil {
			return nil, shared.NewDomainError("INVALID_FIELD", "Field not found")
		}
		task.AttachField(*req.FieldID)
	}

	if req.Source != "" {
		task.SetSource(req.Source)
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, task)
	return ToTaskResponse(task), nil
}

// GetByID retrieves a task owned by the farmer
func (s *TaskService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToTaskResponse(task), nil
}

// List retrieves the farmer's tasks
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, filter TaskListFilter) ([]TaskResponse, int64, error) {
	domainFilter := farm.FarmTaskFilter{Filter: buildFilter(filter.Page, filter.PageSize, filter.SortBy, filter.SortDesc)}

	if filter.Status != "" {
		status := farm.TaskStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Category != "" {
		category := farm.TaskCategory(filter.Category)
		if !category.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Unknown task category")
		}
		domainFilter.Category = &category
	}
	if filter.Priority != "" {
		priority := farm.TaskPriority(filter.Priority)
		if !priority.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_PRIORITY", "Unknown task priority")
		}
		domainFilter.Priority = &priority
	}
	domainFilter.FieldID = filter.FieldID
	domainFilter.Overdue = filter.Overdue

	tasks, err := s.taskRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.taskRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *ToTaskResponse(&tasks[i])
	}
	return responses, total, nil
}

// Update edits a task
func (s *TaskService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := task.Update(req.Title, req.Description, farm.TaskCategory(req.Category), farm.TaskPriority(req.Priority), req.DueAt, req.Reminder); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	return ToTaskResponse(task), nil
}

// Complete marks a task done
func (s *TaskService) Complete(ctx context.Context, ownerID, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := task.Complete(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, task)
	return ToTaskResponse(task), nil
}

// Reopen moves a completed task back to pending
func (s *TaskService) Reopen(ctx context.Context, ownerID, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := task.Reopen(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	return ToTaskResponse(task), nil
}

// Delete soft deletes a task
func (s *TaskService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.taskRepo.DeleteForOwner(ctx, ownerID, id)
}

func (s *TaskService) publishEvents(ctx context.Context, task *farm.FarmTask) {
	if s.eventBus == nil {
		return
	}
	for _, event := range task.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	task.ClearDomainEvents()
}
