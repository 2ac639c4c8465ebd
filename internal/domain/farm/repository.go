package farm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// FieldFilter defines filtering options for field queries
type FieldFilter struct {
	shared.Filter
	CropType *string
	Season   *string
	Status   *FieldStatus
	Search   *string // matches name or crop type
}

// FieldRepository defines the interface for field persistence
type FieldRepository interface {
	// FindByID finds a field by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Field, error)

	// FindByIDForOwner finds a field by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Field, error)

	// FindAllForOwner finds all fields for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter FieldFilter) ([]Field, error)

	// FindActiveForOwner finds fields currently planted or growing
	FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]Field, error)

	// Save creates or updates a field
	Save(ctx context.Context, field *Field) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, field *Field) error

	// DeleteForOwner soft deletes a field for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts fields for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter FieldFilter) (int64, error)
}

// FarmTaskFilter defines filtering options for task queries
type FarmTaskFilter struct {
	shared.Filter
	Status   *TaskStatus
	Category *TaskCategory
	Priority *TaskPriority
	FieldID  *uuid.UUID
	DueFrom  *time.Time
	DueTo    *time.Time
	Overdue  *bool
	Source   *string
}

// FarmTaskRepository defines the interface for farm task persistence
type FarmTaskRepository interface {
	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FarmTask, error)

	// FindByIDForOwner finds a task by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*FarmTask, error)

	// FindAllForOwner finds all tasks for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter FarmTaskFilter) ([]FarmTask, error)

	// FindPendingDueBefore finds pending tasks with a due date before the cutoff,
	// across all owners. Used by the reminder scheduler.
	FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]FarmTask, error)

	// Save creates or updates a task
	Save(ctx context.Context, task *FarmTask) error

	// DeleteForOwner soft deletes a task for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts tasks for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter FarmTaskFilter) (int64, error)
}

// HarvestFilter defines filtering options for harvest queries
type HarvestFilter struct {
	shared.Filter
	FieldID  *uuid.UUID
	CropType *string
	Grade    *HarvestGrade
	FromDate *time.Time
	ToDate   *time.Time
}

// HarvestRepository defines the interface for harvest record persistence
type HarvestRepository interface {
	// FindByID finds a harvest record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Harvest, error)

	// FindByIDForOwner finds a harvest record by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Harvest, error)

	// FindAllForOwner finds all harvest records for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter HarvestFilter) ([]Harvest, error)

	// FindByField finds harvest records for a specific field
	FindByField(ctx context.Context, ownerID, fieldID uuid.UUID, filter HarvestFilter) ([]Harvest, error)

	// SumQuantityByCrop sums harvested quantity in kilograms per crop type
	// for an owner within the given time range.
	SumQuantityByCrop(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]string, error)

	// Save creates or updates a harvest record
	Save(ctx context.Context, harvest *Harvest) error

	// RecordWithDepositTx atomically persists a new harvest record and
	// deposits its quantity into the storage bin. The deposit is guarded
	// against the bin's remaining capacity; exceeding it fails with
	// ErrBinCapacityExceeded and nothing is written.
	RecordWithDepositTx(ctx context.Context, harvest *Harvest, bin *StorageBin) error

	// DeleteForOwner soft deletes a harvest record for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts harvest records for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter HarvestFilter) (int64, error)
}

// StorageBinFilter defines filtering options for storage bin queries
type StorageBinFilter struct {
	shared.Filter
	ProduceType *string
	Search      *string
}

// StorageBinRepository defines the interface for storage bin persistence
type StorageBinRepository interface {
	// FindByID finds a storage bin by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StorageBin, error)

	// FindByIDForOwner finds a storage bin by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*StorageBin, error)

	// FindAllForOwner finds all storage bins for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter StorageBinFilter) ([]StorageBin, error)

	// Save creates or updates a storage bin
	Save(ctx context.Context, bin *StorageBin) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, bin *StorageBin) error

	// DeleteForOwner soft deletes a storage bin for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts storage bins for an owner
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter StorageBinFilter) (int64, error)
}

// NotificationFilter defines filtering options for notification queries
type NotificationFilter struct {
	shared.Filter
	Kind   *NotificationKind
	Unread *bool
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// FindByIDForOwner finds a notification by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Notification, error)

	// FindAllForOwner finds notifications for an owner, newest first
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter NotificationFilter) ([]Notification, error)

	// ExistsForTask reports whether a notification of the given kind already
	// exists for a task. Keeps the reminder sweep from duplicating rows.
	ExistsForTask(ctx context.Context, taskID uuid.UUID, kind NotificationKind) (bool, error)

	// Save creates or updates a notification
	Save(ctx context.Context, notification *Notification) error

	// CountUnreadForOwner counts unread notifications for an owner
	CountUnreadForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
