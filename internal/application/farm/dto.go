package farm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/farm"
)

// CreateFieldRequest contains input for field creation
type CreateFieldRequest struct {
	Name              string          `json:"name" binding:"required"`
	CropType          string          `json:"crop_type" binding:"required"`
	AreaHectares      decimal.Decimal `json:"area_hectares" binding:"required"`
	Season            string          `json:"season" binding:"required"`
	Location          string          `json:"location"`
	Notes             string          `json:"notes"`
	PlantedAt         *time.Time      `json:"planted_at"`
	ExpectedHarvestAt *time.Time      `json:"expected_harvest_at"`
}

// UpdateFieldRequest contains input for field updates
type UpdateFieldRequest struct {
	Name         string          `json:"name" binding:"required"`
	CropType     string          `json:"crop_type" binding:"required"`
	AreaHectares decimal.Decimal `json:"area_hectares" binding:"required"`
	Location     string          `json:"location"`
	Notes        string          `json:"notes"`
}

// RecordPlantingRequest marks a field planted
type RecordPlantingRequest struct {
	PlantedAt         time.Time  `json:"planted_at" binding:"required"`
	ExpectedHarvestAt *time.Time `json:"expected_harvest_at"`
}

// StartSeasonRequest rolls a field into a new season
type StartSeasonRequest struct {
	Season   string `json:"season" binding:"required"`
	CropType string `json:"crop_type" binding:"required"`
}

// FieldListFilter contains query options for listing fields
type FieldListFilter struct {
	CropType string `form:"crop_type"`
	Season   string `form:"season"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
	SortBy   string `form:"sort_by"`
	SortDesc bool   `form:"sort_desc"`
}

// FieldResponse is the client shape of a field
type FieldResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	CropType          string          `json:"crop_type"`
	AreaHectares      decimal.Decimal `json:"area_hectares"`
	Season            string          `json:"season"`
	Status            string          `json:"status"`
	Location          string          `json:"location,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	PlantedAt         *time.Time      `json:"planted_at,omitempty"`
	ExpectedHarvestAt *time.Time      `json:"expected_harvest_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToFieldResponse maps a field aggregate to its client shape
func ToFieldResponse(f *farm.Field) *FieldResponse {
	return &FieldResponse{
		ID:                f.ID,
		Name:              f.Name,
		CropType:          f.CropType,
		AreaHectares:      f.AreaHectares,
		Season:            f.Season,
		Status:            string(f.Status),
		Location:          f.Location,
		Notes:             f.Notes,
		PlantedAt:         f.PlantedAt,
		ExpectedHarvestAt: f.ExpectedHarvestAt,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

// CreateTaskRequest contains input for task creation
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" binding:"required"`
	Priority    string     `json:"priority"`
	FieldID     *uuid.UUID `json:"field_id"`
	DueAt       *time.Time `json:"due_at"`
	Reminder    bool       `json:"reminder"`
	Source      string     `json:"-"` // manual unless set by the voice dispatcher
}

// UpdateTaskRequest contains input for task updates
type UpdateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" binding:"required"`
	Priority    string     `json:"priority" binding:"required"`
	DueAt       *time.Time `json:"due_at"`
	Reminder    bool       `json:"reminder"`
}

// TaskListFilter contains query options for listing tasks
type TaskListFilter struct {
	Status   string     `form:"status"`
	Category string     `form:"category"`
	Priority string     `form:"priority"`
	FieldID  *uuid.UUID `form:"field_id"`
	Overdue  *bool      `form:"overdue"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,max=100"`
	SortBy   string     `form:"sort_by"`
	SortDesc bool       `form:"sort_desc"`
}

// TaskResponse is the client shape of a farm task
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	FieldID     *uuid.UUID `json:"field_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Reminder    bool       `json:"reminder"`
	Source      string     `json:"source,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToTaskResponse maps a task aggregate to its client shape
func ToTaskResponse(t *farm.FarmTask) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		FieldID:     t.FieldID,
		DueAt:       t.DueAt,
		Reminder:    t.Reminder,
		Source:      t.Source,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}

// CreateBinRequest contains input for storage bin creation
type CreateBinRequest struct {
	Name        string          `json:"name" binding:"required"`
	ProduceType string          `json:"produce_type" binding:"required"`
	CapacityKg  decimal.Decimal `json:"capacity_kg" binding:"required"`
	Location    string          `json:"location"`
}

// UpdateBinRequest contains input for storage bin updates
type UpdateBinRequest struct {
	Name        string          `json:"name" binding:"required"`
	ProduceType string          `json:"produce_type" binding:"required"`
	CapacityKg  decimal.Decimal `json:"capacity_kg" binding:"required"`
	Location    string          `json:"location"`
}

// BinMovementRequest deposits into or withdraws from a bin
type BinMovementRequest struct {
	QuantityKg decimal.Decimal `json:"quantity_kg" binding:"required"`
}

// BinResponse is the client shape of a storage bin
type BinResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	ProduceType string          `json:"produce_type"`
	CapacityKg  decimal.Decimal `json:"capacity_kg"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	FillRatio   decimal.Decimal `json:"fill_ratio"`
	Location    string          `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToBinResponse maps a storage bin aggregate to its client shape
func ToBinResponse(b *farm.StorageBin) *BinResponse {
	return &BinResponse{
		ID:          b.ID,
		Name:        b.Name,
		ProduceType: b.ProduceType,
		CapacityKg:  b.CapacityKg,
		QuantityKg:  b.CurrentKg,
		FillRatio:   b.FillRatio(),
		Location:    b.Location,
		CreatedAt:   b.CreatedAt,
	}
}

// RecordHarvestRequest contains input for recording a harvest
type RecordHarvestRequest struct {
	FieldID      uuid.UUID       `json:"field_id" binding:"required"`
	CropType     string          `json:"crop_type"`
	QuantityKg   decimal.Decimal `json:"quantity_kg" binding:"required"`
	Grade        string          `json:"grade" binding:"required"`
	HarvestedAt  time.Time       `json:"harvested_at" binding:"required"`
	StorageBinID *uuid.UUID      `json:"storage_bin_id"`
	PhotoURLs    string          `json:"photo_urls"`
	Notes        string          `json:"notes"`
}

// UpdateHarvestRequest corrects an existing harvest record
type UpdateHarvestRequest struct {
	QuantityKg decimal.Decimal `json:"quantity_kg" binding:"required"`
	Grade      string          `json:"grade" binding:"required"`
	Notes      string          `json:"notes"`
}

// HarvestListFilter contains query options for listing harvests
type HarvestListFilter struct {
	FieldID  *uuid.UUID `form:"field_id"`
	CropType string     `form:"crop_type"`
	Grade    string     `form:"grade"`
	FromDate *time.Time `form:"from" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,max=100"`
}

// HarvestResponse is the client shape of a harvest record
type HarvestResponse struct {
	ID           uuid.UUID       `json:"id"`
	FieldID      uuid.UUID       `json:"field_id"`
	CropType     string          `json:"crop_type"`
	QuantityKg   decimal.Decimal `json:"quantity_kg"`
	Grade        string          `json:"grade"`
	HarvestedAt  time.Time       `json:"harvested_at"`
	StorageBinID *uuid.UUID      `json:"storage_bin_id,omitempty"`
	PhotoURLs    string          `json:"photo_urls,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToHarvestResponse maps a harvest aggregate to its client shape
func ToHarvestResponse(h *farm.Harvest) *HarvestResponse {
	return &HarvestResponse{
		ID:           h.ID,
		FieldID:      h.FieldID,
		CropType:     h.CropType,
		QuantityKg:   h.QuantityKg,
		Grade:        string(h.Grade),
		HarvestedAt:  h.HarvestedAt,
		StorageBinID: h.StorageBinID,
		PhotoURLs:    h.PhotoURLs,
		Notes:        h.Notes,
		CreatedAt:    h.CreatedAt,
	}
}

// HarvestSummary aggregates harvest analytics for an owner
type HarvestSummary struct {
	From           time.Time                  `json:"from"`
	To             time.Time                  `json:"to"`
	TotalKg        decimal.Decimal            `json:"total_kg"`
	ByCrop         map[string]decimal.Decimal `json:"by_crop"`
	YieldPerHa     decimal.Decimal            `json:"yield_per_hectare"` // total kg over active area
	ActiveAreaHa   decimal.Decimal            `json:"active_area_hectares"`
	RecordedCosts  decimal.Decimal            `json:"recorded_costs"`
	RecordedIncome decimal.Decimal            `json:"recorded_income"`
	Margin         decimal.Decimal            `json:"margin"`
}

// NotificationResponse is the client shape of a notification
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	TaskID    *uuid.UUID `json:"task_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToNotificationResponse maps a notification to its client shape
func ToNotificationResponse(n *farm.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		TaskID:    n.TaskID,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
