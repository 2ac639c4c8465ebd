package farm

import (
	"time"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldCreatedEvent is raised when a new field is created
type FieldCreatedEvent struct {
	shared.BaseDomainEvent
	FieldID      uuid.UUID       `json:"field_id"`
	Name         string          `json:"name"`
	CropType     string          `json:"crop_type"`
	AreaHectares decimal.Decimal `json:"area_hectares"`
	Season       string          `json:"season"`
}

// EventType returns the event type name
func (e *FieldCreatedEvent) EventType() string {
	return "FieldCreated"
}

// NewFieldCreatedEvent creates a new FieldCreatedEvent
func NewFieldCreatedEvent(field *Field) *FieldCreatedEvent {
	return &FieldCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FieldCreated", "Field", field.ID, field.OwnerID),
		FieldID:         field.ID,
		Name:            field.Name,
		CropType:        field.CropType,
		AreaHectares:    field.AreaHectares,
		Season:          field.Season,
	}
}

// FieldPlantedEvent is raised when planting is recorded on a field
type FieldPlantedEvent struct {
	shared.BaseDomainEvent
	FieldID   uuid.UUID `json:"field_id"`
	CropType  string    `json:"crop_type"`
	Season    string    `json:"season"`
	PlantedAt time.Time `json:"planted_at"`
}

// EventType returns the event type name
func (e *FieldPlantedEvent) EventType() string {
	return "FieldPlanted"
}

// NewFieldPlantedEvent creates a new FieldPlantedEvent
func NewFieldPlantedEvent(field *Field) *FieldPlantedEvent {
	plantedAt := time.Now()
	if field.PlantedAt != nil {
		plantedAt = *field.PlantedAt
	}
	return &FieldPlantedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FieldPlanted", "Field", field.ID, field.OwnerID),
		FieldID:         field.ID,
		CropType:        field.CropType,
		Season:          field.Season,
		PlantedAt:       plantedAt,
	}
}

// FieldHarvestedEvent is raised when a field's season is closed by harvest
type FieldHarvestedEvent struct {
	shared.BaseDomainEvent
	FieldID  uuid.UUID `json:"field_id"`
	CropType string    `json:"crop_type"`
	Season   string    `json:"season"`
}

// EventType returns the event type name
func (e *FieldHarvestedEvent) EventType() string {
	return "FieldHarvested"
}

// NewFieldHarvestedEvent creates a new FieldHarvestedEvent
func NewFieldHarvestedEvent(field *Field) *FieldHarvestedEvent {
	return &FieldHarvestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FieldHarvested", "Field", field.ID, field.OwnerID),
		FieldID:         field.ID,
		CropType:        field.CropType,
		Season:          field.Season,
	}
}
