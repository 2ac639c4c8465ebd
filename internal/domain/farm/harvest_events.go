package farm

import (
	"time"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HarvestRecordedEvent is raised when a harvest is recorded.
// Gamification subscribes to this to advance missions and touch streaks.
type HarvestRecordedEvent struct {
	shared.BaseDomainEvent
	HarvestID   uuid.UUID       `json:"harvest_id"`
	FieldID     uuid.UUID       `json:"field_id"`
	CropType    string          `json:"crop_type"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	Grade       HarvestGrade    `json:"grade"`
	HarvestedAt time.Time       `json:"harvested_at"`
}

// EventType returns the event type name
func (e *HarvestRecordedEvent) EventType() string {
	return "HarvestRecorded"
}

// NewHarvestRecordedEvent creates a new HarvestRecordedEvent
func NewHarvestRecordedEvent(harvest *Harvest) *HarvestRecordedEvent {
	return &HarvestRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("HarvestRecorded", "Harvest", harvest.ID, harvest.OwnerID),
		HarvestID:       harvest.ID,
		FieldID:         harvest.FieldID,
		CropType:        harvest.CropType,
		QuantityKg:      harvest.QuantityKg,
		Grade:           harvest.Grade,
		HarvestedAt:     harvest.HarvestedAt,
	}
}
