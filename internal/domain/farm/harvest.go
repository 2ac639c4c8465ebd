package farm

import (
	"time"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HarvestGrade represents the quality grade assigned to a harvest
type HarvestGrade string

const (
	HarvestGradeA HarvestGrade = "A"
	HarvestGradeB HarvestGrade = "B"
	HarvestGradeC HarvestGrade = "C"
)

// IsValid checks if the grade is a valid HarvestGrade
func (g HarvestGrade) IsValid() bool {
	switch g {
	case HarvestGradeA, HarvestGradeB, HarvestGradeC:
		return true
	}
	return false
}

// Harvest represents a recorded harvest aggregate root.
// A harvest belongs to a field; depositing into a storage bin is done by
// the application service so the bin quantity moves in the same
// transaction as the record.
type Harvest struct {
	shared.OwnedAggregateRoot
	FieldID      uuid.UUID       `json:"field_id"`
	CropType     string          `json:"crop_type"`
	QuantityKg   decimal.Decimal `json:"quantity_kg"`
	Grade        HarvestGrade    `json:"grade"`
	HarvestedAt  time.Time       `json:"harvested_at"`
	StorageBinID *uuid.UUID      `json:"storage_bin_id"`
	PhotoURLs    string          `json:"photo_urls"` // JSON array of evidence photo URLs
	Notes        string          `json:"notes"`
}

// NewHarvest creates a new harvest record
func NewHarvest(ownerID, fieldID uuid.UUID, cropType string, quantityKg decimal.Decimal, grade HarvestGrade, harvestedAt time.Time) (*Harvest, error) {
	if fieldID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FIELD", "Harvest must reference a field")
	}
	if cropType == "" {
		return nil, shared.NewDomainError("INVALID_CROP", "Crop type cannot be empty")
	}
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Harvest quantity must be positive")
	}
	if !grade.IsValid() {
		return nil, shared.NewDomainError("INVALID_GRADE", "Harvest grade must be A, B or C")
	}
	if harvestedAt.After(time.Now().Add(24 * time.Hour)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Harvest date cannot be in the future")
	}

	harvest := &Harvest{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		FieldID:            fieldID,
		CropType:           cropType,
		QuantityKg:         quantityKg,
		Grade:              grade,
		HarvestedAt:        harvestedAt,
	}

	harvest.AddDomainEvent(NewHarvestRecordedEvent(harvest))

	return harvest, nil
}

// AssignStorageBin records which bin the harvest was deposited into
func (h *Harvest) AssignStorageBin(binID uuid.UUID) {
	h.StorageBinID = &binID
	h.UpdatedAt = time.Now()
}

// SetPhotoURLs sets the evidence photo URLs (JSON array)
func (h *Harvest) SetPhotoURLs(urls string) {
	h.PhotoURLs = urls
	h.UpdatedAt = time.Now()
}

// SetNotes sets free-form notes
func (h *Harvest) SetNotes(notes string) {
	h.Notes = notes
	h.UpdatedAt = time.Now()
}

// Update corrects quantity and grade on an existing record
func (h *Harvest) Update(quantityKg decimal.Decimal, grade HarvestGrade, notes string) error {
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Harvest quantity must be positive")
	}
	if !grade.IsValid() {
		return shared.NewDomainError("INVALID_GRADE", "Harvest grade must be A, B or C")
	}

	h.QuantityKg = quantityKg
	h.Grade = grade
	h.Notes = notes
	h.UpdatedAt = time.Now()

	return nil
}
