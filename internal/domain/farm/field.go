package farm

import (
	"fmt"
	"time"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldStatus represents the cultivation status of a field
type FieldStatus string

const (
	FieldStatusPreparing FieldStatus = "PREPARING" // Soil preparation, not yet planted
	FieldStatusPlanted   FieldStatus = "PLANTED"   // Seeds/seedlings in the ground
	FieldStatusGrowing   FieldStatus = "GROWING"   // Crop established and growing
	FieldStatusHarvested FieldStatus = "HARVESTED" // Harvest complete for the season
	FieldStatusFallow    FieldStatus = "FALLOW"    // Resting between seasons
)

// IsValid checks if the status is a valid FieldStatus
func (s FieldStatus) IsValid() bool {
	switch s {
	case FieldStatusPreparing, FieldStatusPlanted, FieldStatusGrowing,
		FieldStatusHarvested, FieldStatusFallow:
		return true
	}
	return false
}

// String returns the string representation of FieldStatus
func (s FieldStatus) String() string {
	return string(s)
}

// CanPlant returns true if planting can be recorded in this status
func (s FieldStatus) CanPlant() bool {
	return s == FieldStatusPreparing || s == FieldStatusFallow
}

// CanHarvest returns true if a harvest can be recorded in this status
func (s FieldStatus) CanHarvest() bool {
	return s == FieldStatusPlanted || s == FieldStatusGrowing
}

// Field represents a cultivated plot aggregate root.
// A field tracks one crop per season; replanting moves it back through
// PREPARING -> PLANTED.
type Field struct {
	shared.OwnedAggregateRoot
	Name              string          `json:"name"`
	CropType          string          `json:"crop_type"`
	AreaHectares      decimal.Decimal `json:"area_hectares"`
	Season            string          `json:"season"` // e.g. "2026-wet", "2026-dry"
	Status            FieldStatus     `json:"status"`
	PlantedAt         *time.Time      `json:"planted_at"`
	ExpectedHarvestAt *time.Time      `json:"expected_harvest_at"`
	Location          string          `json:"location"`
	Notes             string          `json:"notes"`
}

// NewField creates a new field in PREPARING status
func NewField(ownerID uuid.UUID, name, cropType string, areaHectares decimal.Decimal, season string) (*Field, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Field name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Field name cannot exceed 100 characters")
	}
	if cropType == "" {
		return nil, shared.NewDomainError("INVALID_CROP", "Crop type cannot be empty")
	}
	if areaHectares.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AREA", "Field area must be positive")
	}
	if season == "" {
		return nil, shared.NewDomainError("INVALID_SEASON", "Season cannot be empty")
	}

	field := &Field{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		CropType:           cropType,
		AreaHectares:       areaHectares,
		Season:             season,
		Status:             FieldStatusPreparing,
	}

	field.AddDomainEvent(NewFieldCreatedEvent(field))

	return field, nil
}

// Update updates the field details
func (f *Field) Update(name, cropType string, areaHectares decimal.Decimal, location, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Field name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Field name cannot exceed 100 characters")
	}
	if cropType == "" {
		return shared.NewDomainError("INVALID_CROP", "Crop type cannot be empty")
	}
	if areaHectares.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AREA", "Field area must be positive")
	}

	f.Name = name
	f.CropType = cropType
	f.AreaHectares = areaHectares
	f.Location = location
	f.Notes = notes
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// RecordPlanting marks the field as planted
func (f *Field) RecordPlanting(plantedAt time.Time, expectedHarvestAt *time.Time) error {
	if !f.Status.CanPlant() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot plant field in %s status", f.Status))
	}
	if expectedHarvestAt != nil && expectedHarvestAt.Before(plantedAt) {
		return shared.NewDomainError("INVALID_DATE", "Expected harvest date cannot be before planting date")
	}

	f.Status = FieldStatusPlanted
	f.PlantedAt = &plantedAt
	f.ExpectedHarvestAt = expectedHarvestAt
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	f.AddDomainEvent(NewFieldPlantedEvent(f))

	return nil
}

// MarkGrowing transitions the field from planted to growing
func (f *Field) MarkGrowing() error {
	if f.Status != FieldStatusPlanted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark field growing in %s status", f.Status))
	}

	f.Status = FieldStatusGrowing
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// MarkHarvested marks the field's season as harvested.
// Called when a harvest record closes out the field.
func (f *Field) MarkHarvested() error {
	if !f.Status.CanHarvest() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot harvest field in %s status", f.Status))
	}

	f.Status = FieldStatusHarvested
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	f.AddDomainEvent(NewFieldHarvestedEvent(f))

	return nil
}

// MarkFallow rests the field between seasons
func (f *Field) MarkFallow() error {
	if f.Status != FieldStatusHarvested && f.Status != FieldStatusPreparing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fallow field in %s status", f.Status))
	}

	f.Status = FieldStatusFallow
	f.PlantedAt = nil
	f.ExpectedHarvestAt = nil
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// StartNewSeason resets the field for a new season
func (f *Field) StartNewSeason(season, cropType string) error {
	if f.Status != FieldStatusHarvested && f.Status != FieldStatusFallow {
		return shared.NewDomainError("INVALID_STATE", "Can only start a new season after harvest or fallow")
	}
	if season == "" {
		return shared.NewDomainError("INVALID_SEASON", "Season cannot be empty")
	}
	if cropType == "" {
		return shared.NewDomainError("INVALID_CROP", "Crop type cannot be empty")
	}

	f.Season = season
	f.CropType = cropType
	f.Status = FieldStatusPreparing
	f.PlantedAt = nil
	f.ExpectedHarvestAt = nil
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// IsActive returns true if the field currently carries a crop
func (f *Field) IsActive() bool {
	return f.Status == FieldStatusPlanted || f.Status == FieldStatusGrowing
}
