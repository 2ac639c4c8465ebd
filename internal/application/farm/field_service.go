package farm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/shared"
)

// FieldService handles field lifecycle operations
type FieldService struct {
	fieldRepo farm.FieldRepository
	eventBus  shared.EventPublisher
	logger    *zap.Logger
}

// NewFieldService creates a new FieldService
func NewFieldService(fieldRepo farm.FieldRepository, eventBus shared.EventPublisher, logger *zap.Logger) *FieldService {
	return &FieldService{
		fieldRepo: fieldRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Create creates a new field for the farmer
func (s *FieldService) Create(ctx context.Context, ownerID uuid.UUID, req CreateFieldRequest) (*FieldResponse, error) {
	field, err := farm.NewField(ownerID, req.Name, req.CropType, req.AreaHectares, req.Season)
	if err != nil {
		return nil, err
	}

	if req.Location != "" || req.Notes != "" {
		if err := field.Update(req.Name, req.CropType, req.AreaHectares, req.Location, req.Notes); err != nil {
			return nil, err
		}
	}

	if req.PlantedAt != nil {
		if err := field.RecordPlanting(*req.PlantedAt, req.ExpectedHarvestAt); err != nil {
			return nil, err
		}
	}

	if err := s.fieldRepo.Save(ctx, field); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, field)

	s.logger.Info("Field created",
		zap.String("field_id", field.ID.String()),
		zap.String("crop_type", field.CropType))

	return ToFieldResponse(field), nil
}

// GetByID retrieves a field owned by the farmer
func (s *FieldService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*FieldResponse, error) {
	field, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToFieldResponse(field), nil
}

// List retrieves the farmer's fields
func (s *FieldService) List(ctx context.Context, ownerID uuid.UUID, filter FieldListFilter) ([]FieldResponse, int64, error) {
	domainFilter := farm.FieldFilter{Filter: buildFilter(filter.Page, filter.PageSize, filter.SortBy, filter.SortDesc)}

	if filter.CropType != "" {
		domainFilter.CropType = &filter.CropType
	}
	if filter.Season != "" {
		domainFilter.Season = &filter.Season
	}
	if filter.Status != "" {
		status := farm.FieldStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown field status")
		}
		domainFilter.Status = &status
	}
	if filter.Search != "" {
		domainFilter.Search = &filter.Search
	}

	fields, err := s.fieldRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.fieldRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]FieldResponse, len(fields))
	for i := range fields {
		responses[i] = *ToFieldResponse(&fields[i])
	}
	return responses, total, nil
}

// Update edits a field's descriptive attributes
func (s *FieldService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateFieldRequest) (*FieldResponse, error) {
	field, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := field.Update(req.Name, req.CropType, req.AreaHectares, req.Location, req.Notes); err != nil {
		return nil, err
	}

	if err := s.fieldRepo.SaveWithLock(ctx, field); err != nil {
		return nil, err
	}

	return ToFieldResponse(field), nil
}

// RecordPlanting moves a field to PLANTED
func (s *FieldService) RecordPlanting(ctx context.Context, ownerID, id uuid.UUID, req RecordPlantingRequest) (*FieldResponse, error) {
	field, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := field.RecordPlanting(req.PlantedAt, req.ExpectedHarvestAt); err != nil {
		return nil, err
	}

	if err := s.fieldRepo.SaveWithLock(ctx, field); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, field)
	return ToFieldResponse(field), nil
}

// MarkGrowing moves a field to GROWING
func (s *FieldService) MarkGrowing(ctx context.Context, ownerID, id uuid.UUID) (*FieldResponse, error) {
	return s.transition(ctx, ownerID, id, (*farm.Field).MarkGrowing)
}

// MarkHarvested moves a field to HARVESTED
func (s *FieldService) MarkHarvested(ctx context.Context, ownerID, id uuid.UUID) (*FieldResponse, error) {
	return s.transition(ctx, ownerID, id, (*farm.Field).MarkHarvested)
}

// MarkFallow moves a field to FALLOW
func (s *FieldService) MarkFallow(ctx context.Context, ownerID, id uuid.UUID) (*FieldResponse, error) {
	return s.transition(ctx, ownerID, id, (*farm.Field).MarkFallow)
}

// StartSeason rolls a field into a new season and crop
func (s *FieldService) StartSeason(ctx context.Context, ownerID, id uuid.UUID, req StartSeasonRequest) (*FieldResponse, error) {
	field, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := field.StartNewSeason(req.Season, req.CropType); err != nil {
		return nil, err
	}

	if err := s.fieldRepo.SaveWithLock(ctx, field); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, field)
	return ToFieldResponse(field), nil
}

// Delete soft deletes a field
func (s *FieldService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.fieldRepo.DeleteForOwner(ctx, ownerID, id)
}

// transition applies a status-machine method and persists the result
func (s *FieldService) transition(ctx context.Context, ownerID, id uuid.UUID, fn func(*farm.Field) error) (*FieldResponse, error) {
	field, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := fn(field); err != nil {
		return nil, err
	}

	if err := s.fieldRepo.SaveWithLock(ctx, field); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, field)
	return ToFieldResponse(field), nil
}

func (s *FieldService) publishEvents(ctx context.Context, field *farm.Field) {
	if s.eventBus == nil {
		return
	}
	for _, event := range field.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	field.ClearDomainEvents()
}

// buildFilter assembles the common pagination and sorting options
func buildFilter(page, pageSize int, sortBy string, sortDesc bool) shared.Filter {
	f := shared.Filter{}
	if page > 0 && pageSize > 0 {
		f.Page = page
		f.PageSize = pageSize
	}
	if sortBy != "" {
		f.OrderBy = sortBy
		if sortDesc {
			f.OrderDir = "desc"
		} else {
			f.OrderDir = "asc"
		}
	}
	return f
}
