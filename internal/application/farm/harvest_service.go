package farm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
)

// HarvestService handles harvest recording and yield analytics
type HarvestService struct {
	harvestRepo farm.HarvestRepository
	fieldRepo   farm.FieldRepository
	binRepo     farm.StorageBinRepository
	expenseRepo finance.ExpenseRepository
	incomeRepo  finance.IncomeRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewHarvestService creates a new HarvestService. The finance repositories
// are optional; when nil the summary reports zero costs and income.
func NewHarvestService(
	harvestRepo farm.HarvestRepository,
	fieldRepo farm.FieldRepository,
	binRepo farm.StorageBinRepository,
	expenseRepo finance.ExpenseRepository,
	incomeRepo finance.IncomeRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *HarvestService {
	return &HarvestService{
		harvestRepo: harvestRepo,
		fieldRepo:   fieldRepo,
		binRepo:     binRepo,
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Record creates a harvest record. When a storage bin is given the record
// and the bin deposit are committed in one transaction, so a full bin
// rejects the whole operation.
func (s *HarvestService) Record(ctx context.Context, ownerID uuid.UUID, req RecordHarvestRequest) (*HarvestResponse, error) {
	field, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, req.FieldID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_FIELD", "Field not found")
		}
		return nil, err
	}
	if !field.Status.CanHarvest() {
		return nil, shared.NewDomainError("FIELD_NOT_HARVESTABLE", "Field must be planted or growing to record a harvest")
	}

	cropType := req.CropType
	if cropType == "" {
		cropType = field.CropType
	}

	harvest, err := farm.NewHarvest(ownerID, field.ID, cropType, req.QuantityKg, farm.HarvestGrade(req.Grade), req.HarvestedAt)
	if err != nil {
		return nil, err
	}
	if req.PhotoURLs != "" {
		harvest.SetPhotoURLs(req.PhotoURLs)
	}
	if req.Notes != "" {
		harvest.SetNotes(req.Notes)
	}

	if req.StorageBinID != nil {
		bin, err := s.binRepo.FindByIDForOwner(ctx, ownerID, *req.StorageBinID)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("INVALID_BIN", "Storage bin not found")
			}
			return nil, err
		}
		if err := bin.Deposit(req.QuantityKg); err != nil {
			return nil, err
		}
		harvest.AssignStorageBin(bin.ID)

		if err := s.harvestRepo.RecordWithDepositTx(ctx, harvest, bin); err != nil {
			return nil, err
		}
	} else {
		if err := s.harvestRepo.Save(ctx, harvest); err != nil {
			return nil, err
		}
	}

	s.logger.Info("harvest recorded",
		zap.String("harvest_id", harvest.ID.String()),
		zap.String("field_id", field.ID.String()),
		zap.String("crop_type", harvest.CropType),
		zap.String("quantity_kg", harvest.QuantityKg.String()))

	s.publishEvents(ctx, harvest)

	return ToHarvestResponse(harvest), nil
}

// GetByID retrieves a harvest record
func (s *HarvestService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*HarvestResponse, error) {
	harvest, err := s.harvestRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToHarvestResponse(harvest), nil
}

// List retrieves harvest records with filtering and pagination
func (s *HarvestService) List(ctx context.Context, ownerID uuid.UUID, filter HarvestListFilter) ([]HarvestResponse, int64, error) {
	domainFilter := farm.HarvestFilter{
		Filter:   buildFilter(filter.Page, filter.PageSize, "harvested_at", true),
		FieldID:  filter.FieldID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	if filter.CropType != "" {
		domainFilter.CropType = &filter.CropType
	}
	if filter.Grade != "" {
		grade := farm.HarvestGrade(filter.Grade)
		if !grade.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_GRADE", "Invalid harvest grade filter")
		}
		domainFilter.Grade = &grade
	}

	harvests, err := s.harvestRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.harvestRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]HarvestResponse, len(harvests))
	for i := range harvests {
		responses[i] = *ToHarvestResponse(&harvests[i])
	}
	return responses, total, nil
}

// Update corrects quantity, grade and notes on an existing record.
// Corrections do not touch bin levels; bins are adjusted explicitly.
func (s *HarvestService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateHarvestRequest) (*HarvestResponse, error) {
	harvest, err := s.harvestRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := harvest.Update(req.QuantityKg, farm.HarvestGrade(req.Grade), req.Notes); err != nil {
		return nil, err
	}
	if err := s.harvestRepo.Save(ctx, harvest); err != nil {
		return nil, err
	}
	return ToHarvestResponse(harvest), nil
}

// Delete removes a harvest record
func (s *HarvestService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.harvestRepo.DeleteForOwner(ctx, ownerID, id)
}

// Summary aggregates yields, active area and recorded finances for the
// given time range.
func (s *HarvestService) Summary(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*HarvestSummary, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Summary range end must be after start")
	}

	byCropRaw, err := s.harvestRepo.SumQuantityByCrop(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &HarvestSummary{
		From:   from,
		To:     to,
		ByCrop: make(map[string]decimal.Decimal, len(byCropRaw)),
	}
	for crop, raw := range byCropRaw {
		qty, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		summary.ByCrop[crop] = qty
		summary.TotalKg = summary.TotalKg.Add(qty)
	}

	activeFields, err := s.fieldRepo.FindActiveForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range activeFields {
		summary.ActiveAreaHa = summary.ActiveAreaHa.Add(activeFields[i].AreaHectares)
	}
	if summary.ActiveAreaHa.IsPositive() {
		summary.YieldPerHa = summary.TotalKg.DivRound(summary.ActiveAreaHa, 2)
	}

	if s.expenseRepo != nil {
		costs, err := s.expenseRepo.SumForOwner(ctx, ownerID, from, to)
		if err != nil {
			return nil, err
		}
		summary.RecordedCosts = costs
	}
	if s.incomeRepo != nil {
		income, err := s.incomeRepo.SumForOwner(ctx, ownerID, from, to)
		if err != nil {
			return nil, err
		}
		summary.RecordedIncome = income
	}
	summary.Margin = summary.RecordedIncome.Sub(summary.RecordedCosts)

	return summary, nil
}

func (s *HarvestService) publishEvents(ctx context.Context, harvest *farm.Harvest) {
	if s.eventBus == nil {
		return
	}
	for _, event := range harvest.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	harvest.ClearDomainEvents()
}
