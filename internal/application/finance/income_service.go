package finance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
)

// IncomeService handles income bookkeeping. Marketplace settlements are
// created by the settlement handler, not through this service.
type IncomeService struct {
	incomeRepo finance.IncomeRepository
	fieldRepo  farm.FieldRepository
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(
	incomeRepo finance.IncomeRepository,
	fieldRepo farm.FieldRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *IncomeService {
	return &IncomeService{
		incomeRepo: incomeRepo,
		fieldRepo:  fieldRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Record logs a new income entry
func (s *IncomeService) Record(ctx context.Context, ownerID uuid.UUID, req RecordIncomeRequest) (*IncomeResponse, error) {
	source := finance.IncomeSource(req.Source)
	if source == finance.IncomeSourceMarketplace {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Marketplace income is settled automatically on delivery")
	}

	record, err := finance.NewIncomeRecord(ownerID, source, req.Description, req.Amount, req.Currency, req.ReceivedAt)
	if err != nil {
		return nil, err
	}

	if req.FieldID != nil {
		if _, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, *req.FieldID); err != nil {
			return nil, shared.NewDomainError("INVALID_FIELD", "Field not found")
		}
		record.AttachField(*req.FieldID)
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	if err := s.incomeRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("income recorded",
		zap.String("income_id", record.ID.String()),
		zap.String("source", record.Source.String()),
		zap.String("amount", record.Amount.String()))

	s.publishEvents(ctx, record)

	return ToIncomeResponse(record), nil
}

// GetByID retrieves an income record
func (s *IncomeService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*IncomeResponse, error) {
	record, err := s.incomeRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToIncomeResponse(record), nil
}

// List retrieves income records with filtering and pagination
func (s *IncomeService) List(ctx context.Context, ownerID uuid.UUID, filter IncomeListFilter) ([]IncomeResponse, int64, error) {
	domainFilter := finance.IncomeFilter{
		FieldID:  filter.FieldID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "received_at"
	domainFilter.OrderDir = "desc"

	if filter.Source != "" {
		source := finance.IncomeSource(filter.Source)
		if !source.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_SOURCE", "Unknown income source")
		}
		domainFilter.Source = &source
	}

	records, err := s.incomeRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.incomeRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]IncomeResponse, len(records))
	for i := range records {
		responses[i] = *ToIncomeResponse(&records[i])
	}
	return responses, total, nil
}

// Update corrects an income record. Settlement records are immutable.
func (s *IncomeService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateIncomeRequest) (*IncomeResponse, error) {
	record, err := s.incomeRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := record.Update(finance.IncomeSource(req.Source), req.Description, req.Amount, req.ReceivedAt, req.Notes); err != nil {
		return nil, err
	}

	if err := s.incomeRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToIncomeResponse(record), nil
}

// Delete removes an income record
func (s *IncomeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	record, err := s.incomeRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if record.OrderID != nil {
		return shared.NewDomainError("INVALID_STATE", "Marketplace settlement records cannot be deleted")
	}
	return s.incomeRepo.DeleteForOwner(ctx, ownerID, id)
}

func (s *IncomeService) publishEvents(ctx context.Context, record *finance.IncomeRecord) {
	if s.eventBus == nil {
		return
	}
	for _, event := range record.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	record.ClearDomainEvents()
}
