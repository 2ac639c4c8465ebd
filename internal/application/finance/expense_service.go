package finance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
)

// ExpenseService handles expense bookkeeping
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	fieldRepo   farm.FieldRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	fieldRepo farm.FieldRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		fieldRepo:   fieldRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Record logs a new expense. The stored total is quantity * unit price
// regardless of what the client sends.
func (s *ExpenseService) Record(ctx context.Context, ownerID uuid.UUID, req RecordExpenseRequest) (*ExpenseResponse, error) {
	record, err := finance.NewExpenseRecord(
		ownerID,
		finance.ExpenseCategory(req.Category),
		req.Description,
		req.Quantity,
		req.Unit,
		req.UnitPrice,
		req.Currency,
		req.IncurredAt,
	)
	if err != nil {
		return nil, err
	}

	if req.FieldID != nil {
		if _, err := s.fieldRepo.FindByIDForOwner(ctx, ownerID, *req.FieldID); err != nil {
			return nil, shared.NewDomainError("INVALID_FIELD", "Field not found")
		}
		record.AttachField(*req.FieldID)
	}
	if req.ReceiptURL != "" {
		record.SetReceiptURL(req.ReceiptURL)
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	if err := s.expenseRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("expense_id", record.ID.String()),
		zap.String("category", record.Category.String()),
		zap.String("total", record.Total.String()))

	s.publishEvents(ctx, record)

	return ToExpenseResponse(record), nil
}

// GetByID retrieves an expense record
func (s *ExpenseService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*ExpenseResponse, error) {
	record, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToExpenseResponse(record), nil
}

// List retrieves expense records with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, ownerID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := finance.ExpenseFilter{
		FieldID:  filter.FieldID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "incurred_at"
	domainFilter.OrderDir = "desc"

	if filter.Category != "" {
		category := finance.ExpenseCategory(filter.Category)
		if !category.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
		}
		domainFilter.Category = &category
	}

	records, err := s.expenseRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(records))
	for i := range records {
		responses[i] = *ToExpenseResponse(&records[i])
	}
	return responses, total, nil
}

// Update corrects an expense record; the total is recomputed
func (s *ExpenseService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	record, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := record.Update(
		finance.ExpenseCategory(req.Category),
		req.Description,
		req.Quantity,
		req.Unit,
		req.UnitPrice,
		req.IncurredAt,
		req.Notes,
	); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToExpenseResponse(record), nil
}

// Delete removes an expense record
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.expenseRepo.DeleteForOwner(ctx, ownerID, id)
}

func (s *ExpenseService) publishEvents(ctx context.Context, record *finance.ExpenseRecord) {
	if s.eventBus == nil {
		return
	}
	for _, event := range record.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	record.ClearDomainEvents()
}
