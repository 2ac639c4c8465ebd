package finance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
)

// SettlementHandler turns delivered marketplace orders into income
// records for the seller. Replayed events are detected through the
// order link, so handling is idempotent.
type SettlementHandler struct {
	incomeRepo finance.IncomeRepository
	logger     *zap.Logger
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(incomeRepo finance.IncomeRepository, logger *zap.Logger) *SettlementHandler {
	return &SettlementHandler{incomeRepo: incomeRepo, logger: logger}
}

// EventTypes returns the handled event types
func (h *SettlementHandler) EventTypes() []string {
	return []string{"OrderDelivered"}
}

// Handle creates the settlement income record for a delivered order
func (h *SettlementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	delivered, ok := event.(*marketplace.OrderDeliveredEvent)
	if !ok {
		return nil
	}

	if existing, err := h.incomeRepo.FindByOrder(ctx, delivered.SellerID, delivered.OrderID); err == nil && existing != nil {
		h.logger.Debug("settlement already recorded",
			zap.String("order_id", delivered.OrderID.String()))
		return nil
	} else if err != nil && err != shared.ErrNotFound {
		return err
	}

	record, err := finance.NewIncomeRecord(
		delivered.SellerID,
		finance.IncomeSourceMarketplace,
		fmt.Sprintf("Marketplace order %s", delivered.OrderNumber),
		delivered.TotalAmount,
		delivered.Currency,
		time.Now(),
	)
	if err != nil {
		return err
	}
	record.AttachOrder(delivered.OrderID)
	record.ClearDomainEvents()

	if err := h.incomeRepo.Save(ctx, record); err != nil {
		return err
	}

	h.logger.Info("marketplace order settled",
		zap.String("order_id", delivered.OrderID.String()),
		zap.String("seller_id", delivered.SellerID.String()),
		zap.String("amount", delivered.TotalAmount.String()))

	return nil
}
