package marketplace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/marketplace"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/agrihub/backend/internal/infrastructure/telemetry"
)

// checkoutKeyTTL is how long a replayed Idempotency-Key is rejected
const checkoutKeyTTL = 24 * time.Hour

// OrderService handles checkout and the order status machine
type OrderService struct {
	orderRepo   marketplace.OrderRepository
	listingRepo marketplace.ListingRepository
	idempotency shared.IdempotencyStore
	metrics     *telemetry.BusinessMetrics
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService. The idempotency store and
// metrics are optional.
func NewOrderService(
	orderRepo marketplace.OrderRepository,
	listingRepo marketplace.ListingRepository,
	idempotency shared.IdempotencyStore,
	metrics *telemetry.BusinessMetrics,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		idempotency: idempotency,
		metrics:     metrics,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Checkout places an order against a listing. The stock reservation and
// the order row are committed in one transaction; a concurrent checkout
// that would oversell loses with ErrInsufficientStock.
func (s *OrderService) Checkout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	if req.IdempotencyKey != "" && s.idempotency != nil {
		key := fmt.Sprintf("checkout:%s:%s", buyerID, req.IdempotencyKey)
		fresh, err := s.idempotency.MarkProcessed(ctx, key, checkoutKeyTTL)
		if err != nil {
			s.logger.Warn("idempotency store unavailable, continuing without replay protection", zap.Error(err))
		} else if !fresh {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "This checkout was already processed")
		}
	}

	listing, err := s.listingRepo.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != marketplace.ListingStatusActive {
		s.recordRejection(ctx, telemetry.CheckoutRejectListingClosed)
		return nil, shared.NewDomainError("LISTING_NOT_ACTIVE", "Listing is not open for orders")
	}
	if req.QuantityKg.GreaterThan(listing.QuantityKg) {
		s.recordRejection(ctx, telemetry.CheckoutRejectInsufficientStock)
		return nil, shared.ErrInsufficientStock
	}

	order, err := marketplace.NewOrder(buyerID, generateOrderNumber(), listing, req.QuantityKg, req.DeliveryAddress)
	if err != nil {
		s.recordRejection(ctx, telemetry.CheckoutRejectValidation)
		return nil, err
	}
	order.BuyerNote = req.BuyerNote

	if err := s.orderRepo.CheckoutTx(ctx, order, listing); err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			s.recordRejection(ctx, telemetry.CheckoutRejectInsufficientStock)
		}
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("listing_id", listing.ID.String()),
		zap.String("total_amount", order.TotalAmount.String()))

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(ctx, listing.CropType, order.Currency, order.TotalAmount)
	}
	s.publishEvents(ctx, order)

	return ToOrderResponse(order), nil
}

// GetByID retrieves an order visible to the buyer or the seller
func (s *OrderService) GetByID(ctx context.Context, userID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForParticipant(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ListPurchases retrieves orders placed by the buyer
func (s *OrderService) ListPurchases(ctx context.Context, buyerID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter, err := buildOrderFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.orderRepo.FindAllForBuyer(ctx, buyerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForBuyer(ctx, buyerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// ListSales retrieves orders received by the seller
func (s *OrderService) ListSales(ctx context.Context, sellerID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter, err := buildOrderFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.orderRepo.FindAllForSeller(ctx, sellerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForSeller(ctx, sellerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// Confirm marks the order accepted; seller only
func (s *OrderService) Confirm(ctx context.Context, sellerID, id uuid.UUID) (*OrderResponse, error) {
	return s.sellerTransition(ctx, sellerID, id, (*marketplace.Order).Confirm)
}

// Ship marks the order handed to transport; seller only
func (s *OrderService) Ship(ctx context.Context, sellerID, id uuid.UUID) (*OrderResponse, error) {
	return s.sellerTransition(ctx, sellerID, id, (*marketplace.Order).Ship)
}

// Deliver marks the order received; buyer only. Raises the settlement
// event for the seller's books.
func (s *OrderService) Deliver(ctx context.Context, buyerID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForParticipant(ctx, buyerID, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID() != buyerID {
		return nil, shared.ErrForbidden
	}

	if err := order.Deliver(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	return ToOrderResponse(order), nil
}

// Cancel cancels a pending or confirmed order. Either party may cancel;
// the reserved quantity goes back to the listing in the same
// transaction.
func (s *OrderService) Cancel(ctx context.Context, userID, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForParticipant(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.FindByID(ctx, order.ListingID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.CancelTx(ctx, order, listing); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", order.ID.String()),
		zap.String("cancelled_by", userID.String()))

	s.publishEvents(ctx, order)
	return ToOrderResponse(order), nil
}

func (s *OrderService) sellerTransition(ctx context.Context, sellerID, id uuid.UUID, fn func(*marketplace.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForParticipant(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, shared.ErrForbidden
	}

	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	return ToOrderResponse(order), nil
}

func (s *OrderService) recordRejection(ctx context.Context, reason telemetry.CheckoutRejectReason) {
	if s.metrics != nil {
		s.metrics.RecordCheckoutRejected(ctx, reason)
	}
}

func (s *OrderService) publishEvents(ctx context.Context, order *marketplace.Order) {
	if s.eventBus == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}

// generateOrderNumber builds a number like ORD-20260829-7F3A2C1B
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

func buildOrderFilter(filter OrderListFilter) (marketplace.OrderFilter, error) {
	domainFilter := marketplace.OrderFilter{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "created_at"
	domainFilter.OrderDir = "desc"

	if filter.Status != "" {
		status := marketplace.OrderStatus(filter.Status)
		if !status.IsValid() {
			return domainFilter, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		domainFilter.Status = &status
	}
	return domainFilter, nil
}

func toOrderResponses(orders []marketplace.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses
}
