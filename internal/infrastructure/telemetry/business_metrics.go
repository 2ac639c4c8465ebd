// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the platform.
// It tracks marketplace checkout activity, farm journal volume, and
// gamification progress.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderPlacedTotal      *Counter
	orderAmountTotal      *Counter
	checkoutRejectedTotal *Counter
	harvestRecordedTotal  *Counter
	voiceIntentTotal      *Counter
	missionCompletedTotal *Counter
	streakResetTotal      *Counter

	// Gauge metrics (point-in-time values)
	openListingsCount  *Gauge
	activeStreaksCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	marketplaceProvider MarketplaceMetricsProvider
}

// MarketplaceMetricsProvider provides marketplace and gamification data for
// periodic metrics collection. The interface keeps the telemetry layer from
// depending on the domain repositories directly.
type MarketplaceMetricsProvider interface {
	// CountOpenListings returns the number of listings currently open for sale
	CountOpenListings(ctx context.Context) (int64, error)

	// CountActiveStreaks returns the number of streaks touched within the grace window
	CountActiveStreaks(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter               metric.Meter
	Logger              *zap.Logger
	CollectInterval     time.Duration // Default: 5 minutes
	MarketplaceProvider MarketplaceMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:               cfg.Meter,
		logger:              logger,
		stopChan:            make(chan struct{}),
		marketplaceProvider: cfg.MarketplaceProvider,
	}

	// Initialize counter metrics
	var err error

	// Marketplace metrics
	bm.orderPlacedTotal, err = NewCounter(
		cfg.Meter,
		"agrihub_order_placed_total",
		"Total number of marketplace orders placed",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderAmountTotal, err = NewCounter(
		cfg.Meter,
		"agrihub_order_amount_total",
		"Total order amount in minor currency units (cents)",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.checkoutRejectedTotal, err = NewCounter(
		cfg.Meter,
		"agrihub_checkout_rejected_total",
		"Total number of checkout attempts rejected",
		"{checkouts}",
	)
	if err != nil {
		return nil, err
	}

	// Farm journal metrics
	bm.harvestRecordedTotal, err = NewCounter(
		cfg.Meter,
		"agrihub_harvest_recorded_total",
		"Total number of harvest records created",
		"{harvests}",
	)
	if err != nil {
		return nil, err
	}

	// Voice assistant metrics
	bm.voiceIntentTotal, err = NewCounter(
		cfg.Meter,
		"agrihub_voice_intent_total",
		"Total number of voice transcripts parsed into intents",
		"{intents}",
	)
	if err != nil {
		return nil, err
	}

	// Gamification metrics
	bm.missionCompletedTotal, err = NewCounter(
		cfg.Meter,
		"agrihub_mission_completed_total",
		"Total number of missions completed",
		"{missions}",
	)
	if err != nil {
		return nil, err
	}

	bm.streakResetTotal, err = NewCounter(
		cfg.Meter,
		"agrihub_streak_reset_total",
		"Total number of activity streaks reset by the expiry sweep",
		"{streaks}",
	)
	if err != nil {
		return nil, err
	}

	// Gauge metrics
	bm.openListingsCount, err = NewGauge(
		cfg.Meter,
		"agrihub_marketplace_open_listings",
		"Number of listings currently open for sale",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	bm.activeStreaksCount, err = NewGauge(
		cfg.Meter,
		"agrihub_active_streaks",
		"Number of activity streaks inside the grace window",
		"{streaks}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Marketplace Metrics
// =============================================================================

// CheckoutRejectReason labels why a checkout attempt was rejected.
type CheckoutRejectReason string

const (
	CheckoutRejectInsufficientStock CheckoutRejectReason = "insufficient_stock"
	CheckoutRejectListingClosed     CheckoutRejectReason = "listing_closed"
	CheckoutRejectValidation        CheckoutRejectReason = "validation"
)

// RecordOrderPlaced records a successful checkout.
// Amount is recorded in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordOrderPlaced(ctx context.Context, cropType, currency string, amount decimal.Decimal) {
	bm.orderPlacedTotal.Inc(ctx,
		AttrCropType.String(cropType),
		AttrCurrency.String(currency),
	)

	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.orderAmountTotal.Add(ctx, amountCents,
		AttrCropType.String(cropType),
		AttrCurrency.String(currency),
	)
}

// RecordCheckoutRejected records a checkout attempt that was turned away.
func (bm *BusinessMetrics) RecordCheckoutRejected(ctx context.Context, reason CheckoutRejectReason) {
	bm.checkoutRejectedTotal.Inc(ctx,
		AttrCheckoutReason.String(string(reason)),
	)
}

// =============================================================================
// Farm Journal Metrics
// =============================================================================

// RecordHarvest records a harvest journal entry.
func (bm *BusinessMetrics) RecordHarvest(ctx context.Context, cropType string) {
	bm.harvestRecordedTotal.Inc(ctx,
		AttrCropType.String(cropType),
	)
}

// =============================================================================
// Voice Assistant Metrics
// =============================================================================

// RecordVoiceIntent records a parsed voice intent, labeled by the resolved
// intent type and whether the remote model or the keyword fallback produced it.
func (bm *BusinessMetrics) RecordVoiceIntent(ctx context.Context, intentType, source string) {
	bm.voiceIntentTotal.Inc(ctx,
		AttrIntentType.String(intentType),
		AttrIntentSource.String(source),
	)
}

// =============================================================================
// Gamification Metrics
// =============================================================================

// RecordMissionCompleted records a mission completion.
func (bm *BusinessMetrics) RecordMissionCompleted(ctx context.Context, missionCode string) {
	bm.missionCompletedTotal.Inc(ctx,
		AttrMissionCode.String(missionCode),
	)
}

// RecordStreakReset records a streak broken by the expiry sweep.
func (bm *BusinessMetrics) RecordStreakReset(ctx context.Context) {
	bm.streakResetTotal.Inc(ctx)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects marketplace metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectGaugeMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectGaugeMetrics(ctx)
		}
	}
}

// collectGaugeMetrics collects the point-in-time gauge metrics.
func (bm *BusinessMetrics) collectGaugeMetrics(ctx context.Context) {
	if bm.marketplaceProvider == nil {
		bm.logger.Debug("No marketplace provider configured, skipping gauge collection")
		return
	}

	openListings, err := bm.marketplaceProvider.CountOpenListings(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count open listings", zap.Error(err))
	} else {
		bm.openListingsCount.Record(ctx, openListings)
	}

	activeStreaks, err := bm.marketplaceProvider.CountActiveStreaks(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count active streaks", zap.Error(err))
	} else {
		bm.activeStreaksCount.Record(ctx, activeStreaks)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	AttrCheckoutReason = attribute.Key("checkout_reject_reason")
)
