package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/marketplace"
)

// GormMetricsReader serves the periodic gauge queries for business
// metrics. Read-only; never part of a request path.
type GormMetricsReader struct {
	db *gorm.DB
}

// NewGormMetricsReader creates a new GormMetricsReader
func NewGormMetricsReader(db *gorm.DB) *GormMetricsReader {
	return &GormMetricsReader{db: db}
}

// CountOpenListings returns the number of listings currently open for sale
func (r *GormMetricsReader) CountOpenListings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&marketplace.Listing{}).
		Where("status = ?", marketplace.ListingStatusActive).
		Count(&count).Error
	return count, err
}

// CountActiveStreaks returns the number of streaks still inside their
// recovery window. Mirrors the break condition the streak sweep uses.
func (r *GormMetricsReader) CountActiveStreaks(ctx context.Context) (int64, error) {
	now := time.Now()
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gamification.Streak{}).
		Where("current_count > 0 AND last_active_day IS NOT NULL").
		Where(
			"(grace_used = ? AND last_active_day >= ?) OR (grace_used = ? AND last_active_day >= ?)",
			true, now.Add(-24*time.Hour),
			false, now.Add(-48*time.Hour),
		).
		Count(&count).Error
	return count, err
}
