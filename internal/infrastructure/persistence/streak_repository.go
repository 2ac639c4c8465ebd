package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStreakRepository implements StreakRepository using GORM
type GormStreakRepository struct {
	db *gorm.DB
}

// NewGormStreakRepository creates a new GormStreakRepository
func NewGormStreakRepository(db *gorm.DB) *GormStreakRepository {
	return &GormStreakRepository{db: db}
}

// FindForOwner finds a farmer's streak
func (r *GormStreakRepository) FindForOwner(ctx context.Context, ownerID uuid.UUID) (*gamification.Streak, error) {
	var streak gamification.Streak
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &streak, nil
}

// FindBrokenBefore finds streaks whose recovery window elapsed before
// the cutoff. A run with grace spent breaks after one missed day; a
// run with grace available gets a second day before it breaks.
func (r *GormStreakRepository) FindBrokenBefore(ctx context.Context, cutoff time.Time, limit int) ([]gamification.Streak, error) {
	var streaks []gamification.Streak
	query := r.db.WithContext(ctx).
		Where("current_count > 0 AND last_active_day IS NOT NULL").
		Where(
			"(grace_used = ? AND last_active_day < ?) OR (grace_used = ? AND last_active_day < ?)",
			true, cutoff.Add(-24*time.Hour),
			false, cutoff.Add(-48*time.Hour),
		).
		Order("last_active_day ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&streaks).Error; err != nil {
		return nil, err
	}
	return streaks, nil
}

// Save creates or updates a streak
func (r *GormStreakRepository) Save(ctx context.Context, streak *gamification.Streak) error {
	return r.db.WithContext(ctx).Save(streak).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStreakRepository) SaveWithLock(ctx context.Context, streak *gamification.Streak) error {
	result := r.db.WithContext(ctx).
		Model(streak).
		Where("id = ? AND version = ?", streak.ID, streak.Version-1).
		Updates(map[string]interface{}{
			"current_count":   streak.CurrentCount,
			"longest_count":   streak.LongestCount,
			"last_active_day": streak.LastActiveDay,
			"grace_used":      streak.GraceUsed,
			"version":         streak.Version,
			"updated_at":      streak.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Streak was modified by another transaction")
	}
	return nil
}

// Ensure GormStreakRepository implements StreakRepository
var _ gamification.StreakRepository = (*GormStreakRepository)(nil)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindForOwner finds a farmer's XP profile
func (r *GormProfileRepository) FindForOwner(ctx context.Context, ownerID uuid.UUID) (*gamification.Profile, error) {
	var profile gamification.Profile
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// TopByXP returns the highest-XP farmers with their ranks
func (r *GormProfileRepository) TopByXP(ctx context.Context, limit int) ([]gamification.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	var entries []gamification.LeaderboardEntry
	if err := r.db.WithContext(ctx).
		Table("profiles").
		Select(`profiles.owner_id,
			COALESCE(users.display_name, users.username) as nickname,
			profiles.xp,
			profiles.level,
			RANK() OVER (ORDER BY profiles.xp DESC) as rank`).
		Joins("LEFT JOIN users ON users.id = profiles.owner_id").
		Order("profiles.xp DESC").
		Limit(limit).
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// RankForOwner returns a farmer's leaderboard position
func (r *GormProfileRepository) RankForOwner(ctx context.Context, ownerID uuid.UUID) (*gamification.LeaderboardEntry, error) {
	var entry gamification.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("(?) as ranked", r.db.
			Table("profiles").
			Select(`profiles.owner_id,
				COALESCE(users.display_name, users.username) as nickname,
				profiles.xp,
				profiles.level,
				RANK() OVER (ORDER BY profiles.xp DESC) as rank`).
			Joins("LEFT JOIN users ON users.id = profiles.owner_id")).
		Where("ranked.owner_id = ?", ownerID).
		Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.OwnerID == uuid.Nil {
		return nil, shared.ErrNotFound
	}
	return &entry, nil
}

// Save creates or updates a profile
func (r *GormProfileRepository) Save(ctx context.Context, profile *gamification.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormProfileRepository) SaveWithLock(ctx context.Context, profile *gamification.Profile) error {
	result := r.db.WithContext(ctx).
		Model(profile).
		Where("id = ? AND version = ?", profile.ID, profile.Version-1).
		Updates(map[string]interface{}{
			"xp":         profile.XP,
			"level":      profile.Level,
			"version":    profile.Version,
			"updated_at": profile.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Profile was modified by another transaction")
	}
	return nil
}

// Ensure GormProfileRepository implements ProfileRepository
var _ gamification.ProfileRepository = (*GormProfileRepository)(nil)
