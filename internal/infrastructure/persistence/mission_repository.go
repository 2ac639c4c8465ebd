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

// GormMissionRepository implements MissionRepository using GORM
type GormMissionRepository struct {
	db *gorm.DB
}

// NewGormMissionRepository creates a new GormMissionRepository
func NewGormMissionRepository(db *gorm.DB) *GormMissionRepository {
	return &GormMissionRepository{db: db}
}

// FindByID finds a mission with its steps
func (r *GormMissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*gamification.Mission, error) {
	var mission gamification.Mission
	if err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		First(&mission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mission, nil
}

// FindByCode finds a mission by its stable code
func (r *GormMissionRepository) FindByCode(ctx context.Context, code string) (*gamification.Mission, error) {
	var mission gamification.Mission
	if err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Where("code = ?", code).
		First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mission, nil
}

// FindAll finds mission definitions with filtering
func (r *GormMissionRepository) FindAll(ctx context.Context, filter gamification.MissionFilter) ([]gamification.Mission, error) {
	var missions []gamification.Mission
	query := r.db.WithContext(ctx).Model(&gamification.Mission{}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") })

	if filter.InSeasonAt != nil {
		at := *filter.InSeasonAt
		query = query.Where(
			"(season_start IS NULL OR season_start <= ?) AND (season_end IS NULL OR season_end >= ?)",
			at, at,
		)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at ASC")

	if err := query.Find(&missions).Error; err != nil {
		return nil, err
	}
	return missions, nil
}

// FindByActivityKey finds missions that have a step bound to the given
// activity keyword. The activity event handler uses this to
// auto-complete steps.
func (r *GormMissionRepository) FindByActivityKey(ctx context.Context, activityKey string) ([]gamification.Mission, error) {
	var missions []gamification.Mission
	if err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Where("id IN (?)", r.db.Model(&gamification.MissionStep{}).
			Select("mission_id").
			Where("activity_key = ?", activityKey)).
		Find(&missions).Error; err != nil {
		return nil, err
	}
	return missions, nil
}

// Save creates or updates a mission and its steps
func (r *GormMissionRepository) Save(ctx context.Context, mission *gamification.Mission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Steps").Save(mission).Error; err != nil {
			return err
		}

		currentStepIDs := make([]uuid.UUID, len(mission.Steps))
		for i, step := range mission.Steps {
			currentStepIDs[i] = step.ID
		}

		if len(currentStepIDs) > 0 {
			if err := tx.Where("mission_id = ? AND id NOT IN ?", mission.ID, currentStepIDs).
				Delete(&gamification.MissionStep{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("mission_id = ?", mission.ID).
				Delete(&gamification.MissionStep{}).Error; err != nil {
				return err
			}
		}

		for i := range mission.Steps {
			mission.Steps[i].MissionID = mission.ID
			if err := tx.Save(&mission.Steps[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a mission definition and its steps
func (r *GormMissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mission_id = ?", id).Delete(&gamification.MissionStep{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&gamification.Mission{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormMissionRepository implements MissionRepository
var _ gamification.MissionRepository = (*GormMissionRepository)(nil)

// GormProgressRepository implements ProgressRepository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GormProgressRepository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// FindByID finds a progress record by its ID
func (r *GormProgressRepository) FindByID(ctx context.Context, id uuid.UUID) (*gamification.MissionProgress, error) {
	var progress gamification.MissionProgress
	if err := r.db.WithContext(ctx).First(&progress, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// FindForOwnerAndMission finds a farmer's attempt at a mission
func (r *GormProgressRepository) FindForOwnerAndMission(ctx context.Context, ownerID, missionID uuid.UUID) (*gamification.MissionProgress, error) {
	var progress gamification.MissionProgress
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND mission_id = ?", ownerID, missionID).
		First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// FindAllForOwner finds a farmer's mission attempts
func (r *GormProgressRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter gamification.ProgressFilter) ([]gamification.MissionProgress, error) {
	var records []gamification.MissionProgress
	query := r.db.WithContext(ctx).Model(&gamification.MissionProgress{}).Where("owner_id = ?", ownerID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("started_at DESC")

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindActiveForOwner finds a farmer's in-flight attempts
func (r *GormProgressRepository) FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]gamification.MissionProgress, error) {
	var records []gamification.MissionProgress
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, gamification.ProgressStatusActive).
		Order("started_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindWithExpiredBonus finds completed attempts whose bonus window has
// passed. The bonus expiry sweep processes them in batches.
func (r *GormProgressRepository) FindWithExpiredBonus(ctx context.Context, asOf time.Time, limit int) ([]gamification.MissionProgress, error) {
	var records []gamification.MissionProgress
	query := r.db.WithContext(ctx).
		Where("status = ? AND bonus_expires_at IS NOT NULL AND bonus_expires_at <= ?", gamification.ProgressStatusCompleted, asOf).
		Order("bonus_expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a progress record
func (r *GormProgressRepository) Save(ctx context.Context, progress *gamification.MissionProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormProgressRepository) SaveWithLock(ctx context.Context, progress *gamification.MissionProgress) error {
	result := r.db.WithContext(ctx).
		Model(progress).
		Where("id = ? AND version = ?", progress.ID, progress.Version-1).
		Updates(map[string]interface{}{
			"status":           progress.Status,
			"completed_steps":  progress.CompletedSteps,
			"total_steps":      progress.TotalSteps,
			"completed_at":     progress.CompletedAt,
			"bonus_expires_at": progress.BonusExpiresAt,
			"xp_awarded":       progress.XPAwarded,
			"version":          progress.Version,
			"updated_at":       progress.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Mission progress was modified by another transaction")
	}
	return nil
}

// Ensure GormProgressRepository implements ProgressRepository
var _ gamification.ProgressRepository = (*GormProgressRepository)(nil)
