package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// MissionFilter defines filtering options for mission queries
type MissionFilter struct {
	shared.Filter
	InSeasonAt *time.Time
}

// MissionRepository defines the interface for mission definition persistence
type MissionRepository interface {
	// FindByID finds a mission with its steps
	FindByID(ctx context.Context, id uuid.UUID) (*Mission, error)

	// FindByCode finds a mission by its stable code
	FindByCode(ctx context.Context, code string) (*Mission, error)

	// FindAll finds mission definitions with filtering
	FindAll(ctx context.Context, filter MissionFilter) ([]Mission, error)

	// FindByActivityKey finds missions that have a step bound to the
	// given activity keyword. The activity event handler uses this to
	// auto-complete steps.
	FindByActivityKey(ctx context.Context, activityKey string) ([]Mission, error)

	// Save creates or updates a mission and its steps
	Save(ctx context.Context, mission *Mission) error

	// Delete removes a mission definition
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProgressFilter defines filtering options for progress queries
type ProgressFilter struct {
	shared.Filter
	Status *ProgressStatus
}

// ProgressRepository defines the interface for mission progress persistence
type ProgressRepository interface {
	// FindByID finds a progress record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MissionProgress, error)

	// FindForOwnerAndMission finds a farmer's attempt at a mission
	FindForOwnerAndMission(ctx context.Context, ownerID, missionID uuid.UUID) (*MissionProgress, error)

	// FindAllForOwner finds a farmer's mission attempts
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter ProgressFilter) ([]MissionProgress, error)

	// FindActiveForOwner finds a farmer's in-flight attempts
	FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]MissionProgress, error)

	// FindWithExpiredBonus finds completed attempts whose bonus window
	// has passed. The bonus expiry sweep processes them in batches.
	FindWithExpiredBonus(ctx context.Context, asOf time.Time, limit int) ([]MissionProgress, error)

	// Save creates or updates a progress record
	Save(ctx context.Context, progress *MissionProgress) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, progress *MissionProgress) error
}

// StreakRepository defines the interface for streak persistence
type StreakRepository interface {
	// FindForOwner finds a farmer's streak, shared.ErrNotFound when absent
	FindForOwner(ctx context.Context, ownerID uuid.UUID) (*Streak, error)

	// FindBrokenBefore finds streaks whose grace window elapsed before
	// the cutoff. The expiry sweep resets them.
	FindBrokenBefore(ctx context.Context, cutoff time.Time, limit int) ([]Streak, error)

	// Save creates or updates a streak
	Save(ctx context.Context, streak *Streak) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, streak *Streak) error
}

// LeaderboardEntry is a read model row for the XP leaderboard
type LeaderboardEntry struct {
	OwnerID  uuid.UUID `json:"owner_id"`
	Nickname string    `json:"nickname"`
	XP       int64     `json:"xp"`
	Level    int       `json:"level"`
	Rank     int64     `json:"rank"`
}

// ProfileRepository defines the interface for XP profile persistence
type ProfileRepository interface {
	// FindForOwner finds a farmer's profile, shared.ErrNotFound when absent
	FindForOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)

	// TopByXP returns the highest-XP farmers with their ranks
	TopByXP(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// RankForOwner returns a farmer's leaderboard position
	RankForOwner(ctx context.Context, ownerID uuid.UUID) (*LeaderboardEntry, error)

	// Save creates or updates a profile
	Save(ctx context.Context, profile *Profile) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, profile *Profile) error
}
