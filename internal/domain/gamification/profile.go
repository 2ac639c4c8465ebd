package gamification

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// Profile holds a farmer's accumulated XP and level. One profile per
// user, created lazily on first award. The leaderboard ranks profiles
// by XP.
type Profile struct {
	shared.OwnedAggregateRoot
	XP    int64 `json:"xp"`
	Level int   `json:"level"`
}

// NewProfile creates an empty profile for a farmer
func NewProfile(ownerID uuid.UUID) *Profile {
	return &Profile{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Level:              1,
	}
}

// LevelForXP returns the level a given XP total corresponds to. Levels
// step every 1000 XP.
func LevelForXP(xp int64) int {
	return int(xp/1000) + 1
}

// AwardXP adds XP and recomputes the level
func (p *Profile) AwardXP(amount int64) error {
	if amount <= 0 {
		return shared.NewDomainError("INVALID_XP", "XP award must be positive")
	}

	p.XP += amount
	p.Level = LevelForXP(p.XP)
	p.UpdatedAt = time.Now()

	return nil
}
