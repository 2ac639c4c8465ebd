package gamification

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// Milestones are the streak lengths that pay out a reward
var Milestones = []int{3, 7, 14, 30, 60, 100}

// MilestoneXP returns the XP paid for reaching a milestone length,
// zero for non-milestone lengths.
func MilestoneXP(length int) int64 {
	switch length {
	case 3:
		return 50
	case 7:
		return 150
	case 14:
		return 350
	case 30:
		return 800
	case 60:
		return 2000
	case 100:
		return 4000
	}
	return 0
}

// Streak tracks a farmer's consecutive days of activity. Any qualifying
// activity (harvest logged, expense recorded, post created, task done)
// touches the streak at most once per calendar day.
//
// A single missed day is recoverable: activity before the end of the
// day after the missed one keeps the streak alive. A longer gap resets
// the counter.
type Streak struct {
	shared.OwnedAggregateRoot
	CurrentCount  int        `json:"current_count"`
	LongestCount  int        `json:"longest_count"`
	LastActiveDay *time.Time `json:"last_active_day"` // Truncated to day, UTC
	GraceUsed     bool       `json:"grace_used"`      // Recovery spent on the current run
}

// NewStreak creates an empty streak for a farmer
func NewStreak(ownerID uuid.UUID) *Streak {
	return &Streak{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
	}
}

// day truncates a timestamp to its UTC calendar day
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Touch records activity at the given time. Returns whether the counter
// moved and the milestone reached (0 when none).
func (s *Streak) Touch(now time.Time) (incremented bool, milestone int) {
	today := day(now)

	switch {
	case s.LastActiveDay == nil:
		s.CurrentCount = 1
		s.GraceUsed = false

	case today.Equal(*s.LastActiveDay):
		// Already counted today
		return false, 0

	case today.Sub(*s.LastActiveDay) == 24*time.Hour:
		s.CurrentCount++
		s.GraceUsed = false

	case today.Sub(*s.LastActiveDay) == 48*time.Hour && !s.GraceUsed:
		// One missed day, recovered within the next
		s.CurrentCount++
		s.GraceUsed = true
		s.AddDomainEvent(NewStreakRecoveredEvent(s))

	default:
		s.CurrentCount = 1
		s.GraceUsed = false
	}

	s.LastActiveDay = &today
	if s.CurrentCount > s.LongestCount {
		s.LongestCount = s.CurrentCount
	}
	s.UpdatedAt = now

	if MilestoneXP(s.CurrentCount) > 0 {
		milestone = s.CurrentCount
		s.AddDomainEvent(NewStreakMilestoneEvent(s, milestone))
	}

	return true, milestone
}

// IsBroken returns true when the grace window has elapsed without
// activity. The expiry sweep resets broken streaks.
func (s *Streak) IsBroken(now time.Time) bool {
	if s.LastActiveDay == nil || s.CurrentCount == 0 {
		return false
	}
	gap := day(now).Sub(*s.LastActiveDay)
	if s.GraceUsed {
		return gap > 24*time.Hour
	}
	return gap > 48*time.Hour
}

// Reset zeroes the current run; the longest count is kept
func (s *Streak) Reset(now time.Time) {
	s.CurrentCount = 0
	s.GraceUsed = false
	s.UpdatedAt = now
}
