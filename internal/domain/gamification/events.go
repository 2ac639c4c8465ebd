package gamification

import (
	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// MissionStartedEvent is raised when a farmer starts a mission
type MissionStartedEvent struct {
	shared.BaseDomainEvent
	ProgressID uuid.UUID `json:"progress_id"`
	MissionID  uuid.UUID `json:"mission_id"`
}

// EventType returns the event type name
func (e *MissionStartedEvent) EventType() string {
	return "MissionStarted"
}

// NewMissionStartedEvent creates a new MissionStartedEvent
func NewMissionStartedEvent(progress *MissionProgress) *MissionStartedEvent {
	return &MissionStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MissionStarted", "MissionProgress", progress.ID, progress.OwnerID),
		ProgressID:      progress.ID,
		MissionID:       progress.MissionID,
	}
}

// MissionCompletedEvent is raised when the final step completes
type MissionCompletedEvent struct {
	shared.BaseDomainEvent
	ProgressID uuid.UUID `json:"progress_id"`
	MissionID  uuid.UUID `json:"mission_id"`
	XPAwarded  int64     `json:"xp_awarded"`
}

// EventType returns the event type name
func (e *MissionCompletedEvent) EventType() string {
	return "MissionCompleted"
}

// NewMissionCompletedEvent creates a new MissionCompletedEvent
func NewMissionCompletedEvent(progress *MissionProgress) *MissionCompletedEvent {
	return &MissionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MissionCompleted", "MissionProgress", progress.ID, progress.OwnerID),
		ProgressID:      progress.ID,
		MissionID:       progress.MissionID,
		XPAwarded:       progress.XPAwarded,
	}
}

// StreakMilestoneEvent is raised when a streak reaches a reward length
type StreakMilestoneEvent struct {
	shared.BaseDomainEvent
	StreakID  uuid.UUID `json:"streak_id"`
	Milestone int       `json:"milestone"`
	XPAwarded int64     `json:"xp_awarded"`
}

// EventType returns the event type name
func (e *StreakMilestoneEvent) EventType() string {
	return "StreakMilestone"
}

// NewStreakMilestoneEvent creates a new StreakMilestoneEvent
func NewStreakMilestoneEvent(streak *Streak, milestone int) *StreakMilestoneEvent {
	return &StreakMilestoneEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StreakMilestone", "Streak", streak.ID, streak.OwnerID),
		StreakID:        streak.ID,
		Milestone:       milestone,
		XPAwarded:       MilestoneXP(milestone),
	}
}

// StreakRecoveredEvent is raised when a missed day is recovered in grace
type StreakRecoveredEvent struct {
	shared.BaseDomainEvent
	StreakID     uuid.UUID `json:"streak_id"`
	CurrentCount int       `json:"current_count"`
}

// EventType returns the event type name
func (e *StreakRecoveredEvent) EventType() string {
	return "StreakRecovered"
}

// NewStreakRecoveredEvent creates a new StreakRecoveredEvent
func NewStreakRecoveredEvent(streak *Streak) *StreakRecoveredEvent {
	return &StreakRecoveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StreakRecovered", "Streak", streak.ID, streak.OwnerID),
		StreakID:        streak.ID,
		CurrentCount:    streak.CurrentCount,
	}
}
