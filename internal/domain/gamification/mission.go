package gamification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// MissionStep is one ordered step in a mission definition. Steps carry
// an optional activity keyword so event handlers can auto-complete them
// (e.g. "harvest_recorded" completes when a harvest is logged).
type MissionStep struct {
	ID          uuid.UUID `json:"id"`
	MissionID   uuid.UUID `json:"mission_id"`
	Sequence    int       `json:"sequence"` // 1-based, strictly ordered
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ActivityKey string    `json:"activity_key"` // empty for manual steps
}

// Mission represents a mission definition aggregate root. Definitions
// are global; per-farmer state lives in MissionProgress. Season bounds
// are optional; a mission outside its season cannot be started.
type Mission struct {
	shared.BaseAggregateRoot
	Code        string        `json:"code"` // Stable identifier, e.g. "first-harvest"
	Title       string        `json:"title"`
	Description string        `json:"description"`
	XPReward    int64         `json:"xp_reward"`
	BonusTTL    time.Duration `json:"bonus_ttl"` // Time-limited bonus window after completion
	SeasonStart *time.Time    `json:"season_start"`
	SeasonEnd   *time.Time    `json:"season_end"`
	Steps       []MissionStep `json:"steps"`
}

// NewMission creates a new mission definition
func NewMission(code, title, description string, xpReward int64, bonusTTL time.Duration) (*Mission, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Mission code cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Mission title cannot be empty")
	}
	if xpReward < 0 {
		return nil, shared.NewDomainError("INVALID_XP", "XP reward cannot be negative")
	}
	if bonusTTL < 0 {
		return nil, shared.NewDomainError("INVALID_TTL", "Bonus TTL cannot be negative")
	}

	return &Mission{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Title:             title,
		Description:       description,
		XPReward:          xpReward,
		BonusTTL:          bonusTTL,
	}, nil
}

// SetSeason bounds the mission to a season window
func (m *Mission) SetSeason(start, end time.Time) error {
	if end.Before(start) {
		return shared.NewDomainError("INVALID_SEASON", "Season end cannot be before season start")
	}

	m.SeasonStart = &start
	m.SeasonEnd = &end
	m.UpdatedAt = time.Now()

	return nil
}

// AddStep appends a step; sequence numbers must be contiguous from 1
func (m *Mission) AddStep(title, description, activityKey string) (*MissionStep, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Step title cannot be empty")
	}

	step := MissionStep{
		ID:          uuid.New(),
		MissionID:   m.ID,
		Sequence:    len(m.Steps) + 1,
		Title:       title,
		Description: description,
		ActivityKey: activityKey,
	}
	m.Steps = append(m.Steps, step)
	m.UpdatedAt = time.Now()

	return &m.Steps[len(m.Steps)-1], nil
}

// InSeason returns true when the mission can be started at the given time
func (m *Mission) InSeason(now time.Time) bool {
	if m.SeasonStart != nil && now.Before(*m.SeasonStart) {
		return false
	}
	if m.SeasonEnd != nil && now.After(*m.SeasonEnd) {
		return false
	}
	return true
}

// StepBySequence returns the step with the given 1-based sequence
func (m *Mission) StepBySequence(seq int) (*MissionStep, error) {
	if seq < 1 || seq > len(m.Steps) {
		return nil, shared.NewDomainError("INVALID_STEP", fmt.Sprintf("Mission has no step %d", seq))
	}
	return &m.Steps[seq-1], nil
}

// ProgressStatus represents the state of a farmer's mission attempt
type ProgressStatus string

const (
	ProgressStatusActive    ProgressStatus = "ACTIVE"
	ProgressStatusCompleted ProgressStatus = "COMPLETED"
	ProgressStatusExpired   ProgressStatus = "EXPIRED" // Season ended before completion
)

// MissionProgress tracks one farmer's progress through a mission.
// Steps complete strictly in order; completing the last step finishes
// the mission, awards XP and opens the time-limited bonus window.
type MissionProgress struct {
	shared.OwnedAggregateRoot
	MissionID      uuid.UUID      `json:"mission_id"`
	Status         ProgressStatus `json:"status"`
	CompletedSteps int            `json:"completed_steps"` // Count of finished steps, in order
	TotalSteps     int            `json:"total_steps"`
	StartedAt      time.Time      `json:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	BonusExpiresAt *time.Time     `json:"bonus_expires_at"`
	XPAwarded      int64          `json:"xp_awarded"`
}

// TableName specifies the database table name
func (MissionProgress) TableName() string {
	return "mission_progress"
}

// StartMission begins a mission for a farmer
func StartMission(ownerID uuid.UUID, mission *Mission, now time.Time) (*MissionProgress, error) {
	if mission == nil {
		return nil, shared.NewDomainError("INVALID_MISSION", "Progress must reference a mission")
	}
	if len(mission.Steps) == 0 {
		return nil, shared.NewDomainError("INVALID_MISSION", "Mission has no steps")
	}
	if !mission.InSeason(now) {
		return nil, shared.ErrMissionExpired
	}

	progress := &MissionProgress{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		MissionID:          mission.ID,
		Status:             ProgressStatusActive,
		TotalSteps:         len(mission.Steps),
		StartedAt:          now,
	}

	progress.AddDomainEvent(NewMissionStartedEvent(progress))

	return progress, nil
}

// CompleteStep completes the step with the given sequence. Steps must
// be completed strictly in order; skipping ahead fails with
// ErrStepOutOfOrder. Completing the final step finishes the mission.
func (p *MissionProgress) CompleteStep(mission *Mission, sequence int, now time.Time) error {
	if p.Status != ProgressStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Mission progress is %s", p.Status))
	}
	if mission == nil || mission.ID != p.MissionID {
		return shared.NewDomainError("INVALID_MISSION", "Step does not belong to this mission")
	}
	if !mission.InSeason(now) {
		return shared.ErrMissionExpired
	}
	if sequence != p.CompletedSteps+1 {
		return shared.ErrStepOutOfOrder
	}
	if _, err := mission.StepBySequence(sequence); err != nil {
		return err
	}

	p.CompletedSteps = sequence
	p.UpdatedAt = now

	if p.CompletedSteps == p.TotalSteps {
		p.Status = ProgressStatusCompleted
		p.CompletedAt = &now
		p.XPAwarded = mission.XPReward
		if mission.BonusTTL > 0 {
			bonusExpiry := now.Add(mission.BonusTTL)
			p.BonusExpiresAt = &bonusExpiry
		}
		p.AddDomainEvent(NewMissionCompletedEvent(p))
	}

	return nil
}

// NextSequence returns the sequence of the next step to complete, or 0
// when the mission is finished.
func (p *MissionProgress) NextSequence() int {
	if p.CompletedSteps >= p.TotalSteps {
		return 0
	}
	return p.CompletedSteps + 1
}

// Percentage returns the completion percentage (0..100, 2 decimals)
func (p *MissionProgress) Percentage() decimal.Decimal {
	if p.TotalSteps == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(p.CompletedSteps)).
		Div(decimal.NewFromInt(int64(p.TotalSteps))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// Expire marks an unfinished attempt expired; the season sweep calls this
func (p *MissionProgress) Expire(now time.Time) error {
	if p.Status != ProgressStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active progress can expire")
	}

	p.Status = ProgressStatusExpired
	p.UpdatedAt = now

	return nil
}

// BonusActive returns true while the completion bonus window is open
func (p *MissionProgress) BonusActive(now time.Time) bool {
	return p.Status == ProgressStatusCompleted &&
		p.BonusExpiresAt != nil && now.Before(*p.BonusExpiresAt)
}

// ClearExpiredBonus drops the bonus window once it has passed. Returns
// true when the sweep changed anything.
func (p *MissionProgress) ClearExpiredBonus(now time.Time) bool {
	if p.BonusExpiresAt == nil || now.Before(*p.BonusExpiresAt) {
		return false
	}
	p.BonusExpiresAt = nil
	p.UpdatedAt = now
	return true
}
