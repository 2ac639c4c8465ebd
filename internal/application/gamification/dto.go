package gamification

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/gamification"
)

// MissionStepResponse is the client shape of a mission step
type MissionStepResponse struct {
	Sequence    int    `json:"sequence"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ActivityKey string `json:"activity_key,omitempty"`
	Completed   bool   `json:"completed"`
}

// MissionResponse is the client shape of a mission definition, with the
// farmer's progress folded in when they have started it.
type MissionResponse struct {
	ID          uuid.UUID             `json:"id"`
	Code        string                `json:"code"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	XPReward    int64                 `json:"xp_reward"`
	SeasonStart *time.Time            `json:"season_start,omitempty"`
	SeasonEnd   *time.Time            `json:"season_end,omitempty"`
	Steps       []MissionStepResponse `json:"steps"`
	Progress    *ProgressResponse     `json:"progress,omitempty"`
}

// ProgressResponse is the client shape of a mission attempt
type ProgressResponse struct {
	ID             uuid.UUID       `json:"id"`
	MissionID      uuid.UUID       `json:"mission_id"`
	Status         string          `json:"status"`
	CompletedSteps int             `json:"completed_steps"`
	TotalSteps     int             `json:"total_steps"`
	NextSequence   int             `json:"next_sequence"`
	Percentage     decimal.Decimal `json:"percentage"`
	XPAwarded      int64           `json:"xp_awarded"`
	BonusExpiresAt *time.Time      `json:"bonus_expires_at,omitempty"`
	BonusActive    bool            `json:"bonus_active"`
	StartedAt      time.Time       `json:"started_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// ToProgressResponse maps a progress record to its client shape
func ToProgressResponse(p *gamification.MissionProgress) *ProgressResponse {
	return &ProgressResponse{
		ID:             p.ID,
		MissionID:      p.MissionID,
		Status:         string(p.Status),
		CompletedSteps: p.CompletedSteps,
		TotalSteps:     p.TotalSteps,
		NextSequence:   p.NextSequence(),
		Percentage:     p.Percentage(),
		XPAwarded:      p.XPAwarded,
		BonusExpiresAt: p.BonusExpiresAt,
		BonusActive:    p.BonusActive(time.Now()),
		StartedAt:      p.StartedAt,
		CompletedAt:    p.CompletedAt,
	}
}

// ToMissionResponse maps a mission and an optional attempt to the
// client shape. Steps up to the attempt's counter show as completed.
func ToMissionResponse(m *gamification.Mission, progress *gamification.MissionProgress) *MissionResponse {
	resp := &MissionResponse{
		ID:          m.ID,
		Code:        m.Code,
		Title:       m.Title,
		Description: m.Description,
		XPReward:    m.XPReward,
		SeasonStart: m.SeasonStart,
		SeasonEnd:   m.SeasonEnd,
		Steps:       make([]MissionStepResponse, len(m.Steps)),
	}
	for i, step := range m.Steps {
		resp.Steps[i] = MissionStepResponse{
			Sequence:    step.Sequence,
			Title:       step.Title,
			Description: step.Description,
			ActivityKey: step.ActivityKey,
		}
	}
	if progress != nil {
		resp.Progress = ToProgressResponse(progress)
		for i := range resp.Steps {
			resp.Steps[i].Completed = resp.Steps[i].Sequence <= progress.CompletedSteps
		}
	}
	return resp
}

// CompleteStepRequest identifies the step being completed
type CompleteStepRequest struct {
	Sequence int `json:"sequence" binding:"required"`
}

// StreakResponse is the client shape of a streak
type StreakResponse struct {
	CurrentCount  int        `json:"current_count"`
	LongestCount  int        `json:"longest_count"`
	LastActiveDay *time.Time `json:"last_active_day,omitempty"`
	GraceUsed     bool       `json:"grace_used"`
	NextMilestone int        `json:"next_milestone"`
}

// ToStreakResponse maps a streak to its client shape
func ToStreakResponse(s *gamification.Streak) *StreakResponse {
	resp := &StreakResponse{
		CurrentCount:  s.CurrentCount,
		LongestCount:  s.LongestCount,
		LastActiveDay: s.LastActiveDay,
		GraceUsed:     s.GraceUsed,
	}
	for _, m := range gamification.Milestones {
		if m > s.CurrentCount {
			resp.NextMilestone = m
			break
		}
	}
	return resp
}

// ProfileResponse is the client shape of an XP profile
type ProfileResponse struct {
	XP        int64 `json:"xp"`
	Level     int   `json:"level"`
	NextLevel int64 `json:"next_level_xp"`
	Rank      int64 `json:"rank,omitempty"`
}

// LeaderboardResponse is one XP leaderboard row
type LeaderboardResponse struct {
	Rank     int64     `json:"rank"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Nickname string    `json:"nickname,omitempty"`
	XP       int64     `json:"xp"`
	Level    int       `json:"level"`
}
