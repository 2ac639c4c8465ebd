package gamification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/shared"
)

// StreakService handles activity streaks
type StreakService struct {
	streakRepo  gamification.StreakRepository
	profileRepo gamification.ProfileRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewStreakService creates a new StreakService
func NewStreakService(
	streakRepo gamification.StreakRepository,
	profileRepo gamification.ProfileRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *StreakService {
	return &StreakService{
		streakRepo:  streakRepo,
		profileRepo: profileRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Get returns the farmer's streak, an empty one when nothing has been
// recorded yet.
func (s *StreakService) Get(ctx context.Context, ownerID uuid.UUID) (*StreakResponse, error) {
	streak, err := s.streakRepo.FindForOwner(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		return ToStreakResponse(gamification.NewStreak(ownerID)), nil
	}
	if err != nil {
		return nil, err
	}
	return ToStreakResponse(streak), nil
}

// Touch records qualifying activity for the day. Idempotent within a
// calendar day. Milestone lengths pay XP into the farmer's profile.
func (s *StreakService) Touch(ctx context.Context, ownerID uuid.UUID, at time.Time) (*StreakResponse, error) {
	streak, err := s.streakRepo.FindForOwner(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		streak = gamification.NewStreak(ownerID)
		err = nil
	}
	if err != nil {
		return nil, err
	}

	incremented, milestone := streak.Touch(at)
	if !incremented {
		return ToStreakResponse(streak), nil
	}

	if err := s.streakRepo.Save(ctx, streak); err != nil {
		return nil, err
	}

	if milestone > 0 {
		s.awardMilestone(ctx, ownerID, milestone)
	}

	s.publishEvents(ctx, streak)

	return ToStreakResponse(streak), nil
}

func (s *StreakService) awardMilestone(ctx context.Context, ownerID uuid.UUID, milestone int) {
	xp := gamification.MilestoneXP(milestone)

	profile, err := s.profileRepo.FindForOwner(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		profile = gamification.NewProfile(ownerID)
		err = nil
	}
	if err != nil {
		s.logger.Error("profile lookup failed for milestone award",
			zap.String("owner_id", ownerID.String()), zap.Error(err))
		return
	}

	if err := profile.AwardXP(xp); err != nil {
		s.logger.Error("milestone XP rejected", zap.Error(err))
		return
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("failed to save milestone XP",
			zap.String("owner_id", ownerID.String()), zap.Error(err))
		return
	}

	s.logger.Info("streak milestone reached",
		zap.String("owner_id", ownerID.String()),
		zap.Int("milestone", milestone),
		zap.Int64("xp", xp))
}

func (s *StreakService) publishEvents(ctx context.Context, streak *gamification.Streak) {
	if s.eventBus == nil {
		return
	}
	for _, event := range streak.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	streak.ClearDomainEvents()
}
