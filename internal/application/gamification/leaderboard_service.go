package gamification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/shared"
)

const defaultLeaderboardSize = 20

// LeaderboardService serves the XP leaderboard and profile reads
type LeaderboardService struct {
	profileRepo gamification.ProfileRepository
	logger      *zap.Logger
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(profileRepo gamification.ProfileRepository, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{profileRepo: profileRepo, logger: logger}
}

// Top returns the highest-XP farmers
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardSize
	}

	entries, err := s.profileRepo.TopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]LeaderboardResponse, len(entries))
	for i, e := range entries {
		responses[i] = LeaderboardResponse{
			Rank:     e.Rank,
			OwnerID:  e.OwnerID,
			Nickname: e.Nickname,
			XP:       e.XP,
			Level:    e.Level,
		}
	}
	return responses, nil
}

// Profile returns the farmer's XP profile with their leaderboard rank
func (s *LeaderboardService) Profile(ctx context.Context, ownerID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindForOwner(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		profile = gamification.NewProfile(ownerID)
		err = nil
	}
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		XP:        profile.XP,
		Level:     profile.Level,
		NextLevel: int64(profile.Level) * 1000,
	}

	if rank, err := s.profileRepo.RankForOwner(ctx, ownerID); err == nil {
		resp.Rank = rank.Rank
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("rank lookup failed",
			zap.String("owner_id", ownerID.String()), zap.Error(err))
	}

	return resp, nil
}
