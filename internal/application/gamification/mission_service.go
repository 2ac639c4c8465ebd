package gamification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/agrihub/backend/internal/infrastructure/telemetry"
)

// MissionService handles mission definitions and per-farmer progress
type MissionService struct {
	missionRepo  gamification.MissionRepository
	progressRepo gamification.ProgressRepository
	profileRepo  gamification.ProfileRepository
	metrics      *telemetry.BusinessMetrics
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewMissionService creates a new MissionService. Metrics are optional.
func NewMissionService(
	missionRepo gamification.MissionRepository,
	progressRepo gamification.ProgressRepository,
	profileRepo gamification.ProfileRepository,
	metrics *telemetry.BusinessMetrics,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *MissionService {
	return &MissionService{
		missionRepo:  missionRepo,
		progressRepo: progressRepo,
		profileRepo:  profileRepo,
		metrics:      metrics,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// List returns in-season missions with the farmer's progress folded in
func (s *MissionService) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]MissionResponse, error) {
	now := time.Now()
	missions, err := s.missionRepo.FindAll(ctx, gamification.MissionFilter{
		Filter: shared.Filter{
			Page:     page,
			PageSize: pageSize,
			OrderBy:  "created_at",
			OrderDir: "asc",
		},
		InSeasonAt: &now,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]MissionResponse, 0, len(missions))
	for i := range missions {
		progress, err := s.progressRepo.FindForOwnerAndMission(ctx, ownerID, missions[i].ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		responses = append(responses, *ToMissionResponse(&missions[i], progress))
	}
	return responses, nil
}

// GetByID returns a mission with the farmer's progress folded in
func (s *MissionService) GetByID(ctx context.Context, ownerID, missionID uuid.UUID) (*MissionResponse, error) {
	mission, err := s.missionRepo.FindByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.FindForOwnerAndMission(ctx, ownerID, missionID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return ToMissionResponse(mission, progress), nil
}

// Start begins a mission attempt. A farmer gets one attempt per mission.
func (s *MissionService) Start(ctx context.Context, ownerID, missionID uuid.UUID) (*ProgressResponse, error) {
	mission, err := s.missionRepo.FindByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.progressRepo.FindForOwnerAndMission(ctx, ownerID, missionID); err == nil {
		return nil, shared.NewDomainError("ALREADY_STARTED", "Mission has already been started")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	progress, err := gamification.StartMission(ownerID, mission, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.progressRepo.Save(ctx, progress); err != nil {
		return nil, err
	}

	s.logger.Info("mission started",
		zap.String("mission_code", mission.Code),
		zap.String("owner_id", ownerID.String()))

	s.publishEvents(ctx, progress)

	return ToProgressResponse(progress), nil
}

// CompleteStep completes one step of an active attempt, strictly in
// order. Finishing the last step awards the mission XP.
func (s *MissionService) CompleteStep(ctx context.Context, ownerID, missionID uuid.UUID, req CompleteStepRequest) (*ProgressResponse, error) {
	mission, err := s.missionRepo.FindByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.FindForOwnerAndMission(ctx, ownerID, missionID)
	if err != nil {
		return nil, err
	}

	if err := progress.CompleteStep(mission, req.Sequence, time.Now()); err != nil {
		return nil, err
	}

	progress.IncrementVersion()
	if err := s.progressRepo.SaveWithLock(ctx, progress); err != nil {
		return nil, err
	}

	if progress.Status == gamification.ProgressStatusCompleted {
		s.awardXP(ctx, ownerID, progress.XPAwarded)
		if s.metrics != nil {
			s.metrics.RecordMissionCompleted(ctx, mission.Code)
		}
		s.logger.Info("mission completed",
			zap.String("mission_code", mission.Code),
			zap.String("owner_id", ownerID.String()),
			zap.Int64("xp_awarded", progress.XPAwarded))
	}

	s.publishEvents(ctx, progress)

	return ToProgressResponse(progress), nil
}

// ListProgress lists the farmer's attempts
func (s *MissionService) ListProgress(ctx context.Context, ownerID uuid.UUID, status string, page, pageSize int) ([]ProgressResponse, error) {
	filter := gamification.ProgressFilter{
		Filter: shared.Filter{
			Page:     page,
			PageSize: pageSize,
			OrderBy:  "started_at",
			OrderDir: "desc",
		},
	}
	if status != "" {
		st := gamification.ProgressStatus(status)
		if st != gamification.ProgressStatusActive && st != gamification.ProgressStatusCompleted && st != gamification.ProgressStatusExpired {
			return nil, shared.NewDomainError("INVALID_STATUS", "Progress status is not valid")
		}
		filter.Status = &st
	}

	records, err := s.progressRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProgressResponse, len(records))
	for i := range records {
		responses[i] = *ToProgressResponse(&records[i])
	}
	return responses, nil
}

// awardXP folds mission XP into the farmer's profile, creating it
// lazily. Award failures are logged, never surfaced: the mission is
// already completed and the progress row is the source of truth.
func (s *MissionService) awardXP(ctx context.Context, ownerID uuid.UUID, amount int64) {
	if amount <= 0 {
		return
	}

	profile, err := s.profileRepo.FindForOwner(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		profile = gamification.NewProfile(ownerID)
		err = nil
	}
	if err != nil {
		s.logger.Error("profile lookup failed for XP award",
			zap.String("owner_id", ownerID.String()), zap.Error(err))
		return
	}

	if err := profile.AwardXP(amount); err != nil {
		s.logger.Error("XP award rejected", zap.Error(err))
		return
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("failed to save XP award",
			zap.String("owner_id", ownerID.String()), zap.Error(err))
	}
}

func (s *MissionService) publishEvents(ctx context.Context, progress *gamification.MissionProgress) {
	if s.eventBus == nil {
		return
	}
	for _, event := range progress.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	progress.ClearDomainEvents()
}
