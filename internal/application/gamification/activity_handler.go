package gamification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/shared"
)

// Activity keywords bound to mission steps. Event handlers complete a
// step automatically when the matching activity happens.
const (
	ActivityHarvestRecorded = "harvest_recorded"
	ActivityExpenseRecorded = "expense_recorded"
	ActivityPostCreated     = "post_created"
	ActivityTaskCompleted   = "task_completed"
	ActivityOrderDelivered  = "order_delivered"
)

// activityKeys maps event types to the activity keyword they qualify as
var activityKeys = map[string]string{
	"HarvestRecorded":   ActivityHarvestRecorded,
	"ExpenseRecorded":   ActivityExpenseRecorded,
	"PostCreated":       ActivityPostCreated,
	"FarmTaskCompleted": ActivityTaskCompleted,
	"OrderDelivered":    ActivityOrderDelivered,
}

// ActivityHandler turns farm activity events into streak touches and
// mission step auto-completions. Everything here is best-effort: the
// originating operation has already committed, so failures are logged
// and retried implicitly by the next activity.
type ActivityHandler struct {
	streaks     *StreakService
	missions    *MissionService
	missionRepo gamification.MissionRepository
	logger      *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(
	streaks *StreakService,
	missions *MissionService,
	missionRepo gamification.MissionRepository,
	logger *zap.Logger,
) *ActivityHandler {
	return &ActivityHandler{
		streaks:     streaks,
		missions:    missions,
		missionRepo: missionRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *ActivityHandler) EventTypes() []string {
	types := make([]string, 0, len(activityKeys))
	for t := range activityKeys {
		types = append(types, t)
	}
	return types
}

// Handle processes a qualifying activity event
func (h *ActivityHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	activityKey, ok := activityKeys[event.EventType()]
	if !ok {
		return nil
	}

	ownerID := event.OwnerID()

	if _, err := h.streaks.Touch(ctx, ownerID, event.OccurredAt()); err != nil {
		h.logger.Error("streak touch failed",
			zap.String("owner_id", ownerID.String()),
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}

	h.completeMatchingSteps(ctx, ownerID, activityKey)

	return nil
}

// completeMatchingSteps advances any active mission attempt whose next
// step is bound to the activity keyword.
func (h *ActivityHandler) completeMatchingSteps(ctx context.Context, ownerID uuid.UUID, activityKey string) {
	missions, err := h.missionRepo.FindByActivityKey(ctx, activityKey)
	if err != nil {
		h.logger.Error("mission lookup by activity failed",
			zap.String("activity_key", activityKey), zap.Error(err))
		return
	}

	for i := range missions {
		mission := &missions[i]

		progress, err := h.missions.progressRepo.FindForOwnerAndMission(ctx, ownerID, mission.ID)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			h.logger.Error("progress lookup failed",
				zap.String("mission_code", mission.Code), zap.Error(err))
			continue
		}
		if progress.Status != gamification.ProgressStatusActive {
			continue
		}

		next := progress.NextSequence()
		if next == 0 {
			continue
		}
		step, err := mission.StepBySequence(next)
		if err != nil || step.ActivityKey != activityKey {
			continue
		}

		if _, err := h.missions.CompleteStep(ctx, ownerID, mission.ID, CompleteStepRequest{Sequence: next}); err != nil {
			h.logger.Error("auto step completion failed",
				zap.String("mission_code", mission.Code),
				zap.Int("sequence", next),
				zap.Error(err))
		}
	}
}
