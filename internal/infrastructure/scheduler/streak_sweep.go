package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/shared"
)

// StreakSweepJob resets streaks whose grace window has elapsed. The
// longest-run counter survives the reset; only the current run zeroes.
type StreakSweepJob struct {
	streaks       gamification.StreakRepository
	notifications farm.NotificationRepository
	batchSize     int
	logger        *zap.Logger
}

// NewStreakSweepJob creates the streak expiry sweep
func NewStreakSweepJob(
	streaks gamification.StreakRepository,
	notifications farm.NotificationRepository,
	batchSize int,
	logger *zap.Logger,
) *StreakSweepJob {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &StreakSweepJob{
		streaks:       streaks,
		notifications: notifications,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// Name identifies the job in logs
func (j *StreakSweepJob) Name() string {
	return "streak-expiry-sweep"
}

// Run resets every broken streak found before now
func (j *StreakSweepJob) Run(ctx context.Context) error {
	now := time.Now()
	reset := 0

	for {
		broken, err := j.streaks.FindBrokenBefore(ctx, now, j.batchSize)
		if err != nil {
			return fmt.Errorf("find broken streaks: %w", err)
		}
		if len(broken) == 0 {
			break
		}

		for i := range broken {
			streak := &broken[i]
			previous := streak.CurrentCount

			streak.Reset(now)
			streak.IncrementVersion()
			if err := j.streaks.SaveWithLock(ctx, streak); err != nil {
				// Concurrent activity revived the streak; leave it alone
				j.logger.Debug("skipping streak reset on version conflict",
					zap.String("owner_id", streak.OwnerID.String()),
					zap.Error(err),
				)
				continue
			}
			reset++

			j.notifyReset(ctx, streak, previous)
		}

		if len(broken) < j.batchSize {
			break
		}
	}

	if reset > 0 {
		j.logger.Info("broken streaks reset", zap.Int("count", reset))
	}
	return nil
}

func (j *StreakSweepJob) notifyReset(ctx context.Context, streak *gamification.Streak, previous int) {
	notification, err := farm.NewNotification(
		streak.OwnerID,
		farm.NotificationKindStreakWarning,
		"Your streak has ended",
		fmt.Sprintf("Your %d-day activity streak expired. Log any farm activity today to start a new one.", previous),
	)
	if err != nil {
		return
	}
	if err := j.notifications.Save(ctx, notification); err != nil {
		j.logger.Warn("failed to write streak notification",
			zap.String("owner_id", streak.OwnerID.String()),
			zap.Error(err),
		)
	}
}

var _ SweepJob = (*StreakSweepJob)(nil)

// BonusSweepJob clears expired mission completion bonuses
type BonusSweepJob struct {
	progress  gamification.ProgressRepository
	batchSize int
	logger    *zap.Logger
}

// NewBonusSweepJob creates the mission bonus expiry sweep
func NewBonusSweepJob(progress gamification.ProgressRepository, batchSize int, logger *zap.Logger) *BonusSweepJob {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &BonusSweepJob{
		progress:  progress,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Name identifies the job in logs
func (j *BonusSweepJob) Name() string {
	return "mission-bonus-sweep"
}

// Run drops every bonus window that has passed
func (j *BonusSweepJob) Run(ctx context.Context) error {
	now := time.Now()
	cleared := 0

	for {
		expired, err := j.progress.FindWithExpiredBonus(ctx, now, j.batchSize)
		if err != nil {
			return fmt.Errorf("find expired bonuses: %w", err)
		}
		if len(expired) == 0 {
			break
		}

		for i := range expired {
			attempt := &expired[i]
			if !attempt.ClearExpiredBonus(now) {
				continue
			}
			attempt.IncrementVersion()
			if err := j.progress.SaveWithLock(ctx, attempt); err != nil {
				var domainErr *shared.DomainError
				if errors.As(err, &domainErr) {
					// Lost the race to a concurrent update; next sweep catches it
					continue
				}
				return fmt.Errorf("save cleared bonus: %w", err)
			}
			cleared++
		}

		if len(expired) < j.batchSize {
			break
		}
	}

	if cleared > 0 {
		j.logger.Info("expired mission bonuses cleared", zap.Int("count", cleared))
	}
	return nil
}

var _ SweepJob = (*BonusSweepJob)(nil)
