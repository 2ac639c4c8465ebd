package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/identity"
	"github.com/agrihub/backend/internal/infrastructure/weather"
)

// UserLookup resolves task owners so the sweep can find their region
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// TaskReminderJob writes notification rows for pending tasks due within
// the lookahead window. Irrigation tasks consult the forecast first:
// likely rain turns the reminder into a postpone suggestion.
type TaskReminderJob struct {
	tasks         farm.FarmTaskRepository
	notifications farm.NotificationRepository
	users         UserLookup
	forecasts     weather.Provider
	lookahead     time.Duration
	batchSize     int
	logger        *zap.Logger
}

// NewTaskReminderJob creates the task reminder sweep
func NewTaskReminderJob(
	tasks farm.FarmTaskRepository,
	notifications farm.NotificationRepository,
	users UserLookup,
	forecasts weather.Provider,
	batchSize int,
	logger *zap.Logger,
) *TaskReminderJob {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &TaskReminderJob{
		tasks:         tasks,
		notifications: notifications,
		users:         users,
		forecasts:     forecasts,
		lookahead:     24 * time.Hour,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// Name identifies the job in logs
func (j *TaskReminderJob) Name() string {
	return "task-reminder-sweep"
}

// Run writes one reminder per due task that has none yet
func (j *TaskReminderJob) Run(ctx context.Context) error {
	cutoff := time.Now().Add(j.lookahead)

	due, err := j.tasks.FindPendingDueBefore(ctx, cutoff, j.batchSize)
	if err != nil {
		return fmt.Errorf("find due tasks: %w", err)
	}

	written := 0
	for i := range due {
		task := &due[i]

		exists, err := j.notifications.ExistsForTask(ctx, task.ID, farm.NotificationKindTaskReminder)
		if err != nil {
			return fmt.Errorf("check existing reminder: %w", err)
		}
		if exists {
			continue
		}

		notification, err := j.buildReminder(ctx, task)
		if err != nil {
			j.logger.Warn("failed to build reminder",
				zap.String("task_id", task.ID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := j.notifications.Save(ctx, notification); err != nil {
			return fmt.Errorf("save reminder: %w", err)
		}
		written++
	}

	if written > 0 {
		j.logger.Info("task reminders written", zap.Int("count", written))
	}
	return nil
}

func (j *TaskReminderJob) buildReminder(ctx context.Context, task *farm.FarmTask) (*farm.Notification, error) {
	kind := farm.NotificationKindTaskReminder
	title := "Task due soon: " + task.Title
	message := fmt.Sprintf("%q is due %s.", task.Title, task.DueAt.Format("Mon 2 Jan 15:04"))

	// Irrigation ahead of likely rain is wasted work; suggest postponing
	if task.Category == farm.TaskCategoryIrrigation && j.forecasts != nil {
		if forecast := j.lookupForecast(ctx, task); forecast != nil && forecast.RainLikely() {
			kind = farm.NotificationKindWeatherAlert
			title = "Rain expected: consider postponing " + task.Title
			message = fmt.Sprintf(
				"Rain is likely before %q is due (%.0f%% chance). Irrigating now may be unnecessary.",
				task.Title, forecast.RainChance*100,
			)
		}
	}

	notification, err := farm.NewNotification(task.OwnerID, kind, title, message)
	if err != nil {
		return nil, err
	}
	notification.AttachTask(task.ID)
	return notification, nil
}

func (j *TaskReminderJob) lookupForecast(ctx context.Context, task *farm.FarmTask) *weather.Forecast {
	user, err := j.users.FindByID(ctx, task.OwnerID)
	if err != nil || user.Region == "" {
		return nil
	}

	forecast, err := j.forecasts.Forecast(ctx, user.Region)
	if err != nil {
		j.logger.Debug("forecast lookup failed, sending plain reminder",
			zap.String("region", user.Region),
			zap.Error(err),
		)
		return nil
	}
	return forecast
}

var _ SweepJob = (*TaskReminderJob)(nil)
