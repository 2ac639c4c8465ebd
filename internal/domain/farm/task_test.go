package farm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFarmTask(t *testing.T) {
	ownerID := uuid.New()

	t.Run("successful creation", func(t *testing.T) {
		task, err := NewFarmTask(ownerID, "Irrigate the north paddock", TaskCategoryIrrigation, TaskPriorityHigh)

		require.NoError(t, err)
		assert.Equal(t, ownerID, task.OwnerID)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Equal(t, TaskCategoryIrrigation, task.Category)
		assert.Equal(t, TaskPriorityHigh, task.Priority)
		assert.Equal(t, "manual", task.Source)
		assert.Len(t, task.GetDomainEvents(), 1)
		assert.Equal(t, "FarmTaskCreated", task.GetDomainEvents()[0].EventType())
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewFarmTask(ownerID, "", TaskCategoryGeneral, TaskPriorityMedium)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Task title cannot be empty")
	})

	t.Run("unknown category defaults to general", func(t *testing.T) {
		task, err := NewFarmTask(ownerID, "Fix the fence", TaskCategory("UNKNOWN"), TaskPriority(""))

		require.NoError(t, err)
		assert.Equal(t, TaskCategoryGeneral, task.Category)
		assert.Equal(t, TaskPriorityMedium, task.Priority)
	})
}

func TestFarmTask_Complete(t *testing.T) {
	t.Run("complete pending task", func(t *testing.T) {
		task, err := NewFarmTask(uuid.New(), "Spray tomatoes", TaskCategorySpraying, TaskPriorityMedium)
		require.NoError(t, err)
		task.ClearDomainEvents()

		err = task.Complete()

		require.NoError(t, err)
		assert.Equal(t, TaskStatusDone, task.Status)
		require.NotNil(t, task.CompletedAt)
		assert.Len(t, task.GetDomainEvents(), 1)
		assert.Equal(t, "FarmTaskCompleted", task.GetDomainEvents()[0].EventType())
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		task, err := NewFarmTask(uuid.New(), "Spray tomatoes", TaskCategorySpraying, TaskPriorityMedium)
		require.NoError(t, err)
		require.NoError(t, task.Complete())

		err = task.Complete()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already completed")
	})

	t.Run("reopen completed task", func(t *testing.T) {
		task, err := NewFarmTask(uuid.New(), "Spray tomatoes", TaskCategorySpraying, TaskPriorityMedium)
		require.NoError(t, err)
		require.NoError(t, task.Complete())

		err = task.Reopen()

		require.NoError(t, err)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Nil(t, task.CompletedAt)
	})
}

func TestFarmTask_Update(t *testing.T) {
	t.Run("update pending task", func(t *testing.T) {
		task, err := NewFarmTask(uuid.New(), "Water seedlings", TaskCategoryIrrigation, TaskPriorityLow)
		require.NoError(t, err)
		due := time.Now().Add(48 * time.Hour)

		err = task.Update("Water seedlings twice", "morning and evening", TaskCategoryIrrigation, TaskPriorityHigh, &due, true)

		require.NoError(t, err)
		assert.Equal(t, "Water seedlings twice", task.Title)
		assert.Equal(t, TaskPriorityHigh, task.Priority)
		assert.True(t, task.Reminder)
		require.NotNil(t, task.DueAt)
	})

	t.Run("cannot update completed task", func(t *testing.T) {
		task, err := NewFarmTask(uuid.New(), "Water seedlings", TaskCategoryIrrigation, TaskPriorityLow)
		require.NoError(t, err)
		require.NoError(t, task.Complete())

		err = task.Update("new title", "", TaskCategoryGeneral, TaskPriorityLow, nil, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot update a completed task")
	})
}

func TestFarmTask_IsOverdue(t *testing.T) {
	task, err := NewFarmTask(uuid.New(), "Harvest beans", TaskCategoryHarvesting, TaskPriorityHigh)
	require.NoError(t, err)

	now := time.Now()

	assert.False(t, task.IsOverdue(now), "task without due date is never overdue")

	past := now.Add(-time.Hour)
	task.DueAt = &past
	assert.True(t, task.IsOverdue(now))

	require.NoError(t, task.Complete())
	assert.False(t, task.IsOverdue(now), "completed task is not overdue")
}
