package gamification

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrihub/backend/internal/domain/shared"
)

func createTestMission(t *testing.T) *Mission {
	t.Helper()
	mission, err := NewMission("first-harvest", "Your first harvest", "From planting to the store", 500, 72*time.Hour)
	require.NoError(t, err)

	_, err = mission.AddStep("Register a field", "", "field_created")
	require.NoError(t, err)
	_, err = mission.AddStep("Record planting", "", "field_planted")
	require.NoError(t, err)
	_, err = mission.AddStep("Log a harvest", "", "harvest_recorded")
	require.NoError(t, err)

	return mission
}

func TestNewMission(t *testing.T) {
	t.Run("steps are sequenced from one", func(t *testing.T) {
		mission := createTestMission(t)

		require.Len(t, mission.Steps, 3)
		assert.Equal(t, 1, mission.Steps[0].Sequence)
		assert.Equal(t, 3, mission.Steps[2].Sequence)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := NewMission("", "title", "", 100, 0)
		require.Error(t, err)
	})

	t.Run("season window", func(t *testing.T) {
		mission := createTestMission(t)
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		require.NoError(t, mission.SetSeason(start, end))

		assert.True(t, mission.InSeason(start.AddDate(0, 1, 0)))
		assert.False(t, mission.InSeason(end.AddDate(0, 0, 1)))
		assert.False(t, mission.InSeason(start.AddDate(0, 0, -1)))
	})
}

func TestStartMission(t *testing.T) {
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

	t.Run("successful start", func(t *testing.T) {
		mission := createTestMission(t)
		ownerID := uuid.New()

		progress, err := StartMission(ownerID, mission, now)

		require.NoError(t, err)
		assert.Equal(t, ownerID, progress.OwnerID)
		assert.Equal(t, ProgressStatusActive, progress.Status)
		assert.Equal(t, 3, progress.TotalSteps)
		assert.Equal(t, 1, progress.NextSequence())
		assert.True(t, progress.Percentage().IsZero())
	})

	t.Run("out of season", func(t *testing.T) {
		mission := createTestMission(t)
		require.NoError(t, mission.SetSeason(
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		))

		_, err := StartMission(uuid.New(), mission, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrMissionExpired))
	})

	t.Run("mission without steps", func(t *testing.T) {
		mission, err := NewMission("empty", "Empty", "", 0, 0)
		require.NoError(t, err)

		_, err = StartMission(uuid.New(), mission, now)

		require.Error(t, err)
	})
}

func TestMissionProgress_CompleteStep(t *testing.T) {
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

	t.Run("steps complete strictly in order", func(t *testing.T) {
		mission := createTestMission(t)
		progress, err := StartMission(uuid.New(), mission, now)
		require.NoError(t, err)
		progress.ClearDomainEvents()

		err = progress.CompleteStep(mission, 2, now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrStepOutOfOrder))

		require.NoError(t, progress.CompleteStep(mission, 1, now))
		assert.True(t, progress.Percentage().Equal(decimal.NewFromFloat(33.33)))

		// Repeating a done step is also out of order
		err = progress.CompleteStep(mission, 1, now)
		assert.True(t, errors.Is(err, shared.ErrStepOutOfOrder))
	})

	t.Run("final step completes the mission", func(t *testing.T) {
		mission := createTestMission(t)
		progress, err := StartMission(uuid.New(), mission, now)
		require.NoError(t, err)
		progress.ClearDomainEvents()

		require.NoError(t, progress.CompleteStep(mission, 1, now))
		require.NoError(t, progress.CompleteStep(mission, 2, now))
		require.NoError(t, progress.CompleteStep(mission, 3, now))

		assert.Equal(t, ProgressStatusCompleted, progress.Status)
		assert.Equal(t, int64(500), progress.XPAwarded)
		assert.Equal(t, 0, progress.NextSequence())
		assert.True(t, progress.Percentage().Equal(decimal.NewFromInt(100)))

		require.NotNil(t, progress.BonusExpiresAt)
		assert.True(t, progress.BonusActive(now.Add(time.Hour)))
		assert.False(t, progress.BonusActive(now.Add(73*time.Hour)))

		events := progress.GetDomainEvents()
		require.NotEmpty(t, events)
		assert.Equal(t, "MissionCompleted", events[len(events)-1].EventType())
	})

	t.Run("completed mission rejects more steps", func(t *testing.T) {
		mission := createTestMission(t)
		progress, err := StartMission(uuid.New(), mission, now)
		require.NoError(t, err)
		for seq := 1; seq <= 3; seq++ {
			require.NoError(t, progress.CompleteStep(mission, seq, now))
		}

		err = progress.CompleteStep(mission, 4, now)
		require.Error(t, err)
	})

	t.Run("season closing mid-mission blocks steps", func(t *testing.T) {
		mission := createTestMission(t)
		require.NoError(t, mission.SetSeason(
			time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
		))
		progress, err := StartMission(uuid.New(), mission, now)
		require.NoError(t, err)

		err = progress.CompleteStep(mission, 1, now.AddDate(0, 0, 10))

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrMissionExpired))
	})
}

func TestMissionProgress_BonusSweep(t *testing.T) {
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	mission := createTestMission(t)
	progress, err := StartMission(uuid.New(), mission, now)
	require.NoError(t, err)
	for seq := 1; seq <= 3; seq++ {
		require.NoError(t, progress.CompleteStep(mission, seq, now))
	}

	assert.False(t, progress.ClearExpiredBonus(now.Add(time.Hour)), "open window is untouched")
	assert.True(t, progress.ClearExpiredBonus(now.Add(80*time.Hour)))
	assert.Nil(t, progress.BonusExpiresAt)
}
