package farm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/shared"
)

func newTestTaskService(taskRepo *fakeTaskRepo, fieldRepo *fakeFieldRepo, bus *capturingEventBus) *TaskService {
	return NewTaskService(taskRepo, fieldRepo, bus, zap.NewNop())
}

func TestTaskService_Create_DefaultPriority(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepo(), newFakeFieldRepo(), &capturingEventBus{})

	resp, err := service.Create(context.Background(), uuid.New(), CreateTaskRequest{
		Title:    "Weed the north paddock",
		Category: "GENERAL",
	})

	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", resp.Priority)
	assert.Equal(t, "PENDING", resp.Status)
}

func TestTaskService_Create_WithField(t *testing.T) {
	fieldRepo := newFakeFieldRepo()
	service := newTestTaskService(newFakeTaskRepo(), fieldRepo, &capturingEventBus{})
	ownerID := uuid.New()

	fieldService := newTestFieldService(fieldRepo, &capturingEventBus{})
	field, err := fieldService.Create(context.Background(), ownerID, CreateFieldRequest{
		Name:         "Plot A",
		CropType:     "maize",
		AreaHectares: decimal.NewFromInt(1),
		Season:       "2026-wet",
	})
	require.NoError(t, err)

	resp, err := service.Create(context.Background(), ownerID, CreateTaskRequest{
		Title:    "Fertilize",
		Category: "FERTILIZING",
		Priority: "HIGH",
		FieldID:  &field.ID,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.FieldID)
	assert.Equal(t, field.ID, *resp.FieldID)
}

func TestTaskService_Create_UnknownField(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepo(), newFakeFieldRepo(), &capturingEventBus{})
	fieldID := uuid.New()

	_, err := service.Create(context.Background(), uuid.New(), CreateTaskRequest{
		Title:    "Water",
		Category: "IRRIGATION",
		FieldID:  &fieldID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_FIELD", domainErr.Code)
}

func TestTaskService_CompleteAndReopen(t *testing.T) {
	bus := &capturingEventBus{}
	service := newTestTaskService(newFakeTaskRepo(), newFakeFieldRepo(), bus)
	ownerID := uuid.New()

	created, err := service.Create(context.Background(), ownerID, CreateTaskRequest{
		Title:    "Harvest row 3",
		Category: "HARVESTING",
	})
	require.NoError(t, err)

	done, err := service.Complete(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "DONE", done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Contains(t, bus.eventTypes(), "FarmTaskCompleted")

	// completing twice is rejected
	_, err = service.Complete(context.Background(), ownerID, created.ID)
	assert.Error(t, err)

	reopened, err := service.Reopen(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
}

func TestTaskService_Create_DueDateAndReminder(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepo(), newFakeFieldRepo(), &capturingEventBus{})
	dueAt := time.Now().Add(48 * time.Hour)

	resp, err := service.Create(context.Background(), uuid.New(), CreateTaskRequest{
		Title:    "Spray pesticide",
		Category: "SPRAYING",
		DueAt:    &dueAt,
		Reminder: true,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.DueAt)
	assert.True(t, resp.Reminder)
}
