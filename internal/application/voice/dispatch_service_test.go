package voice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	farmapp "github.com/agrihub/backend/internal/application/farm"
	financeapp "github.com/agrihub/backend/internal/application/finance"
	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/agrihub/backend/internal/domain/voice"
)

// stubParser returns a canned intent
type stubParser struct {
	intent *voice.Intent
	err    error
}

func (p *stubParser) ParseTranscript(_ context.Context, transcript string) (*voice.Intent, error) {
	if p.err != nil {
		return nil, p.err
	}
	intent := *p.intent
	intent.Transcript = transcript
	return &intent, nil
}

type capturingTaskRecorder struct {
	req farmapp.CreateTaskRequest
	id  uuid.UUID
}

func (r *capturingTaskRecorder) Create(_ context.Context, _ uuid.UUID, req farmapp.CreateTaskRequest) (*farmapp.TaskResponse, error) {
	r.req = req
	r.id = uuid.New()
	return &farmapp.TaskResponse{ID: r.id, Title: req.Title, Source: req.Source}, nil
}

type capturingHarvestRecorder struct {
	req farmapp.RecordHarvestRequest
	id  uuid.UUID
}

func (r *capturingHarvestRecorder) Record(_ context.Context, _ uuid.UUID, req farmapp.RecordHarvestRequest) (*farmapp.HarvestResponse, error) {
	r.req = req
	r.id = uuid.New()
	return &farmapp.HarvestResponse{ID: r.id, FieldID: req.FieldID, QuantityKg: req.QuantityKg}, nil
}

type capturingExpenseRecorder struct {
	req financeapp.RecordExpenseRequest
	id  uuid.UUID
}

func (r *capturingExpenseRecorder) Record(_ context.Context, _ uuid.UUID, req financeapp.RecordExpenseRequest) (*financeapp.ExpenseResponse, error) {
	r.req = req
	r.id = uuid.New()
	return &financeapp.ExpenseResponse{ID: r.id, Total: req.Quantity.Mul(req.UnitPrice)}, nil
}

type capturingIncomeRecorder struct {
	req financeapp.RecordIncomeRequest
	id  uuid.UUID
}

func (r *capturingIncomeRecorder) Record(_ context.Context, _ uuid.UUID, req financeapp.RecordIncomeRequest) (*financeapp.IncomeResponse, error) {
	r.req = req
	r.id = uuid.New()
	return &financeapp.IncomeResponse{ID: r.id, Amount: req.Amount}, nil
}

// stubFieldRepo serves FindActiveForOwner from a fixed slice
type stubFieldRepo struct {
	farm.FieldRepository
	fields []farm.Field
}

func (r *stubFieldRepo) FindActiveForOwner(_ context.Context, _ uuid.UUID) ([]farm.Field, error) {
	return r.fields, nil
}

func harvestableField(t *testing.T) farm.Field {
	t.Helper()
	field, err := farm.NewField(uuid.New(), "North plot", "maize", decimal.NewFromInt(2), "2026-wet")
	require.NoError(t, err)
	require.NoError(t, field.RecordPlanting(time.Now().AddDate(0, -3, 0), nil))
	require.NoError(t, field.MarkGrowing())
	field.ClearDomainEvents()
	return *field
}

type dispatchFixture struct {
	parser   *stubParser
	tasks    *capturingTaskRecorder
	harvests *capturingHarvestRecorder
	expenses *capturingExpenseRecorder
	incomes  *capturingIncomeRecorder
	fields   *stubFieldRepo
	svc      *DispatchService
}

func newDispatchFixture(intent *voice.Intent) *dispatchFixture {
	f := &dispatchFixture{
		parser:   &stubParser{intent: intent},
		tasks:    &capturingTaskRecorder{},
		harvests: &capturingHarvestRecorder{},
		expenses: &capturingExpenseRecorder{},
		incomes:  &capturingIncomeRecorder{},
		fields:   &stubFieldRepo{},
	}
	f.svc = NewDispatchService(f.parser, f.tasks, f.harvests, f.expenses, f.incomes, f.fields, nil, "KES", zap.NewNop())
	return f
}

func TestDispatchService_TaskIntent(t *testing.T) {
	f := newDispatchFixture(&voice.Intent{
		Type:  voice.IntentTypeTask,
		Title: "water the seedlings",
	})

	resp, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "remind me to water the seedlings",
	})
	require.NoError(t, err)

	assert.Equal(t, "task_created", resp.Action)
	assert.Equal(t, f.tasks.id, resp.RecordID)
	assert.Equal(t, "water the seedlings", f.tasks.req.Title)
	assert.Equal(t, "GENERAL", f.tasks.req.Category)
	assert.Equal(t, "voice", f.tasks.req.Source)
}

func TestDispatchService_PlantIntent(t *testing.T) {
	f := newDispatchFixture(&voice.Intent{Type: voice.IntentTypePlant})

	resp, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "planted beans in the east field",
	})
	require.NoError(t, err)

	assert.Equal(t, "task_created", resp.Action)
	assert.Equal(t, "PLANTING", f.tasks.req.Category)
	// no extracted title: the transcript itself becomes the task
	assert.Equal(t, "planted beans in the east field", f.tasks.req.Title)
}

func TestDispatchService_ExpenseIntent(t *testing.T) {
	amount := decimal.NewFromInt(2000)
	f := newDispatchFixture(&voice.Intent{
		Type:   voice.IntentTypeExpense,
		Amount: &amount,
	})

	resp, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "spent 2000 shillings on fertilizer",
	})
	require.NoError(t, err)

	assert.Equal(t, "expense_recorded", resp.Action)
	assert.True(t, f.expenses.req.UnitPrice.Equal(amount))
	assert.True(t, f.expenses.req.Quantity.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "KES", f.expenses.req.Currency)
	assert.Equal(t, "OTHER", f.expenses.req.Category)
}

func TestDispatchService_ExpenseIntent_NoAmount(t *testing.T) {
	f := newDispatchFixture(&voice.Intent{Type: voice.IntentTypeExpense})

	_, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "bought some fertilizer",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_AMOUNT", domainErr.Code)
}

func TestDispatchService_IncomeIntent(t *testing.T) {
	amount := decimal.NewFromInt(4500)
	f := newDispatchFixture(&voice.Intent{
		Type:     voice.IntentTypeIncome,
		Amount:   &amount,
		Currency: "USD",
	})

	resp, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "sold maize for 4500",
	})
	require.NoError(t, err)

	assert.Equal(t, "income_recorded", resp.Action)
	assert.Equal(t, "HARVEST_SALE", f.incomes.req.Source)
	assert.Equal(t, "USD", f.incomes.req.Currency)
}

func TestDispatchService_HarvestIntent(t *testing.T) {
	qty := decimal.NewFromInt(350)
	f := newDispatchFixture(&voice.Intent{
		Type:     voice.IntentTypeHarvest,
		Quantity: &qty,
		Unit:     "kg",
	})
	f.fields.fields = []farm.Field{harvestableField(t)}

	resp, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "harvested 350 kg from the north field",
	})
	require.NoError(t, err)

	assert.Equal(t, "harvest_recorded", resp.Action)
	assert.Equal(t, f.fields.fields[0].ID, f.harvests.req.FieldID)
	assert.True(t, f.harvests.req.QuantityKg.Equal(qty))
}

func TestDispatchService_HarvestIntent_NoField(t *testing.T) {
	qty := decimal.NewFromInt(100)
	f := newDispatchFixture(&voice.Intent{Type: voice.IntentTypeHarvest, Quantity: &qty})

	_, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "harvested 100 kg",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_HARVESTABLE_FIELD", domainErr.Code)
}

func TestDispatchService_HarvestIntent_AmbiguousFields(t *testing.T) {
	qty := decimal.NewFromInt(100)
	f := newDispatchFixture(&voice.Intent{Type: voice.IntentTypeHarvest, Quantity: &qty})
	f.fields.fields = []farm.Field{harvestableField(t), harvestableField(t)}

	_, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "harvested 100 kg",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMBIGUOUS_FIELD", domainErr.Code)
}

func TestDispatchService_UnknownIntent(t *testing.T) {
	f := newDispatchFixture(&voice.Intent{Type: voice.IntentTypeUnknown})

	_, err := f.svc.Dispatch(context.Background(), uuid.New(), DispatchRequest{
		Transcript: "what a lovely morning",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNKNOWN_INTENT", domainErr.Code)
}
