package voice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	farmapp "github.com/agrihub/backend/internal/application/farm"
	financeapp "github.com/agrihub/backend/internal/application/finance"
	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/agrihub/backend/internal/domain/voice"
	"github.com/agrihub/backend/internal/infrastructure/telemetry"
)

// IntentParser resolves a transcript to a structured intent. Satisfied
// by ai.IntentClient.
type IntentParser interface {
	ParseTranscript(ctx context.Context, transcript string) (*voice.Intent, error)
}

// TaskRecorder is the slice of the farm task service the dispatcher needs
type TaskRecorder interface {
	Create(ctx context.Context, ownerID uuid.UUID, req farmapp.CreateTaskRequest) (*farmapp.TaskResponse, error)
}

// HarvestRecorder is the slice of the harvest service the dispatcher needs
type HarvestRecorder interface {
	Record(ctx context.Context, ownerID uuid.UUID, req farmapp.RecordHarvestRequest) (*farmapp.HarvestResponse, error)
}

// ExpenseRecorder is the slice of the expense service the dispatcher needs
type ExpenseRecorder interface {
	Record(ctx context.Context, ownerID uuid.UUID, req financeapp.RecordExpenseRequest) (*financeapp.ExpenseResponse, error)
}

// IncomeRecorder is the slice of the income service the dispatcher needs
type IncomeRecorder interface {
	Record(ctx context.Context, ownerID uuid.UUID, req financeapp.RecordIncomeRequest) (*financeapp.IncomeResponse, error)
}

// DispatchService turns parsed voice intents into farm records. Missing
// detail falls back to defaults the farmer can edit afterwards; the
// point of the voice path is capture-now, polish-later.
type DispatchService struct {
	parser          IntentParser
	tasks           TaskRecorder
	harvests        HarvestRecorder
	expenses        ExpenseRecorder
	incomes         IncomeRecorder
	fieldRepo       farm.FieldRepository
	metrics         *telemetry.BusinessMetrics
	defaultCurrency string
	logger          *zap.Logger
}

// NewDispatchService creates a new DispatchService. Metrics are optional.
func NewDispatchService(
	parser IntentParser,
	tasks TaskRecorder,
	harvests HarvestRecorder,
	expenses ExpenseRecorder,
	incomes IncomeRecorder,
	fieldRepo farm.FieldRepository,
	metrics *telemetry.BusinessMetrics,
	defaultCurrency string,
	logger *zap.Logger,
) *DispatchService {
	if defaultCurrency == "" {
		defaultCurrency = "KES"
	}
	return &DispatchService{
		parser:          parser,
		tasks:           tasks,
		harvests:        harvests,
		expenses:        expenses,
		incomes:         incomes,
		fieldRepo:       fieldRepo,
		metrics:         metrics,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Dispatch parses the transcript and creates the matching record
func (s *DispatchService) Dispatch(ctx context.Context, ownerID uuid.UUID, req DispatchRequest) (*DispatchResponse, error) {
	intent, err := s.parser.ParseTranscript(ctx, req.Transcript)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordVoiceIntent(ctx, intent.Type.String(), intent.Source)
	}

	s.logger.Info("voice intent resolved",
		zap.String("intent_type", intent.Type.String()),
		zap.String("source", intent.Source),
		zap.Float64("confidence", intent.Confidence))

	switch intent.Type {
	case voice.IntentTypeTask:
		return s.createTask(ctx, ownerID, intent, farm.TaskCategoryGeneral)
	case voice.IntentTypePlant:
		return s.createTask(ctx, ownerID, intent, farm.TaskCategoryPlanting)
	case voice.IntentTypeExpense:
		return s.recordExpense(ctx, ownerID, intent)
	case voice.IntentTypeIncome:
		return s.recordIncome(ctx, ownerID, intent)
	case voice.IntentTypeHarvest:
		return s.recordHarvest(ctx, ownerID, intent)
	default:
		return nil, shared.NewDomainError("UNKNOWN_INTENT", "Could not understand the voice command")
	}
}

func (s *DispatchService) createTask(ctx context.Context, ownerID uuid.UUID, intent *voice.Intent, category farm.TaskCategory) (*DispatchResponse, error) {
	title := intent.Title
	if title == "" {
		title = intent.Transcript
	}

	task, err := s.tasks.Create(ctx, ownerID, farmapp.CreateTaskRequest{
		Title:    title,
		Category: string(category),
		DueAt:    intent.DueAt,
		Reminder: intent.DueAt != nil,
		Source:   "voice",
	})
	if err != nil {
		return nil, err
	}

	return &DispatchResponse{Intent: intent, Action: "task_created", RecordID: task.ID}, nil
}

func (s *DispatchService) recordExpense(ctx context.Context, ownerID uuid.UUID, intent *voice.Intent) (*DispatchResponse, error) {
	if intent.Amount == nil {
		return nil, shared.NewDomainError("MISSING_AMOUNT", "Could not hear an amount in the command")
	}

	expense, err := s.expenses.Record(ctx, ownerID, financeapp.RecordExpenseRequest{
		Category:    string(finance.ExpenseCategoryOther),
		Description: intent.Transcript,
		Quantity:    decimal.NewFromInt(1),
		Unit:        intent.Unit,
		UnitPrice:   *intent.Amount,
		Currency:    s.currency(intent),
		IncurredAt:  time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &DispatchResponse{Intent: intent, Action: "expense_recorded", RecordID: expense.ID}, nil
}

func (s *DispatchService) recordIncome(ctx context.Context, ownerID uuid.UUID, intent *voice.Intent) (*DispatchResponse, error) {
	if intent.Amount == nil {
		return nil, shared.NewDomainError("MISSING_AMOUNT", "Could not hear an amount in the command")
	}

	income, err := s.incomes.Record(ctx, ownerID, financeapp.RecordIncomeRequest{
		Source:      string(finance.IncomeSourceHarvestSale),
		Description: intent.Transcript,
		Amount:      *intent.Amount,
		Currency:    s.currency(intent),
		ReceivedAt:  time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &DispatchResponse{Intent: intent, Action: "income_recorded", RecordID: income.ID}, nil
}

// recordHarvest books the quantity against the farmer's single active
// field. More than one active field is ambiguous; the farmer is asked
// to use the app instead of guessing wrong.
func (s *DispatchService) recordHarvest(ctx context.Context, ownerID uuid.UUID, intent *voice.Intent) (*DispatchResponse, error) {
	if intent.Quantity == nil {
		return nil, shared.NewDomainError("MISSING_QUANTITY", "Could not hear a quantity in the command")
	}

	fields, err := s.fieldRepo.FindActiveForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var target *farm.Field
	for i := range fields {
		if fields[i].Status.CanHarvest() {
			if target != nil {
				return nil, shared.NewDomainError("AMBIGUOUS_FIELD", "More than one field is ready to harvest; record it in the app")
			}
			target = &fields[i]
		}
	}
	if target == nil {
		return nil, shared.NewDomainError("NO_HARVESTABLE_FIELD", "No field is ready to harvest")
	}

	harvest, err := s.harvests.Record(ctx, ownerID, farmapp.RecordHarvestRequest{
		FieldID:     target.ID,
		CropType:    intent.CropType,
		QuantityKg:  *intent.Quantity,
		Grade:       string(farm.HarvestGradeB),
		HarvestedAt: time.Now(),
		Notes:       intent.Transcript,
	})
	if err != nil {
		return nil, err
	}

	return &DispatchResponse{Intent: intent, Action: "harvest_recorded", RecordID: harvest.ID}, nil
}

func (s *DispatchService) currency(intent *voice.Intent) string {
	if intent.Currency != "" {
		return intent.Currency
	}
	return s.defaultCurrency
}
