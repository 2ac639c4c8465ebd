package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ExpenseRecordedEvent is raised when a new expense is logged
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	ExpenseID  uuid.UUID       `json:"expense_id"`
	Category   ExpenseCategory `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	IncurredAt time.Time       `json:"incurred_at"`
}

// EventType returns the event type name
func (e *ExpenseRecordedEvent) EventType() string {
	return "ExpenseRecorded"
}

// NewExpenseRecordedEvent creates a new ExpenseRecordedEvent
func NewExpenseRecordedEvent(record *ExpenseRecord) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ExpenseRecorded", "ExpenseRecord", record.ID, record.OwnerID),
		ExpenseID:       record.ID,
		Category:        record.Category,
		Total:           record.Total,
		Currency:        record.Currency,
		IncurredAt:      record.IncurredAt,
	}
}

// IncomeRecordedEvent is raised when a new income entry is logged
type IncomeRecordedEvent struct {
	shared.BaseDomainEvent
	IncomeID   uuid.UUID       `json:"income_id"`
	Source     IncomeSource    `json:"source"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	ReceivedAt time.Time       `json:"received_at"`
}

// EventType returns the event type name
func (e *IncomeRecordedEvent) EventType() string {
	return "IncomeRecorded"
}

// NewIncomeRecordedEvent creates a new IncomeRecordedEvent
func NewIncomeRecordedEvent(record *IncomeRecord) *IncomeRecordedEvent {
	return &IncomeRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("IncomeRecorded", "IncomeRecord", record.ID, record.OwnerID),
		IncomeID:        record.ID,
		Source:          record.Source,
		Amount:          record.Amount,
		Currency:        record.Currency,
		ReceivedAt:      record.ReceivedAt,
	}
}
