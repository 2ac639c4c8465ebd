package voice

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntentType classifies what a voice transcript asks for
type IntentType string

const (
	IntentTypeTask    IntentType = "TASK"    // Create a to-do / reminder
	IntentTypeExpense IntentType = "EXPENSE" // Log an expense
	IntentTypeIncome  IntentType = "INCOME"  // Log income
	IntentTypeHarvest IntentType = "HARVEST" // Record a harvest
	IntentTypePlant   IntentType = "PLANT"   // Record planting
	IntentTypeUnknown IntentType = "UNKNOWN"
)

// IsValid checks if the type is a valid IntentType
func (t IntentType) IsValid() bool {
	switch t {
	case IntentTypeTask, IntentTypeExpense, IntentTypeIncome,
		IntentTypeHarvest, IntentTypePlant, IntentTypeUnknown:
		return true
	}
	return false
}

// String returns the string representation of IntentType
func (t IntentType) String() string {
	return string(t)
}

// Intent is the structured result of parsing a voice transcript. Fields
// beyond Type are best-effort extractions; the dispatcher falls back to
// sensible defaults for anything missing.
type Intent struct {
	Type       IntentType       `json:"type"`
	Transcript string           `json:"transcript"`
	Title      string           `json:"title,omitempty"`
	CropType   string           `json:"crop_type,omitempty"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	Unit       string           `json:"unit,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Currency   string           `json:"currency,omitempty"`
	DueAt      *time.Time       `json:"due_at,omitempty"`
	Confidence float64          `json:"confidence"` // 0..1, 1.0 for remote parses
	Source     string           `json:"source"`     // "remote" or "fallback"
}

// Parser turns a transcript into a structured intent
type Parser interface {
	Parse(transcript string) (*Intent, error)
}
