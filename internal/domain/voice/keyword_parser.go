package voice

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// KeywordParser is the offline fallback used when the remote intent
// endpoint is unavailable. It classifies by vocabulary and pulls out the
// first quantity it can find.
//
// Task words win over everything else: "remind me to harvest the maize"
// is a reminder about harvesting, not a harvest record.
type KeywordParser struct{}

// NewKeywordParser creates the fallback parser
func NewKeywordParser() *KeywordParser {
	return &KeywordParser{}
}

var (
	taskWords    = []string{"task", "remind", "reminder", "todo", "to-do", "to do list", "don't forget", "schedule"}
	expenseWords = []string{"spent", "expense", "bought", "paid", "purchase", "cost me"}
	incomeWords  = []string{"earned", "income", "sold", "received", "got paid", "revenue"}
	harvestWords = []string{"harvest", "picked", "reaped", "yield"}
	plantWords   = []string{"plant", "planted", "sow", "sowed", "seeded", "transplant"}

	// e.g. "350 kg", "12.5 litres", "5 bags of"
	quantityRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kg|kilo|kilos|kilogram|kilograms|litre|litres|liter|liters|bag|bags|sack|sacks|crate|crates)\b`)

	// e.g. "2000 shillings", "KES 1500", "$45"
	amountRe = regexp.MustCompile(`(?i)(?:kes|ksh|usd|\$)\s*(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)\s*(?:shillings?|dollars?|kes|ksh|usd)\b`)
)

// stripMarks removes combining marks so transcripts with diacritics
// ("récolte", "maïs") still hit the plain-ASCII vocabulary.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldTranscript(transcript string) string {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if folded, _, err := transform.String(stripMarks, text); err == nil {
		return folded
	}
	return text
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Parse classifies the transcript by keyword. It never fails; an
// unrecognized transcript comes back as IntentTypeUnknown.
func (p *KeywordParser) Parse(transcript string) (*Intent, error) {
	text := foldTranscript(transcript)

	intent := &Intent{
		Type:       IntentTypeUnknown,
		Transcript: transcript,
		Confidence: 0.5,
		Source:     "fallback",
	}

	switch {
	case containsAny(text, taskWords):
		intent.Type = IntentTypeTask
		intent.Title = taskTitle(transcript)
	case containsAny(text, expenseWords):
		intent.Type = IntentTypeExpense
	case containsAny(text, incomeWords):
		intent.Type = IntentTypeIncome
	case containsAny(text, harvestWords):
		intent.Type = IntentTypeHarvest
	case containsAny(text, plantWords):
		intent.Type = IntentTypePlant
	default:
		intent.Confidence = 0
		return intent, nil
	}

	if m := quantityRe.FindStringSubmatch(text); m != nil {
		if qty, err := decimal.NewFromString(m[1]); err == nil {
			intent.Quantity = &qty
			intent.Unit = normalizeUnit(m[2])
		}
	}
	if m := amountRe.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if amt, err := decimal.NewFromString(raw); err == nil {
			intent.Amount = &amt
		}
	}

	return intent, nil
}

// taskTitle strips the leading command phrasing so "remind me to water
// the seedlings" titles the task "water the seedlings".
func taskTitle(transcript string) string {
	text := strings.TrimSpace(transcript)
	lower := strings.ToLower(text)

	for _, prefix := range []string{"remind me to ", "remind me ", "add a task to ", "add task ", "create a task to ", "todo "} {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(text[len(prefix):])
		}
	}
	return text
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(unit) {
	case "kg", "kilo", "kilos", "kilogram", "kilograms":
		return "kg"
	case "litre", "litres", "liter", "liters":
		return "litre"
	case "bag", "bags":
		return "bag"
	case "sack", "sacks":
		return "sack"
	case "crate", "crates":
		return "crate"
	}
	return unit
}
