package voice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordParser_Parse(t *testing.T) {
	parser := NewKeywordParser()

	t.Run("task words win over domain vocabulary", func(t *testing.T) {
		cases := []string{
			"remind me to harvest the maize tomorrow",
			"add a task to plant beans in the south field",
			"todo record the fertilizer expense",
			"don't forget the harvest on Friday",
		}
		for _, transcript := range cases {
			intent, err := parser.Parse(transcript)

			require.NoError(t, err)
			assert.Equal(t, IntentTypeTask, intent.Type, "transcript: %s", transcript)
		}
	})

	t.Run("task title strips the command phrasing", func(t *testing.T) {
		intent, err := parser.Parse("remind me to water the seedlings")

		require.NoError(t, err)
		assert.Equal(t, "water the seedlings", intent.Title)
	})

	t.Run("expense vocabulary", func(t *testing.T) {
		intent, err := parser.Parse("I spent 2000 shillings on fertilizer")

		require.NoError(t, err)
		assert.Equal(t, IntentTypeExpense, intent.Type)
		require.NotNil(t, intent.Amount)
		assert.True(t, intent.Amount.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("income vocabulary", func(t *testing.T) {
		intent, err := parser.Parse("sold 3 bags of maize for KES 4500")

		require.NoError(t, err)
		assert.Equal(t, IntentTypeIncome, intent.Type)
		require.NotNil(t, intent.Quantity)
		assert.True(t, intent.Quantity.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, "bag", intent.Unit)
		require.NotNil(t, intent.Amount)
		assert.True(t, intent.Amount.Equal(decimal.NewFromInt(4500)))
	})

	t.Run("diacritics are folded before matching", func(t *testing.T) {
		intent, err := parser.Parse("Harvésted 20 kg of maïs")

		require.NoError(t, err)
		assert.Equal(t, IntentTypeHarvest, intent.Type)
		require.NotNil(t, intent.Quantity)
		assert.True(t, intent.Quantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("harvest vocabulary", func(t *testing.T) {
		intent, err := parser.Parse("harvested 350 kg from the north field")

		require.NoError(t, err)
		assert.Equal(t, IntentTypeHarvest, intent.Type)
		require.NotNil(t, intent.Quantity)
		assert.True(t, intent.Quantity.Equal(decimal.NewFromInt(350)))
		assert.Equal(t, "kg", intent.Unit)
	})

	t.Run("planting vocabulary", func(t *testing.T) {
		intent, err := parser.Parse("planted tomatoes in the greenhouse")

		require.NoError(t, err)
		assert.Equal(t, IntentTypePlant, intent.Type)
	})

	t.Run("unknown transcript", func(t *testing.T) {
		intent, err := parser.Parse("what a lovely morning")

		require.NoError(t, err)
		assert.Equal(t, IntentTypeUnknown, intent.Type)
		assert.Zero(t, intent.Confidence)
	})

	t.Run("fallback parses are marked", func(t *testing.T) {
		intent, err := parser.Parse("harvested 10 kg of beans")

		require.NoError(t, err)
		assert.Equal(t, "fallback", intent.Source)
	})
}
