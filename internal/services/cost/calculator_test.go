package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_EstimateCost(t *testing.T) {
	tests := []struct {
		name         string
		model        string
		inputTokens  int
		outputTokens int
		want         float64
	}{
		{
			name:         "flash exact match",
			model:        "gemini-2.5-flash",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			want:         0.30 + 2.50,
		},
		{
			name:         "case insensitive",
			model:        "GEMINI-2.5-PRO",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			want:         1.25 + 10.00,
		},
		{
			name:         "lite is not priced as flash",
			model:        "gemini-2.5-flash-lite",
			inputTokens:  1_000_000,
			outputTokens: 0,
			want:         0.10,
		},
		{
			name:         "versioned name resolves to its family",
			model:        "gemini-2.5-flash-preview-05-20",
			inputTokens:  2_000,
			outputTokens: 1_000,
			want:         (2_000.0/1_000_000)*0.30 + (1_000.0/1_000_000)*2.50,
		},
		{
			name:         "unknown model",
			model:        "gpt-4o",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			want:         0,
		},
		{
			name:  "zero tokens",
			model: "gemini-2.5-flash",
			want:  0,
		},
	}

	calc := NewCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.EstimateCost(tt.model, tt.inputTokens, tt.outputTokens)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculator_GetPricing(t *testing.T) {
	calc := NewCalculator()

	t.Run("known model", func(t *testing.T) {
		table, err := calc.GetPricing("gemini-2.5-flash")
		require.NoError(t, err)
		assert.Equal(t, 0.30, table.InputPricePerMillion)
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := calc.GetPricing("claude-3-haiku")
		assert.Error(t, err)
	})
}

func TestCalculator_AddPricing(t *testing.T) {
	calc := NewCalculator()
	calc.AddPricing("Custom-Model", PricingTable{InputPricePerMillion: 1, OutputPricePerMillion: 2})

	assert.InDelta(t, 3.0, calc.EstimateCost("custom-model", 1_000_000, 1_000_000), 1e-9)

	other := NewCalculator()
	assert.Zero(t, other.EstimateCost("custom-model", 1_000_000, 1_000_000), "pricing is per calculator")
}
