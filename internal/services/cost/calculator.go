package cost

import (
	"fmt"
	"sort"
	"strings"
)

type PricingTable struct {
	InputPricePerMillion  float64
	OutputPricePerMillion float64
}

// https://ai.google.dev/gemini-api/docs/pricing
var defaultPricing = map[string]PricingTable{
	"gemini-2.5-pro":        {InputPricePerMillion: 1.25, OutputPricePerMillion: 10.00},
	"gemini-2.5-flash":      {InputPricePerMillion: 0.30, OutputPricePerMillion: 2.50},
	"gemini-2.5-flash-lite": {InputPricePerMillion: 0.10, OutputPricePerMillion: 0.40},
	"gemini-2.0-flash":      {InputPricePerMillion: 0.10, OutputPricePerMillion: 0.40},
}

type Calculator struct {
	pricing map[string]PricingTable
}

func NewCalculator() *Calculator {
	pricing := make(map[string]PricingTable, len(defaultPricing))
	for model, table := range defaultPricing {
		pricing[model] = table
	}
	return &Calculator{pricing: pricing}
}

// EstimateCost returns the USD cost of the given token counts, or 0 when the
// model has no known price.
func (c *Calculator) EstimateCost(model string, inputTokens, outputTokens int) float64 {
	table, err := c.GetPricing(model)
	if err != nil {
		return 0
	}

	inputCost := (float64(inputTokens) / 1_000_000) * table.InputPricePerMillion
	outputCost := (float64(outputTokens) / 1_000_000) * table.OutputPricePerMillion

	return inputCost + outputCost
}

// GetPricing looks the model up by exact name first, then by the longest
// known name it starts with, so versioned names like gemini-2.5-flash-001
// resolve to their family.
func (c *Calculator) GetPricing(model string) (PricingTable, error) {
	model = strings.ToLower(strings.TrimSpace(model))

	if table, ok := c.pricing[model]; ok {
		return table, nil
	}

	names := make([]string, 0, len(c.pricing))
	for name := range c.pricing {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for _, name := range names {
		if strings.HasPrefix(model, name) {
			return c.pricing[name], nil
		}
	}

	return PricingTable{}, fmt.Errorf("model %s not found", model)
}

// AddPricing registers or replaces the price of a model on this calculator.
func (c *Calculator) AddPricing(model string, table PricingTable) {
	c.pricing[strings.ToLower(model)] = table
}
