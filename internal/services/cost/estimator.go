package cost

import (
	"context"
	"fmt"

	"github.com/konseloradiksi/soapgen/internal/ai"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/models"
)

// DefaultOutputTokens approximates the length of a full SOAP note.
const DefaultOutputTokens = 1500

// Estimator counts the tokens of a prompt and prices them.
type Estimator struct {
	counter ai.TokenCounter
	calc    *Calculator
	model   string
}

func NewEstimator(counter ai.TokenCounter, calc *Calculator, model string) *Estimator {
	return &Estimator{
		counter: counter,
		calc:    calc,
		model:   model,
	}
}

// Estimate counts prompt with the model tokenizer. outputTokens <= 0 uses
// DefaultOutputTokens.
func (e *Estimator) Estimate(ctx context.Context, apiKey, prompt string, outputTokens int) (*models.TokenEstimate, error) {
	if outputTokens <= 0 {
		outputTokens = DefaultOutputTokens
	}

	inputTokens, err := e.counter.CountTokens(ctx, apiKey, prompt)
	if err != nil {
		return nil, fmt.Errorf("error counting tokens: %w", err)
	}

	estimate := &models.TokenEstimate{
		Model:            e.model,
		InputTokens:      inputTokens,
		OutputTokens:     outputTokens,
		EstimatedCostUSD: e.calc.EstimateCost(e.model, inputTokens, outputTokens),
	}

	logger.Debug(ctx, "token estimate",
		"model", e.model,
		"tokens", inputTokens,
		"output_tokens", outputTokens,
		"cost_usd", estimate.EstimatedCostUSD)

	return estimate, nil
}

// HasPricing reports whether the estimator's model has a known price.
func (e *Estimator) HasPricing() bool {
	_, err := e.calc.GetPricing(e.model)
	return err == nil
}
