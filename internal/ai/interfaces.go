package ai

import (
	"context"

	"github.com/konseloradiksi/soapgen/internal/models"
)

// TextGenerator is implemented by clients that turn a prompt into generated text.
type TextGenerator interface {
	// Generate sends prompt with apiKey and returns the generated text.
	// Errors are *errors.AppError values of the generation taxonomy.
	Generate(ctx context.Context, apiKey, prompt string, progress models.ProgressFunc) (string, error)

	// GetModelName returns the name of the current model (e.g.: "gemini-2.5-flash")
	GetModelName() string
}

// TokenCounter counts the tokens of a prompt without generating content.
type TokenCounter interface {
	CountTokens(ctx context.Context, apiKey, prompt string) (int, error)
}
