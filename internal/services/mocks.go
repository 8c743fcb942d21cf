package services

import (
	"context"

	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, apiKey, prompt string, progress models.ProgressFunc) (string, error) {
	args := m.Called(ctx, apiKey, prompt, progress)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) GetModelName() string {
	args := m.Called()
	return args.String(0)
}
