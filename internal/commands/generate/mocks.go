package generate

import (
	"context"

	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) TryGenerateNote(ctx context.Context, apiKey string, req models.NoteRequest, progress models.ProgressFunc) (string, error) {
	args := m.Called(ctx, apiKey, req, progress)
	return args.String(0), args.Error(1)
}
