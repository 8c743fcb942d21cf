package services

import (
	"context"
	"time"

	"github.com/konseloradiksi/soapgen/internal/ai"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/models"
)

const fallbackMessageID = "fallback_note"

// NoteService turns a counseling issue and a client description into a SOAP
// note using a TextGenerator.
type NoteService struct {
	generator ai.TextGenerator
	trans     *i18n.Translations
}

// NewNoteService creates a NoteService whose prompt template and fallback
// message follow the active language of trans.
func NewNoteService(generator ai.TextGenerator, trans *i18n.Translations) *NoteService {
	return &NoteService{
		generator: generator,
		trans:     trans,
	}
}

// BuildPrompt returns the exact prompt GenerateNote would send for req.
func (s *NoteService) BuildPrompt(req models.NoteRequest) string {
	return ai.BuildSOAPPrompt(ai.GetSOAPPromptTemplate(s.trans.Language()), req.Issue, req.Description)
}

// FallbackMessage is shown in place of a note when generation fails.
func (s *NoteService) FallbackMessage() string {
	return s.trans.GetMessage(fallbackMessageID, 0, nil)
}

// GenerateNote returns the generated note, or the fallback message when the
// call fails or yields no text. Errors are logged and never returned.
func (s *NoteService) GenerateNote(ctx context.Context, apiKey string, req models.NoteRequest, progress models.ProgressFunc) string {
	note, _ := s.TryGenerateNote(ctx, apiKey, req, progress)
	return note
}

// TryGenerateNote behaves like GenerateNote but also returns the error of
// the generation call. Empty text is reported as an unexpected response
// shape. The returned note is always displayable.
func (s *NoteService) TryGenerateNote(ctx context.Context, apiKey string, req models.NoteRequest, progress models.ProgressFunc) (string, error) {
	log := logger.FromContext(ctx).With("issue", req.Issue, "model", s.generator.GetModelName())
	start := time.Now()

	text, err := s.generator.Generate(ctx, apiKey, s.BuildPrompt(req), progress)
	if err != nil {
		log.Error("SOAP note generation failed",
			"kind", domainErrors.KindOf(err),
			"status", domainErrors.StatusCode(err),
			"error", err)
		return s.FallbackMessage(), err
	}

	if text == "" {
		log.Warn("SOAP note generation returned no text")
		return s.FallbackMessage(), domainErrors.ErrUnexpectedResponseShape.WithContext("missing", "text")
	}

	log.Debug("SOAP note generated", "size", len(text), "duration_ms", time.Since(start).Milliseconds())
	return text, nil
}
