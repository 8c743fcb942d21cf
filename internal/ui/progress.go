package ui

import (
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/models"
)

// RetryWarning renders a retry_scheduled event as the advisory shown to the
// user.
func RetryWarning(t *i18n.Translations, e models.ProgressEvent) string {
	return t.GetMessage("retry_warning", 0, map[string]interface{}{
		"Status":  e.StatusCode,
		"Seconds": int(e.Delay.Seconds()),
	})
}

// ProgressReporter keeps the spinner in sync with the generation attempts
// and prints retry warnings above it.
func ProgressReporter(s *SmartSpinner, t *i18n.Translations, maxAttempts int) models.ProgressFunc {
	return func(e models.ProgressEvent) {
		switch e.Type {
		case models.ProgressAttemptStarted:
			if e.Attempt > 0 {
				s.UpdateMessage(t.GetMessage("generate_attempt", 0, map[string]interface{}{
					"Attempt": e.Attempt + 1,
					"Max":     maxAttempts,
				}))
			}
		case models.ProgressRetryScheduled:
			s.Warn(RetryWarning(t, e))
		}
	}
}

// ErrorSummary returns a one-line localized description of a generation
// error, suitable for showing next to the fallback note.
func ErrorSummary(t *i18n.Translations, err error) string {
	switch domainErrors.KindOf(err) {
	case domainErrors.TypeCredential:
		return t.GetMessage("error_missing_credential", 0, nil)
	case domainErrors.TypeResponse:
		return t.GetMessage("error_unexpected_shape", 0, nil)
	case domainErrors.TypeHTTP:
		return t.GetMessage("error_http", 0, map[string]interface{}{
			"Status": domainErrors.StatusCode(err),
		})
	case domainErrors.TypeNetwork:
		return t.GetMessage("error_network", 0, nil)
	default:
		return t.GetMessage("error_api_call", 0, nil)
	}
}
