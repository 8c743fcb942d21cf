package ui

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUI(t *testing.T, lang string) *i18n.Translations {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	trans, err := i18n.NewTranslations(lang, "")
	require.NoError(t, err)
	return trans
}

func TestHandleAppError(t *testing.T) {
	trans := setupUI(t, "en")

	t.Run("prints type, details and suggestion", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, domainErrors.ErrNetwork.WithError(errors.New("connection refused")), trans)

		out := buf.String()
		assert.Contains(t, out, "NETWORK: network error calling the generation API")
		assert.Contains(t, out, "Details: connection refused")
		assert.Contains(t, out, "Try: Check your internet connection")
	})

	t.Run("falls back to a plain error line", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, errors.New("boom"), nil)

		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("ignores nil", func(t *testing.T) {
		var buf bytes.Buffer
		HandleAppError(&buf, nil, trans)
		assert.Empty(t, buf.String())
	})
}

func TestSelectIssue(t *testing.T) {
	trans := setupUI(t, "en")

	t.Run("accepts a menu number", func(t *testing.T) {
		var out bytes.Buffer

		issue, err := SelectIssue(bufio.NewReader(strings.NewReader("10\n")), &out, trans)

		require.NoError(t, err)
		assert.Equal(t, "Anxiety", issue)
		assert.Contains(t, out.String(), "10. Anxiety")
	})

	t.Run("re-asks after an invalid choice", func(t *testing.T) {
		var out bytes.Buffer

		issue, err := SelectIssue(bufio.NewReader(strings.NewReader("99\nsocial anxiety\n")), &out, trans)

		require.NoError(t, err)
		assert.Equal(t, "Social Anxiety", issue)
		assert.Contains(t, out.String(), "Unknown counseling issue: 99")
	})

	t.Run("accepts input without a trailing newline", func(t *testing.T) {
		issue, err := SelectIssue(bufio.NewReader(strings.NewReader("OCD")), &bytes.Buffer{}, trans)

		require.NoError(t, err)
		assert.Equal(t, "OCD", issue)
	})

	t.Run("fails at end of input", func(t *testing.T) {
		_, err := SelectIssue(bufio.NewReader(strings.NewReader("nope\n")), &bytes.Buffer{}, trans)

		assert.True(t, errors.Is(err, domainErrors.ErrUnknownIssue))
	})
}

func TestReadDescription(t *testing.T) {
	trans := setupUI(t, "id")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stops at empty line", "Klien laki-laki.\nUsia 32 tahun.\n\nignored\n", "Klien laki-laki.\nUsia 32 tahun."},
		{"stops at EOF", "satu baris", "satu baris"},
		{"empty description", "\n", ""},
		{"nothing at all", "", ""},
		{"windows line endings", "a\r\nb\r\n\r\n", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadDescription(bufio.NewReader(strings.NewReader(tt.input)), &bytes.Buffer{}, trans)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetryWarning(t *testing.T) {
	trans := setupUI(t, "id")

	msg := RetryWarning(trans, models.ProgressEvent{
		Type:       models.ProgressRetryScheduled,
		StatusCode: 429,
		Delay:      4 * time.Second,
	})

	assert.Contains(t, msg, "status 429")
	assert.Contains(t, msg, "Mencoba lagi dalam 4 detik")
}

func TestProgressReporter(t *testing.T) {
	trans := setupUI(t, "en")
	var out bytes.Buffer
	s := NewSmartSpinner(&out, "working")

	report := ProgressReporter(s, trans, 5)
	report(models.ProgressEvent{Type: models.ProgressAttemptStarted, Attempt: 0})
	report(models.ProgressEvent{Type: models.ProgressRetryScheduled, StatusCode: 503, Delay: time.Second})
	report(models.ProgressEvent{Type: models.ProgressAttemptStarted, Attempt: 1})

	assert.Contains(t, out.String(), "Retrying in 1 seconds")
	assert.Contains(t, s.spinner.Suffix, "attempt 2 of 5")
}

func TestPrinters(t *testing.T) {
	setupUI(t, "en")
	var buf bytes.Buffer

	PrintSectionBanner(&buf, "Full SOAP Note")
	PrintKeyValue(&buf, "Model", "gemini-2.5-flash")
	PrintDuration(&buf, "done", 1234*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Full SOAP Note")
	assert.Contains(t, out, "Model: gemini-2.5-flash")
	assert.Contains(t, out, "done (1.23s)")
}

func TestErrorSummary(t *testing.T) {
	trans := setupUI(t, "id")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"credential", domainErrors.ErrMissingCredential, "Kunci API tidak ditemukan"},
		{"shape", domainErrors.ErrUnexpectedResponseShape, "Format respons API tidak terduga"},
		{"http", domainErrors.NewHTTPError(403, "denied"), "status 403"},
		{"network", domainErrors.ErrNetwork.WithError(errors.New("timeout")), "Kesalahan jaringan"},
		{"api call", domainErrors.ErrAPICall.WithError(errors.New("panic")), "Kesalahan selama panggilan API"},
		{"foreign", errors.New("plain"), "Kesalahan selama panggilan API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, ErrorSummary(trans, tt.err), tt.want)
		})
	}
}
