package generate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/konseloradiksi/soapgen/internal/config"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/konseloradiksi/soapgen/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const fallback = "Failed to generate the SOAP note. Make sure your API key is valid and filled in."

func setupGenerateTest(t *testing.T, input string) (*MockNoteService, *cli.Command, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })
	t.Setenv(config.EnvAPIKey, "")

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	notes := new(MockNoteService)
	cmd := NewGenerateCommandFactory(notes).CreateCommand(translations, config.Default())

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "soapgen",
		Writer:   &out,
		Reader:   strings.NewReader(input),
		Commands: []*cli.Command{cmd},
	}
	return notes, app, &out
}

func TestGenerateCommand(t *testing.T) {
	t.Run("should generate from flags", func(t *testing.T) {
		notes, app, out := setupGenerateTest(t, "")
		notes.On("TryGenerateNote", mock.Anything, "flag-key",
			models.NoteRequest{Issue: "Anxiety", Description: "Client, 25."}, mock.Anything).
			Return("S: anxious\nO: restless", nil)

		err := app.Run(context.Background(), []string{"soapgen", "generate",
			"--issue", "anxiety", "--description", "Client, 25.", "--api-key", "flag-key"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Full SOAP Note")
		assert.Contains(t, out.String(), "S: anxious\nO: restless")
		notes.AssertExpectations(t)
	})

	t.Run("should resolve a menu number and read the key from the environment", func(t *testing.T) {
		notes, app, _ := setupGenerateTest(t, "")
		t.Setenv(config.EnvAPIKey, "env-key")
		notes.On("TryGenerateNote", mock.Anything, "env-key",
			models.NoteRequest{Issue: "Anxiety", Description: ""}, mock.Anything).
			Return("note", nil)

		err := app.Run(context.Background(), []string{"soapgen", "g", "-i", "10", "-d", ""})

		require.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("should ask for missing inputs", func(t *testing.T) {
		notes, app, out := setupGenerateTest(t, "10\nMale client, 32.\nCourt ordered.\n\n")
		notes.On("TryGenerateNote", mock.Anything, "k",
			models.NoteRequest{Issue: "Anxiety", Description: "Male client, 32.\nCourt ordered."}, mock.Anything).
			Return("note", nil)

		err := app.Run(context.Background(), []string{"soapgen", "generate", "--api-key", "k"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Choose an Addiction Counseling Issue:")
		assert.Contains(t, out.String(), "Client Description")
		notes.AssertExpectations(t)
	})

	t.Run("should reject an unknown issue before calling the service", func(t *testing.T) {
		notes, app, _ := setupGenerateTest(t, "")

		err := app.Run(context.Background(), []string{"soapgen", "generate", "--issue", "Insomnia", "-d", "x", "-k", "k"})

		assert.True(t, errors.Is(err, domainErrors.ErrUnknownIssue))
		notes.AssertNotCalled(t, "TryGenerateNote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should print the fallback and return the error", func(t *testing.T) {
		notes, app, out := setupGenerateTest(t, "")
		notes.On("TryGenerateNote", mock.Anything, "", mock.Anything, mock.Anything).
			Return(fallback, domainErrors.ErrMissingCredential)

		err := app.Run(context.Background(), []string{"soapgen", "generate", "-i", "OCD", "-d", "x"})

		assert.True(t, errors.Is(err, domainErrors.ErrMissingCredential))
		assert.Contains(t, out.String(), fallback)
		assert.NotContains(t, out.String(), "Full SOAP Note")
	})

	t.Run("should print retry warnings", func(t *testing.T) {
		notes, app, out := setupGenerateTest(t, "")
		notes.On("TryGenerateNote", mock.Anything, "k", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(3).(models.ProgressFunc).Emit(models.ProgressEvent{
					Type:       models.ProgressRetryScheduled,
					StatusCode: 429,
					Delay:      2 * time.Second,
				})
			}).
			Return("note", nil)

		err := app.Run(context.Background(), []string{"soapgen", "generate", "-i", "OCD", "-d", "x", "-k", "k"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "status 429")
		assert.Contains(t, out.String(), "Retrying in 2 seconds")
	})

	t.Run("should save the note to a file", func(t *testing.T) {
		notes, app, out := setupGenerateTest(t, "")
		notes.On("TryGenerateNote", mock.Anything, "k", mock.Anything, mock.Anything).Return("S: note", nil)
		path := filepath.Join(t.TempDir(), "note.txt")

		err := app.Run(context.Background(), []string{"soapgen", "generate", "-i", "OCD", "-d", "x", "-k", "k", "-o", path})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "S: note\n", string(data))
		assert.Contains(t, out.String(), "Note saved to "+path)
	})
}

func runWithNoteService(t *testing.T, ctx context.Context, gen *services.MockTextGenerator, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	notes := services.NewNoteService(gen, translations)
	var out bytes.Buffer
	app := &cli.Command{
		Name:     "soapgen",
		Writer:   &out,
		Reader:   strings.NewReader(""),
		Commands: []*cli.Command{NewGenerateCommandFactory(notes).CreateCommand(translations, config.Default())},
	}
	return &out, app.Run(ctx, append([]string{"soapgen", "generate"}, args...))
}

func TestGenerateCommand_WithNoteService(t *testing.T) {
	t.Run("should fail on empty generated text without saving it", func(t *testing.T) {
		gen := new(services.MockTextGenerator)
		gen.On("GetModelName").Return("gemini-2.5-flash")
		gen.On("Generate", mock.Anything, "k", mock.Anything, mock.Anything).Return("", nil)
		path := filepath.Join(t.TempDir(), "note.txt")

		out, err := runWithNoteService(t, context.Background(), gen, "-i", "OCD", "-d", "x", "-k", "k", "-o", path)

		assert.True(t, errors.Is(err, domainErrors.ErrUnexpectedResponseShape))
		assert.Contains(t, out.String(), fallback)
		assert.NotContains(t, out.String(), "Full SOAP Note")
		assert.NotContains(t, out.String(), "Note saved to")
		assert.NoFileExists(t, path)
	})

	t.Run("should log the issue once per record", func(t *testing.T) {
		gen := new(services.MockTextGenerator)
		gen.On("GetModelName").Return("gemini-2.5-flash")
		gen.On("Generate", mock.Anything, "k", mock.Anything, mock.Anything).
			Return("", domainErrors.NewHTTPError(400, "bad request"))

		var logs bytes.Buffer
		ctx := logger.WithLogger(context.Background(), logger.New(&logs, false, false, logger.FormatJSON))

		_, err := runWithNoteService(t, ctx, gen, "-i", "OCD", "-d", "x", "-k", "k")

		require.Error(t, err)
		lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
		require.NotEmpty(t, lines)
		for _, line := range lines {
			assert.Equal(t, 1, strings.Count(line, `"issue":`), line)
		}
	})
}
