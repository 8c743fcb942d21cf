package generate

import (
	"context"
	"fmt"
	"os"

	"github.com/konseloradiksi/soapgen/internal/ai/gemini"
	"github.com/konseloradiksi/soapgen/internal/commands/completion_helper"
	"github.com/konseloradiksi/soapgen/internal/commands/form"
	"github.com/konseloradiksi/soapgen/internal/config"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

// NoteService is implemented by services.NoteService.
type NoteService interface {
	TryGenerateNote(ctx context.Context, apiKey string, req models.NoteRequest, progress models.ProgressFunc) (string, error)
}

type GenerateCommandFactory struct {
	notes NoteService
}

func NewGenerateCommandFactory(notes NoteService) *GenerateCommandFactory {
	return &GenerateCommandFactory{notes: notes}
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	flags := append(form.Flags(t), &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   t.GetMessage("generate_flag_output", 0, nil),
	})

	return &cli.Command{
		Name:          "generate",
		Aliases:       []string{"g"},
		Usage:         t.GetMessage("generate_usage", 0, nil),
		Flags:         flags,
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(t),
	}
}

func (f *GenerateCommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		out := form.Writer(cmd)

		req, err := form.Request(cmd, t)
		if err != nil {
			return err
		}
		spinner := ui.NewSmartSpinner(out, t.GetMessage("generate_in_progress", 0, nil))
		spinner.Start()

		note, err := f.notes.TryGenerateNote(ctx, form.APIKey(cmd), req, ui.ProgressReporter(spinner, t, gemini.MaxAttempts))
		if err != nil {
			spinner.Stop()
			ui.PrintWarning(out, note)
			return err
		}

		spinner.Success(t.GetMessage("generate_done", 0, nil))
		ui.PrintSectionBanner(out, t.GetMessage("generate_note_title", 0, nil))
		_, _ = fmt.Fprintln(out, note)

		if path := cmd.String("output"); path != "" {
			if err := os.WriteFile(path, []byte(note+"\n"), 0644); err != nil {
				return fmt.Errorf("error writing note to %s: %w", path, err)
			}
			ui.PrintSuccess(out, t.GetMessage("generate_saved", 0, map[string]interface{}{"Path": path}))
		}

		return nil
	}
}
