package config

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/konseloradiksi/soapgen/internal/config"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newEditCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "edit",
		Usage:  t.GetMessage("config_edit_usage", 0, nil),
		Action: editConfigAction(cfg, t),
	}
}

func editConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			if _, err := exec.LookPath("nano"); err == nil {
				editor = "nano"
			} else if _, err := exec.LookPath("vi"); err == nil {
				editor = "vi"
			} else {
				return domainErrors.NewAppError(domainErrors.TypeConfiguration,
					t.GetMessage("config_edit_no_editor", 0, nil), nil)
			}
		}

		cmd := exec.CommandContext(ctx, editor, cfg.PathFile)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("error opening editor %s: %w", editor, err)
		}

		// Report a broken file now rather than on the next run.
		_, err := config.LoadConfig(cfg.PathFile)
		return err
	}
}
