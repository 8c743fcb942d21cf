package config

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/konseloradiksi/soapgen/internal/commands/form"
	"github.com/konseloradiksi/soapgen/internal/config"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := form.Writer(cmd)

			ui.PrintSectionBanner(out, t.GetMessage("config_title", 0, nil))
			ui.PrintKeyValue(out, t.GetMessage("config_path", 0, nil), cfg.PathFile)
			ui.PrintKeyValue(out, t.GetMessage("config_language", 0, nil), cfg.Language)
			ui.PrintKeyValue(out, t.GetMessage("config_model", 0, nil), cfg.Model)
			ui.PrintKeyValue(out, t.GetMessage("config_endpoint", 0, nil), cfg.Endpoint)
			ui.PrintKeyValue(out, t.GetMessage("config_listen_addr", 0, nil), cfg.ListenAddr)
			ui.PrintKeyValue(out, t.GetMessage("config_attempt_timeout", 0, nil), strconv.Itoa(cfg.AttemptTimeoutSeconds))
			ui.PrintKeyValue(out, t.GetMessage("config_shutdown_timeout", 0, nil), strconv.Itoa(cfg.ShutdownTimeoutSeconds))

			// Only presence is shown, never the key itself.
			keyState := t.GetMessage("config_api_key_unset", 0, nil)
			if strings.TrimSpace(os.Getenv(config.EnvAPIKey)) != "" {
				keyState = t.GetMessage("config_api_key_set", 0, nil)
			}
			ui.PrintKeyValue(out, t.GetMessage("config_api_key", 0, nil), keyState)

			return nil
		},
	}
}
