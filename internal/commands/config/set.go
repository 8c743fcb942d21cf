package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/konseloradiksi/soapgen/internal/commands/form"
	"github.com/konseloradiksi/soapgen/internal/config"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config_set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := form.Writer(cmd)

			if cmd.Args().Len() < 2 {
				msg := t.GetMessage("config_set_args", 0, nil)
				ui.PrintError(out, msg)
				return domainErrors.NewAppError(domainErrors.TypeValidation, msg, nil)
			}
			key := cmd.Args().Get(0)
			value := cmd.Args().Get(1)

			// Reload the file so environment overrides are not persisted.
			fileCfg, err := config.LoadConfig(cfg.PathFile)
			if err != nil {
				return err
			}

			if err := fileCfg.Set(key, value); err != nil {
				return err
			}

			if err := config.SaveConfig(fileCfg); err != nil {
				return fmt.Errorf("error saving configuration: %w", err)
			}

			if isModelKey(key) && !isKnownModel(fileCfg.Model) {
				ui.PrintWarning(out, t.GetMessage("estimate_unknown_price", 0, map[string]interface{}{"Model": fileCfg.Model}))
			}

			logger.Debug(ctx, "configuration updated", "key", key, "path", fileCfg.PathFile)
			ui.PrintSuccess(out, t.GetMessage("config_updated", 0, map[string]interface{}{
				"Key":   key,
				"Value": value,
			}))
			return nil
		},
	}
}

func isModelKey(key string) bool {
	return strings.EqualFold(key, "model")
}

func isKnownModel(model string) bool {
	for _, m := range config.KnownModels() {
		if string(m) == model {
			return true
		}
	}
	return false
}
