package config

import (
	"github.com/konseloradiksi/soapgen/internal/config"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

// CreateCommand builds "config show|set|edit". cfg is the effective
// configuration; set and edit work on the file at cfg.PathFile.
func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
			c.newSetCommand(t, cfg),
			c.newEditCommand(t, cfg),
		},
	}
}
