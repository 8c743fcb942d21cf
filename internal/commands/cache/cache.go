package cache

import (
	"context"
	"fmt"

	"github.com/konseloradiksi/soapgen/internal/cache"
	"github.com/konseloradiksi/soapgen/internal/commands/form"
	"github.com/konseloradiksi/soapgen/internal/config"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

type CacheCommandFactory struct{}

func NewCacheCommandFactory() *CacheCommandFactory {
	return &CacheCommandFactory{}
}

func (c *CacheCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: t.GetMessage("cache_usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "clean",
				Usage: t.GetMessage("cache_clean_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cacheService, err := cache.NewCache(cache.DefaultDir(cfg.PathFile), cache.DefaultTTL)
					if err != nil {
						return err
					}

					if err := cacheService.Clean(); err != nil {
						return fmt.Errorf("error cleaning cache: %w", err)
					}

					ui.PrintSuccess(form.Writer(cmd), t.GetMessage("cache_cleaned", 0, nil))
					return nil
				},
			},
		},
	}
}
