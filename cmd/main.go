package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/konseloradiksi/soapgen/internal/ai"
	"github.com/konseloradiksi/soapgen/internal/ai/gemini"
	"github.com/konseloradiksi/soapgen/internal/cache"
	cacheCmd "github.com/konseloradiksi/soapgen/internal/commands/cache"
	"github.com/konseloradiksi/soapgen/internal/commands/completion"
	"github.com/konseloradiksi/soapgen/internal/commands/config"
	"github.com/konseloradiksi/soapgen/internal/commands/estimate"
	"github.com/konseloradiksi/soapgen/internal/commands/generate"
	"github.com/konseloradiksi/soapgen/internal/commands/issues"
	"github.com/konseloradiksi/soapgen/internal/commands/registry"
	"github.com/konseloradiksi/soapgen/internal/commands/serve"
	cfg "github.com/konseloradiksi/soapgen/internal/config"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/services"
	"github.com/konseloradiksi/soapgen/internal/services/cost"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/konseloradiksi/soapgen/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	configPath, err := cfg.DefaultPath()
	if err != nil {
		log.Fatalf("Error resolving configuration path: %v", err)
	}

	cfgApp, err := cfg.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfgApp = cfgApp.WithEnvOverrides(os.LookupEnv)

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	app, err := initializeApp(cfgApp, translations)
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.StopActiveSpinner()
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp(cfgApp *cfg.Config, translations *i18n.Translations) (*cli.Command, error) {
	client := gemini.NewClient(
		gemini.WithEndpoint(cfgApp.Endpoint),
		gemini.WithModel(cfgApp.Model),
		gemini.WithAttemptTimeout(cfgApp.AttemptTimeout()),
	)
	noteService := services.NewNoteService(client, translations)

	var counter ai.TokenCounter = gemini.NewTokenCounter(cfgApp.Model, gemini.SDKBaseURL(cfgApp.Endpoint), nil)
	if tokenCache, err := cache.NewCache(cache.DefaultDir(cfgApp.PathFile), cache.DefaultTTL); err == nil {
		counter = cost.NewCachedCounter(counter, tokenCache, cfgApp.Model)
	} else {
		log.Printf("Warning: token cache disabled: %v", err)
	}
	estimator := cost.NewEstimator(counter, cost.NewCalculator(), cfgApp.Model)

	registerCommand := registry.NewRegistry(cfgApp, translations)
	factories := []struct {
		name    string
		factory registry.CommandFactory
	}{
		{"generate", generate.NewGenerateCommandFactory(noteService)},
		{"issues", issues.NewIssuesCommandFactory()},
		{"estimate", estimate.NewEstimateCommandFactory(noteService, estimator)},
		{"serve", serve.NewServeCommandFactory(noteService, client.GetModelName())},
		{"config", config.NewConfigCommandFactory()},
		{"cache", cacheCmd.NewCacheCommandFactory()},
	}
	for _, f := range factories {
		if err := registerCommand.Register(f.name, f.factory); err != nil {
			return nil, fmt.Errorf("error registering command '%s': %w", f.name, err)
		}
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, completion.NewCompletionCommand(translations))

	return &cli.Command{
		Name:        "soapgen",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   translations.GetMessage("flag_verbose", 0, nil),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: string(logger.FormatPretty),
				Usage: translations.GetMessage("flag_log_format", 0, nil),
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: translations.GetMessage("flag_lang", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"), logger.Format(cmd.String("log-format")))

			if lang := cmd.String("lang"); lang != "" {
				if err := translations.SetLanguage(lang); err != nil {
					return ctx, domainErrors.ErrConfigInvalid.WithError(err)
				}
			}
			return ctx, nil
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}
