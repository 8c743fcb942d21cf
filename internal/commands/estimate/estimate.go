package estimate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/konseloradiksi/soapgen/internal/commands/completion_helper"
	"github.com/konseloradiksi/soapgen/internal/commands/form"
	"github.com/konseloradiksi/soapgen/internal/config"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

type (
	// PromptBuilder is implemented by services.NoteService.
	PromptBuilder interface {
		BuildPrompt(req models.NoteRequest) string
	}

	// Estimator is implemented by cost.Estimator.
	Estimator interface {
		Estimate(ctx context.Context, apiKey, prompt string, outputTokens int) (*models.TokenEstimate, error)
		HasPricing() bool
	}
)

type EstimateCommandFactory struct {
	prompts   PromptBuilder
	estimator Estimator
}

func NewEstimateCommandFactory(prompts PromptBuilder, estimator Estimator) *EstimateCommandFactory {
	return &EstimateCommandFactory{
		prompts:   prompts,
		estimator: estimator,
	}
}

func (f *EstimateCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	flags := append(form.Flags(t), &cli.StringFlag{
		Name:  "output-tokens",
		Usage: t.GetMessage("estimate_flag_output_tokens", 0, nil),
	})

	return &cli.Command{
		Name:          "estimate",
		Aliases:       []string{"cost"},
		Usage:         t.GetMessage("estimate_usage", 0, nil),
		Flags:         flags,
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(t),
	}
}

func (f *EstimateCommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		out := form.Writer(cmd)

		outputTokens := 0
		if raw := cmd.String("output-tokens"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return domainErrors.NewAppError(domainErrors.TypeValidation,
					t.GetMessage("estimate_flag_output_tokens_invalid", 0, map[string]interface{}{"Value": raw}), err)
			}
			outputTokens = n
		}

		req, err := form.Request(cmd, t)
		if err != nil {
			return err
		}

		var estimate *models.TokenEstimate
		err = ui.WithSpinner(out, t.GetMessage("estimate_in_progress", 0, nil), func() error {
			var err error
			estimate, err = f.estimator.Estimate(ctx, form.APIKey(cmd), f.prompts.BuildPrompt(req), outputTokens)
			return err
		})
		if err != nil {
			return err
		}

		ui.PrintSectionBanner(out, t.GetMessage("estimate_title", 0, nil))
		ui.PrintKeyValue(out, t.GetMessage("estimate_model", 0, nil), estimate.Model)
		ui.PrintKeyValue(out, t.GetMessage("estimate_input_tokens", 0, nil), strconv.Itoa(estimate.InputTokens))
		ui.PrintKeyValue(out, t.GetMessage("estimate_output_tokens", 0, nil), strconv.Itoa(estimate.OutputTokens))

		if !f.estimator.HasPricing() {
			ui.PrintWarning(out, t.GetMessage("estimate_unknown_price", 0, map[string]interface{}{"Model": estimate.Model}))
			return nil
		}
		ui.PrintKeyValue(out, t.GetMessage("estimate_cost", 0, nil), fmt.Sprintf("$%.6f", estimate.EstimatedCostUSD))
		return nil
	}
}
