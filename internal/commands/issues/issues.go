package issues

import (
	"context"

	"github.com/konseloradiksi/soapgen/internal/commands/form"
	"github.com/konseloradiksi/soapgen/internal/config"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

type IssuesCommandFactory struct{}

func NewIssuesCommandFactory() *IssuesCommandFactory {
	return &IssuesCommandFactory{}
}

func (f *IssuesCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "issues",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("issues_usage", 0, nil),
		Action: func(_ context.Context, cmd *cli.Command) error {
			ui.PrintIssueMenu(form.Writer(cmd), t.GetMessage("issues_title", 0, nil))
			return nil
		},
	}
}
