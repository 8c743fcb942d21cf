package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/konseloradiksi/soapgen/internal/commands/completion_helper"
	"github.com/konseloradiksi/soapgen/internal/commands/form"
	"github.com/konseloradiksi/soapgen/internal/config"
	"github.com/konseloradiksi/soapgen/internal/credential"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/server"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

type ServeCommandFactory struct {
	notes server.NoteGenerator
	model string

	// onReady is called with the bound address once the listener is open.
	onReady func(addr string)
}

func NewServeCommandFactory(notes server.NoteGenerator, model string) *ServeCommandFactory {
	return &ServeCommandFactory{
		notes: notes,
		model: model,
	}
}

func (f *ServeCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: t.GetMessage("serve_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Value:   cfg.ListenAddr,
				Usage:   t.GetMessage("serve_flag_addr", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(t, cfg),
	}
}

func (f *ServeCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		out := form.Writer(cmd)

		// The web form starts without a key, the user enters it on the page.
		handler, err := server.NewHandler(f.notes, credential.NewStore(), t, f.model)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logger.With(ctx, "component", "server")

		ready := func(addr string) {
			ui.PrintInfo(out, t.GetMessage("serve_listening", 0, map[string]interface{}{"Addr": addr}))
			if f.onReady != nil {
				f.onReady(addr)
			}
		}

		if err := server.Run(ctx, cmd.String("addr"), server.NewRouter(handler), cfg.ShutdownTimeout(), ready); err != nil {
			return err
		}

		ui.PrintSuccess(out, t.GetMessage("serve_stopped", 0, nil))
		return nil
	}
}
