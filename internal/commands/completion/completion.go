package completion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/konseloradiksi/soapgen/internal/commands/form"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `#! /bin/bash

_soapgen_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    local cmd_context=("${COMP_WORDS[@]:0:$COMP_CWORD}")
    opts=$( "${cmd_context[@]}" --generate-shell-completion )
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _soapgen_bash_autocomplete soapgen
`

const zshCompletionScript = `#compdef soapgen

_soapgen() {
  local -a opts
  local cmd_context=("${(@)words[1,$CURRENT-1]}")
  opts=("${(@f)$("${cmd_context[@]}" --generate-shell-completion)}")
  _describe 'values' opts
}

compdef _soapgen soapgen
`

const installMarker = "# soapgen shell completion"

const installInfo = `
` + installMarker + `
if command -v soapgen >/dev/null 2>&1; then
	source <(soapgen completion %s)
fi
`

func NewCompletionCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "completion",
		Usage: t.GetMessage("completion_usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:   "bash",
				Usage:  t.GetMessage("completion_bash_usage", 0, nil),
				Action: printScript(bashCompletionScript),
			},
			{
				Name:   "zsh",
				Usage:  t.GetMessage("completion_zsh_usage", 0, nil),
				Action: printScript(zshCompletionScript),
			},
			{
				Name:   "install",
				Usage:  t.GetMessage("completion_install_usage", 0, nil),
				Action: installAction(t),
			},
		},
	}
}

func printScript(script string) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprint(form.Writer(cmd), script)
		return err
	}
}

// installAction appends the source line to the rc file of $SHELL once.
func installAction(t *i18n.Translations) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		out := form.Writer(cmd)
		shell := os.Getenv("SHELL")

		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error resolving home directory: %w", err)
		}

		var configFile, shellName string
		switch {
		case strings.Contains(shell, "zsh"):
			configFile, shellName = filepath.Join(home, ".zshrc"), "zsh"
		case strings.Contains(shell, "bash"):
			configFile, shellName = filepath.Join(home, ".bashrc"), "bash"
		default:
			return domainErrors.NewAppError(domainErrors.TypeValidation,
				t.GetMessage("completion_unsupported_shell", 0, map[string]interface{}{"Shell": shell}), nil)
		}

		existing, err := os.ReadFile(configFile)
		if err == nil && strings.Contains(string(existing), installMarker) {
			ui.PrintInfo(out, t.GetMessage("completion_already_installed", 0, map[string]interface{}{"File": configFile}))
			return nil
		}

		f, err := os.OpenFile(configFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", configFile, err)
		}
		defer func() {
			_ = f.Close()
		}()

		if _, err := fmt.Fprintf(f, installInfo, shellName); err != nil {
			return fmt.Errorf("error writing %s: %w", configFile, err)
		}

		ui.PrintSuccess(out, t.GetMessage("completion_installed", 0, map[string]interface{}{"File": configFile}))
		_, _ = fmt.Fprintf(out, "  source %s\n", configFile)
		return nil
	}
}
