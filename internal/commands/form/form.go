// Package form collects the note inputs shared by the generate and estimate
// commands, from flags first and interactively for whatever is missing.
package form

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/konseloradiksi/soapgen/internal/config"
	"github.com/konseloradiksi/soapgen/internal/counseling"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/konseloradiksi/soapgen/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	FlagIssue       = "issue"
	FlagDescription = "description"
	FlagAPIKey      = "api-key"
)

// Flags returns the issue, description and api-key flags.
func Flags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagIssue,
			Aliases: []string{"i"},
			Usage:   t.GetMessage("generate_flag_issue", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagDescription,
			Aliases: []string{"d"},
			Usage:   t.GetMessage("generate_flag_description", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagAPIKey,
			Aliases: []string{"k"},
			Usage:   t.GetMessage("generate_flag_api_key", 0, nil),
		},
	}
}

// APIKey returns --api-key, or GEMINI_API_KEY when the flag is empty.
func APIKey(cmd *cli.Command) string {
	if key := strings.TrimSpace(cmd.String(FlagAPIKey)); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv(config.EnvAPIKey))
}

// Request builds the note request from the flags, asking on the command's
// reader for the issue and description when they were not given.
func Request(cmd *cli.Command, t *i18n.Translations) (models.NoteRequest, error) {
	var (
		req    models.NoteRequest
		reader *bufio.Reader
	)
	out := Writer(cmd)

	lineReader := func() *bufio.Reader {
		if reader == nil {
			reader = bufio.NewReader(Reader(cmd))
		}
		return reader
	}

	if cmd.IsSet(FlagIssue) {
		issue, ok := counseling.Resolve(cmd.String(FlagIssue))
		if !ok {
			return req, domainErrors.ErrUnknownIssue.WithContext("issue", cmd.String(FlagIssue))
		}
		req.Issue = issue
	} else {
		issue, err := ui.SelectIssue(lineReader(), out, t)
		if err != nil {
			return req, err
		}
		req.Issue = issue
	}

	if cmd.IsSet(FlagDescription) {
		req.Description = cmd.String(FlagDescription)
	} else {
		description, err := ui.ReadDescription(lineReader(), out, t)
		if err != nil {
			return req, err
		}
		req.Description = description
	}

	return req, nil
}

// Writer returns the output of the root command.
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// Reader returns the input of the root command.
func Reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
