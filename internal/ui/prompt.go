package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/konseloradiksi/soapgen/internal/counseling"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/i18n"
)

// PrintIssueMenu lists the counseling issues numbered from 1.
func PrintIssueMenu(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "\n%s\n", Info.Sprint(title))
	width := len(fmt.Sprint(counseling.Count()))
	for i, issue := range counseling.Issues() {
		_, _ = fmt.Fprintf(w, "  %s %s\n", Dim.Sprintf("%*d.", width, i+1), issue)
	}
}

// SelectIssue shows the issue menu and reads a number or a label from in
// until it resolves to a catalogue entry.
func SelectIssue(in *bufio.Reader, out io.Writer, t *i18n.Translations) (string, error) {
	PrintIssueMenu(out, t.GetMessage("generate_issue_menu", 0, nil))

	for {
		_, _ = fmt.Fprintf(out, "\n%s", t.GetMessage("generate_select_issue", 0, nil))

		line, err := in.ReadString('\n')
		input := strings.TrimSpace(line)

		if issue, ok := counseling.Resolve(input); ok {
			return issue, nil
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", domainErrors.ErrUnknownIssue.WithContext("input", input)
			}
			return "", fmt.Errorf("error reading issue selection: %w", err)
		}

		if input != "" {
			PrintWarning(out, t.GetMessage("generate_invalid_issue", 0, map[string]interface{}{
				"Issue": input,
			}))
		}
	}
}

// ReadDescription reads lines until an empty line or EOF and joins them with
// newlines. An empty description is valid.
func ReadDescription(in *bufio.Reader, out io.Writer, t *i18n.Translations) (string, error) {
	_, _ = fmt.Fprintf(out, "\n%s\n", Info.Sprint(t.GetMessage("generate_enter_description", 0, nil)))

	var lines []string
	for {
		line, err := in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if line == "" && (err == nil || errors.Is(err, io.EOF)) {
			break
		}
		lines = append(lines, line)

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("error reading description: %w", err)
		}
	}

	return strings.Join(lines, "\n"), nil
}
