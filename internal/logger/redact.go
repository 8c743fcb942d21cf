package logger

import (
	"log/slog"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// keyParam matches the key query parameter of a Gemini URL.
var keyParam = regexp.MustCompile(`([?&]key=)[^&\s"']+`)

// RedactSecrets masks API keys carried in URL query strings.
func RedactSecrets(s string) string {
	if !strings.Contains(s, "key=") {
		return s
	}
	return keyParam.ReplaceAllString(s, "${1}"+redacted)
}

func isSecretKey(key string) bool {
	switch strings.ToLower(key) {
	case "key", "api_key", "apikey", "credential":
		return true
	}
	return false
}

// redactAttr is the ReplaceAttr hook shared by both output formats.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if isSecretKey(a.Key) {
		return slog.String(a.Key, redacted)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.Contains(s, "key=") {
			return slog.String(a.Key, RedactSecrets(s))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			if s := err.Error(); strings.Contains(s, "key=") {
				return slog.String(a.Key, RedactSecrets(s))
			}
		}
	}
	return a
}
