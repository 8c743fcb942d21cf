package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// PrettyHandler writes one line per record for the terminal:
//
//	[WARN]  generation API busy, retrying model=gemini-2.5-flash status=503 attempt=1 delay=2s
//
// Secrets are masked before anything is formatted. Writes are serialized
// so the web server goroutines do not interleave lines.
type PrettyHandler struct {
	level     slog.Leveler
	addSource bool

	mu *sync.Mutex
	w  io.Writer

	prefix string
	preset []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{
		level: slog.LevelWarn,
		mu:    &sync.Mutex{},
		w:     w,
	}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.addSource = opts.AddSource
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	parts := make([]string, 0, 2+len(h.preset)+r.NumAttrs())
	parts = append(parts, badge(r.Level), RedactSecrets(r.Message))
	parts = append(parts, h.preset...)

	r.Attrs(func(a slog.Attr) bool {
		parts = h.appendAttr(parts, h.prefix, a)
		return true
	})

	if h.addSource && r.PC != 0 {
		if frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next(); frame.File != "" {
			parts = append(parts, color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

// WithAttrs formats attrs once; they are reused verbatim by every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.preset = append([]string(nil), h.preset...)
	for _, a := range attrs {
		clone.preset = h.appendAttr(clone.preset, h.prefix, a)
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *PrettyHandler) appendAttr(parts []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return parts
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			parts = h.appendAttr(parts, groupPrefix, ga)
		}
		return parts
	}

	a = redactAttr(nil, a)
	return append(parts, paint(a, prefix+a.Key+"="+a.Value.String()))
}

func badge(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("[ERROR]")
	case level >= slog.LevelWarn:
		return color.YellowString("[WARN] ")
	case level >= slog.LevelInfo:
		return color.CyanString("[INFO] ")
	default:
		return color.HiBlackString("[DEBUG]")
	}
}

// paint colours the rendered pair by what the key carries.
func paint(a slog.Attr, pair string) string {
	switch a.Key {
	case "error", "err":
		return color.RedString("%s", pair)
	case "status":
		return statusColor(a.Value)(pair)
	case "delay", "duration_ms":
		return color.MagentaString("%s", pair)
	case "attempt", "attempts", "tokens", "size":
		return color.GreenString("%s", pair)
	default:
		return color.HiBlackString("%s", pair)
	}
}

// statusColor shades HTTP statuses: 5xx red, 429 and other 4xx yellow.
func statusColor(v slog.Value) func(string) string {
	plain := func(s string) string { return s }
	if v.Kind() != slog.KindInt64 {
		return plain
	}
	switch code := v.Int64(); {
	case code >= 500:
		return func(s string) string { return color.RedString("%s", s) }
	case code >= 400:
		return func(s string) string { return color.YellowString("%s", s) }
	case code >= 200 && code < 300:
		return func(s string) string { return color.GreenString("%s", s) }
	default:
		return plain
	}
}
