package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette styles the parts of a pretty record. Styles come from a renderer
// bound to the output, so color is dropped when the output is not a
// terminal.
type palette struct {
	key, str, num, boolean, null, time, dur lipgloss.Style
	trace, debug, info, warn, error         lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return &palette{
		key:     fg("8"),
		str:     fg("6"),
		num:     fg("3"),
		boolean: fg("2"),
		null:    fg("8"),
		time:    fg("4"),
		dur:     fg("5"),
		trace:   fg("8"),
		debug:   fg("4"),
		info:    fg("2").Bold(true),
		warn:    fg("3").Bold(true),
		error:   fg("1").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.error
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes colorized records, either as one line of key=value
// pairs or as an indented JSON-like object. Groups are flattened into
// dotted keys.
type prettyHandler struct {
	opts   slog.HandlerOptions
	json   bool
	mu     *sync.Mutex
	w      io.Writer
	colors *palette
	attrs  []slog.Attr
	prefix string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		json:   json,
		mu:     &sync.Mutex{},
		w:      w,
		colors: newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.appendBuiltin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.appendBuiltin(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = h.appendBuiltin(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.flatten(fields, h.prefix, a)

		return true
	})

	buf := new(bytes.Buffer)
	if h.json {
		h.writeJSON(buf, r.Level, fields)
	} else {
		h.writeText(buf, r.Level, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	for _, a := range attrs {
		c.attrs = h.flatten(c.attrs, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) appendBuiltin(fields []slog.Attr, a slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, a)
}

// flatten resolves a and appends it, or each member of a group, with keys
// qualified by prefix. Empty attributes and empty groups are dropped.
func (h *prettyHandler) flatten(fields []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range group {
			fields = h.flatten(fields, prefix, g)
		}

		return fields
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	a.Key = prefix + a.Key

	return append(fields, a)
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, level slog.Level, fields []slog.Attr) {
	for i, a := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.colors.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.value(level, a))
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, level slog.Level, fields []slog.Attr) {
	buf.WriteString("{\n")

	for i, a := range fields {
		buf.WriteString("  ")
		buf.WriteString(h.colors.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")

		switch a.Value.Kind() {
		case slog.KindAny:
			if a.Value.Any() == nil {
				buf.WriteString(h.value(level, a))

				break
			}

			buf.WriteString(h.style(level, a).Render(strconv.Quote(h.text(a.Value))))
		case slog.KindString, slog.KindTime, slog.KindDuration:
			buf.WriteString(h.style(level, a).Render(strconv.Quote(h.text(a.Value))))
		default:
			buf.WriteString(h.value(level, a))
		}

		if i < len(fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
}

func (h *prettyHandler) value(level slog.Level, a slog.Attr) string {
	return h.style(level, a).Render(h.text(a.Value))
}

func (h *prettyHandler) style(level slog.Level, a slog.Attr) lipgloss.Style {
	if a.Key == slog.LevelKey {
		return h.colors.level(level)
	}

	switch a.Value.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.colors.num
	case slog.KindBool:
		return h.colors.boolean
	case slog.KindTime:
		return h.colors.time
	case slog.KindDuration:
		return h.colors.dur
	case slog.KindAny:
		if a.Value.Any() == nil {
			return h.colors.null
		}
	}

	if a.Key == slog.TimeKey {
		return h.colors.time
	}

	return h.colors.str
}

func (h *prettyHandler) text(v slog.Value) string {
	switch v.Kind() {
	case slog.KindAny:
		switch x := v.Any().(type) {
		case nil:
			return "null"
		case error:
			return x.Error()
		}
	case slog.KindString:
		return strings.TrimSpace(v.String())
	}

	return v.String()
}
