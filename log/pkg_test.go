package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func swapDefault(t *testing.T, l Logger) {
	t.Helper()

	original := Default()
	SetDefault(l)
	t.Cleanup(func() { SetDefault(original) })
}

func TestPackage_LogFunctions(t *testing.T) {
	var buf bytes.Buffer

	swapDefault(t, plain(&buf, WithLevel(LevelTrace)))

	ctx := context.Background()

	tests := []struct {
		name  string
		log   func()
		level string
	}{
		{"Trace", func() { Trace("m", slog.String("key", "value")) }, "TRACE"},
		{"TraceContext", func() { TraceContext(ctx, "m", slog.String("key", "value")) }, "TRACE"},
		{"Debug", func() { Debug("m", slog.String("key", "value")) }, "DEBUG"},
		{"DebugContext", func() { DebugContext(ctx, "m", slog.String("key", "value")) }, "DEBUG"},
		{"Info", func() { Info("m", slog.String("key", "value")) }, "INFO"},
		{"InfoContext", func() { InfoContext(ctx, "m", slog.String("key", "value")) }, "INFO"},
		{"Warn", func() { Warn("m", slog.String("key", "value")) }, "WARN"},
		{"WarnContext", func() { WarnContext(ctx, "m", slog.String("key", "value")) }, "WARN"},
		{"Error", func() { Error("m", slog.String("key", "value")) }, "ERROR"},
		{"ErrorContext", func() { ErrorContext(ctx, "m", slog.String("key", "value")) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			m := decode(t, buf.String())
			if m["level"] != tt.level || m["key"] != "value" {
				t.Errorf("unexpected record %v", m)
			}
		})
	}
}

func TestPackage_Config(t *testing.T) {
	var buf bytes.Buffer

	swapDefault(t, plain(&buf))

	Config(WithFormat(FormatText), WithCaller(true))
	Info("configured")

	got := buf.String()
	if !strings.Contains(got, "msg=configured") || !strings.Contains(got, "pkg_test.go") {
		t.Errorf("record = %q", got)
	}

	buf.Reset()
	With(slog.String("scope", "test")).Info("scoped")

	if !strings.Contains(buf.String(), "scope=test") {
		t.Errorf("record = %q", buf.String())
	}
}
