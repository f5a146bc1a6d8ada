package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/fjord/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"))

	logger.Info("program evaluated", slog.String("result", "42"))
	logger.Debug("not shown")
	// Output: level=INFO msg="program evaluated" result=42
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithLevel(log.ParseLevel("trace")))

	logger.Trace("cache lookup", slog.Bool("cache_hit", true))
	// Output: {"level":"TRACE","msg":"cache lookup","cache_hit":true}
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none")).
		With(slog.String("component", "cli"))

	logger.InfoContext(ctx, "running script", slog.String("path", "main.fj"))
	// Output: {"level":"INFO","msg":"running script","component":"cli","path":"main.fj"}
}
