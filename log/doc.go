// Package log is a leveled structured logger built on [log/slog].
//
// A [Logger] is configured once with functional options and never changes
// afterward; [Logger.Wrap] derives a reconfigured copy. The zero Logger
// discards everything, which lets libraries accept one without requiring
// callers to configure logging.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Debug("parse complete", slog.Int("error_count", 0))
//
// # Levels
//
// In addition to the four [slog] levels, [LevelTrace] sits below
// [LevelDebug] for per-node and per-lookup detail.
//
// # Output
//
// Records are encoded as [FormatJSON] or [FormatText]. With [WithPretty],
// either format is colorized for terminals; colors are dropped
// automatically when the output is not a terminal.
//
// # Package Logger
//
// The package-level functions ([Info], [Debug] and friends) write to a
// default logger on standard error, reconfigured with [Config] or replaced
// with [SetDefault].
package log
