package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fjord/log"
)

// logFormat configures the default logger as a side effect of parsing, so
// that errors reported while parsing the rest of the command line already
// use the requested format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the default logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"rfc3339"                                     help:"Set timestamp layout: a name such as kitchen or none, or a Go time layout."`
	Caller     bool      `default:"false"                                       help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                        help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// options returns the logger options selected by f.
func (f *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}
}

// start applies every parsed setting, including those that do not
// configure the logger while parsing.
func (f *logConfig) start(ctx context.Context) {
	log.Config(f.options()...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time_layout", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logging flags found in args before kong parses them, so the
// logger is configured wherever the flags appear on the command line. Only
// flags with a value ("--log-level debug" or "--log-level=debug") and
// boolean flags ("--log-caller", "--no-log-pretty=false") are recognized.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		switch name {
		case "--log-level", "--log-format", "--log-time-layout":
			if !assigned {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					continue
				}

				i++
				value = args[i]
			}

			f.setValue(name, value)

		case "--log-caller", "--log-pretty":
			f.setBool(name, value, assigned, false)

		case "--no-log-caller", "--no-log-pretty":
			f.setBool("--"+strings.TrimPrefix(name, "--no-"), value, assigned, true)

		case "--":
			return
		}
	}
}

func (f *logConfig) setValue(name, value string) {
	switch name {
	case "--log-level":
		_ = f.Level.UnmarshalText([]byte(value))
	case "--log-format":
		_ = f.Format.UnmarshalText([]byte(value))
	case "--log-time-layout":
		f.TimeLayout = value
		log.Config(log.WithTimeLayout(value))
	}
}

func (f *logConfig) setBool(name, value string, assigned, negate bool) {
	enable := true

	if assigned {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return
		}

		enable = v
	}

	if negate {
		enable = !enable
	}

	switch name {
	case "--log-caller":
		f.Caller = enable
		log.Config(log.WithCaller(enable))
	case "--log-pretty":
		f.Pretty = enable
		log.Config(log.WithPretty(enable))
	}
}
