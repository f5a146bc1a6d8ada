package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fjord/lang"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/log"
)

type (
	contextKey  struct{}
	commandsKey struct{}
)

// WithContext returns a copy of ctx carrying ktx, whose writers the commands
// print to.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// stdout returns the writer for results, standard output by default.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the writer for diagnostics, standard error by default.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// WithCommands returns a copy of ctx from which commands resolve
// executables. The lookup is loaded on first use, so commands that never
// call out do not scan the search path. A nil load disables command
// fallback.
func WithCommands(ctx context.Context, load func() env.CommandLookup) context.Context {
	return context.WithValue(ctx, commandsKey{}, load)
}

// commandsFrom returns the lookup stored by [WithCommands], or nil.
func commandsFrom(ctx context.Context) env.CommandLookup {
	load, _ := ctx.Value(commandsKey{}).(func() env.CommandLookup)
	if load == nil {
		return nil
	}

	return load()
}

// langOptions are the options every command parses with. Only commands that
// evaluate add a command lookup, since loading one scans the search path.
func langOptions(ctx context.Context) []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithStdio(os.Stdin, stdout(ctx), stderr(ctx)),
	}
}

// script is one source to process.
type script struct {
	name string
	text string
}

// stdinSource names standard input among script arguments.
const stdinSource = "-"

// fileKey identifies a file by device and inode, so that one file named
// through different paths or symlinks is read once.
type fileKey struct {
	dev uint64
	ino uint64
}

// loadScripts reads the named sources in order. Duplicates are skipped,
// and standard input, however often it is named, is read once and last.
// No names means standard input alone.
func loadScripts(ctx context.Context, names []string) ([]script, error) {
	if len(names) == 0 {
		names = []string{stdinSource}
	}

	var (
		scripts  []script
		hasStdin bool
	)

	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := statKey(os.Stdin.Stat())

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		path, key, ok, err := resolveFile(name)
		if err != nil {
			return nil, ErrReadScript.Wrap(err).With(slog.String("file", name))
		}

		if ok {
			if stdinOK && key == stdinKey {
				hasStdin = true

				continue
			}

			if _, dup := seen[key]; dup {
				log.TraceContext(ctx, "duplicate script skipped", slog.String("file", name))

				continue
			}

			seen[key] = struct{}{}
		}

		text, err := os.ReadFile(path)
		if err != nil {
			return nil, ErrReadScript.Wrap(err).With(slog.String("file", name))
		}

		scripts = append(scripts, script{name: name, text: string(text)})
	}

	if hasStdin {
		text, err := lang.ReadSource(os.Stdin)
		if err != nil {
			return nil, ErrReadScript.Wrap(err).With(slog.String("file", stdinSource))
		}

		scripts = append(scripts, script{name: "<stdin>", text: text})
	}

	return scripts, nil
}

// resolveFile resolves symlinks in name and identifies the target. ok is
// false when the platform offers no device and inode numbers.
func resolveFile(name string) (path string, key fileKey, ok bool, err error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", key, false, err
	}

	path, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", key, false, err
	}

	key, ok = statKey(os.Stat(path))

	return path, key, ok, nil
}

func statKey(info os.FileInfo, err error) (fileKey, bool) {
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
