package env

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/fjord/log"
)

// Commands caches the executables found in a set of directories, keyed by
// file name.
type Commands struct {
	paths  map[string]string
	logger log.Logger
}

// NewCommands returns an empty cache. Call [Commands.Rescan] to fill it.
func NewCommands(logger log.Logger) *Commands {
	return &Commands{
		paths:  make(map[string]string),
		logger: logger,
	}
}

// Rescan clears the cache and lists every directory in dirs in order. An
// entry in a later directory replaces an earlier entry of the same name.
// Directories that do not exist are skipped; other read errors are collected
// and returned after the remaining directories have been listed.
func (c *Commands) Rescan(ctx context.Context, dirs ...string) error {
	clear(c.paths)

	var errs []error

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.logger.TraceContext(ctx, "skip missing directory",
					slog.String("dir", dir))

				continue
			}

			errs = append(errs, err)

			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			c.paths[entry.Name()] = filepath.Join(dir, entry.Name())
		}
	}

	c.logger.DebugContext(ctx, "commands rescanned",
		slog.Int("dirs", len(dirs)),
		slog.Int("count", len(c.paths)),
	)

	return errors.Join(errs...)
}

// ScanSearchPath rescans the directories returned by [SearchPaths] so that,
// as with a shell, the first directory containing a name wins.
func (c *Commands) ScanSearchPath(ctx context.Context, extra ...string) error {
	dirs := SearchPaths(os.Getenv("PATH"), extra...)
	slices.Reverse(dirs)

	return c.Rescan(ctx, dirs...)
}

// Get returns the path of the executable named name.
func (c *Commands) Get(name string) (string, bool) {
	path, ok := c.paths[name]

	return path, ok
}

// Names returns every cached command name in lexical order.
func (c *Commands) Names() []string {
	return slices.Sorted(maps.Keys(c.paths))
}

// Len returns the number of cached commands.
func (c *Commands) Len() int { return len(c.paths) }

// SearchPaths returns the directories of the PATH-like list pathList with
// the extra directories prepended, in search order. Directories that do not
// exist are dropped.
func SearchPaths(pathList string, extra ...string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(pathList),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(extra...),
		mung.WithFilter(isDir),
	).String()

	return filepath.SplitList(joined)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
