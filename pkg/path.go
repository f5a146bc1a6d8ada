package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var (
	debugBin    = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDots = regexp.MustCompile(`^\.+`)
)

// Prefix returns the name that per-user directories are created under: the
// executable's base name without extension. A debugger build
// ("__debug_bin123"), or a name that is empty once leading dots are
// removed, maps to [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return prefixOf(exe)
})

func prefixOf(exe string) string {
	base := filepath.Base(exe)
	id := leadingDots.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "")

	if id == "" || id == "." || debugBin.MatchString(id) {
		return Name
	}

	return id
}

// ConfigDir returns the directory configuration files are read from.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory transient files, such as profiles, are
// written to.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// ConfigPath joins elem onto [ConfigDir].
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// userDir resolves the platform directory from base, falling back to
// $HOME/<hidden> and then the working directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if wd, werr := os.Getwd(); werr == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
