package cli

import (
	"os"

	"github.com/ardnew/fjord/pkg"
)

// baseConfig is the base name of the configuration files. The fjord script
// has no extension; the JSON and YAML variants add one.
const baseConfig = "config"

// defaultDirMode is the permission mode of created directories.
const defaultDirMode os.FileMode = 0o700

// configFile returns the path of the fjord configuration script.
func configFile() string { return pkg.ConfigPath(baseConfig) }

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
