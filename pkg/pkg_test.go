package pkg

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if !regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`).MatchString(Version) {
		t.Errorf("Version = %q, want semantic version", Version)
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		exe  string
		want string
	}{
		{"/usr/local/bin/fjord", "fjord"},
		{"/opt/fj.exe", "fj"},
		{"/tmp/__debug_bin3921", Name},
		{"/home/u/.fjord", "fjord"},
		{"/home/u/...", Name},
		{"", Name},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.exe); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.exe, got, tt.want)
		}
	}
}

func TestConfigPath(t *testing.T) {
	got := ConfigPath("config.yaml")

	if filepath.Base(got) != "config.yaml" || filepath.Dir(got) != ConfigDir() {
		t.Errorf("ConfigPath = %q, ConfigDir = %q", got, ConfigDir())
	}

	if !strings.HasSuffix(ConfigDir(), Prefix()) || !strings.HasSuffix(CacheDir(), Prefix()) {
		t.Errorf("directories do not end in %q: %q %q", Prefix(), ConfigDir(), CacheDir())
	}
}
