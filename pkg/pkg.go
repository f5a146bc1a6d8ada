// Package pkg describes the fjord program: its name, version and the
// per-user directories it reads configuration from.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration directory
	// when the executable's own name cannot be used.
	Name = "fjord"
	// Description summarizes the program in help output.
	Description = "Shell-flavored scripting language with lambdas and arithmetic"
)

// AuthorInfo is an author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary authors.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
