//go:build !pprof

package profile

import "iter"

// Enabled reports whether the binary was built with profiling support.
const Enabled = false

// Modes yields nothing without the pprof build tag.
func Modes() iter.Seq[string] {
	return func(func(string) bool) {}
}

func start(string, string, bool) interface{ Stop() } { return ignore{} }
