//go:build pprof

package profile

import (
	"iter"
	"maps"
	"slices"

	"github.com/pkg/profile"
)

// Enabled reports whether the binary was built with profiling support.
const Enabled = true

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes yields the supported profiling modes in sorted order.
func Modes() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(mode)))
}

func start(m, path string, quiet bool) interface{ Stop() } {
	opts := options(m, path, quiet)
	if opts == nil {
		return ignore{}
	}

	return profile.Start(opts...)
}

// options translates settings into options for [profile.Start], or nil for
// an unknown mode. The profiler's interrupt handler is always disabled; the
// CLI cancels its context on interrupt and stops the profiler itself.
func options(m, path string, quiet bool) []func(*profile.Profile) {
	fn, ok := mode[m]
	if !ok {
		return nil
	}

	opts := []func(*profile.Profile){fn, profile.NoShutdownHook}

	if path != "" {
		opts = append(opts, profile.ProfilePath(path))
	}

	if quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}
