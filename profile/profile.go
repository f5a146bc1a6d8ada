package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`

// Config returns the profiler settings. Options derive new Configs from old
// ones, so the zero Config is never called.
type Config func() (mode, path string, quiet bool)

// Make returns a Config with the given options applied to an empty one.
func Make(opts ...func(Config) Config) Config {
	c := Config(func() (string, string, bool) { return "", "", false })

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// Start starts the profiler. Without the pprof build tag, or with an empty
// or unknown mode, the profiler does nothing. Stop is always safe to call.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode sets the profiling mode, one of [Modes].
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath sets the directory profiles are written to.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type ignore struct{}

func (ignore) Stop() {}
