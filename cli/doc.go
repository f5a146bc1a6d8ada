// Package cli contains the command line interface for fjord.
//
// # Usage
//
//	fjord [flags] [run] [FILE ...]
//	fjord check FILE ...
//	fjord tree [--format text|json|yaml] [FILE]
//	fjord which NAME ...
//	fjord version
//
// Without a subcommand, fjord runs the given scripts, or standard input
// when none are given.
//
// # Configuration
//
// Flag defaults may be set in files under the user configuration directory
// (for example ~/.config/fjord on Linux):
//
//   - config: a fjord script; each top-level binding sets the flag of the
//     same name, with underscores read as hyphens
//   - config.json: a JSON object keyed by flag name
//   - config.yaml or config.yml: a YAML mapping; nested keys are joined
//     with hyphens
//
// For example:
//
//	let log_level = "debug"
//	let max_depth = 500
//
// Command-line flags override every file.
//
// # Commands
//
// Function names that are neither lambdas nor bindings run the executable
// of the same name from --path directories and then PATH. The search path
// is scanned only when a script first needs it. --no-commands disables
// this fallback.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: json or text
//   - --log-time-layout: a layout name (rfc3339, kitchen, none, ...) or a
//     Go time layout
//   - --log-caller: include the source location of each record
//   - --log-pretty: colorize records on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o fjord .
//
// Such a build accepts these flags:
//
//   - --pprof-mode: one of allocs, block, clock, cpu, goroutine, heap,
//     mem, mutex, thread, trace
//   - --pprof-dir: profile output directory (default ~/.cache/fjord/pprof)
package cli
