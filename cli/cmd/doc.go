// Package cmd implements the fjord subcommands: run, check, tree, which and
// version.
//
// Commands receive a [context.Context] carrying the parsed
// [github.com/alecthomas/kong] context, whose writers they print to, and a
// lazily scanned command lookup installed with [WithCommands].
package cmd
