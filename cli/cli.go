package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fjord/cli/cmd"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/log"
	"github.com/ardnew/fjord/pkg"
)

// CLI is the top-level command-line interface for fjord.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Path       []string `help:"Search DIR for commands before those on PATH." placeholder:"DIR" short:"P"`
	NoCommands bool     `help:"Never run executables for unknown function names."`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Evaluate scripts"`
	Check   cmd.Check   `cmd:""                    help:"Check scripts for syntax errors"`
	Tree    cmd.Tree    `cmd:""                    help:"Print the syntax tree of a script"`
	Which   cmd.Which   `cmd:""                    help:"Show the executable a command name runs"`
	Version cmd.Version `cmd:""                    help:"Print version information"`
}

// Run executes the fjord CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logging flags are applied before parsing so that parse errors are
	// logged as requested, wherever the flags appear.
	cli.Log.scan(args)

	cfg := configFile()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, cfg+".json"),
		kong.Configuration(resolveYAML, cfg+".yaml", cfg+".yml"),
		kong.Configuration(resolve(ctx), cfg),
		kong.Vars{}.CloneWith(cli.Log.vars()).CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// The provider above returns ctx, so commands see these values.
	ctx = cmd.WithContext(ctx, ktx)
	if !cli.NoCommands {
		ctx = cmd.WithCommands(ctx, cli.commands(ctx))
	}

	// [pprofConfig.start] is a no-op unless built with tag pprof.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}

// commands returns a loader that scans the search path on first use.
func (c *CLI) commands(ctx context.Context) func() env.CommandLookup {
	return sync.OnceValue(func() env.CommandLookup {
		commands := env.NewCommands(log.Default())

		if err := commands.ScanSearchPath(ctx, c.Path...); err != nil {
			log.WarnContext(ctx, "search path partially scanned", slog.Any("error", err))
		}

		log.DebugContext(ctx, "commands loaded", slog.Int("count", commands.Len()))

		return commands
	})
}
