package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/fjord/lang/ast"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/lang/eval"
	"github.com/ardnew/fjord/lang/parser"
	"github.com/ardnew/fjord/lang/syntax"
	"github.com/ardnew/fjord/lang/value"
	"github.com/ardnew/fjord/log"
)

// config holds the settings applied by [Option] values.
type config struct {
	logger   log.Logger
	cache    bool
	commands env.CommandLookup
	evalOpts []eval.Option
}

// Option configures parsing and evaluation.
type Option func(*config)

// WithLogger sets the structured logger. If not provided, the logger is
// zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
		c.evalOpts = append(c.evalOpts, eval.WithLogger(logger))
	}
}

// WithCache controls whether parse results are shared through the
// process-wide cache. It is enabled by default.
func WithCache(enable bool) Option {
	return func(c *config) { c.cache = enable }
}

// WithCommands sets the command lookup of the environment created by [Eval]
// when it is given none.
func WithCommands(commands env.CommandLookup) Option {
	return func(c *config) { c.commands = commands }
}

// WithSpawner sets the Spawner used for command calls.
func WithSpawner(s eval.Spawner) Option {
	return func(c *config) { c.evalOpts = append(c.evalOpts, eval.WithSpawner(s)) }
}

// WithMaxDepth limits how deeply lambda calls may nest.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.evalOpts = append(c.evalOpts, eval.WithMaxDepth(depth)) }
}

// WithStdio sets the standard streams inherited by commands.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(c *config) {
		c.evalOpts = append(c.evalOpts, eval.WithStdio(stdin, stdout, stderr))
	}
}

func makeConfig(opts ...Option) config {
	c := config{cache: true}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Program is a parsed fjord source.
type Program struct {
	source string
	output *parser.Output
	config config
}

// ParseString parses source. The returned Program is never nil, so that a
// malformed source can still be inspected; when source contains syntax
// errors the error is a [*ParseError] listing all of them.
func ParseString(ctx context.Context, source string, opts ...Option) (*Program, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "parse start",
		slog.Int("source_bytes", len(source)),
		slog.Bool("cache", cfg.cache),
	)

	var out *parser.Output
	if cfg.cache {
		out = cachedParse(ctx, cfg.logger, source)
	} else {
		out = parser.Parse(source)
	}

	prog := &Program{source: source, output: out, config: cfg}

	cfg.logger.DebugContext(ctx, "parse complete",
		slog.Int("error_count", len(out.Errors())),
	)

	if err := prog.Err(); err != nil {
		return prog, err
	}

	return prog, nil
}

// Source returns the parsed text.
func (p *Program) Source() string { return p.source }

// Syntax returns the root of the lossless syntax tree.
func (p *Program) Syntax() *syntax.Node { return p.output.Root() }

// Root returns the typed view of the program.
func (p *Program) Root() ast.Root {
	root, _ := ast.CastRoot(p.output.Root())

	return root
}

// Errors returns the syntax errors of the program.
func (p *Program) Errors() []parser.SyntaxError { return p.output.Errors() }

// Err returns a [*ParseError] if the program has syntax errors.
func (p *Program) Err() error {
	if !p.output.HasErrors() {
		return nil
	}

	return &ParseError{Errors: p.output.Errors(), Source: p.source}
}

// DebugTree renders the syntax tree one element per line.
func (p *Program) DebugTree() string { return p.output.DebugTree() }

// Eval evaluates the program in e. A program with syntax errors is not
// evaluated; its [*ParseError] is returned instead. Evaluation failures are
// returned as [*eval.Error].
func (p *Program) Eval(ctx context.Context, e *env.Env) (value.Value, error) {
	if err := p.Err(); err != nil {
		return nil, err
	}

	if e == nil {
		e = env.New(
			env.WithCommands(p.config.commands),
			env.WithLogger(p.config.logger),
		)
	}

	v, err := eval.New(p.config.evalOpts...).Eval(ctx, p.Root(), e)
	if err != nil {
		p.config.logger.DebugContext(ctx, "eval failed", slog.Any("error", err))

		return nil, err
	}

	p.config.logger.TraceContext(ctx, "eval complete", value.Attr("result", v))

	return v, nil
}

// Eval parses and evaluates source in e. If e is nil a fresh root scope is
// used, with the command lookup set by [WithCommands].
func Eval(
	ctx context.Context,
	source string,
	e *env.Env,
	opts ...Option,
) (value.Value, error) {
	prog, err := ParseString(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	return prog.Eval(ctx, e)
}
