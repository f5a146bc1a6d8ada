package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ardnew/fjord/lang"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/lang/value"
	"github.com/ardnew/fjord/log"
)

// Run evaluates scripts in order in one shared scope, so bindings made by
// one are visible to the next. The value of the last item of each script
// is printed unless it is nil.
type Run struct {
	Eval     []string `help:"Evaluate SOURCE before any files."     placeholder:"SOURCE" short:"e"`
	MaxDepth int      `help:"Maximum nesting of lambda calls."      default:"1000"`
	Quiet    bool     `help:"Do not print script results."                              short:"q"`
	Files    []string `help:"Script files, or '-' for stdin."       arg:"" optional:""`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer func() { cancel(err) }()

	var scripts []script

	for i, src := range r.Eval {
		scripts = append(scripts, script{name: "<eval " + strconv.Itoa(i+1) + ">", text: src})
	}

	if len(r.Files) > 0 || len(r.Eval) == 0 {
		files, lerr := loadScripts(ctx, r.Files)
		if lerr != nil {
			return lerr
		}

		scripts = append(scripts, files...)
	}

	commands := commandsFrom(ctx)

	opts := append(langOptions(ctx), lang.WithMaxDepth(r.MaxDepth))
	if commands != nil {
		opts = append(opts, lang.WithCommands(commands))
	}

	scope := env.New(env.WithCommands(commands), env.WithLogger(log.Default()))

	for _, s := range scripts {
		if err := r.runScript(ctx, s, scope, opts); err != nil {
			report(stderr(ctx), s, err)

			return ErrScriptFailed.Wrap(err).With(slog.String("script", s.name))
		}
	}

	return nil
}

func (r *Run) runScript(ctx context.Context, s script, scope *env.Env, opts []lang.Option) error {
	log.DebugContext(ctx, "run script", slog.String("script", s.name))

	prog, err := lang.ParseString(ctx, s.text, opts...)
	if err != nil {
		return err
	}

	v, err := prog.Eval(ctx, scope)
	if err != nil {
		return err
	}

	if _, isNil := v.(value.Nil); isNil || r.Quiet {
		return nil
	}

	if _, err := fmt.Fprintln(stdout(ctx), v.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
