package eval

import (
	"log/slog"

	"github.com/ardnew/fjord/lang/ast"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/lang/syntax"
	"github.com/ardnew/fjord/lang/value"
)

// call resolves the callee of c and applies it to the evaluated arguments.
func (r *run) call(c ast.FunctionCall, e *env.Env) (value.Value, error) {
	nameTok, ok := c.Name()
	if !ok {
		return nil, newError(MalformedTree, c.Range())
	}

	params, ok := c.Params()
	if !ok {
		return nil, newError(MalformedTree, c.Range())
	}

	name := nameTok.Text()

	callee, ok := e.FuncOrCommand(name)
	if !ok {
		if v, bound := e.Binding(name); bound {
			err := newError(CallNonLambda, nameTok.Range()).withName(name)
			err.Bound = v.Kind()

			return nil, err
		}

		err := newError(FuncOrCommandDoesNotExist, nameTok.Range()).withName(name)
		err.Suggestions = e.Suggest(name, true, true)

		return nil, err
	}

	var (
		args  []value.Value
		exprs []ast.Expr
	)

	for arg := range c.Args() {
		v, err := r.expr(arg, e)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
		exprs = append(exprs, arg)
	}

	if callee.IsCommand() {
		return r.command(callee.Command, nameTok, args, exprs)
	}

	lambda := callee.Lambda

	if len(args) != len(lambda.Params) {
		kind := TooManyParams
		if len(args) < len(lambda.Params) {
			kind = TooFewParams
		}

		err := newError(kind, params.TrimmedRange()).withName(name)
		err.Want, err.Got = len(lambda.Params), len(args)

		return nil, err
	}

	if r.depth >= r.ev.maxDepth {
		return nil, newError(MaxDepthExceeded, span(c)).withName(name)
	}

	scope := e.Child()
	for i, p := range lambda.Params {
		scope.StoreBinding(p, args[i])
	}

	r.depth++
	defer func() { r.depth-- }()

	r.ev.logger.TraceContext(r.ctx, "call lambda",
		slog.String("name", name),
		slog.Int("depth", r.depth),
	)

	return r.expr(lambda.Body, scope)
}

// command runs the executable at path with the display form of args. Each
// argument without one fails at its own range.
func (r *run) command(
	path string,
	name *syntax.Token,
	args []value.Value,
	exprs []ast.Expr,
) (value.Value, error) {
	argv := make([]string, len(args))

	for i, v := range args {
		s, ok := value.Display(v)
		if !ok {
			return nil, newError(UndisplayableCommandArg, span(exprs[i])).
				withName(name.Text())
		}

		argv[i] = s
	}

	r.ev.logger.DebugContext(r.ctx, "command spawn",
		slog.String("path", path),
		slog.Int("argc", len(argv)),
	)

	code, err := r.ev.spawner.Spawn(r.ctx, Command{
		Path:   path,
		Args:   argv,
		Stdin:  r.ev.stdin,
		Stdout: r.ev.stdout,
		Stderr: r.ev.stderr,
	})
	if err != nil {
		return nil, newError(FailedRunningCommand, name.Range()).
			withName(name.Text()).wrap(err)
	}

	if code != 0 {
		r.ev.logger.DebugContext(r.ctx, "command exited",
			slog.String("path", path),
			slog.Int("code", code),
		)
	}

	return value.Nil{}, nil
}
