// Package eval interprets fjord programs by walking their syntax trees.
//
// Evaluation is single-threaded and synchronous. The first failure stops the
// program and is returned as an [*Error] that locates the offending source.
//
// Scoping is dynamic: a lambda captures nothing when it is created, and a
// call evaluates the lambda's body in a child of the caller's scope. A free
// name in a lambda body therefore resolves against the scope of whoever
// calls it.
package eval

import (
	"context"
	"io"
	"iter"
	"math"
	"os"
	"strconv"

	"github.com/ardnew/fjord/lang/ast"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/lang/syntax"
	"github.com/ardnew/fjord/lang/value"
	"github.com/ardnew/fjord/log"
)

// DefaultMaxDepth is the default limit on nested lambda calls.
const DefaultMaxDepth = 1000

// Evaluator holds the configuration shared by evaluations. It has no
// mutable state, so one Evaluator may serve concurrent evaluations provided
// each uses its own [env.Env].
type Evaluator struct {
	spawner  Spawner
	logger   log.Logger
	maxDepth int
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithSpawner sets the Spawner used for command calls. The default is
// [ExecSpawner].
func WithSpawner(s Spawner) Option {
	return func(ev *Evaluator) { ev.spawner = s }
}

// WithLogger sets the logger used to trace evaluation.
func WithLogger(l log.Logger) Option {
	return func(ev *Evaluator) { ev.logger = l }
}

// WithMaxDepth limits how deeply lambda calls may nest. Values below one
// select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(ev *Evaluator) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		ev.maxDepth = depth
	}
}

// WithStdio sets the standard streams inherited by commands. Nil streams
// keep their defaults, which are those of the current process.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(ev *Evaluator) {
		if stdin != nil {
			ev.stdin = stdin
		}

		if stdout != nil {
			ev.stdout = stdout
		}

		if stderr != nil {
			ev.stderr = stderr
		}
	}
}

// New returns an Evaluator configured by opts.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{
		spawner:  ExecSpawner{},
		maxDepth: DefaultMaxDepth,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	for _, opt := range opts {
		opt(ev)
	}

	return ev
}

// Eval evaluates every item of root in e and returns the value of the last
// one.
func (ev *Evaluator) Eval(
	ctx context.Context,
	root ast.Root,
	e *env.Env,
) (value.Value, error) {
	r := &run{ctx: ctx, ev: ev}

	return r.items(root.Items(), e)
}

// EvalExpr evaluates a single expression in e.
func (ev *Evaluator) EvalExpr(
	ctx context.Context,
	expr ast.Expr,
	e *env.Env,
) (value.Value, error) {
	r := &run{ctx: ctx, ev: ev}

	return r.expr(expr, e)
}

// run is the state of one evaluation.
type run struct {
	ctx   context.Context
	ev    *Evaluator
	depth int
}

// items evaluates a sequence and returns the value of its last item, or Nil
// for an empty sequence.
func (r *run) items(seq iter.Seq[ast.Item], e *env.Env) (value.Value, error) {
	var last value.Value = value.Nil{}

	for it := range seq {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}

		v, err := r.item(it, e)
		if err != nil {
			return nil, err
		}

		last = v
	}

	return last, nil
}

func (r *run) item(it ast.Item, e *env.Env) (value.Value, error) {
	switch it := it.(type) {
	case ast.BindingDef:
		return value.Nil{}, r.bindingDef(it, e)

	case ast.Expr:
		return r.expr(it, e)

	default:
		return nil, newError(MalformedTree, it.Range())
	}
}

func (r *run) bindingDef(def ast.BindingDef, e *env.Env) error {
	name, ok := def.Name()
	if !ok {
		return newError(MalformedTree, def.Range())
	}

	expr, ok := def.Value()
	if !ok {
		return newError(MalformedTree, def.Range())
	}

	v, err := r.expr(expr, e)
	if err != nil {
		return err
	}

	e.StoreBinding(name.Text(), v)

	return nil
}

func (r *run) expr(expr ast.Expr, e *env.Env) (value.Value, error) {
	switch expr := expr.(type) {
	case ast.Digits:
		n, err := strconv.ParseInt(expr.Text(), 10, 64)
		if err != nil {
			return nil, newError(InvalidNumber, expr.Range()).
				withName(expr.Text()).wrap(err)
		}

		return value.Number(n), nil

	case ast.StringLiteral:
		return value.Str(expr.Value()), nil

	case ast.Bool:
		return value.Bool(expr.Value()), nil

	case ast.Atom:
		return value.Str(expr.Text()), nil

	case ast.BindingUsage:
		return r.bindingUsage(expr, e)

	case ast.Lambda:
		body, ok := expr.Body()
		if !ok {
			return nil, newError(MalformedTree, expr.Range())
		}

		return value.Lambda{Params: expr.Params(), Body: body}, nil

	case ast.Block:
		return r.items(expr.Items(), e.Child())

	case ast.BinOp:
		return r.binOp(expr, e)

	case ast.If:
		return r.conditional(expr, e)

	case ast.FunctionCall:
		return r.call(expr, e)

	default:
		return nil, newError(MalformedTree, expr.Range())
	}
}

func (r *run) bindingUsage(u ast.BindingUsage, e *env.Env) (value.Value, error) {
	name, ok := u.Name()
	if !ok {
		return nil, newError(MalformedTree, u.Range())
	}

	v, ok := e.Binding(name.Text())
	if !ok {
		err := newError(BindingDoesNotExist, u.Range()).withName(name.Text())
		err.Suggestions = e.Suggest(name.Text(), true, false)

		return nil, err
	}

	return v, nil
}

func (r *run) binOp(b ast.BinOp, e *env.Env) (value.Value, error) {
	op, ok := b.Op()
	if !ok {
		return nil, newError(MalformedTree, b.Range())
	}

	lhsExpr, ok := b.Lhs()
	if !ok {
		return nil, newError(MalformedTree, b.Range())
	}

	rhsExpr, ok := b.Rhs()
	if !ok {
		return nil, newError(MalformedTree, b.Range())
	}

	lhs, err := r.expr(lhsExpr, e)
	if err != nil {
		return nil, err
	}

	rhs, err := r.expr(rhsExpr, e)
	if err != nil {
		return nil, err
	}

	x, xok := lhs.(value.Number)
	y, yok := rhs.(value.Number)

	if !xok || !yok {
		err := newError(BinOpOnNonNumbers, span(b))
		err.Lhs, err.Rhs = lhs.Kind(), rhs.Kind()

		return nil, err
	}

	var (
		z        value.Number
		overflow bool
	)

	switch op.Kind() {
	case syntax.Plus:
		z = x + y
		overflow = (z > x) != (y > 0)
	case syntax.Minus:
		z = x - y
		overflow = (z < x) != (y > 0)
	case syntax.Star:
		z = x * y
		overflow = x != 0 && (z/x != y || (x == -1 && y == math.MinInt64))
	case syntax.Slash:
		if y == 0 {
			return nil, newError(DivisionByZero, span(b))
		}

		z = x / y
		overflow = x == math.MinInt64 && y == -1
	default:
		return nil, newError(MalformedTree, op.Range())
	}

	if overflow {
		return nil, newError(IntegerOverflow, span(b))
	}

	return z, nil
}

func (r *run) conditional(c ast.If, e *env.Env) (value.Value, error) {
	condExpr, ok := c.Condition()
	if !ok {
		return nil, newError(MalformedTree, c.Range())
	}

	cond, err := r.expr(condExpr, e)
	if err != nil {
		return nil, err
	}

	b, ok := cond.(value.Bool)
	if !ok {
		return nil, newError(NonBoolCond, span(condExpr))
	}

	branch, ok := c.Else()
	if b {
		branch, ok = c.Then()
	}

	if !ok {
		return nil, newError(MalformedTree, c.Range())
	}

	return r.expr(branch, e.Child())
}
