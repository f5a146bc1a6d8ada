package eval

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/fjord/lang/ast"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/lang/parser"
	"github.com/ardnew/fjord/lang/syntax"
	"github.com/ardnew/fjord/lang/value"
	"github.com/ardnew/fjord/log"
)

type fakeCommands map[string]string

func (f fakeCommands) Get(name string) (string, bool) {
	p, ok := f[name]

	return p, ok
}

func (f fakeCommands) Names() []string {
	var names []string
	for n := range f {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}

type fakeSpawner struct {
	calls []Command
	code  int
	err   error
}

func (f *fakeSpawner) Spawn(_ context.Context, c Command) (int, error) {
	f.calls = append(f.calls, c)

	return f.code, f.err
}

func mustParse(t *testing.T, input string) ast.Root {
	t.Helper()

	out := parser.Parse(input)
	require.Empty(t, out.Errors(), "input %q", input)

	root, ok := ast.CastRoot(out.Root())
	require.True(t, ok)

	return root
}

func evalWith(
	t *testing.T,
	input string,
	cmds env.CommandLookup,
	opts ...Option,
) (value.Value, error) {
	t.Helper()

	root := mustParse(t, input)

	var envOpts []env.Option
	if cmds != nil {
		envOpts = append(envOpts, env.WithCommands(cmds))
	}

	return New(opts...).Eval(context.Background(), root, env.New(envOpts...))
}

func TestEval_Values(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  value.Value
	}{
		{"empty program", "", value.Nil{}},
		{"number", "42", value.Number(42)},
		{"string", `"hello"`, value.Str("hello")},
		{"true", "true", value.Bool(true)},
		{"false", "false", value.Bool(false)},
		{"left associative", "10 - 5 - 3 - 2", value.Number(0)},
		{"precedence", "2 + 3 * 4", value.Number(14)},
		{"division", "8 / 2 / 2", value.Number(2)},
		{"largest number", "9223372036854775806 + 1", value.Number(math.MaxInt64)},
		{"smallest number", "0 - 9223372036854775807 - 1", value.Number(math.MinInt64)},
		{"negative product", "{ 0 - 4611686018427387904 } * 2", value.Number(math.MinInt64)},
		{"binding", "let a = 5\n$a * 2", value.Number(10)},
		{"binding is nil", "let a = 1", value.Nil{}},
		{"last item wins", "1\n2\n3", value.Number(3)},
		{"block", "{\n  let a = 1\n  $a + 1\n}", value.Number(2)},
		{"empty block", "{}", value.Nil{}},
		{"lambda call", "let add = |a b| $a + $b\nadd 1 2", value.Number(3)},
		{"atom argument", "let id = |x| $x\nid hello", value.Str("hello")},
		{"block argument", "let id = |x| $x\nid { 2 * 3 }", value.Number(6)},
		{"if true", "if true then 1 else 2", value.Number(1)},
		{"if false", "if false then 1 else 2", value.Number(2)},
		{"untaken branch", "if true then 1 else $missing", value.Number(1)},
		{
			"lambda as argument",
			"let twice = |f x| f { f $x }\nlet inc = |n| $n + 1\ntwice $inc 3",
			value.Number(5),
		},
		{
			"dynamic scope",
			"let show = || $y\nlet y = 1\n{\n  let y = 2\n  show\n}",
			value.Number(2),
		},
		{"shadowing in block", "let a = 1\n{ let a = 2 }\n$a", value.Number(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalWith(t, tt.input, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_LambdaLiteral(t *testing.T) {
	got, err := evalWith(t, "|x y| $x", nil)
	require.NoError(t, err)

	lambda, ok := got.(value.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, lambda.Params)
	assert.IsType(t, ast.BindingUsage{}, lambda.Body)
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		rng   syntax.Range
	}{
		{
			"non-bool condition",
			`if "x" then 1 else 2`,
			NonBoolCond, syntax.Range{Start: 3, End: 6},
		},
		{
			"too many params",
			"let f = |a| $a\nf 1 2",
			TooManyParams, syntax.Range{Start: 17, End: 20},
		},
		{
			"too few params",
			"let f = |a| $a\nf",
			TooFewParams, syntax.Range{Start: 16, End: 16},
		},
		{
			"missing binding",
			"$nope",
			BindingDoesNotExist, syntax.Range{Start: 0, End: 5},
		},
		{
			"missing function",
			"nope 1",
			FuncOrCommandDoesNotExist, syntax.Range{Start: 0, End: 4},
		},
		{
			"call non-lambda",
			"let x = 1\nx",
			CallNonLambda, syntax.Range{Start: 10, End: 11},
		},
		{
			"binop on non-numbers",
			`1 + "a"`,
			BinOpOnNonNumbers, syntax.Range{Start: 0, End: 7},
		},
		{
			"division by zero",
			"1 / 0",
			DivisionByZero, syntax.Range{Start: 0, End: 5},
		},
		{
			"call condition ends at its name",
			"let f = || \"s\"\nif f then 1 else 2",
			NonBoolCond, syntax.Range{Start: 18, End: 19},
		},
		{
			"arguments end before operator",
			"let f = |a| $a\nf 1 2 + 3",
			TooManyParams, syntax.Range{Start: 17, End: 20},
		},
		{
			"operation ends at its operand",
			`"a" - 1 - 2`,
			BinOpOnNonNumbers, syntax.Range{Start: 0, End: 7},
		},
		{
			"addition overflows",
			"9223372036854775807 + 1",
			IntegerOverflow, syntax.Range{Start: 0, End: 23},
		},
		{
			"subtraction overflows",
			"0 - 9223372036854775807 - 2",
			IntegerOverflow, syntax.Range{Start: 0, End: 27},
		},
		{
			"multiplication overflows",
			"4611686018427387904 * 2",
			IntegerOverflow, syntax.Range{Start: 0, End: 23},
		},
		{
			"division overflows",
			"{ 0 - 9223372036854775807 - 1 } / { 0 - 1 }",
			IntegerOverflow, syntax.Range{Start: 0, End: 43},
		},
		{
			"overflow inside a block",
			"{ 3037000500 * 3037000500 } + 1",
			IntegerOverflow, syntax.Range{Start: 2, End: 25},
		},
		{
			"number too large",
			"99999999999999999999",
			InvalidNumber, syntax.Range{Start: 0, End: 20},
		},
		{
			"block scope ends",
			"{ let a = 1 }\n$a",
			BindingDoesNotExist, syntax.Range{Start: 14, End: 16},
		},
		{
			"lambda scope ends",
			"let f = |a| $a\nf 1\n$a",
			BindingDoesNotExist, syntax.Range{Start: 19, End: 21},
		},
		{
			"lambdas capture nothing",
			"let mk = |y| || $y\nlet f = mk 1\nf",
			BindingDoesNotExist, syntax.Range{Start: 16, End: 18},
		},
		{
			"first error stops evaluation",
			"$a\n1 / 0",
			BindingDoesNotExist, syntax.Range{Start: 0, End: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalWith(t, tt.input, nil)
			require.Error(t, err)

			var evalErr *Error
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.kind, evalErr.Kind)
			assert.Equal(t, tt.rng, evalErr.Range)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestEval_ErrorDetails(t *testing.T) {
	_, err := evalWith(t, `true * "s"`, nil)

	var evalErr *Error
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, value.BoolKind, evalErr.Lhs)
	assert.Equal(t, value.StrKind, evalErr.Rhs)
	assert.Contains(t, evalErr.Error(), "bool and string")

	_, err = evalWith(t, "let f = |a b| $a\nf 1", nil)
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, 2, evalErr.Want)
	assert.Equal(t, 1, evalErr.Got)
	assert.False(t, errors.Is(err, TooManyParams))
}

func TestEval_Suggestions(t *testing.T) {
	_, err := evalWith(t, "let greeting = 1\n$greetng", nil)

	var evalErr *Error
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, evalErr.Suggestions, "greeting")
	assert.Contains(t, evalErr.Error(), "did you mean greeting")

	_, err = evalWith(t, "ech hi", fakeCommands{"echo": "/bin/echo"})
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, FuncOrCommandDoesNotExist, evalErr.Kind)
	assert.Equal(t, []string{"echo"}, evalErr.Suggestions)
}

func TestEval_MaxDepth(t *testing.T) {
	_, err := evalWith(t, "let f = || f\nf", nil, WithMaxDepth(10))

	assert.ErrorIs(t, err, MaxDepthExceeded)
}

func TestEval_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Eval(ctx, mustParse(t, "1"), env.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEval_CommandFallback(t *testing.T) {
	spawner := &fakeSpawner{}
	cmds := fakeCommands{"echo": "/bin/echo"}

	got, err := evalWith(t, `echo hello 42 "a b" $x`, cmds,
		WithSpawner(spawner), WithLogger(log.Logger{}))
	require.Error(t, err, "unbound $x must fail before spawning")
	assert.Empty(t, spawner.calls)
	assert.Nil(t, got)

	got, err = evalWith(t, `let x = 7`+"\n"+`echo hello 42 "a b" $x`, cmds,
		WithSpawner(spawner))
	require.NoError(t, err)
	assert.Equal(t, value.Nil{}, got)

	require.Len(t, spawner.calls, 1)
	assert.Equal(t, "/bin/echo", spawner.calls[0].Path)
	assert.Equal(t, []string{"hello", "42", "a b", "7"}, spawner.calls[0].Args)
}

func TestEval_CommandShadowsNonLambdaBinding(t *testing.T) {
	spawner := &fakeSpawner{}

	_, err := evalWith(t, "let echo = 1\necho hi",
		fakeCommands{"echo": "/bin/echo"}, WithSpawner(spawner))
	require.NoError(t, err)
	require.Len(t, spawner.calls, 1)
}

func TestEval_LambdaShadowsCommand(t *testing.T) {
	spawner := &fakeSpawner{}

	got, err := evalWith(t, "let echo = |x| $x\necho hi",
		fakeCommands{"echo": "/bin/echo"}, WithSpawner(spawner))
	require.NoError(t, err)
	assert.Equal(t, value.Str("hi"), got)
	assert.Empty(t, spawner.calls)
}

func TestEval_CommandErrors(t *testing.T) {
	cmds := fakeCommands{"echo": "/bin/echo"}

	t.Run("undisplayable argument", func(t *testing.T) {
		spawner := &fakeSpawner{}

		_, err := evalWith(t, "echo ok true", cmds, WithSpawner(spawner))

		var evalErr *Error
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, UndisplayableCommandArg, evalErr.Kind)
		assert.Equal(t, syntax.Range{Start: 8, End: 12}, evalErr.Range)
		assert.Empty(t, spawner.calls)
	})

	t.Run("spawn failure", func(t *testing.T) {
		cause := errors.New("exec format error")
		spawner := &fakeSpawner{err: cause}

		_, err := evalWith(t, "echo hi", cmds, WithSpawner(spawner))

		var evalErr *Error
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, FailedRunningCommand, evalErr.Kind)
		assert.Equal(t, syntax.Range{Start: 0, End: 4}, evalErr.Range)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		spawner := &fakeSpawner{code: 3}

		got, err := evalWith(t, "echo hi", cmds, WithSpawner(spawner))
		require.NoError(t, err)
		assert.Equal(t, value.Nil{}, got)
	})
}

func TestExecSpawner_RoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > '" + out + "'\n"

	bin := filepath.Join(dir, "bin")
	require.NoError(t, os.Mkdir(bin, 0o755))
	require.NoError(t,
		os.WriteFile(filepath.Join(bin, "record"), []byte(script), 0o755))

	cmds := env.NewCommands(log.Logger{})
	require.NoError(t, cmds.Rescan(context.Background(), bin))

	got, err := evalWith(t, `record one 2 "three four"`, cmds)
	require.NoError(t, err)
	assert.Equal(t, value.Nil{}, got)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "one\n2\nthree four\n", string(data))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "TooManyParams", TooManyParams.String())
	assert.Equal(t, "ErrorKind(200)", ErrorKind(200).String())
	assert.Equal(t, "NonBoolCond", NonBoolCond.Error())
}
