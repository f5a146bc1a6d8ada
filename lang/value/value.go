// Package value defines the runtime values of fjord programs.
package value

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/fjord/lang/ast"
)

// Kind is the runtime type tag of a [Value].
type Kind uint8

// Runtime type tags.
const (
	NilKind Kind = iota
	NumberKind
	StrKind
	BoolKind
	LambdaKind
)

// String returns the name used for the kind in diagnostics.
func (k Kind) String() string {
	switch k {
	case NilKind:
		return "nil"
	case NumberKind:
		return "number"
	case StrKind:
		return "string"
	case BoolKind:
		return "bool"
	case LambdaKind:
		return "lambda"
	default:
		return "unknown"
	}
}

// Value is one of [Nil], [Number], [Str], [Bool] or [Lambda]. Values are
// compared structurally.
type Value interface {
	Kind() Kind
	String() string

	value()
}

// Nil is the value of statements, empty sequences and completed commands.
type Nil struct{}

// Number is a signed integer.
type Number int64

// Str is a string.
type Str string

// Bool is a boolean.
type Bool bool

// Lambda is a function value: parameter names and a body expression. It does
// not capture the environment it was defined in.
type Lambda struct {
	Params []string
	Body   ast.Expr
}

func (Nil) Kind() Kind    { return NilKind }
func (Number) Kind() Kind { return NumberKind }
func (Str) Kind() Kind    { return StrKind }
func (Bool) Kind() Kind   { return BoolKind }
func (Lambda) Kind() Kind { return LambdaKind }

func (Nil) String() string      { return "nil" }
func (v Number) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Str) String() string    { return string(v) }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }

func (v Lambda) String() string {
	return "|" + strings.Join(v.Params, " ") + "| ..."
}

func (Nil) value()    {}
func (Number) value() {}
func (Str) value()    {}
func (Bool) value()   {}
func (Lambda) value() {}

// Display returns the textual form of v used as a command argument. Only
// numbers and strings have one.
func Display(v Value) (string, bool) {
	switch v := v.(type) {
	case Number:
		return v.String(), true
	case Str:
		return string(v), true
	default:
		return "", false
	}
}

// Equal reports whether a and b are structurally equal. Lambdas are equal
// when their parameters match and their bodies cover the same source range.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Lambda:
		b, ok := b.(Lambda)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}

		for i := range a.Params {
			if a.Params[i] != b.Params[i] {
				return false
			}
		}

		switch {
		case a.Body == nil || b.Body == nil:
			return a.Body == nil && b.Body == nil
		default:
			return a.Body.Range() == b.Body.Range()
		}

	default:
		return a == b
	}
}

// Attr returns a log attribute describing v.
func Attr(key string, v Value) slog.Attr {
	if v == nil {
		return slog.String(key, "<none>")
	}

	return slog.Group(key,
		slog.String("kind", v.Kind().String()),
		slog.String("value", v.String()),
	)
}
