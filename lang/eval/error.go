package eval

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/fjord/lang/ast"
	"github.com/ardnew/fjord/lang/syntax"
	"github.com/ardnew/fjord/lang/value"
)

// ErrorKind classifies evaluation failures. It implements error so that
// errors.Is can match an [*Error] against a kind:
//
//	if errors.Is(err, eval.TooManyParams) { ... }
type ErrorKind uint8

// Evaluation error kinds.
const (
	BindingDoesNotExist ErrorKind = iota + 1
	FuncOrCommandDoesNotExist
	CallNonLambda
	TooFewParams
	TooManyParams
	BinOpOnNonNumbers
	NonBoolCond
	UndisplayableCommandArg
	FailedRunningCommand
	DivisionByZero
	InvalidNumber
	IntegerOverflow
	MaxDepthExceeded
	MalformedTree
)

var errorKindNames = [...]string{
	BindingDoesNotExist:       "BindingDoesNotExist",
	FuncOrCommandDoesNotExist: "FuncOrCommandDoesNotExist",
	CallNonLambda:             "CallNonLambda",
	TooFewParams:              "TooFewParams",
	TooManyParams:             "TooManyParams",
	BinOpOnNonNumbers:         "BinOpOnNonNumbers",
	NonBoolCond:               "NonBoolCond",
	UndisplayableCommandArg:   "UndisplayableCommandArg",
	FailedRunningCommand:      "FailedRunningCommand",
	DivisionByZero:            "DivisionByZero",
	InvalidNumber:             "InvalidNumber",
	IntegerOverflow:           "IntegerOverflow",
	MaxDepthExceeded:          "MaxDepthExceeded",
	MalformedTree:             "MalformedTree",
}

// String returns the kind's name.
func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}

	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error implements the error interface.
func (k ErrorKind) Error() string { return k.String() }

// Error is an evaluation failure located in the source.
type Error struct {
	Kind  ErrorKind
	Range syntax.Range

	// Name is the binding, function or command involved, if any.
	Name string
	// Lhs and Rhs are the operand types of a BinOpOnNonNumbers error.
	Lhs, Rhs value.Kind
	// Bound is the type of the value a CallNonLambda name is bound to.
	Bound value.Kind
	// Want and Got are the parameter and argument counts of an arity error.
	Want, Got int
	// Suggestions lists similar names for a name that failed to resolve.
	Suggestions []string

	err error
}

// span is the range of it up to its last meaningful token. Calls and
// operations keep the whitespace that follows their last operand.
func span(it ast.Item) syntax.Range {
	if n, ok := it.Syntax().(*syntax.Node); ok {
		return n.TrimmedRange()
	}

	return it.Range()
}

func newError(kind ErrorKind, rng syntax.Range) *Error {
	return &Error{Kind: kind, Range: rng}
}

func (e *Error) withName(name string) *Error {
	e.Name = name

	return e
}

func (e *Error) wrap(err error) *Error {
	e.err = err

	return e
}

// Message describes the failure without its location.
func (e *Error) Message() string {
	switch e.Kind {
	case BindingDoesNotExist:
		return fmt.Sprintf("binding %q does not exist", e.Name)
	case FuncOrCommandDoesNotExist:
		return fmt.Sprintf("function or command %q does not exist", e.Name)
	case CallNonLambda:
		return fmt.Sprintf("cannot call %q: bound to a %s, not a lambda",
			e.Name, e.Bound)
	case TooFewParams:
		return fmt.Sprintf("too few arguments: want %d, got %d", e.Want, e.Got)
	case TooManyParams:
		return fmt.Sprintf("too many arguments: want %d, got %d", e.Want, e.Got)
	case BinOpOnNonNumbers:
		return fmt.Sprintf("binary operation on non-numbers: %s and %s",
			e.Lhs, e.Rhs)
	case NonBoolCond:
		return "condition is not a bool"
	case UndisplayableCommandArg:
		return "command argument has no textual representation"
	case FailedRunningCommand:
		if e.err != nil {
			return fmt.Sprintf("failed running command %q: %v", e.Name, e.err)
		}

		return fmt.Sprintf("failed running command %q", e.Name)
	case DivisionByZero:
		return "division by zero"
	case InvalidNumber:
		return fmt.Sprintf("invalid number %q", e.Name)
	case IntegerOverflow:
		return "integer overflow"
	case MaxDepthExceeded:
		return "maximum call depth exceeded"
	case MalformedTree:
		return "malformed syntax tree"
	default:
		return e.Kind.String()
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message())
	sb.WriteString(" at ")
	sb.WriteString(e.Range.String())

	if len(e.Suggestions) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(e.Suggestions, ", "))
		sb.WriteString("?)")
	}

	return sb.String()
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)

	return ok && k == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("message", e.Message()),
		slog.Int("start", e.Range.Start),
		slog.Int("end", e.Range.End),
	}

	if len(e.Suggestions) > 0 {
		attrs = append(attrs, slog.Any("suggestions", e.Suggestions))
	}

	return slog.GroupValue(attrs...)
}
