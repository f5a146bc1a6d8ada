package ast

import (
	"iter"
	"strings"

	"github.com/ardnew/fjord/lang/syntax"
)

// BindingDef is the statement "let NAME = EXPR".
type BindingDef struct{ node }

func (BindingDef) statement() {}

// Name returns the name token of the binding.
func (d BindingDef) Name() (*syntax.Token, bool) {
	return d.n.FirstToken(syntax.Atom)
}

// Value returns the bound expression.
func (d BindingDef) Value() (Expr, bool) { return exprAfter(d.n, syntax.Equals) }

// BinOp is a binary arithmetic expression.
type BinOp struct{ node }

func (BinOp) expr() {}

// Op returns the operator token.
func (b BinOp) Op() (*syntax.Token, bool) {
	for el := range b.n.Elements() {
		if t, ok := el.(*syntax.Token); ok && t.Kind().IsOperator() {
			return t, true
		}
	}

	return nil, false
}

// Lhs returns the left operand.
func (b BinOp) Lhs() (Expr, bool) {
	for el := range b.n.Elements() {
		if el.Kind().IsOperator() {
			break
		}

		if e, ok := CastExpr(el); ok {
			return e, true
		}
	}

	return nil, false
}

// Rhs returns the right operand.
func (b BinOp) Rhs() (Expr, bool) {
	op, ok := b.Op()
	if !ok {
		return nil, false
	}

	return exprAfter(b.n, op.Kind())
}

// If is the conditional "if COND then EXPR else EXPR".
type If struct{ node }

func (If) expr() {}

// Condition returns the tested expression.
func (i If) Condition() (Expr, bool) { return exprAfter(i.n, syntax.If) }

// Then returns the expression evaluated when the condition holds.
func (i If) Then() (Expr, bool) { return exprAfter(i.n, syntax.Then) }

// Else returns the expression evaluated when the condition fails.
func (i If) Else() (Expr, bool) { return exprAfter(i.n, syntax.Else) }

// FunctionCall is a named call with whitespace separated arguments.
type FunctionCall struct{ node }

func (FunctionCall) expr() {}

// Name returns the callee's name token.
func (c FunctionCall) Name() (*syntax.Token, bool) {
	return c.n.FirstToken(syntax.Atom)
}

// Params returns the argument list node. Its range locates arity errors.
func (c FunctionCall) Params() (*syntax.Node, bool) {
	return c.n.FirstNode(syntax.FunctionCallParams)
}

// Args returns an iterator over the argument expressions.
func (c FunctionCall) Args() iter.Seq[Expr] {
	return func(yield func(Expr) bool) {
		params, ok := c.Params()
		if !ok {
			return
		}

		for el := range params.Elements() {
			if e, ok := CastExpr(el); ok && !yield(e) {
				return
			}
		}
	}
}

// Lambda is the function literal "|PARAMS| BODY".
type Lambda struct{ node }

func (Lambda) expr() {}

// Params returns the parameter names in declaration order.
func (l Lambda) Params() []string {
	params, ok := l.n.FirstNode(syntax.LambdaParams)
	if !ok {
		return nil
	}

	var names []string

	for el := range params.Elements() {
		if el.Kind() == syntax.Atom {
			names = append(names, el.Text())
		}
	}

	return names
}

// Body returns the expression evaluated when the lambda is called.
func (l Lambda) Body() (Expr, bool) {
	seen := false

	for el := range l.n.Elements() {
		if el.Kind() == syntax.LambdaParams {
			seen = true

			continue
		}

		if e, ok := CastExpr(el); seen && ok {
			return e, true
		}
	}

	return nil, false
}

// BindingUsage is the reference "$NAME".
type BindingUsage struct{ node }

func (BindingUsage) expr() {}

// Name returns the referenced name token.
func (u BindingUsage) Name() (*syntax.Token, bool) {
	return u.n.FirstToken(syntax.Atom)
}

// Block is a braced sequence of items evaluated in its own scope.
type Block struct{ node }

func (Block) expr() {}

// Items returns an iterator over the block's items.
func (b Block) Items() iter.Seq[Item] { return items(b.n) }

// Digits is an integer literal.
type Digits struct{ token }

func (Digits) expr() {}

// StringLiteral is a double-quoted string literal.
type StringLiteral struct{ token }

func (StringLiteral) expr() {}

// Value returns the literal's text without its surrounding quotes.
func (s StringLiteral) Value() string {
	return strings.TrimSuffix(strings.TrimPrefix(s.t.Text(), `"`), `"`)
}

// Bool is one of the keywords true or false.
type Bool struct{ token }

func (Bool) expr() {}

// Value returns the boolean the keyword denotes.
func (b Bool) Value() bool { return b.t.Kind() == syntax.True }

// Atom is a bare word used as a value. It evaluates to its own text.
type Atom struct{ token }

func (Atom) expr() {}
