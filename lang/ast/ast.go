// Package ast presents a fjord syntax tree as a typed grammar.
//
// Every view is a thin handle around a [syntax.Node] or [syntax.Token]. Views
// are obtained by casting, which succeeds only when the element has the
// expected kind, and their accessors scan the element's immediate children.
// A missing child means the source was malformed; accessors report it with a
// false result instead of panicking.
package ast

import (
	"iter"

	"github.com/ardnew/fjord/lang/syntax"
)

// Item is a top-level or block-level element: a [Statement] or an [Expr].
type Item interface {
	// Syntax returns the underlying syntax element.
	Syntax() syntax.Element
	// Range returns the source range of the item.
	Range() syntax.Range

	item()
}

// Statement is an [Item] that produces no value of its own.
type Statement interface {
	Item

	statement()
}

// Expr is an [Item] that evaluates to a value.
type Expr interface {
	Item

	expr()
}

// CastItem classifies el as a [Statement] or, failing that, an [Expr].
func CastItem(el syntax.Element) (Item, bool) {
	if s, ok := CastStatement(el); ok {
		return s, true
	}

	if e, ok := CastExpr(el); ok {
		return e, true
	}

	return nil, false
}

// CastStatement classifies el as a [Statement].
func CastStatement(el syntax.Element) (Statement, bool) {
	if n, ok := el.(*syntax.Node); ok && n.Kind() == syntax.BindingDef {
		return BindingDef{node{n}}, true
	}

	return nil, false
}

// CastExpr classifies el as an [Expr]. Nodes are classified by their kind and
// tokens by whether they are literals.
func CastExpr(el syntax.Element) (Expr, bool) {
	switch el := el.(type) {
	case *syntax.Node:
		n := node{el}

		switch el.Kind() {
		case syntax.BinOp:
			return BinOp{n}, true
		case syntax.IfExpr:
			return If{n}, true
		case syntax.FunctionCall:
			return FunctionCall{n}, true
		case syntax.Lambda:
			return Lambda{n}, true
		case syntax.BindingUsage:
			return BindingUsage{n}, true
		case syntax.Block:
			return Block{n}, true
		}

	case *syntax.Token:
		t := token{el}

		switch el.Kind() {
		case syntax.Digits:
			return Digits{t}, true
		case syntax.StringLiteral:
			return StringLiteral{t}, true
		case syntax.True, syntax.False:
			return Bool{t}, true
		case syntax.Atom:
			return Atom{t}, true
		}
	}

	return nil, false
}

// node and token carry the shared accessors of node and token views.
type node struct{ n *syntax.Node }

func (v node) Syntax() syntax.Element { return v.n }
func (v node) Range() syntax.Range    { return v.n.Range() }

// Node returns the underlying syntax node.
func (v node) Node() *syntax.Node { return v.n }

func (node) item() {}

type token struct{ t *syntax.Token }

func (v token) Syntax() syntax.Element { return v.t }
func (v token) Range() syntax.Range    { return v.t.Range() }

// Text returns the token's source text.
func (v token) Text() string { return v.t.Text() }

func (token) item() {}

// items yields every child of n that classifies as an [Item].
func items(n *syntax.Node) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for el := range n.Elements() {
			if it, ok := CastItem(el); ok && !yield(it) {
				return
			}
		}
	}
}

// exprAfter returns the first child expression that follows the first token
// of the given kind.
func exprAfter(n *syntax.Node, kind syntax.Kind) (Expr, bool) {
	seen := false

	for el := range n.Elements() {
		if !seen {
			seen = el.Kind() == kind

			continue
		}

		if e, ok := CastExpr(el); ok {
			return e, true
		}
	}

	return nil, false
}

// Root is the view of a whole program.
type Root struct{ node }

// CastRoot returns the view of n if it is a [syntax.Root] node.
func CastRoot(n *syntax.Node) (Root, bool) {
	if n == nil || n.Kind() != syntax.Root {
		return Root{}, false
	}

	return Root{node{n}}, true
}

// Items returns an iterator over the program's top-level items. The iterator
// may be used more than once.
func (r Root) Items() iter.Seq[Item] { return items(r.n) }
