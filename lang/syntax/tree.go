package syntax

import (
	"iter"
	"strconv"
	"strings"
)

// Range is a half-open interval of byte offsets into the parsed source.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int { return r.End - r.Start }

// IsEmpty reports whether r covers no bytes.
func (r Range) IsEmpty() bool { return r.End <= r.Start }

// Contains reports whether offset lies within r.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Cover returns the smallest range containing both r and o.
func (r Range) Cover(o Range) Range {
	return Range{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}

// Slice returns the text of source covered by r. Out of bounds ranges are
// clamped.
func (r Range) Slice(source string) string {
	start := min(max(r.Start, 0), len(source))
	end := min(max(r.End, start), len(source))

	return source[start:end]
}

// String formats r the way debug trees print it: "start..end".
func (r Range) String() string {
	return strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End)
}

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	Range() Range
	Text() string

	element()
}

// Token is a leaf of the syntax tree. It holds the exact source text it was
// lexed from.
type Token struct {
	kind Kind
	text string
	rng  Range
}

// Kind returns the token's kind.
func (t *Token) Kind() Kind { return t.kind }

// Range returns the byte range the token covers.
func (t *Token) Range() Range { return t.rng }

// Text returns the token's source text.
func (t *Token) Text() string { return t.text }

func (*Token) element() {}

// Node is an interior element of the syntax tree. Nodes are immutable once
// the [Builder] finishes them.
type Node struct {
	kind     Kind
	rng      Range
	children []Element
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Range returns the byte range covered by the node's children.
func (n *Node) Range() Range { return n.rng }

func (*Node) element() {}

// Text returns the concatenated text of every token beneath n.
func (n *Node) Text() string {
	var sb strings.Builder

	sb.Grow(n.rng.Len())

	for t := range n.Tokens() {
		sb.WriteString(t.text)
	}

	return sb.String()
}

// TrimmedRange returns the range of n without the trivia that trails its
// last meaningful token. A node holding only trivia has an empty range at
// its start.
func (n *Node) TrimmedRange() Range {
	r := Range{Start: n.rng.Start, End: n.rng.Start}

	for t := range n.Tokens() {
		if !t.kind.IsTrivia() {
			r.End = t.rng.End
		}
	}

	return r
}

// Len returns the number of immediate children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i'th immediate child.
func (n *Node) Child(i int) Element { return n.children[i] }

// Elements returns an iterator over the immediate children of n, both nodes
// and tokens, in source order.
func (n *Node) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, el := range n.children {
			if !yield(el) {
				return
			}
		}
	}
}

// Nodes returns an iterator over the immediate child nodes of n.
func (n *Node) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, el := range n.children {
			if c, ok := el.(*Node); ok && !yield(c) {
				return
			}
		}
	}
}

// Tokens returns an iterator over every token beneath n, depth first, in
// source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.walkTokens(yield)
	}
}

func (n *Node) walkTokens(yield func(*Token) bool) bool {
	for _, el := range n.children {
		switch el := el.(type) {
		case *Token:
			if !yield(el) {
				return false
			}

		case *Node:
			if !el.walkTokens(yield) {
				return false
			}
		}
	}

	return true
}

// Descendants returns an iterator over n and every node beneath it in
// pre-order, paired with the depth relative to n.
func (n *Node) Descendants() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		n.walkNodes(0, yield)
	}
}

func (n *Node) walkNodes(depth int, yield func(int, *Node) bool) bool {
	if !yield(depth, n) {
		return false
	}

	for c := range n.Nodes() {
		if !c.walkNodes(depth+1, yield) {
			return false
		}
	}

	return true
}

// FirstToken returns the first immediate child token of the given kind.
func (n *Node) FirstToken(kind Kind) (*Token, bool) {
	for _, el := range n.children {
		if t, ok := el.(*Token); ok && t.kind == kind {
			return t, true
		}
	}

	return nil, false
}

// FirstNode returns the first immediate child node of the given kind.
func (n *Node) FirstNode(kind Kind) (*Node, bool) {
	for c := range n.Nodes() {
		if c.kind == kind {
			return c, true
		}
	}

	return nil, false
}
