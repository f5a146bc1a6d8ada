package syntax

// Checkpoint marks a position in the builder's pending children. Passing it
// to [Builder.StartNodeAt] wraps everything emitted since the mark in a new
// node.
type Checkpoint int

type openNode struct {
	kind  Kind
	first int // index into Builder.pending of the node's first child
}

// Builder assembles a syntax tree bottom-up. Nodes are opened and closed with
// StartNode and FinishNode; tokens are appended as leaves of the innermost
// open node. The builder tracks byte offsets itself, so token ranges follow
// from the order in which text is appended.
//
// The zero value is ready to use.
type Builder struct {
	parents []openNode
	pending []Element
	offset  int
}

// StartNode opens a new node of the given kind.
func (b *Builder) StartNode(kind Kind) {
	b.parents = append(b.parents, openNode{kind: kind, first: len(b.pending)})
}

// Checkpoint returns a marker for the current position.
func (b *Builder) Checkpoint() Checkpoint { return Checkpoint(len(b.pending)) }

// StartNodeAt opens a new node of the given kind whose first child is the
// element emitted immediately after cp was taken. Elements already emitted
// since cp become its children.
//
// StartNodeAt panics if cp precedes the start of the innermost open node,
// since that would splice a node across its parent's boundary.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	first := int(cp)

	if first > len(b.pending) {
		panic("syntax: checkpoint is beyond the pending children")
	}

	if n := len(b.parents); n > 0 && first < b.parents[n-1].first {
		panic("syntax: checkpoint precedes the innermost open node")
	}

	b.parents = append(b.parents, openNode{kind: kind, first: first})
}

// Token appends a leaf of the given kind to the innermost open node.
func (b *Builder) Token(kind Kind, text string) {
	end := b.offset + len(text)

	b.pending = append(b.pending, &Token{
		kind: kind,
		text: text,
		rng:  Range{Start: b.offset, End: end},
	})

	b.offset = end
}

// FinishNode closes the innermost open node.
func (b *Builder) FinishNode() {
	n := len(b.parents)
	if n == 0 {
		panic("syntax: FinishNode without matching StartNode")
	}

	open := b.parents[n-1]
	b.parents = b.parents[:n-1]

	children := make([]Element, len(b.pending)-open.first)
	copy(children, b.pending[open.first:])

	// An empty node sits at the current offset.
	rng := Range{Start: b.offset, End: b.offset}
	if len(children) > 0 {
		rng = Range{
			Start: children[0].Range().Start,
			End:   children[len(children)-1].Range().End,
		}
	}

	b.pending = append(b.pending[:open.first], &Node{
		kind:     open.kind,
		rng:      rng,
		children: children,
	})
}

// Finish returns the completed tree. Every node must have been closed and
// exactly one root node must remain.
func (b *Builder) Finish() *Node {
	if len(b.parents) != 0 {
		panic("syntax: Finish with unclosed nodes")
	}

	if len(b.pending) != 1 {
		panic("syntax: Finish requires exactly one root element")
	}

	root, ok := b.pending[0].(*Node)
	if !ok {
		panic("syntax: root element is a token")
	}

	b.pending = nil
	b.offset = 0

	return root
}
