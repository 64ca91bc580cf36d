package syntax

// SyntaxNode is one node in a parsed syntax tree: a type, a span of the
// document it covers, and its children in document order.
type SyntaxNode struct {
	Type     *NodeType
	From, To int
	Children []*SyntaxNode
}

// Leaf builds a childless SyntaxNode.
func Leaf(t *NodeType, from, to int) *SyntaxNode {
	return &SyntaxNode{Type: t, From: from, To: to}
}

// Inner builds a SyntaxNode spanning its children, which must already be
// in document order and non-overlapping.
func Inner(t *NodeType, children []*SyntaxNode) *SyntaxNode {
	n := &SyntaxNode{Type: t, Children: children}
	if len(children) > 0 {
		n.From = children[0].From
		n.To = children[len(children)-1].To
	}
	return n
}

// IsTop, IsError, IsAnonymous and InGroup forward to n's NodeType, the
// form callers walking a tree with a TreeCursor actually use — they have
// a SyntaxNode in hand, not its NodeType.
func (n *SyntaxNode) IsTop() bool              { return n.Type.IsTop() }
func (n *SyntaxNode) IsError() bool            { return n.Type.IsError() }
func (n *SyntaxNode) IsAnonymous() bool        { return n.Type.IsAnonymous() }
func (n *SyntaxNode) InGroup(name string) bool { return n.Type.InGroup(name) }

// TreeBuffer is a flat, depth-first encoding of a subtree: one
// BufferEntry per node, with every node's entry preceded by all of its
// descendants' entries (children before parent) — the shape a
// bytecode-driven grammar naturally produces a token stream in, as
// opposed to building SyntaxNode pointers directly while parsing.
// Build assembles it into the same SyntaxNode shape Inner/Leaf would.
type TreeBuffer struct {
	Set     *NodeSet
	Entries []BufferEntry
}

// BufferEntry is one TreeBuffer entry: the node's type, its span, and
// how many of the entries immediately before it (in the flat stream) are
// its direct children.
type BufferEntry struct {
	Type       int
	From, To   int
	ChildCount int
}

// Build assembles buf into a SyntaxNode tree, reading entries
// back-to-front since each entry's ChildCount only makes sense once
// every one of its children has already been consumed off the end of
// the stream.
func (buf *TreeBuffer) Build() *SyntaxNode {
	if len(buf.Entries) == 0 {
		return nil
	}
	pos := len(buf.Entries)
	var build func() *SyntaxNode
	build = func() *SyntaxNode {
		pos--
		e := buf.Entries[pos]
		t := buf.Set.Type(e.Type)
		if e.ChildCount == 0 {
			return Leaf(t, e.From, e.To)
		}
		children := make([]*SyntaxNode, e.ChildCount)
		for i := e.ChildCount - 1; i >= 0; i-- {
			children[i] = build()
		}
		return &SyntaxNode{Type: t, From: e.From, To: e.To, Children: children}
	}
	return build()
}

// BuildTree assembles buf into a full Tree over buf.Set.
func (buf *TreeBuffer) BuildTree() *Tree {
	return &Tree{Root: buf.Build(), Set: buf.Set}
}

// Tree is an immutable, parsed syntax tree over some span of a document.
type Tree struct {
	Root *SyntaxNode
	Set  *NodeSet
}

// Cursor returns a TreeCursor positioned at the root.
func (t *Tree) Cursor() *TreeCursor {
	return &TreeCursor{stack: []frame{{node: t.Root}}}
}

// Resolve returns the innermost SyntaxNode containing pos, descending
// from the root. side < 0 prefers the node ending at pos; side > 0
// prefers the node starting at pos; side == 0 requires pos to be
// strictly inside (not just touching) the returned node's span.
func (t *Tree) Resolve(pos int, side int) *SyntaxNode {
	node := t.Root
	if node == nil {
		return nil
	}
	for {
		child := childAt(node, pos, side)
		if child == nil {
			return node
		}
		node = child
	}
}

func childAt(node *SyntaxNode, pos int, side int) *SyntaxNode {
	for _, c := range node.Children {
		if pos > c.From && pos < c.To {
			return c
		}
		if pos == c.From && side >= 0 {
			return c
		}
		if pos == c.To && side < 0 {
			return c
		}
	}
	return nil
}

// Length returns the span of the document this tree covers.
func (t *Tree) Length() int {
	if t.Root == nil {
		return 0
	}
	return t.Root.To - t.Root.From
}
