package syntax

// frame is one level of a TreeCursor's descent: the node at this level
// and which child index to try next.
type frame struct {
	node     *SyntaxNode
	childIdx int
}

// TreeCursor walks a Tree without the allocation cost of building
// SyntaxNode pointers into a separate path slice on every move, matching
// the core's rule that cursor traversal is the hot path for syntax
// highlighting and must stay allocation-light.
type TreeCursor struct {
	stack []frame
}

// Node returns the node the cursor currently sits on.
func (c *TreeCursor) Node() *SyntaxNode {
	return c.stack[len(c.stack)-1].node
}

// From and To return the current node's span.
func (c *TreeCursor) From() int { return c.Node().From }
func (c *TreeCursor) To() int   { return c.Node().To }

// FirstChild descends to the current node's first child, if any.
func (c *TreeCursor) FirstChild() bool {
	node := c.Node()
	if len(node.Children) == 0 {
		return false
	}
	c.stack[len(c.stack)-1].childIdx = 0
	c.stack = append(c.stack, frame{node: node.Children[0]})
	return true
}

// NextSibling moves to the next sibling of the current node, if any.
func (c *TreeCursor) NextSibling() bool {
	if len(c.stack) < 2 {
		return false
	}
	parent := c.stack[len(c.stack)-2]
	idx := parent.childIdx + 1
	if idx >= len(parent.node.Children) {
		return false
	}
	c.stack[len(c.stack)-2].childIdx = idx
	c.stack[len(c.stack)-1] = frame{node: parent.node.Children[idx]}
	return true
}

// Parent moves up to the current node's parent, if any.
func (c *TreeCursor) Parent() bool {
	if len(c.stack) < 2 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	return true
}

// Next performs a pre-order traversal step: into the first child if one
// exists, otherwise to the next sibling, otherwise up and over — the
// standard walk a syntax highlighter uses to visit every node once in
// document order.
func (c *TreeCursor) Next() bool {
	if c.FirstChild() {
		return true
	}
	for {
		if c.NextSibling() {
			return true
		}
		if !c.Parent() {
			return false
		}
	}
}

// LastChild descends to the current node's last child, if any.
func (c *TreeCursor) LastChild() bool {
	node := c.Node()
	if len(node.Children) == 0 {
		return false
	}
	idx := len(node.Children) - 1
	c.stack[len(c.stack)-1].childIdx = idx
	c.stack = append(c.stack, frame{node: node.Children[idx]})
	return true
}

// PrevSibling moves to the previous sibling of the current node, if any.
func (c *TreeCursor) PrevSibling() bool {
	if len(c.stack) < 2 {
		return false
	}
	parent := c.stack[len(c.stack)-2]
	idx := parent.childIdx - 1
	if idx < 0 {
		return false
	}
	c.stack[len(c.stack)-2].childIdx = idx
	c.stack[len(c.stack)-1] = frame{node: parent.node.Children[idx]}
	return true
}

// Prev performs the reverse-order traversal step, the mirror of Next:
// into the last descendant of the previous sibling if one exists,
// otherwise up to the parent — visiting every node exactly once, in the
// reverse of Next's order.
func (c *TreeCursor) Prev() bool {
	if c.PrevSibling() {
		for c.LastChild() {
		}
		return true
	}
	return c.Parent()
}

// ChildAfter moves to the first child (if any) that ends after pos,
// without descending further — a shallower step than EnterAt, for a
// caller (bracket matching, "next token") that wants the next boundary
// rather than the innermost node containing pos.
func (c *TreeCursor) ChildAfter(pos int) bool {
	node := c.Node()
	for i, child := range node.Children {
		if child.To > pos {
			c.stack[len(c.stack)-1].childIdx = i
			c.stack = append(c.stack, frame{node: child})
			return true
		}
	}
	return false
}

// ChildBefore moves to the last child (if any) that starts before pos.
func (c *TreeCursor) ChildBefore(pos int) bool {
	node := c.Node()
	for i := len(node.Children) - 1; i >= 0; i-- {
		if node.Children[i].From < pos {
			c.stack[len(c.stack)-1].childIdx = i
			c.stack = append(c.stack, frame{node: node.Children[i]})
			return true
		}
	}
	return false
}

// MoveTo resets the cursor to the root and descends to the innermost
// node containing pos, with the same side convention as Tree.Resolve.
func (c *TreeCursor) MoveTo(pos int, side int) bool {
	c.stack = c.stack[:1]
	for {
		node := c.Node()
		idx := -1
		for i, child := range node.Children {
			if pos > child.From && pos < child.To {
				idx = i
				break
			}
			if pos == child.From && side >= 0 {
				idx = i
				break
			}
			if pos == child.To && side < 0 {
				idx = i
				break
			}
		}
		if idx < 0 {
			return true
		}
		c.stack[len(c.stack)-1].childIdx = idx
		c.stack = append(c.stack, frame{node: node.Children[idx]})
	}
}

// MatchContext reports whether the cursor's chain of ancestors, from its
// immediate parent upward, has names exactly matching context in order
// (most specific first) — the check an indentation or bracket-closing
// rule uses to ask "is this token nested inside exactly these
// constructs."
func (c *TreeCursor) MatchContext(context []string) bool {
	if len(context) > len(c.stack)-1 {
		return false
	}
	for i, want := range context {
		idx := len(c.stack) - 2 - i
		if idx < 0 || c.stack[idx].node.Type.Name != want {
			return false
		}
	}
	return true
}

// EnterAt descends the cursor from its current node to the innermost
// descendant whose span contains pos, returning false if pos falls
// outside the current node's span entirely.
func (c *TreeCursor) EnterAt(pos int) bool {
	if pos < c.From() || pos > c.To() {
		return false
	}
	for {
		node := c.Node()
		idx := -1
		for i, child := range node.Children {
			if pos >= child.From && pos < child.To {
				idx = i
				break
			}
			if pos == child.To && i == len(node.Children)-1 {
				idx = i
			}
		}
		if idx < 0 {
			return true
		}
		c.stack[len(c.stack)-1].childIdx = idx
		c.stack = append(c.stack, frame{node: node.Children[idx]})
	}
}
