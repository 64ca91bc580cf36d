package syntax

import (
	"context"
	"unicode"

	"github.com/texere-dev/edit/internal/budget"
	"github.com/texere-dev/edit/pkg/text"
)

// DocumentType and WordType are the two node kinds WordParser produces:
// a single Document root wrapping a flat run of Word leaves, split on
// Unicode whitespace. It is a minimal grammar for callers that have no
// real language grammar to pass to NewCoordinator — just enough
// structure to exercise Tree/TreeCursor/TreeFragment end to end without
// depending on a generated parser table.
var (
	DocumentType = NewNodeType(0, "Document")
	WordType     = NewNodeType(1, "Word")
	WordNodeSet  = NewNodeSet([]*NodeType{DocumentType, WordType})
)

// WordParser implements Parser by splitting the document into
// whitespace-separated Word leaves under one Document root. It ignores
// fragments and always finishes in one step — word-splitting the whole
// document is cheap enough that cooperative budgeting never actually
// matters for it, but Work still routes through the same Budget-aware
// path every other Parser does.
type WordParser struct{}

func (WordParser) Parse(ctx context.Context, doc *text.Text, _ []TreeFragment, _ *budget.Budget) (*Tree, bool) {
	s := doc.String()
	var children []*SyntaxNode
	start := -1
	pos := 0 // code-point offset of ch; range yields byte offsets
	for _, ch := range s {
		if unicode.IsSpace(ch) {
			if start >= 0 {
				children = append(children, Leaf(WordType, start, pos))
				start = -1
			}
			pos++
			continue
		}
		if start < 0 {
			start = pos
		}
		pos++
	}
	if start >= 0 {
		children = append(children, Leaf(WordType, start, pos))
	}
	root := Inner(DocumentType, children)
	root.To = pos
	return &Tree{Root: root, Set: WordNodeSet}, true
}
