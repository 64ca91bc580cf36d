package state

import (
	"context"

	"github.com/texere-dev/edit/pkg/facet"
	"github.com/texere-dev/edit/pkg/syntax"
)

// SyntaxTree is the facet a caller reads to get the document's current
// parse tree — this package's analogue of the core's syntaxTree(state)
// helper. It has no default: an EditorState only has a syntax tree once
// NewSyntaxField's StateField and SyntaxExtension's Compute extension
// have both been wired into its Config.
var SyntaxTree = facet.Define[*syntax.Tree, *syntax.Tree]("syntaxTree", lastTree)

func lastTree(trees []*syntax.Tree) *syntax.Tree {
	if len(trees) == 0 {
		return nil
	}
	return trees[len(trees)-1]
}

// NewSyntaxField builds a StateField that keeps a syntax.Coordinator in
// sync with the document: its create runs parser against the starting
// document, and its apply advances a fresh Coordinator value covering
// every transaction's edited ranges — a new value each time the
// document actually changed, never a mutation of the previous one, so a
// dependent Compute extension can tell "the coordinator changed" apart
// from "it's the same value as last time" by ordinary comparison.
func NewSyntaxField(parser syntax.Parser) *StateField[*syntax.Coordinator] {
	return DefineField(
		"syntaxCoordinator",
		func(s *EditorState) *syntax.Coordinator {
			co := syntax.NewCoordinator(parser)
			co.Work(context.Background(), s.doc)
			return co
		},
		func(co *syntax.Coordinator, tr *Transaction) *syntax.Coordinator {
			if !tr.DocChanged() {
				return co
			}
			desc := tr.changes.Desc()
			ranges := desc.EditedRanges()
			edits := make([]syntax.Edit, len(ranges))
			for i, r := range ranges {
				edits[i] = syntax.Edit{From: r.From, To: r.To, InsertedLen: r.InsertedLen}
			}
			newDoc := tr.changes.Apply(tr.startState.doc)
			return co.Advance(context.Background(), newDoc, edits)
		},
	)
}

// SyntaxExtension returns the Extension that derives SyntaxTree from
// field's Coordinator, recomputing only when field's value actually
// changed — which NewSyntaxField's apply guarantees happens on every
// document-changing transaction and no others, so an unrelated
// selection move or field update doesn't force a fresh Tree read.
func SyntaxExtension(field *StateField[*syntax.Coordinator]) facet.Extension {
	deps := []facet.Dependency{facet.FieldDependency(field.key())}
	return SyntaxTree.Compute(deps, func(c *facet.Configuration) *syntax.Tree {
		s, ok := c.Host().(*EditorState)
		if !ok || s == nil {
			return nil
		}
		return field.Get(s).Tree()
	})
}
