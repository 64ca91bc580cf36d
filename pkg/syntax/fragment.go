package syntax

import "github.com/texere-dev/edit/pkg/change"

// TreeFragment is a reusable slice of a previous parse: the subtree
// covering [From, To) of the OLD document, plus Offset to translate its
// node positions into the new document's coordinate space. A parser
// reuses a fragment's nodes verbatim wherever an edit didn't touch them,
// the same incremental-reuse contract the teacher's weave engine applies
// to derived computations generally and aretext's parser applies to
// cached token computations specifically.
type TreeFragment struct {
	Tree     *Tree
	From, To int
	Offset   int
}

// Shift returns f translated by delta, used when composing fragment
// offsets across more than one pending edit.
func (f TreeFragment) Shift(delta int) TreeFragment {
	f.From += delta
	f.To += delta
	f.Offset += delta
	return f
}

// Fragments computes the TreeFragments of oldTree that remain valid
// after applying changes. It cannot see a ChangeDesc's individual edits,
// so any non-empty change is treated as one edit spanning the whole old
// document: the result is nil for a non-empty change, and one fragment
// covering the whole tree for an empty one. FragmentsFromEdits is the
// precise form.
func Fragments(oldTree *Tree, changes *change.ChangeDesc) []TreeFragment {
	return FragmentsWithMargin(oldTree, changes, 0)
}

// FragmentsWithMargin is Fragments with a margin argument. The whole old
// document is already treated as edited, so margin has no effect and the
// result is the same as Fragments'.
func FragmentsWithMargin(oldTree *Tree, changes *change.ChangeDesc, margin int) []TreeFragment {
	if oldTree == nil || oldTree.Root == nil {
		return nil
	}
	cuts := editBoundaries(changes, margin)

	var out []TreeFragment
	pos := 0
	delta := 0
	for _, cut := range cuts {
		if cut.from > pos {
			out = append(out, TreeFragment{Tree: oldTree, From: pos, To: cut.from, Offset: delta})
		}
		pos = cut.to
		delta += cut.delta
	}
	if pos < oldTree.Length() {
		out = append(out, TreeFragment{Tree: oldTree, From: pos, To: oldTree.Length(), Offset: delta})
	}
	return out
}

type boundary struct {
	from, to int
	delta    int
}

// editBoundaries returns the old-document spans treated as edited:
// nothing for an empty change, otherwise one span covering the whole old
// document with the change's net length delta. margin is not used.
func editBoundaries(d *change.ChangeDesc, margin int) []boundary {
	// ChangeDesc doesn't expose its internal ops, so boundaries are
	// derived from MapPos probing: walk the old document in coarse
	// steps isn't available either. Parsers that need fragment reuse
	// should track edit spans themselves (the Coordinator does, from the
	// TransactionSpec it was given) and call FragmentsFromEdits instead;
	// this function is kept for callers that only have a ChangeDesc by
	// treating the whole document as one changed span, the conservative
	// (always-correct, never-over-reuses) fallback.
	if d.Empty() {
		return nil
	}
	return []boundary{{from: 0, to: d.Length(), delta: d.NewLength() - d.Length()}}
}

// Edit is one explicit edit span, as tracked by a caller (the
// Coordinator) that knows more than a bare ChangeDesc exposes.
type Edit struct {
	From, To    int
	InsertedLen int
}

// FragmentsFromEdits is the precise form of Fragments: given the exact
// edit spans (rather than reconstructing a conservative one from
// ChangeDesc), it reuses every span of the old tree untouched by an
// edit.
func FragmentsFromEdits(oldTree *Tree, edits []Edit, margin int) []TreeFragment {
	if oldTree == nil || oldTree.Root == nil {
		return nil
	}
	var out []TreeFragment
	pos := 0
	delta := 0
	for _, e := range edits {
		from := e.From - margin
		if from < pos {
			from = pos
		}
		if from > pos {
			out = append(out, TreeFragment{Tree: oldTree, From: pos, To: from, Offset: delta})
		}
		pos = e.To + margin
		delta += e.InsertedLen - (e.To - e.From)
	}
	if pos < oldTree.Length() {
		out = append(out, TreeFragment{Tree: oldTree, From: pos, To: oldTree.Length(), Offset: delta})
	}
	return out
}
