package change

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FromDiff builds a ChangeSet from an automatic text diff between oldText
// and newText, for callers that only have two whole-document strings (an
// external file-watcher reload, a collaborative merge) rather than an
// explicit list of replace specs. The diff is computed with
// diffmatchpatch, then collapsed to the same retain/delete/insert run
// shape every other ChangeSet uses.
func FromDiff(oldText, newText string) *ChangeSet {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	ops := make([]op, 0, len(diffs))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			ops = appendOp(ops, op{kind: opRetain, len: runeLen(d.Text)})
		case diffmatchpatch.DiffDelete:
			ops = appendOp(ops, op{kind: opDelete, len: runeLen(d.Text)})
		case diffmatchpatch.DiffInsert:
			ops = appendOp(ops, op{kind: opInsert, len: runeLen(d.Text), ins: d.Text})
		}
	}
	return newChangeSet(ops)
}

// Patch renders cs as a unified-diff-style textual patch against oldText,
// for diagnostics and undo-history inspection rather than machine
// consumption.
func Patch(cs *ChangeSet, oldText string) string {
	var b strings.Builder
	pos := 0
	runes := []rune(oldText)
	for _, o := range cs.ops {
		switch o.kind {
		case opRetain:
			pos += o.len
		case opDelete:
			b.WriteString("-")
			b.WriteString(string(runes[pos : pos+o.len]))
			b.WriteString("\n")
			pos += o.len
		case opInsert:
			b.WriteString("+")
			b.WriteString(o.ins)
			b.WriteString("\n")
		}
	}
	return b.String()
}
