package change

import (
	"strings"

	"github.com/texere-dev/edit/pkg/text"
)

// Apply returns the document that results from applying cs to doc. doc
// must have exactly cs.Length() code points.
func (cs *ChangeSet) Apply(doc *text.Text) *text.Text {
	ensureDoc(doc, cs.length)
	var b strings.Builder
	pos := 0
	for _, o := range cs.ops {
		switch o.kind {
		case opRetain:
			b.WriteString(doc.SliceString(pos, pos+o.len))
			pos += o.len
		case opDelete:
			pos += o.len
		case opInsert:
			b.WriteString(o.ins)
		}
	}
	return text.New(b.String())
}

// Invert returns the ChangeSet that undoes cs, given the document cs was
// built against (needed to recover the text of every deleted run, which
// ChangeSet itself doesn't retain).
func (cs *ChangeSet) Invert(oldDoc *text.Text) *ChangeSet {
	ensureDoc(oldDoc, cs.length)
	inverted := make([]op, 0, len(cs.ops))
	pos := 0
	for _, o := range cs.ops {
		switch o.kind {
		case opRetain:
			inverted = appendOp(inverted, op{kind: opRetain, len: o.len})
			pos += o.len
		case opDelete:
			inverted = appendOp(inverted, op{kind: opInsert, len: o.len, ins: oldDoc.SliceString(pos, pos+o.len)})
			pos += o.len
		case opInsert:
			inverted = appendOp(inverted, op{kind: opDelete, len: o.len})
		}
	}
	return newChangeSet(inverted)
}

// FromDesc reconstructs a ChangeSet from a ChangeDesc's shape plus the
// insertion text for each insert run, in traversal order. It's the
// inverse of Desc: len(inserts) must equal the number of insert runs
// coalesce(d.ops) produces.
func FromDesc(d *ChangeDesc, inserts []string) *ChangeSet {
	ops := make([]op, len(d.ops))
	copy(ops, d.ops)
	i := 0
	for idx, o := range ops {
		if o.kind == opInsert {
			if i < len(inserts) {
				ops[idx].ins = inserts[i]
			}
			i++
		}
	}
	return newChangeSet(ops)
}
