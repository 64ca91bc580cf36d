// Package change implements composable, invertible document edits:
// ChangeDesc describes the shape of an edit (lengths only); ChangeSet
// extends it with the actual inserted text. Both are immutable values
// built from a list of replace specs and combined via Compose (apply one
// after another) or MapDesc (rebase two concurrent edits against each
// other), following the same run-length model the core's rope/changeset
// code uses, generalized into a single elementary op stream so the two
// operations share one merge algorithm.
package change

import "github.com/texere-dev/edit/pkg/text"

type opKind uint8

const (
	opRetain opKind = iota
	opDelete
	opInsert
)

// op is one elementary step in an old-document traversal: retain copies
// forward, delete drops content, insert adds new content. A document edit
// is always representable as retain/delete/insert run lengths because no
// mapping needs more structure than that (teacher's pkg/rope/changeset.go
// Operation/OpType triple, generalized to avoid that file's duplicate,
// inconsistent definitions across changeset.go and transaction.go).
type op struct {
	kind opKind
	len  int    // retain/delete: code points consumed from the old doc; insert: code points produced
	ins  string // populated only for insert ops that carry real text (ChangeSet, not ChangeDesc)
}

// MapMode controls how MapPos resolves a position that falls inside a
// deleted range.
type MapMode uint8

const (
	// ModeSimple clamps to the start of the replacement if assoc is
	// negative, or the end if assoc is non-negative. The default.
	ModeSimple MapMode = iota
	// ModeTrackDel reports that the position was deleted, by returning
	// -(mapped)-1 instead of a plain offset.
	ModeTrackDel
	// ModeTrackBefore always resolves to the start of the replacement.
	ModeTrackBefore
	// ModeTrackAfter always resolves to the end of the replacement.
	ModeTrackAfter
)

// ChangeDesc describes the shape of a document edit — what ranges were
// touched and how long their replacements are — without carrying the
// actual inserted text. Two edits with the same shape but different
// inserted content share a ChangeDesc.
type ChangeDesc struct {
	ops       []op
	length    int // code points in the document this edit applies to
	newLength int // code points in the resulting document
}

// ChangeSet is a ChangeDesc that also carries the text inserted by each
// insert run, so it can be applied to a document or inverted.
type ChangeSet struct {
	ChangeDesc
}

// Desc strips the insertion text, returning the underlying shape. Selection
// and RangeSet map through ChangeDesc so they never need document text.
func (cs *ChangeSet) Desc() *ChangeDesc { return &cs.ChangeDesc }

// Length returns the number of code points in the document this edit
// applies to.
func (d *ChangeDesc) Length() int { return d.length }

// NewLength returns the number of code points in the resulting document.
func (d *ChangeDesc) NewLength() int { return d.newLength }

// Empty reports whether this edit changes nothing at all.
func (d *ChangeDesc) Empty() bool {
	for _, o := range d.ops {
		if o.kind != opRetain {
			return false
		}
	}
	return true
}

// EmptyDesc returns the no-op ChangeDesc over a document of the given
// length.
func EmptyDesc(length int) *ChangeDesc {
	if length == 0 {
		return &ChangeDesc{}
	}
	return &ChangeDesc{ops: []op{{kind: opRetain, len: length}}, length: length, newLength: length}
}

// EmptySet returns the no-op ChangeSet over a document of the given length.
func EmptySet(length int) *ChangeSet {
	return &ChangeSet{ChangeDesc: *EmptyDesc(length)}
}

func sumLens(ops []op, kinds ...opKind) int {
	want := func(k opKind) bool {
		for _, w := range kinds {
			if w == k {
				return true
			}
		}
		return false
	}
	total := 0
	for _, o := range ops {
		if want(o.kind) {
			total += o.len
		}
	}
	return total
}

func newChangeDesc(ops []op) *ChangeDesc {
	ops = fuseOps(ops)
	return &ChangeDesc{
		ops:       ops,
		length:    sumLens(ops, opRetain, opDelete),
		newLength: sumLens(ops, opRetain, opInsert),
	}
}

func newChangeSet(ops []op) *ChangeSet {
	return &ChangeSet{ChangeDesc: *newChangeDesc(ops)}
}

// appendOp appends o to ops, fusing it into the previous op when they are
// the same kind (concatenating insert text rather than leaving adjacent
// runs split).
func appendOp(ops []op, o op) []op {
	if o.len == 0 && o.kind != opInsert {
		return ops
	}
	if o.kind == opInsert && o.len == 0 && o.ins == "" {
		return ops
	}
	if n := len(ops); n > 0 && ops[n-1].kind == o.kind {
		ops[n-1].len += o.len
		ops[n-1].ins += o.ins
		return ops
	}
	return append(ops, o)
}

func fuseOps(ops []op) []op {
	out := make([]op, 0, len(ops))
	for _, o := range ops {
		out = appendOp(out, o)
	}
	return out
}

// splitOp splits o into a prefix of length k and the remaining suffix,
// slicing its insertion text by rune when present.
func splitOp(o op, k int) (op, op) {
	if o.kind == opInsert && o.ins != "" {
		rs := []rune(o.ins)
		return op{kind: opInsert, len: k, ins: string(rs[:k])}, op{kind: opInsert, len: o.len - k, ins: string(rs[k:])}
	}
	return op{kind: o.kind, len: k}, op{kind: o.kind, len: o.len - k}
}

// run is the coalesced view of one or more adjacent delete/insert ops
// between two retains, used by MapPos so a position sitting inside a
// single logical replacement gets one unambiguous answer regardless of
// how many elementary ops it was built from.
type run struct {
	changed      bool
	oldLen       int
	newLen       int
	newLineBreak string // unused placeholder kept out; ins text not needed for mapping
}

func coalesce(ops []op) []run {
	var runs []run
	var pending *run
	flush := func() {
		if pending != nil {
			runs = append(runs, *pending)
			pending = nil
		}
	}
	for _, o := range ops {
		switch o.kind {
		case opRetain:
			flush()
			runs = append(runs, run{changed: false, oldLen: o.len, newLen: o.len})
		case opDelete:
			if pending == nil {
				pending = &run{changed: true}
			}
			pending.oldLen += o.len
		case opInsert:
			if pending == nil {
				pending = &run{changed: true}
			}
			pending.newLen += o.len
		}
	}
	flush()
	return runs
}

// ensureDoc panics with a consistent message when a document's length
// doesn't match what an edit expects, mirroring the core's rule that
// invalid changes are rejected synchronously rather than silently
// truncated or padded.
func ensureDoc(t *text.Text, wantLen int) {
	if t.Length() != wantLen {
		panic("change: document length does not match change's expected length")
	}
}
