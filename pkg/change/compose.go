package change

// composeOps merges two elementary op streams where a maps doc0->doc1 and
// b maps doc1->doc2, producing the doc0->doc2 stream. This is the
// classical operational-transform composition algorithm (grounded on the
// shape of the teacher's pkg/ot/transform.go merge loop, generalized from
// that file's Retain/Delete/Insert triple to this package's op stream so
// compose and rebase can share the same iteration helpers).
func composeOps(a, b []op) []op {
	var result []op
	i, j := 0, 0
	next := func(ops []op, idx *int) *op {
		if *idx >= len(ops) {
			return nil
		}
		o := ops[*idx]
		*idx++
		return &o
	}
	curA := next(a, &i)
	curB := next(b, &j)

	for curA != nil || curB != nil {
		if curA != nil && curA.kind == opDelete {
			result = appendOp(result, *curA)
			curA = next(a, &i)
			continue
		}
		if curB != nil && curB.kind == opInsert {
			result = appendOp(result, *curB)
			curB = next(b, &j)
			continue
		}
		if curA == nil || curB == nil {
			panic("change: incompatible composition (length mismatch)")
		}
		n := curA.len
		if curB.len < n {
			n = curB.len
		}
		switch {
		case curA.kind == opRetain && curB.kind == opRetain:
			result = appendOp(result, op{kind: opRetain, len: n})
		case curA.kind == opRetain && curB.kind == opDelete:
			result = appendOp(result, op{kind: opDelete, len: n})
		case curA.kind == opInsert && curB.kind == opRetain:
			head, _ := splitOp(*curA, n)
			result = appendOp(result, head)
		case curA.kind == opInsert && curB.kind == opDelete:
			// inserted by a, immediately deleted by b: cancels out.
		}
		curA = shrink(*curA, n, a, &i, next)
		curB = shrink(*curB, n, b, &j, next)
	}
	return fuseOps(result)
}

// shrink consumes n from the front of cur, returning the remainder if any
// is left, or the next op in ops otherwise.
func shrink(cur op, n int, ops []op, idx *int, next func([]op, *int) *op) *op {
	if cur.len > n {
		_, rem := splitOp(cur, n)
		return &rem
	}
	return next(ops, idx)
}

// Compose returns the ChangeDesc equivalent to applying d then other.
// other.Length() must equal d.NewLength().
func (d *ChangeDesc) Compose(other *ChangeDesc) *ChangeDesc {
	if d.newLength != other.length {
		panic("change: compose requires d.NewLength() == other.Length()")
	}
	return newChangeDesc(composeOps(d.ops, other.ops))
}

// Compose returns the ChangeSet equivalent to applying cs then other.
func (cs *ChangeSet) Compose(other *ChangeSet) *ChangeSet {
	if cs.newLength != other.length {
		panic("change: compose requires cs.NewLength() == other.Length()")
	}
	return newChangeSet(composeOps(cs.ops, other.ops))
}
