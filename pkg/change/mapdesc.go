package change

// transformAgainst rebases a (a concurrent edit against the same base
// document as b) so it can be applied after b: it returns a' such that
// applying b then a' reaches the same document as applying a then b's own
// rebase against a. This keeps only the "my half of the pair" output the
// teacher's pkg/ot/transform.go Transform(op1, op2) computes for its first
// return value; MapDesc is called twice (once per side) when both halves
// are needed, same as that file's callers do for a Jupiter-style OT loop.
func transformAgainst(a, b []op) []op {
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
		if curA != nil && curA.kind == opInsert {
			result = appendOp(result, *curA)
			curA = next(a, &i)
			continue
		}
		if curB != nil && curB.kind == opInsert {
			result = appendOp(result, op{kind: opRetain, len: curB.len})
			curB = next(b, &j)
			continue
		}
		if curA == nil || curB == nil {
			panic("change: incompatible rebase (length mismatch)")
		}
		n := curA.len
		if curB.len < n {
			n = curB.len
		}
		switch {
		case curA.kind == opRetain && curB.kind == opRetain:
			result = appendOp(result, op{kind: opRetain, len: n})
		case curA.kind == opRetain && curB.kind == opDelete:
			// b already removed this range; a has nothing left to do there.
		case curA.kind == opDelete && curB.kind == opRetain:
			result = appendOp(result, op{kind: opDelete, len: n})
		case curA.kind == opDelete && curB.kind == opDelete:
			// both sides deleted the same range; don't double-delete.
		}
		curA = shrink(*curA, n, a, &i, next)
		curB = shrink(*curB, n, b, &j, next)
	}
	return fuseOps(result)
}

// MapDesc rebases d, a concurrent edit against the same base document as
// other, so it can be composed after other: other.Compose(d.MapDesc(other))
// reaches the same result as d.Compose(other.MapDesc(d)).
func (d *ChangeDesc) MapDesc(other *ChangeDesc) *ChangeDesc {
	if d.length != other.length {
		panic("change: rebase requires both edits share a base document length")
	}
	return newChangeDesc(transformAgainst(d.ops, other.ops))
}

// MapDesc rebases cs the same way ChangeDesc.MapDesc does, preserving
// cs's own insertion text (which is unaffected by the other side's
// edit — only the positions it lands at change).
func (cs *ChangeSet) MapDesc(other *ChangeDesc) *ChangeSet {
	if cs.length != other.length {
		panic("change: rebase requires both edits share a base document length")
	}
	return newChangeSet(transformAgainst(cs.ops, other.ops))
}
