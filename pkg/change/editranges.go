package change

// EditedRange is one replaced span of a ChangeDesc's old document: the
// [From, To) it overwrote and how many code points replaced it. Unlike
// editBoundaries (which only gives the single conservative whole-change
// span), EditedRanges walks every op run and reports each one, for a
// caller — pkg/syntax's Coordinator — that wants to reuse everything
// between edits rather than reparsing from the first touched position.
type EditedRange struct {
	From, To    int
	InsertedLen int
}

// EditedRanges reports every replaced span of d, in old-document
// coordinates, in document order.
func (d *ChangeDesc) EditedRanges() []EditedRange {
	var out []EditedRange
	pos := 0
	var pending *EditedRange
	flush := func() {
		if pending != nil {
			out = append(out, *pending)
			pending = nil
		}
	}
	for _, o := range d.ops {
		switch o.kind {
		case opRetain:
			flush()
			pos += o.len
		case opDelete:
			if pending == nil {
				pending = &EditedRange{From: pos, To: pos}
			}
			pos += o.len
			pending.To = pos
		case opInsert:
			if pending == nil {
				pending = &EditedRange{From: pos, To: pos}
			}
			pending.InsertedLen += o.len
		}
	}
	flush()
	return out
}
