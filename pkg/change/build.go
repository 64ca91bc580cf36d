package change

import "sort"

// Spec is one replace instruction: code points [From, To) of the document
// are replaced by Insert. To may equal From for a pure insertion, and
// Insert may be empty for a pure deletion.
type Spec struct {
	From, To int
	Insert   string
}

// Of builds a ChangeSet from a set of replace specs against a document of
// docLength code points.
//
// When sequential is false (the common case), every spec's From/To refers
// to the *original* document, the specs must be sorted by From, and their
// ranges must not overlap — this is how a single keystroke that touches
// several selection ranges at once is described. When sequential is true,
// each spec's From/To instead refers to the document as already modified
// by the specs before it in the list, so the same set of edits can be
// built up incrementally.
func Of(specs []Spec, docLength int, sequential bool) (*ChangeSet, error) {
	if sequential {
		return ofSequential(specs, docLength)
	}
	return ofSimultaneous(specs, docLength)
}

func ofSimultaneous(specs []Spec, docLength int) (*ChangeSet, error) {
	sorted := make([]Spec, len(specs))
	copy(sorted, specs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	ops := make([]op, 0, len(sorted)*3)
	cursor := 0
	for _, s := range sorted {
		if s.From < cursor || s.To < s.From || s.To > docLength {
			return nil, invalidSpecErr(s, docLength)
		}
		if gap := s.From - cursor; gap > 0 {
			ops = appendOp(ops, op{kind: opRetain, len: gap})
		}
		if delLen := s.To - s.From; delLen > 0 {
			ops = appendOp(ops, op{kind: opDelete, len: delLen})
		}
		if s.Insert != "" {
			ops = appendOp(ops, op{kind: opInsert, len: runeLen(s.Insert), ins: s.Insert})
		}
		cursor = s.To
	}
	if tail := docLength - cursor; tail > 0 {
		ops = appendOp(ops, op{kind: opRetain, len: tail})
	}
	return newChangeSet(ops), nil
}

func ofSequential(specs []Spec, docLength int) (*ChangeSet, error) {
	acc := EmptySet(docLength)
	for _, s := range specs {
		next, err := ofSimultaneous([]Spec{s}, acc.NewLength())
		if err != nil {
			return nil, err
		}
		acc = acc.Compose(next)
	}
	return acc, nil
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

type specRangeError struct {
	spec      Spec
	docLength int
}

func (e *specRangeError) Error() string {
	return "change: spec out of range or overlapping another spec"
}

func invalidSpecErr(s Spec, docLength int) error {
	return &specRangeError{spec: s, docLength: docLength}
}
