package selection

import (
	"sort"

	"github.com/texere-dev/edit/pkg/change"
)

// Selection is an ordered, non-empty set of Ranges plus the index of the
// main range (the one that responds to single-cursor commands).
type Selection struct {
	ranges []Range
	main   int
}

// Single builds a Selection with a single range.
func Single(r Range) *Selection {
	return &Selection{ranges: []Range{r}, main: 0}
}

// New builds a normalized Selection from one or more ranges and a main
// index into the ORIGINAL (pre-normalization) list. If main's range gets
// merged away, the merged range that contains it becomes main.
func New(ranges []Range, main int) *Selection {
	if len(ranges) == 0 {
		ranges = []Range{Cursor(0)}
		main = 0
	}
	if main < 0 || main >= len(ranges) {
		main = 0
	}
	return normalize(ranges, main)
}

// normalize sorts ranges by From and merges any that overlap or sit
// directly adjacent, carrying the main index through the merge so it
// keeps pointing at the range that used to be (or now contains) it.
func normalize(ranges []Range, main int) *Selection {
	type tagged struct {
		r         Range
		wasMain   bool
		origIndex int
	}
	tagged0 := make([]tagged, len(ranges))
	for i, r := range ranges {
		tagged0[i] = tagged{r: r, wasMain: i == main, origIndex: i}
	}
	sort.SliceStable(tagged0, func(i, j int) bool {
		if tagged0[i].r.From() != tagged0[j].r.From() {
			return tagged0[i].r.From() < tagged0[j].r.From()
		}
		return tagged0[i].r.To() < tagged0[j].r.To()
	})

	out := make([]Range, 0, len(tagged0))
	mainFlags := make([]bool, 0, len(tagged0))
	for _, t := range tagged0 {
		if n := len(out); n > 0 && out[n-1].touches(t.r) {
			out[n-1] = out[n-1].merge(t.r)
			if t.wasMain {
				mainFlags[n-1] = true
			}
			continue
		}
		out = append(out, t.r)
		mainFlags = append(mainFlags, t.wasMain)
	}

	newMain := 0
	for i, was := range mainFlags {
		if was {
			newMain = i
			break
		}
	}
	return &Selection{ranges: out, main: newMain}
}

// Ranges returns the selection's ranges in document order.
func (s *Selection) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Main returns the main range.
func (s *Selection) Main() Range { return s.ranges[s.main] }

// MainIndex returns the index of the main range.
func (s *Selection) MainIndex() int { return s.main }

// Len returns the number of ranges.
func (s *Selection) Len() int { return len(s.ranges) }

// Range returns the i-th range.
func (s *Selection) Range(i int) Range { return s.ranges[i] }

// AsSingle collapses the selection to just its main range.
func (s *Selection) AsSingle() *Selection {
	return &Selection{ranges: []Range{s.Main()}, main: 0}
}

// AddRange returns a selection with r added, becoming main if makeMain.
func (s *Selection) AddRange(r Range, makeMain bool) *Selection {
	ranges := append(append([]Range{}, s.ranges...), r)
	main := s.main
	if makeMain {
		main = len(ranges) - 1
	}
	return New(ranges, main)
}

// ReplaceRange returns a selection with the i-th range replaced by r.
func (s *Selection) ReplaceRange(i int, r Range) *Selection {
	ranges := append([]Range{}, s.ranges...)
	ranges[i] = r
	return New(ranges, s.main)
}

// Map returns the selection that results from applying d to the document
// this selection was defined against: every range is mapped independently
// and the result is renormalized, since an edit can cause ranges that
// used to be distinct to collide.
func (s *Selection) Map(d *change.ChangeDesc) *Selection {
	mapped := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		mapped[i] = r.Map(d)
	}
	return New(mapped, s.main)
}

// EnforceSingle collapses sel down to just its main range when
// allowMultiple is false and sel holds more than one range. Update calls
// this right before committing a transaction, so a command that produces
// several ranges (e.g. "select next occurrence") only sticks when the
// editor's configuration actually allows multiple selections.
func EnforceSingle(sel *Selection, allowMultiple bool) *Selection {
	if allowMultiple || sel.Len() <= 1 {
		return sel
	}
	return sel.AsSingle()
}

// Eq reports whether two selections have identical ranges and main index.
func (s *Selection) Eq(other *Selection) bool {
	if other == nil || len(s.ranges) != len(other.ranges) || s.main != other.main {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}
