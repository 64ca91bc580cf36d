// Package rangeset implements RangeSet[T]: a persistent, ordered
// collection of (from, to, value) intervals over document positions, used
// to attach decorations, diagnostics, or folding metadata to ranges of
// text that need to survive edits via the same ChangeDesc mapping the
// core's Selection uses.
//
// There is no rangeset-shaped file in the teacher repo to ground this on
// directly; it's grounded on the teacher's general builder-pattern
// convention (pkg/rope/builder.go, builder_pattern.go: an accumulate-then-
// Build() struct rather than exposing a mutable collection directly) and
// on pkg/rope/selection.go's sorted-by-From convention, generalized from
// Range to an arbitrary value type with Go generics.
package rangeset

import (
	"sort"

	"github.com/texere-dev/edit/pkg/change"
)

// Range is one interval with its attached value. Point ranges (From ==
// To) are allowed and used for markers like breakpoints or bookmarks,
// distinct from span ranges like syntax highlighting or folds.
//
// StartSide and EndSide bias how the range's endpoints behave at a tie:
// when two ranges start at the same position, the one with the lower
// StartSide sorts first (see sortRanges); when Map resolves an
// endpoint sitting exactly at an edit boundary, a negative side keeps it
// with the text before the edit and a positive side with the text
// after, the same way a Selection.Range's anchor/head choose an assoc.
// MapMode selects which change.MapMode Map uses for this range's own
// endpoints. With change.ModeTrackDel, a range whose endpoints both land
// strictly inside deleted text is dropped, including a point range that
// the other modes would keep; a non-point range whose endpoints collapse
// onto each other is dropped in every mode.
type Range[T any] struct {
	From, To           int
	Value              T
	StartSide, EndSide int
	MapMode            change.MapMode
}

func (r Range[T]) point() bool { return r.From == r.To }

func assocSide(side, deflt int) int {
	switch {
	case side < 0:
		return -1
	case side > 0:
		return 1
	default:
		return deflt
	}
}

// RangeSet is an immutable, ordered set of ranges. The zero value is not
// useful; use Empty[T]() or a Builder.
type RangeSet[T any] struct {
	ranges []Range[T]
}

// Empty returns the empty RangeSet of T.
func Empty[T any]() *RangeSet[T] { return &RangeSet[T]{} }

// Len returns the number of ranges.
func (s *RangeSet[T]) Len() int { return len(s.ranges) }

// All returns the ranges in sorted order (by From, then by insertion
// order among equal-From, non-point ranges — see Builder for the
// tie-break rule this preserves).
func (s *RangeSet[T]) All() []Range[T] {
	out := make([]Range[T], len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Between calls fn for every range overlapping [from, to), in order,
// stopping early if fn returns false.
func (s *RangeSet[T]) Between(from, to int, fn func(Range[T]) bool) {
	for _, r := range s.ranges {
		if r.From >= to {
			break
		}
		if r.To <= from && !(r.point() && r.From == from) {
			continue
		}
		if !fn(r) {
			return
		}
	}
}

// Map returns the RangeSet that results from applying d to the document
// these ranges were defined against. A range whose endpoints collapse
// into each other after a deletion that fully covers it is dropped,
// matching the core's rule that decorations don't survive the deletion of
// the text they decorated.
func (s *RangeSet[T]) Map(d *change.ChangeDesc) *RangeSet[T] {
	out := make([]Range[T], 0, len(s.ranges))
	for _, r := range s.ranges {
		from := d.MapPos(r.From, assocSide(r.StartSide, -1), r.MapMode)
		to := d.MapPos(r.To, assocSide(r.EndSide, 1), r.MapMode)
		if from < 0 && to < 0 {
			continue
		}
		if from < 0 {
			from = -(from) - 1
		}
		if to < 0 {
			to = -(to) - 1
		}
		if !r.point() && from >= to {
			continue
		}
		out = append(out, Range[T]{From: from, To: to, Value: r.Value, StartSide: r.StartSide, EndSide: r.EndSide, MapMode: r.MapMode})
	}
	sortRanges(out)
	return &RangeSet[T]{ranges: out}
}

// Eq reports whether s and other contain the same ranges, in the same
// order, with eq(a.Value, b.Value) true for every pair — the equality
// a caller diffing two range sets (e.g. before/after a transaction)
// uses instead of comparing the sets' structure directly, since Value
// may not be comparable with ==.
func (s *RangeSet[T]) Eq(other *RangeSet[T], eq func(a, b T) bool) bool {
	if s == other {
		return true
	}
	if len(s.ranges) != len(other.ranges) {
		return false
	}
	for i, r := range s.ranges {
		o := other.ranges[i]
		if r.From != o.From || r.To != o.To || r.StartSide != o.StartSide || r.EndSide != o.EndSide {
			return false
		}
		if !eq(r.Value, o.Value) {
			return false
		}
	}
	return true
}

// EqSets is the lifted form of Eq: it reports whether a and b hold the
// same number of range sets, pairwise Eq to each other, in order — used
// to diff two snapshots of several range sets (e.g. every decoration
// facet's output) at once.
func EqSets[T any](a, b []*RangeSet[T], eq func(x, y T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i], eq) {
			return false
		}
	}
	return true
}

// Iter is a stateful forward cursor over a RangeSet's ranges, for
// callers that want to walk them without structuring the walk as a
// Between callback.
type Iter[T any] struct {
	ranges []Range[T]
	pos    int
}

// Iter returns an Iter positioned before the first range.
func (s *RangeSet[T]) Iter() *Iter[T] { return &Iter[T]{ranges: s.ranges} }

// Next advances the cursor to the next range, reporting false once
// every range has been visited.
func (it *Iter[T]) Next() bool {
	if it.pos >= len(it.ranges) {
		return false
	}
	it.pos++
	return true
}

// Value returns the range the cursor currently sits on. Valid only
// after a call to Next that returned true.
func (it *Iter[T]) Value() Range[T] { return it.ranges[it.pos-1] }

// Update returns a RangeSet with add inserted and any range for which
// filter returns false removed. filter may be nil to keep everything.
func (s *RangeSet[T]) Update(add []Range[T], filter func(Range[T]) bool) *RangeSet[T] {
	kept := make([]Range[T], 0, len(s.ranges)+len(add))
	for _, r := range s.ranges {
		if filter == nil || filter(r) {
			kept = append(kept, r)
		}
	}
	kept = append(kept, add...)
	sortRanges(kept)
	return &RangeSet[T]{ranges: kept}
}

// sortRanges orders by From, breaking ties by StartSide (lower sorts
// first) and otherwise preserving insertion order — the tie-break the
// core's RangeSet ordering documents for ranges that share a starting
// position, most commonly two point ranges or a point range and a span
// range opening at the same spot.
func sortRanges[T any](ranges []Range[T]) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].From != ranges[j].From {
			return ranges[i].From < ranges[j].From
		}
		return ranges[i].StartSide < ranges[j].StartSide
	})
}

// Join merges sets into one, preserving relative order among equal
// starting positions by the order the sets were given in.
func Join[T any](sets ...*RangeSet[T]) *RangeSet[T] {
	var all []Range[T]
	for _, s := range sets {
		if s != nil {
			all = append(all, s.ranges...)
		}
	}
	sortRanges(all)
	return &RangeSet[T]{ranges: all}
}
