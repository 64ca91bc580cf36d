package rangeset

import "sort"

// Iterator receives the events Spans produces as it walks one or more
// RangeSets simultaneously.
type Iterator[T any] interface {
	// Span is called for every maximal subrange [from, to) of non-point
	// values that are simultaneously active, together with that set of
	// values and the number of them that opened strictly before the
	// traversal's own starting position (the "open-start" hint a
	// renderer uses to know a span continues a decoration that started
	// off-screen rather than beginning fresh).
	Span(from, to int, active []T, openStart int)
	// Point is called for every point range (From == To) touched by the
	// traversal, with index identifying its position in the RangeSet it
	// came from (for callers that need to look up sibling metadata).
	Point(from, to int, value T, active []T, openStart int, index int)
}

// Spans traverses sets simultaneously over [from, to), emitting Span
// events for maximal subranges of currently active non-point values and
// Point events for point ranges, in document order. Ranges outside
// [from, to) are ignored; ranges overlapping the boundary are clipped to
// it.
func Spans[T any](sets []*RangeSet[T], from, to int, it Iterator[T]) {
	type pointEvt struct {
		r     Range[T]
		index int
	}

	var spans []Range[T]
	var openedBefore []bool // parallel to spans: the range began before from
	var points []pointEvt

	for _, s := range sets {
		if s == nil {
			continue
		}
		for idx, r := range s.ranges {
			if r.point() {
				if r.From >= from && r.From < to {
					points = append(points, pointEvt{r: r, index: idx})
				}
				continue
			}
			rf, rt := r.From, r.To
			if rt <= from || rf >= to {
				continue
			}
			opened := rf < from
			if rf < from {
				rf = from
			}
			if rt > to {
				rt = to
			}
			spans = append(spans, Range[T]{From: rf, To: rt, Value: r.Value, StartSide: r.StartSide, EndSide: r.EndSide})
			openedBefore = append(openedBefore, opened)
		}
	}

	boundSet := map[int]bool{from: true, to: true}
	for _, r := range spans {
		boundSet[r.From] = true
		boundSet[r.To] = true
	}
	bounds := make([]int, 0, len(boundSet))
	for b := range boundSet {
		bounds = append(bounds, b)
	}
	sort.Ints(bounds)

	sort.SliceStable(points, func(i, j int) bool { return points[i].r.From < points[j].r.From })

	activeAt := func(pos int) []T {
		var out []T
		for _, r := range spans {
			if r.From <= pos && r.To > pos {
				out = append(out, r.Value)
			}
		}
		return out
	}
	openBefore := func(pos int) int {
		n := 0
		for _, r := range spans {
			if r.From < pos {
				n++
			}
		}
		return n
	}

	pi := 0
	emitPointsThrough := func(pos int) {
		for pi < len(points) && points[pi].r.From <= pos {
			p := points[pi]
			it.Point(p.r.From, p.r.To, p.r.Value, activeAt(p.r.From), openBefore(p.r.From), p.index)
			pi++
		}
	}

	for i := 0; i+1 < len(bounds); i++ {
		segFrom, segTo := bounds[i], bounds[i+1]
		if segFrom >= segTo {
			continue
		}
		emitPointsThrough(segFrom)

		var active []T
		openStart := 0
		for k, r := range spans {
			if r.From <= segFrom && r.To >= segTo {
				active = append(active, r.Value)
				if openedBefore[k] {
					openStart++
				}
			}
		}
		if len(active) > 0 {
			it.Span(segFrom, segTo, active, openStart)
		}
	}
	emitPointsThrough(to)
}
