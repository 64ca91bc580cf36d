package rope

import "github.com/clipperhouse/uax29/graphemes"

// GraphemeBoundaries returns the byte offsets at which grapheme-cluster
// boundaries occur in s, including 0 and len(s). This is the primitive a
// higher layer (e.g. a "grapheme boundaries" facet, per the editor state
// core's note that such boundaries are a higher-layer concern rather than
// the document model's) uses to move a cursor by user-perceived character
// rather than by code point.
func GraphemeBoundaries(s string) []int {
	if s == "" {
		return []int{0}
	}
	segments := graphemes.SegmentAllString(s)
	bounds := make([]int, 0, len(segments)+1)
	bounds = append(bounds, 0)
	pos := 0
	for _, seg := range segments {
		pos += len(seg)
		bounds = append(bounds, pos)
	}
	return bounds
}

// Graphemes splits s into its grapheme clusters (user-perceived
// characters), which may each span multiple runes (e.g. combining marks,
// flag emoji).
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	return graphemes.SegmentAllString(s)
}
