package rope

import "github.com/clipperhouse/uax29/words"

// WordBoundaries returns the byte offsets of word-segment boundaries in s,
// including 0 and len(s). It backs cursor motions like "move to next
// word" without needing a language-specific tokenizer.
func WordBoundaries(s string) []int {
	if s == "" {
		return []int{0}
	}
	segments := words.SegmentAllString(s)
	bounds := make([]int, 0, len(segments)+1)
	bounds = append(bounds, 0)
	pos := 0
	for _, seg := range segments {
		pos += len(seg)
		bounds = append(bounds, pos)
	}
	return bounds
}
