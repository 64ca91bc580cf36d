package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfAndString(t *testing.T) {
	doc := Of([]string{"one", "two", "three"})
	assert.Equal(t, "one\ntwo\nthree", doc.String())
	assert.Equal(t, 3, doc.Lines())
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "a\nb\nc", "a\nb\n"} {
		doc := Of(splitLines(s))
		assert.Equal(t, s, doc.String())
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	out := []string{""}
	line := 0
	for _, ch := range s {
		if ch == '\n' {
			out = append(out, "")
			line++
			continue
		}
		out[line] += string(ch)
	}
	return out
}

func TestLineAt(t *testing.T) {
	doc := Of([]string{"alpha", "beta", "gamma"})
	l := doc.LineAt(7) // inside "beta"
	assert.Equal(t, 2, l.Number)
	assert.Equal(t, "beta", l.Text)
}

func TestSliceReplaceIdentity(t *testing.T) {
	doc := New("the quick brown fox")
	slice := doc.Slice(4, 9)
	assert.Equal(t, "quick", slice.String())
	got := doc.Replace(4, 9, slice)
	assert.Equal(t, doc.String(), got.String())
}

func TestNewNormalizesSeparators(t *testing.T) {
	doc := New("a\r\nb\rc")
	assert.Equal(t, "a\nb\nc", doc.String())
}

func TestLineOutOfRangePanics(t *testing.T) {
	doc := Of([]string{"a"})
	require.Panics(t, func() { doc.Line(2) })
}
