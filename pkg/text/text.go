// Package text provides the editor state core's document model: an
// immutable, line-indexed view over a pkg/rope tree.
//
// Text is code-point indexed, not grapheme indexed: a position is a count of
// Unicode code points from the start of the document. Surrogate pairs and
// combining marks are not collapsed here — a caller that needs
// grapheme-aware cursor motion consumes rope.GraphemeBoundaries itself, per
// the core's rule that grapheme boundaries are a higher layer's concern.
//
// # Thread Safety
//
// Text is immutable, like the Rope it wraps. Every method returns a new
// Text; the receiver is never mutated. Safe for concurrent reads.
package text

import (
	"strings"

	"github.com/texere-dev/edit/pkg/rope"
)

// Empty is the zero-length document.
var Empty = &Text{r: rope.Empty}

// Text is an immutable document: a sequence of lines joined by a line
// separator.
type Text struct {
	r   *rope.Rope
	sep rope.LineSeparator
}

// Of builds a Text from a list of lines (none of which may contain a line
// separator), joined with "\n". This mirrors the core's Text.of(lines)
// constructor.
func Of(lines []string) *Text {
	if len(lines) == 0 {
		return Empty
	}
	return &Text{r: rope.New(strings.Join(lines, "\n")), sep: rope.SeparatorLF}
}

// New builds a Text from raw content, normalizing any CRLF/CR line endings
// to LF and recording the separator it detected. The recorded separator
// is carried along to Texts derived from this one; no method returns it,
// and SliceString uses only its own lineSep argument.
func New(content string) *Text {
	sep := rope.DetectLineSeparator(content)
	return &Text{r: rope.New(rope.NormalizeLineEndings(content)), sep: sep}
}

// WithSeparator returns a copy of t that records sep as its line
// separator (see New for how the recorded separator is used).
func (t *Text) WithSeparator(sep rope.LineSeparator) *Text {
	if t == nil {
		t = Empty
	}
	return &Text{r: t.r, sep: sep}
}

func (t *Text) rope() *rope.Rope {
	if t == nil {
		return rope.Empty
	}
	return t.r
}

// Length returns the number of code points in the document.
func (t *Text) Length() int { return t.rope().Len() }

// Lines returns the number of lines in the document (always >= 1).
func (t *Text) Lines() int { return t.rope().LineCount() }

// String returns the full document content, LF-separated.
func (t *Text) String() string { return t.rope().String() }

// Line is the result of LineAt/Line: a single, 1-indexed line.
type Line struct {
	Number int    // 1-indexed
	From   int    // inclusive start offset
	To     int    // exclusive end offset (before the terminator)
	Text   string // line content, without its terminator
}

// LineAt returns the Line containing code-point offset pos.
func (t *Text) LineAt(pos int) Line {
	if pos < 0 || pos > t.Length() {
		panic("text: position out of range")
	}
	idx := t.rope().LineIndex(pos)
	return t.lineAtIndex(idx)
}

// Line returns the n-th (1-indexed) line of the document.
func (t *Text) Line(n int) Line {
	if n < 1 || n > t.Lines() {
		panic("text: line number out of range")
	}
	return t.lineAtIndex(n - 1)
}

func (t *Text) lineAtIndex(idx int) Line {
	r := t.rope()
	from := r.LineStart(idx)
	to := r.LineEnd(idx)
	return Line{Number: idx + 1, From: from, To: to, Text: r.Slice(from, to)}
}

// Slice returns the sub-document spanning code points [from, to).
func (t *Text) Slice(from, to int) *Text {
	return &Text{r: rope.New(t.rope().Slice(from, to)), sep: t.sepOrDefault()}
}

// SliceString returns the substring spanning [from, to) as a plain string,
// re-inserting lineSep in place of the internal LF if given.
func (t *Text) SliceString(from, to int, lineSep ...string) string {
	s := t.rope().Slice(from, to)
	if len(lineSep) > 0 && lineSep[0] != "\n" {
		return strings.ReplaceAll(s, "\n", lineSep[0])
	}
	return s
}

func (t *Text) sepOrDefault() rope.LineSeparator {
	if t == nil {
		return rope.SeparatorLF
	}
	return t.sep
}

// Replace returns a new Text with code points [from, to) replaced by
// insert's content.
func (t *Text) Replace(from, to int, insert *Text) *Text {
	ins := ""
	if insert != nil {
		ins = insert.String()
	}
	return &Text{r: t.rope().Replace(from, to, ins), sep: t.sepOrDefault()}
}

// Append returns a new Text equal to t followed by other.
func (t *Text) Append(other *Text) *Text {
	if other == nil {
		return t
	}
	return &Text{r: t.rope().Concat(other.rope()), sep: t.sepOrDefault()}
}

// Eq reports whether two documents have identical content.
func (t *Text) Eq(other *Text) bool {
	return t.rope().Equal(other.rope())
}

// Rope exposes the underlying rope.Rope for packages (change, selection,
// rangeset) that need direct tree access without re-parsing a string.
func (t *Text) Rope() *rope.Rope { return t.rope() }

// FromRope wraps an existing rope.Rope as a Text, as returned by
// ChangeSet.Apply.
func FromRope(r *rope.Rope) *Text {
	if r == nil {
		return Empty
	}
	return &Text{r: r, sep: rope.SeparatorLF}
}
