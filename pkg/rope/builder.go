package rope

import "strings"

// Builder accumulates text and produces a single, already-balanced Rope in
// one Build call, avoiding the O(log n) cost of repeated Insert/Concat
// calls when the caller already knows it's appending sequentially (e.g.
// reading a file in chunks).
type Builder struct {
	buf strings.Builder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Append adds text to the end of the builder's buffer.
func (b *Builder) Append(text string) *Builder {
	b.buf.WriteString(text)
	return b
}

// AppendLine appends text followed by a line feed.
func (b *Builder) AppendLine(line string) *Builder {
	b.buf.WriteString(line)
	b.buf.WriteByte('\n')
	return b
}

// Build finalizes the builder into a Rope, splitting into balanced leaves.
func (b *Builder) Build() *Rope {
	text := b.buf.String()
	if text == "" {
		return Empty
	}
	return wrap(leafOrSplit(text))
}

// Reset empties the builder so it can be reused.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}

// Len returns the number of bytes written to the builder so far.
func (b *Builder) Len() int { return b.buf.Len() }
