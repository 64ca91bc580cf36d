package rope

import "strings"

// LineSeparator identifies which line terminator a document uses.
type LineSeparator int

const (
	// SeparatorAny means any of LF, CRLF, or CR is recognized on read
	// (the default when no lineSeparator facet is configured).
	SeparatorAny LineSeparator = iota
	SeparatorLF
	SeparatorCRLF
	SeparatorCR
)

func (s LineSeparator) String() string {
	switch s {
	case SeparatorLF:
		return "\n"
	case SeparatorCRLF:
		return "\r\n"
	case SeparatorCR:
		return "\r"
	default:
		return "\n"
	}
}

// NormalizeLineEndings rewrites any CRLF or lone CR in s to LF, which is
// the only separator the rope tree itself understands. Call this once when
// text first enters the document model (per the core's rule that "if a
// lineSeparator facet is configured, only the exact separator is
// recognized; otherwise any of LF/CRLF/CR").
func NormalizeLineEndings(s string) string {
	if !strings.ContainsAny(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// DetectLineSeparator reports which separator appears first in s, or
// SeparatorLF if none is present. Used when a document is loaded without an
// explicit lineSeparator facet, so a later round-trip to disk can preserve
// the file's existing convention.
func DetectLineSeparator(s string) LineSeparator {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return SeparatorCRLF
			}
			return SeparatorCR
		case '\n':
			return SeparatorLF
		}
	}
	return SeparatorLF
}
