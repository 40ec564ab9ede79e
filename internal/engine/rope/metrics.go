package rope

import "unicode/utf8"

// ByteOffset is an absolute byte position in the rope.
type ByteOffset = int

// CharOffset is an absolute character (rune) position in the rope.
type CharOffset = int

// TextSummary holds aggregated metrics for a span of text.
// It is the summary type for the rope tree, combined with Add when
// subtrees are concatenated.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the rune count.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// ASCII is true when every byte is < 128, enabling fast index math.
	ASCII bool
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		ASCII: s.ASCII && other.ASCII,
	}
}

// Zero returns the identity summary.
func (TextSummary) Zero() TextSummary {
	return TextSummary{ASCII: true}
}

// IsZero reports whether this is the identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{ASCII: true}
	}

	sum := TextSummary{Bytes: len(s), ASCII: true}
	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			if b == '\n' {
				sum.Lines++
			}
			sum.Chars++
			i++
			continue
		}
		sum.ASCII = false
		_, size := utf8.DecodeRuneInString(s[i:])
		sum.Chars++
		i += size
	}
	return sum
}

// charToByteInString converts a character index within s to a byte
// offset. charIdx must be <= the rune count of s; indexes past the end
// map to len(s).
func charToByteInString(s string, charIdx CharOffset) ByteOffset {
	if charIdx <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == charIdx {
			return i
		}
		n++
	}
	return len(s)
}

// byteToCharInString converts a byte offset within s to a character
// index. Offsets inside a multi-byte rune round down to the rune start.
func byteToCharInString(s string, byteIdx ByteOffset) CharOffset {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx > len(s) {
		byteIdx = len(s)
	}
	return utf8.RuneCountInString(s[:byteIdx])
}
