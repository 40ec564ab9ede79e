package rope

import (
	"hash/fnv"
	"strings"
)

// Rope is an immutable text rope. All mutating operations return a new
// Rope sharing structure with the original, so retaining an old value
// is a constant-time snapshot.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() *Rope {
	return &Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) *Rope {
	if s == "" {
		return New()
	}

	chunks := splitIntoChunks(s)
	if len(chunks) <= MaxChunksPerLeaf {
		return &Rope{root: newLeafNodeWithChunks(chunks)}
	}

	leaves := make([]*node, 0, (len(chunks)+MaxChunksPerLeaf-1)/MaxChunksPerLeaf)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	return &Rope{root: buildNodeFromChildren(leaves)}
}

// Len returns the total length in bytes.
func (r *Rope) Len() int {
	return r.root.lenBytes()
}

// LenChars returns the total length in characters (Unicode code points).
func (r *Rope) LenChars() int {
	return r.root.lenChars()
}

// LineCount returns the number of lines. An empty rope has one line; a
// trailing newline starts another.
func (r *Rope) LineCount() int {
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope contains no text.
func (r *Rope) IsEmpty() bool {
	return r.root.lenBytes() == 0
}

// String materializes the full text.
func (r *Rope) String() string {
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice extracts text in the byte range [start, end), clamped to the
// rope bounds.
func (r *Rope) Slice(start, end ByteOffset) string {
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// SliceChars extracts text in the character range [start, end), clamped
// to the rope bounds.
func (r *Rope) SliceChars(start, end CharOffset) string {
	return r.Slice(r.CharToByte(start), r.CharToByte(end))
}

// CharToByte converts a character index to a byte offset. Out-of-range
// indexes clamp to the rope bounds.
func (r *Rope) CharToByte(charIdx CharOffset) ByteOffset {
	return r.root.charToByte(charIdx)
}

// ByteToChar converts a byte offset to a character index. Out-of-range
// offsets clamp; offsets inside a multi-byte character round down to
// the character that contains them.
func (r *Rope) ByteToChar(byteIdx ByteOffset) CharOffset {
	return r.root.byteToChar(byteIdx)
}

// Insert returns a new rope with text inserted at a byte offset.
// The offset is clamped to the rope bounds.
func (r *Rope) Insert(offset ByteOffset, text string) *Rope {
	if text == "" {
		return r
	}
	if offset < 0 {
		offset = 0
	}
	if offset > r.Len() {
		offset = r.Len()
	}

	left, right := r.root.split(offset)
	middle := FromString(text).root
	return &Rope{root: concatNodes(concatNodes(left, middle), right)}
}

// InsertChars returns a new rope with text inserted at a character
// index. The index is clamped to the rope bounds.
func (r *Rope) InsertChars(charIdx CharOffset, text string) *Rope {
	return r.Insert(r.CharToByte(charIdx), text)
}

// Delete returns a new rope with the byte range [start, end) removed.
// The range is clamped to the rope bounds.
func (r *Rope) Delete(start, end ByteOffset) *Rope {
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return r
	}

	left, rest := r.root.split(start)
	_, right := rest.split(end - start)
	return &Rope{root: concatNodes(left, right)}
}

// DeleteChars returns a new rope with the character range [start, end)
// removed.
func (r *Rope) DeleteChars(start, end CharOffset) *Rope {
	return r.Delete(r.CharToByte(start), r.CharToByte(end))
}

// Split splits the rope at a byte offset into two ropes.
func (r *Rope) Split(offset ByteOffset) (*Rope, *Rope) {
	left, right := r.root.split(offset)
	return &Rope{root: left}, &Rope{root: right}
}

// Concat concatenates two ropes.
func (r *Rope) Concat(other *Rope) *Rope {
	if other == nil || other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	return &Rope{root: concatNodes(r.root, other.root)}
}

// Hash returns a 64-bit FNV-1a hash of the text, computed chunk by
// chunk without materializing the full string.
func (r *Rope) Hash() uint64 {
	h := fnv.New64a()
	for chunk := range r.Chunks() {
		h.Write([]byte(chunk))
	}
	return h.Sum64()
}

// Equals reports whether two ropes contain identical text.
func (r *Rope) Equals(other *Rope) bool {
	if other == nil {
		return false
	}
	if r.Len() != other.Len() || r.LenChars() != other.LenChars() {
		return false
	}
	return r.String() == other.String()
}
