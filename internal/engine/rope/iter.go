package rope

import (
	"iter"
	"strings"
)

// Chunks iterates the rope's text chunks in document order. Chunk
// boundaries always fall on UTF-8 character boundaries.
func (r *Rope) Chunks() iter.Seq[string] {
	return func(yield func(string) bool) {
		r.root.yieldChunks(yield)
	}
}

func (n *node) yieldChunks(yield func(string) bool) bool {
	if n.isLeaf() {
		for _, chunk := range n.chunks {
			if chunk.IsEmpty() {
				continue
			}
			if !yield(chunk.String()) {
				return false
			}
		}
		return true
	}
	for _, child := range n.children {
		if !child.yieldChunks(yield) {
			return false
		}
	}
	return true
}

// Lines iterates the rope's lines in order, without trailing newlines.
// An empty rope yields a single empty line.
func (r *Rope) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		var pending []byte
		for chunk := range r.Chunks() {
			for {
				nl := strings.IndexByte(chunk, '\n')
				if nl < 0 {
					pending = append(pending, chunk...)
					break
				}
				line := chunk[:nl]
				if len(pending) > 0 {
					line = string(append(pending, line...))
					pending = pending[:0]
				}
				if !yield(string(line)) {
					return
				}
				chunk = chunk[nl+1:]
			}
		}
		yield(string(pending))
	}
}
