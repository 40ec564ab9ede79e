// Package preview keeps a render-ready snapshot of the parsed document
// synchronized with buffer edits. The pipeline debounces parse work off
// the interactive path and publishes results only when they are still
// current, so a slow parse of an old revision can never overwrite a
// newer one.
package preview

import (
	"sync/atomic"

	"github.com/dshills/aster/internal/markdown"
)

// Snapshot is one published parse result. It is immutable after
// publication and safe to share across goroutines.
type Snapshot struct {
	Blocks         []markdown.Block
	Footnotes      []markdown.Block
	SourceRevision uint64
}

// Model holds the latest accepted snapshot. Readers always observe a
// complete snapshot; publication is a single pointer swap.
type Model struct {
	current atomic.Pointer[Snapshot]
}

// NewModel creates a model holding an empty snapshot at revision zero.
func NewModel() *Model {
	m := &Model{}
	m.current.Store(&Snapshot{})
	return m
}

// Current returns the latest accepted snapshot.
func (m *Model) Current() *Snapshot {
	return m.current.Load()
}

// SourceRevision returns the revision of the latest accepted snapshot.
func (m *Model) SourceRevision() uint64 {
	return m.current.Load().SourceRevision
}

// Publish applies the fencing rule: the snapshot is accepted iff its
// source revision is still >= the published one at apply time. It
// reports whether the snapshot was accepted.
func (m *Model) Publish(s *Snapshot) bool {
	for {
		cur := m.current.Load()
		if s.SourceRevision < cur.SourceRevision {
			return false
		}
		if m.current.CompareAndSwap(cur, s) {
			return true
		}
	}
}
