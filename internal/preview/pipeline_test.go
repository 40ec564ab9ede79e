package preview

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/aster/internal/engine/rope"
	"github.com/dshills/aster/internal/markdown"
)

func TestModelPublishFencing(t *testing.T) {
	m := NewModel()

	require.True(t, m.Publish(&Snapshot{SourceRevision: 7}))
	assert.Equal(t, uint64(7), m.SourceRevision())

	// An older result arriving later must be discarded.
	assert.False(t, m.Publish(&Snapshot{SourceRevision: 5}))
	assert.Equal(t, uint64(7), m.SourceRevision())

	// Equal revision re-publish is accepted.
	assert.True(t, m.Publish(&Snapshot{SourceRevision: 7}))
}

func TestModelStartsEmpty(t *testing.T) {
	m := NewModel()

	snap := m.Current()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Blocks)
	assert.Zero(t, snap.SourceRevision)
}

func TestPipelinePublishes(t *testing.T) {
	p := NewPipeline(NewModel(), WithDebounce(10*time.Millisecond))
	defer p.Close()

	p.Schedule(rope.FromString("# Hello"), 1)

	require.Eventually(t, func() bool {
		return p.Model().SourceRevision() == 1
	}, time.Second, 5*time.Millisecond)

	snap := p.Model().Current()
	require.Len(t, snap.Blocks, 1)
	assert.Equal(t, markdown.KindHeading, snap.Blocks[0].Kind)
}

func TestPipelineCoalescesBursts(t *testing.T) {
	var parses atomic.Int32
	counting := func(s string) markdown.Result {
		parses.Add(1)
		return markdown.Parse(s)
	}

	p := NewPipeline(NewModel(),
		WithDebounce(30*time.Millisecond),
		withParser(counting))
	defer p.Close()

	// A burst of edits inside one quiet period parses exactly once,
	// with the last snapshot winning.
	for rev := uint64(1); rev <= 10; rev++ {
		p.Schedule(rope.FromString("edit"), rev)
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return p.Model().SourceRevision() == 10
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), parses.Load())
}

func TestPipelineDiscardsStaleCompletion(t *testing.T) {
	release := make(chan struct{})
	gated := func(s string) markdown.Result {
		if s == "slow old text" {
			<-release
		}
		return markdown.Parse(s)
	}

	p := NewPipeline(NewModel(),
		WithDebounce(5*time.Millisecond),
		withParser(gated))
	defer p.Close()

	// Revision 5 fires and blocks inside the parser.
	p.Schedule(rope.FromString("slow old text"), 5)
	time.Sleep(30 * time.Millisecond)

	// Revision 7 fires, parses fast, publishes first.
	p.Schedule(rope.FromString("new text"), 7)
	require.Eventually(t, func() bool {
		return p.Model().SourceRevision() == 7
	}, time.Second, 5*time.Millisecond)

	// Let the old parse complete; its result must be dropped.
	close(release)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, uint64(7), p.Model().SourceRevision())
}

func TestPipelineCloseIsIdempotent(t *testing.T) {
	p := NewPipeline(NewModel(), WithDebounce(5*time.Millisecond))
	p.Close()
	p.Close()

	// Schedule after Close is a no-op, not a panic.
	p.Schedule(rope.FromString("late"), 99)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, p.Model().SourceRevision())
}

func TestPipelineDropsUnfiredPendingOnClose(t *testing.T) {
	p := NewPipeline(NewModel(), WithDebounce(time.Hour))
	p.Schedule(rope.FromString("never parsed"), 3)
	p.Close()

	assert.Zero(t, p.Model().SourceRevision())
}
