package preview

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/aster/internal/engine/rope"
	"github.com/dshills/aster/internal/markdown"
)

// DefaultDebounce is the quiet period before a scheduled parse runs.
const DefaultDebounce = 200 * time.Millisecond

const defaultWorkers = 2

// parseFunc matches markdown.Parse; injectable for tests.
type parseFunc func(string) markdown.Result

type parseJob struct {
	text      *rope.Rope
	targetRev uint64
}

// Pipeline schedules debounced background parses of buffer snapshots
// and publishes results to a Model under the revision fence.
//
// Schedule is called from the goroutine that owns the document; each
// call resets the debounce timer, so only the last snapshot of a burst
// of edits is parsed. In-flight parses are never cancelled — a stale
// result is simply discarded at publish time.
type Pipeline struct {
	model  *Model
	delay  time.Duration
	parse  parseFunc
	logger *log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending parseJob
	closed  bool

	jobs chan parseJob
	wg   sync.WaitGroup
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithDebounce sets the quiet period before a parse runs.
func WithDebounce(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if d > 0 {
			p.delay = d
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *log.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

// withParser replaces the parse function in tests.
func withParser(fn parseFunc) PipelineOption {
	return func(p *Pipeline) { p.parse = fn }
}

// NewPipeline creates a pipeline publishing into model and starts its
// workers. Call Close to stop them.
func NewPipeline(model *Model, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		model:  model,
		delay:  DefaultDebounce,
		parse:  markdown.Parse,
		logger: log.Default(),
		jobs:   make(chan parseJob, defaultWorkers),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(defaultWorkers)
	for i := 0; i < defaultWorkers; i++ {
		go p.worker()
	}
	return p
}

// Model returns the model this pipeline publishes into.
func (p *Pipeline) Model() *Model {
	return p.model
}

// Schedule records a buffer snapshot for parsing once the debounce
// period passes without another call. The rope is an immutable
// snapshot, so later edits never race with the parse.
func (p *Pipeline) Schedule(text *rope.Rope, revision uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.pending = parseJob{text: text, targetRev: revision}
	if p.timer == nil {
		p.timer = time.AfterFunc(p.delay, p.fire)
	} else {
		p.timer.Reset(p.delay)
	}
}

// fire hands the pending snapshot to the workers after a quiet period.
func (p *Pipeline) fire() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	job := p.pending
	p.pending = parseJob{}
	p.timer = nil

	// The channel is buffered and workers drain it continuously, so
	// this send does not stall the timer goroutine in practice.
	p.jobs <- job
}

func (p *Pipeline) worker() {
	defer p.wg.Done()

	for job := range p.jobs {
		if job.text == nil {
			continue
		}

		start := time.Now()
		res := p.parse(job.text.String())

		snap := &Snapshot{
			Blocks:         res.Blocks,
			Footnotes:      res.Footnotes,
			SourceRevision: job.targetRev,
		}
		if p.model.Publish(snap) {
			p.logger.Debug("preview published",
				"revision", job.targetRev,
				"blocks", len(snap.Blocks),
				"elapsed", time.Since(start))
		} else {
			p.logger.Debug("stale parse discarded",
				"revision", job.targetRev,
				"published", p.model.SourceRevision())
		}
	}
}

// Close stops the timer and workers. A pending, unfired snapshot is
// dropped; in-flight parses finish and publish normally.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
