package document

// Option configures a Document at creation time.
type Option func(*config)

type config struct {
	text    string
	path    string
	maxUndo int
}

// WithText sets the initial content. The document starts clean with
// the cursor at position zero.
func WithText(text string) Option {
	return func(c *config) { c.text = text }
}

// WithPath associates the document with a file path.
func WithPath(path string) Option {
	return func(c *config) { c.path = path }
}

// WithMaxUndo sets the maximum undo depth. Zero or negative uses the
// default.
func WithMaxUndo(n int) Option {
	return func(c *config) { c.maxUndo = n }
}
