// Package editor ties the document model to the preview pipeline: it
// is the facade an input layer drives. Every content change brackets
// an undo unit and schedules a debounced preview reparse.
package editor

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/dshills/aster/internal/config"
	"github.com/dshills/aster/internal/engine/document"
	"github.com/dshills/aster/internal/fs"
	"github.com/dshills/aster/internal/preview"
)

// ErrNoPath is returned by Save when the document has never been
// associated with a file.
var ErrNoPath = errors.New("document has no file path")

// Session owns one open document and its preview. It must be driven
// from a single goroutine; the preview model it exposes is safe to
// read from anywhere.
type Session struct {
	doc      *document.Document
	pipeline *preview.Pipeline
	logger   *log.Logger

	cachedText string
	cachedRev  uint64
	textValid  bool
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	logger *log.Logger
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *sessionConfig) { c.logger = logger }
}

// NewSession creates a session with an empty, clean document.
func NewSession(settings config.Settings, opts ...Option) *Session {
	cfg := sessionConfig{logger: log.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	model := preview.NewModel()
	return &Session{
		doc: document.New(document.WithMaxUndo(settings.MaxUndoEntries)),
		pipeline: preview.NewPipeline(model,
			preview.WithDebounce(settings.Debounce()),
			preview.WithLogger(cfg.logger)),
		logger: cfg.logger,
	}
}

// Close stops the preview pipeline.
func (s *Session) Close() {
	s.pipeline.Close()
}

// Document exposes the underlying document for reads.
func (s *Session) Document() *document.Document {
	return s.doc
}

// Preview returns the model the renderer reads from.
func (s *Session) Preview() *preview.Model {
	return s.pipeline.Model()
}

// Text returns the document content, cached by revision so repeated
// reads between edits do not re-materialize the rope.
func (s *Session) Text() string {
	if !s.textValid || s.cachedRev != s.doc.Revision() {
		s.cachedText = s.doc.Text()
		s.cachedRev = s.doc.Revision()
		s.textValid = true
	}
	return s.cachedText
}

// InsertText inserts text at the cursor as one undo unit. An active
// selection is replaced.
func (s *Session) InsertText(text string) {
	if text == "" {
		return
	}

	s.doc.BeginEdit()
	if cursor, ok := s.doc.DeleteSelection(); ok {
		s.doc.SetCursor(cursor)
	}

	at := s.doc.Cursor()
	s.doc.Insert(at, text)
	s.doc.SetCursor(at + utf8.RuneCountInString(text))
	s.doc.CommitEdit()
	s.schedule()
}

// Backspace deletes the selection, or the character before the cursor.
// At position zero with no selection it does nothing.
func (s *Session) Backspace() {
	s.doc.BeginEdit()

	if cursor, ok := s.doc.DeleteSelection(); ok {
		s.doc.SetCursor(cursor)
	} else if c := s.doc.Cursor(); c > 0 {
		s.doc.DeleteRange(c-1, c)
		s.doc.SetCursor(c - 1)
	} else {
		s.doc.CancelEdit()
		return
	}

	s.doc.CommitEdit()
	s.schedule()
}

// DeleteForward deletes the selection, or the character after the
// cursor. At the end of the document with no selection it does
// nothing.
func (s *Session) DeleteForward() {
	s.doc.BeginEdit()

	if cursor, ok := s.doc.DeleteSelection(); ok {
		s.doc.SetCursor(cursor)
	} else if c := s.doc.Cursor(); c < s.doc.LenChars() {
		s.doc.DeleteRange(c, c+1)
		s.doc.SetCursor(c)
	} else {
		s.doc.CancelEdit()
		return
	}

	s.doc.CommitEdit()
	s.schedule()
}

// SetCursor moves the cursor without affecting history.
func (s *Session) SetCursor(idx int) {
	s.doc.SetCursor(idx)
}

// SetSelection selects a character range without affecting history.
func (s *Session) SetSelection(start, end int) {
	s.doc.SetSelection(start, end)
}

// SelectAll selects the whole document.
func (s *Session) SelectAll() {
	s.doc.SelectAll()
}

// Undo reverts the most recent edit and reschedules the preview.
func (s *Session) Undo() bool {
	if !s.doc.Undo() {
		return false
	}
	s.schedule()
	return true
}

// Redo reapplies the most recently undone edit.
func (s *Session) Redo() bool {
	if !s.doc.Redo() {
		return false
	}
	s.schedule()
	return true
}

// NewFile resets the session to an empty unsaved document. Undo
// history never crosses a document replacement.
func (s *Session) NewFile() {
	s.doc.SetText("")
	s.doc.SetPath("")
	s.doc.SetCursor(0)
	s.doc.ClearHistory()
	s.doc.SaveSnapshot()
	s.schedule()
	s.logger.Info("new document")
}

// OpenFile loads a file into the session, replacing the current
// document content and clearing history.
func (s *Session) OpenFile(path string) error {
	text, err := fs.ReadDocument(path)
	if err != nil {
		return err
	}

	s.doc.SetText(text)
	s.doc.SetPath(path)
	s.doc.SetCursor(0)
	s.doc.ClearHistory()
	s.doc.SaveSnapshot()
	s.schedule()

	s.logger.Info("opened document", "path", path, "chars", s.doc.LenChars())
	return nil
}

// Save writes the document back to its path atomically and marks the
// content clean. Returns ErrNoPath for never-saved documents.
func (s *Session) Save(ctx context.Context) error {
	path := s.doc.Path()
	if path == "" {
		return ErrNoPath
	}

	if err := fs.WriteAtomic(ctx, path, s.Text(), 0); err != nil {
		return err
	}
	s.doc.SaveSnapshot()

	s.logger.Info("saved document", "path", path)
	return nil
}

// SaveAs writes the document to a new path and rebinds it there.
func (s *Session) SaveAs(ctx context.Context, path string) error {
	s.doc.SetPath(path)
	return s.Save(ctx)
}

func (s *Session) schedule() {
	s.pipeline.Schedule(s.doc.Rope(), s.doc.Revision())
}
