package document

import (
	"github.com/dshills/aster/internal/engine/history"
	"github.com/dshills/aster/internal/engine/rope"
)

// Document is the editable text model. It tracks content, cursor,
// selection, a monotonically increasing revision, and dirty state
// relative to the last save point.
type Document struct {
	text *rope.Rope
	path string

	cursor    int
	selection *Selection
	anchor    int
	hasAnchor bool

	revision      uint64
	dirty         bool
	lastSavedHash uint64

	wordCount      int
	wordCountValid bool

	hist    *history.History
	pending *pendingEdit
}

// pendingEdit captures state before an edit for undo recording.
type pendingEdit struct {
	oldText      string
	oldCursor    int
	oldSelection *Selection
}

// New creates a document.
func New(opts ...Option) *Document {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Document{
		text: rope.FromString(cfg.text),
		path: cfg.path,
		hist: history.New(cfg.maxUndo),
	}
	d.lastSavedHash = d.text.Hash()
	d.wordCountValid = cfg.text == ""
	return d
}

// Path returns the associated file path, empty for unsaved documents.
func (d *Document) Path() string {
	return d.path
}

// SetPath associates the document with a file path.
func (d *Document) SetPath(path string) {
	d.path = path
}

// Text materializes the full content.
func (d *Document) Text() string {
	return d.text.String()
}

// Rope returns the current content as an immutable snapshot. The
// returned rope stays valid across later edits.
func (d *Document) Rope() *rope.Rope {
	return d.text
}

// LenChars returns the content length in characters.
func (d *Document) LenChars() int {
	return d.text.LenChars()
}

// LenBytes returns the content length in bytes.
func (d *Document) LenBytes() int {
	return d.text.Len()
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return d.text.LineCount()
}

// Revision returns the current content revision. It increases on every
// content change, including undo and redo.
func (d *Document) Revision() uint64 {
	return d.revision
}

// Dirty reports whether the content differs from the last save point.
func (d *Document) Dirty() bool {
	return d.dirty
}

// Cursor returns the cursor position in characters.
func (d *Document) Cursor() int {
	return d.cursor
}

// SetText replaces the entire content. The cursor moves to the end of
// the document and any selection is cleared.
func (d *Document) SetText(text string) {
	d.text = rope.FromString(text)
	d.cursor = d.text.LenChars()
	d.ClearSelection()
	d.bumpRevision()
	d.dirty = d.text.Hash() != d.lastSavedHash
	d.wordCountValid = false
}

// SetCursor moves the cursor, clamping to the content length, and
// clears any selection.
func (d *Document) SetCursor(idx int) {
	d.cursor = clamp(idx, d.LenChars())
	d.ClearSelection()
}

// Insert inserts text at a character index. The index is clamped to
// the content length. Any selection is cleared; the cursor does not
// move, callers position it explicitly.
func (d *Document) Insert(charIdx int, text string) {
	d.text = d.text.InsertChars(charIdx, text)
	d.bumpRevision()
	d.dirty = true
	d.ClearSelection()
	d.wordCountValid = false
}

// DeleteRange removes the character range [start, end). Inverted or
// out-of-bounds ranges are ignored. The cursor is clamped to the new
// length and any selection is cleared.
func (d *Document) DeleteRange(start, end int) {
	if start >= end || end > d.LenChars() {
		return
	}
	d.text = d.text.DeleteChars(start, end)
	d.bumpRevision()
	d.dirty = true
	d.cursor = clamp(d.cursor, d.LenChars())
	d.ClearSelection()
	d.wordCountValid = false
}

// Selection returns the active selection, if any.
func (d *Document) Selection() (Selection, bool) {
	if d.selection == nil {
		return Selection{}, false
	}
	return *d.selection, true
}

// Anchor returns the selection anchor, the fixed endpoint of a
// shift or drag selection.
func (d *Document) Anchor() (int, bool) {
	return d.anchor, d.hasAnchor
}

// SetSelection selects the character range between start and end in
// either order. Equal endpoints clear the selection. The cursor moves
// to the given end point; the anchor stays at the start point.
func (d *Document) SetSelection(start, end int) {
	if start > end {
		start, end = end, start
	}

	length := d.LenChars()
	if start == end {
		d.selection = nil
	} else {
		d.selection = &Selection{
			Start: clamp(start, length),
			End:   clamp(end, length),
		}
	}
	d.cursor = clamp(end, length)
	d.anchor = clamp(start, length)
	d.hasAnchor = true
}

// SelectAll selects the entire content. An empty document keeps no
// selection. The cursor moves to the end.
func (d *Document) SelectAll() {
	length := d.LenChars()
	if length == 0 {
		d.selection = nil
	} else {
		d.selection = &Selection{Start: 0, End: length}
	}
	d.anchor = 0
	d.hasAnchor = true
	d.cursor = length
}

// ClearSelection drops the selection and its anchor.
func (d *Document) ClearSelection() {
	d.selection = nil
	d.anchor = 0
	d.hasAnchor = false
}

// DeleteSelection removes the selected text and returns the resulting
// cursor position. It returns false when no selection is active.
func (d *Document) DeleteSelection() (int, bool) {
	if d.selection == nil {
		return 0, false
	}

	sel := *d.selection
	d.DeleteRange(sel.Start, sel.End)
	d.cursor = clamp(sel.Start, d.LenChars())
	d.ClearSelection()
	return d.cursor, true
}

// CharToByte converts a character index to a byte offset, clamping
// out-of-range input.
func (d *Document) CharToByte(charIdx int) int {
	return d.text.CharToByte(charIdx)
}

// ByteToChar converts a byte offset to a character index, clamping
// out-of-range input.
func (d *Document) ByteToChar(byteIdx int) int {
	return d.text.ByteToChar(byteIdx)
}

// SliceChars extracts text in the character range [start, end).
func (d *Document) SliceChars(start, end int) string {
	return d.text.SliceChars(start, end)
}

// SelectionText returns the selected text, empty when no selection is
// active.
func (d *Document) SelectionText() string {
	if d.selection == nil {
		return ""
	}
	return d.SliceChars(d.selection.Start, d.selection.End)
}

// SaveSnapshot marks the current content as the save point and clears
// the dirty flag.
func (d *Document) SaveSnapshot() {
	d.lastSavedHash = d.text.Hash()
	d.dirty = false
}

// WordCount returns the number of words, recomputing only when the
// content changed since the last call.
func (d *Document) WordCount() int {
	if !d.wordCountValid {
		d.wordCount = countWords(d.text)
		d.wordCountValid = true
	}
	return d.wordCount
}

// BeginEdit captures the current state ahead of an edit. Pair with
// CommitEdit to record the edit as one undo unit.
func (d *Document) BeginEdit() {
	pending := &pendingEdit{
		oldText:   d.Text(),
		oldCursor: d.cursor,
	}
	if d.selection != nil {
		sel := *d.selection
		pending.oldSelection = &sel
	}
	d.pending = pending
}

// CommitEdit records the edit started by BeginEdit in the undo
// history. Without a matching BeginEdit it does nothing.
func (d *Document) CommitEdit() {
	if d.pending == nil {
		return
	}
	pending := d.pending
	d.pending = nil

	op := history.EditOperation{
		OldText:      pending.oldText,
		NewText:      d.Text(),
		OldCursor:    pending.oldCursor,
		NewCursor:    d.cursor,
		OldSelection: toSpan(pending.oldSelection),
		NewSelection: toSpan(d.selection),
	}
	d.hist.Push(op)
}

// CancelEdit drops the state captured by BeginEdit without recording
// anything. Used when a bracketed operation turns out to change
// nothing, so no-op entries never reach the history.
func (d *Document) CancelEdit() {
	d.pending = nil
}

// Undo restores the state before the most recent edit. It returns
// false when there is nothing to undo.
func (d *Document) Undo() bool {
	op, ok := d.hist.Undo()
	if !ok {
		return false
	}
	d.restore(op.OldText, op.OldCursor, op.OldSelection)
	return true
}

// Redo reapplies the most recently undone edit. It returns false when
// there is nothing to redo.
func (d *Document) Redo() bool {
	op, ok := d.hist.Redo()
	if !ok {
		return false
	}
	d.restore(op.NewText, op.NewCursor, op.NewSelection)
	return true
}

// CanUndo reports whether an undo operation is available.
func (d *Document) CanUndo() bool {
	return d.hist.CanUndo()
}

// CanRedo reports whether a redo operation is available.
func (d *Document) CanRedo() bool {
	return d.hist.CanRedo()
}

// ClearHistory drops all undo state, including any pending edit.
func (d *Document) ClearHistory() {
	d.hist.Clear()
	d.pending = nil
}

func (d *Document) restore(text string, cursor int, sel *history.Span) {
	d.text = rope.FromString(text)
	d.cursor = clamp(cursor, d.LenChars())

	if sel == nil {
		d.selection = nil
		d.hasAnchor = false
		d.anchor = 0
	} else {
		d.selection = &Selection{Start: sel.Start, End: sel.End}
		d.anchor = sel.Start
		d.hasAnchor = true
	}

	d.bumpRevision()
	d.wordCountValid = false
	d.dirty = d.text.Hash() != d.lastSavedHash
}

func (d *Document) bumpRevision() {
	d.revision++
}

func toSpan(sel *Selection) *history.Span {
	if sel == nil {
		return nil
	}
	return &history.Span{Start: sel.Start, End: sel.End}
}

func clamp(idx, max int) int {
	if idx < 0 {
		return 0
	}
	if idx > max {
		return max
	}
	return idx
}
