package history

// DefaultMaxEntries is the undo depth used when no limit is given.
const DefaultMaxEntries = 100

// History manages undo/redo stacks of edit operations. It is owned by
// a single document and is not safe for concurrent use.
type History struct {
	undoStack  []EditOperation
	redoStack  []EditOperation
	maxEntries int
}

// New creates a history with the given maximum undo depth.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records a completed edit and clears the redo stack. When the
// undo stack exceeds the maximum depth, the oldest entries are dropped.
func (h *History) Push(op EditOperation) {
	h.undoStack = append(h.undoStack, op)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = append([]EditOperation(nil), h.undoStack[excess:]...)
	}
}

// Undo pops the most recent edit and moves it to the redo stack.
// The second return value is false when there is nothing to undo.
func (h *History) Undo() (EditOperation, bool) {
	if len(h.undoStack) == 0 {
		return EditOperation{}, false
	}

	op := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, op)
	return op, true
}

// Redo pops the most recently undone edit and moves it back to the
// undo stack. The second return value is false when there is nothing
// to redo.
func (h *History) Redo() (EditOperation, bool) {
	if len(h.redoStack) == 0 {
		return EditOperation{}, false
	}

	op := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, op)
	return op, true
}

// CanUndo reports whether an undo operation is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo operation is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MaxEntries returns the maximum undo depth.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
