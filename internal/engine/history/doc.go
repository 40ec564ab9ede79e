// Package history provides snapshot-based undo and redo for document
// edits. Each entry captures the full text and editing state before and
// after an edit, so undo and redo are simple state swaps rather than
// inverse operations.
package history
