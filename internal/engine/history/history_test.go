package history

import (
	"fmt"
	"testing"
)

func TestPushUndoRedo(t *testing.T) {
	h := New(10)

	op := EditOperation{
		OldText:   "hello",
		NewText:   "hello world",
		OldCursor: 5,
		NewCursor: 11,
	}
	h.Push(op)

	if !h.CanUndo() {
		t.Fatal("expected CanUndo after push")
	}
	if h.CanRedo() {
		t.Fatal("unexpected CanRedo after push")
	}

	got, ok := h.Undo()
	if !ok {
		t.Fatal("Undo returned !ok")
	}
	if got.OldText != "hello" || got.NewText != "hello world" {
		t.Errorf("Undo returned %+v", got)
	}
	if h.CanUndo() {
		t.Error("CanUndo should be false after sole undo")
	}
	if !h.CanRedo() {
		t.Error("CanRedo should be true after undo")
	}

	got, ok = h.Redo()
	if !ok {
		t.Fatal("Redo returned !ok")
	}
	if got.NewCursor != 11 {
		t.Errorf("Redo cursor = %d, want 11", got.NewCursor)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("stacks not restored after redo")
	}
}

func TestEmptyStacks(t *testing.T) {
	h := New(0)

	if _, ok := h.Undo(); ok {
		t.Error("Undo on empty history should return !ok")
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo on empty history should return !ok")
	}
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries = %d, want %d", h.MaxEntries(), DefaultMaxEntries)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := New(10)

	h.Push(EditOperation{NewText: "a"})
	h.Push(EditOperation{OldText: "a", NewText: "ab"})
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	h.Push(EditOperation{OldText: "a", NewText: "ac"})
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", h.UndoCount())
	}
}

func TestMaxEntriesEviction(t *testing.T) {
	h := New(3)

	for i := 0; i < 5; i++ {
		h.Push(EditOperation{NewText: fmt.Sprintf("edit-%d", i)})
	}

	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", h.UndoCount())
	}

	// Oldest entries are evicted; the newest three survive.
	for want := 4; want >= 2; want-- {
		op, ok := h.Undo()
		if !ok {
			t.Fatal("Undo returned !ok")
		}
		if op.NewText != fmt.Sprintf("edit-%d", want) {
			t.Errorf("Undo = %q, want edit-%d", op.NewText, want)
		}
	}
	if h.CanUndo() {
		t.Error("evicted entries should not be undoable")
	}
}

func TestClear(t *testing.T) {
	h := New(10)
	h.Push(EditOperation{NewText: "a"})
	h.Push(EditOperation{NewText: "b"})
	h.Undo()

	h.Clear()

	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
	if h.UndoCount() != 0 || h.RedoCount() != 0 {
		t.Error("counts should be zero after Clear")
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	h := New(10)

	h.Push(EditOperation{
		OldText:      "hello world",
		NewText:      "hello",
		OldSelection: &Span{Start: 5, End: 11},
		OldCursor:    11,
		NewCursor:    5,
	})

	op, _ := h.Undo()
	if op.OldSelection == nil {
		t.Fatal("OldSelection lost in round trip")
	}
	if op.OldSelection.Start != 5 || op.OldSelection.End != 11 {
		t.Errorf("OldSelection = %+v", op.OldSelection)
	}
	if op.NewSelection != nil {
		t.Error("NewSelection should be nil")
	}
}
