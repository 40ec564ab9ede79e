package document

import "testing"

func TestNewDocument(t *testing.T) {
	d := New()

	if d.Text() != "" {
		t.Errorf("Text() = %q, want empty", d.Text())
	}
	if d.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", d.Cursor())
	}
	if d.Dirty() {
		t.Error("new document should not be dirty")
	}
	if d.Revision() != 0 {
		t.Errorf("Revision() = %d, want 0", d.Revision())
	}
	if _, ok := d.Selection(); ok {
		t.Error("new document should have no selection")
	}
	if d.WordCount() != 0 {
		t.Errorf("WordCount() = %d, want 0", d.WordCount())
	}
}

func TestNewWithText(t *testing.T) {
	d := New(WithText("hello world"), WithPath("/tmp/notes.md"))

	if d.Text() != "hello world" {
		t.Errorf("Text() = %q", d.Text())
	}
	if d.Path() != "/tmp/notes.md" {
		t.Errorf("Path() = %q", d.Path())
	}
	if d.Dirty() {
		t.Error("document created with text should start clean")
	}
}

func TestSetText(t *testing.T) {
	d := New()
	d.SetSelection(0, 0)

	d.SetText("héllo wörld")

	if d.Cursor() != 11 {
		t.Errorf("cursor = %d, want 11 (end of text)", d.Cursor())
	}
	if _, ok := d.Selection(); ok {
		t.Error("SetText should clear selection")
	}
	if d.Revision() != 1 {
		t.Errorf("revision = %d, want 1", d.Revision())
	}
	if !d.Dirty() {
		t.Error("SetText with new content should mark dirty")
	}

	d.SaveSnapshot()
	if d.Dirty() {
		t.Error("SaveSnapshot should clear dirty")
	}
}

func TestSetCursorClamps(t *testing.T) {
	d := New(WithText("hello"))

	tests := []struct {
		name string
		idx  int
		want int
	}{
		{"in range", 3, 3},
		{"at end", 5, 5},
		{"past end", 99, 5},
		{"negative", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.SetCursor(tt.idx)
			if got := d.Cursor(); got != tt.want {
				t.Errorf("Cursor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetCursorClearsSelection(t *testing.T) {
	d := New(WithText("hello"))
	d.SetSelection(1, 4)
	d.SetCursor(2)
	if _, ok := d.Selection(); ok {
		t.Error("SetCursor should clear selection")
	}
}

func TestInsert(t *testing.T) {
	d := New(WithText("hello world"))
	rev := d.Revision()

	d.Insert(5, ",")

	if d.Text() != "hello, world" {
		t.Errorf("Text() = %q", d.Text())
	}
	if !d.Dirty() {
		t.Error("Insert should mark dirty")
	}
	if d.Revision() != rev+1 {
		t.Errorf("revision = %d, want %d", d.Revision(), rev+1)
	}
}

func TestDeleteRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		wantText   string
		wantRev    uint64
	}{
		{"valid range", 5, 6, "helloworld", 1},
		{"inverted is ignored", 6, 5, "hello world", 0},
		{"equal is ignored", 3, 3, "hello world", 0},
		{"end past length is ignored", 5, 99, "hello world", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(WithText("hello world"))
			d.DeleteRange(tt.start, tt.end)
			if got := d.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			if got := d.Revision(); got != tt.wantRev {
				t.Errorf("Revision() = %d, want %d", got, tt.wantRev)
			}
		})
	}
}

func TestDeleteRangeClampsCursor(t *testing.T) {
	d := New(WithText("hello world"))
	d.SetCursor(11)
	d.DeleteRange(5, 11)
	if d.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5", d.Cursor())
	}
}

func TestSetSelection(t *testing.T) {
	d := New(WithText("hello world"))

	d.SetSelection(8, 2)

	sel, ok := d.Selection()
	if !ok {
		t.Fatal("expected selection")
	}
	if sel.Start != 2 || sel.End != 8 {
		t.Errorf("selection = %+v, want [2, 8)", sel)
	}
	if d.Cursor() != 8 {
		t.Errorf("cursor = %d, want 8 (normalized end)", d.Cursor())
	}
	anchor, ok := d.Anchor()
	if !ok || anchor != 2 {
		t.Errorf("anchor = %d/%v, want 2", anchor, ok)
	}

	d.SetSelection(4, 4)
	if _, ok := d.Selection(); ok {
		t.Error("equal endpoints should clear selection")
	}
}

func TestSelectAll(t *testing.T) {
	d := New(WithText("héllo"))
	d.SelectAll()

	sel, ok := d.Selection()
	if !ok {
		t.Fatal("expected selection")
	}
	if sel.Start != 0 || sel.End != 5 {
		t.Errorf("selection = %+v, want [0, 5)", sel)
	}
	if d.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5", d.Cursor())
	}

	empty := New()
	empty.SelectAll()
	if _, ok := empty.Selection(); ok {
		t.Error("SelectAll on empty document should keep no selection")
	}
}

func TestDeleteSelection(t *testing.T) {
	d := New(WithText("hello world"))
	d.SetSelection(5, 11)

	cursor, ok := d.DeleteSelection()
	if !ok {
		t.Fatal("DeleteSelection returned !ok")
	}
	if cursor != 5 {
		t.Errorf("cursor = %d, want 5", cursor)
	}
	if d.Text() != "hello" {
		t.Errorf("Text() = %q", d.Text())
	}

	if _, ok := d.DeleteSelection(); ok {
		t.Error("DeleteSelection with no selection should return !ok")
	}
}

func TestSelectionText(t *testing.T) {
	d := New(WithText("héllo wörld"))
	d.SetSelection(6, 11)
	if got := d.SelectionText(); got != "wörld" {
		t.Errorf("SelectionText() = %q", got)
	}

	d.ClearSelection()
	if got := d.SelectionText(); got != "" {
		t.Errorf("SelectionText() after clear = %q", got)
	}
}

func TestCharByteConversions(t *testing.T) {
	d := New(WithText("aé日b"))

	if got := d.CharToByte(2); got != 3 {
		t.Errorf("CharToByte(2) = %d, want 3", got)
	}
	if got := d.CharToByte(99); got != 7 {
		t.Errorf("CharToByte(99) = %d, want 7 (clamped)", got)
	}
	if got := d.ByteToChar(6); got != 3 {
		t.Errorf("ByteToChar(6) = %d, want 3", got)
	}
	if got := d.ByteToChar(99); got != 4 {
		t.Errorf("ByteToChar(99) = %d, want 4 (clamped)", got)
	}
}

func TestUndoRedo(t *testing.T) {
	d := New(WithText("hello"))
	d.SetCursor(5)

	d.BeginEdit()
	d.Insert(5, " world")
	d.SetCursor(11)
	d.CommitEdit()

	if !d.CanUndo() {
		t.Fatal("expected CanUndo")
	}

	if !d.Undo() {
		t.Fatal("Undo returned false")
	}
	if d.Text() != "hello" {
		t.Errorf("after undo Text() = %q", d.Text())
	}
	if d.Cursor() != 5 {
		t.Errorf("after undo cursor = %d, want 5", d.Cursor())
	}
	if d.Dirty() {
		t.Error("undo back to saved content should clear dirty")
	}

	if !d.Redo() {
		t.Fatal("Redo returned false")
	}
	if d.Text() != "hello world" {
		t.Errorf("after redo Text() = %q", d.Text())
	}
	if d.Cursor() != 11 {
		t.Errorf("after redo cursor = %d, want 11", d.Cursor())
	}
	if !d.Dirty() {
		t.Error("redo past saved content should set dirty")
	}
}

func TestUndoBumpsRevision(t *testing.T) {
	d := New(WithText("hello"))

	d.BeginEdit()
	d.Insert(5, "!")
	d.CommitEdit()
	rev := d.Revision()

	d.Undo()
	if d.Revision() != rev+1 {
		t.Errorf("revision = %d, want %d (undo is a content change)", d.Revision(), rev+1)
	}
}

func TestUndoRestoresSelection(t *testing.T) {
	d := New(WithText("hello world"))
	d.SetSelection(0, 5)

	d.BeginEdit()
	d.DeleteSelection()
	d.CommitEdit()

	d.Undo()
	sel, ok := d.Selection()
	if !ok {
		t.Fatal("undo should restore selection")
	}
	if sel.Start != 0 || sel.End != 5 {
		t.Errorf("selection = %+v, want [0, 5)", sel)
	}
	anchor, ok := d.Anchor()
	if !ok || anchor != 0 {
		t.Errorf("anchor = %d/%v, want 0", anchor, ok)
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	d := New(WithText("hello"))
	if d.Undo() {
		t.Error("Undo with empty history should return false")
	}
	if d.Redo() {
		t.Error("Redo with empty history should return false")
	}
}

func TestCommitWithoutBegin(t *testing.T) {
	d := New(WithText("hello"))
	d.CommitEdit()
	if d.CanUndo() {
		t.Error("CommitEdit without BeginEdit should record nothing")
	}
}

func TestClearHistory(t *testing.T) {
	d := New(WithText("a"))
	d.BeginEdit()
	d.Insert(1, "b")
	d.CommitEdit()
	d.BeginEdit()

	d.ClearHistory()

	if d.CanUndo() {
		t.Error("ClearHistory should drop undo history")
	}
	d.CommitEdit()
	if d.CanUndo() {
		t.Error("ClearHistory should drop the pending edit")
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"simple", "hello world", 2},
		{"punctuation only", "... --- !!!", 0},
		{"hyphens and apostrophes", "it's a well-known fact", 5},
		{"numbers", "chapter 12 section 3", 4},
		{"newlines", "one\ntwo\nthree", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(WithText(tt.text))
			if got := d.WordCount(); got != tt.want {
				t.Errorf("WordCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWordCountCache(t *testing.T) {
	d := New(WithText("one two"))
	if d.WordCount() != 2 {
		t.Fatalf("WordCount() = %d", d.WordCount())
	}

	d.Insert(7, " three")
	if d.WordCount() != 3 {
		t.Errorf("WordCount() after insert = %d, want 3", d.WordCount())
	}
}

func TestDirtyTracking(t *testing.T) {
	d := New(WithText("saved content"))
	d.SaveSnapshot()

	d.BeginEdit()
	d.Insert(0, "x")
	d.CommitEdit()
	if !d.Dirty() {
		t.Fatal("edit should mark dirty")
	}

	d.Undo()
	if d.Dirty() {
		t.Error("undoing back to the save point should clear dirty")
	}
}

func TestRopeSnapshotSurvivesEdits(t *testing.T) {
	d := New(WithText("hello"))
	snap := d.Rope()

	d.Insert(5, " world")

	if snap.String() != "hello" {
		t.Errorf("snapshot changed after edit: %q", snap.String())
	}
	if d.Text() != "hello world" {
		t.Errorf("Text() = %q", d.Text())
	}
}
