package history

// Span is a half-open character range [Start, End) within a document.
type Span struct {
	Start int
	End   int
}

// EditOperation captures document state on both sides of one edit.
// Selections are optional; a nil pointer means no selection was active.
type EditOperation struct {
	OldText string
	NewText string

	OldCursor int
	NewCursor int

	OldSelection *Span
	NewSelection *Span
}
