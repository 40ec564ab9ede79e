package document

// Selection is a half-open character range [Start, End) with
// Start < End. An empty range is represented by absence, never by a
// zero-width Selection.
type Selection struct {
	Start int
	End   int
}

// Len returns the number of characters covered.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Contains reports whether a character index falls inside the range.
func (s Selection) Contains(idx int) bool {
	return idx >= s.Start && idx < s.End
}
