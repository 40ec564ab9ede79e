package document

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/aster/internal/engine/rope"
)

// countWords counts words using Unicode word segmentation. A segment
// counts as a word when it contains at least one letter or digit, so
// punctuation and whitespace runs are skipped.
func countWords(r *rope.Rope) int {
	// Word boundaries can straddle chunk boundaries, so segment the
	// materialized text rather than chunk by chunk.
	text := r.String()

	count := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isCountableWord(word) {
			count++
		}
	}
	return count
}

func isCountableWord(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
