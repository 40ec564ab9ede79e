// Package markdown parses markdown source into a simplified block and
// inline-run model suitable for preview rendering. Parsing is a pure
// function of the source text; malformed input degrades to plain
// paragraph blocks rather than failing.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// md is the shared goldmark instance. It is stateless across parses
// and safe for concurrent use.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Footnote,
	),
)

// Parse converts markdown source into an ordered block list plus the
// referenced footnote definitions. It never fails: unknown or
// malformed constructs fall back to text runs.
func Parse(source string) Result {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	f := newFolder(src)
	return f.fold(doc)
}
