package markdown

// BlockKind discriminates the Block variants.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindListItem
	KindOrderedListItem
	KindTaskListItem
	KindQuote
	KindCodeBlock
	KindImage
	KindTable
	KindFootnoteRef
	KindFootnoteDef
)

// String returns the kind name for logging and test failure output.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindOrderedListItem:
		return "ordered-list-item"
	case KindTaskListItem:
		return "task-list-item"
	case KindQuote:
		return "quote"
	case KindCodeBlock:
		return "code-block"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	case KindFootnoteRef:
		return "footnote-ref"
	case KindFootnoteDef:
		return "footnote-def"
	default:
		return "unknown"
	}
}

// InlineRun is a span of styled text within a block. Link is the
// enclosing link destination, empty for runs outside any link.
type InlineRun struct {
	Text          string
	Bold          bool
	Italic        bool
	Code          bool
	Strikethrough bool
	Link          string
}

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// TableRow is one table row. Header is set on the first row only.
type TableRow struct {
	Header bool
	Cells  [][]InlineRun
}

// Block is one structured unit of parsed markdown. Kind selects which
// fields are meaningful; Runs is populated for every kind except
// CodeBlock, Image, and Table.
type Block struct {
	Kind BlockKind
	Runs []InlineRun

	// KindHeading
	Level int

	// KindOrderedListItem
	Number int

	// KindTaskListItem
	Checked bool

	// KindCodeBlock
	Code     string
	Language string

	// KindImage
	Alt string
	Src string

	// KindTable
	Alignments []Alignment
	Rows       []TableRow

	// KindFootnoteRef and KindFootnoteDef
	Label        string
	DisplayIndex int
}

// Result is the output of one parse: the main block sequence plus the
// referenced footnote definitions ordered by display index.
type Result struct {
	Blocks    []Block
	Footnotes []Block
}
