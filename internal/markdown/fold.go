package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// folder folds the parser's enter/leave event stream into the block
// model. It is single-use: one folder per parse.
type folder struct {
	source []byte

	blocks []Block
	runs   []InlineRun

	// Inline style state. Depth counters rather than booleans so that
	// nested emphasis like **a *b* c** keeps bold across the whole run.
	boldDepth   int
	italicDepth int
	strikeDepth int
	inCodeSpan  bool
	linkStack   []string

	lists      []listContext
	quoteDepth int

	inImage  bool
	imageAlt strings.Builder
	imageSrc string

	// Footnote reference bookkeeping. Display indices are assigned in
	// reference order on first encounter, independent of definition
	// order in the source.
	labelByID    map[int]string
	displayIndex map[string]int

	inFootnote bool
	defRuns    []InlineRun
	defLabel   string
	defs       map[string]Block

	table *tableContext
}

type listContext struct {
	ordered bool
	next    int

	itemNumber  int
	task        bool
	taskChecked bool
}

type tableContext struct {
	alignments []Alignment
	rows       []TableRow
	inHeader   bool
	inCell     bool
	row        [][]InlineRun
	cell       []InlineRun
}

func newFolder(source []byte) *folder {
	return &folder{
		source:       source,
		labelByID:    make(map[int]string),
		displayIndex: make(map[string]int),
		defs:         make(map[string]Block),
	}
}

// fold walks the document and produces the final Result.
func (f *folder) fold(doc ast.Node) Result {
	f.collectFootnoteLabels(doc)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			return f.enter(n), nil
		}
		f.leave(n)
		return ast.WalkContinue, nil
	})

	// Containers are all closed by the walk, but flush any stragglers
	// as a trailing paragraph.
	f.flushRuns()

	footnotes := make([]Block, 0, len(f.defs))
	for _, def := range f.defs {
		footnotes = append(footnotes, def)
	}
	sort.Slice(footnotes, func(i, j int) bool {
		return footnotes[i].DisplayIndex < footnotes[j].DisplayIndex
	})

	return Result{Blocks: f.blocks, Footnotes: footnotes}
}

// collectFootnoteLabels maps goldmark footnote indices to their source
// labels so references can be resolved before their definitions are
// walked.
func (f *folder) collectFootnoteLabels(doc ast.Node) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fn, ok := n.(*east.Footnote); ok {
			f.labelByID[fn.Index] = string(fn.Ref)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

func (f *folder) enter(n ast.Node) ast.WalkStatus {
	switch n := n.(type) {
	case *ast.Blockquote:
		f.quoteDepth++

	case *ast.List:
		ctx := listContext{ordered: n.IsOrdered()}
		if ctx.ordered {
			ctx.next = n.Start
		}
		f.lists = append(f.lists, ctx)

	case *ast.ListItem:
		if len(f.lists) > 0 {
			ctx := &f.lists[len(f.lists)-1]
			ctx.task = false
			ctx.taskChecked = false
			if ctx.ordered {
				ctx.itemNumber = ctx.next
				ctx.next++
			}
		}

	case *ast.FencedCodeBlock:
		lang := ""
		if n.Info != nil {
			lang = string(n.Info.Value(f.source))
		}
		f.blocks = append(f.blocks, Block{
			Kind:     KindCodeBlock,
			Code:     f.blockLines(n),
			Language: lang,
		})
		return ast.WalkSkipChildren

	case *ast.CodeBlock:
		f.blocks = append(f.blocks, Block{
			Kind: KindCodeBlock,
			Code: f.blockLines(n),
		})
		return ast.WalkSkipChildren

	case *ast.Emphasis:
		if n.Level >= 2 {
			f.boldDepth++
		} else {
			f.italicDepth++
		}

	case *east.Strikethrough:
		f.strikeDepth++

	case *ast.CodeSpan:
		f.inCodeSpan = true

	case *ast.Link:
		f.linkStack = append(f.linkStack, string(n.Destination))

	case *ast.AutoLink:
		url := string(n.URL(f.source))
		f.appendText(string(n.Label(f.source)), url)
		return ast.WalkSkipChildren

	case *ast.Image:
		f.flushRuns()
		f.inImage = true
		f.imageSrc = string(n.Destination)
		f.imageAlt.Reset()

	case *ast.Text:
		text := string(n.Segment.Value(f.source))
		f.appendText(text, f.currentLink())
		if n.SoftLineBreak() {
			f.appendText(" ", f.currentLink())
		} else if n.HardLineBreak() {
			f.appendText("\n", f.currentLink())
		}

	case *ast.String:
		f.appendText(string(n.Value), f.currentLink())

	case *east.TaskCheckBox:
		if len(f.lists) > 0 {
			ctx := &f.lists[len(f.lists)-1]
			ctx.task = true
			ctx.taskChecked = n.IsChecked
		}
		return ast.WalkSkipChildren

	case *east.FootnoteLink:
		f.emitFootnoteRef(n.Index)
		return ast.WalkSkipChildren

	case *east.FootnoteBacklink:
		return ast.WalkSkipChildren

	case *east.Footnote:
		label := string(n.Ref)
		if _, referenced := f.displayIndex[label]; !referenced {
			// Definitions without a reference are dropped whole.
			return ast.WalkSkipChildren
		}
		f.inFootnote = true
		f.defLabel = label
		f.defRuns = nil

	case *east.Table:
		f.table = &tableContext{}

	case *east.TableHeader:
		if f.table != nil {
			f.table.inHeader = true
			f.table.row = nil
		}

	case *east.TableRow:
		if f.table != nil {
			f.table.row = nil
		}

	case *east.TableCell:
		if f.table != nil {
			f.table.inCell = true
			f.table.cell = nil
			if f.table.inHeader {
				f.table.alignments = append(f.table.alignments, cellAlignment(n.Alignment))
			}
		}

	case *ast.ThematicBreak, *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren
	}

	return ast.WalkContinue
}

func (f *folder) leave(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		runs := f.takeRuns()
		f.blocks = append(f.blocks, Block{
			Kind:  KindHeading,
			Level: n.Level,
			Runs:  runs,
		})

	case *ast.Paragraph, *ast.TextBlock:
		f.flushRuns()

	case *ast.Blockquote:
		f.quoteDepth--

	case *ast.List:
		f.lists = f.lists[:len(f.lists)-1]

	case *ast.Emphasis:
		if n.Level >= 2 {
			f.boldDepth--
		} else {
			f.italicDepth--
		}

	case *east.Strikethrough:
		f.strikeDepth--

	case *ast.CodeSpan:
		f.inCodeSpan = false

	case *ast.Link:
		f.linkStack = f.linkStack[:len(f.linkStack)-1]

	case *ast.Image:
		f.inImage = false
		f.blocks = append(f.blocks, Block{
			Kind: KindImage,
			Alt:  f.imageAlt.String(),
			Src:  f.imageSrc,
		})

	case *east.Footnote:
		if f.inFootnote {
			f.defs[f.defLabel] = Block{
				Kind:         KindFootnoteDef,
				Label:        f.defLabel,
				DisplayIndex: f.displayIndex[f.defLabel],
				Runs:         f.defRuns,
			}
			f.inFootnote = false
			f.defRuns = nil
		}

	case *east.Table:
		if f.table != nil {
			f.blocks = append(f.blocks, Block{
				Kind:       KindTable,
				Alignments: f.table.alignments,
				Rows:       f.table.rows,
			})
			f.table = nil
		}

	case *east.TableHeader:
		if f.table != nil {
			f.table.rows = append(f.table.rows, TableRow{Header: true, Cells: f.table.row})
			f.table.inHeader = false
			f.table.row = nil
		}

	case *east.TableRow:
		if f.table != nil {
			f.table.rows = append(f.table.rows, TableRow{Cells: f.table.row})
			f.table.row = nil
		}

	case *east.TableCell:
		if f.table != nil {
			f.table.row = append(f.table.row, f.table.cell)
			f.table.inCell = false
			f.table.cell = nil
		}
	}
}

// appendText routes text to the active sink: image alt accumulator,
// table cell, footnote definition, or the main run buffer.
func (f *folder) appendText(text, link string) {
	if text == "" {
		return
	}

	if f.inImage {
		f.imageAlt.WriteString(text)
		return
	}

	run := InlineRun{
		Text:          text,
		Bold:          f.boldDepth > 0,
		Italic:        f.italicDepth > 0,
		Code:          f.inCodeSpan,
		Strikethrough: f.strikeDepth > 0,
		Link:          link,
	}

	switch {
	case f.table != nil && f.table.inCell:
		f.table.cell = append(f.table.cell, run)
	case f.inFootnote:
		f.defRuns = append(f.defRuns, run)
	default:
		f.runs = append(f.runs, run)
	}
}

func (f *folder) currentLink() string {
	if len(f.linkStack) == 0 {
		return ""
	}
	return f.linkStack[len(f.linkStack)-1]
}

func (f *folder) takeRuns() []InlineRun {
	runs := f.runs
	f.runs = nil
	return runs
}

// flushRuns emits pending runs as a block classified by the innermost
// open container: list item, quote, then plain paragraph.
func (f *folder) flushRuns() {
	runs := f.takeRuns()
	if len(runs) == 0 {
		return
	}

	switch {
	case len(f.lists) > 0:
		ctx := f.lists[len(f.lists)-1]
		switch {
		case ctx.task:
			f.blocks = append(f.blocks, Block{
				Kind:    KindTaskListItem,
				Checked: ctx.taskChecked,
				Runs:    runs,
			})
		case ctx.ordered:
			f.blocks = append(f.blocks, Block{
				Kind:   KindOrderedListItem,
				Number: ctx.itemNumber,
				Runs:   runs,
			})
		default:
			f.blocks = append(f.blocks, Block{Kind: KindListItem, Runs: runs})
		}
	case f.quoteDepth > 0:
		f.blocks = append(f.blocks, Block{Kind: KindQuote, Runs: runs})
	default:
		f.blocks = append(f.blocks, Block{Kind: KindParagraph, Runs: runs})
	}
}

// emitFootnoteRef flushes any pending runs and emits a standalone
// reference block. The display index is assigned on first encounter,
// giving reference-order numbering.
func (f *folder) emitFootnoteRef(id int) {
	label, ok := f.labelByID[id]
	if !ok {
		return
	}

	idx, seen := f.displayIndex[label]
	if !seen {
		idx = len(f.displayIndex) + 1
		f.displayIndex[label] = idx
	}

	f.flushRuns()
	f.blocks = append(f.blocks, Block{
		Kind:         KindFootnoteRef,
		Label:        label,
		DisplayIndex: idx,
	})
}

func (f *folder) blockLines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(f.source))
	}
	return sb.String()
}

func cellAlignment(a east.Alignment) Alignment {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}
