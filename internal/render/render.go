// Package render turns parsed preview blocks into styled terminal
// output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/aster/internal/markdown"
)

const defaultWidth = 80

// Renderer renders preview blocks as ANSI-styled text.
type Renderer struct {
	width int

	heading lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	code    lipgloss.Style
	strike  lipgloss.Style
	link    lipgloss.Style
	muted   lipgloss.Style
	quote   lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width.
func WithWidth(w int) Option {
	return func(r *Renderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// New creates a renderer with the default styles.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:   defaultWidth,
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		code:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		strike:  lipgloss.NewStyle().Strikethrough(true),
		link:    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("14")),
		muted:   lipgloss.NewStyle().Faint(true),
		quote:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders the main blocks followed by the footnote definitions.
func (r *Renderer) Render(res markdown.Result) string {
	var sb strings.Builder

	for _, b := range res.Blocks {
		r.renderBlock(&sb, b)
	}

	if len(res.Footnotes) > 0 {
		sb.WriteString(r.muted.Render("---"))
		sb.WriteString("\n")
		for _, fn := range res.Footnotes {
			sb.WriteString(fmt.Sprintf("[%d] %s\n", fn.DisplayIndex, r.inline(fn.Runs)))
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func (r *Renderer) renderBlock(sb *strings.Builder, b markdown.Block) {
	switch b.Kind {
	case markdown.KindHeading:
		marker := strings.Repeat("#", b.Level)
		sb.WriteString(r.heading.Render(marker + " " + r.inline(b.Runs)))
		sb.WriteString("\n\n")

	case markdown.KindParagraph:
		sb.WriteString(r.wrap(r.inline(b.Runs)))
		sb.WriteString("\n\n")

	case markdown.KindListItem:
		sb.WriteString("  • " + r.inline(b.Runs))
		sb.WriteString("\n")

	case markdown.KindOrderedListItem:
		sb.WriteString(fmt.Sprintf("  %d. %s", b.Number, r.inline(b.Runs)))
		sb.WriteString("\n")

	case markdown.KindTaskListItem:
		box := "[ ]"
		if b.Checked {
			box = "[x]"
		}
		sb.WriteString("  " + box + " " + r.inline(b.Runs))
		sb.WriteString("\n")

	case markdown.KindQuote:
		gutter := r.quote.Render("│ ")
		sb.WriteString(gutter + r.inline(b.Runs))
		sb.WriteString("\n\n")

	case markdown.KindCodeBlock:
		if b.Language != "" {
			sb.WriteString(r.muted.Render(b.Language))
			sb.WriteString("\n")
		}
		gutter := r.muted.Render("│") + " "
		for _, line := range strings.Split(strings.TrimRight(b.Code, "\n"), "\n") {
			sb.WriteString(gutter + line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")

	case markdown.KindImage:
		alt := b.Alt
		if alt == "" {
			alt = b.Src
		}
		sb.WriteString(r.muted.Render("[image: "+alt+"]") + " " + r.link.Render(b.Src))
		sb.WriteString("\n\n")

	case markdown.KindTable:
		r.renderTable(sb, b)
		sb.WriteString("\n")

	case markdown.KindFootnoteRef:
		sb.WriteString(r.muted.Render(fmt.Sprintf("[%d]", b.DisplayIndex)))
		sb.WriteString("\n")

	case markdown.KindFootnoteDef:
		sb.WriteString(fmt.Sprintf("[%d] %s", b.DisplayIndex, r.inline(b.Runs)))
		sb.WriteString("\n")
	}
}

func (r *Renderer) renderTable(sb *strings.Builder, b markdown.Block) {
	// Cell text per row, then pad columns to equal width.
	cells := make([][]string, len(b.Rows))
	widths := make([]int, 0)
	for i, row := range b.Rows {
		cells[i] = make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			text := r.plainInline(cell)
			cells[i][j] = text
			for len(widths) <= j {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(text); w > widths[j] {
				widths[j] = w
			}
		}
	}

	for i, row := range cells {
		parts := make([]string, len(row))
		for j, text := range row {
			parts[j] = pad(text, widths[j], alignAt(b.Alignments, j))
		}
		line := "| " + strings.Join(parts, " | ") + " |"
		if i < len(b.Rows) && b.Rows[i].Header {
			line = r.bold.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func alignAt(aligns []markdown.Alignment, i int) markdown.Alignment {
	if i < len(aligns) {
		return aligns[i]
	}
	return markdown.AlignNone
}

func pad(text string, width int, align markdown.Alignment) string {
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case markdown.AlignRight:
		return strings.Repeat(" ", gap) + text
	case markdown.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

// inline renders a run sequence with its styles applied.
func (r *Renderer) inline(runs []markdown.InlineRun) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(r.styleRun(run))
	}
	return sb.String()
}

// plainInline renders runs without styling, for width measurement
// contexts like table cells.
func (r *Renderer) plainInline(runs []markdown.InlineRun) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

func (r *Renderer) styleRun(run markdown.InlineRun) string {
	text := run.Text
	if run.Code {
		return r.code.Render("`" + text + "`")
	}
	if run.Bold {
		text = r.bold.Render(text)
	}
	if run.Italic {
		text = r.italic.Render(text)
	}
	if run.Strikethrough {
		text = r.strike.Render(text)
	}
	if run.Link != "" {
		text = r.link.Render(text)
	}
	return text
}

func (r *Renderer) wrap(text string) string {
	return lipgloss.NewStyle().Width(r.width).Render(text)
}
