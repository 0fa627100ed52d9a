package renderer

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/redit/internal/editor"
	"github.com/dshills/redit/internal/engine/text"
	"github.com/dshills/redit/internal/renderer/backend"
	"github.com/dshills/redit/internal/renderer/gutter"
	"github.com/dshills/redit/internal/renderer/highlight"
	"github.com/dshills/redit/internal/renderer/layout"
)

// Options configures the renderer.
type Options struct {
	// Syntax enables syntax colouring.
	Syntax bool
	// Theme is a chroma style name.
	Theme string
}

// Tabs describes the tab bar state shown on the status line.
type Tabs struct {
	Index int // 0-based index of the shown session
	Count int
}

// Renderer draws sessions onto a backend.
type Renderer struct {
	backend backend.Backend
	opts    Options

	gutterStyle backend.Style
	statusStyle backend.Style

	// highlighters by file path
	highlighters map[string]*highlight.Highlighter
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		backend:      b,
		opts:         opts,
		gutterStyle:  backend.StyleDefault.Dim(true),
		statusStyle:  backend.StyleDefault.Reverse(true),
		highlighters: make(map[string]*highlight.Highlighter),
	}
}

// Render draws a full frame for e and shows it.
func (r *Renderer) Render(e *editor.Editor, tabs Tabs) {
	r.backend.Clear()

	v := e.View()
	buf := e.Buffer()
	width, height := r.backend.Size()
	base := backend.StyleDefault

	var spans [][]highlight.Span
	if r.opts.Syntax && e.Path() != "" {
		h := r.highlighter(e.Path())
		base = h.Base()
		spans = h.Highlight(buf.Lines())
	}

	selStart, selEnd, selecting := v.Selection()
	first, last := v.VisibleRows(buf)
	gw := v.GutterWidth()

	for y := 0; y <= v.ScreenRows(); y++ {
		r.fill(y, width, base)
		row := first + y
		if row > last {
			continue
		}
		r.drawString(0, y, gutter.Format(row, gw), r.gutterStyle)

		var lineSpans []highlight.Span
		if row < len(spans) {
			lineSpans = spans[row]
		}
		sel := selectionRange{}
		if selecting {
			sel = selectedCols(row, buf.Line(row), selStart, selEnd)
		}
		r.drawLine(y, gw, buf.Line(row), v.ColOffset(), v.ScreenCols(), v.Tabs(), lineSpans, base, sel)
	}

	statusY := v.ScreenRows() + 1
	if statusY < height {
		r.fill(statusY, width, r.statusStyle)
		r.drawString(0, statusY, r.statusText(e, tabs, width), r.statusStyle)
	}
	msgY := statusY + 1
	if msgY < height {
		r.fill(msgY, width, backend.StyleDefault)
		r.drawString(0, msgY, e.MessageLine(), backend.StyleDefault)
	}

	if e.PromptActive() {
		r.backend.ShowCursor(runewidth.StringWidth(e.MessageLine()), msgY)
	} else {
		x, y := v.ScreenCursor()
		r.backend.ShowCursor(x, y)
	}
	r.backend.Show()
}

// Forget drops cached state for a file, e.g. when its session closes.
func (r *Renderer) Forget(path string) {
	delete(r.highlighters, path)
}

func (r *Renderer) highlighter(path string) *highlight.Highlighter {
	h, ok := r.highlighters[path]
	if !ok {
		h = highlight.New(path, r.opts.Theme)
		r.highlighters[path] = h
	}
	return h
}

// statusText returns the status line with the tab position right-aligned.
func (r *Renderer) statusText(e *editor.Editor, tabs Tabs, width int) string {
	left := e.Status()
	if tabs.Count <= 1 {
		return left
	}
	right := fmt.Sprintf("[%d/%d]", tabs.Index+1, tabs.Count)
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}

// selectionRange is the selected part [from, to) of a line's clean
// content. to < 0 means through the end of the line.
type selectionRange struct {
	from, to int
	ok       bool
}

func (s selectionRange) contains(col int) bool {
	return s.ok && col >= s.from && (s.to < 0 || col < s.to)
}

func selectedCols(row int, line text.Line, start, end text.Position) selectionRange {
	if row < start.Row || row > end.Row {
		return selectionRange{}
	}
	from, to := 0, -1
	if row == start.Row {
		from = start.Col
	}
	if row == end.Row {
		to = min(end.Col, line.CleanLen())
	}
	return selectionRange{from: from, to: to, ok: true}
}

// drawLine draws the clean content of line into screen row y, starting at
// screen column x0, showing rendered columns [colOffset, colOffset+cols].
// Cells come from the same cluster layout the viewport measures the cursor
// with.
func (r *Renderer) drawLine(y, x0 int, line text.Line, colOffset, cols int, tabs *layout.TabExpander, spans []highlight.Span, base backend.Style, sel selectionRange) {
	tabs.Clusters(line.Clean(), func(c layout.Cluster) bool {
		if c.Cell > colOffset+cols {
			return false
		}
		style := highlight.StyleAt(spans, c.Index, base)
		if sel.contains(c.Index) {
			style = style.Reverse(true)
		}

		if c.Text == "\t" {
			for i := range c.Width {
				r.put(x0, y, c.Cell+i, colOffset, cols, " ", 1, style)
			}
		} else if c.Width > 0 {
			r.put(x0, y, c.Cell, colOffset, cols, c.Text, c.Width, style)
		}
		return true
	})
}

// put draws a cluster of width w at rendered column cell when the whole
// cluster is inside the visible columns.
func (r *Renderer) put(x0, y, cell, colOffset, cols int, cluster string, w int, style backend.Style) {
	if cell < colOffset || cell+w-1 > colOffset+cols {
		return
	}
	r.backend.SetCluster(x0+cell-colOffset, y, cluster, style)
}

func (r *Renderer) drawString(x, y int, s string, style backend.Style) {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.backend.SetCell(x, y, ch, style)
		x += w
	}
}

func (r *Renderer) fill(y, width int, style backend.Style) {
	for x := range width {
		r.backend.SetCell(x, y, ' ', style)
	}
}
