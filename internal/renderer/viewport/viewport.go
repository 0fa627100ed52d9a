// Package viewport tracks the cursor, the selection anchor and the visible
// window of a buffer.
//
// A Viewport resolves Movement requests against a Lines source through
// small pure functions, then recomputes the rendered cursor column, the
// scroll offsets and the gutter width so the cursor stays visible.
//
// Visible text rows are [RowOffset, RowOffset+ScreenRows] and visible
// rendered columns are [ColOffset, ColOffset+ScreenCols], both inclusive.
package viewport

import (
	"strings"

	"github.com/dshills/redit/internal/engine/text"
	"github.com/dshills/redit/internal/renderer/gutter"
	"github.com/dshills/redit/internal/renderer/layout"
)

// BottomGutter is the number of terminal rows reserved below the text for
// the status line and the message line.
const BottomGutter = 2

// Lines is the read-only view of a buffer the viewport needs.
type Lines interface {
	LineCount() int
	Line(row int) text.Line
}

// Viewport is the cursor and scroll state of one editor session.
// It is not safe for concurrent use.
type Viewport struct {
	cx, cy       int
	hx, hy       int
	highlighting bool

	rowOffset int
	colOffset int
	rx        int

	width       int
	height      int
	screenRows  int
	screenCols  int
	gutterWidth int

	tabs *layout.TabExpander
}

// New creates a viewport for a terminal of the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height, tabWidth int) *Viewport {
	v := &Viewport{tabs: layout.NewTabExpander(tabWidth)}
	v.setSize(width, height)
	return v
}

// Resize updates the terminal size and re-derives the scroll state.
func (v *Viewport) Resize(width, height int, lines Lines) {
	v.setSize(width, height)
	v.Scroll(lines)
}

func (v *Viewport) setSize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.screenRows = max(v.height-BottomGutter-1, 0)
	v.screenCols = max(v.width-v.gutterWidth-1, 0)
}

// SetTabWidth changes the tab width used for rendered columns.
func (v *Viewport) SetTabWidth(width int, lines Lines) {
	v.tabs.SetTabWidth(width)
	v.Scroll(lines)
}

// TabWidth returns the tab width used for rendered columns.
func (v *Viewport) TabWidth() int {
	return v.tabs.TabWidth()
}

// Tabs returns the tab expander shared with the renderer.
func (v *Viewport) Tabs() *layout.TabExpander {
	return v.tabs
}

// Cursor returns the logical cursor position.
func (v *Viewport) Cursor() text.Position {
	return text.Pos(v.cx, v.cy)
}

// Anchor returns the selection anchor. Only meaningful while Highlighting.
func (v *Viewport) Anchor() text.Position {
	return text.Pos(v.hx, v.hy)
}

// Highlighting reports whether a selection is active.
func (v *Viewport) Highlighting() bool {
	return v.highlighting
}

// RX returns the rendered column of the cursor.
func (v *Viewport) RX() int { return v.rx }

// RowOffset returns the first visible row.
func (v *Viewport) RowOffset() int { return v.rowOffset }

// ColOffset returns the first visible rendered column.
func (v *Viewport) ColOffset() int { return v.colOffset }

// ScreenRows returns the index of the last visible row relative to RowOffset.
func (v *Viewport) ScreenRows() int { return v.screenRows }

// ScreenCols returns the index of the last visible column relative to ColOffset.
func (v *Viewport) ScreenCols() int { return v.screenCols }

// GutterWidth returns the width of the line number gutter.
func (v *Viewport) GutterWidth() int { return v.gutterWidth }

// Size returns the terminal size the viewport was laid out for.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// ScreenCursor returns the terminal cell of the cursor.
func (v *Viewport) ScreenCursor() (x, y int) {
	return v.rx - v.colOffset + v.gutterWidth, v.cy - v.rowOffset
}

// VisibleRows returns the first and last buffer rows on screen.
func (v *Viewport) VisibleRows(lines Lines) (first, last int) {
	last = min(v.rowOffset+v.screenRows, lines.LineCount()-1)
	return v.rowOffset, last
}

// Selection returns the normalized selection. ok is false when no
// selection is active.
func (v *Viewport) Selection() (start, end text.Position, ok bool) {
	if !v.highlighting {
		return text.Position{}, text.Position{}, false
	}
	start, end = text.Order(v.Cursor(), v.Anchor())
	return start, end, true
}

// ClearSelection leaves highlight mode without moving the cursor.
func (v *Viewport) ClearSelection() {
	v.highlighting = false
}

// Move applies m. When highlight is true and no selection is active, the
// anchor is set to the cursor before moving; when false, any selection is
// dropped.
func (v *Viewport) Move(m Movement, highlight bool, lines Lines) {
	switch {
	case highlight && !v.highlighting:
		v.hx, v.hy = v.cx, v.cy
		v.highlighting = true
	case !highlight && v.highlighting:
		v.highlighting = false
	}

	s := resolve(v.state(), m, v.env(lines))
	v.cx, v.cy = s.cx, s.cy
	v.rowOffset, v.colOffset = s.rowOffset, s.colOffset
	v.Scroll(lines)
}

// Scroll recomputes the rendered column, the scroll offsets and the gutter
// width after the cursor or the buffer changed.
func (v *Viewport) Scroll(lines Lines) {
	last := lines.LineCount() - 1
	v.cy = clamp(v.cy, 0, last)
	line := lines.Line(v.cy)
	v.cx = clamp(v.cx, 0, line.RawLen())
	if v.highlighting {
		v.hy = clamp(v.hy, 0, last)
		v.hx = clamp(v.hx, 0, lines.Line(v.hy).RawLen())
	}

	v.rx = v.tabs.Width(strings.TrimRight(line.Prefix(v.cx), "\r\n"))

	v.rowOffset = clamp(v.rowOffset, 0, last)
	if v.cy < v.rowOffset {
		v.rowOffset = v.cy
	}
	if v.cy-v.rowOffset > v.screenRows {
		v.rowOffset = v.cy - v.screenRows
	}

	v.updateGutter(lines.LineCount())

	if v.rx < v.colOffset {
		v.colOffset = v.rx
	}
	if v.rx-v.colOffset > v.screenCols {
		v.colOffset = v.rx - v.screenCols
	}
}

// updateGutter recomputes the gutter width and gives the difference back
// to, or takes it from, the text columns.
func (v *Viewport) updateGutter(lineCount int) {
	w := gutter.Width(v.rowOffset, v.screenRows, lineCount)
	v.screenCols = max(v.width-w-1, 0)
	v.gutterWidth = w
}

func (v *Viewport) state() cursorState {
	return cursorState{cx: v.cx, cy: v.cy, rowOffset: v.rowOffset, colOffset: v.colOffset}
}

func (v *Viewport) env(lines Lines) moveEnv {
	return moveEnv{
		lines:       lines,
		screenRows:  v.screenRows,
		gutterWidth: v.gutterWidth,
		tabs:        v.tabs,
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
