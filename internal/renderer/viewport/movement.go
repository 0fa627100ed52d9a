package viewport

import (
	"fmt"

	"github.com/dshills/redit/internal/renderer/layout"
)

// MoveKind identifies a cursor movement.
type MoveKind uint8

const (
	MoveBegFile MoveKind = iota
	MoveEndFile
	MoveHome
	MoveEnd
	MovePageUp
	MovePageDown
	MoveScrollUp
	MoveScrollDown
	MoveAbsolute
	MoveAbsoluteScreen
	MoveRelative
)

// Movement is a cursor movement request. X and Y carry the deltas,
// coordinates or line counts the kind needs.
type Movement struct {
	Kind MoveKind
	X, Y int
}

// BegFile moves to the first character of the buffer.
func BegFile() Movement { return Movement{Kind: MoveBegFile} }

// EndFile moves to the end of the last line.
func EndFile() Movement { return Movement{Kind: MoveEndFile} }

// Home moves to the start of the line.
func Home() Movement { return Movement{Kind: MoveHome} }

// End moves to the clean end of the line.
func End() Movement { return Movement{Kind: MoveEnd} }

// PageUp moves one screen up.
func PageUp() Movement { return Movement{Kind: MovePageUp} }

// PageDown moves one screen down.
func PageDown() Movement { return Movement{Kind: MovePageDown} }

// ScrollUp scrolls the view n rows up, dragging the cursor along if needed.
func ScrollUp(n int) Movement { return Movement{Kind: MoveScrollUp, Y: n} }

// ScrollDown scrolls the view n rows down, dragging the cursor along if needed.
func ScrollDown(n int) Movement { return Movement{Kind: MoveScrollDown, Y: n} }

// Absolute moves to column x of row y, clamped to the raw line length.
func Absolute(x, y int) Movement { return Movement{Kind: MoveAbsolute, X: x, Y: y} }

// AbsoluteScreen moves to the text under terminal cell (x, y).
func AbsoluteScreen(x, y int) Movement { return Movement{Kind: MoveAbsoluteScreen, X: x, Y: y} }

// Relative moves dx characters and dy rows.
func Relative(dx, dy int) Movement { return Movement{Kind: MoveRelative, X: dx, Y: dy} }

// String returns a readable form of the movement.
func (m Movement) String() string {
	switch m.Kind {
	case MoveBegFile:
		return "BegFile"
	case MoveEndFile:
		return "EndFile"
	case MoveHome:
		return "Home"
	case MoveEnd:
		return "End"
	case MovePageUp:
		return "PageUp"
	case MovePageDown:
		return "PageDown"
	case MoveScrollUp:
		return fmt.Sprintf("ScrollUp(%d)", m.Y)
	case MoveScrollDown:
		return fmt.Sprintf("ScrollDown(%d)", m.Y)
	case MoveAbsolute:
		return fmt.Sprintf("Absolute(%d,%d)", m.X, m.Y)
	case MoveAbsoluteScreen:
		return fmt.Sprintf("AbsoluteScreen(%d,%d)", m.X, m.Y)
	case MoveRelative:
		return fmt.Sprintf("Relative(%d,%d)", m.X, m.Y)
	default:
		return "Unknown"
	}
}

// cursorState is the part of the viewport a movement may change.
type cursorState struct {
	cx, cy    int
	rowOffset int
	colOffset int
}

// moveEnv is the read-only context a movement is resolved in.
type moveEnv struct {
	lines       Lines
	screenRows  int
	gutterWidth int
	tabs        *layout.TabExpander
}

func (e moveEnv) lastRow() int {
	return e.lines.LineCount() - 1
}

func (e moveEnv) cleanLen(row int) int {
	return e.lines.Line(row).CleanLen()
}

func (e moveEnv) rawLen(row int) int {
	return e.lines.Line(row).RawLen()
}

// resolve computes the state after m.
func resolve(s cursorState, m Movement, e moveEnv) cursorState {
	switch m.Kind {
	case MoveBegFile:
		return cursorState{}
	case MoveEndFile:
		s.cy = e.lastRow()
		return end(s, e)
	case MoveHome:
		return home(s)
	case MoveEnd:
		return end(s, e)
	case MovePageUp:
		return pageUp(s, e)
	case MovePageDown:
		return pageDown(s, e)
	case MoveScrollUp:
		return scrollBy(s, e, -m.Y)
	case MoveScrollDown:
		return scrollBy(s, e, m.Y)
	case MoveAbsolute:
		return absolute(s, e, m.X, m.Y)
	case MoveAbsoluteScreen:
		return absoluteScreen(s, e, m.X, m.Y)
	case MoveRelative:
		return relative(s, e, m.X, m.Y)
	}
	return s
}

func home(s cursorState) cursorState {
	s.cx = 0
	s.colOffset = 0
	return s
}

func end(s cursorState, e moveEnv) cursorState {
	s.cx = e.cleanLen(s.cy)
	return s
}

// relative applies the vertical part of a move before the horizontal part.
func relative(s cursorState, e moveEnv, dx, dy int) cursorState {
	if dy != 0 {
		s = vertical(s, e, dy)
	}
	if dx != 0 {
		s = horizontal(s, e, dx)
	}
	return s
}

func vertical(s cursorState, e moveEnv, dy int) cursorState {
	s.cy = clamp(s.cy+dy, 0, e.lastRow())
	if s.cx > e.cleanLen(s.cy) {
		s = end(s, e)
	}
	return s
}

// horizontal moves within the line, wrapping to the end of the previous
// line or the start of the next one.
func horizontal(s cursorState, e moveEnv, dx int) cursorState {
	if dx < 0 {
		if s.cx+dx < 0 && s.cy > 0 {
			return end(vertical(s, e, -1), e)
		}
		s.cx = max(s.cx+dx, 0)
		return s
	}

	n := e.cleanLen(s.cy)
	if s.cx+dx > n && s.cy < e.lastRow() {
		return home(vertical(s, e, 1))
	}
	s.cx = min(s.cx+dx, n)
	return s
}

// follow keeps the cursor row inside the visible rows.
func follow(s cursorState, e moveEnv) cursorState {
	if s.cy < s.rowOffset {
		s.rowOffset = s.cy
	}
	if s.cy-s.rowOffset > e.screenRows {
		s.rowOffset = s.cy - e.screenRows
	}
	return s
}

// pageUp jumps a screen up. When a full screen of rows exists above, the
// cursor keeps its offset from the top of the screen; otherwise it lands
// on the first row.
func pageUp(s cursorState, e moveEnv) cursorState {
	rel := s.cy - s.rowOffset
	keep := s.rowOffset >= e.screenRows

	s.cy = s.rowOffset
	s = follow(vertical(s, e, -e.screenRows), e)
	if keep {
		s = follow(vertical(s, e, rel), e)
	}
	return s
}

// pageDown jumps a screen down. Unless the bottom of the screen is already
// the last row, the cursor keeps its offset from the top of the screen.
func pageDown(s cursorState, e moveEnv) cursorState {
	rel := s.cy - s.rowOffset

	s.cy = min(s.rowOffset+e.screenRows, e.lastRow())
	keep := s.cy < e.lastRow()
	s = follow(vertical(s, e, e.screenRows), e)
	if keep {
		s = follow(vertical(s, e, -(e.screenRows-rel)), e)
	}
	return s
}

// scrollBy moves the row offset by n and pulls the cursor into view.
func scrollBy(s cursorState, e moveEnv, n int) cursorState {
	s.rowOffset = clamp(s.rowOffset+n, 0, e.lastRow())
	switch {
	case s.cy < s.rowOffset:
		s.cy = s.rowOffset
	case s.cy > s.rowOffset+e.screenRows:
		s.cy = s.rowOffset + e.screenRows
	default:
		return s
	}
	if s.cx > e.cleanLen(s.cy) {
		s = end(s, e)
	}
	return s
}

func absolute(s cursorState, e moveEnv, x, y int) cursorState {
	s.cy = clamp(y, 0, e.lastRow())
	s.cx = clamp(x, 0, e.rawLen(s.cy))
	return s
}

// absoluteScreen maps a terminal cell to a buffer position. The column is
// translated through the gutter, the horizontal scroll and tab expansion,
// and lands at most on the clean end of the line.
func absoluteScreen(s cursorState, e moveEnv, x, y int) cursorState {
	s.cy = clamp(s.rowOffset+y, 0, e.lastRow())
	col := max(x-e.gutterWidth, 0) + s.colOffset
	s.cx = e.tabs.ColumnToIndex(e.lines.Line(s.cy).Clean(), col)
	return s
}
