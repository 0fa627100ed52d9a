package buffer

import (
	"github.com/dshills/redit/internal/engine/history"
	"github.com/dshills/redit/internal/engine/text"
)

// Undo reverts the action left of the history index.
// Returns the position where the cursor belongs afterwards, and false if
// there was nothing to undo.
func (b *Buffer) Undo() (text.Position, bool) {
	a, ok := b.log.Undo()
	if !ok {
		return text.Position{}, false
	}
	b.dirty = true
	return b.revert(a), true
}

// Redo reapplies the action right of the history index.
// Returns the position where the cursor belongs afterwards, and false if
// there was nothing to redo.
func (b *Buffer) Redo() (text.Position, bool) {
	a, ok := b.log.Redo()
	if !ok {
		return text.Position{}, false
	}
	b.dirty = true
	return b.apply(a), true
}

// revert applies the inverse of a without logging.
func (b *Buffer) revert(a history.Action) text.Position {
	switch a := a.(type) {
	case history.InsertChar:
		b.deleteChar(a.Row, a.Col)
		return text.Pos(a.Col, a.Row)
	case history.DeleteChar:
		b.insertChar(a.Row, a.Col, a.Char)
		return text.Pos(a.Col, a.Row)
	case history.InsertRegion:
		b.removeRegion(a.Start, a.End)
		return a.Start
	case history.RemoveRegion:
		b.insertRegion(a.Start, a.Removed)
		return a.End
	case history.JoinLine:
		b.splitAt(a.Row, a.Col, a.Ending)
		return text.Pos(0, a.Row+1)
	case history.SplitLine:
		b.joinAt(a.Row, a.Col)
		return text.Pos(a.Col, a.Row)
	}
	return text.Position{}
}

// apply performs a again without logging.
func (b *Buffer) apply(a history.Action) text.Position {
	switch a := a.(type) {
	case history.InsertChar:
		b.insertChar(a.Row, a.Col, string(a.Char))
		return text.Pos(a.Col+1, a.Row)
	case history.DeleteChar:
		b.deleteChar(a.Row, a.Col)
		return text.Pos(a.Col, a.Row)
	case history.InsertRegion:
		return b.insertRegion(a.Start, a.Lines)
	case history.RemoveRegion:
		b.removeRegion(a.Start, a.End)
		return a.Start
	case history.JoinLine:
		b.joinAt(a.Row, a.Col)
		return text.Pos(a.Col, a.Row)
	case history.SplitLine:
		b.splitAt(a.Row, a.Col, a.Ending)
		return text.Pos(0, a.Row+1)
	}
	return text.Position{}
}
