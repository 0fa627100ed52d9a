package editor

import (
	"github.com/dshills/redit/internal/engine/text"
	"github.com/dshills/redit/internal/renderer/viewport"
)

// WriteChar types ch at the cursor, replacing any selection. While a
// prompt is open the character goes to the prompt instead. A line
// terminator behaves like Return.
func (e *Editor) WriteChar(ch rune) {
	if e.prompt != nil {
		e.prompt.AddChar(ch)
		return
	}
	if text.IsTerminator(ch) {
		e.Return()
		return
	}

	e.removeSelection()
	p := e.settle()
	e.buf.InsertChar(p.Row, p.Col, ch)
	e.disarm()
	e.view.Move(viewport.Absolute(p.Col+1, p.Row), false, e.buf)
}

// WriteString types every character of s.
func (e *Editor) WriteString(s string) {
	for _, ch := range s {
		e.WriteChar(ch)
	}
}

// DeleteChar deletes the selection, or the character under the cursor.
// At the end of a line the next line is joined on.
func (e *Editor) DeleteChar() {
	if e.prompt != nil {
		return
	}
	if e.removeSelection() {
		return
	}
	p := e.settle()
	if e.buf.DeleteChar(p.Row, p.Col) {
		e.disarm()
	}
	e.view.Scroll(e.buf)
}

// Backspace deletes the selection, or the character before the cursor.
// At the start of a line the line is joined onto the previous one.
func (e *Editor) Backspace() {
	if e.prompt != nil {
		e.prompt.RemoveChar()
		return
	}
	if e.removeSelection() {
		return
	}
	p := e.settle()
	if p.Col == 0 && p.Row == 0 {
		return
	}
	e.view.Move(viewport.Relative(-1, 0), false, e.buf)
	p = e.view.Cursor()
	if e.buf.DeleteChar(p.Row, p.Col) {
		e.disarm()
	}
	e.view.Scroll(e.buf)
}

// Return replaces any selection with a line break at the cursor and moves
// to the start of the new line. While a prompt is open it answers the
// prompt.
func (e *Editor) Return() error {
	if e.prompt != nil {
		return e.ConfirmPrompt()
	}

	e.removeSelection()
	p := e.settle()
	e.buf.SplitLine(p.Row, p.Col)
	e.disarm()
	e.view.Move(viewport.Relative(0, 1), false, e.buf)
	e.view.Move(viewport.Home(), false, e.buf)
	return nil
}

// Copy returns the selected text as line fragments, or nil without a
// selection.
func (e *Editor) Copy() []text.Line {
	start, end, ok := e.view.Selection()
	if !ok {
		return nil
	}
	return e.buf.Region(start, end)
}

// Cut removes the selection and returns it.
func (e *Editor) Cut() []text.Line {
	if e.prompt != nil {
		return nil
	}
	lines := e.Copy()
	e.removeSelection()
	return lines
}

// Paste replaces any selection with lines and leaves the cursor after the
// inserted text.
func (e *Editor) Paste(lines []text.Line) {
	if e.prompt != nil || len(lines) == 0 {
		return
	}
	e.removeSelection()
	p := e.view.Cursor()
	end := e.buf.InsertRegion(p, lines)
	if end != p {
		e.disarm()
	}
	e.view.Move(viewport.Absolute(end.Col, end.Row), false, e.buf)
}

// Undo reverts the last edit and moves the cursor to where it happened.
// Returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if e.prompt != nil {
		return false
	}
	p, ok := e.buf.Undo()
	if !ok {
		e.SetMessage("Nothing to undo.")
		return false
	}
	e.disarm()
	e.log.Debug("undo to history index %d", e.buf.HistoryIndex())
	e.view.Move(viewport.Absolute(p.Col, p.Row), false, e.buf)
	return true
}

// Redo reapplies the last undone edit. Returns false when there is
// nothing to redo.
func (e *Editor) Redo() bool {
	if e.prompt != nil {
		return false
	}
	p, ok := e.buf.Redo()
	if !ok {
		e.SetMessage("Nothing to redo.")
		return false
	}
	e.disarm()
	e.log.Debug("redo to history index %d", e.buf.HistoryIndex())
	e.view.Move(viewport.Absolute(p.Col, p.Row), false, e.buf)
	return true
}

// removeSelection deletes the selected text, clears the selection and
// puts the cursor at its start. Returns false without a selection.
func (e *Editor) removeSelection() bool {
	start, end, ok := e.view.Selection()
	if !ok {
		return false
	}
	e.buf.RemoveRegion(start, end)
	if start != end {
		e.disarm()
	}
	e.view.Move(viewport.Absolute(start.Col, start.Row), false, e.buf)
	return true
}

// settle pulls a cursor that sits inside a line terminator back to the
// clean end of its line and returns the resulting position.
func (e *Editor) settle() text.Position {
	p := e.view.Cursor()
	if n := e.buf.Line(p.Row).CleanLen(); p.Col > n {
		e.view.Move(viewport.Absolute(n, p.Row), false, e.buf)
		p = e.view.Cursor()
	}
	return p
}

// disarm drops a pending unsaved-changes confirmation along with its
// message.
func (e *Editor) disarm() {
	if e.pending != RequestNone {
		e.pending = RequestNone
		e.message = ""
	}
}
