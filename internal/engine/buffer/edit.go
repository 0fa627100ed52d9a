package buffer

import (
	"slices"

	"github.com/dshills/redit/internal/engine/history"
	"github.com/dshills/redit/internal/engine/text"
)

// InsertChar inserts ch before column col of line row.
// The column is clamped to the clean length of the line. A terminator
// character splits the line instead.
func (b *Buffer) InsertChar(row, col int, ch rune) {
	row = b.clampRow(row)
	col = clamp(col, 0, b.lines[row].CleanLen())
	if text.IsTerminator(ch) {
		b.SplitLine(row, col)
		return
	}
	b.insertChar(row, col, string(ch))
	b.record(history.InsertChar{Row: row, Col: col, Char: ch})
}

// DeleteChar deletes the character at column col of line row.
// At or past the clean end of the line the next line is joined onto it.
// Returns false when there is nothing to delete.
func (b *Buffer) DeleteChar(row, col int) bool {
	row = b.clampRow(row)
	line := b.lines[row]
	col = clamp(col, 0, line.RawLen())

	if col < line.CleanLen() {
		ch, _ := line.At(col)
		b.deleteChar(row, col)
		b.record(history.DeleteChar{Row: row, Col: col, Char: ch})
		return true
	}

	if row+1 < len(b.lines) {
		at := line.CleanLen()
		ending := line.Ending()
		b.joinAt(row, at)
		b.record(history.JoinLine{Row: row, Col: at, Ending: ending})
		return true
	}

	return false
}

// SplitLine breaks line row before column col. The head keeps the line's
// terminator; an unterminated line gets the buffer's line ending.
func (b *Buffer) SplitLine(row, col int) {
	row = b.clampRow(row)
	line := b.lines[row]
	col = clamp(col, 0, line.CleanLen())

	ending := line.Ending()
	if ending == "" {
		ending = b.lineEnding.Sequence()
	}
	b.splitAt(row, col, ending)
	b.record(history.SplitLine{Row: row, Col: col, Ending: ending})
}

func (b *Buffer) insertChar(row, col int, ch string) {
	row = b.clampRow(row)
	b.lines[row] = b.lines[row].Insert(col, ch)
}

func (b *Buffer) deleteChar(row, col int) {
	row = b.clampRow(row)
	b.lines[row] = b.lines[row].Remove(col, col+1)
}

// splitAt replaces line row with its first col characters plus ending,
// followed by a new line holding the rest of the raw content.
func (b *Buffer) splitAt(row, col int, ending string) {
	row = b.clampRow(row)
	line := b.lines[row]
	head := text.NewLine(line.Prefix(col) + ending)
	tail := text.NewLine(line.Suffix(col))
	b.lines[row] = head
	b.lines = slices.Insert(b.lines, row+1, tail)
}

// joinAt replaces line row with its first col characters followed by the
// raw content of line row+1, then removes line row+1.
func (b *Buffer) joinAt(row, col int) {
	row = b.clampRow(row)
	if row+1 >= len(b.lines) {
		return
	}
	merged := text.NewLine(b.lines[row].Prefix(col) + b.lines[row+1].Raw())
	b.lines[row] = merged
	b.lines = slices.Delete(b.lines, row+1, row+2)
}
