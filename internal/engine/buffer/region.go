package buffer

import (
	"slices"
	"unicode/utf8"

	"github.com/dshills/redit/internal/engine/history"
	"github.com/dshills/redit/internal/engine/text"
)

// Region returns the text between start and end without modifying the
// buffer. Positions are clamped and ordered. A single-row region yields one
// fragment; otherwise the result is the tail of the first row, every full
// row in between, and the head of the last row.
func (b *Buffer) Region(start, end text.Position) []text.Line {
	start, end = text.Order(b.clampPos(start), b.clampPos(end))
	return b.region(start, end)
}

// InsertRegion inserts lines at start and returns the position just after
// the inserted text.
//
// With one fragment the text is spliced into the target line. With N
// fragments the target line is split at start: its head is followed by
// fragment 0, fragments 1..N-2 become whole lines, and fragment N-1 is
// followed by the rest of the target line. A single fragment that ends in a
// terminator is treated as that fragment followed by an empty one.
//
// The document text stays byte-exact, but the line structure may differ
// from the one the fragments were cut from: pasting a lone "\n" taken from
// inside a "\r\n" terminator leaves an empty line behind the rejoined
// terminator.
func (b *Buffer) InsertRegion(start text.Position, lines []text.Line) text.Position {
	start = b.clampPos(start)
	lines = normalizeFragments(lines)
	if len(lines) == 0 || (len(lines) == 1 && lines[0].Raw() == "") {
		return start
	}

	end := b.insertRegion(start, lines)
	b.record(history.InsertRegion{Start: start, End: end, Lines: lines})
	return end
}

// RemoveRegion deletes the text between start and end.
// Positions are clamped and ordered; an empty region is a no-op.
func (b *Buffer) RemoveRegion(start, end text.Position) {
	start, end = text.Order(b.clampPos(start), b.clampPos(end))
	if start == end {
		return
	}

	removed := b.region(start, end)
	b.removeRegion(start, end)
	b.record(history.RemoveRegion{Start: start, End: end, Removed: removed})
}

func (b *Buffer) region(start, end text.Position) []text.Line {
	if start.Row == end.Row {
		return []text.Line{text.NewLine(b.lines[start.Row].Slice(start.Col, end.Col))}
	}

	out := make([]text.Line, 0, end.Row-start.Row+1)
	out = append(out, text.NewLine(b.lines[start.Row].Suffix(start.Col)))
	out = append(out, b.lines[start.Row+1:end.Row]...)
	out = append(out, text.NewLine(b.lines[end.Row].Prefix(end.Col)))
	return out
}

// insertRegion splices fragments verbatim at a clamped start position.
func (b *Buffer) insertRegion(start text.Position, lines []text.Line) text.Position {
	row := start.Row
	target := b.lines[row]
	head := target.Prefix(start.Col)
	tail := target.Suffix(start.Col)

	switch len(lines) {
	case 0:
		return start
	case 1:
		frag := lines[0].Raw()
		b.lines[row] = text.NewLine(head + frag + tail)
		return text.Pos(start.Col+utf8.RuneCountInString(frag), row)
	}

	n := len(lines)
	last := lines[n-1].Raw()
	repl := make([]text.Line, 0, n)
	repl = append(repl, text.NewLine(head+lines[0].Raw()))
	repl = append(repl, lines[1:n-1]...)
	repl = append(repl, text.NewLine(last+tail))
	b.lines = slices.Replace(b.lines, row, row+1, repl...)
	return text.Pos(utf8.RuneCountInString(last), row+n-1)
}

// removeRegion deletes between ordered, clamped positions.
func (b *Buffer) removeRegion(start, end text.Position) {
	if start.Row == end.Row {
		b.lines[start.Row] = b.lines[start.Row].Remove(start.Col, end.Col)
		return
	}

	merged := text.NewLine(b.lines[start.Row].Prefix(start.Col) + b.lines[end.Row].Suffix(end.Col))
	b.lines = slices.Replace(b.lines, start.Row, end.Row+1, merged)
}

// normalizeFragments copies lines, expanding a lone terminated fragment so
// that no terminator lands in the middle of a line.
func normalizeFragments(lines []text.Line) []text.Line {
	out := slices.Clone(lines)
	if len(out) == 1 && out[0].IsTerminated() {
		out = append(out, text.NewLine(""))
	}
	return out
}
