package buffer

import (
	"io"
	"slices"

	"github.com/dshills/redit/internal/engine/history"
	"github.com/dshills/redit/internal/engine/text"
)

// Buffer is an ordered, never-empty sequence of lines with an action log.
type Buffer struct {
	lines      []text.Line
	log        *history.Log
	dirty      bool
	lineEnding text.LineEnding
	endingSet  bool
}

// New creates a buffer holding lines. An empty slice yields a single empty
// line.
func New(lines []text.Line, opts ...Option) *Buffer {
	b := &Buffer{
		lines: slices.Clone(lines),
		log:   history.NewLog(),
	}
	if len(b.lines) == 0 {
		b.lines = []text.Line{text.NewLine("")}
	}
	for _, opt := range opts {
		opt(b)
	}
	if !b.endingSet {
		b.lineEnding = text.DetectLineEnding(b.lines)
	}
	return b
}

// NewFromString creates a buffer from document text.
func NewFromString(s string, opts ...Option) *Buffer {
	return New(text.SplitLines(s), opts...)
}

// FromReader creates a buffer from everything readable from r.
// Every line keeps its original terminator.
func FromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data), opts...), nil
}

// WriteTo writes the exact document text to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, l := range b.lines {
		m, err := io.WriteString(w, l.Raw())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// String returns the exact document text.
func (b *Buffer) String() string {
	return text.Join(b.lines)
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LastRow returns the index of the last line.
func (b *Buffer) LastRow() int {
	return len(b.lines) - 1
}

// Line returns the line at row, clamped to the buffer.
func (b *Buffer) Line(row int) text.Line {
	return b.lines[b.clampRow(row)]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []text.Line {
	return slices.Clone(b.lines)
}

// LineEnding returns the terminator used when splitting an unterminated line.
func (b *Buffer) LineEnding() text.LineEnding {
	return b.lineEnding
}

// CheckPosition returns a *BoundsError if p is not addressable.
// Columns may range up to the raw length of the line.
func (b *Buffer) CheckPosition(p text.Position) error {
	if p.Row < 0 || p.Row >= len(b.lines) {
		return &BoundsError{Pos: p, Rows: len(b.lines), RowLen: -1}
	}
	if n := b.lines[p.Row].RawLen(); p.Col < 0 || p.Col > n {
		return &BoundsError{Pos: p, Rows: len(b.lines), RowLen: n}
	}
	return nil
}

// Dirty reports whether the buffer changed since it was created or saved.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkSaved clears the dirty flag.
func (b *Buffer) MarkSaved() {
	b.dirty = false
}

// CanUndo returns true if there is an action to undo.
func (b *Buffer) CanUndo() bool {
	return b.log.CanUndo()
}

// HistoryIndex returns the position of the action log's index: the number
// of actions that are currently applied.
func (b *Buffer) HistoryIndex() int {
	return b.log.Index()
}

// CanRedo returns true if there is an action to redo.
func (b *Buffer) CanRedo() bool {
	return b.log.CanRedo()
}

func (b *Buffer) record(a history.Action) {
	b.log.Record(a)
	b.dirty = true
}

func (b *Buffer) clampRow(row int) int {
	return clamp(row, 0, len(b.lines)-1)
}

// clampPos clamps p to the buffer, allowing columns up to the raw length.
func (b *Buffer) clampPos(p text.Position) text.Position {
	row := b.clampRow(p.Row)
	return text.Pos(clamp(p.Col, 0, b.lines[row].RawLen()), row)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
