package buffer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/redit/internal/engine/text"
)

func rawLines(b *Buffer) []string {
	out := make([]string, b.LineCount())
	for i := range out {
		out[i] = b.Line(i).Raw()
	}
	return out
}

func equalLines(t *testing.T, b *Buffer, want ...string) {
	t.Helper()
	got := rawLines(b)
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("lines = %q, want %q", got, want)
		}
	}
}

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{""}},
		{"no terminator", "abc", []string{"abc"}},
		{"trailing newline", "abc\n", []string{"abc\n", ""}},
		{"crlf", "a\r\nb\r\n", []string{"a\r\n", "b\r\n", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.in)
			equalLines(t, b, tt.want...)
			if b.String() != tt.in {
				t.Errorf("String() = %q, want %q", b.String(), tt.in)
			}
			if b.Dirty() {
				t.Error("new buffer should not be dirty")
			}
		})
	}

	if New(nil).LineCount() != 1 {
		t.Error("New(nil) should hold a single empty line")
	}
}

func TestFromReaderWriteTo(t *testing.T) {
	in := "first\r\nsecond\n\tthird"
	b, err := FromReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if out.String() != in {
		t.Errorf("WriteTo() wrote %q, want %q", out.String(), in)
	}
	if n != int64(len(in)) {
		t.Errorf("WriteTo() = %d, want %d", n, len(in))
	}
	if b.LineEnding() != text.LineEndingCRLF && b.LineEnding() != text.LineEndingLF {
		t.Errorf("LineEnding() = %v", b.LineEnding())
	}
}

func TestInsertCharScenario(t *testing.T) {
	b := NewFromString("abc\ndef\n")
	b.InsertChar(0, 3, 'X')
	equalLines(t, b, "abcX\n", "def\n", "")

	if !b.Dirty() {
		t.Error("InsertChar should mark the buffer dirty")
	}

	if _, ok := b.Undo(); !ok {
		t.Fatal("Undo() = false")
	}
	equalLines(t, b, "abc\n", "def\n", "")
}

func TestInsertCharClamps(t *testing.T) {
	b := NewFromString("ab\n")
	b.InsertChar(-4, 99, 'Z')
	equalLines(t, b, "abZ\n", "")

	b.InsertChar(99, -1, 'Y')
	equalLines(t, b, "abZ\n", "Y")
}

func TestInsertCharTerminatorSplits(t *testing.T) {
	b := NewFromString("abc\n")
	b.InsertChar(0, 1, '\n')
	equalLines(t, b, "a\n", "bc\n", "")
}

func TestDeleteCharJoinScenario(t *testing.T) {
	b := NewFromString("ab\ncd\n")
	if !b.DeleteChar(0, 2) {
		t.Fatal("DeleteChar() = false, want true")
	}
	equalLines(t, b, "abcd\n", "")

	b.Undo()
	equalLines(t, b, "ab\n", "cd\n", "")
}

func TestDeleteCharJoinMixedEndings(t *testing.T) {
	b := NewFromString("ab\r\ncd\n")
	b.DeleteChar(0, 2)
	equalLines(t, b, "abcd\n", "")

	b.Undo()
	equalLines(t, b, "ab\r\n", "cd\n", "")

	b.Redo()
	equalLines(t, b, "abcd\n", "")
}

func TestDeleteCharAtEnd(t *testing.T) {
	b := NewFromString("abc")
	if b.DeleteChar(0, 3) {
		t.Error("DeleteChar() at end of buffer = true, want false")
	}
	if b.CanUndo() {
		t.Error("no-op delete should not be logged")
	}
	if b.Dirty() {
		t.Error("no-op delete should not mark dirty")
	}
}

func TestSplitLineScenario(t *testing.T) {
	b := NewFromString("abc\n")
	b.SplitLine(0, 1)
	equalLines(t, b, "a\n", "bc\n", "")

	b.Undo()
	equalLines(t, b, "abc\n", "")
}

func TestSplitLineUnterminated(t *testing.T) {
	b := NewFromString("x\r\nabc", WithCRLF())
	b.SplitLine(1, 1)
	equalLines(t, b, "x\r\n", "a\r\n", "bc")

	b.Undo()
	equalLines(t, b, "x\r\n", "abc")
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	const doc = "ab\tc\r\n\nxyz\rlast"
	base := NewFromString(doc)

	for row := 0; row < base.LineCount(); row++ {
		for col := 0; col <= base.Line(row).CleanLen(); col++ {
			b := NewFromString(doc)
			b.InsertChar(row, col, 'Q')
			b.DeleteChar(row, col)
			if b.String() != doc {
				t.Errorf("insert/delete at (%d,%d) = %q, want %q", col, row, b.String(), doc)
			}
		}
	}
}

func TestRegion(t *testing.T) {
	b := NewFromString("abc\ndef\nghi")

	tests := []struct {
		name       string
		start, end text.Position
		want       []string
	}{
		{"same row", text.Pos(1, 0), text.Pos(3, 0), []string{"bc"}},
		{"two rows", text.Pos(2, 0), text.Pos(1, 1), []string{"c\n", "d"}},
		{"three rows", text.Pos(0, 0), text.Pos(3, 2), []string{"abc\n", "def\n", "ghi"}},
		{"reversed", text.Pos(1, 1), text.Pos(2, 0), []string{"c\n", "d"}},
		{"clamped", text.Pos(-1, -1), text.Pos(99, 0), []string{"abc\n"}},
		{"inside terminator", text.Pos(3, 0), text.Pos(4, 0), []string{"\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Region(tt.start, tt.end)
			if len(got) != len(tt.want) {
				t.Fatalf("Region() = %d fragments, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Raw() != tt.want[i] {
					t.Errorf("Region()[%d] = %q, want %q", i, got[i].Raw(), tt.want[i])
				}
			}
		})
	}

	if b.Dirty() || b.CanUndo() {
		t.Error("Region() must not modify the buffer")
	}
}

func TestInsertRegion(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		start   text.Position
		lines   []string
		want    []string
		wantEnd text.Position
	}{
		{
			name:    "single fragment",
			doc:     "abc\n",
			start:   text.Pos(1, 0),
			lines:   []string{"XY"},
			want:    []string{"aXYbc\n", ""},
			wantEnd: text.Pos(3, 0),
		},
		{
			name:    "two fragments",
			doc:     "abc\n",
			start:   text.Pos(1, 0),
			lines:   []string{"X\n", "Y"},
			want:    []string{"aX\n", "Ybc\n", ""},
			wantEnd: text.Pos(1, 1),
		},
		{
			name:    "three fragments",
			doc:     "abc",
			start:   text.Pos(3, 0),
			lines:   []string{"\n", "mid\n", "end"},
			want:    []string{"abc\n", "mid\n", "end"},
			wantEnd: text.Pos(3, 2),
		},
		{
			name:    "terminated single fragment",
			doc:     "ab\n",
			start:   text.Pos(1, 0),
			lines:   []string{"X\n"},
			want:    []string{"aX\n", "b\n", ""},
			wantEnd: text.Pos(0, 1),
		},
		{
			name:    "no fragments",
			doc:     "ab",
			start:   text.Pos(1, 0),
			lines:   nil,
			want:    []string{"ab"},
			wantEnd: text.Pos(1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.doc)
			end := b.InsertRegion(tt.start, text.Lines(tt.lines...))
			equalLines(t, b, tt.want...)
			if end != tt.wantEnd {
				t.Errorf("InsertRegion() = %v, want %v", end, tt.wantEnd)
			}

			if len(tt.lines) == 0 {
				return
			}
			b.Undo()
			if b.String() != tt.doc {
				t.Errorf("after Undo() = %q, want %q", b.String(), tt.doc)
			}
		})
	}
}

func TestRemoveRegion(t *testing.T) {
	b := NewFromString("abc\ndef\nghi")
	b.RemoveRegion(text.Pos(1, 0), text.Pos(2, 2))
	equalLines(t, b, "ai")

	b.Undo()
	equalLines(t, b, "abc\n", "def\n", "ghi")

	b.RemoveRegion(text.Pos(1, 1), text.Pos(3, 1))
	equalLines(t, b, "abc\n", "d\n", "ghi")
}

func TestRemoveRegionEmptyIsNoop(t *testing.T) {
	b := NewFromString("abc")
	b.RemoveRegion(text.Pos(1, 0), text.Pos(1, 0))
	if b.CanUndo() || b.Dirty() {
		t.Error("empty RemoveRegion should not be logged")
	}
}

func TestRemoveEverythingLeavesOneLine(t *testing.T) {
	b := NewFromString("abc\ndef\n")
	b.RemoveRegion(text.Pos(0, 0), text.Pos(0, 99))
	equalLines(t, b, "")
}

// allPositions lists every addressable position of doc, including columns
// inside terminators.
func allPositions(doc string) []text.Position {
	var out []text.Position
	for row, l := range text.SplitLines(doc) {
		for col := 0; col <= l.RawLen(); col++ {
			out = append(out, text.Pos(col, row))
		}
	}
	return out
}

func TestRemoveInsertRoundTrip(t *testing.T) {
	const doc = "ab\r\n\tc\nd\re"
	positions := allPositions(doc)

	for _, s := range positions {
		for _, e := range positions {
			if e.Before(s) {
				continue
			}
			b := NewFromString(doc)
			captured := b.Region(s, e)
			b.RemoveRegion(s, e)
			b.InsertRegion(s, captured)
			if b.String() != doc {
				t.Errorf("remove/insert %v..%v = %q, want %q", s, e, b.String(), doc)
			}
		}
	}
}

func TestUndoRedoEveryAction(t *testing.T) {
	const doc = "ab\r\n\tc\n\nd"

	type mutation struct {
		name string
		fn   func(b *Buffer)
	}
	var muts []mutation
	for _, p := range allPositions(doc) {
		p := p
		muts = append(muts,
			mutation{"insert " + p.String(), func(b *Buffer) { b.InsertChar(p.Row, p.Col, 'x') }},
			mutation{"delete " + p.String(), func(b *Buffer) { b.DeleteChar(p.Row, p.Col) }},
			mutation{"split " + p.String(), func(b *Buffer) { b.SplitLine(p.Row, p.Col) }},
			mutation{"insert region " + p.String(), func(b *Buffer) {
				b.InsertRegion(p, text.Lines("1\n", "2\r\n", "3"))
			}},
			mutation{"insert fragment " + p.String(), func(b *Buffer) {
				b.InsertRegion(p, text.Lines("frag"))
			}},
		)
		for _, e := range allPositions(doc) {
			e := e
			muts = append(muts, mutation{"remove " + p.String() + e.String(), func(b *Buffer) {
				b.RemoveRegion(p, e)
			}})
		}
	}

	for _, m := range muts {
		b := NewFromString(doc)
		m.fn(b)
		after := b.String()
		afterLines := rawLines(b)

		b.Undo()
		if b.String() != doc {
			t.Errorf("%s: Undo() = %q, want %q", m.name, b.String(), doc)
			continue
		}
		b.Redo()
		if b.String() != after {
			t.Errorf("%s: Redo() = %q, want %q", m.name, b.String(), after)
			continue
		}
		got := rawLines(b)
		if len(got) != len(afterLines) {
			t.Errorf("%s: Redo() lines = %q, want %q", m.name, got, afterLines)
		}
	}
}

func TestUndoSequenceRestoresStructure(t *testing.T) {
	b := NewFromString("one\ntwo\r\nthree")
	orig := rawLines(b)

	b.SplitLine(1, 1)
	b.InsertRegion(text.Pos(2, 0), text.Lines("A\n", "B"))
	b.DeleteChar(2, 0)
	b.RemoveRegion(text.Pos(1, 1), text.Pos(2, 3))
	b.InsertChar(0, 0, 'Z')
	b.DeleteChar(0, 99)

	for b.CanUndo() {
		b.Undo()
	}
	equalLines(t, b, orig...)
}

func TestUndoRedoBoundaries(t *testing.T) {
	b := NewFromString("abc")
	if _, ok := b.Undo(); ok {
		t.Error("Undo() on fresh buffer = true")
	}
	if _, ok := b.Redo(); ok {
		t.Error("Redo() on fresh buffer = true")
	}
	if b.String() != "abc" {
		t.Errorf("String() = %q", b.String())
	}
}

func TestNewEditDiscardsRedo(t *testing.T) {
	b := NewFromString("abc")
	b.InsertChar(0, 3, 'd')
	b.InsertChar(0, 4, 'e')
	b.Undo()
	b.Undo()

	b.InsertChar(0, 0, 'z')
	if b.CanRedo() {
		t.Error("new edit should discard the redo tail")
	}
	if _, ok := b.Redo(); ok {
		t.Error("Redo() = true after new edit")
	}
	if b.String() != "zabc" {
		t.Errorf("String() = %q, want %q", b.String(), "zabc")
	}
	if _, ok := b.Undo(); !ok || b.String() != "abc" {
		t.Errorf("Undo() = %v, String() = %q, want true, %q", ok, b.String(), "abc")
	}
	if b.CanUndo() {
		t.Error("CanUndo() = true, want only the new edit in the log")
	}
}

func TestUndoCursorHints(t *testing.T) {
	b := NewFromString("abc\ndef")

	b.InsertChar(1, 1, 'x')
	if p, _ := b.Undo(); p != text.Pos(1, 1) {
		t.Errorf("Undo() InsertChar = %v, want (1,1)", p)
	}
	if p, _ := b.Redo(); p != text.Pos(2, 1) {
		t.Errorf("Redo() InsertChar = %v, want (2,1)", p)
	}

	b.SplitLine(0, 2)
	if p, _ := b.Redo(); p != (text.Position{}) {
		t.Errorf("Redo() with empty tail = %v", p)
	}
	if p, _ := b.Undo(); p != text.Pos(2, 0) {
		t.Errorf("Undo() SplitLine = %v, want (2,0)", p)
	}
	if p, _ := b.Redo(); p != text.Pos(0, 1) {
		t.Errorf("Redo() SplitLine = %v, want (0,1)", p)
	}

	end := b.InsertRegion(text.Pos(0, 0), text.Lines("1\n", "22"))
	if p, _ := b.Undo(); p != text.Pos(0, 0) {
		t.Errorf("Undo() InsertRegion = %v, want (0,0)", p)
	}
	if p, _ := b.Redo(); p != end {
		t.Errorf("Redo() InsertRegion = %v, want %v", p, end)
	}
}

func TestDirtyFlag(t *testing.T) {
	b := NewFromString("abc")
	b.InsertChar(0, 0, 'x')
	if !b.Dirty() {
		t.Fatal("expected dirty after edit")
	}
	b.MarkSaved()
	if b.Dirty() {
		t.Fatal("expected clean after MarkSaved")
	}
	b.Undo()
	if !b.Dirty() {
		t.Error("expected dirty after undo")
	}
}

func TestCheckPosition(t *testing.T) {
	b := NewFromString("ab\ncd")

	tests := []struct {
		pos     text.Position
		wantErr bool
	}{
		{text.Pos(0, 0), false},
		{text.Pos(3, 0), false},
		{text.Pos(2, 1), false},
		{text.Pos(4, 0), true},
		{text.Pos(0, 2), true},
		{text.Pos(-1, 0), true},
		{text.Pos(0, -1), true},
	}

	for _, tt := range tests {
		err := b.CheckPosition(tt.pos)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckPosition(%v) error = %v, wantErr %v", tt.pos, err, tt.wantErr)
		}
		if err != nil {
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("CheckPosition(%v) error should wrap ErrOutOfBounds", tt.pos)
			}
			var be *BoundsError
			if !errors.As(err, &be) || be.Pos != tt.pos {
				t.Errorf("CheckPosition(%v) error = %#v", tt.pos, err)
			}
		}
	}
}

func TestInvalidUTF8Preserved(t *testing.T) {
	const doc = "caf\xe9\nx\n"
	tests := []struct {
		name string
		edit func(b *Buffer)
	}{
		{"insert then delete", func(b *Buffer) {
			b.InsertChar(0, 0, 'X')
			b.DeleteChar(0, 0)
		}},
		{"insert then undo", func(b *Buffer) {
			b.InsertChar(0, 4, '!')
			b.Undo()
		}},
		{"delete invalid byte then undo", func(b *Buffer) {
			b.DeleteChar(0, 3)
			b.Undo()
		}},
		{"split then undo", func(b *Buffer) {
			b.SplitLine(0, 3)
			b.Undo()
		}},
		{"remove then insert", func(b *Buffer) {
			start, end := text.Pos(2, 0), text.Pos(1, 1)
			removed := b.Region(start, end)
			b.RemoveRegion(start, end)
			b.InsertRegion(start, removed)
		}},
		{"remove undo redo undo", func(b *Buffer) {
			b.RemoveRegion(text.Pos(3, 0), text.Pos(0, 1))
			b.Undo()
			b.Redo()
			b.Undo()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(doc)
			tt.edit(b)
			if got := b.String(); got != doc {
				t.Errorf("String() = %q, want %q", got, doc)
			}
		})
	}

	b := NewFromString(doc)
	b.DeleteChar(0, 3)
	if got := b.String(); got != "caf\nx\n" {
		t.Errorf("DeleteChar(0,3) = %q, want %q", got, "caf\nx\n")
	}
}

func TestInsertRegionTerminatedFragment(t *testing.T) {
	const doc = "ab\r\ncd\n"
	b := NewFromString(doc)
	start, end := text.Pos(3, 0), text.Pos(4, 0)

	cut := b.Region(start, end)
	if len(cut) != 1 || cut[0].Raw() != "\n" {
		t.Fatalf("Region() = %q, want [\"\\n\"]", rawFragments(cut))
	}
	b.RemoveRegion(start, end)
	equalLines(t, b, "ab\r", "cd\n")

	got := b.InsertRegion(start, cut)
	if b.String() != doc {
		t.Errorf("String() = %q, want %q", b.String(), doc)
	}
	equalLines(t, b, "ab\r\n", "", "cd\n")
	if want := text.Pos(0, 1); got != want {
		t.Errorf("InsertRegion() = %v, want %v", got, want)
	}
}

func rawFragments(lines []text.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Raw()
	}
	return out
}
