package editor

import (
	"reflect"
	"testing"
	"time"

	"github.com/dshills/redit/internal/engine/text"
	"github.com/dshills/redit/internal/logging"
	"github.com/dshills/redit/internal/renderer/viewport"
)

var fixedTime = time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

func newTestEditor(content string, opts ...Option) *Editor {
	opts = append([]Option{
		WithText(content),
		WithClock(func() time.Time { return fixedTime }),
		WithLogger(logging.Null()),
	}, opts...)
	return New(40, 13, opts...)
}

func TestEditor_Typing(t *testing.T) {
	e := newTestEditor("")
	e.WriteString("hello")
	if got := e.Text(); got != "hello" {
		t.Fatalf("Text() = %q, want hello", got)
	}
	if got := e.Cursor(); got != text.Pos(5, 0) {
		t.Errorf("Cursor() = %v, want (5,0)", got)
	}

	e.WriteChar('\n')
	if got := e.Text(); got != "hello\n" {
		t.Errorf("Text() = %q, want hello\\n", got)
	}
	if got := e.Cursor(); got != text.Pos(0, 1) {
		t.Errorf("Cursor() = %v, want (0,1)", got)
	}

	e.WriteString("x")
	if got := e.Text(); got != "hello\nx" {
		t.Errorf("Text() = %q", got)
	}
}

func TestEditor_ReturnMidLine(t *testing.T) {
	e := newTestEditor("abcd\r\nz")
	e.Move(viewport.Absolute(2, 0), false)
	if err := e.Return(); err != nil {
		t.Fatal(err)
	}
	if got := e.Text(); got != "ab\r\ncd\r\nz" {
		t.Errorf("Text() = %q", got)
	}
	if got := e.Cursor(); got != text.Pos(0, 1) {
		t.Errorf("Cursor() = %v, want (0,1)", got)
	}
}

func TestEditor_Backspace(t *testing.T) {
	tests := []struct {
		name    string
		content string
		at      text.Position
		want    string
		cursor  text.Position
	}{
		{"middle", "abc", text.Pos(2, 0), "ac", text.Pos(1, 0)},
		{"line start joins", "ab\ncd", text.Pos(0, 1), "abcd", text.Pos(2, 0)},
		{"buffer start", "ab", text.Pos(0, 0), "ab", text.Pos(0, 0)},
		{"inside terminator", "ab\r\ncd", text.Pos(3, 0), "a\r\ncd", text.Pos(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(tt.content)
			e.Move(viewport.Absolute(tt.at.Col, tt.at.Row), false)
			e.Backspace()
			if got := e.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if got := e.Cursor(); got != tt.cursor {
				t.Errorf("Cursor() = %v, want %v", got, tt.cursor)
			}
		})
	}
}

func TestEditor_DeleteChar(t *testing.T) {
	e := newTestEditor("ab\ncd")
	e.Move(viewport.End(), false)
	e.DeleteChar()
	if got := e.Text(); got != "abcd" {
		t.Errorf("Text() = %q, want abcd", got)
	}
	e.Move(viewport.EndFile(), false)
	e.DeleteChar()
	if got := e.Text(); got != "abcd" {
		t.Errorf("delete at end of buffer changed text to %q", got)
	}
}

func TestEditor_SelectionReplacedByTyping(t *testing.T) {
	e := newTestEditor("abc def")
	e.Select(text.Pos(0, 0), text.Pos(3, 0))
	e.WriteChar('X')
	if got := e.Text(); got != "X def" {
		t.Errorf("Text() = %q, want %q", got, "X def")
	}
	if got := e.Cursor(); got != text.Pos(1, 0) {
		t.Errorf("Cursor() = %v, want (1,0)", got)
	}
	if e.View().Highlighting() {
		t.Error("selection should be cleared")
	}
}

func TestEditor_BackwardSelectionDelete(t *testing.T) {
	e := newTestEditor("one\ntwo\nthree")
	e.Select(text.Pos(2, 2), text.Pos(1, 0))
	e.DeleteChar()
	if got := e.Text(); got != "oree" {
		t.Errorf("Text() = %q, want oree", got)
	}
	if got := e.Cursor(); got != text.Pos(1, 0) {
		t.Errorf("Cursor() = %v, want (1,0)", got)
	}
}

func TestEditor_CutPasteRoundTrip(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		anchor, cursor text.Position
	}{
		{"single line", "hello world", text.Pos(2, 0), text.Pos(7, 0)},
		{"multi line", "one\ntwo\nthree", text.Pos(1, 0), text.Pos(2, 1)},
		{"whole lines", "a\r\nb\r\nc", text.Pos(0, 0), text.Pos(0, 2)},
		{"backwards", "one\ntwo\nthree", text.Pos(3, 2), text.Pos(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(tt.content)
			e.Select(tt.anchor, tt.cursor)
			start, _ := text.Order(tt.anchor, tt.cursor)

			lines := e.Cut()
			if len(lines) == 0 {
				t.Fatal("Cut() returned nothing")
			}
			if got := e.Cursor(); got != start {
				t.Errorf("Cursor() after Cut = %v, want %v", got, start)
			}

			e.Paste(lines)
			if got := e.Text(); got != tt.content {
				t.Errorf("Text() after paste = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestEditor_Copy(t *testing.T) {
	e := newTestEditor("one\ntwo")
	if got := e.Copy(); got != nil {
		t.Errorf("Copy() without selection = %v, want nil", got)
	}
	e.Select(text.Pos(1, 0), text.Pos(1, 1))
	want := text.Lines("ne\n", "t")
	if got := e.Copy(); !reflect.DeepEqual(got, want) {
		t.Errorf("Copy() = %q, want %q", got, want)
	}
	if e.Dirty() {
		t.Error("Copy() must not modify the buffer")
	}
}

func TestEditor_UndoRedoCursor(t *testing.T) {
	e := newTestEditor("ab")
	e.Move(viewport.End(), false)
	e.WriteChar('c')

	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := e.Text(); got != "ab" {
		t.Errorf("Text() after undo = %q", got)
	}
	if got := e.Cursor(); got != text.Pos(2, 0) {
		t.Errorf("Cursor() after undo = %v, want (2,0)", got)
	}

	if !e.Redo() {
		t.Fatal("Redo() = false")
	}
	if got := e.Text(); got != "abc" {
		t.Errorf("Text() after redo = %q", got)
	}
	if got := e.Cursor(); got != text.Pos(3, 0) {
		t.Errorf("Cursor() after redo = %v, want (3,0)", got)
	}

	if e.Redo() {
		t.Error("Redo() with nothing to redo = true")
	}
	if e.Message() != "03:04:05 pm: Nothing to redo." {
		t.Errorf("Message() = %q", e.Message())
	}
}

func TestEditor_UndoReturn(t *testing.T) {
	e := newTestEditor("abcd")
	e.Move(viewport.Absolute(2, 0), false)
	e.Return()
	e.Undo()
	if got := e.Text(); got != "abcd" {
		t.Errorf("Text() = %q, want abcd", got)
	}
	if got := e.Cursor(); got != text.Pos(2, 0) {
		t.Errorf("Cursor() = %v, want (2,0)", got)
	}
}

func TestEditor_StatusAndMessage(t *testing.T) {
	e := newTestEditor("x")
	if got := e.Status(); got != "[No Name] L1:C1" {
		t.Errorf("Status() = %q", got)
	}
	e.WriteChar('\t')
	if got := e.Status(); got != "[No Name] (modified) L1:C5" {
		t.Errorf("Status() = %q", got)
	}

	e.SetMessage("hi %d", 3)
	if got := e.Message(); got != "03:04:05 pm: hi 3" {
		t.Errorf("Message() = %q", got)
	}
	if got := e.MessageLine(); got != e.Message() {
		t.Errorf("MessageLine() = %q", got)
	}
}

func TestEditor_Confirm(t *testing.T) {
	e := newTestEditor("x")
	if !e.Confirm(RequestQuit) {
		t.Fatal("clean session must not ask for confirmation")
	}

	e.WriteChar('y')
	if e.Confirm(RequestQuit) {
		t.Fatal("first quit on dirty session should ask")
	}
	want := "03:04:05 pm: File has unsaved changes. Press Ctrl-Q again to quit."
	if got := e.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
	if !e.Confirm(RequestQuit) {
		t.Error("second quit should proceed")
	}

	e.Confirm(RequestQuit)
	e.WriteChar('z')
	if e.Message() != "" {
		t.Errorf("editing should clear the warning, got %q", e.Message())
	}
	if e.Confirm(RequestQuit) {
		t.Error("editing should re-arm the guard")
	}

	if e.Confirm(RequestReload) {
		t.Error("a different request should ask again")
	}
	if !e.Confirm(RequestReload) {
		t.Error("repeated reload should proceed")
	}

	e.Confirm(RequestQuit)
	e.Move(viewport.Relative(1, 0), false)
	if e.Confirm(RequestQuit) {
		t.Error("moving should re-arm the guard")
	}
}

func TestEditor_WithoutConfirm(t *testing.T) {
	e := newTestEditor("x", WithoutConfirm())
	e.WriteChar('y')
	if !e.Confirm(RequestQuit) {
		t.Error("Confirm() should always proceed when confirmation is disabled")
	}
}

func TestEditor_Prompt(t *testing.T) {
	e := newTestEditor("text")
	ok, err := e.RequestOpen()
	if !ok || err != nil {
		t.Fatalf("RequestOpen() = %v, %v", ok, err)
	}
	if !e.PromptActive() {
		t.Fatal("prompt should be open")
	}
	if _, err := e.RequestOpen(); err != ErrPromptActive {
		t.Errorf("second RequestOpen() error = %v, want ErrPromptActive", err)
	}

	e.WriteString("ab")
	e.WriteChar('ü')
	e.Backspace()
	if got := e.MessageLine(); got != "File to open: ab" {
		t.Errorf("MessageLine() = %q", got)
	}
	if got := e.Text(); got != "text" {
		t.Errorf("typing into the prompt changed the buffer: %q", got)
	}

	e.Move(viewport.End(), false)
	if got := e.Cursor(); got != text.Pos(0, 0) {
		t.Errorf("Move() during prompt moved the cursor to %v", got)
	}

	e.CancelPrompt()
	if e.PromptActive() {
		t.Error("CancelPrompt() left the prompt open")
	}
	if err := e.ConfirmPrompt(); err != ErrNoPrompt {
		t.Errorf("ConfirmPrompt() error = %v, want ErrNoPrompt", err)
	}
}

func TestEditor_PromptEmptyAnswer(t *testing.T) {
	e := newTestEditor("")
	if err := e.RequestSaveAs(); err != nil {
		t.Fatal(err)
	}
	if err := e.Return(); err != nil {
		t.Errorf("Return() with empty answer = %v", err)
	}
	if e.PromptActive() || e.Path() != "" {
		t.Error("empty answer should close the prompt and do nothing")
	}
}
