// Package editor implements an editing session: one Buffer shown through
// one Viewport, plus the file, prompt and message state around them.
//
// An Editor is not safe for concurrent use. The application drives it from
// its event loop; scripts drive it from a single goroutine.
package editor

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/redit/internal/engine/buffer"
	"github.com/dshills/redit/internal/engine/text"
	"github.com/dshills/redit/internal/logging"
	"github.com/dshills/redit/internal/renderer/layout"
	"github.com/dshills/redit/internal/renderer/viewport"
)

// NoName is the display name of a session without a file.
const NoName = "[No Name]"

// messageTimeFormat renders message timestamps as "03:04:05 pm".
const messageTimeFormat = "03:04:05 pm"

// Editor is a single editing session.
type Editor struct {
	id   uuid.UUID
	buf  *buffer.Buffer
	view *viewport.Viewport

	path    string
	modTime time.Time

	message string
	prompt  *Prompt
	pending Request
	confirm bool

	now func() time.Time
	log *logging.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. The session id is attached as a field.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock sets the clock used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithTabWidth sets the rendered width of a tab.
func WithTabWidth(width int) Option {
	return func(e *Editor) {
		e.view.SetTabWidth(width, e.buf)
	}
}

// WithText starts the session with text instead of an empty buffer.
func WithText(s string) Option {
	return func(e *Editor) {
		e.buf = buffer.NewFromString(s)
	}
}

// WithoutConfirm lets quit, open and reload discard unsaved changes
// without asking twice.
func WithoutConfirm() Option {
	return func(e *Editor) {
		e.confirm = false
	}
}

// New creates a session for a terminal of the given size.
func New(width, height int, opts ...Option) *Editor {
	e := &Editor{
		id:      uuid.New(),
		buf:     buffer.New(nil),
		view:    viewport.New(width, height, layout.DefaultTabWidth),
		confirm: true,
		now:     time.Now,
		log:     logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("editor").WithField("session", e.id.String())
	e.view.Scroll(e.buf)
	return e
}

// ID returns the session id.
func (e *Editor) ID() uuid.UUID { return e.id }

// Buffer returns the session's buffer.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// View returns the session's viewport.
func (e *Editor) View() *viewport.Viewport { return e.view }

// Logger returns the session logger.
func (e *Editor) Logger() *logging.Logger { return e.log }

// Path returns the absolute file path, or "" for an unnamed session.
func (e *Editor) Path() string { return e.path }

// Name returns the base name of the file, or NoName.
func (e *Editor) Name() string {
	if e.path == "" {
		return NoName
	}
	return filepath.Base(e.path)
}

// Dirty reports whether the buffer has unsaved changes.
func (e *Editor) Dirty() bool { return e.buf.Dirty() }

// Text returns the whole document.
func (e *Editor) Text() string { return e.buf.String() }

// Cursor returns the logical cursor position.
func (e *Editor) Cursor() text.Position { return e.view.Cursor() }

// Resize lays the viewport out for a new terminal size.
func (e *Editor) Resize(width, height int) {
	e.view.Resize(width, height, e.buf)
}

// SetTabWidth changes the rendered width of a tab.
func (e *Editor) SetTabWidth(width int) {
	e.view.SetTabWidth(width, e.buf)
}

// Move applies a cursor movement and drops any pending confirmation.
// Movements are ignored while a prompt is open.
func (e *Editor) Move(m viewport.Movement, highlight bool) {
	if e.prompt != nil {
		return
	}
	e.disarm()
	e.view.Move(m, highlight, e.buf)
}

// Select sets the selection from anchor to cursor.
func (e *Editor) Select(anchor, cursor text.Position) {
	e.Move(viewport.Absolute(anchor.Col, anchor.Row), false)
	e.Move(viewport.Absolute(cursor.Col, cursor.Row), true)
}

// SetMessage shows a timestamped message on the message line.
func (e *Editor) SetMessage(format string, args ...any) {
	e.message = e.now().Format(messageTimeFormat) + ": " + fmt.Sprintf(format, args...)
}

// ClearMessage removes the message.
func (e *Editor) ClearMessage() {
	e.message = ""
}

// Message returns the current message, or "".
func (e *Editor) Message() string { return e.message }

// Status returns the status line text: name, modified marker and the
// 1-based line and rendered column of the cursor.
func (e *Editor) Status() string {
	name := e.Name()
	if e.Dirty() {
		name += " (modified)"
	}
	return fmt.Sprintf("%s L%d:C%d", name, e.view.Cursor().Row+1, e.view.RX()+1)
}

// MessageLine returns the text of the bottom line: the prompt while one is
// open, the message otherwise.
func (e *Editor) MessageLine() string {
	if e.prompt != nil {
		return e.prompt.String()
	}
	return e.message
}
