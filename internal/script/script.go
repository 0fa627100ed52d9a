package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/redit/internal/clipboard"
	"github.com/dshills/redit/internal/editor"
	"github.com/dshills/redit/internal/engine/text"
	"github.com/dshills/redit/internal/logging"
	"github.com/dshills/redit/internal/renderer/viewport"
)

// Runner executes scripts against one editor session.
//
// A Runner is not safe for concurrent use by scripts; the mutex only keeps
// Go callers from entering the Lua state at the same time.
type Runner struct {
	L    *lua.LState
	ed   *editor.Editor
	clip clipboard.Clipboard
	out  io.Writer
	log  *logging.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithClipboard sets the clipboard used by cut, copy and paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(r *Runner) {
		r.clip = c
	}
}

// WithOutput redirects print. Output is discarded by default.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// New creates a runner bound to e.
func New(e *editor.Editor, opts ...Option) *Runner {
	r := &Runner{
		ed:   e,
		clip: clipboard.NewRegister(),
		out:  io.Discard,
		log:  logging.Null(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("script")

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(r.L)
	lua.OpenTable(r.L)
	lua.OpenString(r.L)
	lua.OpenMath(r.L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
	r.L.SetGlobal("editor", r.module())
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		r.L.Close()
	}
}

// DoString runs code. name identifies the chunk in errors.
func (r *Runner) DoString(ctx context.Context, name, code string) error {
	return r.run(ctx, name, func() error {
		return r.L.DoString(code)
	})
}

// DoFile runs the script at path.
func (r *Runner) DoFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error {
		return r.L.DoFile(path)
	})
}

func (r *Runner) run(ctx context.Context, name string, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return &Error{Script: name, Err: ErrClosed}
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = &Error{Script: name, Err: fmt.Errorf("lua panic: %v", p)}
		}
	}()

	r.log.Debug("running %s", name)
	if err := fn(); err != nil {
		r.log.Error("%s: %v", name, err)
		return &Error{Script: name, Err: err}
	}
	return nil
}

func (r *Runner) module() *lua.LTable {
	mod := r.L.NewTable()
	r.L.SetFuncs(mod, map[string]lua.LGFunction{
		"insert":     r.insert,
		"newline":    r.newline,
		"delete":     r.delete,
		"backspace":  r.backspace,
		"move":       r.move,
		"goto":       r.goTo,
		"go_to":      r.goTo,
		"select":     r.selectRange,
		"cut":        r.cut,
		"copy":       r.copy,
		"paste":      r.paste,
		"undo":       r.undo,
		"redo":       r.redo,
		"text":       r.text,
		"line":       r.line,
		"line_count": r.lineCount,
		"cursor":     r.cursor,
		"save":       r.save,
		"message":    r.message,
	})
	return mod
}

// print(...) writes its arguments separated by tabs.
func (r *Runner) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}

// insert(s)
func (r *Runner) insert(L *lua.LState) int {
	r.ed.WriteString(L.CheckString(1))
	return 0
}

// newline()
func (r *Runner) newline(L *lua.LState) int {
	if err := r.ed.Return(); err != nil {
		L.RaiseError("newline: %v", err)
	}
	return 0
}

// delete()
func (r *Runner) delete(L *lua.LState) int {
	r.ed.DeleteChar()
	return 0
}

// backspace()
func (r *Runner) backspace(L *lua.LState) int {
	r.ed.Backspace()
	return 0
}

// move(kind [, n [, extend]])
func (r *Runner) move(L *lua.LState) int {
	kind := L.CheckString(1)
	n := L.OptInt(2, 1)
	extend := L.OptBool(3, false)

	m, ok := movement(kind, n)
	if !ok {
		L.ArgError(1, "unknown movement "+kind)
		return 0
	}
	r.ed.Move(m, extend)
	return 0
}

func movement(kind string, n int) (viewport.Movement, bool) {
	switch kind {
	case "left":
		return viewport.Relative(-n, 0), true
	case "right":
		return viewport.Relative(n, 0), true
	case "up":
		return viewport.Relative(0, -n), true
	case "down":
		return viewport.Relative(0, n), true
	case "home":
		return viewport.Home(), true
	case "end":
		return viewport.End(), true
	case "begfile":
		return viewport.BegFile(), true
	case "endfile":
		return viewport.EndFile(), true
	case "pageup":
		return viewport.PageUp(), true
	case "pagedown":
		return viewport.PageDown(), true
	case "scrollup":
		return viewport.ScrollUp(n), true
	case "scrolldown":
		return viewport.ScrollDown(n), true
	}
	return viewport.Movement{}, false
}

// go_to(row, col)
func (r *Runner) goTo(L *lua.LState) int {
	p := r.position(L, 1)
	r.ed.Move(viewport.Absolute(p.Col, p.Row), false)
	return 0
}

// select(r1, c1, r2, c2)
func (r *Runner) selectRange(L *lua.LState) int {
	anchor := r.position(L, 1)
	cursor := r.position(L, 3)
	r.ed.Select(anchor, cursor)
	return 0
}

// position reads the 1-based row and column arguments at n and n+1.
// A position outside the buffer raises an argument error.
func (r *Runner) position(L *lua.LState, n int) text.Position {
	p := text.Pos(L.CheckInt(n+1)-1, L.CheckInt(n)-1)
	if err := r.ed.Buffer().CheckPosition(p); err != nil {
		L.ArgError(n, err.Error())
	}
	return p
}

// cut() -> string
func (r *Runner) cut(L *lua.LState) int {
	return r.yank(L, r.ed.Cut())
}

// copy() -> string
func (r *Runner) copy(L *lua.LState) int {
	return r.yank(L, r.ed.Copy())
}

func (r *Runner) yank(L *lua.LState, lines []text.Line) int {
	if lines == nil {
		L.Push(lua.LNil)
		return 1
	}
	if err := r.clip.Write(lines); err != nil {
		r.log.Warn("clipboard write: %v", err)
	}
	L.Push(lua.LString(text.Join(lines)))
	return 1
}

// paste([s])
func (r *Runner) paste(L *lua.LState) int {
	var lines []text.Line
	if L.GetTop() >= 1 {
		lines = text.SplitLines(L.CheckString(1))
	} else {
		var err error
		if lines, err = r.clip.Read(); err != nil {
			L.RaiseError("paste: %v", err)
			return 0
		}
	}
	r.ed.Paste(lines)
	return 0
}

// undo() -> bool
func (r *Runner) undo(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.Undo()))
	return 1
}

// redo() -> bool
func (r *Runner) redo(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.Redo()))
	return 1
}

// text() -> string
func (r *Runner) text(L *lua.LState) int {
	L.Push(lua.LString(r.ed.Text()))
	return 1
}

// line(n) -> string
func (r *Runner) line(L *lua.LState) int {
	n := L.CheckInt(1)
	buf := r.ed.Buffer()
	if n < 1 || n > buf.LineCount() {
		L.ArgError(1, fmt.Sprintf("line %d outside 1..%d", n, buf.LineCount()))
		return 0
	}
	L.Push(lua.LString(buf.Line(n - 1).Clean()))
	return 1
}

// line_count() -> number
func (r *Runner) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.ed.Buffer().LineCount()))
	return 1
}

// cursor() -> row, col
func (r *Runner) cursor(L *lua.LState) int {
	p := r.ed.Cursor()
	L.Push(lua.LNumber(p.Row + 1))
	L.Push(lua.LNumber(p.Col + 1))
	return 2
}

// save([path])
func (r *Runner) save(L *lua.LState) int {
	var err error
	if path := L.OptString(1, ""); path != "" {
		err = r.ed.SaveAs(path)
	} else {
		err = r.ed.Save()
	}
	if err != nil {
		if errors.Is(err, editor.ErrNoPath) {
			r.ed.CancelPrompt()
		}
		L.RaiseError("save: %v", err)
	}
	return 0
}

// message([s]) -> string
func (r *Runner) message(L *lua.LState) int {
	if L.GetTop() >= 1 {
		r.ed.SetMessage("%s", L.CheckString(1))
		return 0
	}
	L.Push(lua.LString(r.ed.Message()))
	return 1
}
