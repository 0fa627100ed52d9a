package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/redit/internal/engine/buffer"
	"github.com/dshills/redit/internal/renderer/viewport"
)

// Request is an action that discards unsaved changes.
type Request uint8

const (
	RequestNone Request = iota
	RequestQuit
	RequestOpen
	RequestReload
	RequestClose
)

// Key returns the key binding named in confirmation messages.
func (r Request) Key() string {
	switch r {
	case RequestQuit:
		return "Ctrl-Q"
	case RequestOpen:
		return "Ctrl-O"
	case RequestReload:
		return "Ctrl-R"
	case RequestClose:
		return "Ctrl-W"
	default:
		return ""
	}
}

func (r Request) verb() string {
	switch r {
	case RequestQuit:
		return "quit"
	case RequestOpen:
		return "open a file"
	case RequestReload:
		return "reload from disk"
	case RequestClose:
		return "close the tab"
	default:
		return ""
	}
}

// Confirm reports whether r may proceed. A clean session always may. A
// dirty one must see the same request twice in a row; the first one only
// shows a warning.
func (e *Editor) Confirm(r Request) bool {
	if !e.Dirty() || !e.confirm || e.pending == r {
		e.pending = RequestNone
		return true
	}
	e.pending = r
	e.SetMessage("File has unsaved changes. Press %s again to %s.", r.Key(), r.verb())
	return false
}

// RequestOpen opens the "File to open" prompt once unsaved changes are
// confirmed. Returns false while waiting for confirmation.
func (e *Editor) RequestOpen() (bool, error) {
	if !e.Confirm(RequestOpen) {
		return false, nil
	}
	return true, e.startPrompt("File to open", PromptOpen)
}

// RequestSaveAs opens the "Save as" prompt.
func (e *Editor) RequestSaveAs() error {
	return e.startPrompt("Save as", PromptSaveAs)
}

// RequestReload reloads the file once unsaved changes are confirmed.
// Returns false while waiting for confirmation.
func (e *Editor) RequestReload() (bool, error) {
	if !e.Confirm(RequestReload) {
		return false, nil
	}
	return true, e.Reload()
}

// Open replaces the session's buffer with the file at path. Every line
// keeps its original terminator.
func (e *Editor) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &FileError{Op: "open", Path: path, Err: err}
	}
	if err := e.load(abs); err != nil {
		return &FileError{Op: "open", Path: abs, Err: err}
	}
	e.log.Info("opened %s (%d lines, %s)", abs, e.buf.LineCount(), e.buf.LineEnding())
	e.SetMessage("File opened.")
	return nil
}

// OpenOrCreate opens path, or starts an empty session that will be saved
// to path when the file does not exist.
func (e *Editor) OpenOrCreate(path string) error {
	err := e.Open(path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	abs, aerr := filepath.Abs(path)
	if aerr != nil {
		return err
	}
	e.replace(buffer.New(nil), abs, time.Time{})
	e.SetMessage("New file.")
	return nil
}

// Reload rereads the file from disk, discarding the edit history.
func (e *Editor) Reload() error {
	if e.path == "" {
		e.SetMessage("No file to reload.")
		return ErrNoPath
	}
	cursor := e.view.Cursor()
	if err := e.load(e.path); err != nil {
		return &FileError{Op: "reload", Path: e.path, Err: err}
	}
	e.view.Move(viewport.Absolute(cursor.Col, cursor.Row), false, e.buf)
	e.log.Info("reloaded %s", e.path)
	e.SetMessage("File reloaded.")
	return nil
}

// Save writes the buffer to its file. A session without a path opens the
// "Save as" prompt and returns ErrNoPath.
func (e *Editor) Save() error {
	if e.path == "" {
		if err := e.RequestSaveAs(); err != nil {
			return err
		}
		return ErrNoPath
	}
	if err := e.write(e.path); err != nil {
		e.log.Error("save %s: %v", e.path, err)
		return &FileError{Op: "save", Path: e.path, Err: err}
	}
	e.buf.MarkSaved()
	e.pending = RequestNone
	e.log.Info("saved %s", e.path)
	e.SetMessage("File saved.")
	return nil
}

// SaveAs sets the session's path and saves to it.
func (e *Editor) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	prev := e.path
	e.path = abs
	if err := e.Save(); err != nil {
		e.path = prev
		return err
	}
	return nil
}

// ChangedOnDisk reports whether the file was modified by someone else
// since it was last opened, reloaded or saved by this session. When it
// was, a message tells the user how to reload and the new modification
// time is remembered so the change is reported once.
func (e *Editor) ChangedOnDisk() bool {
	if e.path == "" {
		return false
	}
	info, err := os.Stat(e.path)
	if err != nil {
		return false
	}
	if info.ModTime().Equal(e.modTime) {
		return false
	}
	e.modTime = info.ModTime()
	e.log.Info("%s changed on disk", e.path)
	e.SetMessage("File changed on disk. Press %s to reload.", RequestReload.Key())
	return true
}

func (e *Editor) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	b, err := buffer.FromReader(bufio.NewReader(f))
	if err != nil {
		return err
	}
	e.replace(b, path, info.ModTime())
	return nil
}

// replace swaps in a new buffer and resets the cursor, selection and
// pending confirmation.
func (e *Editor) replace(b *buffer.Buffer, path string, modTime time.Time) {
	e.buf = b
	e.path = path
	e.modTime = modTime
	e.pending = RequestNone
	e.view.Move(viewport.BegFile(), false, e.buf)
}

func (e *Editor) write(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := e.buf.WriteTo(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		e.modTime = info.ModTime()
	}
	return nil
}
