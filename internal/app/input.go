package app

import (
	"errors"

	"github.com/dshills/redit/internal/editor"
	"github.com/dshills/redit/internal/engine/text"
	"github.com/dshills/redit/internal/renderer/backend"
	"github.com/dshills/redit/internal/renderer/viewport"
)

// ctrlRunes maps Ctrl+letter reported as a rune with a modifier onto the
// dedicated control keys.
var ctrlRunes = map[rune]backend.Key{
	'c': backend.KeyCtrlC,
	'n': backend.KeyCtrlN,
	'o': backend.KeyCtrlO,
	'q': backend.KeyCtrlQ,
	'r': backend.KeyCtrlR,
	's': backend.KeyCtrlS,
	't': backend.KeyCtrlT,
	'v': backend.KeyCtrlV,
	'w': backend.KeyCtrlW,
	'x': backend.KeyCtrlX,
	'y': backend.KeyCtrlY,
	'z': backend.KeyCtrlZ,
}

// HandleEvent applies one backend event. It returns ErrQuit when the
// application should exit.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		if app.cfg.Editor.Mouse {
			app.handleMouse(ev)
		}
	case backend.EventResize:
		app.Resize(ev.Width, ev.Height)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	}
	return nil
}

func (app *Application) handleInterrupt(ev backend.Event) error {
	switch data := ev.Data.(type) {
	case fileChanged:
		app.handleFileChanged(string(data))
	case error:
		return data
	}
	return nil
}

func normalizeKey(ev backend.Event) backend.Key {
	if ev.Key == backend.KeyRune && ev.Mod.Has(backend.ModCtrl) {
		r := ev.Rune
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if k, ok := ctrlRunes[r]; ok {
			return k
		}
	}
	return ev.Key
}

func (app *Application) handleKey(ev backend.Event) error {
	e := app.Active()
	shift := ev.Mod.Has(backend.ModShift)
	ctrl := ev.Mod.Has(backend.ModCtrl)

	switch normalizeKey(ev) {
	// Files and tabs
	case backend.KeyCtrlQ:
		return app.Quit()
	case backend.KeyCtrlS:
		app.save(e)
	case backend.KeyCtrlO:
		if _, err := e.RequestOpen(); err != nil {
			app.log.Debug("open: %v", err)
		}
	case backend.KeyCtrlR:
		app.reload(e)
	case backend.KeyCtrlT:
		app.NewTab()
	case backend.KeyCtrlW:
		app.CloseTab()
		return nil
	case backend.KeyCtrlN:
		app.NextTab()

	// Editing
	case backend.KeyCtrlZ:
		e.Undo()
	case backend.KeyCtrlY:
		e.Redo()
	case backend.KeyCtrlX:
		app.yank(e.Cut())
	case backend.KeyCtrlC:
		app.yank(e.Copy())
	case backend.KeyCtrlV:
		app.paste(e)
	case backend.KeyEnter:
		if err := e.Return(); err != nil {
			app.log.Warn("%v", err)
		}
	case backend.KeyTab:
		e.WriteChar('\t')
	case backend.KeyBackspace:
		e.Backspace()
	case backend.KeyDelete:
		e.DeleteChar()
	case backend.KeyEscape:
		if e.PromptActive() {
			e.CancelPrompt()
		} else {
			e.View().ClearSelection()
		}
	case backend.KeyRune:
		if !ctrl && !ev.Mod.Has(backend.ModAlt) {
			e.WriteChar(ev.Rune)
		}

	// Movement
	case backend.KeyUp:
		e.Move(viewport.Relative(0, -1), shift)
	case backend.KeyDown:
		e.Move(viewport.Relative(0, 1), shift)
	case backend.KeyLeft:
		e.Move(viewport.Relative(-1, 0), shift)
	case backend.KeyRight:
		e.Move(viewport.Relative(1, 0), shift)
	case backend.KeyHome:
		if ctrl {
			e.Move(viewport.BegFile(), shift)
		} else {
			e.Move(viewport.Home(), shift)
		}
	case backend.KeyEnd:
		if ctrl {
			e.Move(viewport.EndFile(), shift)
		} else {
			e.Move(viewport.End(), shift)
		}
	case backend.KeyPageUp:
		e.Move(viewport.PageUp(), shift)
	case backend.KeyPageDown:
		e.Move(viewport.PageDown(), shift)
	}

	app.syncWatch(e)
	return nil
}

func (app *Application) handleMouse(ev backend.Event) {
	e := app.Active()
	switch ev.MouseButton {
	case backend.MouseLeft:
		if ev.MouseY > e.View().ScreenRows() {
			return
		}
		e.Move(viewport.AbsoluteScreen(ev.MouseX, ev.MouseY), app.dragging)
		app.dragging = true
	case backend.MouseWheelUp:
		e.Move(viewport.ScrollUp(app.cfg.Editor.ScrollLines), false)
	case backend.MouseWheelDown:
		e.Move(viewport.ScrollDown(app.cfg.Editor.ScrollLines), false)
	case backend.MouseNone:
		app.dragging = false
	}
}

func (app *Application) save(e *editor.Editor) {
	err := e.Save()
	switch {
	case err == nil:
	case errors.Is(err, editor.ErrNoPath), errors.Is(err, editor.ErrPromptActive):
		// the "Save as" prompt takes over
	default:
		app.log.Error("%v", NewOperationError("save", e.Path(), err))
		e.SetMessage("Error writing to file.")
	}
}

func (app *Application) reload(e *editor.Editor) {
	_, err := e.RequestReload()
	switch {
	case err == nil:
	case errors.Is(err, editor.ErrNoPath):
		// message already shown
	default:
		app.log.Error("%v", NewOperationError("reload", e.Path(), err))
		e.SetMessage("Error reloading file.")
	}
}

func (app *Application) yank(lines []text.Line) {
	if lines == nil {
		return
	}
	if err := app.clip.Write(lines); err != nil {
		app.log.Warn("clipboard write: %v", err)
	}
}

func (app *Application) paste(e *editor.Editor) {
	lines, err := app.clip.Read()
	if err != nil {
		app.log.Warn("clipboard read: %v", err)
		return
	}
	e.Paste(lines)
}
