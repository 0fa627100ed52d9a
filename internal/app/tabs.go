package app

import (
	"github.com/dshills/redit/internal/editor"
)

// NewTab opens an empty session and makes it active.
func (app *Application) NewTab() *editor.Editor {
	e := editor.New(app.width, app.height, app.editorOpts...)
	app.tabs = append(app.tabs, e)
	app.active = len(app.tabs) - 1
	app.log.Debug("new tab %s", e.ID())
	return e
}

// OpenTab opens path in a new active tab. A missing file starts a new
// file that will be written to path on save.
func (app *Application) OpenTab(path string) error {
	e := editor.New(app.width, app.height, app.editorOpts...)
	if err := e.OpenOrCreate(path); err != nil {
		app.log.Error("open %s: %v", path, err)
		return NewOperationError("open", path, err)
	}
	app.tabs = append(app.tabs, e)
	app.active = len(app.tabs) - 1
	app.syncWatch(e)
	return nil
}

// CloseTab closes the active tab once unsaved changes are confirmed.
// Closing the last tab leaves an empty one in its place.
func (app *Application) CloseTab() {
	e := app.Active()
	if !e.Confirm(editor.RequestClose) {
		return
	}
	app.unwatch(e)
	if p := e.Path(); p != "" {
		app.renderer.Forget(p)
	}

	app.tabs = append(app.tabs[:app.active], app.tabs[app.active+1:]...)
	app.log.Debug("closed tab %s", e.ID())
	if len(app.tabs) == 0 {
		app.NewTab()
		return
	}
	if app.active >= len(app.tabs) {
		app.active = len(app.tabs) - 1
	}
}

// NextTab activates the tab to the right, wrapping around.
func (app *Application) NextTab() {
	app.active = (app.active + 1) % len(app.tabs)
}

// Quit returns ErrQuit when no tab holds unsaved changes or the user
// confirmed discarding them. Otherwise the first dirty tab, preferring
// the active one, is shown with a warning and nil is returned.
func (app *Application) Quit() error {
	dirty := -1
	if app.Active().Dirty() {
		dirty = app.active
	} else {
		for i, e := range app.tabs {
			if e.Dirty() {
				dirty = i
				break
			}
		}
	}
	if dirty < 0 {
		return ErrQuit
	}
	app.active = dirty
	if app.tabs[dirty].Confirm(editor.RequestQuit) {
		return ErrQuit
	}
	return nil
}
