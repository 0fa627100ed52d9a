package app

import (
	"github.com/dshills/redit/internal/editor"
)

// fileChanged is the interrupt payload for a file modified on disk.
type fileChanged string

// syncWatch makes the watcher follow e's current path, which changes on
// open and save as.
func (app *Application) syncWatch(e *editor.Editor) {
	if app.watcher == nil {
		return
	}
	path := e.Path()
	old, ok := app.watched[e]
	if ok && old == path {
		return
	}
	app.unwatch(e)
	if path == "" {
		return
	}
	if err := app.watcher.Add(path); err != nil {
		app.log.Warn("watch %s: %v", path, err)
		return
	}
	app.watched[e] = path
}

func (app *Application) unwatch(e *editor.Editor) {
	old, ok := app.watched[e]
	if !ok {
		return
	}
	delete(app.watched, e)
	if err := app.watcher.Remove(old); err != nil {
		app.log.Warn("unwatch %s: %v", old, err)
	}
}

// forwardChanges posts watcher events to the event loop.
func (app *Application) forwardChanges(done <-chan struct{}) {
	defer app.wg.Done()
	for {
		select {
		case ev, ok := <-app.watcher.Events():
			if !ok {
				return
			}
			app.log.Debug("%s %s", ev.Op, ev.Path)
			app.post(fileChanged(ev.Path))
		case err, ok := <-app.watcher.Errors():
			if !ok {
				return
			}
			app.log.Warn("watcher: %v", err)
		case <-done:
			return
		}
	}
}

// handleFileChanged asks every tab showing path to compare it with the disk.
func (app *Application) handleFileChanged(path string) {
	for _, e := range app.tabs {
		if e.Path() == path {
			e.ChangedOnDisk()
		}
	}
}
