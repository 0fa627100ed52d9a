// Package app ties editor sessions to a terminal. It owns the tabs, maps
// keys and mouse events onto session operations, runs the event loop and
// reports changes made to open files by other programs.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/redit/internal/clipboard"
	"github.com/dshills/redit/internal/config"
	"github.com/dshills/redit/internal/editor"
	"github.com/dshills/redit/internal/logging"
	"github.com/dshills/redit/internal/renderer"
	"github.com/dshills/redit/internal/renderer/backend"
	"github.com/dshills/redit/internal/watcher"
)

// Terminal size assumed until the backend reports one.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Application is the interactive editor.
type Application struct {
	backend  backend.Backend
	renderer *renderer.Renderer

	cfg  *config.Config
	log  *logging.Logger
	clip clipboard.Clipboard

	// Watching
	watcher *watcher.Watcher
	watched map[*editor.Editor]string

	editorOpts []editor.Option

	tabs   []*editor.Editor
	active int

	width, height int
	dragging      bool

	running atomic.Bool
	wg      sync.WaitGroup
}

// Options configures the application.
type Options struct {
	// Config holds the settings. Defaults to config.Default().
	Config *config.Config

	// Logger receives application logs. Defaults to logging.Default().
	Logger *logging.Logger

	// Clipboard holds cut and copied text. Defaults to the provider named
	// in Config.
	Clipboard clipboard.Clipboard

	// Files are opened in tabs on startup; missing files become new files.
	Files []string

	// EditorOptions are applied to every new session.
	EditorOptions []editor.Option
}

// New creates an application drawing to b. The backend is initialized by
// Run.
func New(b backend.Backend, opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.New(cfg.Clipboard.Provider)
	}

	r := renderer.New(b, renderer.Options{
		Syntax: cfg.Theme.Syntax,
		Theme:  cfg.Theme.Style,
	})

	app := &Application{
		backend:  b,
		renderer: r,
		cfg:      cfg,
		log:      log.WithComponent("app"),
		clip:     clip,
		watched:  make(map[*editor.Editor]string),
		width:    defaultWidth,
		height:   defaultHeight,
	}

	app.editorOpts = []editor.Option{
		editor.WithLogger(log),
		editor.WithTabWidth(cfg.Editor.TabWidth),
	}
	if !cfg.Editor.ConfirmQuit {
		app.editorOpts = append(app.editorOpts, editor.WithoutConfirm())
	}
	app.editorOpts = append(app.editorOpts, opts.EditorOptions...)

	if cfg.Editor.Watch {
		w, err := watcher.New()
		if err != nil {
			app.log.Warn("file watching disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	for _, path := range opts.Files {
		if err := app.OpenTab(path); err != nil {
			app.Close()
			return nil, err
		}
	}
	if len(app.tabs) == 0 {
		app.NewTab()
	}
	return app, nil
}

// Run initializes the backend and processes events until the user quits
// or ctx is done. Quitting returns nil; a done context returns its error.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if app.cfg.Editor.Mouse {
		app.backend.EnableMouse()
	}
	app.Resize(app.backend.Size())
	app.log.Info("started with %d tab(s)", len(app.tabs))

	done := make(chan struct{})
	defer func() {
		close(done)
		app.wg.Wait()
	}()
	app.wg.Add(1)
	go app.forwardCancel(ctx, done)
	if app.watcher != nil {
		app.wg.Add(1)
		go app.forwardChanges(done)
	}

	for {
		app.Render()
		err := app.HandleEvent(app.backend.PollEvent())
		if errors.Is(err, ErrQuit) {
			app.log.Info("quit")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Close releases the file watcher.
func (app *Application) Close() error {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Close()
}

// Render draws the active tab.
func (app *Application) Render() {
	app.renderer.Render(app.Active(), renderer.Tabs{Index: app.active, Count: len(app.tabs)})
}

// Resize lays every tab out for a new terminal size.
func (app *Application) Resize(width, height int) {
	app.width, app.height = width, height
	for _, e := range app.tabs {
		e.Resize(width, height)
	}
}

// Active returns the session shown on screen.
func (app *Application) Active() *editor.Editor {
	return app.tabs[app.active]
}

// Tabs returns the open sessions in tab order.
func (app *Application) Tabs() []*editor.Editor {
	out := make([]*editor.Editor, len(app.tabs))
	copy(out, app.tabs)
	return out
}

// ActiveIndex returns the index of the active tab.
func (app *Application) ActiveIndex() int {
	return app.active
}

// Config returns the settings.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// forwardCancel turns the end of ctx into an interrupt event so the event
// loop, blocked in PollEvent, wakes up and returns.
func (app *Application) forwardCancel(ctx context.Context, done <-chan struct{}) {
	defer app.wg.Done()
	select {
	case <-ctx.Done():
		app.post(ctx.Err())
	case <-done:
	}
}

func (app *Application) post(data any) {
	if err := app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: data}); err != nil {
		app.log.Warn("post event: %v", err)
	}
}
