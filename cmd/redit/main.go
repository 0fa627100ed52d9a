// Package main is the entry point for the redit editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/redit/internal/app"
	"github.com/dshills/redit/internal/clipboard"
	"github.com/dshills/redit/internal/config"
	"github.com/dshills/redit/internal/editor"
	"github.com/dshills/redit/internal/logging"
	"github.com/dshills/redit/internal/renderer/backend"
	"github.com/dshills/redit/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Headless sessions are laid out for a terminal of this size.
const (
	headlessWidth  = 80
	headlessHeight = 24
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	tabWidth   int
	eval       string
	debug      bool
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(config.Options{Path: opts.configPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := cfg.ApplyOverrides(opts.overrides()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := openLogger(cfg, opts.eval != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(log)
	log.Info("redit version %s", version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.eval != "" {
		return runScript(ctx, cfg, log, opts)
	}
	return runInteractive(ctx, cfg, log, opts)
}

func runInteractive(ctx context.Context, cfg *config.Config, log *logging.Logger, opts options) int {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: standard input is not a terminal (use --eval for scripts)")
		return 1
	}

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(terminal, app.Options{
		Config: cfg,
		Logger: log,
		Files:  opts.files,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runScript runs the --eval script against a session holding the first
// file, if any, and reports the session's last message.
func runScript(ctx context.Context, cfg *config.Config, log *logging.Logger, opts options) int {
	e := editor.New(headlessWidth, headlessHeight,
		editor.WithLogger(log),
		editor.WithTabWidth(cfg.Editor.TabWidth),
	)
	if len(opts.files) > 1 {
		log.Warn("--eval uses only the first file, ignoring %d more", len(opts.files)-1)
	}
	if len(opts.files) > 0 {
		if err := e.OpenOrCreate(opts.files[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	r := script.New(e,
		script.WithClipboard(clipboard.New(cfg.Clipboard.Provider)),
		script.WithOutput(os.Stdout),
		script.WithLogger(log),
	)
	defer r.Close()

	if err := r.DoFile(ctx, opts.eval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if e.Dirty() {
		log.Warn("%s has unsaved changes", e.Name())
	}
	return 0
}

// openLogger returns the process logger. Interactive sessions only log to
// a file since the terminal belongs to the editor; scripts log to stderr
// when no file is configured.
func openLogger(cfg *config.Config, headless bool) (*logging.Logger, func(), error) {
	var out io.Writer = io.Discard
	closeFn := func() {}

	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { f.Close() }
	case headless:
		out = os.Stderr
	default:
		return logging.Null(), closeFn, nil
	}

	log := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: out,
		Prefix: "redit",
	})
	return log, closeFn, nil
}

// overrides returns the settings given on the command line, keyed by
// config path.
func (o options) overrides() map[string]string {
	out := make(map[string]string)
	if o.logLevel != "" {
		out["log.level"] = o.logLevel
	}
	if o.debug {
		out["log.level"] = "debug"
	}
	if o.logFile != "" {
		out["log.file"] = o.logFile
	}
	if o.tabWidth != 0 {
		out["editor.tab_width"] = strconv.Itoa(o.tabWidth)
	}
	return out
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.IntVar(&opts.tabWidth, "tab-width", 0, "Tab width in cells (1-16)")
	flag.StringVar(&opts.eval, "eval", "", "Run a Lua script against the first file and exit")
	flag.StringVar(&opts.eval, "e", "", "Run a Lua script against the first file and exit (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "redit - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: redit [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  redit                       Open with empty buffer\n")
		fmt.Fprintf(os.Stderr, "  redit a.go b.go             Open two files in tabs\n")
		fmt.Fprintf(os.Stderr, "  redit -e fix.lua notes.txt  Edit a file with a script\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("redit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.files = flag.Args()
	return opts
}
