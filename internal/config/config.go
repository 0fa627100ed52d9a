package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dshills/redit/internal/config/loader"
	"github.com/dshills/redit/internal/logging"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "REDIT_"

// Clipboard providers.
const (
	ClipboardInternal = "internal"
	ClipboardSystem   = "system"
)

// Config holds all settings.
type Config struct {
	Editor    EditorConfig    `toml:"editor" yaml:"editor"`
	Clipboard ClipboardConfig `toml:"clipboard" yaml:"clipboard"`
	Theme     ThemeConfig     `toml:"theme" yaml:"theme"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// EditorConfig holds editing and display settings.
type EditorConfig struct {
	// TabWidth is the number of cells a tab occupies.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
	// Mouse enables click, drag and wheel handling.
	Mouse bool `toml:"mouse" yaml:"mouse"`
	// ScrollLines is the number of rows one wheel step scrolls.
	ScrollLines int `toml:"scroll_lines" yaml:"scroll_lines"`
	// Watch reports changes made to open files by other programs.
	Watch bool `toml:"watch" yaml:"watch"`
	// ConfirmQuit requires a second request before discarding unsaved changes.
	ConfirmQuit bool `toml:"confirm_quit" yaml:"confirm_quit"`
}

// ClipboardConfig selects where cut and copied text is held.
type ClipboardConfig struct {
	// Provider is "internal" or "system".
	Provider string `toml:"provider" yaml:"provider"`
}

// ThemeConfig holds colouring settings.
type ThemeConfig struct {
	// Style is a syntax highlighting style name.
	Style string `toml:"style" yaml:"style"`
	// Syntax enables syntax highlighting.
	Syntax bool `toml:"syntax" yaml:"syntax"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Interactive sessions discard logs when empty.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:    4,
			Mouse:       true,
			ScrollLines: 3,
			Watch:       true,
			ConfirmQuit: true,
		},
		Clipboard: ClipboardConfig{Provider: ClipboardInternal},
		Theme:     ThemeConfig{Style: "monokai", Syntax: true},
		Log:       LogConfig{Level: "info"},
	}
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs = append(errs, &ValidationError{Field: "editor.tab_width", Value: c.Editor.TabWidth, Message: "must be between 1 and 16"})
	}
	if c.Editor.ScrollLines < 1 {
		errs = append(errs, &ValidationError{Field: "editor.scroll_lines", Value: c.Editor.ScrollLines, Message: "must be positive"})
	}
	switch c.Clipboard.Provider {
	case ClipboardInternal, ClipboardSystem:
	default:
		errs = append(errs, &ValidationError{Field: "clipboard.provider", Value: c.Clipboard.Provider, Message: "must be internal or system"})
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{Field: "log.level", Value: c.Log.Level, Message: err.Error()})
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// Options controls Load.
type Options struct {
	// Path is an explicit config file. When empty, DefaultPath is used and
	// a missing file is not an error.
	Path string
	// FS reads config files. Defaults to the OS file system.
	FS loader.FileSystem
	// Env supplies environment overrides. Defaults to the process
	// environment with EnvPrefix.
	Env *loader.EnvLoader
}

// DefaultPath returns <UserConfigDir>/redit/config.toml, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "redit", "config.toml")
}

// Load resolves defaults, the config file and environment overrides, then
// validates the result.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		l, err := loader.ForPath(opts.FS, path)
		if err != nil {
			return nil, err
		}
		found, err := l.LoadInto(path, cfg)
		if err != nil {
			return nil, err
		}
		if !found && explicit {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
	}

	env := opts.Env
	if env == nil {
		env = loader.NewEnvLoader(EnvPrefix)
	}
	if err := cfg.ApplyOverrides(env.Load()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides sets values keyed by dotted config path.
func (c *Config) ApplyOverrides(values map[string]string) error {
	var errs []error
	for path, raw := range values {
		if err := c.set(path, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Config) set(path, raw string) error {
	switch path {
	case "editor.tab_width":
		return setInt(&c.Editor.TabWidth, path, raw)
	case "editor.scroll_lines":
		return setInt(&c.Editor.ScrollLines, path, raw)
	case "editor.mouse":
		return setBool(&c.Editor.Mouse, path, raw)
	case "editor.watch":
		return setBool(&c.Editor.Watch, path, raw)
	case "editor.confirm_quit":
		return setBool(&c.Editor.ConfirmQuit, path, raw)
	case "clipboard.provider":
		c.Clipboard.Provider = raw
	case "theme.style":
		c.Theme.Style = raw
	case "theme.syntax":
		return setBool(&c.Theme.Syntax, path, raw)
	case "log.level":
		c.Log.Level = raw
	case "log.file":
		c.Log.File = raw
	default:
		return &ValidationError{Field: path, Value: raw, Message: "unknown setting"}
	}
	return nil
}

func setInt(dst *int, path, raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return &ValidationError{Field: path, Value: raw, Message: "not an integer"}
	}
	*dst = n
	return nil
}

func setBool(dst *bool, path, raw string) error {
	switch raw {
	case "1", "true", "TRUE", "True", "yes", "on":
		*dst = true
	case "0", "false", "FALSE", "False", "no", "off":
		*dst = false
	default:
		return &ValidationError{Field: path, Value: raw, Message: "not a boolean"}
	}
	return nil
}
