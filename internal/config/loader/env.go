package loader

import (
	"os"
	"strings"
)

// EnvLoader collects configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "REDIT_")
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates an environment loader with the default mapping.
// The prefix should include the trailing underscore (e.g., "REDIT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lookup:  os.LookupEnv,
	}
}

// WithLookup replaces the environment lookup, for tests.
func (l *EnvLoader) WithLookup(lookup func(string) (string, bool)) *EnvLoader {
	l.lookup = lookup
	return l
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "TAB_WIDTH": "editor.tab_width",
		prefix + "MOUSE":     "editor.mouse",
		prefix + "WATCH":     "editor.watch",
		prefix + "CLIPBOARD": "clipboard.provider",
		prefix + "THEME":     "theme.style",
		prefix + "SYNTAX":    "theme.syntax",
		prefix + "LOG_LEVEL": "log.level",
		prefix + "LOG_FILE":  "log.file",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load returns the set variables keyed by config path.
// Empty values are treated as set.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			out[path] = strings.TrimSpace(val)
		}
	}
	return out
}
