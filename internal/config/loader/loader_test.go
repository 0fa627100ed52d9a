package loader

import (
	"errors"
	"io/fs"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

type settings struct {
	Editor struct {
		TabWidth int  `toml:"tab_width" yaml:"tab_width"`
		Mouse    bool `toml:"mouse" yaml:"mouse"`
	} `toml:"editor" yaml:"editor"`
	Name string `toml:"name" yaml:"name"`
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/a/config.toml", "toml", false},
		{"/a/config.yaml", "yaml", false},
		{"/a/config.YML", "yaml", false},
		{"/a/config.json", "", true},
	}

	for _, tt := range tests {
		l, err := ForPath(NewMemFS(), tt.path)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "toml" {
				t.Errorf("ForPath(%q) = TOML loader", tt.path)
			}
		case *YAMLLoader:
			if tt.want != "yaml" {
				t.Errorf("ForPath(%q) = YAML loader", tt.path)
			}
		}
	}
}

func TestTOMLLoader_LoadInto(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
name = "work"

[editor]
tab_width = 8
`)

	var s settings
	s.Editor.Mouse = true

	found, err := NewTOMLLoader(memfs).LoadInto("/config.toml", &s)
	if err != nil || !found {
		t.Fatalf("LoadInto() = %v, %v", found, err)
	}
	if s.Editor.TabWidth != 8 {
		t.Errorf("tab_width = %d, want 8", s.Editor.TabWidth)
	}
	if !s.Editor.Mouse {
		t.Error("absent key should keep its prior value")
	}
	if s.Name != "work" {
		t.Errorf("name = %q, want work", s.Name)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	var s settings
	found, err := NewTOMLLoader(NewMemFS()).LoadInto("/nope.toml", &s)
	if found || err != nil {
		t.Errorf("LoadInto() missing file = %v, %v; want false, nil", found, err)
	}
}

func TestTOMLLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[editor\ntab_width = 1"},
		{"unknown key", "[editor]\ntab_size = 4"},
		{"wrong type", "[editor]\ntab_width = \"four\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := NewMemFS()
			memfs.AddFile("/c.toml", tt.content)
			var s settings
			_, err := NewTOMLLoader(memfs).LoadInto("/c.toml", &s)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("LoadInto() error = %v, want *ParseError", err)
			}
			if pe.Path != "/c.toml" {
				t.Errorf("ParseError.Path = %q", pe.Path)
			}
		})
	}
}

func TestYAMLLoader_LoadInto(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", "editor:\n  tab_width: 2\n  mouse: false\n")

	var s settings
	s.Editor.Mouse = true
	found, err := NewYAMLLoader(memfs).LoadInto("/config.yaml", &s)
	if err != nil || !found {
		t.Fatalf("LoadInto() = %v, %v", found, err)
	}
	if s.Editor.TabWidth != 2 || s.Editor.Mouse {
		t.Errorf("editor = %+v", s.Editor)
	}
}

func TestYAMLLoader_EmptyAndUnknown(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yaml", "")
	memfs.AddFile("/bad.yaml", "editor:\n  tab_size: 2\n")

	var s settings
	if _, err := NewYAMLLoader(memfs).LoadInto("/empty.yaml", &s); err != nil {
		t.Errorf("empty document error = %v", err)
	}

	_, err := NewYAMLLoader(memfs).LoadInto("/bad.yaml", &s)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("unknown key error = %v, want *ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
}

func TestEnvLoader(t *testing.T) {
	env := map[string]string{
		"REDIT_TAB_WIDTH": " 2 ",
		"REDIT_THEME":     "dracula",
		"OTHER_THING":     "x",
	}
	l := NewEnvLoader("REDIT_").WithLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	l.AddMapping("REDIT_SCROLL", "editor.scroll_lines")

	got := l.Load()
	if len(got) != 2 {
		t.Fatalf("Load() = %v, want 2 entries", got)
	}
	if got["editor.tab_width"] != "2" {
		t.Errorf("editor.tab_width = %q, want 2", got["editor.tab_width"])
	}
	if got["theme.style"] != "dracula" {
		t.Errorf("theme.style = %q", got["theme.style"])
	}
}
