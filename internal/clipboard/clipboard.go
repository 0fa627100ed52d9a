// Package clipboard holds text cut or copied from a buffer.
//
// Content is a slice of line fragments in the form produced by region
// removal: every fragment but the last carries its line terminator.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/redit/internal/engine/text"
)

// ErrUnavailable indicates the system clipboard cannot be used.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Clipboard stores line fragments.
type Clipboard interface {
	Read() ([]text.Line, error)
	Write(lines []text.Line) error
}

// Register is an in-process clipboard. It is safe for concurrent use.
type Register struct {
	mu    sync.RWMutex
	lines []text.Line
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{}
}

// Read returns a copy of the stored fragments. An empty register
// returns nil.
func (r *Register) Read() ([]text.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.lines == nil {
		return nil, nil
	}
	return append([]text.Line(nil), r.lines...), nil
}

// Write replaces the stored fragments.
func (r *Register) Write(lines []text.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append([]text.Line(nil), lines...)
	return nil
}

// System uses the desktop clipboard. Writes are mirrored into a Register
// so a later Read still works when the desktop clipboard goes away.
type System struct {
	fallback *Register
	read     func() (string, error)
	write    func(string) error
}

// NewSystem creates a system clipboard provider.
func NewSystem() *System {
	return &System{
		fallback: NewRegister(),
		read:     clipboard.ReadAll,
		write:    clipboard.WriteAll,
	}
}

// Available reports whether a desktop clipboard tool was found.
func Available() bool {
	return !clipboard.Unsupported
}

// Read returns the desktop clipboard split into fragments.
func (s *System) Read() ([]text.Line, error) {
	if clipboard.Unsupported {
		return s.fallback.Read()
	}
	str, err := s.read()
	if err != nil {
		if lines, _ := s.fallback.Read(); lines != nil {
			return lines, nil
		}
		return nil, errors.Join(ErrUnavailable, err)
	}
	if str == "" {
		return nil, nil
	}
	return text.SplitLines(str), nil
}

// Write joins lines and stores them on the desktop clipboard.
func (s *System) Write(lines []text.Line) error {
	_ = s.fallback.Write(lines)
	if clipboard.Unsupported {
		return nil
	}
	if err := s.write(text.Join(lines)); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// New returns the provider named by the clipboard.provider setting.
// "system" falls back to an in-process register when no desktop
// clipboard tool is installed.
func New(provider string) Clipboard {
	if provider == "system" && Available() {
		return NewSystem()
	}
	return NewRegister()
}
