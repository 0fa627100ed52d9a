package text

import (
	"strings"
	"unicode/utf8"
)

// Line is one physical line of text including its terminator.
// A Line is immutable; every edit produces a new Line.
type Line struct {
	raw string
}

// NewLine creates a Line from raw content.
func NewLine(raw string) Line {
	return Line{raw: raw}
}

// Lines converts raw strings to Lines.
func Lines(raws ...string) []Line {
	out := make([]Line, len(raws))
	for i, r := range raws {
		out[i] = Line{raw: r}
	}
	return out
}

// Raw returns the exact stored content.
func (l Line) Raw() string {
	return l.raw
}

// Clean returns the content without its trailing terminator.
func (l Line) Clean() string {
	return strings.TrimRight(l.raw, "\r\n")
}

// Ending returns the trailing terminator, or "" for an unterminated line.
func (l Line) Ending() string {
	return l.raw[len(l.Clean()):]
}

// Render returns the clean content with each tab replaced by tabWidth spaces.
func (l Line) Render(tabWidth int) string {
	clean := l.Clean()
	if !strings.Contains(clean, "\t") {
		return clean
	}
	if tabWidth < 0 {
		tabWidth = 0
	}
	return strings.ReplaceAll(clean, "\t", strings.Repeat(" ", tabWidth))
}

// RawLen returns the number of characters in the raw content.
func (l Line) RawLen() int {
	return utf8.RuneCountInString(l.raw)
}

// CleanLen returns the number of characters in the clean content.
func (l Line) CleanLen() int {
	return utf8.RuneCountInString(l.Clean())
}

// IsTerminated reports whether the line ends with a terminator.
func (l Line) IsTerminated() bool {
	return l.Ending() != ""
}

// String implements fmt.Stringer.
func (l Line) String() string {
	return l.raw
}

// Join concatenates the raw content of lines.
func Join(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.raw)
	}
	return sb.String()
}
