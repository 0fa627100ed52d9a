// Package highlight colours buffer lines with chroma lexers and styles.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/redit/internal/engine/text"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Span styles the characters [Start, End) of a line's clean content.
type Span struct {
	Start, End int
	Style      tcell.Style
}

// Highlighter tokenises documents of one language. Results for the last
// document are cached, so repeated frames of an unchanged buffer are
// cheap. It is safe for concurrent use.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	base  tcell.Style

	mu        sync.Mutex
	cacheText string
	cache     [][]Span
}

// New returns a highlighter for filename using the named chroma style.
// Unknown file types are highlighted as plain text and unknown styles fall
// back to chroma's default.
func New(filename, styleName string) *Highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	if styleName == "" {
		styleName = DefaultStyle
	}
	style := styles.Get(styleName)

	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: style,
		base:  entryStyle(tcell.StyleDefault, style.Get(chroma.Background)),
	}
}

// Base returns the style of unhighlighted text.
func (h *Highlighter) Base() tcell.Style {
	return h.base
}

// Highlight returns the spans for every line. Columns index the clean
// content of each line. On a lexer error every line is left unstyled.
func (h *Highlighter) Highlight(lines []text.Line) [][]Span {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Clean())
		sb.WriteByte('\n')
	}
	src := sb.String()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cache != nil && src == h.cacheText {
		return h.cache
	}

	spans := make([][]Span, len(lines))
	it, err := h.lexer.Tokenise(nil, src)
	if err == nil {
		h.collect(it.Tokens(), spans)
	}
	h.cacheText, h.cache = src, spans
	return spans
}

// collect splits tokens at line breaks and converts them to spans.
func (h *Highlighter) collect(tokens []chroma.Token, spans [][]Span) {
	row, col := 0, 0
	for _, tok := range tokens {
		style := entryStyle(h.base, h.style.Get(tok.Type))
		start := col
		for _, r := range tok.Value {
			if r != '\n' {
				col++
				continue
			}
			if row < len(spans) && col > start && style != h.base {
				spans[row] = append(spans[row], Span{Start: start, End: col, Style: style})
			}
			row++
			col, start = 0, 0
		}
		if row < len(spans) && col > start && style != h.base {
			spans[row] = append(spans[row], Span{Start: start, End: col, Style: style})
		}
	}
}

// StyleAt returns the style of column col given the spans of its line.
func StyleAt(spans []Span, col int, base tcell.Style) tcell.Style {
	for _, s := range spans {
		if col >= s.Start && col < s.End {
			return s.Style
		}
	}
	return base
}

// entryStyle applies a chroma style entry on top of base.
func entryStyle(base tcell.Style, e chroma.StyleEntry) tcell.Style {
	s := base
	if e.Colour.IsSet() {
		s = s.Foreground(colour(e.Colour))
	}
	if e.Background.IsSet() {
		s = s.Background(colour(e.Background))
	}
	if e.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if e.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if e.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func colour(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
