// Package layout measures rendered text for the viewport and renderer.
package layout

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// DefaultTabWidth is used when no valid tab width is configured.
const DefaultTabWidth = 4

// TabExpander measures text in which every tab occupies exactly tabWidth
// cells. Other characters are measured by grapheme cluster width.
type TabExpander struct {
	tabWidth int
}

// NewTabExpander creates a tab expander with the given tab width.
func NewTabExpander(tabWidth int) *TabExpander {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &TabExpander{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (t *TabExpander) TabWidth() int {
	return t.tabWidth
}

// SetTabWidth sets the tab width.
func (t *TabExpander) SetTabWidth(width int) {
	if width < 1 {
		width = 1
	}
	t.tabWidth = width
}

// Cluster is one grapheme cluster of a line as laid out on screen.
type Cluster struct {
	Text  string
	Index int // character index of the cluster's first rune
	Cell  int // rendered column where the cluster starts
	Width int
}

// Clusters lays s out one grapheme cluster at a time and calls fn with
// each, stopping early when fn returns false. A tab is tabWidth cells wide.
// Width, ColumnToIndex and the renderer all measure through Clusters.
func (t *TabExpander) Clusters(s string, fn func(Cluster) bool) {
	idx, cell := 0, 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		c := Cluster{Text: g.Str(), Index: idx, Cell: cell, Width: g.Width()}
		if c.Text == "\t" {
			c.Width = t.tabWidth
		}
		if !fn(c) {
			return
		}
		idx += utf8.RuneCountInString(c.Text)
		cell += c.Width
	}
}

// Width returns the display width of s with tabs expanded.
func (t *TabExpander) Width(s string) int {
	w := 0
	t.Clusters(s, func(c Cluster) bool {
		w = c.Cell + c.Width
		return true
	})
	return w
}

// ColumnToIndex returns the character index in s displayed at screen
// column col. Columns past the end map to the length of s; a column in the
// middle of a wide cluster maps to the start of that cluster.
func (t *TabExpander) ColumnToIndex(s string, col int) int {
	idx := -1
	t.Clusters(s, func(c Cluster) bool {
		if c.Cell+c.Width > col {
			idx = c.Index
			return false
		}
		return true
	})
	if idx < 0 {
		return utf8.RuneCountInString(s)
	}
	return idx
}
