// Package renderer draws editor sessions to a terminal backend.
//
// A frame has three parts, top to bottom:
//
//	┌─────────────────────────────────────────┐
//	│ gutter | text rows (ScreenRows+1)       │
//	├─────────────────────────────────────────┤
//	│ status line                             │
//	│ message or prompt line                  │
//	└─────────────────────────────────────────┘
//
// Text rows show the tab-expanded clean content of each visible line,
// shifted by the viewport's column offset, coloured by the syntax
// highlighter, with the selection drawn in reverse video.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.Options{Syntax: true, Theme: "monokai"})
//	r.Render(session, renderer.Tabs{Index: 0, Count: 1})
package renderer
