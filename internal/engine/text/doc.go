// Package text provides the immutable line values and positions that the
// buffer engine is built on.
//
// A Line stores the exact raw content of one physical line, including its
// terminator. Concatenating the raw content of every line of a document
// reproduces the original bytes. Two views are derived from the raw
// content:
//
//   - Clean: the raw content with its trailing terminator removed.
//   - Render: the clean content with tabs expanded for display.
//
// Columns are character (rune) indices into the raw content, never byte
// offsets. The slicing helpers in this package clamp their column
// arguments so that callers can never index outside a line.
//
// # Usage
//
//	lines := text.SplitLines("one\r\ntwo\n")
//	// lines: ["one\r\n", "two\n", ""]
//	lines[0].Clean()   // "one"
//	lines[0].Ending()  // "\r\n"
//	lines[1].Render(4) // "two"
package text
