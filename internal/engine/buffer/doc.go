// Package buffer provides the line-oriented text buffer of the editor
// engine together with its undo/redo history.
//
// A Buffer is an ordered, never-empty sequence of text.Line values. The
// raw content of all lines concatenated is the exact document text, so a
// file loaded with FromReader and written back with WriteTo is reproduced
// byte for byte.
//
// The buffer package provides:
//
//   - Character edits: InsertChar, DeleteChar
//   - Line edits: SplitLine, and joining through DeleteChar at a line end
//   - Region edits: InsertRegion, RemoveRegion, and the pure read Region
//   - Undo and Redo over a private history.Log
//   - A dirty flag set by every change and cleared by MarkSaved
//
// Basic usage:
//
//	buf := buffer.NewFromString("abc\ndef\n")
//
//	buf.InsertChar(0, 3, 'X') // "abcX\ndef\n"
//	buf.Undo()                // "abc\ndef\n"
//
//	removed := buf.Region(text.Pos(1, 0), text.Pos(2, 1))
//	buf.RemoveRegion(text.Pos(1, 0), text.Pos(2, 1)) // "af\n"
//	buf.InsertRegion(text.Pos(1, 0), removed)        // "abc\ndef\n"
//
// Bounds:
//
// Every public entry point clamps its row and column arguments. Rows are
// clamped to [0, LineCount()-1]. Character edits clamp columns to the clean
// length of the line, so a terminator can never be split by typing. Region
// operations clamp columns to the raw length, so a region boundary may sit
// inside a terminator. Callers that need a strict check use CheckPosition,
// which reports ErrOutOfBounds.
//
// Concurrency:
//
// A Buffer is owned by a single editor session and is not safe for
// concurrent use.
package buffer
