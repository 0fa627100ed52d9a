// Package history provides the undo/redo action log for the buffer engine.
//
// Every logged edit is recorded as one Action. Action is a closed union: the
// only implementations are the six edit records declared in this package,
// and each record carries exactly the data needed to compute its inverse.
//
// # Actions
//
//   - InsertChar / DeleteChar: a single character inserted or removed.
//   - SplitLine / JoinLine: a line broken in two, or two lines merged.
//   - InsertRegion / RemoveRegion: a multi-line fragment inserted or removed.
//
// # Log
//
// The Log is an ordered list of actions plus an index:
//
//	0 <= Index() <= number of recorded actions
//
// Entries left of the index are undoable, entries right of it are the redo
// tail. Recording a new action discards the redo tail.
//
//	log := history.NewLog()
//	log.Record(history.InsertChar{Row: 0, Col: 3, Char: 'X'})
//
//	if a, ok := log.Undo(); ok {
//	    // apply the inverse of a
//	}
//	if a, ok := log.Redo(); ok {
//	    // apply a again
//	}
//
// The Log only tracks state; applying actions is the buffer's job.
package history
