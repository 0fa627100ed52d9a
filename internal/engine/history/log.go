package history

// Log is an ordered action history with a movable index.
// Log is not safe for concurrent use; it is owned by a single buffer.
type Log struct {
	entries []Action
	index   int
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Record appends a, discarding any entries right of the index.
func (l *Log) Record(a Action) {
	if l.index < len(l.entries) {
		clear(l.entries[l.index:])
		l.entries = l.entries[:l.index]
	}
	l.entries = append(l.entries, a)
	l.index = len(l.entries)
}

// Undo steps the index left and returns the action whose inverse must be
// applied. Returns false when there is nothing to undo.
func (l *Log) Undo() (Action, bool) {
	if l.index == 0 {
		return nil, false
	}
	l.index--
	return l.entries[l.index], true
}

// Redo steps the index right and returns the action that must be applied
// again. Returns false when the redo tail is empty.
func (l *Log) Redo() (Action, bool) {
	if l.index == len(l.entries) {
		return nil, false
	}
	a := l.entries[l.index]
	l.index++
	return a, true
}

// CanUndo returns true if there are entries left of the index.
func (l *Log) CanUndo() bool {
	return l.index > 0
}

// CanRedo returns true if there are entries right of the index.
func (l *Log) CanRedo() bool {
	return l.index < len(l.entries)
}

// Index returns the current position in the log.
func (l *Log) Index() int {
	return l.index
}
