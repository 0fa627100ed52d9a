package history

import (
	"fmt"

	"github.com/dshills/redit/internal/engine/text"
)

// Kind identifies the variant of an Action.
type Kind uint8

const (
	KindInsertChar Kind = iota
	KindDeleteChar
	KindInsertRegion
	KindRemoveRegion
	KindJoinLine
	KindSplitLine
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsertChar:
		return "InsertChar"
	case KindDeleteChar:
		return "DeleteChar"
	case KindInsertRegion:
		return "InsertRegion"
	case KindRemoveRegion:
		return "RemoveRegion"
	case KindJoinLine:
		return "JoinLine"
	case KindSplitLine:
		return "SplitLine"
	default:
		return "Unknown"
	}
}

// Action is one recorded edit.
// The set of implementations is closed to this package.
type Action interface {
	Kind() Kind
	String() string
	sealed()
}

// InsertChar records Char inserted at (Col, Row).
// Inverse: delete the character at (Col, Row).
type InsertChar struct {
	Row  int
	Col  int
	Char rune
}

// DeleteChar records the raw bytes of the character removed from
// (Col, Row).
// Inverse: insert Char at (Col, Row).
type DeleteChar struct {
	Row  int
	Col  int
	Char string
}

// InsertRegion records Lines inserted at Start, producing text up to End.
// Inverse: remove the region [Start, End).
type InsertRegion struct {
	Start text.Position
	End   text.Position
	Lines []text.Line
}

// RemoveRegion records the region [Start, End) and the text it held.
// Inverse: restore Removed at Start.
type RemoveRegion struct {
	Start   text.Position
	End     text.Position
	Removed []text.Line
}

// JoinLine records line Row+1 merged onto line Row at column Col.
// Ending is the terminator that line Row lost.
// Inverse: split line Row at Col, reattaching Ending.
type JoinLine struct {
	Row    int
	Col    int
	Ending string
}

// SplitLine records line Row split at column Col.
// Ending is the terminator attached to the head fragment.
// Inverse: join line Row+1 back at Col.
type SplitLine struct {
	Row    int
	Col    int
	Ending string
}

func (InsertChar) Kind() Kind   { return KindInsertChar }
func (DeleteChar) Kind() Kind   { return KindDeleteChar }
func (InsertRegion) Kind() Kind { return KindInsertRegion }
func (RemoveRegion) Kind() Kind { return KindRemoveRegion }
func (JoinLine) Kind() Kind     { return KindJoinLine }
func (SplitLine) Kind() Kind    { return KindSplitLine }

func (InsertChar) sealed()   {}
func (DeleteChar) sealed()   {}
func (InsertRegion) sealed() {}
func (RemoveRegion) sealed() {}
func (JoinLine) sealed()     {}
func (SplitLine) sealed()    {}

func (a InsertChar) String() string {
	return fmt.Sprintf("InsertChar(%d,%d,%q)", a.Row, a.Col, a.Char)
}

func (a DeleteChar) String() string {
	return fmt.Sprintf("DeleteChar(%d,%d,%q)", a.Row, a.Col, a.Char)
}

func (a InsertRegion) String() string {
	return fmt.Sprintf("InsertRegion(%v..%v, %d lines)", a.Start, a.End, len(a.Lines))
}

func (a RemoveRegion) String() string {
	return fmt.Sprintf("RemoveRegion(%v..%v, %d lines)", a.Start, a.End, len(a.Removed))
}

func (a JoinLine) String() string {
	return fmt.Sprintf("JoinLine(%d,%d)", a.Row, a.Col)
}

func (a SplitLine) String() string {
	return fmt.Sprintf("SplitLine(%d,%d)", a.Row, a.Col)
}
