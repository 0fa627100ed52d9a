package buffer

import (
	"errors"
	"fmt"

	"github.com/dshills/redit/internal/engine/text"
)

// ErrOutOfBounds indicates a position outside the buffer extents.
var ErrOutOfBounds = errors.New("position out of bounds")

// BoundsError describes a rejected position.
type BoundsError struct {
	Pos    text.Position
	Rows   int // line count at the time of the check
	RowLen int // raw length of the addressed row, or -1 if the row is invalid
}

func (e *BoundsError) Error() string {
	if e.RowLen < 0 {
		return fmt.Sprintf("row %d outside buffer of %d lines: %v", e.Pos.Row, e.Rows, ErrOutOfBounds)
	}
	return fmt.Sprintf("column %d outside line %d of length %d: %v", e.Pos.Col, e.Pos.Row, e.RowLen, ErrOutOfBounds)
}

// Unwrap returns ErrOutOfBounds.
func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
