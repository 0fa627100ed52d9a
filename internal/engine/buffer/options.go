package buffer

import "github.com/dshills/redit/internal/engine/text"

// Option configures a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the terminator attached when an unterminated line is
// split. Without this option the ending is detected from the content.
func WithLineEnding(le text.LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
		b.endingSet = true
	}
}

// WithCRLF configures the buffer to use Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(text.LineEndingCRLF)
}
