package text

// LineEnding is a line terminator style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual terminator characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns the most common terminator in lines.
// Returns LineEndingLF if no line is terminated.
func DetectLineEnding(lines []Line) LineEnding {
	var lf, crlf, cr int
	for _, l := range lines {
		switch l.Ending() {
		case "\n":
			lf++
		case "\r\n":
			crlf++
		case "\r":
			cr++
		}
	}
	switch {
	case crlf > 0 && crlf >= lf && crlf >= cr:
		return LineEndingCRLF
	case cr > 0 && cr > lf:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// SplitLines splits s after every terminator (\n, \r\n or a lone \r).
// The remainder after the last terminator is always returned as the final
// line, so the result is never empty and Join(SplitLines(s)) == s.
func SplitLines(s string) []Line {
	var lines []Line
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, Line{raw: s[start : i+1]})
			start = i + 1
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			lines = append(lines, Line{raw: s[start : i+1]})
			start = i + 1
		}
	}
	return append(lines, Line{raw: s[start:]})
}

// IsTerminator reports whether r is a line terminator character.
func IsTerminator(r rune) bool {
	return r == '\n' || r == '\r'
}
