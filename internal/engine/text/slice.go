package text

import "unicode/utf8"

// offset returns the byte offset of character col in s, clamped to
// [0, len(s)]. An invalid byte counts as one character, matching
// utf8.RuneCountInString, so no byte is ever rewritten.
func offset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	i := 0
	for n := 0; n < col && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// Prefix returns the first col characters of the raw content.
func (l Line) Prefix(col int) string {
	return l.raw[:offset(l.raw, col)]
}

// Suffix returns the raw content from character col onwards.
func (l Line) Suffix(col int) string {
	return l.raw[offset(l.raw, col):]
}

// Slice returns the raw content between characters from and to.
// An inverted range yields "".
func (l Line) Slice(from, to int) string {
	if to <= from {
		return ""
	}
	i := offset(l.raw, from)
	return l.raw[i : i+offset(l.raw[i:], to-max(from, 0))]
}

// Insert returns a new Line with s inserted before character col.
func (l Line) Insert(col int, s string) Line {
	i := offset(l.raw, col)
	return Line{raw: l.raw[:i] + s + l.raw[i:]}
}

// Remove returns a new Line without the characters in [from, to).
func (l Line) Remove(from, to int) Line {
	if to <= from {
		return l
	}
	i := offset(l.raw, from)
	j := i + offset(l.raw[i:], to-max(from, 0))
	if i == j {
		return l
	}
	return Line{raw: l.raw[:i] + l.raw[j:]}
}

// At returns the raw bytes of the character at col and whether col is
// inside the line.
func (l Line) At(col int) (string, bool) {
	if col < 0 {
		return "", false
	}
	i := offset(l.raw, col)
	if i >= len(l.raw) {
		return "", false
	}
	_, size := utf8.DecodeRuneInString(l.raw[i:])
	return l.raw[i : i+size], true
}
