// Package gutter computes and formats the line number gutter.
package gutter

import "strconv"

// Separator is drawn between the line numbers and the text.
const Separator = '|'

// Width returns the gutter width for a viewport showing rows
// [rowOffset, rowOffset+screenRows] of a buffer with lineCount lines:
// the digits of the largest visible line number plus the separator.
func Width(rowOffset, screenRows, lineCount int) int {
	last := rowOffset + screenRows
	if last > lineCount-1 {
		last = lineCount - 1
	}
	if last < 0 {
		last = 0
	}
	return countDigits(last+1) + 1
}

// Format returns the 1-based line number for row, right-aligned, followed
// by the separator, occupying exactly width cells when it fits.
func Format(row, width int) string {
	return PadLeft(strconv.Itoa(row+1), width-1) + string(Separator)
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := make([]byte, width-len(s))
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + s
}

func countDigits(n int) int {
	if n <= 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}
