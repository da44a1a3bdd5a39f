// Package textpos is the conversion chokepoint between the three offset
// spaces the engine deals in: raw UTF-8 byte offsets, codepoint offsets,
// and line/column points. Every function is pure and operates on a text
// snapshot, so byte/codepoint confusion cannot leak past this package.
//
// Codepoint-space inputs are clamped, never rejected. Byte-space inputs
// can land strictly inside a multi-byte sequence; that is a caller bug
// and fails fast with ErrInvalidOffset.
package textpos

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidOffset is returned when a byte offset falls strictly inside
// a multi-byte encoded codepoint.
var ErrInvalidOffset = errors.New("byte offset inside multi-byte codepoint")

// ByteToRune converts a byte offset into s to a codepoint offset.
// Out-of-range offsets are clamped to [0, len(s)]; an offset inside a
// multi-byte sequence fails with ErrInvalidOffset.
func ByteToRune(s string, byteOffset int) (int, error) {
	if byteOffset < 0 {
		return 0, nil
	}
	if byteOffset >= len(s) {
		return utf8.RuneCountInString(s), nil
	}
	if !utf8.RuneStart(s[byteOffset]) {
		return 0, fmt.Errorf("byte offset %d: %w", byteOffset, ErrInvalidOffset)
	}
	return utf8.RuneCountInString(s[:byteOffset]), nil
}

// RuneToByte converts a codepoint offset into s to a byte offset,
// clamping to [0, codepoint count]. Codepoint-space inputs cannot sit
// inside a codepoint, so this never fails.
func RuneToByte(s string, runeOffset int) int {
	if runeOffset <= 0 {
		return 0
	}

	n := 0
	for i := range s {
		if n == runeOffset {
			return i
		}
		n++
	}
	return len(s)
}

// RuneCount returns the number of codepoints in s.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// Point is a line/column coordinate; Column counts codepoints within
// the line. Line boundaries are line feed codepoints only.
type Point struct {
	Line   int
	Column int
}

// PointOf converts a codepoint offset to a line/column point. The
// offset is clamped to [0, codepoint count] first; clamping, not
// failure, is the contract.
func PointOf(s string, pos int) Point {
	if pos < 0 {
		pos = 0
	}

	var p Point
	n := 0
	for _, r := range s {
		if n == pos {
			return p
		}
		n++
		if r == '\n' {
			p.Line++
			p.Column = 0
		} else {
			p.Column++
		}
	}
	return p
}

// OffsetOf converts a line/column point to a codepoint offset, clamping
// the line to the last line and the column to that line's length. This
// never fails. Inverse of PointOf for in-range points.
func OffsetOf(s string, p Point) int {
	starts := []int{0}
	pos := 0
	for _, r := range s {
		pos++
		if r == '\n' {
			starts = append(starts, pos)
		}
	}
	total := pos

	line := p.Line
	if line < 0 {
		line = 0
	}
	if line >= len(starts) {
		line = len(starts) - 1
	}

	start := starts[line]
	end := total
	if line+1 < len(starts) {
		end = starts[line+1] - 1 // excludes the line feed
	}

	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > end-start {
		col = end - start
	}
	return start + col
}
