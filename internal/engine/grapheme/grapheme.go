// Package grapheme is an optional stage layered above the engine's
// codepoint-granularity core. The core deliberately knows nothing about
// user-perceived characters; this package translates between the two
// views, mapping codepoint offsets onto grapheme-cluster boundaries so a
// front end can offer cluster-wise movement without the core's position
// math changing.
//
// All functions take a text snapshot and codepoint offsets; out-of-range
// offsets are clamped, matching the core's contract.
package grapheme

import (
	"github.com/rivo/uniseg"
)

// boundaries returns every cluster boundary of s as a codepoint offset,
// in ascending order, always including 0 and the total codepoint count.
func boundaries(s string) []int {
	b := []int{0}
	total := 0

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		total += len(gr.Runes())
		b = append(b, total)
	}
	return b
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// NextBoundary returns the first cluster boundary strictly after pos,
// or the end of s if pos is at or past the last boundary.
func NextBoundary(s string, pos int) int {
	b := boundaries(s)
	end := b[len(b)-1]
	if pos < 0 {
		pos = -1 // so boundary 0 qualifies
	}
	for _, off := range b {
		if off > pos {
			return off
		}
	}
	return end
}

// PrevBoundary returns the last cluster boundary strictly before pos,
// or 0 if pos is at or before the first boundary.
func PrevBoundary(s string, pos int) int {
	b := boundaries(s)
	if end := b[len(b)-1]; pos > end {
		pos = end
	}

	prev := 0
	for _, off := range b {
		if off >= pos {
			break
		}
		prev = off
	}
	return prev
}

// Snap returns the nearest cluster boundary at or before pos. A cursor
// positioned mid-cluster (legal in the core) snaps to the cluster start.
func Snap(s string, pos int) int {
	b := boundaries(s)
	if end := b[len(b)-1]; pos >= end {
		return end
	}
	if pos <= 0 {
		return 0
	}

	at := 0
	for _, off := range b {
		if off > pos {
			break
		}
		at = off
	}
	return at
}

// IsBoundary reports whether pos sits on a cluster boundary.
func IsBoundary(s string, pos int) bool {
	for _, off := range boundaries(s) {
		if off == pos {
			return true
		}
		if off > pos {
			return false
		}
	}
	return false
}
