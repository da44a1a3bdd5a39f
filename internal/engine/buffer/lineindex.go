package buffer

import (
	"fmt"
	"sort"
)

// Line describes one line of the buffer as a half-open codepoint range
// [Start, End). End excludes the terminating line feed; Terminated
// records whether one follows (false only for the final line).
type Line struct {
	Start      RuneOffset
	End        RuneOffset
	Terminated bool
}

// Len returns the line's content length in codepoints.
func (l Line) Len() int {
	return l.End - l.Start
}

// Range returns the line's content range.
func (l Line) Range() Range {
	return Range{Start: l.Start, End: l.End}
}

// String returns a human-readable representation of the line span.
func (l Line) String() string {
	term := ""
	if l.Terminated {
		term = "+LF"
	}
	return fmt.Sprintf("line[%d:%d)%s", l.Start, l.End, term)
}

// lineIndex caches the start offset of every line. The table is derived
// from the storage and rebuilt lazily after a mutation invalidates it,
// so between edits every query is a binary search or a slice lookup.
//
// Boundary policy, applied uniformly: a position equal to a line's
// terminating line feed offset still belongs to that line; the following
// line begins at the line feed offset + 1. An empty buffer has exactly
// one empty, unterminated line.
type lineIndex struct {
	starts []RuneOffset // starts[0] is always 0
	length RuneOffset   // total buffer length when the table was built
	valid  bool
}

// invalidate marks the table stale. Called on every mutation.
func (ix *lineIndex) invalidate() {
	ix.valid = false
}

// ensure rebuilds the table from storage if a mutation invalidated it.
func (ix *lineIndex) ensure(g *gapBuffer) {
	if ix.valid {
		return
	}

	newlines := g.NewlinePositions()
	starts := make([]RuneOffset, 0, len(newlines)+1)
	starts = append(starts, 0)
	for _, nl := range newlines {
		starts = append(starts, nl+1)
	}

	ix.starts = starts
	ix.length = g.Len()
	ix.valid = true
}

// count returns the number of lines. Always >= 1.
func (ix *lineIndex) count() int {
	return len(ix.starts)
}

// span returns the i'th line. The caller validates i.
func (ix *lineIndex) span(i int) Line {
	if i < len(ix.starts)-1 {
		return Line{
			Start:      ix.starts[i],
			End:        ix.starts[i+1] - 1, // excludes the line feed
			Terminated: true,
		}
	}
	return Line{
		Start:      ix.starts[i],
		End:        ix.length,
		Terminated: false,
	}
}

// lineAt returns the index of the line containing pos. The position is
// clamped to [0, length] first, so this never fails.
func (ix *lineIndex) lineAt(pos RuneOffset) int {
	if pos < 0 {
		pos = 0
	}
	if pos > ix.length {
		pos = ix.length
	}

	// Smallest i with starts[i] > pos, minus one: the line whose start
	// is at or before pos. A position sitting on a line feed resolves to
	// the line that feed terminates.
	i := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > pos
	})
	return i - 1
}
