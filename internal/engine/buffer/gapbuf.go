package buffer

// minGapCapacity is the initial storage size for an empty gap buffer.
const minGapCapacity = 256

// gapBuffer is the storage layer under Buffer: a contiguous rune slice
// with a gap of unused cells at the most recent edit position. Insertions
// and deletions at the gap are O(1); editing elsewhere first moves the
// gap, which costs O(distance).
//
// Working in runes rather than bytes keeps every index a codepoint index,
// so the storage can never be split inside a multi-byte sequence.
type gapBuffer struct {
	data     []rune
	gapStart int // inclusive
	gapEnd   int // exclusive
}

// newGapBuffer creates an empty gap buffer.
func newGapBuffer() *gapBuffer {
	return &gapBuffer{
		data:   make([]rune, minGapCapacity),
		gapEnd: minGapCapacity,
	}
}

// gapBufferFromString creates a gap buffer holding the given text.
func gapBufferFromString(s string) *gapBuffer {
	runes := []rune(s)
	capacity := len(runes) * 2
	if capacity < minGapCapacity {
		capacity = minGapCapacity
	}

	data := make([]rune, capacity)
	copy(data, runes)

	return &gapBuffer{
		data:     data,
		gapStart: len(runes),
		gapEnd:   capacity,
	}
}

// Len returns the number of runes stored, excluding the gap.
func (g *gapBuffer) Len() int {
	return len(g.data) - (g.gapEnd - g.gapStart)
}

// RuneAt returns the rune at the given codepoint index.
func (g *gapBuffer) RuneAt(i int) (rune, bool) {
	if i < 0 || i >= g.Len() {
		return 0, false
	}
	if i < g.gapStart {
		return g.data[i], true
	}
	return g.data[i+(g.gapEnd-g.gapStart)], true
}

// Slice returns the text in [start, end) as a string.
// Bounds must already be valid; callers clamp.
func (g *gapBuffer) Slice(start, end int) string {
	if start >= end {
		return ""
	}

	out := make([]rune, 0, end-start)
	gap := g.gapEnd - g.gapStart
	for i := start; i < end; i++ {
		if i < g.gapStart {
			out = append(out, g.data[i])
		} else {
			out = append(out, g.data[i+gap])
		}
	}
	return string(out)
}

// String reconstructs the full text.
func (g *gapBuffer) String() string {
	out := make([]rune, 0, g.Len())
	out = append(out, g.data[:g.gapStart]...)
	out = append(out, g.data[g.gapEnd:]...)
	return string(out)
}

// Insert places text at the given codepoint position.
func (g *gapBuffer) Insert(pos int, text string) {
	g.moveGapTo(pos)
	for _, r := range text {
		if g.gapStart == g.gapEnd {
			g.grow()
		}
		g.data[g.gapStart] = r
		g.gapStart++
	}
}

// Delete removes the runes in [start, end).
func (g *gapBuffer) Delete(start, end int) {
	if start >= end {
		return
	}

	g.moveGapTo(start)
	g.gapEnd += end - start
	if g.gapEnd > len(g.data) {
		g.gapEnd = len(g.data)
	}
}

// NewlinePositions returns the codepoint index of every line feed,
// in ascending order. Used by the line index rebuild.
func (g *gapBuffer) NewlinePositions() []int {
	var positions []int
	gap := g.gapEnd - g.gapStart

	for i := 0; i < g.gapStart; i++ {
		if g.data[i] == '\n' {
			positions = append(positions, i)
		}
	}
	for i := g.gapEnd; i < len(g.data); i++ {
		if g.data[i] == '\n' {
			positions = append(positions, i-gap)
		}
	}
	return positions
}

// moveGapTo shifts the gap so that gapStart == pos.
func (g *gapBuffer) moveGapTo(pos int) {
	if pos > g.Len() {
		pos = g.Len()
	}
	if pos < 0 {
		pos = 0
	}

	switch {
	case pos < g.gapStart:
		// Shift the span [pos, gapStart) to the right edge of the gap.
		count := g.gapStart - pos
		copy(g.data[g.gapEnd-count:g.gapEnd], g.data[pos:g.gapStart])
		g.gapStart -= count
		g.gapEnd -= count
	case pos > g.gapStart:
		// Shift the span just after the gap to just before it.
		count := pos - g.gapStart
		copy(g.data[g.gapStart:g.gapStart+count], g.data[g.gapEnd:g.gapEnd+count])
		g.gapStart += count
		g.gapEnd += count
	}
}

// grow doubles the storage, keeping text on both sides of the gap.
func (g *gapBuffer) grow() {
	oldLen := len(g.data)
	newLen := oldLen * 2
	if newLen == 0 {
		newLen = minGapCapacity
	}

	data := make([]rune, newLen)
	copy(data, g.data[:g.gapStart])

	tail := oldLen - g.gapEnd
	newGapEnd := newLen - tail
	copy(data[newGapEnd:], g.data[g.gapEnd:])

	g.data = data
	g.gapEnd = newGapEnd
}
