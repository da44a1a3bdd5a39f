package buffer

import (
	"errors"
	"io"
	"iter"
	"sync"
	"unicode/utf8"
)

// ErrIndexOutOfRange is returned by line lookups given a line number past
// the last line. This is a programmer-contract violation, not a user
// error: position-space operations clamp instead.
var ErrIndexOutOfRange = errors.New("line index out of range")

// Buffer owns the mutable text content. It wraps the gap-buffer storage
// with line queries, coordinate conversion, and clamping mutations.
//
// The engine assumes a single writer; the mutex exists so that snapshot
// reads taken from other goroutines between mutations stay safe. Content
// is always valid encoded text: storage works in whole runes, and any
// ill-formed bytes in input text decode to U+FFFD on the way in.
type Buffer struct {
	mu         sync.RWMutex
	store      *gapBuffer
	lines      lineIndex
	revisionID RevisionID
}

// New creates a new empty buffer.
func New() *Buffer {
	return &Buffer{
		store:      newGapBuffer(),
		revisionID: NewRevisionID(),
	}
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string) *Buffer {
	return &Buffer{
		store:      gapBufferFromString(s),
		revisionID: NewRevisionID(),
	}
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data)), nil
}

// Read operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.String()
}

// TextRange returns the text in the given codepoint range, clamped to
// the buffer bounds and normalized.
func (b *Buffer) TextRange(r Range) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r = r.Clamp(b.store.Len())
	return b.store.Slice(r.Start, r.End)
}

// Len returns the total buffer length in codepoints.
func (b *Buffer) Len() RuneOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.Len()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.Len() == 0
}

// RuneAt returns the codepoint at the given offset.
func (b *Buffer) RuneAt(offset RuneOffset) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.RuneAt(offset)
}

// Line queries

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines.ensure(b.store)
	return b.lines.count()
}

// Line returns the span of line i.
func (b *Buffer) Line(i int) (Line, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines.ensure(b.store)
	if i < 0 || i >= b.lines.count() {
		return Line{}, ErrIndexOutOfRange
	}
	return b.lines.span(i), nil
}

// LineText returns the content of line i, excluding its terminator.
func (b *Buffer) LineText(i int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines.ensure(b.store)
	if i < 0 || i >= b.lines.count() {
		return "", ErrIndexOutOfRange
	}
	span := b.lines.span(i)
	return b.store.Slice(span.Start, span.End), nil
}

// LineLen returns the codepoint count of line i, excluding its terminator.
func (b *Buffer) LineLen(i int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines.ensure(b.store)
	if i < 0 || i >= b.lines.count() {
		return 0, ErrIndexOutOfRange
	}
	return b.lines.span(i).Len(), nil
}

// LineAt returns the index of the line containing the given position,
// clamped to the buffer bounds. A position sitting on a line feed
// belongs to the line that feed terminates; the next line starts one
// codepoint later.
func (b *Buffer) LineAt(pos RuneOffset) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines.ensure(b.store)
	return b.lines.lineAt(pos)
}

// Lines returns a restartable iterator over the buffer's line spans,
// scanning left to right. The sequence reflects the buffer state at each
// restart; do not mutate the buffer mid-iteration.
func (b *Buffer) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		b.mu.Lock()
		b.lines.ensure(b.store)
		spans := make([]Line, b.lines.count())
		for i := range spans {
			spans[i] = b.lines.span(i)
		}
		b.mu.Unlock()

		for _, span := range spans {
			if !yield(span) {
				return
			}
		}
	}
}

// Coordinate conversion

// PointOf converts a codepoint offset to line/column. The position is
// clamped to [0, Len] first; clamping, not failure, is the contract.
func (b *Buffer) PointOf(pos RuneOffset) Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines.ensure(b.store)

	if pos < 0 {
		pos = 0
	}
	if pos > b.lines.length {
		pos = b.lines.length
	}

	line := b.lines.lineAt(pos)
	return Point{Line: line, Column: pos - b.lines.starts[line]}
}

// OffsetOf converts line/column to a codepoint offset. The line is
// clamped to the last valid line and the column to that line's length;
// this never fails.
func (b *Buffer) OffsetOf(p Point) RuneOffset {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines.ensure(b.store)

	line := p.Line
	if line < 0 {
		line = 0
	}
	if line >= b.lines.count() {
		line = b.lines.count() - 1
	}

	span := b.lines.span(line)
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > span.Len() {
		col = span.Len()
	}
	return span.Start + col
}

// Write operations

// Insert inserts text at the given codepoint position, clamped to the
// buffer bounds. Returns the new total length in codepoints.
func (b *Buffer) Insert(pos RuneOffset, text string) RuneOffset {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pos < 0 {
		pos = 0
	}
	if max := b.store.Len(); pos > max {
		pos = max
	}

	b.store.Insert(pos, text)
	b.lines.invalidate()
	b.revisionID = NewRevisionID()
	return b.store.Len()
}

// Delete removes the codepoints in the given range, clamped and
// normalized. A zero-length range is a no-op, not an error. Returns the
// new total length.
func (b *Buffer) Delete(r Range) RuneOffset {
	b.mu.Lock()
	defer b.mu.Unlock()

	r = r.Clamp(b.store.Len())
	if !r.IsEmpty() {
		b.store.Delete(r.Start, r.End)
		b.lines.invalidate()
		b.revisionID = NewRevisionID()
	}
	return b.store.Len()
}

// Replace substitutes the text in r (clamped, normalized) with text in
// one mutation. Returns the new total length.
func (b *Buffer) Replace(r Range, text string) RuneOffset {
	b.ApplyEdit(NewEdit(r, text))
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.Len()
}

// ApplyEdit replaces the edit's range (clamped, normalized) with its new
// text in one mutation and reports what changed. This is the primitive
// the undo layer records.
func (b *Buffer) ApplyEdit(edit Edit) EditResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := edit.Range.Clamp(b.store.Len())
	oldText := b.store.Slice(r.Start, r.End)

	if !r.IsEmpty() {
		b.store.Delete(r.Start, r.End)
	}
	if edit.NewText != "" {
		b.store.Insert(r.Start, edit.NewText)
	}

	newEnd := r.Start + runeLen(edit.NewText)
	if !r.IsEmpty() || edit.NewText != "" {
		b.lines.invalidate()
		b.revisionID = NewRevisionID()
	}

	return EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: newEnd},
		OldText:  oldText,
		Delta:    runeLen(edit.NewText) - r.Len(),
	}
}

// SetText replaces the entire buffer content. This is the persistence
// boundary's load operation.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = gapBufferFromString(s)
	b.lines.invalidate()
	b.revisionID = NewRevisionID()
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// runeLen counts the codepoints in s.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
