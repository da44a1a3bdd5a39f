package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/inkwell-editor/inkwell/internal/engine/buffer"
	"github.com/inkwell-editor/inkwell/internal/engine/cursor"
	"github.com/inkwell-editor/inkwell/internal/engine/grapheme"
	"github.com/inkwell-editor/inkwell/internal/engine/history"
)

// Session binds a buffer, a selection, and an undo history into one
// editing surface. Every operation is total: positions and ranges are
// clamped to the document, so there is no failing edit, only the undo
// and redo sentinels when their stacks are empty.
//
// All methods are safe for concurrent use.
type Session struct {
	mu   sync.Mutex
	id   uuid.UUID
	buf  *buffer.Buffer
	sel  cursor.Selection
	hist *history.History

	// goalColumn remembers the column a run of vertical moves is aiming
	// for, so the cursor snaps back out of short lines. -1 means unset;
	// any horizontal move or edit resets it.
	goalColumn int
}

// NewSession creates an editing session, configured by options.
func NewSession(opts ...Option) *Session {
	cfg := config{maxUndoEntries: history.DefaultMaxEntries}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		id:         uuid.New(),
		buf:        buffer.NewFromString(cfg.content),
		sel:        cursor.NewCursorSelection(0),
		hist:       history.New(cfg.maxUndoEntries),
		goalColumn: -1,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Buffer returns the underlying buffer. Mutating it directly bypasses
// the session's selection tracking and undo history.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// --- Text access ---

// Text returns the full document text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Text()
}

// SetText replaces the whole document, moves the cursor to the start,
// and clears the undo history. This is a document load, not an edit.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.SetText(text)
	s.sel = cursor.NewCursorSelection(0)
	s.hist.Clear()
	s.goalColumn = -1
}

// Len returns the document length in codepoints.
func (s *Session) Len() buffer.RuneOffset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

// LineCount returns the number of lines in the document.
func (s *Session) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.LineCount()
}

// --- Editing ---

// InsertText inserts text at the cursor, replacing the selection if one
// is active. The cursor lands after the inserted text. Inserting the
// empty string with no selection is a no-op and records nothing.
func (s *Session) InsertText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyEdit(s.sel.Range(), text)
}

// InsertNewline inserts a line break at the cursor.
func (s *Session) InsertNewline() {
	s.InsertText("\n")
}

// Backspace deletes the selection if one is active; otherwise it deletes
// the codepoint before the cursor. At a line start this joins the line
// with the previous one and leaves the cursor at the join, not at the
// end of the merged line. At the start of the document it does nothing.
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sel.IsEmpty() {
		s.applyEdit(s.sel.Range(), "")
		return
	}
	pos := s.sel.Head
	if pos == 0 {
		return
	}
	s.applyEdit(buffer.Range{Start: pos - 1, End: pos}, "")
}

// DeleteForward deletes the selection if one is active; otherwise it
// deletes the codepoint after the cursor. At the end of the document it
// does nothing.
func (s *Session) DeleteForward() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sel.IsEmpty() {
		s.applyEdit(s.sel.Range(), "")
		return
	}
	pos := s.sel.Head
	if pos >= s.buf.Len() {
		return
	}
	s.applyEdit(buffer.Range{Start: pos, End: pos + 1}, "")
}

// DeleteSelection deletes the selected text and collapses the cursor to
// the selection's start. With no selection it is a no-op.
func (s *Session) DeleteSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sel.IsEmpty() {
		return
	}
	s.applyEdit(s.sel.Range(), "")
}

// DeleteRange deletes an arbitrary span of the document. The range is
// clamped and reordered; the cursor lands at its start.
func (s *Session) DeleteRange(r buffer.Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyEdit(r, "")
}

// applyEdit replaces r with text, records the edit, and places the
// cursor after the new text. Callers hold s.mu.
func (s *Session) applyEdit(r buffer.Range, text string) {
	r = r.Clamp(s.buf.Len())
	if r.IsEmpty() && text == "" {
		return
	}

	before := s.sel
	res := s.buf.ApplyEdit(buffer.NewEdit(r, text))
	after := cursor.NewCursorSelection(res.NewRange.End)

	s.sel = after
	s.goalColumn = -1
	s.hist.Push(&history.EditCommand{
		OldRange: res.OldRange,
		NewRange: res.NewRange,
		OldText:  res.OldText,
		NewText:  text,
		Before:   before,
		After:    after,
	})
}

// --- Cursor movement ---

// Position returns the cursor position (the selection head).
func (s *Session) Position() buffer.RuneOffset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Head
}

// Point returns the cursor position as a line/column pair.
func (s *Session) Point() buffer.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.PointOf(s.sel.Head)
}

// SetPosition moves the cursor to the given offset, clamped to the
// document, collapsing any selection.
func (s *Session) SetPosition(pos buffer.RuneOffset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sel = s.sel.MoveTo(clampOffset(pos, s.buf.Len()))
	s.goalColumn = -1
}

// MoveLeft moves the cursor one codepoint left, wrapping to the end of
// the previous line. An active selection collapses to its start instead.
// At the start of the document the cursor stays put.
func (s *Session) MoveLeft() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goalColumn = -1
	if !s.sel.IsEmpty() {
		s.sel = s.sel.CollapseToStart()
		return
	}
	if pos := s.sel.Head; pos > 0 {
		s.sel = s.sel.MoveTo(pos - 1)
	}
}

// MoveRight moves the cursor one codepoint right, wrapping to the start
// of the next line. An active selection collapses to its end instead.
// At the end of the document the cursor stays put.
func (s *Session) MoveRight() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goalColumn = -1
	if !s.sel.IsEmpty() {
		s.sel = s.sel.CollapseToEnd()
		return
	}
	if pos := s.sel.Head; pos < s.buf.Len() {
		s.sel = s.sel.MoveTo(pos + 1)
	}
}

// MoveUp moves the cursor to the previous line, keeping its column where
// the line is long enough and clamping to the line end where it is not.
// The column originally aimed for is remembered across a run of vertical
// moves. On the first line the cursor stays put.
func (s *Session) MoveUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveVertical(-1)
}

// MoveDown is MoveUp's mirror: it moves to the next line with the same
// column-sticky clamping, staying put on the last line.
func (s *Session) MoveDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveVertical(1)
}

func (s *Session) moveVertical(delta int) {
	if !s.sel.IsEmpty() {
		if delta < 0 {
			s.sel = s.sel.CollapseToStart()
		} else {
			s.sel = s.sel.CollapseToEnd()
		}
	}

	pt := s.buf.PointOf(s.sel.Head)
	if s.goalColumn < 0 {
		s.goalColumn = pt.Column
	}

	target := pt.Line + delta
	if target < 0 || target >= s.buf.LineCount() {
		return
	}

	col := s.goalColumn
	if lineLen, err := s.buf.LineLen(target); err == nil && col > lineLen {
		col = lineLen
	}
	s.sel = s.sel.MoveTo(s.buf.OffsetOf(buffer.Point{Line: target, Column: col}))
}

// MoveLeftCluster moves the cursor left by one grapheme cluster, so a
// multi-codepoint emoji or combining sequence is crossed in one step.
func (s *Session) MoveLeftCluster() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goalColumn = -1
	if !s.sel.IsEmpty() {
		s.sel = s.sel.CollapseToStart()
		return
	}
	s.sel = s.sel.MoveTo(grapheme.PrevBoundary(s.buf.Text(), s.sel.Head))
}

// MoveRightCluster moves the cursor right by one grapheme cluster.
func (s *Session) MoveRightCluster() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goalColumn = -1
	if !s.sel.IsEmpty() {
		s.sel = s.sel.CollapseToEnd()
		return
	}
	s.sel = s.sel.MoveTo(grapheme.NextBoundary(s.buf.Text(), s.sel.Head))
}

// MoveToLineStart moves the cursor to the start of its line.
func (s *Session) MoveToLineStart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pt := s.buf.PointOf(s.sel.Head)
	s.sel = s.sel.MoveTo(s.buf.OffsetOf(buffer.Point{Line: pt.Line}))
	s.goalColumn = -1
}

// MoveToLineEnd moves the cursor past the last codepoint of its line,
// before the terminator.
func (s *Session) MoveToLineEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pt := s.buf.PointOf(s.sel.Head)
	if lineLen, err := s.buf.LineLen(pt.Line); err == nil {
		s.sel = s.sel.MoveTo(s.buf.OffsetOf(buffer.Point{Line: pt.Line, Column: lineLen}))
	}
	s.goalColumn = -1
}

// --- Selection ---

// Selection returns the current selection. A collapsed selection is
// just the cursor.
func (s *Session) Selection() cursor.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// HasSelection reports whether a non-empty selection is active.
func (s *Session) HasSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.sel.IsEmpty()
}

// Select sets the selection to an explicit anchor and head, both clamped
// to the document.
func (s *Session) Select(anchor, head buffer.RuneOffset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := s.buf.Len()
	s.sel = cursor.NewSelection(clampOffset(anchor, max), clampOffset(head, max))
	s.goalColumn = -1
}

// SelectTo extends the selection head to the given offset, keeping the
// anchor fixed. Starting from a cursor this begins a selection.
func (s *Session) SelectTo(pos buffer.RuneOffset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sel = s.sel.Extend(clampOffset(pos, s.buf.Len()))
	s.goalColumn = -1
}

// SelectAll selects the whole document, head at the end.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sel = cursor.NewSelection(0, s.buf.Len())
	s.goalColumn = -1
}

// ClearSelection collapses the selection to a cursor at its head.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = s.sel.Collapse()
}

// SelectedText returns the selected text, empty when the selection is
// collapsed.
func (s *Session) SelectedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Text(s.buf)
}

// SelectionRange returns the selection as a normalized range.
func (s *Session) SelectionRange() buffer.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Range()
}

// --- History ---

// Undo reverses the most recent edit, restoring the selection it
// replaced. Returns ErrNothingToUndo when the history is empty.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hist.Undo(s.buf, &s.sel); err != nil {
		return err
	}
	s.sel = s.sel.Clamp(s.buf.Len())
	s.goalColumn = -1
	return nil
}

// Redo re-applies the most recently undone edit. Returns
// ErrNothingToRedo when there is nothing to redo.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hist.Redo(s.buf, &s.sel); err != nil {
		return err
	}
	s.sel = s.sel.Clamp(s.buf.Len())
	s.goalColumn = -1
	return nil
}

// CanUndo reports whether an undo is available.
func (s *Session) CanUndo() bool {
	return s.hist.CanUndo()
}

// CanRedo reports whether a redo is available.
func (s *Session) CanRedo() bool {
	return s.hist.CanRedo()
}

// BeginGroup starts grouping subsequent edits into a single undo unit.
func (s *Session) BeginGroup(name string) {
	s.hist.BeginGroup(name)
}

// EndGroup closes the current undo group.
func (s *Session) EndGroup() {
	s.hist.EndGroup()
}

// History returns the session's undo history.
func (s *Session) History() *history.History {
	return s.hist
}

func clampOffset(pos, max buffer.RuneOffset) buffer.RuneOffset {
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}
