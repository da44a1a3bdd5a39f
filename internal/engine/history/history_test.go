package history

import (
	"errors"
	"testing"

	"github.com/inkwell-editor/inkwell/internal/engine/buffer"
	"github.com/inkwell-editor/inkwell/internal/engine/cursor"
)

// applyInsert inserts text and returns the recorded command, mirroring
// how the session records edits.
func applyInsert(buf *buffer.Buffer, sel *Selection, pos int, text string) *EditCommand {
	before := *sel
	res := buf.ApplyEdit(buffer.NewInsert(pos, text))
	after := cursor.NewCursorSelection(res.NewRange.End)
	*sel = after
	return &EditCommand{
		OldRange: res.OldRange,
		NewRange: res.NewRange,
		OldText:  res.OldText,
		NewText:  text,
		Before:   before,
		After:    after,
	}
}

// applyDelete removes a range and returns the recorded command.
func applyDelete(buf *buffer.Buffer, sel *Selection, start, end int) *EditCommand {
	before := *sel
	res := buf.ApplyEdit(buffer.NewDelete(start, end))
	after := cursor.NewCursorSelection(res.OldRange.Start)
	*sel = after
	return &EditCommand{
		OldRange: res.OldRange,
		NewRange: res.NewRange,
		OldText:  res.OldText,
		NewText:  "",
		Before:   before,
		After:    after,
	}
}

func TestUndoInsert(t *testing.T) {
	buf := buffer.NewFromString("Hello")
	sel := cursor.NewCursorSelection(5)
	h := New(0)

	h.Push(applyInsert(buf, &sel, 5, " World"))
	if buf.Text() != "Hello World" {
		t.Fatalf("insert failed: %q", buf.Text())
	}

	if err := h.Undo(buf, &sel); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "Hello" {
		t.Errorf("expected 'Hello' after undo, got %q", buf.Text())
	}
	if sel.Head != 5 {
		t.Errorf("expected selection restored to 5, got %d", sel.Head)
	}
}

func TestUndoDeleteReinsertsAtSamePosition(t *testing.T) {
	buf := buffer.NewFromString("Hello World")
	sel := cursor.NewCursorSelection(0)
	h := New(0)

	h.Push(applyDelete(buf, &sel, 5, 11))
	if buf.Text() != "Hello" {
		t.Fatalf("delete failed: %q", buf.Text())
	}

	if err := h.Undo(buf, &sel); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "Hello World" {
		t.Errorf("expected deleted text reinserted, got %q", buf.Text())
	}
}

func TestRedo(t *testing.T) {
	buf := buffer.NewFromString("ab")
	sel := cursor.NewCursorSelection(2)
	h := New(0)

	h.Push(applyInsert(buf, &sel, 2, "c"))

	if err := h.Undo(buf, &sel); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if err := h.Redo(buf, &sel); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if buf.Text() != "abc" {
		t.Errorf("expected 'abc' after redo, got %q", buf.Text())
	}
	if sel.Head != 3 {
		t.Errorf("expected selection at 3 after redo, got %d", sel.Head)
	}
}

func TestUndoRedoSentinels(t *testing.T) {
	buf := buffer.New()
	sel := cursor.NewCursorSelection(0)
	h := New(0)

	if err := h.Undo(buf, &sel); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := h.Redo(buf, &sel); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestPushClearsRedo(t *testing.T) {
	buf := buffer.NewFromString("x")
	sel := cursor.NewCursorSelection(1)
	h := New(0)

	h.Push(applyInsert(buf, &sel, 1, "a"))
	if err := h.Undo(buf, &sel); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	h.Push(applyInsert(buf, &sel, 1, "b"))
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestGrouping(t *testing.T) {
	buf := buffer.New()
	sel := cursor.NewCursorSelection(0)
	h := New(0)

	h.BeginGroup("type word")
	h.Push(applyInsert(buf, &sel, 0, "a"))
	h.Push(applyInsert(buf, &sel, 1, "b"))
	h.Push(applyInsert(buf, &sel, 2, "c"))
	h.EndGroup()

	if buf.Text() != "abc" {
		t.Fatalf("expected 'abc', got %q", buf.Text())
	}
	if h.UndoCount() != 1 {
		t.Fatalf("expected one grouped entry, got %d", h.UndoCount())
	}

	if err := h.Undo(buf, &sel); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "" {
		t.Errorf("expected group undo to remove everything, got %q", buf.Text())
	}

	if err := h.Redo(buf, &sel); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if buf.Text() != "abc" {
		t.Errorf("expected group redo to restore everything, got %q", buf.Text())
	}
}

func TestCancelGroup(t *testing.T) {
	h := New(0)

	h.BeginGroup("aborted")
	h.Push(&EditCommand{})
	h.CancelGroup()

	if h.UndoCount() != 0 {
		t.Errorf("cancelled group should not reach the stack, got %d entries", h.UndoCount())
	}
	if h.IsGrouping() {
		t.Error("expected grouping to end on cancel")
	}
}

func TestMaxEntriesEviction(t *testing.T) {
	buf := buffer.New()
	sel := cursor.NewCursorSelection(0)
	h := New(3)

	for i := 0; i < 5; i++ {
		h.Push(applyInsert(buf, &sel, buf.Len(), "x"))
	}

	if h.UndoCount() != 3 {
		t.Errorf("expected stack capped at 3, got %d", h.UndoCount())
	}
}

func TestUndoInfo(t *testing.T) {
	buf := buffer.New()
	sel := cursor.NewCursorSelection(0)
	h := New(0)

	h.Push(applyInsert(buf, &sel, 0, "hi"))

	info := h.UndoInfo()
	if len(info) != 1 {
		t.Fatalf("expected 1 info entry, got %d", len(info))
	}
	if info[0].Description != `Insert "hi"` {
		t.Errorf("unexpected description %q", info[0].Description)
	}
}

func TestClear(t *testing.T) {
	buf := buffer.New()
	sel := cursor.NewCursorSelection(0)
	h := New(0)

	h.Push(applyInsert(buf, &sel, 0, "a"))
	h.Clear()

	if h.CanUndo() || h.CanRedo() {
		t.Error("expected empty stacks after Clear")
	}
}
