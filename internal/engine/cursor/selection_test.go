package cursor

import (
	"testing"

	"github.com/inkwell-editor/inkwell/internal/engine/buffer"
)

func TestSelectionEmpty(t *testing.T) {
	s := NewCursorSelection(5)

	if !s.IsEmpty() {
		t.Error("cursor selection should be empty")
	}
	if s.Len() != 0 {
		t.Errorf("expected length 0, got %d", s.Len())
	}

	r := s.Range()
	if r.Start != 5 || r.End != 5 {
		t.Errorf("expected empty range at 5, got %v", r)
	}
}

func TestSelectionNormalization(t *testing.T) {
	backward := NewSelection(8, 3)

	if !backward.IsBackward() {
		t.Error("expected backward selection")
	}

	r := backward.Range()
	if r.Start != 3 || r.End != 8 {
		t.Errorf("expected normalized [3:8), got %v", r)
	}
	if backward.Start() != 3 || backward.End() != 8 {
		t.Errorf("Start/End not normalized: %d, %d", backward.Start(), backward.End())
	}
}

func TestSelectionExtendKeepsAnchor(t *testing.T) {
	s := NewCursorSelection(4)

	s = s.Extend(9)
	if s.Anchor != 4 || s.Head != 9 {
		t.Errorf("expected anchor 4 head 9, got %v", s)
	}

	s = s.Extend(1)
	if s.Anchor != 4 || s.Head != 1 {
		t.Errorf("expected anchor 4 head 1, got %v", s)
	}
}

func TestSelectionCollapse(t *testing.T) {
	s := NewSelection(2, 7)

	c := s.Collapse()
	if !c.IsEmpty() || c.Head != 7 {
		t.Errorf("expected collapse to head 7, got %v", c)
	}

	cs := s.CollapseToStart()
	if !cs.IsEmpty() || cs.Head != 2 {
		t.Errorf("expected collapse to start 2, got %v", cs)
	}

	ce := NewSelection(9, 3).CollapseToEnd()
	if !ce.IsEmpty() || ce.Head != 9 {
		t.Errorf("expected collapse to end 9, got %v", ce)
	}
}

func TestSelectionText(t *testing.T) {
	buf := buffer.NewFromString("Hello World")

	s := NewSelection(0, 5)
	if got := s.Text(buf); got != "Hello" {
		t.Errorf("expected 'Hello', got %q", got)
	}

	// Backward selection yields the same text.
	if got := s.Flip().Text(buf); got != "Hello" {
		t.Errorf("expected 'Hello' from flipped selection, got %q", got)
	}
}

func TestCollapsedSelectionTextAlwaysEmpty(t *testing.T) {
	buf := buffer.NewFromString("Hello World")

	for _, off := range []RuneOffset{0, 5, 11, 99} {
		s := NewSelection(3, 9).Collapse().MoveTo(off)
		if got := s.Text(buf); got != "" {
			t.Errorf("collapsed selection at %d returned %q", off, got)
		}
	}
}

func TestSelectionTextMultiline(t *testing.T) {
	buf := buffer.NewFromString("abc\ndef\nghi")

	s := NewSelection(2, 9)
	if got := s.Text(buf); got != "c\ndef\ng" {
		t.Errorf("expected multi-line slice, got %q", got)
	}
}

func TestSelectionContains(t *testing.T) {
	s := NewSelection(7, 2)

	if !s.Contains(2) || !s.Contains(6) {
		t.Error("expected selection to contain interior offsets")
	}
	if s.Contains(7) {
		t.Error("end bound is exclusive")
	}
	if NewCursorSelection(4).Contains(4) {
		t.Error("collapsed selection contains nothing")
	}
}

func TestSelectionClamp(t *testing.T) {
	s := NewSelection(-3, 99).Clamp(10)

	if s.Anchor != 0 || s.Head != 10 {
		t.Errorf("expected clamp to [0,10], got %v", s)
	}
}

func TestCursorBasics(t *testing.T) {
	c := New(-4)
	if c.Offset() != 0 {
		t.Errorf("expected negative offset to clamp, got %d", c.Offset())
	}

	c = c.MoveTo(7).MoveBy(-2)
	if c.Offset() != 5 {
		t.Errorf("expected offset 5, got %d", c.Offset())
	}

	c = c.MoveBy(-99)
	if c.Offset() != 0 {
		t.Errorf("expected move past start to clamp, got %d", c.Offset())
	}

	if got := c.MoveTo(20).Clamp(10).Offset(); got != 10 {
		t.Errorf("expected clamp to 10, got %d", got)
	}
}

func TestCursorToSelection(t *testing.T) {
	s := New(6).ToSelection()
	if !s.IsEmpty() || s.Head != 6 {
		t.Errorf("expected collapsed selection at 6, got %v", s)
	}
}
