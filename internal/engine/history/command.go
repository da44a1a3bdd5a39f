package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/engine/buffer"
	"github.com/inkwell-editor/inkwell/internal/engine/cursor"
)

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Command is a reversible edit. Commands record edits the session has
// already applied, so Execute and Undo are total: buffer mutations clamp
// and cannot fail.
type Command interface {
	// Execute re-applies the command (used for redo).
	Execute(buf *buffer.Buffer, sel *Selection)

	// Undo reverses the command.
	Undo(buf *buffer.Buffer, sel *Selection)

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand records a single applied edit: the range that was replaced,
// the text on both sides, and the selection before and after. An insert's
// inverse deletes the inserted span; a delete's inverse reinserts the
// removed text at the same position.
type EditCommand struct {
	OldRange Range  // Range replaced in the original document
	NewRange Range  // Range the new text occupies after the edit
	OldText  string // Text that was replaced (for undo)
	NewText  string // Text that was inserted (for redo)

	Before Selection // Selection before the edit
	After  Selection // Selection after the edit
}

// Execute re-applies the edit.
func (c *EditCommand) Execute(buf *buffer.Buffer, sel *Selection) {
	buf.ApplyEdit(buffer.NewEdit(c.OldRange, c.NewText))
	*sel = c.After
}

// Undo reverses the edit.
func (c *EditCommand) Undo(buf *buffer.Buffer, sel *Selection) {
	buf.ApplyEdit(buffer.NewEdit(c.NewRange, c.OldText))
	*sel = c.Before
}

// Description returns a human-readable description.
func (c *EditCommand) Description() string {
	switch {
	case c.OldRange.IsEmpty() && c.NewText == "\n":
		return "Insert newline"
	case c.OldRange.IsEmpty():
		n := utf8.RuneCountInString(c.NewText)
		if n <= 20 {
			return fmt.Sprintf("Insert %q", c.NewText)
		}
		return fmt.Sprintf("Insert %d characters", n)
	case c.NewText == "":
		return "Delete"
	default:
		return "Replace"
	}
}

// CompoundCommand groups several commands into one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(buf *buffer.Buffer, sel *Selection) {
	for _, cmd := range c.Commands {
		cmd.Execute(buf, sel)
	}
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer, sel *Selection) {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		c.Commands[i].Undo(buf, sel)
	}
}

// Description returns the group name, or a summary if unnamed.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%d edits", len(c.Commands))
}
