package engine

import (
	"github.com/inkwell-editor/inkwell/internal/engine/buffer"
	"github.com/inkwell-editor/inkwell/internal/engine/history"
	"github.com/inkwell-editor/inkwell/internal/engine/textpos"
)

// Re-exported sentinels so callers can match engine errors without
// importing the subpackages.
var (
	// ErrIndexOutOfRange is returned for a line number outside the
	// document.
	ErrIndexOutOfRange = buffer.ErrIndexOutOfRange

	// ErrInvalidOffset is returned for a byte offset that lands inside
	// a codepoint's encoding.
	ErrInvalidOffset = textpos.ErrInvalidOffset

	// ErrNothingToUndo is returned by Undo when the history is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo is returned by Redo when nothing has been undone.
	ErrNothingToRedo = history.ErrNothingToRedo
)
