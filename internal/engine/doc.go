// Package engine is the editing core: a gap-buffer document with a line
// index, codepoint-addressed cursors and selections, and a bounded undo
// history, tied together by Session.
//
// Positions are codepoint offsets throughout. Operations that take a
// position or range clamp it to the document rather than failing, so
// every edit and movement is total. The only errors the engine produces
// are ErrIndexOutOfRange for a bad line number, ErrInvalidOffset for a
// byte offset inside a codepoint's encoding, and the undo/redo
// sentinels.
//
// Subpackages:
//
//   - buffer: gap-buffer text storage, line index, position math
//   - textpos: pure byte/codepoint/line-column conversions on strings
//   - cursor: immutable cursor and selection value types
//   - history: reversible edit commands and the undo/redo stack
//   - grapheme: cluster boundaries for user-perceived characters
package engine
