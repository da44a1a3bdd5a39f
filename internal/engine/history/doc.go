// Package history provides undo/redo for the editor engine as a command
// log wrapping the core. The buffer itself has no history: the session
// applies an edit, then pushes a Command recording the range, the text
// on both sides, and the selection before and after. Undo replays the
// inverse (a delete reinserts, an insert deletes); redo replays the
// original. Groups collapse multiple commands into one undo unit.
//
// The stack is bounded: when the limit is reached the oldest entries
// are evicted.
package history
