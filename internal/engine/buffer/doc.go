// Package buffer provides the mutable text store at the heart of the
// editor engine: gap-buffer storage, a derived line index, and clamping
// mutation primitives.
//
// The package provides:
//
//   - Codepoint-granularity positions throughout (RuneOffset); byte
//     offsets never cross this package's boundary
//   - A rune gap buffer for efficient localized editing
//   - A lazily rebuilt line index with a fixed boundary policy
//   - Coordinate conversion between offsets and line/column points,
//     clamping out-of-range inputs instead of failing
//   - Clamping Insert/Delete/ApplyEdit mutations that keep content valid
//     encoded text at every observable point
//   - Full-content Text/SetText for the persistence boundary
//   - Revision IDs for change detection
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")          // "Hello, Beautiful World!"
//	buf.Delete(buffer.NewRange(0, 7))    // "Beautiful World!"
//
// Position model:
//
// Every position is a codepoint index in [0, Len]. Line boundaries are
// defined solely by the line feed codepoint: CR is ordinary content and
// no normalization is performed. A position equal to a line feed offset
// belongs to the line that feed terminates.
//
// Concurrency:
//
// The engine assumes a single writer. Methods still take the buffer's
// lock so that reads from other goroutines between mutations are safe,
// but callers must not cache positions or line spans across a mutation.
package buffer
