// Package cursor provides the cursor and selection value types used by
// the editor engine.
//
// Both types are immutable values over codepoint offsets: methods return
// new values rather than mutating. A Selection is an (anchor, head)
// pair; the anchor is where the selection gesture began, the head tracks
// the cursor. A collapsed selection (anchor == head) is the "no
// selection" state and is interchangeable with a cursor at that offset.
//
// Neither type validates offsets against a buffer: the owning session
// clamps after every mutation, since a buffer edit can invalidate any
// stored offset.
package cursor
