// Package document implements the editable text model: a rope-backed
// buffer with a cursor, an optional selection, dirty tracking against
// the last saved state, and snapshot-based undo history.
//
// All positions are character indices (Unicode code points), not byte
// offsets. Conversions between the two spaces clamp out-of-range input.
//
// A Document is owned by a single goroutine. Concurrent readers must
// go through immutable rope snapshots, not the Document itself.
package document
