// Package rope implements an immutable chunked rope for document text.
//
// The rope is a B+ tree whose leaves hold small string chunks with
// precomputed metrics (bytes, characters, lines). All operations return
// new Rope values; existing values are never modified, so a Rope can be
// handed to a background goroutine as a free snapshot.
//
// Editing positions are expressed in character (rune) indices, the unit
// the document layer works in. Byte offsets are available through the
// CharToByte/ByteToChar conversions for collaborators that measure text
// in bytes.
package rope
