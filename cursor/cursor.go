// Package cursor implements the position+remaining-bytes pair that is the
// sole I/O surface of the YABE core. A Cursor borrows a caller-owned []byte
// region and holds it for as long as the Cursor is in use; its methods never
// allocate or copy the region, and advances only on success (see the
// atomic-value invariant in SPEC_FULL.md §4.1).
package cursor

// Cursor is a value, not a handle: copying a Cursor copies the (slice
// header, position) pair, and the copy observes writes made through the
// original only insofar as they mutate the same underlying array. Aliasing
// two Cursors over the same region is legal; the caller serializes access.
type Cursor struct {
	buf []byte
	pos int
}

// New constructs a Cursor over buf starting at position 0. The same
// constructor is used for both writer and reader cursors; the two differ
// only in caller intent (the writer fills buf, the reader consumes it).
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining returns the number of bytes still writable (for a writer
// cursor) or readable (for a reader cursor).
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// EndOfBuffer reports whether Remaining is zero.
func (c *Cursor) EndOfBuffer() bool {
	return c.Remaining() == 0
}

// Position returns the current byte offset into the underlying region.
func (c *Cursor) Position() int {
	return c.pos
}

// Len returns the total length of the underlying region.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Reset rewinds the cursor to position 0 over the same underlying region.
func (c *Cursor) Reset() {
	c.pos = 0
}

// Rebind points the cursor at a new underlying region while preserving the
// current position. This is how a growable buffer (see package stream)
// resumes a cursor after growing its backing array: the new buf must carry
// forward every byte already written at positions < c.pos.
func (c *Cursor) Rebind(buf []byte) {
	c.buf = buf
}

// Truncate rewinds the cursor to an earlier position, discarding any bytes
// written since. pos must not exceed the current position. This is how
// stream.Writer.Append undoes a partially-written composite value (several
// writer calls, one of which failed) before retrying, so a retry after
// growing the buffer starts clean rather than duplicating the bytes already
// committed.
func (c *Cursor) Truncate(pos int) {
	if pos < 0 || pos > c.pos {
		panic("cursor: Truncate position out of range")
	}
	c.pos = pos
}

// Reserve returns the n bytes starting at the current position without
// advancing, and reports whether there was room. Callers that use the
// returned slice and then decide to commit must call Advance(n) themselves;
// this split is what lets writer/reader operations stay atomic (fill the
// region, and only advance - i.e. commit - once the fill cannot fail).
func (c *Cursor) Reserve(n int) ([]byte, bool) {
	if c.Remaining() < n {
		return nil, false
	}

	return c.buf[c.pos : c.pos+n : c.pos+n], true
}

// Advance commits n bytes at the current position. Callers must only pass
// an n that a prior Reserve(n) (or equivalent bounds check) validated.
func (c *Cursor) Advance(n int) {
	c.pos += n
}

// PeekByte returns the byte at the current position without advancing, and
// reports whether one was available. This is how the reader inspects a tag
// before deciding which Read* path to take.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.EndOfBuffer() {
		return 0, false
	}

	return c.buf[c.pos], true
}

// CopyIn copies as much of data as fits in the remaining space, advances by
// that amount, and returns the number of bytes copied. This is the writer
// side of the non-atomic write_data/read_data pair: a short copy still
// advances the cursor to the end of the buffer, per the partial-transfer
// failure mode in SPEC_FULL.md §4.4.
func (c *Cursor) CopyIn(data []byte) int {
	n := min(len(data), c.Remaining())
	copy(c.buf[c.pos:c.pos+n], data[:n])
	c.pos += n

	return n
}

// CopyOut copies as much of the remaining buffer as fits into dst, advances
// by that amount, and returns the number of bytes copied. This is the
// reader side of the non-atomic read_data operation.
func (c *Cursor) CopyOut(dst []byte) int {
	n := min(len(dst), c.Remaining())
	copy(dst[:n], c.buf[c.pos:c.pos+n])
	c.pos += n

	return n
}
