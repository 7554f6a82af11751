// Package stream provides the growable-buffer transport helper layered on
// top of the core: a pooled, growing write buffer that demonstrates the
// "fails atomically, caller extends and resumes" discipline the core's
// Writer is built around (SPEC_FULL.md §11), plus optional whole-frame
// compression and an xxhash64 integrity checksum for handing a finished
// frame to an io.Writer/io.Reader.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/chmike/yabe"
	"github.com/chmike/yabe/compress"
	"github.com/chmike/yabe/endian"
	"github.com/chmike/yabe/internal/hash"
	"github.com/chmike/yabe/internal/options"
	"github.com/chmike/yabe/internal/pool"
)

// growHint is the minimum additional capacity requested on each grow
// attempt; the pool's amortized strategy (internal/pool.ByteBuffer.Grow)
// usually allocates more than this.
const growHint = 256

// maxGrowAttempts bounds how many times Append re-tries a single value
// against a freshly grown buffer before giving up. A value larger than
// this many growth increments combined is almost certainly a caller bug,
// not a buffer that merely needs to catch up.
const maxGrowAttempts = 32

// Writer accumulates encoded values into a pooled, growable buffer and
// flushes the result as one compressed, checksummed frame.
//
// Writer is not safe for concurrent use by multiple goroutines, consistent
// with the core's "caller serializes access" cursor contract.
type Writer struct {
	buf           *pool.ByteBuffer
	w             *yabe.Writer
	codec         compress.Codec
	writeChecksum bool
}

// WithCompressor sets the codec used to compress a flushed frame. The
// default is compress.NoOpCodec. codec must not be nil.
func WithCompressor(codec compress.Codec) options.Option[*Writer] {
	return func(w *Writer) error {
		if codec == nil {
			return errors.New("stream: compressor must not be nil")
		}
		w.codec = codec

		return nil
	}
}

// WithChecksum controls whether Flush computes and writes a real xxhash64
// checksum of the uncompressed frame (the default, true) or writes a zero
// placeholder for a caller that verifies integrity some other way.
func WithChecksum(enabled bool) options.Option[*Writer] {
	return func(w *Writer) error {
		w.writeChecksum = enabled

		return nil
	}
}

// NewWriter allocates a Writer backed by a buffer from the package pool,
// applying opts in order.
func NewWriter(opts ...options.Option[*Writer]) (*Writer, error) {
	sw := &Writer{
		codec:         compress.NewNoOpCodec(),
		writeChecksum: true,
	}
	if err := options.Apply(sw, opts...); err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	sw.buf = pool.GetBuffer()
	sw.buf.SetLength(sw.buf.Cap())
	sw.w = yabe.NewWriter(sw.buf.Bytes())

	return sw, nil
}

// Close returns the Writer's buffer to the package pool. A Writer must not
// be used after Close.
func (sw *Writer) Close() {
	pool.PutBuffer(sw.buf)
	sw.buf = nil
	sw.w = nil
}

// Append calls fn with the underlying core Writer. If fn returns 0 (no
// room), Append grows the backing buffer, rebinds the core Writer's cursor
// to the larger region, and calls fn again - the "extend and resume"
// pattern - up to maxGrowAttempts times.
//
// fn must be idempotent when re-invoked from the same cursor position: any
// partial progress fn made before returning 0 is rewound (see
// cursor.Cursor.Truncate) before each retry, so fn runs against a clean
// cursor every time it is called. fn is responsible for treating a short
// WriteData count as failure (returning 0) rather than success, since
// WriteData alone is not atomic the way every other Write* call is.
func (sw *Writer) Append(fn func(w *yabe.Writer) int) error {
	start := sw.w.Cursor().Position()

	for attempt := 0; ; attempt++ {
		sw.w.Cursor().Truncate(start)

		if fn(sw.w) > 0 {
			return nil
		}

		if attempt >= maxGrowAttempts {
			return ErrValueTooLarge
		}

		sw.grow()
	}
}

func (sw *Writer) grow() {
	sw.buf.Grow(growHint)
	sw.buf.SetLength(sw.buf.Cap())
	sw.w.Cursor().Rebind(sw.buf.Bytes())
}

// Len returns the number of bytes written into the buffer so far.
func (sw *Writer) Len() int {
	return sw.w.Cursor().Position()
}

// frameHeaderSize is the checksum (8 bytes) plus the uncompressed-length
// field (4 bytes) that precedes every frame's (possibly compressed) bytes.
const frameHeaderSize = 8 + 4

// Flush compresses the bytes accumulated so far with the configured codec,
// writes an 8-byte xxhash64 checksum of the *uncompressed* bytes and a
// little-endian uint32 uncompressed length, then writes the compressed
// bytes, all to w. It does not reset the Writer; call Reset to reuse it for
// a new frame.
func (sw *Writer) Flush(w io.Writer) error {
	payload := sw.buf.Bytes()[:sw.w.Cursor().Position()]

	compressed, err := sw.codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("stream: compress: %w", err)
	}

	var header [frameHeaderSize]byte
	engine := endian.GetLittleEndianEngine()
	checksum := uint64(0)
	if sw.writeChecksum {
		checksum = hash.Checksum(payload)
	}
	engine.PutUint64(header[0:8], checksum)
	engine.PutUint32(header[8:12], uint32(len(payload)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stream: write header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("stream: write frame: %w", err)
	}

	return nil
}

// Reset empties the buffer, discarding any unflushed data, for reuse as a
// new frame.
func (sw *Writer) Reset() {
	sw.buf.SetLength(0)
	sw.buf.SetLength(sw.buf.Cap())
	sw.w.Cursor().Rebind(sw.buf.Bytes())
	sw.w.Cursor().Truncate(0)
}
