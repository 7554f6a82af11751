// Package yabe implements the YABE ("Yet Another Binary Encoding") core: a
// stateless, single-value-at-a-time writer and reader pair over a
// caller-owned byte region (package cursor), plus the tag table that
// describes the wire format (package tag).
//
// Every Write* method returns the number of bytes written: 0 means
// insufficient room and the cursor is left exactly as it was (atomic
// failure); a positive count means the full encoding was emitted. The one
// exception is WriteData, which may copy fewer bytes than requested and
// always advances by the partial count actually transferred - see
// SPEC_FULL.md §4.2 and §4.4.
package yabe

import (
	"math"

	"github.com/chmike/yabe/cursor"
	"github.com/chmike/yabe/endian"
	"github.com/chmike/yabe/tag"
)

// Writer encodes YABE values into a caller-owned, fixed-size buffer.
//
// A Writer is not safe for concurrent use; the caller serializes access to
// a given instance, exactly as the underlying Cursor requires.
type Writer struct {
	cur    *cursor.Cursor
	engine endian.EndianEngine
}

// NewWriter creates a Writer over buf. Every encoded byte lands in buf;
// the Writer holds buf through its cursor and never allocates a buffer of
// its own.
func NewWriter(buf []byte) *Writer {
	return &Writer{
		cur:    cursor.New(buf),
		engine: endian.GetLittleEndianEngine(),
	}
}

// Cursor returns the underlying cursor, e.g. so a caller can check
// EndOfBuffer or rebind the Writer onto a grown buffer after a 0 return.
func (w *Writer) Cursor() *cursor.Cursor {
	return w.cur
}

// writeTag writes a single tag byte, atomically.
func (w *Writer) writeTag(t tag.Tag) int {
	region, ok := w.cur.Reserve(1)
	if !ok {
		return 0
	}
	region[0] = t
	w.cur.Advance(1)

	return 1
}

// WriteNull emits the null tag.
func (w *Writer) WriteNull() int { return w.writeTag(tag.Null) }

// WriteNone emits a single none (padding) tag.
func (w *Writer) WriteNone() int { return w.writeTag(tag.None) }

// WriteBool emits the true or false tag.
func (w *Writer) WriteBool(b bool) int {
	if b {
		return w.writeTag(tag.True)
	}

	return w.writeTag(tag.False)
}

// WriteBlob emits the blob tag. The caller follows with WriteString+WriteData
// for the MIME type, then WriteString+WriteData for the raw payload.
func (w *Writer) WriteBlob() int { return w.writeTag(tag.Blob) }

// WriteArrayStream emits the tag opening a streamed (unbounded) array. The
// caller writes each item in turn and closes the container with WriteEndStream.
func (w *Writer) WriteArrayStream() int { return w.writeTag(tag.ArrayStream) }

// WriteObjectStream emits the tag opening a streamed (unbounded) object.
func (w *Writer) WriteObjectStream() int { return w.writeTag(tag.ObjectStream) }

// WriteEndStream emits the tag terminating a streamed array or object.
func (w *Writer) WriteEndStream() int { return w.writeTag(tag.Ends) }

// WriteSmallArray emits a packed array tag carrying its item count (0..6)
// directly in the tag byte. Returns 0 if n is out of range or there is no room.
func (w *Writer) WriteSmallArray(n int) int {
	if n < 0 || n > tag.MaxSmallContainer {
		return 0
	}

	return w.writeTag(tag.SArrayBase + tag.Tag(n))
}

// WriteSmallObject emits a packed object tag carrying its item count (0..6).
// Returns 0 if n is out of range or there is no room.
func (w *Writer) WriteSmallObject(n int) int {
	if n < 0 || n > tag.MaxSmallContainer {
		return 0
	}

	return w.writeTag(tag.SObjectBase + tag.Tag(n))
}

// WriteInteger encodes v with the narrowest tag that fits: a single
// self-representing byte for -32..127, then int16, int32, int64 as needed.
// Atomic: if the selected width does not fit, 0 is returned and the cursor
// is unchanged.
func (w *Writer) WriteInteger(v int64) int {
	switch {
	case v >= -32 && v <= 127:
		return w.writeTag(tag.Tag(int8(v)))

	case v >= -32768 && v <= 32767:
		region, ok := w.cur.Reserve(3)
		if !ok {
			return 0
		}
		region[0] = tag.Int16
		w.engine.PutUint16(region[1:], uint16(int16(v)))
		w.cur.Advance(3)

		return 3

	case v >= -2147483648 && v <= 2147483647:
		region, ok := w.cur.Reserve(5)
		if !ok {
			return 0
		}
		region[0] = tag.Int32
		w.engine.PutUint32(region[1:], uint32(int32(v)))
		w.cur.Advance(5)

		return 5

	default:
		region, ok := w.cur.Reserve(9)
		if !ok {
			return 0
		}
		region[0] = tag.Int64
		w.engine.PutUint64(region[1:], uint64(v))
		w.cur.Advance(9)

		return 9
	}
}

const (
	doubleSignMask = uint64(1) << 63
	doubleExpMask  = uint64(0x7FF) << 52
	half16LowMask  = uint64(1)<<42 - 1 // low 42 mantissa bits must be 0 to fit flt16
	single29Mask   = uint64(1)<<29 - 1 // low 29 mantissa bits must be 0 to fit flt32
)

// WriteFloat encodes v using IEEE-754 bit decomposition, choosing the
// narrowest of flt0/flt16/flt32/flt64 that round-trips exactly.
//
//   - ±0.0 encodes as the single-byte flt0 tag (the sign is not preserved,
//     an accepted lossy canonicalization: see SPEC_FULL.md §4.2).
//   - Inf and NaN encode as flt16 with fixed 2-byte payloads; every NaN,
//     whatever its sign and mantissa bits, encodes as the same 0x7D00
//     pattern.
//   - A normal value narrows to flt16 or flt32 only when its low mantissa
//     bits (42 or 29, respectively) are all zero and its exponent fits the
//     narrower format's normal range. Values that would become subnormal in
//     the narrower format are deliberately NOT narrowed; double subnormals
//     always fall through to flt64 untouched.
func (w *Writer) WriteFloat(v float64) int {
	bits := math.Float64bits(v)

	if bits&^doubleSignMask == 0 {
		return w.writeTag(tag.Flt0)
	}

	de := bits & doubleExpMask
	if de == doubleExpMask {
		var hr uint16
		switch {
		case bits&((uint64(1)<<52)-1) != 0:
			hr = 0x7D00 // fixed NaN pattern (mantissa 0x100)
		case bits&doubleSignMask != 0:
			hr = 0xFC00 // -Inf
		default:
			hr = 0x7C00 // +Inf
		}

		return w.writeFlt16Raw(hr)
	}

	e := int32(de>>52) - 1023

	if e >= -14 && e <= 15 && bits&half16LowMask == 0 {
		hr := uint16(e+15) << 10
		if bits&doubleSignMask != 0 {
			hr |= 0x8000
		}
		hr |= uint16(bits>>(52-10)) & 0x3FF

		return w.writeFlt16Raw(hr)
	}

	if e >= -126 && e <= 127 && bits&single29Mask == 0 {
		fr := uint32(e+127) << 23
		if bits&doubleSignMask != 0 {
			fr |= 0x80000000
		}
		fr |= uint32(bits>>29) & 0x7FFFFF

		region, ok := w.cur.Reserve(5)
		if !ok {
			return 0
		}
		region[0] = tag.Flt32
		w.engine.PutUint32(region[1:], fr)
		w.cur.Advance(5)

		return 5
	}

	region, ok := w.cur.Reserve(9)
	if !ok {
		return 0
	}
	region[0] = tag.Flt64
	w.engine.PutUint64(region[1:], bits)
	w.cur.Advance(9)

	return 9
}

func (w *Writer) writeFlt16Raw(hr uint16) int {
	region, ok := w.cur.Reserve(3)
	if !ok {
		return 0
	}
	region[0] = tag.Flt16
	w.engine.PutUint16(region[1:], hr)
	w.cur.Advance(3)

	return 3
}

// WriteString emits only the tag+length header for a string of the given
// byte length. The caller must follow with WriteData to emit the payload.
// Width selection: str6 for len<64, str16 for len<2^16, str32 for
// len<2^32, str64 otherwise - each with its own distinct tag.
func (w *Writer) WriteString(length int) int {
	switch {
	case length < 0:
		return 0

	case length < 64:
		return w.writeTag(tag.Str6Base | tag.Tag(length))

	case length < 1<<16:
		region, ok := w.cur.Reserve(3)
		if !ok {
			return 0
		}
		region[0] = tag.Str16
		w.engine.PutUint16(region[1:], uint16(length))
		w.cur.Advance(3)

		return 3

	case int64(length) < int64(1)<<32:
		region, ok := w.cur.Reserve(5)
		if !ok {
			return 0
		}
		region[0] = tag.Str32
		w.engine.PutUint32(region[1:], uint32(length))
		w.cur.Advance(5)

		return 5

	default:
		region, ok := w.cur.Reserve(9)
		if !ok {
			return 0
		}
		region[0] = tag.Str64
		w.engine.PutUint64(region[1:], uint64(length))
		w.cur.Advance(9)

		return 9
	}
}

// WriteData copies as many bytes of buf as fit in the remaining space and
// advances the cursor by that count. Unlike every other Write* method this
// is NOT atomic: it may copy fewer bytes than len(buf), in which case the
// cursor ends at end-of-buffer and the caller is expected to resume into a
// new or extended buffer (see SPEC_FULL.md §11 for the pattern in practice).
func (w *Writer) WriteData(buf []byte) int {
	return w.cur.CopyIn(buf)
}

// signature is the 5-byte magic preceding an optional YABE stream: "YABE"
// followed by a single version byte, currently always 0.
var signature = [5]byte{'Y', 'A', 'B', 'E', 0x00}

// WriteSignature emits the 5-byte "YABE\0" magic. Atomic: fails if fewer
// than 5 bytes remain.
func (w *Writer) WriteSignature() int {
	region, ok := w.cur.Reserve(5)
	if !ok {
		return 0
	}
	copy(region, signature[:])
	w.cur.Advance(5)

	return 5
}

// PadRemaining fills the rest of the buffer with none tags, one byte at a
// time, and returns the number of bytes written. This is the documented way
// to pad the unused tail of a fixed-size buffer (SPEC_FULL.md §6).
func (w *Writer) PadRemaining() int {
	n := 0
	for w.WriteNone() == 1 {
		n++
	}

	return n
}
