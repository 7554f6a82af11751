package yabe

import (
	"math"

	"github.com/chmike/yabe/cursor"
	"github.com/chmike/yabe/endian"
	"github.com/chmike/yabe/tag"
)

// Reader decodes YABE values from a caller-owned buffer.
//
// Every Read* method returns the number of bytes consumed: 0 means the
// value at the cursor is not of the requested kind, or decoding it would
// overrun the buffer - in both cases the cursor is left unchanged. Readers
// never implicitly skip none padding; call ReadNone explicitly at sync
// points that may carry padding (SPEC_FULL.md §4.3).
//
// A Reader is not safe for concurrent use.
type Reader struct {
	cur    *cursor.Cursor
	engine endian.EndianEngine
}

// NewReader creates a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{
		cur:    cursor.New(buf),
		engine: endian.GetLittleEndianEngine(),
	}
}

// Cursor returns the underlying cursor.
func (r *Reader) Cursor() *cursor.Cursor {
	return r.cur
}

// EndOfBuffer reports whether the cursor has consumed the entire buffer.
func (r *Reader) EndOfBuffer() bool {
	return r.cur.EndOfBuffer()
}

// Kind classifies the tag at the current position without consuming it, or
// tag.KindInvalid if the buffer is exhausted.
func (r *Reader) Kind() tag.Kind {
	b, ok := r.cur.PeekByte()
	if !ok {
		return tag.KindInvalid
	}

	return tag.Of(b)
}

func (r *Reader) readExactTag(want tag.Tag) int {
	b, ok := r.cur.PeekByte()
	if !ok || b != want {
		return 0
	}
	r.cur.Advance(1)

	return 1
}

// ReadNull reads the null tag, returning 1, or 0 if the tag does not match.
func (r *Reader) ReadNull() int { return r.readExactTag(tag.Null) }

// ReadNone skips consecutive none tags starting at the current position and
// returns the number of bytes skipped (0 if the current tag is not none).
func (r *Reader) ReadNone() int {
	n := 0
	for r.readExactTag(tag.None) == 1 {
		n++
	}

	return n
}

// ReadBool reads a true/false tag.
func (r *Reader) ReadBool(out *bool) int {
	b, ok := r.cur.PeekByte()
	if !ok {
		return 0
	}

	switch b {
	case tag.True:
		*out = true
	case tag.False:
		*out = false
	default:
		return 0
	}
	r.cur.Advance(1)

	return 1
}

// ReadBlob reads the blob tag. The caller follows with ReadString+ReadData
// twice: once for the MIME type, once for the raw payload.
func (r *Reader) ReadBlob() int { return r.readExactTag(tag.Blob) }

// ReadArrayStream reads the tag opening a streamed array.
func (r *Reader) ReadArrayStream() int { return r.readExactTag(tag.ArrayStream) }

// ReadObjectStream reads the tag opening a streamed object.
func (r *Reader) ReadObjectStream() int { return r.readExactTag(tag.ObjectStream) }

// ReadEndStream reads the tag terminating a streamed array or object.
//
// The original C source compared against the objects_tag here, a
// copy-paste bug; this reimplementation compares against the ends tag, as
// SPEC_FULL.md §4.3 resolves.
func (r *Reader) ReadEndStream() int { return r.readExactTag(tag.Ends) }

// ReadSmallArray reads a packed sarray tag and sets *n to its item count.
// Returns 0 if the tag at the cursor is not a packed sarray tag (this
// excludes the streamed-array tag, which shares the same 5-bit prefix).
func (r *Reader) ReadSmallArray(n *int) int {
	b, ok := r.cur.PeekByte()
	if !ok || !tag.IsSmallArray(b) {
		return 0
	}
	*n = tag.SmallArrayLen(b)
	r.cur.Advance(1)

	return 1
}

// ReadSmallObject reads a packed sobject tag and sets *n to its item count.
func (r *Reader) ReadSmallObject(n *int) int {
	b, ok := r.cur.PeekByte()
	if !ok || !tag.IsSmallObject(b) {
		return 0
	}
	*n = tag.SmallObjectLen(b)
	r.cur.Advance(1)

	return 1
}

// ReadInteger decodes a packed or widened integer tag into *v.
func (r *Reader) ReadInteger(v *int64) int {
	b, ok := r.cur.PeekByte()
	if !ok {
		return 0
	}

	if tag.IsPackedInt(b) {
		*v = int64(int8(b))
		r.cur.Advance(1)

		return 1
	}

	switch b {
	case tag.Int16:
		region, ok := r.cur.Reserve(3)
		if !ok {
			return 0
		}
		*v = int64(int16(r.engine.Uint16(region[1:])))
		r.cur.Advance(3)

		return 3

	case tag.Int32:
		region, ok := r.cur.Reserve(5)
		if !ok {
			return 0
		}
		*v = int64(int32(r.engine.Uint32(region[1:])))
		r.cur.Advance(5)

		return 5

	case tag.Int64:
		region, ok := r.cur.Reserve(9)
		if !ok {
			return 0
		}
		*v = int64(r.engine.Uint64(region[1:]))
		r.cur.Advance(9)

		return 9

	default:
		return 0
	}
}

// ReadFloat decodes a flt0/flt16/flt32/flt64 tag into *v.
//
// Half-precision subnormals (biased exponent 0, nonzero mantissa) are
// normalized into their exact double value rather than passed through the
// bit pattern a naive direct-rebias would produce, which SPEC_FULL.md §4.3
// identifies as a bug in the original source (Open Question 5).
func (r *Reader) ReadFloat(v *float64) int {
	b, ok := r.cur.PeekByte()
	if !ok {
		return 0
	}

	switch b {
	case tag.Flt0:
		r.cur.Advance(1)
		*v = 0.0

		return 1

	case tag.Flt16:
		region, ok := r.cur.Reserve(3)
		if !ok {
			return 0
		}
		hr := r.engine.Uint16(region[1:])
		r.cur.Advance(3)
		*v = decodeHalf(hr)

		return 3

	case tag.Flt32:
		region, ok := r.cur.Reserve(5)
		if !ok {
			return 0
		}
		*v = float64(math.Float32frombits(r.engine.Uint32(region[1:])))
		r.cur.Advance(5)

		return 5

	case tag.Flt64:
		region, ok := r.cur.Reserve(9)
		if !ok {
			return 0
		}
		*v = math.Float64frombits(r.engine.Uint64(region[1:]))
		r.cur.Advance(9)

		return 9

	default:
		return 0
	}
}

// decodeHalf reconstructs the exact float64 value of a 16-bit IEEE-754 half
// precision bit pattern.
func decodeHalf(hr uint16) float64 {
	sign := hr&0x8000 != 0
	exp := (hr >> 10) & 0x1F
	mant := hr & 0x3FF

	var v float64

	switch {
	case exp == 0x1F: // Inf / NaN
		switch {
		case mant != 0:
			return math.Float64frombits(0x7FF4000000000000) // canonical NaN pattern
		case sign:
			return math.Inf(-1)
		default:
			return math.Inf(1)
		}

	case exp == 0 && mant == 0:
		v = 0.0

	case exp == 0: // subnormal: value = mantissa * 2^-24, exact as a double
		v = math.Ldexp(float64(mant), -24)

	default: // normal: bit-exact placement into the double's exponent/mantissa fields
		bits := uint64(exp-15+1023) << 52
		bits |= uint64(mant) << (52 - 10)
		v = math.Float64frombits(bits)
	}

	if sign {
		v = -v
	}

	return v
}

// ReadString decodes a str6/str16/str32/str64 tag into *length. The payload
// itself is read separately via ReadData.
func (r *Reader) ReadString(length *int) int {
	b, ok := r.cur.PeekByte()
	if !ok {
		return 0
	}

	if tag.IsStr6(b) {
		*length = tag.Str6Len(b)
		r.cur.Advance(1)

		return 1
	}

	switch b {
	case tag.Str16:
		region, ok := r.cur.Reserve(3)
		if !ok {
			return 0
		}
		*length = int(r.engine.Uint16(region[1:]))
		r.cur.Advance(3)

		return 3

	case tag.Str32:
		region, ok := r.cur.Reserve(5)
		if !ok {
			return 0
		}
		*length = int(r.engine.Uint32(region[1:]))
		r.cur.Advance(5)

		return 5

	case tag.Str64:
		region, ok := r.cur.Reserve(9)
		if !ok {
			return 0
		}
		*length = int(r.engine.Uint64(region[1:]))
		r.cur.Advance(9)

		return 9

	default:
		return 0
	}
}

// ReadData copies as many bytes as are available into dst and advances by
// that count, symmetric to Writer.WriteData. Not atomic: a short read still
// advances the cursor to end-of-buffer.
func (r *Reader) ReadData(dst []byte) int {
	return r.cur.CopyOut(dst)
}

// ReadSignature reads the optional 5-byte "YABE" + version magic.
//
// Returns 0 if fewer than 5 bytes remain or the first 4 bytes do not match
// "YABE" (cursor unchanged in both cases). Returns 4, having advanced past
// the 4-byte magic, if the magic matches but the version byte is nonzero
// ("bad version"). Returns 5 on an exact match including version 0.
//
// The original C source used `!memcmp(...)`, inverting the comparison
// (Open Question 3); this reimplementation uses the correct sense.
func (r *Reader) ReadSignature() int {
	region, ok := r.cur.Reserve(5)
	if !ok {
		return 0
	}

	if region[0] != 'Y' || region[1] != 'A' || region[2] != 'B' || region[3] != 'E' {
		return 0
	}

	if region[4] != 0x00 {
		r.cur.Advance(4)

		return 4
	}

	r.cur.Advance(5)

	return 5
}
