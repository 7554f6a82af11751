package document

import (
	"fmt"

	"github.com/chmike/yabe"
	"github.com/chmike/yabe/tag"
)

// Decoder reads Value trees out of a caller-owned buffer using only the
// core's Reader primitives, providing the structural validation (container
// depth, blob payload shape, tag-to-Kind dispatch) the core does not.
type Decoder struct{}

// NewDecoder returns a Decoder. It holds no state; one instance may decode
// any number of documents from any number of Readers.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads one top-level value from r.
//
// It does not skip leading `none` padding; callers that interleave padding
// with values should call r.ReadNone() themselves, matching the core's
// explicit-skip contract (SPEC_FULL.md §4.3).
func (d *Decoder) Decode(r *yabe.Reader) (Value, error) {
	return d.decodeValue(r, 0)
}

// maxDepth bounds recursive container nesting against a maliciously or
// accidentally deep/cyclical-looking encoding; the wire format has no depth
// field of its own; this is value-domain policy, not something the core
// enforces.
const maxDepth = 64

func (d *Decoder) decodeValue(r *yabe.Reader, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("document: %w: container nesting exceeds %d", ErrTruncated, maxDepth)
	}

	switch r.Kind() {
	case tag.KindNull:
		if r.ReadNull() == 0 {
			return nil, fmt.Errorf("document: %w: null", ErrTruncated)
		}

		return nil, nil

	case tag.KindBool:
		var b bool
		if r.ReadBool(&b) == 0 {
			return nil, fmt.Errorf("document: %w: bool", ErrTruncated)
		}

		return b, nil

	case tag.KindInt:
		var v int64
		if r.ReadInteger(&v) == 0 {
			return nil, fmt.Errorf("document: %w: integer", ErrTruncated)
		}

		return v, nil

	case tag.KindFloat:
		var v float64
		if r.ReadFloat(&v) == 0 {
			return nil, fmt.Errorf("document: %w: float", ErrTruncated)
		}

		return v, nil

	case tag.KindString:
		s, err := d.decodeString(r)
		if err != nil {
			return nil, err
		}

		return s, nil

	case tag.KindBlob:
		return d.decodeBlob(r)

	case tag.KindArray:
		return d.decodeArray(r, depth)

	case tag.KindObject:
		return d.decodeObject(r, depth)

	default:
		b, ok := r.Cursor().PeekByte()
		if !ok {
			return nil, fmt.Errorf("document: %w: value", ErrTruncated)
		}

		return nil, fmt.Errorf("document: %w: tag 0x%02x", ErrUnexpectedTag, b)
	}
}

func (d *Decoder) decodeString(r *yabe.Reader) (string, error) {
	var length int
	if r.ReadString(&length) == 0 {
		return "", fmt.Errorf("document: %w: string header", ErrTruncated)
	}

	buf := make([]byte, length)
	if r.ReadData(buf) != length {
		return "", fmt.Errorf("document: %w: string payload", ErrTruncated)
	}

	return string(buf), nil
}

func (d *Decoder) decodeBlob(r *yabe.Reader) (Value, error) {
	if r.ReadBlob() == 0 {
		return nil, fmt.Errorf("document: %w: blob tag", ErrTruncated)
	}

	if r.EndOfBuffer() {
		return nil, fmt.Errorf("document: %w: blob MIME type", ErrTruncated)
	}
	if r.Kind() != tag.KindString {
		return nil, ErrMalformedBlob
	}
	mime, err := d.decodeString(r)
	if err != nil {
		return nil, err
	}

	if r.EndOfBuffer() {
		return nil, fmt.Errorf("document: %w: blob payload header", ErrTruncated)
	}
	if r.Kind() != tag.KindString {
		return nil, ErrMalformedBlob
	}
	var length int
	if r.ReadString(&length) == 0 {
		return nil, fmt.Errorf("document: %w: blob payload header", ErrTruncated)
	}
	data := make([]byte, length)
	if r.ReadData(data) != length {
		return nil, fmt.Errorf("document: %w: blob payload", ErrTruncated)
	}

	return Blob{MIME: mime, Data: data}, nil
}

func (d *Decoder) decodeArray(r *yabe.Reader, depth int) (Value, error) {
	b, _ := r.Cursor().PeekByte()

	if tag.IsSmallArray(b) {
		var n int
		if r.ReadSmallArray(&n) == 0 {
			return nil, fmt.Errorf("document: %w: small array header", ErrTruncated)
		}

		out := make(Array, 0, n)
		for i := 0; i < n; i++ {
			v, err := d.decodeValue(r, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}

		return out, nil
	}

	if r.ReadArrayStream() == 0 {
		return nil, fmt.Errorf("document: %w: array stream header", ErrTruncated)
	}

	var out Array
	for {
		if r.Kind() == tag.KindEndStream {
			if r.ReadEndStream() == 0 {
				return nil, fmt.Errorf("document: %w: array end", ErrTruncated)
			}

			return out, nil
		}

		v, err := d.decodeValue(r, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (d *Decoder) decodeObject(r *yabe.Reader, depth int) (Value, error) {
	b, _ := r.Cursor().PeekByte()

	if tag.IsSmallObject(b) {
		var n int
		if r.ReadSmallObject(&n) == 0 {
			return nil, fmt.Errorf("document: %w: small object header", ErrTruncated)
		}

		out := make(Object, 0, n)
		for i := 0; i < n; i++ {
			entry, err := d.decodeEntry(r, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}

		return out, nil
	}

	if r.ReadObjectStream() == 0 {
		return nil, fmt.Errorf("document: %w: object stream header", ErrTruncated)
	}

	var out Object
	for {
		if r.Kind() == tag.KindEndStream {
			if r.ReadEndStream() == 0 {
				return nil, fmt.Errorf("document: %w: object end", ErrTruncated)
			}

			return out, nil
		}

		entry, err := d.decodeEntry(r, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
}

func (d *Decoder) decodeEntry(r *yabe.Reader, depth int) (Entry, error) {
	if r.EndOfBuffer() {
		return Entry{}, fmt.Errorf("document: %w: object key", ErrTruncated)
	}
	if r.Kind() != tag.KindString {
		return Entry{}, ErrNotAnObjectKey
	}
	key, err := d.decodeString(r)
	if err != nil {
		return Entry{}, err
	}

	v, err := d.decodeValue(r, depth+1)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Key: key, Value: v}, nil
}
