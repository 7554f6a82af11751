package document

import (
	"fmt"

	"github.com/chmike/yabe"
	"github.com/chmike/yabe/internal/options"
)

// defaultMaxInlineContainer is the largest array/object length written as a
// packed small container (tag.SArrayBase+n / tag.SObjectBase+n) rather than
// a streamed one. The wire format caps packed containers at 6 items; an
// Encoder may choose to stream earlier than that, never later.
const defaultMaxInlineContainer = yabe.MaxSmallContainer

// Encoder writes Value trees into a caller-owned buffer using only the
// core's Writer primitives. It holds no buffer of its own: every call
// targets the *yabe.Writer passed to Encode.
type Encoder struct {
	maxInline int
}

// WithMaxInlineContainer overrides the largest item count at which arrays
// and objects are written packed instead of streamed. n must be in
// [0, yabe.MaxSmallContainer]; the wire format has no packed tag for more
// than MaxSmallContainer items, so a wider value could never be honored.
func WithMaxInlineContainer(n int) options.Option[*Encoder] {
	return func(e *Encoder) error {
		if n < 0 || n > yabe.MaxSmallContainer {
			return fmt.Errorf("document: max inline container count must be in [0, %d], got %d", yabe.MaxSmallContainer, n)
		}
		e.maxInline = n

		return nil
	}
}

// NewEncoder builds an Encoder, applying opts in order.
func NewEncoder(opts ...options.Option[*Encoder]) (*Encoder, error) {
	e := &Encoder{maxInline: defaultMaxInlineContainer}
	if err := options.Apply(e, opts...); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	return e, nil
}

// Encode writes v into w. It returns ErrBufferTooSmall, unwrapped and
// without the failing value's position, if w runs out of room partway
// through; bytes written before the failure stay in w — the caller
// is expected to grow the destination and retry from scratch (values are
// not resumable mid-write; stream.Writer builds the extend-and-resume
// pattern on top of repeated whole-document attempts).
func (e *Encoder) Encode(w *yabe.Writer, v Value) error {
	if !e.encodeValue(w, v) {
		return ErrBufferTooSmall
	}

	return nil
}

func (e *Encoder) encodeValue(w *yabe.Writer, v Value) bool {
	switch x := v.(type) {
	case nil:
		return w.WriteNull() > 0
	case bool:
		return w.WriteBool(x) > 0
	case int:
		return w.WriteInteger(int64(x)) > 0
	case int64:
		return w.WriteInteger(x) > 0
	case float64:
		return w.WriteFloat(x) > 0
	case string:
		return e.encodeString(w, x)
	case Blob:
		return e.encodeBlob(w, x)
	case Array:
		return e.encodeArray(w, x)
	case Object:
		return e.encodeObject(w, x)
	default:
		return false
	}
}

func (e *Encoder) encodeString(w *yabe.Writer, s string) bool {
	if w.WriteString(len(s)) == 0 {
		return false
	}

	return w.WriteData([]byte(s)) == len(s)
}

func (e *Encoder) encodeBlob(w *yabe.Writer, b Blob) bool {
	if w.WriteBlob() == 0 {
		return false
	}
	if !e.encodeString(w, b.MIME) {
		return false
	}

	if w.WriteString(len(b.Data)) == 0 {
		return false
	}

	return w.WriteData(b.Data) == len(b.Data)
}

func (e *Encoder) encodeArray(w *yabe.Writer, a Array) bool {
	if len(a) <= e.maxInline {
		if w.WriteSmallArray(len(a)) == 0 {
			return false
		}
		for _, item := range a {
			if !e.encodeValue(w, item) {
				return false
			}
		}

		return true
	}

	if w.WriteArrayStream() == 0 {
		return false
	}
	for _, item := range a {
		if !e.encodeValue(w, item) {
			return false
		}
	}

	return w.WriteEndStream() > 0
}

func (e *Encoder) encodeObject(w *yabe.Writer, o Object) bool {
	if len(o) <= e.maxInline {
		if w.WriteSmallObject(len(o)) == 0 {
			return false
		}
		for _, entry := range o {
			if !e.encodeString(w, entry.Key) || !e.encodeValue(w, entry.Value) {
				return false
			}
		}

		return true
	}

	if w.WriteObjectStream() == 0 {
		return false
	}
	for _, entry := range o {
		if !e.encodeString(w, entry.Key) || !e.encodeValue(w, entry.Value) {
			return false
		}
	}

	return w.WriteEndStream() > 0
}
