package document

import "errors"

// Sentinel errors returned by Decoder and Encoder, some wrapped with context
// via fmt.Errorf and %w, in the teacher's errs-package style (SPEC_FULL.md
// §7).
var (
	// ErrTruncated is returned when the buffer ends before a value or
	// container is fully decoded, and when container nesting exceeds the
	// Decoder's depth limit.
	ErrTruncated = errors.New("document: truncated input")

	// ErrUnexpectedTag is returned when a tag byte does not match any
	// value kind the decoder knows how to read at that position.
	ErrUnexpectedTag = errors.New("document: unexpected tag")

	// ErrMalformedBlob is returned when a blob's two trailing values are
	// not both strings.
	ErrMalformedBlob = errors.New("document: blob payload is not two strings")

	// ErrNotAnObjectKey is returned when an object entry's key value is
	// not a string.
	ErrNotAnObjectKey = errors.New("document: object key is not a string")

	// ErrBufferTooSmall is returned by Encoder when the destination
	// buffer cannot hold the encoded value at all (the caller is
	// expected to grow and retry; see stream.Writer for that pattern).
	ErrBufferTooSmall = errors.New("document: buffer too small")
)
