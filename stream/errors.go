package stream

import "errors"

var (
	// ErrValueTooLarge is returned by Writer.Append when a value does not
	// fit even after repeated growth attempts.
	ErrValueTooLarge = errors.New("stream: value too large to buffer")

	// ErrChecksumMismatch is returned by Reader when the decompressed
	// frame's checksum does not match the header.
	ErrChecksumMismatch = errors.New("stream: checksum mismatch")

	// ErrShortHeader is returned by Reader when fewer than frameHeaderSize
	// bytes are available.
	ErrShortHeader = errors.New("stream: short frame header")
)
