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
)

// Reader reverses Writer.Flush: it reads the length+checksum header,
// reads and decompresses the frame, verifies the checksum, and returns the
// decoded bytes for a core Reader to consume.
type Reader struct {
	codec          compress.Codec
	verifyChecksum bool
}

// WithDecompressor sets the codec used to decompress a read frame. It must
// match the codec the sender used in Writer's WithCompressor. The default
// is compress.NoOpCodec. codec must not be nil.
func WithDecompressor(codec compress.Codec) options.Option[*Reader] {
	return func(r *Reader) error {
		if codec == nil {
			return errors.New("stream: decompressor must not be nil")
		}
		r.codec = codec

		return nil
	}
}

// WithChecksumVerification controls whether Read verifies the frame's
// checksum (the default, true) or trusts the payload unconditionally.
func WithChecksumVerification(enabled bool) options.Option[*Reader] {
	return func(r *Reader) error {
		r.verifyChecksum = enabled

		return nil
	}
}

// NewReader builds a Reader, applying opts in order.
func NewReader(opts ...options.Option[*Reader]) (*Reader, error) {
	sr := &Reader{
		codec:          compress.NewNoOpCodec(),
		verifyChecksum: true,
	}
	if err := options.Apply(sr, opts...); err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	return sr, nil
}

// ReadFrame reads one Writer.Flush-produced frame from r in full (the
// frame has no trailing delimiter, so r must be bounded to exactly one
// frame - e.g. a single file, or an io.LimitReader sized from an outer
// transport's own framing), decompresses it, verifies its checksum, and
// returns the decoded bytes ready for a *yabe.Reader or document.Decoder.
func (sr *Reader) ReadFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("stream: %w: %v", ErrShortHeader, err)
	}

	engine := endian.GetLittleEndianEngine()
	wantChecksum := engine.Uint64(header[0:8])
	uncompressedLen := engine.Uint32(header[8:12])

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stream: read frame body: %w", err)
	}

	payload, err := sr.codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("stream: decompress: %w", err)
	}

	if uint32(len(payload)) != uncompressedLen {
		return nil, fmt.Errorf("stream: %w: declared %d bytes, got %d", ErrChecksumMismatch, uncompressedLen, len(payload))
	}

	if sr.verifyChecksum {
		if got := hash.Checksum(payload); got != wantChecksum {
			return nil, fmt.Errorf("stream: %w", ErrChecksumMismatch)
		}
	}

	return payload, nil
}
