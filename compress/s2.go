package compress

import "github.com/klauspost/compress/s2"

// S2Codec compresses frames with S2, favoring speed over ratio - a
// reasonable default for a live stream.Writer flushing small frames often.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec returns an S2 codec.
func NewS2Codec() S2Codec { return S2Codec{} }

func (S2Codec) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte) ([]byte, error) {
	return s2.Decode(nil, data)
}
