package yabe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteNullScenario(t *testing.T) {
	buf := make([]byte, 1)
	w := NewWriter(buf)
	require.Equal(t, 1, w.WriteNull())
	require.Equal(t, []byte{0xC0}, buf)

	r := NewReader(buf)
	require.Equal(t, 1, r.ReadNull())
}

func TestWriteIntegerWidthSelection(t *testing.T) {
	tests := []struct {
		v        int64
		wantLen  int
		wantByte byte
	}{
		{42, 1, 42},
		{100, 1, 100},
		{127, 1, 127},
		{-32, 1, 0xE0},
		{128, 3, 0xC1},
		{-33, 3, 0xC1},
		{0x7FFF, 3, 0xC1},
		{0x7FFFFFFF, 5, 0xC2},
		{0x80000000, 9, 0xC3},
		{1 << 32, 9, 0xC3},
	}

	for _, tt := range tests {
		buf := make([]byte, 16)
		w := NewWriter(buf)
		n := w.WriteInteger(tt.v)
		require.Equal(t, tt.wantLen, n, "value %d", tt.v)
		require.Equal(t, tt.wantByte, buf[0], "value %d", tt.v)
	}
}

func TestWriteIntegerLiteralBytes(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	n := w.WriteInteger(100)
	require.Equal(t, 1, n)
	require.Equal(t, byte(0x64), buf[0])

	buf = make([]byte, 16)
	w = NewWriter(buf)
	n = w.WriteInteger(0x7FFF)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0xC1, 0xFF, 0x7F}, buf[:3])

	buf = make([]byte, 16)
	w = NewWriter(buf)
	n = w.WriteInteger(1 << 32)
	require.Equal(t, 9, n)
	require.Equal(t, []byte{0xC3, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}, buf[:9])
}

func TestWriteFloatWidthSelection(t *testing.T) {
	tests := []struct {
		v       float64
		wantLen int
	}{
		{0.0, 1},
		{math.Copysign(0, -1), 1},
		{4.5, 3},
		{0.128, 9},
		{65537.0, 5},
	}

	for _, tt := range tests {
		buf := make([]byte, 16)
		w := NewWriter(buf)
		n := w.WriteFloat(tt.v)
		require.Equal(t, tt.wantLen, n, "value %v", tt.v)
	}
}

func TestWriteFloatLiteralBytes(t *testing.T) {
	// Half-precision of 4.5 is 0x4480 (sign 0, biased exponent 17, mantissa
	// 0x080); little-endian payload bytes are therefore 0x80, 0x44.
	buf := make([]byte, 16)
	w := NewWriter(buf)
	n := w.WriteFloat(4.5)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0xC5, 0x80, 0x44}, buf[:3])

	// 65537.0 = 2^16 + 1 needs mantissa bit 7 set to distinguish it from
	// 65536.0, giving single-precision bits 0x47800080, little-endian
	// payload bytes 0x80, 0x00, 0x80, 0x47. (0x47800000 alone would decode
	// back to 65536.0, breaking the round-trip invariant in SPEC_FULL.md §8.)
	buf = make([]byte, 16)
	w = NewWriter(buf)
	n = w.WriteFloat(65537.0)
	require.Equal(t, 5, n)
	require.Equal(t, []byte{0xC6, 0x80, 0x00, 0x80, 0x47}, buf[:5])
}

func TestWriteFloatInfAndNaN(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	n := w.WriteFloat(math.Inf(1))
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0xC5, 0x00, 0x7C}, buf[:3])

	buf = make([]byte, 16)
	w = NewWriter(buf)
	n = w.WriteFloat(math.Inf(-1))
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0xC5, 0x00, 0xFC}, buf[:3])

	buf = make([]byte, 16)
	w = NewWriter(buf)
	n = w.WriteFloat(math.NaN())
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0xC5, 0x00, 0x7D}, buf[:3])
}

func TestWriteStringScenario(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	n := w.WriteString(12)
	require.Equal(t, 1, n)
	require.Equal(t, byte(0x8C), buf[0])

	data := []byte("short string\x00")
	m := w.WriteData(data)
	require.Equal(t, 13, m)
}

func TestWriteStringWidthSelection(t *testing.T) {
	tests := []struct {
		length   int
		wantLen  int
		wantByte byte
	}{
		{0, 1, 0x80},
		{63, 1, 0xBF},
		{64, 3, 0xCD},
		{65535, 3, 0xCD},
		{65536, 5, 0xCE},
		{70000, 5, 0xCE},
	}

	for _, tt := range tests {
		buf := make([]byte, 16)
		w := NewWriter(buf)
		n := w.WriteString(tt.length)
		require.Equal(t, tt.wantLen, n, "length %d", tt.length)
		require.Equal(t, tt.wantByte, buf[0], "length %d", tt.length)
	}
}

func TestWriteStringDistinctTagsForWideLengths(t *testing.T) {
	// Open Question 1: the original source reused str16_tag for the 32- and
	// 64-bit length variants. This implementation uses distinct tags.
	buf := make([]byte, 16)
	w := NewWriter(buf)
	w.WriteString(1 << 20)
	require.Equal(t, byte(0xCE), buf[0])

	buf = make([]byte, 16)
	w = NewWriter(buf)
	w.WriteString(1 << 40)
	require.Equal(t, byte(0xCF), buf[0])
}

func TestWriteSignatureScenario(t *testing.T) {
	buf := make([]byte, 5)
	w := NewWriter(buf)
	n := w.WriteSignature()
	require.Equal(t, 5, n)
	require.Equal(t, []byte{0x59, 0x41, 0x42, 0x45, 0x00}, buf)
}

func TestAtomicFailureLeavesCursorUnchanged(t *testing.T) {
	buf := make([]byte, 2)
	w := NewWriter(buf)

	n := w.WriteInteger(1 << 32) // needs 9 bytes
	require.Equal(t, 0, n)
	require.Equal(t, 0, w.Cursor().Position())
	require.Equal(t, 2, w.Cursor().Remaining())
}

func TestWriteSmallArrayAndObjectBounds(t *testing.T) {
	buf := make([]byte, 1)
	w := NewWriter(buf)
	require.Equal(t, 0, w.WriteSmallArray(7))
	require.Equal(t, 0, w.WriteSmallObject(-1))
	require.Equal(t, 1, w.WriteSmallArray(6))
}

func TestPadRemaining(t *testing.T) {
	buf := make([]byte, 5)
	w := NewWriter(buf)
	w.WriteNull()
	n := w.PadRemaining()
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0xC0, 0xCC, 0xCC, 0xCC, 0xCC}, buf)
}
