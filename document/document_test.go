package document_test

import (
	"testing"

	"github.com/chmike/yabe"
	"github.com/chmike/yabe/document"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v document.Value) document.Value {
	t.Helper()

	enc, err := document.NewEncoder()
	require.NoError(t, err)

	buf := make([]byte, 4096)
	w := yabe.NewWriter(buf)
	require.NoError(t, enc.Encode(w, v))

	used := w.Cursor().Position()
	r := yabe.NewReader(buf[:used])
	dec := document.NewDecoder()

	got, err := dec.Decode(r)
	require.NoError(t, err)
	require.True(t, r.EndOfBuffer())

	return got
}

func TestRoundTripScalars(t *testing.T) {
	cases := []document.Value{
		nil,
		true,
		false,
		int64(0),
		int64(-32),
		int64(127),
		int64(70000),
		float64(4.5),
		float64(65537.0),
		"",
		"hello, world",
	}

	for _, v := range cases {
		got := roundTrip(t, v)
		require.Equal(t, v, got)
	}
}

func TestRoundTripSmallArray(t *testing.T) {
	v := document.Array{int64(1), "two", true, nil}
	got := roundTrip(t, v)
	require.Equal(t, v, got)
}

func TestRoundTripStreamedArray(t *testing.T) {
	v := make(document.Array, 0, 20)
	for i := 0; i < 20; i++ {
		v = append(v, int64(i))
	}

	got := roundTrip(t, v)
	require.Equal(t, v, got)
}

func TestRoundTripSmallObject(t *testing.T) {
	v := document.Object{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: "two"},
	}

	got := roundTrip(t, v)
	require.Equal(t, v, got)
}

func TestRoundTripStreamedObject(t *testing.T) {
	v := make(document.Object, 0, 10)
	for i := 0; i < 10; i++ {
		v = append(v, document.Entry{Key: string(rune('a' + i)), Value: int64(i)})
	}

	got := roundTrip(t, v)
	require.Equal(t, v, got)
}

func TestRoundTripBlob(t *testing.T) {
	v := document.Blob{MIME: "application/octet-stream", Data: []byte{0x01, 0x02, 0x03}}
	got := roundTrip(t, v)
	require.Equal(t, v, got)
}

func TestRoundTripNestedDocument(t *testing.T) {
	v := document.Object{
		{Key: "name", Value: "sensor-1"},
		{Key: "readings", Value: document.Array{
			float64(1.5), float64(2.5), float64(3.5),
		}},
		{Key: "blob", Value: document.Blob{MIME: "text/plain", Data: []byte("hi")}},
		{Key: "nested", Value: document.Object{
			{Key: "ok", Value: true},
		}},
	}

	got := roundTrip(t, v)
	require.Equal(t, v, got)
}

func TestEncoderWithMaxInlineContainerForcesStreaming(t *testing.T) {
	enc, err := document.NewEncoder(document.WithMaxInlineContainer(0))
	require.NoError(t, err)

	buf := make([]byte, 256)
	w := yabe.NewWriter(buf)
	v := document.Array{int64(1)}
	require.NoError(t, enc.Encode(w, v))

	// A streamed array of one element is: arrays-tag, value, ends-tag.
	require.Equal(t, []byte{0xD7, 0x01, 0xCB}, buf[:3])
}

func TestEncoderWithMaxInlineContainerRejectsOutOfRangeCount(t *testing.T) {
	_, err := document.NewEncoder(document.WithMaxInlineContainer(yabe.MaxSmallContainer + 1))
	require.Error(t, err)

	_, err = document.NewEncoder(document.WithMaxInlineContainer(-1))
	require.Error(t, err)
}

func TestDecodeUnexpectedTagIsReported(t *testing.T) {
	buf := []byte{0xCC} // none: a valid tag, but not a decodable top-level value
	r := yabe.NewReader(buf)
	dec := document.NewDecoder()

	_, err := dec.Decode(r)
	require.ErrorIs(t, err, document.ErrUnexpectedTag)
}

func TestDecodeMalformedBlobIsReported(t *testing.T) {
	buf := make([]byte, 64)
	w := yabe.NewWriter(buf)
	require.Greater(t, w.WriteBlob(), 0)
	require.Greater(t, w.WriteInteger(1), 0) // not a string: violates the wire contract

	used := w.Cursor().Position()
	r := yabe.NewReader(buf[:used])
	dec := document.NewDecoder()

	_, err := dec.Decode(r)
	require.ErrorIs(t, err, document.ErrMalformedBlob)
}

func TestDecodeTruncatedBufferIsReported(t *testing.T) {
	buf := make([]byte, 64)
	w := yabe.NewWriter(buf)
	require.Greater(t, w.WriteString(10), 0)
	// Deliberately omit the payload bytes.

	used := w.Cursor().Position()
	r := yabe.NewReader(buf[:used])
	dec := document.NewDecoder()

	_, err := dec.Decode(r)
	require.ErrorIs(t, err, document.ErrTruncated)
}

func TestObjectGet(t *testing.T) {
	o := document.Object{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: int64(2)},
	}

	v, ok := o.Get("b")
	require.True(t, ok)
	require.Equal(t, int64(2), v)

	_, ok = o.Get("missing")
	require.False(t, ok)
}
