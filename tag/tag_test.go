package tag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPackedInt(t *testing.T) {
	require.True(t, IsPackedInt(0x00))
	require.True(t, IsPackedInt(0x7F))
	require.True(t, IsPackedInt(Tag(int8(-32))))
	require.True(t, IsPackedInt(Tag(int8(-1))))
	require.False(t, IsPackedInt(Null))
	require.False(t, IsPackedInt(Str6Base))
}

func TestStr6(t *testing.T) {
	for n := 0; n <= 63; n++ {
		tg := Str6Base | Tag(n)
		require.True(t, IsStr6(tg))
		require.Equal(t, n, Str6Len(tg))
	}
	require.False(t, IsStr6(Null))
}

func TestSmallArray(t *testing.T) {
	for n := 0; n <= MaxSmallContainer; n++ {
		tg := SArrayBase + Tag(n)
		require.True(t, IsSmallArray(tg))
		require.Equal(t, n, SmallArrayLen(tg))
	}
	require.False(t, IsSmallArray(ArrayStream))
}

func TestSmallObject(t *testing.T) {
	for n := 0; n <= MaxSmallContainer; n++ {
		tg := SObjectBase + Tag(n)
		require.True(t, IsSmallObject(tg))
		require.Equal(t, n, SmallObjectLen(tg))
	}
	require.False(t, IsSmallObject(ObjectStream))
}

func TestOf(t *testing.T) {
	tests := []struct {
		tag  Tag
		kind Kind
	}{
		{0x00, KindInt},
		{0x7F, KindInt},
		{Tag(int8(-1)), KindInt},
		{Null, KindNull},
		{Int16, KindInt},
		{Flt0, KindFloat},
		{Flt64, KindFloat},
		{False, KindBool},
		{True, KindBool},
		{Blob, KindBlob},
		{Ends, KindEndStream},
		{None, KindNone},
		{Str16, KindString},
		{Str6Base | 5, KindString},
		{SArrayBase + 3, KindArray},
		{ArrayStream, KindArray},
		{SObjectBase + 3, KindObject},
		{ObjectStream, KindObject},
	}
	for _, tt := range tests {
		require.Equal(t, tt.kind, Of(tt.tag), "tag 0x%02X", tt.tag)
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "null", KindNull.String())
	require.Equal(t, "invalid", Kind(255).String())
}
