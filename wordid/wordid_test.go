package wordid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		dic, word int
	}{
		{0, 0},
		{0, 1},
		{0, Stride - 1},
		{1, 0},
		{1, 12},
		{3, 42},
		{15, Stride - 1},
	}
	for _, tc := range cases {
		id, err := Pack(tc.dic, tc.word)
		require.NoError(t, err)
		dic, word := id.Unpack()
		assert.Equal(t, tc.dic, dic)
		assert.Equal(t, tc.word, word)
	}
}

func TestPackRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name      string
		dic, word int
	}{
		{"offset at stride", 0, Stride},
		{"offset above stride", 2, Stride + 7},
		{"negative dictionary", -1, 0},
		{"negative offset", 0, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Pack(tc.dic, tc.word)
			require.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestPackedLayout(t *testing.T) {
	id, err := Pack(2, 34)
	require.NoError(t, err)
	assert.Equal(t, ID(200_000_034), id)
	assert.Equal(t, 2, id.Dic())
	assert.Equal(t, 34, id.Word())
}

func TestInvalidSentinel(t *testing.T) {
	assert.False(t, Invalid.IsValid())
	dic, word := Invalid.Unpack()
	assert.Equal(t, -1, dic)
	assert.Equal(t, -1, word)
	assert.Equal(t, "*", Invalid.String())

	id, err := Pack(0, 7)
	require.NoError(t, err)
	assert.True(t, id.IsValid())
	assert.Equal(t, "0:7", id.String())
}

func TestParseRef(t *testing.T) {
	star, err := ParseRef("*")
	require.NoError(t, err)
	minusOne, err := ParseRef("-1")
	require.NoError(t, err)
	assert.Equal(t, Invalid, star)
	assert.Equal(t, star, minusOne)

	bare, err := ParseRef("123")
	require.NoError(t, err)
	assert.Equal(t, ID(123), bare)
	assert.Equal(t, 0, bare.Dic())

	packed, err := ParseRef("500000012")
	require.NoError(t, err)
	dic, word := packed.Unpack()
	assert.Equal(t, 5, dic)
	assert.Equal(t, 12, word)

	_, err = ParseRef("abc")
	assert.Error(t, err)

	_, err = ParseRef("-7")
	assert.ErrorIs(t, err, ErrOutOfRange)
}
