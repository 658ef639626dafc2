package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpmorph/wordid"
)

func fixtureEntries() []WordInfo {
	return []WordInfo{
		{Surface: "a", LeftID: 1, RightID: 1, Cost: 1},
		{Surface: "b", LeftID: 1, RightID: 1, Cost: 1},
		{Surface: "ab", LeftID: 1, RightID: 1, Cost: 5},
		{Surface: "すもも", Reading: "スモモ", POS: []string{"名詞", "一般"}, LeftID: 2, RightID: 2, Cost: 10},
		{Surface: "すもも", Reading: "スモモ", POS: []string{"名詞", "固有名詞"}, LeftID: 3, RightID: 3, Cost: 20},
	}
}

func TestMemDictPrefixLookup(t *testing.T) {
	d, err := NewMemDict(fixtureEntries())
	require.NoError(t, err)

	t.Run("shorter prefixes first", func(t *testing.T) {
		got := d.PrefixLookup("ab")
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Length)
		assert.Equal(t, wordid.ID(0), got[0].Info.ID)
		assert.Equal(t, 2, got[1].Length)
		assert.Equal(t, wordid.ID(2), got[1].Info.ID)
	})

	t.Run("shared surface keeps ingestion order", func(t *testing.T) {
		got := d.PrefixLookup("すももも")
		require.Len(t, got, 2)
		assert.Equal(t, wordid.ID(3), got[0].Info.ID)
		assert.Equal(t, wordid.ID(4), got[1].Info.ID)
		assert.Equal(t, len("すもも"), got[0].Length)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, d.PrefixLookup("xyz"))
	})
}

func TestMemDictWord(t *testing.T) {
	d, err := NewMemDict(fixtureEntries())
	require.NoError(t, err)

	info, ok := d.Word(3)
	require.True(t, ok)
	assert.Equal(t, "すもも", info.Surface)
	assert.Equal(t, "スモモ", info.Reading)
	assert.Equal(t, wordid.ID(3), info.ID)

	_, ok = d.Word(len(fixtureEntries()))
	assert.False(t, ok)
	_, ok = d.Word(-1)
	assert.False(t, ok)
}

func TestMemDictFillsDisplayForms(t *testing.T) {
	d, err := NewMemDict(fixtureEntries())
	require.NoError(t, err)

	info, _ := d.Word(1)
	assert.Equal(t, "b", info.Reading)
	assert.Equal(t, "b", info.BaseForm)
	assert.Equal(t, "b", info.Normalized)
	assert.Equal(t, "b", info.Pronunciation)

	info, _ = d.Word(3)
	assert.Equal(t, "スモモ", info.Pronunciation)
	assert.Equal(t, "すもも", info.Normalized)
}

func TestMemDictRejectsEmptySurface(t *testing.T) {
	_, err := NewMemDict([]WordInfo{{Surface: "a"}, {Surface: ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestConnMatrix(t *testing.T) {
	m := NewConnMatrix(4, 4)
	m.Set(1, 2, 100)
	m.Set(3, 0, -20)

	assert.Equal(t, int16(100), m.Connection(1, 2))
	assert.Equal(t, int16(-20), m.Connection(3, 0))
	assert.Equal(t, int16(0), m.Connection(2, 1))
	assert.Equal(t, int16(0), m.Connection(9, 1))
	assert.Equal(t, int16(0), m.Connection(-1, 0))
}
