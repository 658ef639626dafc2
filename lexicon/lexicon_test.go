package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpmorph/wordid"
)

func fixtureSet(t *testing.T) *Set {
	t.Helper()
	sys, err := NewMemDict(fixtureEntries())
	require.NoError(t, err)
	set, err := NewSet(sys, NewConnMatrix(8, 8), nil)
	require.NoError(t, err)
	return set
}

func TestSetLookupPacksIDs(t *testing.T) {
	set := fixtureSet(t)
	user, err := LoadUserDict(strings.NewReader("ab,1,1,2,名詞,*,*,*,エービー,*,*\n"))
	require.NoError(t, err)
	set2, err := set.WithUserDict(user)
	require.NoError(t, err)

	got := set2.Lookup("ab")
	require.Len(t, got, 3)
	// System entries first, user dictionary entries after.
	assert.Equal(t, wordid.ID(0), got[0].Info.ID)
	assert.Equal(t, wordid.ID(2), got[1].Info.ID)
	userID, err := wordid.Pack(1, 0)
	require.NoError(t, err)
	assert.Equal(t, userID, got[2].Info.ID)
	assert.Equal(t, "エービー", got[2].Info.Reading)
}

func TestSetResolve(t *testing.T) {
	set := fixtureSet(t)
	user, err := LoadUserDict(strings.NewReader("ab,1,1,2,名詞,*,*,*,エービー,*,*\n"))
	require.NoError(t, err)
	set2, err := set.WithUserDict(user)
	require.NoError(t, err)

	t.Run("system entry", func(t *testing.T) {
		info, err := set2.Resolve(wordid.ID(3))
		require.NoError(t, err)
		assert.Equal(t, "すもも", info.Surface)
		assert.Equal(t, wordid.ID(3), info.ID)
	})

	t.Run("user entry", func(t *testing.T) {
		id, err := wordid.Pack(1, 0)
		require.NoError(t, err)
		info, err := set2.Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, "ab", info.Surface)
		assert.Equal(t, id, info.ID)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := set2.Resolve(wordid.Invalid)
		assert.ErrorIs(t, err, ErrUnknownWordID)
	})

	t.Run("dictionary index out of range", func(t *testing.T) {
		id, err := wordid.Pack(5, 0)
		require.NoError(t, err)
		_, err = set2.Resolve(id)
		assert.ErrorIs(t, err, ErrUnknownWordID)
	})

	t.Run("offset out of range", func(t *testing.T) {
		_, err := set2.Resolve(wordid.ID(999))
		assert.ErrorIs(t, err, ErrUnknownWordID)
	})
}

func TestSetSnapshotIsolation(t *testing.T) {
	set := fixtureSet(t)
	before := len(set.Lookup("ab"))

	user, err := LoadUserDict(strings.NewReader("ab,1,1,2,名詞,*,*,*,エービー,*,*\n"))
	require.NoError(t, err)
	set2, err := set.WithUserDict(user)
	require.NoError(t, err)

	assert.Equal(t, before, len(set.Lookup("ab")))
	assert.Equal(t, before+1, len(set2.Lookup("ab")))
	assert.Equal(t, 1, set.NumDictionaries())
	assert.Equal(t, 2, set2.NumDictionaries())
}

func TestSetWithoutUnknownProvider(t *testing.T) {
	set := fixtureSet(t)
	assert.Nil(t, set.Unknown("漢", false))
}

func TestNewSetValidates(t *testing.T) {
	_, err := NewSet(nil, NewConnMatrix(1, 1), nil)
	assert.Error(t, err)

	sys, err := NewMemDict(fixtureEntries())
	require.NoError(t, err)
	_, err = NewSet(sys, nil, nil)
	assert.Error(t, err)
}
