package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpmorph/wordid"
)

const userDictCSV = `# custom nouns
自然言語,1285,1285,5000,名詞,一般,*,*,シゼンゲンゴ,*,*
すもも酒,1285,1285,4500,名詞,一般,*,*,スモモシュ,すもも酒,3
`

func TestLoadUserDict(t *testing.T) {
	d, err := LoadUserDict(strings.NewReader(userDictCSV))
	require.NoError(t, err)
	require.Equal(t, 2, d.Size())

	info, ok := d.Word(0)
	require.True(t, ok)
	assert.Equal(t, "自然言語", info.Surface)
	assert.Equal(t, "シゼンゲンゴ", info.Reading)
	assert.Equal(t, "自然言語", info.Normalized)
	assert.Equal(t, []string{"名詞", "一般", "*", "*"}, info.POS)
	assert.Equal(t, int16(1285), info.LeftID)
	assert.Equal(t, int16(5000), info.Cost)
	assert.Equal(t, wordid.Invalid, info.DictForm)

	info, ok = d.Word(1)
	require.True(t, ok)
	assert.Equal(t, wordid.ID(3), info.DictForm)
	assert.Equal(t, "すもも酒", info.Normalized)
}

func TestLoadUserDictErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want error
	}{
		{"too few fields", "x,1,1,1\n", ErrUserDictFormat},
		{"empty surface", ",1,1,1,名詞,*,*,*,*,*,*\n", ErrUserDictFormat},
		{"bad left id", "x,one,1,1,名詞,*,*,*,*,*,*\n", ErrUserDictFormat},
		{"left id overflows", "x,40000,1,1,名詞,*,*,*,*,*,*\n", ErrUserDictFormat},
		{"negative right id", "x,1,-1,1,名詞,*,*,*,*,*,*\n", ErrUserDictFormat},
		{"bad cost", "x,1,1,cheap,名詞,*,*,*,*,*,*\n", ErrUserDictFormat},
		{"negative dict form ref", "x,1,1,1,名詞,*,*,*,*,*,-7\n", wordid.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadUserDict(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "record 1")
		})
	}
}

func TestLoadUserDictReportsRecordNumber(t *testing.T) {
	csv := "ok,1,1,1,名詞,*,*,*,*,*,*\nbroken,x,1,1,名詞,*,*,*,*,*,*\n"
	_, err := LoadUserDict(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2")
}

func TestLoadUserDictFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.csv")
	require.NoError(t, os.WriteFile(path, []byte(userDictCSV), 0o644))

	d, err := LoadUserDictFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Size())

	_, err = LoadUserDictFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
