package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForMatching(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hiragana to katakana", "すもも", "スモモ"},
		{"katakana unchanged", "スモモ", "スモモ"},
		{"halfwidth katakana widened", "ｽﾓﾓ", "スモモ"},
		{"fullwidth ascii folded", "ＡＢＣ", "abc"},
		{"ascii lowered", "Tokyo", "tokyo"},
		{"small kana shifted", "きょう", "キョウ"},
		{"iteration mark shifted", "こゝろ", "コヽロ"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForMatching(tt.in))
		})
	}
}

func TestForMatchingCollapsesVariants(t *testing.T) {
	// Width, case, and kana script variants of one reading all agree.
	variants := []string{"トウキョウ", "とうきょう", "ﾄｳｷｮｳ"}
	want := ForMatching(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, want, ForMatching(v), "variant %q", v)
	}
}

func TestKataToHira(t *testing.T) {
	assert.Equal(t, "すもも", KataToHira("スモモ"))
	assert.Equal(t, "こゝろ", KataToHira(ForMatching("こゝろ")))
	assert.Equal(t, "tokyo", KataToHira("tokyo"))
}

func TestIsBridgeSeparator(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", true},
		{"single space", " ", true},
		{"tabs and newlines", " \t\n", true},
		{"ideographic space", "　", true},
		{"horizontal ellipsis", "…", true},
		{"midline ellipsis", "⋯", true},
		{"ascii dots", "...", true},
		{"fullwidth dot", "．", true},
		{"middle dots", "・・", true},
		{"mixed glyphs", "…・.", true},
		{"space plus dot", " .", false},
		{"word", "もも", false},
		{"dot plus word", ".a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBridgeSeparator(tt.in))
		})
	}
}

func TestStripBridge(t *testing.T) {
	assert.Equal(t, "スモモ", StripBridge("ス モ・モ"))
	assert.Equal(t, "", StripBridge(" …　."))
	assert.Equal(t, "abc", StripBridge("abc"))
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(" "))
	assert.True(t, IsWhitespace("\t　"))
	assert.False(t, IsWhitespace(""))
	assert.False(t, IsWhitespace(" a "))
	assert.False(t, IsWhitespace("…"))
}

func TestScriptClasses(t *testing.T) {
	assert.True(t, IsKanji('東'))
	assert.False(t, IsKanji('あ'))
	assert.True(t, IsKana('あ'))
	assert.True(t, IsKana('ア'))
	assert.False(t, IsKana('a'))
}
