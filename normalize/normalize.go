// Package normalize canonicalizes readings and surfaces for comparison and
// classifies the separator characters that may bridge two segments.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ForMatching maps a reading or surface string to its canonical comparison
// form: NFKC (collapses full-width/half-width variants), then Unicode
// lower-casing, then hiragana to katakana. Two readings that differ only in
// width, case, or kana script normalize to the same string.
func ForMatching(s string) string {
	folded := strings.ToLower(norm.NFKC.String(s))
	runes := []rune(folded)
	for i, r := range runes {
		runes[i] = hiraToKata(r)
	}
	return string(runes)
}

// hiraToKata shifts a hiragana code point to its katakana counterpart.
// Covers ぁ..ゖ plus the iteration marks ゝゞゟ.
func hiraToKata(r rune) rune {
	if (r >= 0x3041 && r <= 0x3096) || (r >= 0x309d && r <= 0x309f) {
		return r + 0x60
	}
	return r
}

// KataToHira is the inverse shift, for display purposes.
func KataToHira(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if (r >= 0x30a1 && r <= 0x30f6) || (r >= 0x30fd && r <= 0x30ff) {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// isEllipsisFamily reports membership in the fixed separator glyph set.
// The table is part of the compatibility contract and must not grow.
func isEllipsisFamily(r rune) bool {
	switch r {
	case '…', '⋯', '.', '．', '・':
		return true
	}
	return false
}

// IsBridgeRune reports whether r is skippable when aligning a reading
// against a target: any whitespace or a separator glyph.
func IsBridgeRune(r rune) bool {
	return unicode.IsSpace(r) || isEllipsisFamily(r)
}

// IsBridgeSeparator reports whether an entire token surface acts as a
// bridge separator: the empty string, a whitespace-only string, or a string
// made of separator glyphs only.
func IsBridgeSeparator(s string) bool {
	if s == "" {
		return true
	}
	allSpace := true
	for _, r := range s {
		if !unicode.IsSpace(r) {
			allSpace = false
			break
		}
	}
	if allSpace {
		return true
	}
	for _, r := range s {
		if !isEllipsisFamily(r) {
			return false
		}
	}
	return true
}

// StripBridge removes every bridge rune from s.
func StripBridge(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !IsBridgeRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsWhitespace reports whether s is non-empty and consists of whitespace
// runes only.
func IsWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsKanji reports whether r is in the CJK unified ideograph block.
func IsKanji(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309f) || (r >= 0x30a0 && r <= 0x30ff)
}
