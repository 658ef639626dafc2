package lexicon

import (
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/dict"

	"jpmorph/wordid"
)

// maxUnknownRunes caps how far an unknown-word group may extend.
const maxUnknownRunes = 1024

// SystemDict adapts a compiled kagome dictionary (IPA or UniDic) to the
// Dictionary, Connector, and UnknownProvider interfaces.
//
// Morph offsets double as word ids. The dictionary stores no surface string
// per entry, so Word reports the base form feature as the surface; lookups,
// which know the matched input, report the true surface.
type SystemDict struct {
	d *dict.Dict
}

// NewSystemDict wraps a loaded kagome dictionary.
func NewSystemDict(d *dict.Dict) *SystemDict {
	return &SystemDict{d: d}
}

// PrefixLookup returns every dictionary entry matching a prefix of input.
func (s *SystemDict) PrefixLookup(input string) []Match {
	lens, outputs := s.d.Index.CommonPrefixSearch(input)
	var out []Match
	for i, l := range lens {
		for _, id := range outputs[i] {
			info, ok := s.word(id, input[:l])
			if !ok {
				continue
			}
			out = append(out, Match{Length: l, Info: info})
		}
	}
	return out
}

// Word returns the entry at offset. The surface is reconstructed from the
// base form feature.
func (s *SystemDict) Word(offset int) (WordInfo, bool) {
	return s.word(offset, "")
}

// Size returns the number of morphs in the dictionary.
func (s *SystemDict) Size() int {
	return len(s.d.Morphs)
}

// Connection returns the transition cost from right to left.
func (s *SystemDict) Connection(right, left int16) int16 {
	return s.d.Connection.At(int(right), int(left))
}

// ProvideUnknown synthesizes entries for out-of-vocabulary spans from the
// dictionary's character classes, the way the kagome tokenizer does: the
// class of the first rune selects the unknown morph templates, and classes
// marked groupable extend over the run of same-class runes.
func (s *SystemDict) ProvideUnknown(input string, anyMatches bool) []Match {
	if input == "" {
		return nil
	}
	first, size := utf8.DecodeRuneInString(input)
	class := s.d.CharacterCategory(first)
	if anyMatches && !listed(s.d.InvokeList, class) {
		return nil
	}
	end := size
	if listed(s.d.GroupList, class) {
		count := 1
		for _, r := range input[size:] {
			if count >= maxUnknownRunes || s.d.CharacterCategory(r) != class {
				break
			}
			end += utf8.RuneLen(r)
			count++
		}
	}
	id, ok := s.d.UnkDict.Index[int32(class)]
	if !ok {
		return nil
	}
	dup := s.d.UnkDict.IndexDup[int32(class)]
	var out []Match
	for x := int32(0); x <= dup; x++ {
		info, ok := s.unknownWord(int(id+x), input[:end])
		if !ok {
			continue
		}
		out = append(out, Match{Length: end, Info: info})
	}
	return out
}

func (s *SystemDict) word(id int, surface string) (WordInfo, bool) {
	if id < 0 || id >= len(s.d.Morphs) {
		return WordInfo{}, false
	}
	m := s.d.Morphs[id]
	var features []string
	if id < len(s.d.Contents) {
		features = s.d.Contents[id]
	}
	info := WordInfo{
		Surface:       surface,
		Reading:       featureAt(s.d.ContentsMeta, features, dict.ReadingIndex),
		Pronunciation: featureAt(s.d.ContentsMeta, features, dict.PronunciationIndex),
		BaseForm:      featureAt(s.d.ContentsMeta, features, dict.BaseFormIndex),
		POS:           posFeatures(s.d.ContentsMeta, features),
		LeftID:        m.LeftID,
		RightID:       m.RightID,
		Cost:          m.Weight,
		ID:            wordid.ID(id),
		DictForm:      wordid.Invalid,
	}
	if info.Surface == "" {
		info.Surface = info.BaseForm
	}
	return withFallbacks(info), true
}

func (s *SystemDict) unknownWord(id int, surface string) (WordInfo, bool) {
	u := s.d.UnkDict
	if id < 0 || id >= len(u.Morphs) {
		return WordInfo{}, false
	}
	m := u.Morphs[id]
	var features []string
	if id < len(u.Contents) {
		features = u.Contents[id]
	}
	info := WordInfo{
		Surface:  surface,
		Reading:  featureAt(u.ContentsMeta, features, dict.ReadingIndex),
		BaseForm: featureAt(u.ContentsMeta, features, dict.BaseFormIndex),
		POS:      posFeatures(u.ContentsMeta, features),
		LeftID:   m.LeftID,
		RightID:  m.RightID,
		Cost:     m.Weight,
		ID:       wordid.Invalid,
		DictForm: wordid.Invalid,
	}
	return withFallbacks(info), true
}

// featureAt reads one feature by its meta key. Missing keys, out-of-range
// indexes, and the "*" placeholder all read as absent.
func featureAt(meta dict.ContentsMeta, features []string, key string) string {
	i, ok := meta[key]
	if !ok || int(i) < 0 || int(i) >= len(features) {
		return ""
	}
	if v := features[i]; v != "*" {
		return v
	}
	return ""
}

// posFeatures slices the part-of-speech hierarchy out of the feature row.
func posFeatures(meta dict.ContentsMeta, features []string) []string {
	start, depth := 0, 1
	if v, ok := meta[dict.POSStartIndex]; ok {
		start = int(v)
	}
	if v, ok := meta[dict.POSHierarchy]; ok {
		depth = int(v)
	}
	if start < 0 || depth <= 0 || start+depth > len(features) {
		return nil
	}
	pos := make([]string, depth)
	copy(pos, features[start:start+depth])
	return pos
}

func listed(list []bool, class byte) bool {
	return int(class) < len(list) && list[class]
}
