// Package lexicon provides prefix lookup over one system dictionary plus any
// number of user dictionaries, resolution of packed word ids back to entries,
// and access to the part-of-speech connection matrix the lattice search
// consumes.
package lexicon

import (
	"errors"
	"fmt"

	"jpmorph/wordid"
)

// ErrUnknownWordID reports a word id whose dictionary index or offset is not
// part of the loaded set.
var ErrUnknownWordID = errors.New("unknown word id")

// WordInfo is one dictionary entry.
type WordInfo struct {
	Surface       string
	Reading       string
	Pronunciation string
	BaseForm      string
	Normalized    string
	POS           []string
	LeftID        int16
	RightID       int16
	Cost          int16

	// ID is the packed word id of the entry. Entries synthesized for
	// unknown words carry wordid.Invalid.
	ID wordid.ID
	// DictForm is the packed id of the entry's dictionary form,
	// wordid.Invalid when the entry is its own dictionary form.
	DictForm wordid.ID
}

// Match pairs an entry with the byte length of the surface it matched.
type Match struct {
	Length int
	Info   WordInfo
}

// Dictionary is a single loaded lexicon. PrefixLookup reports Info.ID as the
// entry offset within this dictionary; Set rewrites it to the packed
// cross-dictionary id.
type Dictionary interface {
	PrefixLookup(input string) []Match
	Word(offset int) (WordInfo, bool)
	Size() int
}

// Connector supplies the transition cost between a right connection id and a
// left connection id.
type Connector interface {
	Connection(right, left int16) int16
}

// UnknownProvider synthesizes entries for input spans the dictionaries do
// not cover. anyMatches tells the provider whether the dictionary lookup at
// the same position found entries.
type UnknownProvider interface {
	ProvideUnknown(input string, anyMatches bool) []Match
}

// Set is an immutable snapshot of loaded dictionaries. Index 0 is the system
// dictionary, user dictionaries follow in registration order. A Set is safe
// for concurrent use; WithUserDict leaves the receiver untouched.
type Set struct {
	dicts []Dictionary
	conn  Connector
	unk   UnknownProvider
}

// NewSet builds a snapshot around a system dictionary. unk may be nil.
func NewSet(system Dictionary, conn Connector, unk UnknownProvider) (*Set, error) {
	if system == nil {
		return nil, errors.New("lexicon: nil system dictionary")
	}
	if conn == nil {
		return nil, errors.New("lexicon: nil connector")
	}
	if err := checkIDSpace(0, system); err != nil {
		return nil, err
	}
	return &Set{dicts: []Dictionary{system}, conn: conn, unk: unk}, nil
}

// WithUserDict returns a new snapshot with d appended. The receiver and all
// lookups in flight on it are unaffected.
func (s *Set) WithUserDict(d Dictionary) (*Set, error) {
	if d == nil {
		return nil, errors.New("lexicon: nil user dictionary")
	}
	idx := len(s.dicts)
	if err := checkIDSpace(idx, d); err != nil {
		return nil, err
	}
	dicts := make([]Dictionary, idx+1)
	copy(dicts, s.dicts)
	dicts[idx] = d
	return &Set{dicts: dicts, conn: s.conn, unk: s.unk}, nil
}

func checkIDSpace(idx int, d Dictionary) error {
	if n := d.Size(); n > wordid.Stride {
		return fmt.Errorf("lexicon: dictionary %d: %d entries exceed id space: %w",
			idx, n, wordid.ErrOutOfRange)
	}
	return nil
}

// Lookup returns every entry, across all loaded dictionaries, whose surface
// is a prefix of input. Results are ordered by dictionary index, then by the
// dictionary's own enumeration order, which keeps repeated lookups
// deterministic.
func (s *Set) Lookup(input string) []Match {
	var out []Match
	for di, d := range s.dicts {
		for _, m := range d.PrefixLookup(input) {
			// Offsets were bounds-checked when the dictionary was added.
			id, _ := wordid.Pack(di, int(m.Info.ID))
			m.Info.ID = id
			out = append(out, m)
		}
	}
	return out
}

// Resolve returns the entry a packed word id refers to.
func (s *Set) Resolve(id wordid.ID) (WordInfo, error) {
	dic, word := id.Unpack()
	if dic < 0 || dic >= len(s.dicts) {
		return WordInfo{}, fmt.Errorf("resolve %v: dictionary index %d not in loaded set of %d: %w",
			id, dic, len(s.dicts), ErrUnknownWordID)
	}
	info, ok := s.dicts[dic].Word(word)
	if !ok {
		return WordInfo{}, fmt.Errorf("resolve %v: offset %d out of range: %w",
			id, word, ErrUnknownWordID)
	}
	info.ID = id
	return info, nil
}

// Connection returns the transition cost from right to left.
func (s *Set) Connection(right, left int16) int16 {
	return s.conn.Connection(right, left)
}

// Unknown synthesizes out-of-vocabulary entries for the given span.
func (s *Set) Unknown(input string, anyMatches bool) []Match {
	if s.unk == nil {
		return nil
	}
	return s.unk.ProvideUnknown(input, anyMatches)
}

// NumDictionaries reports how many dictionaries the snapshot holds.
func (s *Set) NumDictionaries() int {
	return len(s.dicts)
}

// withFallbacks fills the display forms an entry may omit: reading,
// dictionary form, and normalized form default to the surface, and the
// pronunciation defaults to the reading.
func withFallbacks(info WordInfo) WordInfo {
	if info.Reading == "" {
		info.Reading = info.Surface
	}
	if info.BaseForm == "" {
		info.BaseForm = info.Surface
	}
	if info.Normalized == "" {
		info.Normalized = info.Surface
	}
	if info.Pronunciation == "" {
		info.Pronunciation = info.Reading
	}
	return info
}
