// Package wordid implements the cross-lexicon word identifier codec.
// A packed id combines the index of a loaded dictionary with the entry's
// offset inside that dictionary, so tokens can reference entries in any
// dictionary of the active set (system or user) with a single integer.
package wordid

import (
	"errors"
	"fmt"
	"strconv"
)

// Stride separates the dictionary index from the in-dictionary offset in a
// packed id: packed = dic*Stride + word. Offsets must stay strictly below
// Stride or packing becomes ambiguous.
const Stride = 100_000_000

// ID is a packed cross-lexicon word identifier.
type ID int64

// Invalid is the "no reference" sentinel. A dictionary-form link carrying it
// resolves against the token's own entry instead of a cross-reference.
const Invalid ID = -1

// ErrOutOfRange reports a pack or parse outside the representable range.
var ErrOutOfRange = errors.New("word id out of range")

// Pack combines a dictionary index and an in-dictionary offset into one id.
// Both inputs must be non-negative and the offset must be below Stride.
func Pack(dic, word int) (ID, error) {
	if dic < 0 || word < 0 {
		return Invalid, fmt.Errorf("pack (%d, %d): negative input: %w", dic, word, ErrOutOfRange)
	}
	if word >= Stride {
		return Invalid, fmt.Errorf("pack (%d, %d): offset not below %d: %w", dic, word, Stride, ErrOutOfRange)
	}
	return ID(int64(dic)*Stride + int64(word)), nil
}

// Unpack splits a packed id back into its dictionary index and offset.
// It is the exact inverse of Pack for every id Pack can produce.
// Invalid (and any negative id) unpacks to (-1, -1).
func (id ID) Unpack() (dic, word int) {
	if id < 0 {
		return -1, -1
	}
	return int(id / Stride), int(id % Stride)
}

// Dic returns the dictionary index part, or -1 for Invalid.
func (id ID) Dic() int {
	dic, _ := id.Unpack()
	return dic
}

// Word returns the in-dictionary offset part, or -1 for Invalid.
func (id ID) Word() int {
	_, word := id.Unpack()
	return word
}

// IsValid reports whether id references an actual dictionary entry.
func (id ID) IsValid() bool { return id >= 0 }

func (id ID) String() string {
	if !id.IsValid() {
		return "*"
	}
	dic, word := id.Unpack()
	return fmt.Sprintf("%d:%d", dic, word)
}

// ParseRef reads a dictionary-form reference from user dictionary input.
// The spellings "*" and "-1" both mean "no reference" and map to Invalid.
// Anything else must be a non-negative decimal: either a bare offset into
// the system dictionary or a packed cross-lexicon id.
func ParseRef(s string) (ID, error) {
	if s == "*" || s == "-1" {
		return Invalid, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Invalid, fmt.Errorf("word id reference %q: %w", s, err)
	}
	if n < 0 {
		return Invalid, fmt.Errorf("word id reference %q: %w", s, ErrOutOfRange)
	}
	return ID(n), nil
}
