package lexicon

import (
	"fmt"
	"sort"

	"github.com/smhanov/dawg"

	"jpmorph/wordid"
)

// MemDict is an in-memory dictionary with a DAWG over entry surfaces for
// prefix lookup. It backs user dictionaries and small fixture lexicons.
type MemDict struct {
	finder  dawg.Finder
	entries []WordInfo
	// bySurface maps a DAWG word index to the offsets of all entries
	// sharing that surface, in ingestion order.
	bySurface [][]int32
}

// NewMemDict indexes entries. Ingestion order is preserved: an entry's
// offset, and therefore its word id, is its position in the slice.
func NewMemDict(entries []WordInfo) (*MemDict, error) {
	surfaces := make([]string, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.Surface == "" {
			return nil, fmt.Errorf("memdict: entry %d: empty surface", i)
		}
		if _, ok := seen[e.Surface]; !ok {
			seen[e.Surface] = -1
			surfaces = append(surfaces, e.Surface)
		}
	}
	// The DAWG builder requires strictly increasing insertion order.
	sort.Strings(surfaces)
	builder := dawg.New()
	for i, s := range surfaces {
		builder.Add(s)
		seen[s] = i
	}

	d := &MemDict{
		finder:    builder.Finish(),
		entries:   make([]WordInfo, len(entries)),
		bySurface: make([][]int32, len(surfaces)),
	}
	for i, e := range entries {
		d.entries[i] = withFallbacks(e)
		si := seen[e.Surface]
		d.bySurface[si] = append(d.bySurface[si], int32(i))
	}
	return d, nil
}

// PrefixLookup returns every entry whose surface is a prefix of input,
// ordered by surface length, then by ingestion order among entries sharing a
// surface.
func (d *MemDict) PrefixLookup(input string) []Match {
	var out []Match
	for _, r := range d.finder.FindAllPrefixesOf(input) {
		for _, off := range d.bySurface[r.Index] {
			info := d.entries[off]
			info.ID = wordid.ID(off)
			out = append(out, Match{Length: len(r.Word), Info: info})
		}
	}
	return out
}

// Word returns the entry at offset.
func (d *MemDict) Word(offset int) (WordInfo, bool) {
	if offset < 0 || offset >= len(d.entries) {
		return WordInfo{}, false
	}
	info := d.entries[offset]
	info.ID = wordid.ID(offset)
	return info, true
}

// Size returns the number of entries.
func (d *MemDict) Size() int {
	return len(d.entries)
}

// ConnMatrix is a dense right-id by left-id transition cost matrix for
// MemDict-backed sets.
type ConnMatrix struct {
	rights, lefts int
	costs         []int16
}

// NewConnMatrix allocates a zero matrix covering right ids below rights and
// left ids below lefts.
func NewConnMatrix(rights, lefts int) *ConnMatrix {
	return &ConnMatrix{
		rights: rights,
		lefts:  lefts,
		costs:  make([]int16, rights*lefts),
	}
}

// Set assigns the transition cost from right to left.
func (m *ConnMatrix) Set(right, left int16, cost int16) {
	m.costs[int(right)*m.lefts+int(left)] = cost
}

// Connection returns the transition cost from right to left. Ids outside the
// matrix cost zero.
func (m *ConnMatrix) Connection(right, left int16) int16 {
	if right < 0 || int(right) >= m.rights || left < 0 || int(left) >= m.lefts {
		return 0
	}
	return m.costs[int(right)*m.lefts+int(left)]
}
