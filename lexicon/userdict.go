package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"jpmorph/wordid"
)

// User dictionaries are CSV, one entry per record:
//
//	surface,leftID,rightID,cost,pos1,pos2,pos3,pos4,reading,normalized,dictFormRef
//
// "*" marks an absent reading or normalized form. dictFormRef is "*" for
// entries that are their own dictionary form, a bare offset into the system
// dictionary, or a packed cross-dictionary id. Lines starting with '#' are
// comments.
const userDictColumns = 11

// ErrUserDictFormat reports a malformed user dictionary record.
var ErrUserDictFormat = errors.New("invalid user dictionary record")

// LoadUserDict reads a CSV user dictionary into a MemDict. Entry offsets
// follow record order.
func LoadUserDict(r io.Reader) (*MemDict, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var entries []WordInfo
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("user dictionary: %w", err)
		}
		row++
		e, err := parseUserDictRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("user dictionary record %d: %w", row, err)
		}
		entries = append(entries, e)
	}
	return NewMemDict(entries)
}

// LoadUserDictFile reads a CSV user dictionary from path.
func LoadUserDictFile(path string) (*MemDict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := LoadUserDict(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func parseUserDictRecord(rec []string) (WordInfo, error) {
	if len(rec) != userDictColumns {
		return WordInfo{}, fmt.Errorf("%d fields, want %d: %w",
			len(rec), userDictColumns, ErrUserDictFormat)
	}
	if rec[0] == "" {
		return WordInfo{}, fmt.Errorf("empty surface: %w", ErrUserDictFormat)
	}
	left, err := parseConnID("left id", rec[1])
	if err != nil {
		return WordInfo{}, err
	}
	right, err := parseConnID("right id", rec[2])
	if err != nil {
		return WordInfo{}, err
	}
	cost, err := parseIDField("cost", rec[3])
	if err != nil {
		return WordInfo{}, err
	}
	dictForm, err := wordid.ParseRef(rec[10])
	if err != nil {
		return WordInfo{}, fmt.Errorf("dictionary form ref %q: %w", rec[10], err)
	}
	return WordInfo{
		Surface:    rec[0],
		Reading:    starToEmpty(rec[8]),
		Normalized: starToEmpty(rec[9]),
		POS:        []string{rec[4], rec[5], rec[6], rec[7]},
		LeftID:     left,
		RightID:    right,
		Cost:       cost,
		DictForm:   dictForm,
	}, nil
}

func parseIDField(name, v string) (int16, error) {
	n, err := strconv.ParseInt(v, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, v, ErrUserDictFormat)
	}
	return int16(n), nil
}

// parseConnID parses a connection matrix id. Unlike costs, connection ids
// are indices and must not be negative.
func parseConnID(name, v string) (int16, error) {
	n, err := parseIDField(name, v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%s %q is negative: %w", name, v, ErrUserDictFormat)
	}
	return n, nil
}

func starToEmpty(s string) string {
	if s == "*" {
		return ""
	}
	return s
}
