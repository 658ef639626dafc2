package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpmorph/wordid"
)

func TestTokenJSONKeepsIDs(t *testing.T) {
	tok := Token{
		Text:       "の",
		Start:      3,
		End:        4,
		ID:         0,
		DictFormID: wordid.Invalid,
		Class:      ClassKnown,
		LeftID:     10,
		RightID:    11,
		WordCost:   120,
	}
	raw, err := json.Marshal(tok)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	// Zero and invalid ids must survive serialization.
	assert.Equal(t, float64(0), m["word_id"])
	assert.Equal(t, float64(-1), m["dict_form_id"])
	// Connection ids are internal only.
	assert.NotContains(t, m, "LeftID")
	assert.NotContains(t, m, "left_id")
	assert.NotContains(t, m, "lemma")
}
