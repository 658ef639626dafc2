// Package model defines the output types of the analyzer.
package model

import "jpmorph/wordid"

// TokenClass tells how a token entered the lattice.
type TokenClass string

const (
	// ClassKnown marks tokens from the system dictionary.
	ClassKnown TokenClass = "KNOWN"
	// ClassUser marks tokens from a user dictionary.
	ClassUser TokenClass = "USER"
	// ClassUnknown marks tokens synthesized for spans no dictionary covers.
	ClassUnknown TokenClass = "UNKNOWN"
)

// Token represents a token / morpheme produced by the analyzer. Start and
// End are rune offsets into the analyzed text. ID and DictFormID have no
// omitempty: 0 is a valid packed word id and -1 marks the absence of one.
type Token struct {
	Text          string     `json:"text"`
	Lemma         string     `json:"lemma,omitempty"`
	POS           []string   `json:"pos,omitempty"`
	Start         int        `json:"start"`
	End           int        `json:"end"`
	Reading       string     `json:"reading,omitempty"`
	Pronunciation string     `json:"pronunciation,omitempty"`
	Normalized    string     `json:"normalized,omitempty"`
	ID            wordid.ID  `json:"word_id"`
	DictFormID    wordid.ID  `json:"dict_form_id"`
	Class         TokenClass `json:"class,omitempty"`

	// Connection ids and the raw word cost, kept for cost recomputation.
	LeftID   int16 `json:"-"`
	RightID  int16 `json:"-"`
	WordCost int16 `json:"-"`
}

// Candidate is one alternative segmentation produced by the
// reading-constrained search, cheapest first.
type Candidate struct {
	TotalCost int     `json:"total_cost"`
	Tokens    []Token `json:"tokens"`
}
