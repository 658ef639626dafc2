// Package jpmorph segments Japanese text into dictionary words by building
// a word lattice over a set of dictionaries and extracting its cheapest
// path. Beyond plain tokenization it can enumerate alternative
// segmentations constrained by a reading and resolve word ids across the
// system and user dictionaries of an analyzer.
package jpmorph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"golang.org/x/sync/errgroup"

	"jpmorph/lattice"
	"jpmorph/lexicon"
	"jpmorph/model"
	"jpmorph/normalize"
	"jpmorph/wordid"
)

// Token is one analyzed word of the input.
type Token = model.Token

// Candidate is one reading-constrained segmentation of the input.
type Candidate = model.Candidate

// CandidateConfig bounds reading candidate enumeration.
type CandidateConfig = lattice.CandidateConfig

// Token classes, reported in Token.Class.
const (
	ClassKnown   = model.ClassKnown
	ClassUser    = model.ClassUser
	ClassUnknown = model.ClassUnknown
)

// DefaultCandidateConfig returns the standard candidate enumeration bounds.
func DefaultCandidateConfig() CandidateConfig {
	return lattice.DefaultCandidateConfig()
}

// Analyzer tokenizes text over an immutable dictionary snapshot. It is safe
// for concurrent use.
type Analyzer struct {
	set *lexicon.Set
	cfg lattice.Config
}

type config struct {
	system    *dict.Dict
	uni       bool
	shrink    bool
	systemSet bool
	users     []lexicon.Dictionary
	bridge    bool
}

// Option configures an Analyzer under construction.
type Option func(*config) error

// WithUniDict selects the bundled UniDic dictionary instead of the default
// IPA dictionary.
func WithUniDict() Option {
	return func(c *config) error {
		c.uni = true
		c.systemSet = true
		return nil
	}
}

// WithShrinkDict loads the bundled dictionary without content features.
// Tokenization costs are unaffected; readings, lemmas and part-of-speech
// details come back empty.
func WithShrinkDict() Option {
	return func(c *config) error {
		c.shrink = true
		c.systemSet = true
		return nil
	}
}

// WithSystemDict replaces the bundled dictionary with d.
func WithSystemDict(d *dict.Dict) Option {
	return func(c *config) error {
		if d == nil {
			return errors.New("jpmorph: nil system dictionary")
		}
		c.system = d
		c.systemSet = true
		return nil
	}
}

// WithUserDict layers d over the system dictionary. Options apply in order,
// and each user dictionary gets the next dictionary index.
func WithUserDict(d lexicon.Dictionary) Option {
	return func(c *config) error {
		if d == nil {
			return errors.New("jpmorph: nil user dictionary")
		}
		c.users = append(c.users, d)
		return nil
	}
}

// WithUserDictFile loads the CSV user dictionary at path and layers it over
// the system dictionary.
func WithUserDictFile(path string) Option {
	return func(c *config) error {
		d, err := lexicon.LoadUserDictFile(path)
		if err != nil {
			return fmt.Errorf("jpmorph: %w", err)
		}
		c.users = append(c.users, d)
		return nil
	}
}

// WithUserDictReader loads a CSV user dictionary from r and layers it over
// the system dictionary.
func WithUserDictReader(r io.Reader) Option {
	return func(c *config) error {
		d, err := lexicon.LoadUserDict(r)
		if err != nil {
			return fmt.Errorf("jpmorph: %w", err)
		}
		c.users = append(c.users, d)
		return nil
	}
}

// WithWhitespaceBridge enables or disables whitespace-bridged connection
// costs during lattice construction.
func WithWhitespaceBridge(enabled bool) Option {
	return func(c *config) error {
		c.bridge = enabled
		return nil
	}
}

// New builds an Analyzer over one of the bundled kagome dictionaries, IPA
// by default.
func New(opts ...Option) (*Analyzer, error) {
	var c config
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}
	sys := c.system
	if sys == nil {
		switch {
		case c.uni && c.shrink:
			sys = uni.DictShrink()
		case c.uni:
			sys = uni.Dict()
		case c.shrink:
			sys = ipa.DictShrink()
		default:
			sys = ipa.Dict()
		}
	}
	sd := lexicon.NewSystemDict(sys)
	set, err := lexicon.NewSet(sd, sd, sd)
	if err != nil {
		return nil, fmt.Errorf("jpmorph: %w", err)
	}
	return newAnalyzer(set, &c)
}

// NewFromSet builds an Analyzer over an existing dictionary snapshot.
// System dictionary options are rejected; user dictionary options layer
// onto the snapshot.
func NewFromSet(set *lexicon.Set, opts ...Option) (*Analyzer, error) {
	if set == nil {
		return nil, errors.New("jpmorph: nil lexicon set")
	}
	var c config
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}
	if c.systemSet {
		return nil, errors.New("jpmorph: system dictionary options do not apply to an existing set")
	}
	return newAnalyzer(set, &c)
}

func newAnalyzer(set *lexicon.Set, c *config) (*Analyzer, error) {
	var err error
	for _, ud := range c.users {
		set, err = set.WithUserDict(ud)
		if err != nil {
			return nil, fmt.Errorf("jpmorph: %w", err)
		}
	}
	return &Analyzer{set: set, cfg: lattice.Config{WhitespaceBridge: c.bridge}}, nil
}

// WithUserDict returns a new Analyzer with d layered on as one more user
// dictionary. The receiver and analyses in flight are unaffected.
func (a *Analyzer) WithUserDict(d lexicon.Dictionary) (*Analyzer, error) {
	set, err := a.set.WithUserDict(d)
	if err != nil {
		return nil, fmt.Errorf("jpmorph: %w", err)
	}
	return &Analyzer{set: set, cfg: a.cfg}, nil
}

// Lexicon returns the analyzer's dictionary snapshot.
func (a *Analyzer) Lexicon() *lexicon.Set { return a.set }

// Tokenize segments text into the cheapest token sequence. Empty input
// yields no tokens and no error.
func (a *Analyzer) Tokenize(ctx context.Context, text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	la, err := lattice.Build(a.set, text, a.cfg)
	if err != nil {
		return nil, err
	}
	path, _ := la.BestPath()
	tokens := make([]Token, len(path))
	for i, n := range path {
		tokens[i] = a.token(n)
	}
	return tokens, nil
}

// ReadingCandidates enumerates segmentations of text whose concatenated
// readings align with reading, cheapest first. Empty input yields no
// candidates and no error.
func (a *Analyzer) ReadingCandidates(ctx context.Context, text, reading string, cfg CandidateConfig) ([]Candidate, error) {
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	la, err := lattice.Build(a.set, text, a.cfg)
	if err != nil {
		return nil, err
	}
	cands := la.Candidates(reading, cfg)
	out := make([]Candidate, len(cands))
	for i, c := range cands {
		tokens := make([]Token, len(c.Tokens))
		for j, ct := range c.Tokens {
			t := a.token(ct.Node)
			t.Reading = ct.Reading
			tokens[j] = t
		}
		out[i] = Candidate{TotalCost: c.TotalCost, Tokens: tokens}
	}
	return out, nil
}

// TokenizeBatch tokenizes each text concurrently and returns results in
// input order. The first failure cancels the remaining work.
func (a *Analyzer) TokenizeBatch(ctx context.Context, texts []string) ([][]Token, error) {
	out := make([][]Token, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		g.Go(func() error {
			tokens, err := a.Tokenize(gctx, text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			out[i] = tokens
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve returns the word behind id as a Token without input positions.
// Ids from other analyzers resolve only if this analyzer holds the same
// dictionaries in the same order.
func (a *Analyzer) Resolve(id wordid.ID) (Token, error) {
	info, err := a.set.Resolve(id)
	if err != nil {
		return Token{}, err
	}
	return infoToken(info, 0, 0, info.Surface), nil
}

// DictionaryForm resolves the dictionary form of tok. Tokens without a
// distinct dictionary form resolve to their own entry; unknown-word tokens
// come back unchanged.
func (a *Analyzer) DictionaryForm(tok Token) (Token, error) {
	switch {
	case tok.DictFormID.IsValid():
		return a.Resolve(tok.DictFormID)
	case tok.ID.IsValid():
		return a.Resolve(tok.ID)
	default:
		return tok, nil
	}
}

// InternalCost prices tokens as one lattice path: every word cost plus the
// connection into each token, entering from and leaving to the boundary
// context. An empty sequence costs nothing.
func (a *Analyzer) InternalCost(tokens []Token) int {
	if len(tokens) == 0 {
		return 0
	}
	cost := 0
	prev := int16(0)
	for _, t := range tokens {
		cost += int(a.set.Connection(prev, t.LeftID)) + int(t.WordCost)
		prev = t.RightID
	}
	return cost + int(a.set.Connection(prev, 0))
}

// BridgedCost prices tokens like InternalCost after dropping separator
// tokens, so each remaining token connects to the previous content token.
func (a *Analyzer) BridgedCost(tokens []Token) int {
	var content []Token
	for _, t := range tokens {
		if normalize.IsBridgeSeparator(t.Text) {
			continue
		}
		content = append(content, t)
	}
	return a.InternalCost(content)
}

// DumpLattice writes the lattice built for text to w, one node per line,
// for debugging dictionaries and costs.
func (a *Analyzer) DumpLattice(w io.Writer, text string) error {
	la, err := lattice.Build(a.set, text, a.cfg)
	if err != nil {
		return err
	}
	return la.Dump(w)
}

// PackWordID combines a dictionary index and word offset into a single id.
func PackWordID(dic, word int) (wordid.ID, error) {
	return wordid.Pack(dic, word)
}

// UnpackWordID splits id into its dictionary index and word offset.
func UnpackWordID(id wordid.ID) (dic, word int) {
	return id.Unpack()
}

func (a *Analyzer) token(n lattice.Node) Token {
	return infoToken(n.Info, n.Begin, n.End, n.Surface)
}

func infoToken(info lexicon.WordInfo, start, end int, text string) Token {
	return Token{
		Text:          text,
		Lemma:         info.BaseForm,
		POS:           info.POS,
		Start:         start,
		End:           end,
		Reading:       info.Reading,
		Pronunciation: info.Pronunciation,
		Normalized:    info.Normalized,
		ID:            info.ID,
		DictFormID:    info.DictForm,
		Class:         classOf(info.ID),
		LeftID:        info.LeftID,
		RightID:       info.RightID,
		WordCost:      info.Cost,
	}
}

func classOf(id wordid.ID) model.TokenClass {
	switch {
	case !id.IsValid():
		return model.ClassUnknown
	case id.Dic() == 0:
		return model.ClassKnown
	default:
		return model.ClassUser
	}
}
