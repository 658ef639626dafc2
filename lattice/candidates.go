package lattice

import (
	"math"
	"sort"
	"strings"

	"jpmorph/lexicon"
	"jpmorph/normalize"
)

// CandidateConfig bounds the reading-constrained enumeration.
type CandidateConfig struct {
	// MaxResults caps how many paths are returned and kept in memory.
	MaxResults int
	// MinTokens rejects paths with fewer tokens, separators included.
	MinTokens int
}

// DefaultCandidateConfig returns the standard enumeration bounds.
func DefaultCandidateConfig() CandidateConfig {
	return CandidateConfig{MaxResults: 64, MinTokens: 1}
}

// Candidate is one complete segmentation whose concatenated token readings
// align with the requested target.
type Candidate struct {
	TotalCost int
	Tokens    []CandidateToken
}

// CandidateToken pairs a path node with its display reading.
type CandidateToken struct {
	Node    Node
	Reading string
}

// Candidates enumerates up to cfg.MaxResults cheapest complete paths whose
// concatenated readings, in canonical comparison form with separator runes
// removed, equal target in the same form. Results are ordered by ascending
// total cost; among equal costs the order of discovery, which follows the
// lattice's node enumeration, decides. Nodes whose surface is a bridge
// separator consume nothing from the target.
func (la *Lattice) Candidates(target string, cfg CandidateConfig) []Candidate {
	if cfg.MaxResults <= 0 {
		return nil
	}
	minTokens := cfg.MinTokens
	if minTokens < 1 {
		minTokens = 1
	}
	aligned := alignForm(target)
	if aligned == "" {
		return nil
	}

	count := la.BoundaryCount()
	byBegin := make([][]nodeRef, count)
	metas := make([][]candidateMeta, count)
	for b := 0; b < count; b++ {
		nodes := la.NodesEndingAt(b)
		ms := make([]candidateMeta, 0, len(nodes))
		for _, node := range nodes {
			if node.End <= node.Begin {
				continue
			}
			meta := candidateMeta{node: node}
			if normalize.IsBridgeSeparator(node.Surface) {
				meta.epsilon = true
			} else {
				meta.variants = matchVariants(node.Info)
			}
			byBegin[node.Begin] = append(byBegin[node.Begin], nodeRef{end: b, index: len(ms)})
			ms = append(ms, meta)
		}
		metas[b] = ms
	}

	s := &candidateSearcher{
		conn:        la.conn,
		target:      aligned,
		endBoundary: count - 1,
		maxResults:  cfg.MaxResults,
		minTokens:   minTokens,
		byBegin:     byBegin,
		metas:       metas,
		memo:        make(map[searchState]memoCost),
	}
	return s.run()
}

// alignForm maps a string to the form used for reading comparison:
// canonical matching form with every bridge rune removed.
func alignForm(s string) string {
	return normalize.StripBridge(normalize.ForMatching(s))
}

// matchVariants lists the distinct aligned forms a node may contribute to
// the target: its reading, and its surface when that differs.
func matchVariants(info lexicon.WordInfo) []string {
	raws := make([]string, 0, 2)
	if info.Reading == "" {
		raws = append(raws, info.Surface)
	} else {
		raws = append(raws, info.Reading, info.Surface)
	}
	var variants []string
	for _, raw := range raws {
		v := alignForm(raw)
		if v == "" {
			continue
		}
		dup := false
		for _, seen := range variants {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			variants = append(variants, v)
		}
	}
	return variants
}

func displayReading(info lexicon.WordInfo) string {
	if info.Reading == "" {
		return info.Surface
	}
	return info.Reading
}

// nodeRef addresses a node in the per-end-boundary meta arena.
type nodeRef struct {
	end   int
	index int
}

type candidateMeta struct {
	node     Node
	variants []string
	// epsilon marks separator nodes that advance the lattice position
	// without consuming target bytes.
	epsilon bool
}

// searchState identifies a partial path by everything that affects its
// completions: lattice position, the right id behind it, and how much of
// the target is consumed.
type searchState struct {
	boundary  int
	prevRight int16
	offset    int
}

type memoCost struct {
	cost int32
	ok   bool
}

type candidateSearcher struct {
	conn        lexicon.Connector
	target      string
	endBoundary int
	maxResults  int
	minTokens   int
	byBegin     [][]nodeRef
	metas       [][]candidateMeta

	path    []nodeRef
	results []Candidate
	memo    map[searchState]memoCost
}

func (s *candidateSearcher) run() []Candidate {
	s.dfs(searchState{boundary: 0, prevRight: 0, offset: 0}, 0)
	sort.SliceStable(s.results, func(i, j int) bool {
		return s.results[i].TotalCost < s.results[j].TotalCost
	})
	if len(s.results) > s.maxResults {
		s.results = s.results[:s.maxResults]
	}
	return s.results
}

// worstKept returns the highest kept cost once the result buffer is full.
// Until then there is nothing to prune against.
func (s *candidateSearcher) worstKept() (int, bool) {
	if len(s.results) < s.maxResults {
		return 0, false
	}
	worst := math.MinInt
	for _, r := range s.results {
		if r.TotalCost > worst {
			worst = r.TotalCost
		}
	}
	return worst, true
}

func (s *candidateSearcher) record(totalCost int) {
	tokens := make([]CandidateToken, len(s.path))
	for i, ref := range s.path {
		meta := &s.metas[ref.end][ref.index]
		tokens[i] = CandidateToken{Node: meta.node, Reading: displayReading(meta.node.Info)}
	}
	cand := Candidate{TotalCost: totalCost, Tokens: tokens}
	if len(s.results) < s.maxResults {
		s.results = append(s.results, cand)
		return
	}
	// Evict the worst kept result, the latest one when tied, and only for a
	// strictly cheaper path, so equal-cost discoveries keep the first.
	worst := 0
	for i, r := range s.results {
		if r.TotalCost >= s.results[worst].TotalCost {
			worst = i
		}
	}
	if totalCost < s.results[worst].TotalCost {
		s.results[worst] = cand
	}
}

// nextStates returns the states reachable from state through meta's node:
// one per match variant consuming that variant from the target, or a single
// state consuming nothing for separator nodes.
func (s *candidateSearcher) nextStates(meta *candidateMeta, state searchState) []searchState {
	right := meta.node.Info.RightID
	if meta.epsilon {
		return []searchState{{boundary: meta.node.End, prevRight: right, offset: state.offset}}
	}
	var out []searchState
	rest := s.target[state.offset:]
	for _, v := range meta.variants {
		if !strings.HasPrefix(rest, v) {
			continue
		}
		out = append(out, searchState{boundary: meta.node.End, prevRight: right, offset: state.offset + len(v)})
	}
	return out
}

// minAdditional returns the exact minimum cost to complete any path from
// state, including the final transition into the end of input, or ok=false
// when no completion exists. Memoized per state; recursion terminates
// because every transition advances the boundary.
func (s *candidateSearcher) minAdditional(state searchState) (int, bool) {
	if m, hit := s.memo[state]; hit {
		return int(m.cost), m.ok
	}
	best, reachable := 0, false
	if state.boundary == s.endBoundary {
		if state.offset == len(s.target) {
			best = int(s.conn.Connection(state.prevRight, 0))
			reachable = true
		}
	} else {
		for _, ref := range s.byBegin[state.boundary] {
			meta := &s.metas[ref.end][ref.index]
			step := int(s.conn.Connection(state.prevRight, meta.node.Info.LeftID)) + int(meta.node.Info.Cost)
			for _, next := range s.nextStates(meta, state) {
				rem, ok := s.minAdditional(next)
				if !ok {
					continue
				}
				if cost := step + rem; !reachable || cost < best {
					best, reachable = cost, true
				}
			}
		}
	}
	s.memo[state] = memoCost{cost: int32(best), ok: reachable}
	return best, reachable
}

func (s *candidateSearcher) dfs(state searchState, baseCost int) {
	minAdd, ok := s.minAdditional(state)
	if !ok {
		return
	}
	if worst, full := s.worstKept(); full && baseCost+minAdd > worst {
		return
	}

	if state.boundary == s.endBoundary {
		if state.offset != len(s.target) || len(s.path) < s.minTokens {
			return
		}
		s.record(baseCost + int(s.conn.Connection(state.prevRight, 0)))
		return
	}

	type transition struct {
		est  int
		step int
		ref  nodeRef
		next searchState
	}
	var transitions []transition
	for _, ref := range s.byBegin[state.boundary] {
		meta := &s.metas[ref.end][ref.index]
		step := int(s.conn.Connection(state.prevRight, meta.node.Info.LeftID)) + int(meta.node.Info.Cost)
		for _, next := range s.nextStates(meta, state) {
			rem, ok := s.minAdditional(next)
			if !ok {
				continue
			}
			transitions = append(transitions, transition{
				est:  baseCost + step + rem,
				step: step,
				ref:  ref,
				next: next,
			})
		}
	}
	// Cheapest estimated completion first; the stable sort keeps the
	// lattice enumeration order among equal estimates.
	sort.SliceStable(transitions, func(i, j int) bool {
		return transitions[i].est < transitions[j].est
	})

	for _, tr := range transitions {
		if worst, full := s.worstKept(); full && tr.est > worst {
			continue
		}
		s.path = append(s.path, tr.ref)
		s.dfs(tr.next, baseCost+tr.step)
		s.path = s.path[:len(s.path)-1]
	}
}
