// Package lattice builds the word graph for an input sentence and searches
// it: the single cheapest segmentation by Viterbi, and a bounded enumeration
// of segmentations whose readings align with a target string.
package lattice

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"jpmorph/lexicon"
	"jpmorph/normalize"
	"jpmorph/wordid"
)

// ErrNoPath reports that no complete path connects the start of the input to
// its end.
var ErrNoPath = errors.New("lattice: no path from start to end")

const (
	// noneRightID marks the absence of a carried non-whitespace right id.
	noneRightID int16 = -1
	// disconnected marks a node the forward pass could not reach from the
	// start of input.
	disconnected int32 = math.MaxInt32
	// fallbackWordCost prices the single-rune node synthesized when neither
	// the dictionaries nor the unknown handler cover a position.
	fallbackWordCost = 4000
)

// Config controls lattice construction.
type Config struct {
	// WhitespaceBridge additionally prices each transition out of a
	// whitespace run against the right id of the last non-whitespace node
	// before the run, keeping the cheaper of the direct and bridged costs.
	WhitespaceBridge bool
}

// Node is one lattice entry covering input runes [Begin, End).
type Node struct {
	Begin, End   int
	Surface      string
	IsWhitespace bool
	Info         lexicon.WordInfo
}

// vnode is the per-node state of the forward pass, parallel to the full
// node arena.
type vnode struct {
	totalCost int32
	rightID   int16
	// prevNonWS carries the right id of the last non-whitespace node on
	// the cheapest path into this node, noneRightID when there is none.
	prevNonWS int16
}

// nodeIdx addresses a node by its end boundary and position there.
type nodeIdx struct {
	end   int32
	index int32
}

// Lattice is the word graph for one input. The three per-boundary slices
// are parallel arenas indexed by end boundary: search state, full nodes,
// and the winning predecessor of each node. A Lattice is built once and
// read-only afterwards.
type Lattice struct {
	text     string
	ends     [][]vnode
	endsFull [][]Node
	indices  [][]nodeIdx
	conn     lexicon.Connector
	bridge   bool

	eosIdx  nodeIdx
	eosCost int32
	hasEOS  bool
}

// Build constructs the lattice for text over the lexicon snapshot and runs
// the forward pass. Positions no dictionary, unknown handler, or fallback
// node can start from stay empty; Build fails with ErrNoPath only when the
// end of input is unreachable.
func Build(set *lexicon.Set, text string, cfg Config) (*Lattice, error) {
	runes := []rune(text)
	n := len(runes)
	la := &Lattice{
		text:     text,
		ends:     make([][]vnode, n+1),
		endsFull: make([][]Node, n+1),
		indices:  make([][]nodeIdx, n+1),
		conn:     set,
		bridge:   cfg.WhitespaceBridge,
	}
	la.connectBOS()

	byteAt := 0
	for p := 0; p < n; p++ {
		sub := la.text[byteAt:]
		byteAt += utf8.RuneLen(runes[p])
		// A node can only start where another ends.
		if len(la.ends[p]) == 0 {
			continue
		}
		matches := set.Lookup(sub)
		unknown := set.Unknown(sub, len(matches) > 0)
		if len(matches) == 0 && len(unknown) == 0 {
			la.insert(fallbackNode(p, runes[p]))
			continue
		}
		for _, m := range matches {
			la.insert(matchNode(p, sub[:m.Length], m))
		}
		for _, m := range unknown {
			la.insert(matchNode(p, sub[:m.Length], m))
		}
	}
	if err := la.connectEOS(); err != nil {
		return nil, err
	}
	return la, nil
}

func matchNode(begin int, surface string, m lexicon.Match) Node {
	return Node{
		Begin:        begin,
		End:          begin + utf8.RuneCountInString(surface),
		Surface:      surface,
		IsWhitespace: normalize.IsWhitespace(surface),
		Info:         m.Info,
	}
}

func fallbackNode(begin int, r rune) Node {
	s := string(r)
	return Node{
		Begin:        begin,
		End:          begin + 1,
		Surface:      s,
		IsWhitespace: normalize.IsWhitespace(s),
		Info: lexicon.WordInfo{
			Surface:       s,
			Reading:       s,
			Pronunciation: s,
			BaseForm:      s,
			Normalized:    s,
			Cost:          fallbackWordCost,
			ID:            wordid.Invalid,
			DictForm:      wordid.Invalid,
		},
	}
}

func (la *Lattice) connectBOS() {
	bos := Node{Info: lexicon.WordInfo{ID: wordid.Invalid, DictForm: wordid.Invalid}}
	la.ends[0] = append(la.ends[0], vnode{totalCost: 0, rightID: 0, prevNonWS: noneRightID})
	la.endsFull[0] = append(la.endsFull[0], bos)
	la.indices[0] = append(la.indices[0], nodeIdx{})
}

func (la *Lattice) connectEOS() error {
	end := len(la.ends) - 1
	eos := Node{Begin: end, End: end, Info: lexicon.WordInfo{ID: wordid.Invalid, DictForm: wordid.Invalid}}
	idx, cost, _ := la.connectNode(&eos)
	if cost == disconnected {
		return ErrNoPath
	}
	la.eosIdx, la.eosCost, la.hasEOS = idx, cost, true
	return nil
}

// insert places node in the arena and links it to its cheapest predecessor.
// Nodes are inserted in begin order, so every node ending at node.Begin is
// already present.
func (la *Lattice) insert(node Node) {
	idx, cost, prevNonWS := la.connectNode(&node)
	end := node.End
	la.ends[end] = append(la.ends[end], vnode{totalCost: cost, rightID: node.Info.RightID, prevNonWS: prevNonWS})
	la.indices[end] = append(la.indices[end], idx)
	la.endsFull[end] = append(la.endsFull[end], node)
}

// connectNode finds the cheapest predecessor among the nodes ending at
// node.Begin. It returns the predecessor's index, the node's total cost, and
// the non-whitespace right id the node carries forward. The cost is
// disconnected when no reachable predecessor exists. On ties the first
// predecessor in arena order wins.
func (la *Lattice) connectNode(node *Node) (nodeIdx, int32, int16) {
	begin := node.Begin
	nodeCost := int32(node.Info.Cost)
	minCost := disconnected
	var prevIdx nodeIdx
	prevNonWS := noneRightID

	for i := range la.ends[begin] {
		pred := &la.ends[begin][i]
		if pred.totalCost == disconnected {
			continue
		}
		cost := pred.totalCost + int32(la.conn.Connection(pred.rightID, node.Info.LeftID)) + nodeCost
		if la.bridge && !node.IsWhitespace && pred.prevNonWS != noneRightID &&
			la.endsFull[begin][i].IsWhitespace {
			bridged := pred.totalCost + int32(la.conn.Connection(pred.prevNonWS, node.Info.LeftID)) + nodeCost
			if bridged < cost {
				cost = bridged
			}
		}
		if cost < minCost {
			minCost = cost
			prevIdx = nodeIdx{end: int32(begin), index: int32(i)}
			if node.IsWhitespace {
				prevNonWS = pred.prevNonWS
			} else {
				prevNonWS = node.Info.RightID
			}
		}
	}
	return prevIdx, minCost, prevNonWS
}

// BestPath returns the cheapest complete segmentation and its total cost,
// including the transitions out of the start and into the end of input.
func (la *Lattice) BestPath() ([]Node, int) {
	if !la.hasEOS {
		return nil, 0
	}
	var rev []nodeIdx
	for idx := la.eosIdx; idx.end != 0; idx = la.indices[idx.end][idx.index] {
		rev = append(rev, idx)
	}
	path := make([]Node, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = la.endsFull[idx.end][idx.index]
	}
	return path, int(la.eosCost)
}

// BoundaryCount returns the number of rune boundaries, input length plus one.
func (la *Lattice) BoundaryCount() int {
	return len(la.ends)
}

// NodesEndingAt returns the nodes whose end boundary is b. The synthetic
// start node is excluded.
func (la *Lattice) NodesEndingAt(b int) []Node {
	if b <= 0 || b >= len(la.endsFull) {
		return nil
	}
	return la.endsFull[b]
}

// Dump writes every node, walking end boundaries from the end of input
// backwards. Each line carries the node's span, surface, word id, part of
// speech, connection ids, and word cost, followed by its connection cost
// against every node ending at its begin boundary.
func (la *Lattice) Dump(w io.Writer) error {
	line := 0
	for boundary := len(la.endsFull) - 1; boundary > 0; boundary-- {
		for _, node := range la.endsFull[boundary] {
			pos := "*"
			if len(node.Info.POS) > 0 {
				pos = strings.Join(node.Info.POS, ",")
			}
			_, err := fmt.Fprintf(w, "%d: %d %d %s %v %s %d %d %d:",
				line, node.Begin, node.End, node.Surface, node.Info.ID, pos,
				node.Info.LeftID, node.Info.RightID, node.Info.Cost)
			if err != nil {
				return err
			}
			for _, pred := range la.ends[node.Begin] {
				if _, err := fmt.Fprintf(w, " %d", la.conn.Connection(pred.rightID, node.Info.LeftID)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			line++
		}
	}
	return nil
}
