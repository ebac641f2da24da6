// This file contains thin wrappers around the graph module
// for checking and walking the link structure of a bracket.
package core

import (
	"errors"
	"fmt"
	"iter"

	"github.com/dominikbraun/graph"
)

var (
	ErrDuplicateMatch = errors.New("duplicate match id")
	ErrDanglingLink   = errors.New("link target is not in the bracket")
	ErrBracketCycle   = errors.New("links form a cycle")
	ErrDoubleFeed     = errors.New("match side is fed by more than one link")
	ErrSourceMismatch = errors.New("winner source does not match the feeding link")
)

func matchHash(m *Match) string {
	return m.ID
}

// The BracketGraph has the matches of a bracket as its nodes.
// The directed edges lead from a match to the matches that
// receive its winner (Next) or its loser (NextLoser) like a
// conventional tournament tree.
//
// The graph is acyclic. Adding a link that would close a cycle
// fails.
type BracketGraph struct {
	graph.Graph[string, *Match]
	adjacencyMap map[string]map[string]graph.Edge[string]
}

// Creates the graph of the given matches. Group matches can be
// part of the slice, they have no links and stay isolated.
func NewBracketGraph(matches []*Match) (*BracketGraph, error) {
	g := graph.New(matchHash, graph.Directed(), graph.PreventCycles())

	for _, m := range matches {
		err := g.AddVertex(m)
		if errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateMatch, m.ID)
		}
		if err != nil {
			return nil, err
		}
	}

	fed := make(map[Link]string)
	for _, m := range matches {
		for _, link := range []*Link{m.Next, m.NextLoser} {
			if link == nil {
				continue
			}

			if feeder, ok := fed[*link]; ok {
				return nil, fmt.Errorf("%w: %v side %v by %v and %v", ErrDoubleFeed, link.MatchID, link.Target, feeder, m.ID)
			}
			fed[*link] = m.ID

			err := g.AddEdge(m.ID, link.MatchID, graph.EdgeAttribute("slot", string(link.Target)))
			switch {
			case errors.Is(err, graph.ErrVertexNotFound):
				return nil, fmt.Errorf("%w: %v -> %v", ErrDanglingLink, m.ID, link.MatchID)
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				return nil, fmt.Errorf("%w: %v -> %v", ErrBracketCycle, m.ID, link.MatchID)
			case errors.Is(err, graph.ErrEdgeAlreadyExists):
				return nil, fmt.Errorf("%w: %v -> %v", ErrDoubleFeed, m.ID, link.MatchID)
			case err != nil:
				return nil, err
			}
		}
	}

	return &BracketGraph{Graph: g}, nil
}

// Checks that the links of the matches form a valid bracket.
//
// Every link target has to exist, no side can be fed twice,
// the links must not form a cycle and every WINNER_OF side has
// to be fed by the match it names.
func ValidateBracket(matches []*Match) error {
	g, err := NewBracketGraph(matches)
	if err != nil {
		return err
	}

	for _, m := range matches {
		for _, slot := range []SlotName{SlotA, SlotB} {
			source := m.Source(slot)
			if source == nil || source.Type != SourceWinnerOf {
				continue
			}
			feeder, err := g.Vertex(source.MatchID)
			if err != nil {
				return fmt.Errorf("%w: %v side %v", ErrDanglingLink, m.ID, slot)
			}
			link := feeder.Next
			if link == nil || link.MatchID != m.ID || link.Target != slot {
				return fmt.Errorf("%w: %v side %v", ErrSourceMismatch, m.ID, slot)
			}
		}
	}

	return nil
}

// Returns the matches that directly receive a team out of
// the given match (the dependants).
func (g *BracketGraph) GetDependants(matchID string) []*Match {
	if g.adjacencyMap == nil {
		// The graph does not change after its creation
		// so the adjacency map is stored on the first call
		g.adjacencyMap, _ = g.AdjacencyMap()
	}

	outEdges := g.adjacencyMap[matchID]
	dependants := make([]*Match, 0, len(outEdges))
	for k := range outEdges {
		dependant, _ := g.Vertex(k)
		dependants = append(dependants, dependant)
	}

	return dependants
}

// Iterates over all matches that are reachable from the start
// match in breadth first order. The start match itself is
// yielded first.
func (g *BracketGraph) BreadthSearchIter(startID string) iter.Seq[*Match] {
	iterator := func(yield func(m *Match) bool) {
		visitor := func(key string) bool {
			m, _ := g.Vertex(key)
			return !yield(m)
		}
		graph.BFS(g.Graph, startID, visitor)
	}
	return iterator
}

// Returns all matches that are affected by a result change of
// the given match, nearest first.
func (g *BracketGraph) Downstream(matchID string) []*Match {
	downstream := make([]*Match, 0, 8)
	for m := range g.BreadthSearchIter(matchID) {
		if m.ID != matchID {
			downstream = append(downstream, m)
		}
	}
	return downstream
}
