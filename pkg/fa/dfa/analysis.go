package dfa

import (
	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/graph"
)

// transitionGraph builds the directed graph with one node per state and one
// edge per defined transition.
func (d *DFA) transitionGraph() *graph.Graph[fa.State] {
	g := graph.New[fa.State]()
	for _, state := range d.states.Sorted() {
		g.AddNode(state)
		for _, symbol := range sortedPathSymbols(d.transitions[state]) {
			g.AddEdge(state, d.transitions[state][symbol])
		}
	}
	return g
}

// IsFinite reports whether the accepted language is finite.
//
// A word contributes to an accepting path only through states that are both
// accessible (reachable from the initial state) and coaccessible (able to
// reach a final state). The language is infinite exactly when the subgraph
// induced by those states contains a cycle.
func (d *DFA) IsFinite() bool {
	g := d.transitionGraph()

	accessible := g.Reachable(d.initialState)
	coaccessible := g.Reverse().Reachable(d.finalStates.Sorted()...)

	important := make(graph.Set[fa.State])
	for state := range accessible {
		if coaccessible.Contains(state) {
			important.Add(state)
		}
	}

	return !g.Induced(important).HasCycle()
}
