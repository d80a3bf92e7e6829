package dfa

import (
	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/fa/nfa"
)

// FromNFA converts an NFA into an equivalent DFA by subset construction over
// the collaborator surface.
//
// The worklist walks individual NFA states: the collaborator's NextState is
// expected to linearize nondeterminism, so each discovered state becomes a
// DFA state named by its canonical singleton label. The initial DFA state is
// the canonical label of the lambda closure of the NFA's initial state, and
// the closure's members seed the worklist. A state is marked final when it
// is final in the NFA.
//
// When the machine leaves some (state, symbol) move undefined the resulting
// DFA is built as partial. The result is validated before being returned;
// a collaborator whose initial closure does not linearize to discovered
// states yields an INVALID_STATE error rather than a malformed DFA.
func FromNFA(machine nfa.Machine) (*DFA, error) {
	symbols := machine.Symbols()
	finalStates := machine.FinalStates()

	dfaStates := fa.NewStateSet()
	dfaTransitions := make(fa.Transitions)
	dfaFinalStates := fa.NewStateSet()

	initialClosure := machine.LambdaClosure(machine.InitialState())
	dfaInitialState := fa.JoinSorted(initialClosure)

	queue := initialClosure.Clone()
	partial := false
	for queue.Len() > 0 {
		current := queue.Sorted()[0]
		queue.Remove(current)

		name := fa.JoinSorted(fa.NewStateSet(current))
		if dfaStates.Contains(name) {
			// Already expanded; nothing can have changed since.
			continue
		}
		dfaStates.Add(name)
		dfaTransitions[name] = make(fa.Paths)
		if finalStates.Contains(current) {
			dfaFinalStates.Add(name)
		}

		for _, symbol := range symbols.Sorted() {
			next := machine.NextState(current, symbol)
			if next == "" {
				partial = true
				continue
			}
			dfaTransitions[name][symbol] = fa.JoinSorted(fa.NewStateSet(next))
			queue.Add(next)
		}
	}

	var opts []Option
	if partial {
		opts = append(opts, AllowPartial())
	}
	return New(dfaStates, symbols, dfaTransitions, dfaInitialState, dfaFinalStates, opts...)
}
