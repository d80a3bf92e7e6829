// Package nfa defines the nondeterministic-automaton surface the DFA subset
// construction consumes, together with a map-backed implementation usable on
// its own. The richer NFA engine (full multi-successor recognition) lives
// outside this library; conversion only needs closure and successor lookup.
package nfa

import (
	"github.com/automatalib/automata/pkg/fa"
)

// Machine is the collaborator surface consumed by the DFA subset
// construction.
type Machine interface {
	// States returns the machine's state set.
	States() fa.StateSet
	// Symbols returns the input alphabet. Lambda moves are not part of the
	// alphabet.
	Symbols() fa.SymbolSet
	// InitialState returns the start state.
	InitialState() fa.State
	// FinalStates returns the accepting states.
	FinalStates() fa.StateSet

	// LambdaClosure returns the set of states reachable from state by
	// lambda moves alone, including state itself.
	LambdaClosure(state fa.State) fa.StateSet

	// NextState returns the successor the deterministic construction should
	// follow for (state, symbol), or the zero State when no move exists.
	// Implementations must linearize any nondeterminism so that repeated
	// calls agree.
	NextState(state fa.State, symbol fa.Symbol) fa.State
}

// Table is a map-backed NFA with lambda moves. It implements [Machine] by
// resolving nondeterminism deterministically: the successor reported for a
// (state, symbol) pair is the smallest state reached by the moves of the
// state's lambda closure, each move followed through its target's closure.
type Table struct {
	states       fa.StateSet
	symbols      fa.SymbolSet
	moves        map[fa.State]map[fa.Symbol]fa.StateSet
	lambdas      map[fa.State]fa.StateSet
	initialState fa.State
	finalStates  fa.StateSet
}

// NewTable constructs a table NFA. moves maps state and symbol to the set of
// successors; lambdas maps a state to its lambda successors. Both may be
// sparse. Construction validates that every referenced state and symbol is
// declared.
func NewTable(states fa.StateSet, symbols fa.SymbolSet, moves map[fa.State]map[fa.Symbol]fa.StateSet, lambdas map[fa.State]fa.StateSet, initialState fa.State, finalStates fa.StateSet) (*Table, error) {
	t := &Table{
		states:       states.Clone(),
		symbols:      symbols.Clone(),
		moves:        cloneMoves(moves),
		lambdas:      cloneLambdas(lambdas),
		initialState: initialState,
		finalStates:  finalStates.Clone(),
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func cloneMoves(moves map[fa.State]map[fa.Symbol]fa.StateSet) map[fa.State]map[fa.Symbol]fa.StateSet {
	out := make(map[fa.State]map[fa.Symbol]fa.StateSet, len(moves))
	for state, bySymbol := range moves {
		row := make(map[fa.Symbol]fa.StateSet, len(bySymbol))
		for symbol, targets := range bySymbol {
			row[symbol] = targets.Clone()
		}
		out[state] = row
	}
	return out
}

func cloneLambdas(lambdas map[fa.State]fa.StateSet) map[fa.State]fa.StateSet {
	out := make(map[fa.State]fa.StateSet, len(lambdas))
	for state, targets := range lambdas {
		out[state] = targets.Clone()
	}
	return out
}

func (t *Table) validate() error {
	for _, state := range sortedMoveStates(t.moves) {
		if !t.states.Contains(state) {
			return fa.NewError(fa.CodeInvalidState, "%s is not a valid state", state)
		}
		bySymbol := t.moves[state]
		symbols := fa.NewSymbolSet()
		for symbol := range bySymbol {
			symbols.Add(symbol)
		}
		for _, symbol := range symbols.Sorted() {
			if !t.symbols.Contains(symbol) {
				return fa.NewError(fa.CodeInvalidSymbol, "state %s has an invalid transition symbol %s", state, symbol)
			}
			for _, target := range bySymbol[symbol].Sorted() {
				if !t.states.Contains(target) {
					return fa.NewError(fa.CodeInvalidState, "end state %s for transition on %s is invalid", target, state)
				}
			}
		}
	}
	for state, targets := range t.lambdas {
		if !t.states.Contains(state) {
			return fa.NewError(fa.CodeInvalidState, "%s is not a valid state", state)
		}
		for _, target := range targets.Sorted() {
			if !t.states.Contains(target) {
				return fa.NewError(fa.CodeInvalidState, "lambda end state %s for transition on %s is invalid", target, state)
			}
		}
	}
	if !t.states.Contains(t.initialState) {
		return fa.NewError(fa.CodeInvalidState, "%s is not a valid initial state", t.initialState)
	}
	if invalid := t.finalStates.Difference(t.states); invalid.Len() > 0 {
		return fa.NewError(fa.CodeInvalidState, "final state %s is invalid", invalid.Sorted()[0])
	}
	return nil
}

func sortedMoveStates(moves map[fa.State]map[fa.Symbol]fa.StateSet) []fa.State {
	states := fa.NewStateSet()
	for state := range moves {
		states.Add(state)
	}
	return states.Sorted()
}

// States returns a copy of the state set.
func (t *Table) States() fa.StateSet { return t.states.Clone() }

// Symbols returns a copy of the input alphabet.
func (t *Table) Symbols() fa.SymbolSet { return t.symbols.Clone() }

// InitialState returns the start state.
func (t *Table) InitialState() fa.State { return t.initialState }

// FinalStates returns a copy of the accepting states.
func (t *Table) FinalStates() fa.StateSet { return t.finalStates.Clone() }

// LambdaClosure returns every state reachable from state via lambda moves,
// including state itself.
func (t *Table) LambdaClosure(state fa.State) fa.StateSet {
	closure := fa.NewStateSet(state)
	stack := []fa.State{state}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for target := range t.lambdas[current] {
			if !closure.Contains(target) {
				closure.Add(target)
				stack = append(stack, target)
			}
		}
	}
	return closure
}

// NextState returns the smallest successor reachable from state's lambda
// closure on symbol, following each move through the target's own closure.
// It returns the zero State when no move exists.
func (t *Table) NextState(state fa.State, symbol fa.Symbol) fa.State {
	successors := fa.NewStateSet()
	for member := range t.LambdaClosure(state) {
		for target := range t.moves[member][symbol] {
			for reached := range t.LambdaClosure(target) {
				successors.Add(reached)
			}
		}
	}
	if successors.Len() == 0 {
		return ""
	}
	return successors.Sorted()[0]
}

// Ensure Table implements the collaborator surface.
var _ Machine = (*Table)(nil)
