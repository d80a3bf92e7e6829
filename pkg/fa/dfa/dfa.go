// Package dfa implements deterministic finite automata: invariant-enforced
// construction, stepwise recognition, Hopcroft-style minimization, the
// product construction behind the boolean language operations, language
// predicates, finiteness analysis, and subset-construction import from an
// NFA collaborator.
//
// A DFA is immutable from the caller's perspective. Every operation returns
// a fresh instance and leaves its operands untouched, so read-only use from
// multiple goroutines is safe. Accessors return copies of the internal sets
// and tables.
package dfa

import (
	"strings"

	"github.com/automatalib/automata/pkg/fa"
)

// DFA is a deterministic finite automaton: the five-tuple (Q, Σ, δ, q₀, F)
// plus a partial-transition flag. The zero value is not usable; construct
// instances with [New], [FromNFA], or any of the algebraic operations.
type DFA struct {
	states       fa.StateSet
	symbols      fa.SymbolSet
	transitions  fa.Transitions
	initialState fa.State
	finalStates  fa.StateSet
	allowPartial bool
}

// Option configures construction.
type Option func(*DFA)

// AllowPartial permits a transition table that is not total over Q×Σ.
// Recognition on a partial DFA rejects inputs that reach an undefined
// transition.
func AllowPartial() Option {
	return func(d *DFA) { d.allowPartial = true }
}

// New constructs a DFA from its defining tuple and validates it. The input
// collections are copied; the caller keeps ownership of its arguments.
//
// Validation fails on the first violated invariant, in this order: every
// state has a transition row; every row is total over the alphabet (unless
// [AllowPartial]), uses only alphabet symbols, and targets only known
// states; the initial state is a known state with a transition row; the
// final states are a subset of the state set.
func New(states fa.StateSet, symbols fa.SymbolSet, transitions fa.Transitions, initialState fa.State, finalStates fa.StateSet, opts ...Option) (*DFA, error) {
	d := &DFA{
		states:       states.Clone(),
		symbols:      symbols.Clone(),
		transitions:  transitions.Clone(),
		initialState: initialState,
		finalStates:  finalStates.Clone(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Clone returns a full structural copy. The copy shares no interior
// references with the original.
func (d *DFA) Clone() *DFA {
	return &DFA{
		states:       d.states.Clone(),
		symbols:      d.symbols.Clone(),
		transitions:  d.transitions.Clone(),
		initialState: d.initialState,
		finalStates:  d.finalStates.Clone(),
		allowPartial: d.allowPartial,
	}
}

// States returns a copy of the state set.
func (d *DFA) States() fa.StateSet { return d.states.Clone() }

// Symbols returns a copy of the input alphabet.
func (d *DFA) Symbols() fa.SymbolSet { return d.symbols.Clone() }

// Transitions returns a copy of the transition table.
func (d *DFA) Transitions() fa.Transitions { return d.transitions.Clone() }

// InitialState returns the start state.
func (d *DFA) InitialState() fa.State { return d.initialState }

// FinalStates returns a copy of the accepting-state set.
func (d *DFA) FinalStates() fa.StateSet { return d.finalStates.Clone() }

// AllowsPartial reports whether the transition table may be partial.
func (d *DFA) AllowsPartial() bool { return d.allowPartial }

// Validate re-runs the construction invariants and returns the first
// violation, or nil. It always returns nil on a DFA produced by this
// package.
func (d *DFA) Validate() error {
	if err := d.validateTransitionStartStates(); err != nil {
		return err
	}
	for _, state := range d.transitions.States().Sorted() {
		if err := d.validatePaths(state, d.transitions[state]); err != nil {
			return err
		}
	}
	if err := d.validateInitialState(); err != nil {
		return err
	}
	if err := d.validateInitialStateTransitions(); err != nil {
		return err
	}
	return d.validateFinalStates()
}

// validateTransitionStartStates checks that every state has a transition row.
func (d *DFA) validateTransitionStartStates() error {
	for _, state := range d.states.Sorted() {
		if _, ok := d.transitions[state]; !ok {
			return fa.NewError(fa.CodeMissingState, "transition start state %s is missing", state)
		}
	}
	return nil
}

// validatePaths checks one transition row: totality over the alphabet
// (skipped for partial DFAs), symbol membership, and target membership.
func (d *DFA) validatePaths(startState fa.State, paths fa.Paths) error {
	if !d.allowPartial {
		for _, symbol := range d.symbols.Sorted() {
			if _, ok := paths[symbol]; !ok {
				return fa.NewError(fa.CodeMissingSymbol, "state %s is missing a transition for input symbol %s", startState, symbol)
			}
		}
	}
	for _, symbol := range sortedPathSymbols(paths) {
		if !d.symbols.Contains(symbol) {
			return fa.NewError(fa.CodeInvalidSymbol, "state %s has an invalid transition symbol %s", startState, symbol)
		}
	}
	for _, symbol := range sortedPathSymbols(paths) {
		if endState := paths[symbol]; !d.states.Contains(endState) {
			return fa.NewError(fa.CodeInvalidState, "end state %s for transition on %s is invalid", endState, startState)
		}
	}
	return nil
}

func (d *DFA) validateInitialState() error {
	if !d.states.Contains(d.initialState) {
		return fa.NewError(fa.CodeInvalidState, "%s is not a valid initial state", d.initialState)
	}
	return nil
}

func (d *DFA) validateInitialStateTransitions() error {
	if _, ok := d.transitions[d.initialState]; !ok {
		return fa.NewError(fa.CodeMissingState, "initial state %s has no transitions defined", d.initialState)
	}
	return nil
}

func (d *DFA) validateFinalStates() error {
	invalid := d.finalStates.Difference(d.states)
	if invalid.Len() > 0 {
		names := make([]string, 0, invalid.Len())
		for _, s := range invalid.Sorted() {
			names = append(names, string(s))
		}
		return fa.NewError(fa.CodeInvalidState, "final states are not valid (%s)", strings.Join(names, ", "))
	}
	return nil
}

func sortedPathSymbols(paths fa.Paths) []fa.Symbol {
	symbols := fa.NewSymbolSet()
	for symbol := range paths {
		symbols.Add(symbol)
	}
	return symbols.Sorted()
}

// nextState returns δ(current, symbol), or a rejection when the transition
// is undefined.
func (d *DFA) nextState(current fa.State, symbol fa.Symbol) (fa.State, error) {
	next, ok := d.transitions[current][symbol]
	if !ok {
		return "", fa.NewError(fa.CodeRejection, "%s is not a valid input symbol", symbol)
	}
	return next, nil
}

// ReadInputStepwise consumes the input word and returns the visited states
// in order: q₀, q₁, …, qₙ. The returned slice always starts with the initial
// state and grows by one state per consumed symbol.
//
// Recognition fails with a REJECTION error when a transition is undefined
// or when the terminal state is not accepting. On failure the states visited
// so far are returned alongside the error.
func (d *DFA) ReadInputStepwise(input []fa.Symbol) ([]fa.State, error) {
	current := d.initialState
	visited := make([]fa.State, 0, len(input)+1)
	visited = append(visited, current)

	for _, symbol := range input {
		next, err := d.nextState(current, symbol)
		if err != nil {
			return visited, err
		}
		current = next
		visited = append(visited, current)
	}
	if !d.finalStates.Contains(current) {
		return visited, fa.NewError(fa.CodeRejection, "the DFA stopped on a non-final state %s", current)
	}
	return visited, nil
}

// ReadInput consumes the input word and returns the final state reached.
// It fails exactly when [DFA.ReadInputStepwise] fails.
func (d *DFA) ReadInput(input []fa.Symbol) (fa.State, error) {
	return fa.ReadInput(d, input)
}

// AcceptsInput reports whether the DFA accepts the input word. Rejections
// convert to false; structural errors are returned unchanged.
func (d *DFA) AcceptsInput(input []fa.Symbol) (bool, error) {
	return fa.AcceptsInput(d, input)
}

// Ensure DFA implements the shared automaton surface.
var _ fa.Automaton = (*DFA)(nil)
