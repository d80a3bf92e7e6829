// Package definition is the file representation of automata. A definition
// captures the defining tuple of a DFA or NFA in a codec-neutral struct that
// marshals to TOML and JSON, and converts to and from the executable types.
//
// TOML is the authoring format for humans; JSON is the interchange format
// used by the HTTP API. ReadFile dispatches on the file extension.
package definition

import (
	"fmt"

	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/fa/dfa"
	"github.com/automatalib/automata/pkg/fa/nfa"
)

// Automaton kinds accepted in a definition.
const (
	KindDFA = "dfa"
	KindNFA = "nfa"
)

// Definition is the serialized form of an automaton. Scalar fields come
// before the transition tables so the TOML encoding stays valid.
type Definition struct {
	// Kind is "dfa" or "nfa". Defaults to "dfa" when empty.
	Kind string `toml:"kind,omitempty" json:"kind,omitempty"`

	// Name is an optional display name for diagnostics and storage.
	Name string `toml:"name,omitempty" json:"name,omitempty"`

	States  []string `toml:"states" json:"states"`
	Symbols []string `toml:"symbols" json:"symbols"`

	Initial string   `toml:"initial" json:"initial"`
	Finals  []string `toml:"finals" json:"finals"`

	// AllowPartial permits a non-total DFA transition table.
	AllowPartial bool `toml:"allow_partial,omitempty" json:"allow_partial,omitempty"`

	// Transitions is the DFA transition table: state -> symbol -> target.
	Transitions map[string]map[string]string `toml:"transitions,omitempty" json:"transitions,omitempty"`

	// Moves is the NFA transition relation: state -> symbol -> targets.
	Moves map[string]map[string][]string `toml:"moves,omitempty" json:"moves,omitempty"`

	// Lambdas lists the NFA's lambda successors per state.
	Lambdas map[string][]string `toml:"lambdas,omitempty" json:"lambdas,omitempty"`
}

// IsNFA reports whether the definition describes an NFA.
func (d *Definition) IsNFA() bool { return d.Kind == KindNFA }

// ToDFA converts the definition into a validated DFA.
func (d *Definition) ToDFA() (*dfa.DFA, error) {
	if d.Kind != "" && d.Kind != KindDFA {
		return nil, fmt.Errorf("definition kind %q is not a DFA", d.Kind)
	}

	transitions := make(fa.Transitions, len(d.Transitions))
	for state, row := range d.Transitions {
		paths := make(fa.Paths, len(row))
		for symbol, target := range row {
			paths[fa.Symbol(symbol)] = fa.State(target)
		}
		transitions[fa.State(state)] = paths
	}

	var opts []dfa.Option
	if d.AllowPartial {
		opts = append(opts, dfa.AllowPartial())
	}
	return dfa.New(stateSet(d.States), symbolSet(d.Symbols), transitions, fa.State(d.Initial), stateSet(d.Finals), opts...)
}

// ToNFA converts the definition into a validated table NFA.
func (d *Definition) ToNFA() (*nfa.Table, error) {
	if d.Kind != KindNFA {
		return nil, fmt.Errorf("definition kind %q is not an NFA", d.Kind)
	}

	moves := make(map[fa.State]map[fa.Symbol]fa.StateSet, len(d.Moves))
	for state, row := range d.Moves {
		bySymbol := make(map[fa.Symbol]fa.StateSet, len(row))
		for symbol, targets := range row {
			bySymbol[fa.Symbol(symbol)] = stateSet(targets)
		}
		moves[fa.State(state)] = bySymbol
	}

	lambdas := make(map[fa.State]fa.StateSet, len(d.Lambdas))
	for state, targets := range d.Lambdas {
		lambdas[fa.State(state)] = stateSet(targets)
	}

	return nfa.NewTable(stateSet(d.States), symbolSet(d.Symbols), moves, lambdas, fa.State(d.Initial), stateSet(d.Finals))
}

// FromDFA captures a DFA as a definition. Output field order is stable:
// states, symbols and finals are sorted.
func FromDFA(name string, d *dfa.DFA) *Definition {
	transitions := make(map[string]map[string]string)
	table := d.Transitions()
	for state, paths := range table {
		row := make(map[string]string, len(paths))
		for symbol, target := range paths {
			row[string(symbol)] = string(target)
		}
		transitions[string(state)] = row
	}

	return &Definition{
		Kind:         KindDFA,
		Name:         name,
		States:       stateStrings(d.States()),
		Symbols:      symbolStrings(d.Symbols()),
		Transitions:  transitions,
		Initial:      string(d.InitialState()),
		Finals:       stateStrings(d.FinalStates()),
		AllowPartial: d.AllowsPartial(),
	}
}

func stateSet(names []string) fa.StateSet {
	set := fa.NewStateSet()
	for _, name := range names {
		set.Add(fa.State(name))
	}
	return set
}

func symbolSet(names []string) fa.SymbolSet {
	set := fa.NewSymbolSet()
	for _, name := range names {
		set.Add(fa.Symbol(name))
	}
	return set
}

func stateStrings(set fa.StateSet) []string {
	out := make([]string, 0, set.Len())
	for _, state := range set.Sorted() {
		out = append(out, string(state))
	}
	return out
}

func symbolStrings(set fa.SymbolSet) []string {
	out := make([]string, 0, set.Len())
	for _, symbol := range set.Sorted() {
		out = append(out, string(symbol))
	}
	return out
}
