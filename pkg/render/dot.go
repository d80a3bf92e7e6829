// Package render emits automaton diagrams. The DOT serialization is the
// stable interchange format: a left-to-right digraph with one node line per
// state, one labeled edge per transition, and final states restated with a
// double-circle shape. SVG and PNG rasterization run the DOT source through
// Graphviz.
package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/fa/dfa"
)

// ToDOT returns the DOT serialization of the automaton.
//
// The output is stable for a given automaton: states and transitions are
// emitted in ascending order. Plain state names are written bare; composite
// labels (for example "q0,p0") are quoted to survive the DOT grammar.
func ToDOT(d *dfa.DFA) string {
	states := d.States()
	symbols := d.Symbols()
	transitions := d.Transitions()
	finals := d.FinalStates()

	var buf bytes.Buffer
	buf.WriteString("digraph DFA {\n")
	buf.WriteString("rankdir=LR;\n")
	buf.WriteString("node [shape = circle];\n")

	for _, state := range states.Sorted() {
		fmt.Fprintf(&buf, "%s;\n", dotID(state))
	}
	for _, state := range states.Sorted() {
		for _, symbol := range sortedSymbols(transitions[state], symbols) {
			dst := transitions[state][symbol]
			fmt.Fprintf(&buf, "%s -> %s [label = %q];\n", dotID(state), dotID(dst), string(symbol))
		}
	}
	for _, state := range finals.Sorted() {
		fmt.Fprintf(&buf, "%s [shape = doublecircle];\n", dotID(state))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotID renders a state name as a DOT identifier, quoting it only when it
// contains characters the bare ID grammar does not allow.
func dotID(state fa.State) string {
	for _, r := range state {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return strconv.Quote(string(state))
		}
	}
	if state == "" {
		return `""`
	}
	return string(state)
}

// sortedSymbols enumerates the alphabet in order, so partial rows emit only
// their defined transitions without changing the order of the rest.
func sortedSymbols(paths fa.Paths, symbols fa.SymbolSet) []fa.Symbol {
	ordered := make([]fa.Symbol, 0, len(paths))
	for _, symbol := range symbols.Sorted() {
		if _, ok := paths[symbol]; ok {
			ordered = append(ordered, symbol)
		}
	}
	return ordered
}
