package dfa

import (
	"testing"

	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/fa/nfa"
)

// abMachine builds an NFA over {a,b}: an a moves to s1, whose lambda move
// into the accepting sink s2 lets every later symbol act as if read in s2.
func abMachine(t *testing.T) *nfa.Table {
	t.Helper()
	machine, err := nfa.NewTable(
		fa.NewStateSet("s0", "s1", "s2"),
		fa.NewSymbolSet("a", "b"),
		map[fa.State]map[fa.Symbol]fa.StateSet{
			"s0": {"a": fa.NewStateSet("s1")},
			"s1": {"b": fa.NewStateSet("s2")},
			"s2": {"a": fa.NewStateSet("s2"), "b": fa.NewStateSet("s2")},
		},
		map[fa.State]fa.StateSet{
			"s1": fa.NewStateSet("s2"),
		},
		"s0",
		fa.NewStateSet("s2"),
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return machine
}

func TestFromNFA(t *testing.T) {
	converted, err := FromNFA(abMachine(t))
	if err != nil {
		t.Fatalf("FromNFA: %v", err)
	}

	if converted.InitialState() != "s0" {
		t.Errorf("initial = %q, want s0", converted.InitialState())
	}
	if !converted.States().Contains("s0") {
		t.Errorf("states = %v", converted.States().Sorted())
	}

	tests := []struct {
		input []string
		want  bool
	}{
		{input: []string{"a", "b"}, want: true},
		{input: []string{"a", "a"}, want: true}, // second a only moves via the lambda closure
		{input: []string{"a", "b", "a"}, want: true},
		{input: []string{"a"}, want: false}, // finality follows the walked state, not its closure
		{input: []string{"b"}, want: false},
		{input: nil, want: false},
	}
	for _, tt := range tests {
		got, err := converted.AcceptsInput(word(tt.input...))
		if err != nil {
			t.Fatalf("AcceptsInput(%v): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("AcceptsInput(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromNFAFinalsFollowNFA(t *testing.T) {
	converted, err := FromNFA(abMachine(t))
	if err != nil {
		t.Fatalf("FromNFA: %v", err)
	}

	finals := converted.FinalStates()
	if !finals.Contains("s2") {
		t.Errorf("finals = %v, want s2 included", finals.Sorted())
	}
	if finals.Contains("s0") {
		t.Errorf("finals = %v, s0 must not be final", finals.Sorted())
	}
}

func TestFromNFAPartialMoves(t *testing.T) {
	// s0 has no move on b at all; the conversion falls back to a partial
	// DFA rather than inventing transitions.
	converted, err := FromNFA(abMachine(t))
	if err != nil {
		t.Fatalf("FromNFA: %v", err)
	}
	if !converted.AllowsPartial() {
		t.Error("conversion of a machine with undefined moves is not partial")
	}
	if got, err := converted.AcceptsInput(word("b")); err != nil || got {
		t.Errorf("AcceptsInput(b) = %v, %v; want false, nil", got, err)
	}
}

func TestFromNFAWithoutLambdas(t *testing.T) {
	// A deterministic NFA without lambda moves converts to an equivalent
	// DFA with identical recognition.
	machine, err := nfa.NewTable(
		fa.NewStateSet("e", "o"),
		fa.NewSymbolSet("1"),
		map[fa.State]map[fa.Symbol]fa.StateSet{
			"e": {"1": fa.NewStateSet("o")},
			"o": {"1": fa.NewStateSet("e")},
		},
		nil,
		"e",
		fa.NewStateSet("o"),
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	converted, err := FromNFA(machine)
	if err != nil {
		t.Fatalf("FromNFA: %v", err)
	}

	// Odd counts of 1 are accepted.
	if got, _ := converted.AcceptsInput(word("1")); !got {
		t.Error("1 rejected")
	}
	if got, _ := converted.AcceptsInput(word("1", "1")); got {
		t.Error("11 accepted")
	}
	if got, _ := converted.AcceptsInput(word("1", "1", "1")); !got {
		t.Error("111 rejected")
	}
}
