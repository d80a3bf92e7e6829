package dfa

import (
	"testing"

	"github.com/automatalib/automata/pkg/fa"
)

// noConsecutiveOnes4 builds the four-state variant of the no-consecutive-1s
// language where q3 duplicates q0.
func noConsecutiveOnes4(t *testing.T) *DFA {
	t.Helper()
	d, err := New(
		fa.NewStateSet("q0", "q1", "q2", "q3"),
		fa.NewSymbolSet("0", "1"),
		fa.Transitions{
			"q0": {"0": "q3", "1": "q1"},
			"q1": {"0": "q0", "1": "q2"},
			"q2": {"0": "q2", "1": "q2"},
			"q3": {"0": "q0", "1": "q1"},
		},
		"q0",
		fa.NewStateSet("q0", "q1", "q3"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestMinifyPreservesLanguage(t *testing.T) {
	d := noConsecutiveOnes4(t)
	minimal := d.Minify(true)

	equal, err := d.Equal(minimal)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !equal {
		t.Error("minified DFA not language-equal to original")
	}
	if got := minimal.States().Len(); got > 3 {
		t.Errorf("minimal DFA has %d states, want at most 3", got)
	}
}

func TestMinifyMergesDuplicates(t *testing.T) {
	d := noConsecutiveOnes4(t)
	minimal := d.Minify(true)

	// q0 and q3 are indistinguishable and merge into one class named by
	// the canonical sorted join.
	if !minimal.States().Contains("q0,q3") {
		t.Errorf("states = %v, want a merged class q0,q3", minimal.States().Sorted())
	}
	if minimal.InitialState() != "q0,q3" {
		t.Errorf("initial = %q, want q0,q3", minimal.InitialState())
	}
}

func TestMinifyNumberedNames(t *testing.T) {
	d := noConsecutiveOnes4(t)
	minimal := d.Minify(false)

	if got := minimal.States().Len(); got != 3 {
		t.Fatalf("minimal DFA has %d states, want 3", got)
	}
	for _, state := range minimal.States().Sorted() {
		switch state {
		case "0", "1", "2":
		default:
			t.Errorf("unexpected class name %q", state)
		}
	}

	equal, err := d.Equal(minimal)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !equal {
		t.Error("numbered minification changed the language")
	}
}

func TestMinifyIdempotent(t *testing.T) {
	d := noConsecutiveOnes4(t)
	once := d.Minify(true)
	twice := once.Minify(true)

	equal, err := once.Equal(twice)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !equal {
		t.Error("Minify not idempotent by language")
	}
	if once.States().Len() != twice.States().Len() {
		t.Errorf("second Minify changed the state count: %d vs %d", once.States().Len(), twice.States().Len())
	}
}

func TestMinifyRemovesUnreachable(t *testing.T) {
	d, err := New(
		fa.NewStateSet("q0", "q1", "dead"),
		fa.NewSymbolSet("0"),
		fa.Transitions{
			"q0":   {"0": "q1"},
			"q1":   {"0": "q1"},
			"dead": {"0": "dead"},
		},
		"q0",
		fa.NewStateSet("q1"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	minimal := d.Minify(true)
	if minimal.States().Contains("dead") {
		t.Errorf("unreachable state survived minification: %v", minimal.States().Sorted())
	}
}

func TestMinifyPreservesEmptiness(t *testing.T) {
	// Empty language: no final state at all. Minification must not invent
	// one even when Q collapses to a single sink.
	d, err := New(
		fa.NewStateSet("q0", "q1"),
		fa.NewSymbolSet("0"),
		fa.Transitions{
			"q0": {"0": "q1"},
			"q1": {"0": "q0"},
		},
		"q0",
		fa.NewStateSet(),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	minimal := d.Minify(true)
	if minimal.FinalStates().Len() != 0 {
		t.Errorf("minified empty language has finals %v", minimal.FinalStates().Sorted())
	}
	if !d.IsEmpty() {
		t.Error("IsEmpty = false for an automaton with no final states")
	}
}

func TestMinifyAcceptAll(t *testing.T) {
	// F = Q accepts every word; minification collapses to one state.
	d, err := New(
		fa.NewStateSet("q0", "q1"),
		fa.NewSymbolSet("0"),
		fa.Transitions{
			"q0": {"0": "q1"},
			"q1": {"0": "q0"},
		},
		"q0",
		fa.NewStateSet("q0", "q1"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	minimal := d.Minify(true)
	if got := minimal.States().Len(); got != 1 {
		t.Errorf("minimal accept-all DFA has %d states, want 1", got)
	}
	if accepted, _ := minimal.AcceptsInput(word("0", "0", "0")); !accepted {
		t.Error("accept-all DFA rejected a word after minification")
	}
}
