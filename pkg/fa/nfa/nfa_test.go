package nfa

import (
	"testing"

	"github.com/automatalib/automata/pkg/fa"
)

func chainMachine(t *testing.T) *Table {
	t.Helper()
	machine, err := NewTable(
		fa.NewStateSet("s0", "s1", "s2", "s3"),
		fa.NewSymbolSet("a", "b"),
		map[fa.State]map[fa.Symbol]fa.StateSet{
			"s0": {"a": fa.NewStateSet("s1", "s2")},
			"s2": {"b": fa.NewStateSet("s3")},
		},
		map[fa.State]fa.StateSet{
			"s1": fa.NewStateSet("s2"),
			"s2": fa.NewStateSet("s3"),
		},
		"s0",
		fa.NewStateSet("s3"),
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return machine
}

func TestLambdaClosure(t *testing.T) {
	machine := chainMachine(t)

	tests := []struct {
		state fa.State
		want  []fa.State
	}{
		{state: "s0", want: []fa.State{"s0"}},
		{state: "s1", want: []fa.State{"s1", "s2", "s3"}}, // transitive closure
		{state: "s2", want: []fa.State{"s2", "s3"}},
		{state: "s3", want: []fa.State{"s3"}},
	}

	for _, tt := range tests {
		got := machine.LambdaClosure(tt.state)
		if !got.Equal(fa.NewStateSet(tt.want...)) {
			t.Errorf("LambdaClosure(%s) = %v, want %v", tt.state, got.Sorted(), tt.want)
		}
	}
}

func TestNextState(t *testing.T) {
	machine := chainMachine(t)

	// From s0 on a: moves reach {s1, s2}; their closures add s3; the
	// smallest is reported.
	if got := machine.NextState("s0", "a"); got != "s1" {
		t.Errorf("NextState(s0, a) = %q, want s1", got)
	}
	// From s1 on b: s1 itself has no b move, but its closure contains s2
	// which does.
	if got := machine.NextState("s1", "b"); got != "s3" {
		t.Errorf("NextState(s1, b) = %q, want s3", got)
	}
	// No move at all yields the zero state.
	if got := machine.NextState("s3", "a"); got != "" {
		t.Errorf("NextState(s3, a) = %q, want empty", got)
	}
}

func TestNewTableValidation(t *testing.T) {
	states := fa.NewStateSet("s0", "s1")
	symbols := fa.NewSymbolSet("a")

	tests := []struct {
		name     string
		moves    map[fa.State]map[fa.Symbol]fa.StateSet
		lambdas  map[fa.State]fa.StateSet
		initial  fa.State
		finals   fa.StateSet
		wantCode fa.Code
	}{
		{
			name:     "UnknownMoveSource",
			moves:    map[fa.State]map[fa.Symbol]fa.StateSet{"s9": {"a": fa.NewStateSet("s0")}},
			initial:  "s0",
			finals:   fa.NewStateSet("s1"),
			wantCode: fa.CodeInvalidState,
		},
		{
			name:     "UnknownSymbol",
			moves:    map[fa.State]map[fa.Symbol]fa.StateSet{"s0": {"z": fa.NewStateSet("s1")}},
			initial:  "s0",
			finals:   fa.NewStateSet("s1"),
			wantCode: fa.CodeInvalidSymbol,
		},
		{
			name:     "UnknownMoveTarget",
			moves:    map[fa.State]map[fa.Symbol]fa.StateSet{"s0": {"a": fa.NewStateSet("s9")}},
			initial:  "s0",
			finals:   fa.NewStateSet("s1"),
			wantCode: fa.CodeInvalidState,
		},
		{
			name:     "UnknownLambdaTarget",
			lambdas:  map[fa.State]fa.StateSet{"s0": fa.NewStateSet("s9")},
			initial:  "s0",
			finals:   fa.NewStateSet("s1"),
			wantCode: fa.CodeInvalidState,
		},
		{
			name:     "UnknownInitial",
			initial:  "s9",
			finals:   fa.NewStateSet("s1"),
			wantCode: fa.CodeInvalidState,
		},
		{
			name:     "UnknownFinal",
			initial:  "s0",
			finals:   fa.NewStateSet("s9"),
			wantCode: fa.CodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(states, symbols, tt.moves, tt.lambdas, tt.initial, tt.finals)
			if err == nil {
				t.Fatal("NewTable succeeded, want error")
			}
			if !fa.IsCode(err, tt.wantCode) {
				t.Errorf("error code = %q, want %q (err: %v)", fa.ErrCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	machine := chainMachine(t)
	machine.States().Add("s9")
	if machine.States().Contains("s9") {
		t.Error("mutating the States() copy changed the machine")
	}
	machine.FinalStates().Add("s0")
	if machine.FinalStates().Contains("s0") {
		t.Error("mutating the FinalStates() copy changed the machine")
	}
}
