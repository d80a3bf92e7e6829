package dfa

import (
	"slices"
	"testing"

	"github.com/automatalib/automata/pkg/fa"
)

// testDFA builds the three-state fixture used across the suite: over {0,1},
// final state q1, with 1s toggling between q1 and q2 once the first 1 is
// seen.
func testDFA(t *testing.T) *DFA {
	t.Helper()
	d, err := New(
		fa.NewStateSet("q0", "q1", "q2"),
		fa.NewSymbolSet("0", "1"),
		fa.Transitions{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q0", "1": "q2"},
			"q2": {"0": "q2", "1": "q1"},
		},
		"q0",
		fa.NewStateSet("q1"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func word(symbols ...string) []fa.Symbol {
	out := make([]fa.Symbol, len(symbols))
	for i, s := range symbols {
		out[i] = fa.Symbol(s)
	}
	return out
}

func TestNewValidation(t *testing.T) {
	states := fa.NewStateSet("q0", "q1", "q2")
	symbols := fa.NewSymbolSet("0", "1")
	valid := fa.Transitions{
		"q0": {"0": "q0", "1": "q1"},
		"q1": {"0": "q2", "1": "q1"},
		"q2": {"0": "q2", "1": "q2"},
	}

	tests := []struct {
		name        string
		transitions fa.Transitions
		initial     fa.State
		finals      fa.StateSet
		wantCode    fa.Code
	}{
		{
			name:        "EmptyTransitions",
			transitions: fa.Transitions{},
			initial:     "q0",
			finals:      fa.NewStateSet("q1"),
			wantCode:    fa.CodeMissingState,
		},
		{
			name: "MissingState",
			transitions: fa.Transitions{
				"q0": {"0": "q0", "1": "q1"},
				"q2": {"0": "q2", "1": "q2"},
			},
			initial:  "q0",
			finals:   fa.NewStateSet("q1"),
			wantCode: fa.CodeMissingState,
		},
		{
			name: "MissingSymbol",
			transitions: fa.Transitions{
				"q0": {"0": "q0", "1": "q1"},
				"q1": {"0": "q2"},
				"q2": {"0": "q2", "1": "q2"},
			},
			initial:  "q0",
			finals:   fa.NewStateSet("q1"),
			wantCode: fa.CodeMissingSymbol,
		},
		{
			name: "InvalidSymbol",
			transitions: fa.Transitions{
				"q0": {"0": "q0", "1": "q1"},
				"q1": {"0": "q2", "1": "q1", "2": "q2"},
				"q2": {"0": "q2", "1": "q2"},
			},
			initial:  "q0",
			finals:   fa.NewStateSet("q1"),
			wantCode: fa.CodeInvalidSymbol,
		},
		{
			name: "InvalidEndState",
			transitions: fa.Transitions{
				"q0": {"0": "q0", "1": "q1"},
				"q1": {"0": "q2", "1": "q3"},
				"q2": {"0": "q2", "1": "q2"},
			},
			initial:  "q0",
			finals:   fa.NewStateSet("q1"),
			wantCode: fa.CodeInvalidState,
		},
		{
			name:        "InvalidInitialState",
			transitions: valid,
			initial:     "q3",
			finals:      fa.NewStateSet("q1"),
			wantCode:    fa.CodeInvalidState,
		},
		{
			name:        "InvalidFinalState",
			transitions: valid,
			initial:     "q0",
			finals:      fa.NewStateSet("q3"),
			wantCode:    fa.CodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(states, symbols, tt.transitions, tt.initial, tt.finals)
			if err == nil {
				t.Fatal("New succeeded, want error")
			}
			if !fa.IsCode(err, tt.wantCode) {
				t.Errorf("error code = %q, want %q (err: %v)", fa.ErrCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestNewAllowPartial(t *testing.T) {
	states := fa.NewStateSet("q0", "q1")
	symbols := fa.NewSymbolSet("0", "1")
	transitions := fa.Transitions{
		"q0": {"1": "q1"},
		"q1": {},
	}

	if _, err := New(states, symbols, transitions, "q0", fa.NewStateSet("q1")); !fa.IsCode(err, fa.CodeMissingSymbol) {
		t.Errorf("total construction error = %v, want MISSING_SYMBOL", err)
	}

	d, err := New(states, symbols, transitions, "q0", fa.NewStateSet("q1"), AllowPartial())
	if err != nil {
		t.Fatalf("partial construction failed: %v", err)
	}
	if !d.AllowsPartial() {
		t.Error("AllowsPartial() = false")
	}
}

func TestValidateIsRerunnable(t *testing.T) {
	d := testDFA(t)
	if err := d.Validate(); err != nil {
		t.Errorf("Validate on constructed DFA: %v", err)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("second Validate: %v", err)
	}
}

func TestReadInputAccepted(t *testing.T) {
	d := testDFA(t)
	got, err := d.ReadInput(word("0", "1", "1", "1"))
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if got != "q1" {
		t.Errorf("ReadInput = %q, want q1", got)
	}
}

func TestReadInputRejectionNonFinal(t *testing.T) {
	d := testDFA(t)
	_, err := d.ReadInput(word("0", "1", "0"))
	if !fa.IsRejection(err) {
		t.Fatalf("err = %v, want rejection", err)
	}
}

func TestReadInputRejectionInvalidSymbol(t *testing.T) {
	d := testDFA(t)
	_, err := d.ReadInput(word("0", "1", "1", "1", "2"))
	if !fa.IsRejection(err) {
		t.Fatalf("err = %v, want rejection", err)
	}
}

func TestReadInputStepwise(t *testing.T) {
	d := testDFA(t)
	steps, err := d.ReadInputStepwise(word("0", "1", "1", "1"))
	if err != nil {
		t.Fatalf("ReadInputStepwise: %v", err)
	}
	want := []fa.State{"q0", "q0", "q1", "q2", "q1"}
	if !slices.Equal(steps, want) {
		t.Errorf("steps = %v, want %v", steps, want)
	}
}

func TestReadInputStepwiseIsRestartable(t *testing.T) {
	d := testDFA(t)
	first, err := d.ReadInputStepwise(word("0", "1"))
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := d.ReadInputStepwise(word("0", "1"))
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("reads differ: %v vs %v", first, second)
	}
}

func TestAcceptsInput(t *testing.T) {
	d := testDFA(t)

	tests := []struct {
		name  string
		input []fa.Symbol
		want  bool
	}{
		{name: "Accepted", input: word("0", "1", "1", "1"), want: true},
		{name: "RejectedNonFinal", input: word("0", "1", "0"), want: false},
		{name: "RejectedBadSymbol", input: word("2"), want: false},
		{name: "EmptyInputNonFinalInitial", input: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.AcceptsInput(tt.input)
			if err != nil {
				t.Fatalf("AcceptsInput: %v", err)
			}
			if got != tt.want {
				t.Errorf("AcceptsInput = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmptyInputAcceptedWhenInitialFinal(t *testing.T) {
	d, err := New(
		fa.NewStateSet("q0"),
		fa.NewSymbolSet("0"),
		fa.Transitions{"q0": {"0": "q0"}},
		"q0",
		fa.NewStateSet("q0"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := d.AcceptsInput(nil)
	if err != nil {
		t.Fatalf("AcceptsInput: %v", err)
	}
	if !got {
		t.Error("empty word rejected although the initial state is final")
	}
}

func TestEmptyAlphabetReadsOnlyEmptyWord(t *testing.T) {
	d, err := New(
		fa.NewStateSet("q0"),
		fa.NewSymbolSet(),
		fa.Transitions{"q0": {}},
		"q0",
		fa.NewStateSet("q0"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, _ := d.AcceptsInput(nil); !got {
		t.Error("empty word rejected")
	}
	if got, _ := d.AcceptsInput(word("0")); got {
		t.Error("non-empty word accepted over an empty alphabet")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	d := testDFA(t)

	d.States().Add("q9")
	if d.States().Contains("q9") {
		t.Error("mutating the States() copy changed the DFA")
	}

	d.Transitions()["q0"]["0"] = "q2"
	if d.Transitions()["q0"]["0"] != "q0" {
		t.Error("mutating the Transitions() copy changed the DFA")
	}

	d.FinalStates().Remove("q1")
	if !d.FinalStates().Contains("q1") {
		t.Error("mutating the FinalStates() copy changed the DFA")
	}
}

func TestCloneIsDeepCopy(t *testing.T) {
	d := testDFA(t)
	c := d.Clone()

	equal, err := d.Equal(c)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !equal {
		t.Error("clone not language-equal to original")
	}
	if !c.States().Equal(d.States()) || c.InitialState() != d.InitialState() {
		t.Error("clone differs structurally from original")
	}
}
