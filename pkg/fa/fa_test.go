package fa

import (
	"testing"
)

func TestJoinSorted(t *testing.T) {
	tests := []struct {
		name   string
		states []State
		want   State
	}{
		{name: "Empty", states: nil, want: ""},
		{name: "Single", states: []State{"q0"}, want: "q0"},
		{name: "AlreadySorted", states: []State{"q0", "q1"}, want: "q0,q1"},
		{name: "Unsorted", states: []State{"q2", "q0", "q1"}, want: "q0,q1,q2"},
		{name: "MixedPrefixes", states: []State{"q10", "q1"}, want: "q1,q10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinSorted(NewStateSet(tt.states...))
			if got != tt.want {
				t.Errorf("JoinSorted(%v) = %q, want %q", tt.states, got, tt.want)
			}
		})
	}
}

func TestJoinSortedStable(t *testing.T) {
	// Two invocations on equal inputs must produce byte-identical output.
	a := NewStateSet("q1", "q0", "q2")
	b := NewStateSet("q2", "q1", "q0")
	if JoinSorted(a) != JoinSorted(b) {
		t.Errorf("JoinSorted not stable: %q vs %q", JoinSorted(a), JoinSorted(b))
	}
}

func TestJoinPair(t *testing.T) {
	if got := JoinPair("q0", "p0"); got != "q0,p0" {
		t.Errorf("JoinPair(q0, p0) = %q, want q0,p0", got)
	}
	// Pair order is preserved, not sorted.
	if got := JoinPair("q1", "p0"); got != "q1,p0" {
		t.Errorf("JoinPair(q1, p0) = %q, want q1,p0", got)
	}
}

func TestSetOperations(t *testing.T) {
	a := NewStateSet("q0", "q1", "q2")
	b := NewStateSet("q1", "q2", "q3")

	if got := a.Union(b); !got.Equal(NewStateSet("q0", "q1", "q2", "q3")) {
		t.Errorf("Union = %v", got.Sorted())
	}
	if got := a.Intersect(b); !got.Equal(NewStateSet("q1", "q2")) {
		t.Errorf("Intersect = %v", got.Sorted())
	}
	if got := a.Difference(b); !got.Equal(NewStateSet("q0")) {
		t.Errorf("Difference = %v", got.Sorted())
	}
	if !NewStateSet("q1").Subset(a) {
		t.Error("Subset({q1}, a) = false, want true")
	}
	if NewStateSet("q3").Subset(a) {
		t.Error("Subset({q3}, a) = true, want false")
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	a := NewStateSet("q0")
	c := a.Clone()
	c.Add("q1")
	if a.Contains("q1") {
		t.Error("mutating the clone changed the original")
	}
}

func TestTransitionsClone(t *testing.T) {
	orig := Transitions{"q0": Paths{"0": "q0", "1": "q1"}}
	cl := orig.Clone()
	cl["q0"]["0"] = "q1"
	if orig["q0"]["0"] != "q0" {
		t.Error("mutating the clone changed the original")
	}
}
