package dfa

import (
	"github.com/automatalib/automata/pkg/fa"
)

// OpOption configures a binary language operation.
type OpOption func(*opConfig)

type opConfig struct {
	retainNames bool
	minify      bool
}

// defaults match the constructor contracts: results are minimized, class
// names are renumbered.
func newOpConfig(opts []OpOption) opConfig {
	cfg := opConfig{retainNames: false, minify: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// RetainNames keeps original (composite) state names through minimization
// instead of renumbering equivalence classes.
func RetainNames() OpOption {
	return func(cfg *opConfig) { cfg.retainNames = true }
}

// SkipMinify returns the raw product automaton without minimizing it.
func SkipMinify() OpOption {
	return func(cfg *opConfig) { cfg.minify = false }
}

// CrossProduct builds the synchronous product of d and other over their
// shared alphabet. Product states are the ordered-pair labels of all state
// combinations, d's state first; the final-state set is empty. The product
// is the skeleton every binary boolean operation fills in.
//
// Both operands must share the same alphabet; mismatched alphabets are a
// precondition violation reported as an INVALID_SYMBOL error.
func (d *DFA) CrossProduct(other *DFA) (*DFA, error) {
	if !d.symbols.Equal(other.symbols) {
		return nil, fa.NewError(fa.CodeInvalidSymbol, "operand alphabets differ")
	}

	newStates := fa.NewStateSet()
	for _, stateA := range d.states.Sorted() {
		for _, stateB := range other.states.Sorted() {
			newStates.Add(fa.JoinPair(stateA, stateB))
		}
	}

	newTransitions := make(fa.Transitions, newStates.Len())
	for _, stateA := range d.states.Sorted() {
		for _, stateB := range other.states.Sorted() {
			pair := fa.JoinPair(stateA, stateB)
			row := make(fa.Paths)
			for _, symbol := range d.symbols.Sorted() {
				nextA, okA := d.transitions[stateA][symbol]
				nextB, okB := other.transitions[stateB][symbol]
				if okA && okB {
					row[symbol] = fa.JoinPair(nextA, nextB)
				}
			}
			newTransitions[pair] = row
		}
	}

	return &DFA{
		states:       newStates,
		symbols:      d.symbols.Clone(),
		transitions:  newTransitions,
		initialState: fa.JoinPair(d.initialState, other.initialState),
		finalStates:  fa.NewStateSet(),
		allowPartial: d.allowPartial || other.allowPartial,
	}, nil
}

// productFinals builds the product automaton and marks as final every pair
// (a, b) for which accept returns true.
func (d *DFA) productFinals(other *DFA, cfg opConfig, accept func(aFinal, bFinal bool) bool) (*DFA, error) {
	product, err := d.CrossProduct(other)
	if err != nil {
		return nil, err
	}
	for _, stateA := range d.states.Sorted() {
		for _, stateB := range other.states.Sorted() {
			if accept(d.finalStates.Contains(stateA), other.finalStates.Contains(stateB)) {
				product.finalStates.Add(fa.JoinPair(stateA, stateB))
			}
		}
	}
	if cfg.minify {
		return product.Minify(cfg.retainNames), nil
	}
	return product, nil
}

// Union returns a DFA accepting the words accepted by d or by other.
func (d *DFA) Union(other *DFA, opts ...OpOption) (*DFA, error) {
	return d.productFinals(other, newOpConfig(opts), func(aFinal, bFinal bool) bool {
		return aFinal || bFinal
	})
}

// Intersect returns a DFA accepting the words accepted by both d and other.
func (d *DFA) Intersect(other *DFA, opts ...OpOption) (*DFA, error) {
	return d.productFinals(other, newOpConfig(opts), func(aFinal, bFinal bool) bool {
		return aFinal && bFinal
	})
}

// Difference returns a DFA accepting the words accepted by d but not by
// other.
func (d *DFA) Difference(other *DFA, opts ...OpOption) (*DFA, error) {
	return d.productFinals(other, newOpConfig(opts), func(aFinal, bFinal bool) bool {
		return aFinal && !bFinal
	})
}

// SymmetricDifference returns a DFA accepting the words accepted by exactly
// one of d and other.
func (d *DFA) SymmetricDifference(other *DFA, opts ...OpOption) (*DFA, error) {
	return d.productFinals(other, newOpConfig(opts), func(aFinal, bFinal bool) bool {
		return aFinal != bFinal
	})
}

// Complement returns a copy of d whose final states are Q \ F. On a total
// DFA this accepts exactly the complement language; on a partial DFA the
// complement is taken against the existing state set only.
func (d *DFA) Complement() *DFA {
	out := d.Clone()
	out.finalStates = d.states.Difference(d.finalStates)
	return out
}

// IsSubset reports whether d's language is contained in other's.
func (d *DFA) IsSubset(other *DFA) (bool, error) {
	intersection, err := d.Intersect(other)
	if err != nil {
		return false, err
	}
	return intersection.Equal(d)
}

// IsSuperset reports whether d's language contains other's.
func (d *DFA) IsSuperset(other *DFA) (bool, error) {
	return other.IsSubset(d)
}

// IsDisjoint reports whether the two languages share no word.
func (d *DFA) IsDisjoint(other *DFA) (bool, error) {
	intersection, err := d.Intersect(other)
	if err != nil {
		return false, err
	}
	return intersection.IsEmpty(), nil
}

// IsEmpty reports whether the language is empty: minimization leaves no
// final state.
func (d *DFA) IsEmpty() bool {
	return d.Minify(true).finalStates.Len() == 0
}

// Equal reports whether d and other accept the same language. Equality is
// language equality, not structural equality: the symmetric difference of
// the two languages must be empty.
func (d *DFA) Equal(other *DFA) (bool, error) {
	diff, err := d.SymmetricDifference(other)
	if err != nil {
		return false, err
	}
	return diff.IsEmpty(), nil
}

// ProperSubset reports whether d's language is strictly contained in
// other's.
func (d *DFA) ProperSubset(other *DFA) (bool, error) {
	subset, err := d.IsSubset(other)
	if err != nil || !subset {
		return false, err
	}
	equal, err := d.Equal(other)
	if err != nil {
		return false, err
	}
	return !equal, nil
}

// ProperSuperset reports whether d's language strictly contains other's.
func (d *DFA) ProperSuperset(other *DFA) (bool, error) {
	return other.ProperSubset(d)
}
