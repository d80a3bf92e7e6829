package dfa

import (
	"maps"
	"slices"
	"strconv"

	"github.com/automatalib/automata/pkg/fa"
)

// Minify returns an equivalent DFA with unreachable states removed and
// indistinguishable states merged. The result accepts exactly the same
// language.
//
// When retainNames is true, a merged class of a single state keeps that
// state's name and a larger class is named by the canonical sorted join of
// its members. When false, classes are numbered by their position in a
// stable enumeration.
func (d *DFA) Minify(retainNames bool) *DFA {
	out := d.Clone()
	out.removeUnreachableStates()
	out.mergeStates(retainNames)
	return out
}

// removeUnreachableStates drops every state not reachable from the initial
// state, together with its transition row and final marking.
func (d *DFA) removeUnreachableStates() {
	reachable := d.reachableStates()
	for _, state := range d.states.Sorted() {
		if reachable.Contains(state) {
			continue
		}
		d.states.Remove(state)
		d.finalStates.Remove(state)
		delete(d.transitions, state)
	}
}

// reachableStates computes the states reachable from the initial state by
// breadth-first search over the transition table.
func (d *DFA) reachableStates() fa.StateSet {
	reachable := fa.NewStateSet(d.initialState)
	queue := []fa.State{d.initialState}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for _, symbol := range sortedPathSymbols(d.transitions[state]) {
			next := d.transitions[state][symbol]
			if !reachable.Contains(next) {
				reachable.Add(next)
				queue = append(queue, next)
			}
		}
	}
	return reachable
}

// mergeStates refines the {final, non-final} partition until every block
// contains only indistinguishable states, then rebuilds the automaton over
// the blocks (Hopcroft's algorithm).
//
// The worklist is seeded with the accepting block. When a split block is
// itself staged, both pieces replace it; otherwise only the smaller piece
// is staged. Blocks are keyed by their canonical sorted join, which keeps
// the refinement order and the class enumeration deterministic.
func (d *DFA) mergeStates(retainNames bool) {
	partition := make(map[fa.State]fa.StateSet)
	if d.finalStates.Len() > 0 {
		addClass(partition, d.finalStates.Clone())
	}
	if nonFinal := d.states.Difference(d.finalStates); nonFinal.Len() > 0 {
		addClass(partition, nonFinal)
	}

	worklist := fa.NewStateSet()
	if d.finalStates.Len() > 0 {
		worklist.Add(fa.JoinSorted(d.finalStates))
	}

	for worklist.Len() > 0 {
		activeKey := worklist.Sorted()[0]
		worklist.Remove(activeKey)
		active := partition[activeKey]

		for _, symbol := range d.symbols.Sorted() {
			// X: the states that move into the active block on symbol.
			movesIn := fa.NewStateSet()
			for _, state := range d.states.Sorted() {
				if next, ok := d.transitions[state][symbol]; ok && active.Contains(next) {
					movesIn.Add(state)
				}
			}
			if movesIn.Len() == 0 {
				continue
			}

			for _, key := range sortedClassKeys(partition) {
				block, ok := partition[key]
				if !ok {
					continue // replaced by an earlier split this round
				}
				intersection := block.Intersect(movesIn)
				if intersection.Len() == 0 {
					continue
				}
				difference := block.Difference(movesIn)
				if difference.Len() == 0 {
					continue
				}
				delete(partition, key)
				addClass(partition, intersection)
				addClass(partition, difference)

				if worklist.Contains(key) {
					worklist.Remove(key)
					worklist.Add(fa.JoinSorted(intersection))
					worklist.Add(fa.JoinSorted(difference))
				} else if intersection.Len() < difference.Len() {
					worklist.Add(fa.JoinSorted(intersection))
				} else {
					worklist.Add(fa.JoinSorted(difference))
				}
			}
		}
	}

	d.rebuildFromClasses(partition, retainNames)
}

// addClass stores a partition block keyed by its canonical sorted join.
func addClass(classes map[fa.State]fa.StateSet, block fa.StateSet) {
	classes[fa.JoinSorted(block)] = block
}

// rebuildFromClasses renames every equivalence class and rebuilds Q, δ, q₀
// and F over the new names. The transition of a class is taken from its
// smallest representative; refinement guarantees every member agrees.
func (d *DFA) rebuildFromClasses(classes map[fa.State]fa.StateSet, retainNames bool) {
	ordered := sortedClassKeys(classes)

	className := func(key fa.State, index int) fa.State {
		if !retainNames {
			return fa.State(strconv.Itoa(index))
		}
		block := classes[key]
		if block.Len() == 1 {
			return block.Sorted()[0]
		}
		return key
	}

	backMap := make(map[fa.State]fa.State, d.states.Len())
	newStates := fa.NewStateSet()
	for i, key := range ordered {
		name := className(key, i)
		newStates.Add(name)
		for state := range classes[key] {
			backMap[state] = name
		}
	}

	newTransitions := make(fa.Transitions, len(ordered))
	for i, key := range ordered {
		name := className(key, i)
		representative := classes[key].Sorted()[0]
		row := make(fa.Paths)
		for _, symbol := range d.symbols.Sorted() {
			if next, ok := d.transitions[representative][symbol]; ok {
				row[symbol] = backMap[next]
			}
		}
		newTransitions[name] = row
	}

	newFinalStates := fa.NewStateSet()
	for state := range d.finalStates {
		newFinalStates.Add(backMap[state])
	}

	d.states = newStates
	d.transitions = newTransitions
	d.initialState = backMap[d.initialState]
	d.finalStates = newFinalStates
}

func sortedClassKeys(classes map[fa.State]fa.StateSet) []fa.State {
	return slices.Sorted(maps.Keys(classes))
}
