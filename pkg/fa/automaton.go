package fa

// Automaton is the dispatch surface shared by all finite automata. It exposes
// the five components of the defining tuple plus validation and stepwise
// recognition; [ReadInput] and [AcceptsInput] derive from it.
type Automaton interface {
	// States returns the automaton's state set.
	States() StateSet
	// Symbols returns the input alphabet.
	Symbols() SymbolSet
	// Transitions returns the transition table.
	Transitions() Transitions
	// InitialState returns the start state.
	InitialState() State
	// FinalStates returns the accepting states.
	FinalStates() StateSet

	// Validate re-runs the construction invariants. It returns nil on any
	// successfully constructed automaton.
	Validate() error

	// ReadInputStepwise consumes the input word and returns the visited
	// states in order, starting with the initial state. It fails with a
	// REJECTION error when a transition is undefined or the terminal state
	// is not accepting; the states visited up to the failure are returned
	// alongside the error.
	ReadInputStepwise(input []Symbol) ([]State, error)
}

// ReadInput consumes the input word and returns the final state reached.
// It fails exactly when [Automaton.ReadInputStepwise] fails.
func ReadInput(a Automaton, input []Symbol) (State, error) {
	steps, err := a.ReadInputStepwise(input)
	if err != nil {
		return "", err
	}
	return steps[len(steps)-1], nil
}

// AcceptsInput reports whether the automaton accepts the input word.
// Rejections convert to false; any structural error is returned as-is so a
// malformed automaton is never masked as a plain non-acceptance.
func AcceptsInput(a Automaton, input []Symbol) (bool, error) {
	_, err := ReadInput(a, input)
	if err == nil {
		return true, nil
	}
	if IsRejection(err) {
		return false, nil
	}
	return false, err
}
