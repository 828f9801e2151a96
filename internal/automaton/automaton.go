package automaton

// State represents a state in a deterministic finite automaton.
// Its meaning is defined by each implementation.
type State uint32

// Automaton is the core interface for all DFA-based term expansion.
// Term expansion (prefix, subsequence) is executed as an Automaton ∩ term
// dictionary intersection; the dictionary walker owns every State value.
//
// Properties:
//   - Deterministic: single transition per (state, input)
//   - Finite: bounded state count
//   - No ε-transitions
//   - Immutable: safe for concurrent use
type Automaton interface {
	// Start returns the initial state.
	Start() State

	// Step returns the next state for the given input byte.
	Step(state State, b byte) State

	// IsAccept returns true if the state is an accepting state.
	IsAccept(state State) bool

	// CanMatch returns true if any accepting state is reachable from this state.
	// Used for pruning during dictionary intersection.
	CanMatch(state State) bool

	// WillAlwaysMatch returns true if the state accepts and every state
	// reachable from it accepts too. Walkers use it to emit whole subtrees
	// without stepping through them.
	WillAlwaysMatch(state State) bool
}

// Run feeds input through a byte-by-byte and reports whether it accepts.
func Run(a Automaton, input []byte) bool {
	state := a.Start()
	for _, b := range input {
		if a.WillAlwaysMatch(state) {
			return true
		}
		if !a.CanMatch(state) {
			return false
		}
		state = a.Step(state, b)
	}
	return a.IsAccept(state)
}
