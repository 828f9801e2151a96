package automaton

// prefixDead is the sink state of PrefixAutomaton.
const prefixDead State = 0

// PrefixAutomaton accepts all strings starting with a given prefix.
//
// States: 1..len(prefix)+1, where state n+1 means n prefix bytes were seen.
// State len(prefix)+1 is the accepting state that loops on any byte.
// State 0 is dead.
type PrefixAutomaton struct {
	prefix []byte
}

// NewPrefixAutomaton creates an automaton that accepts strings with the given prefix.
func NewPrefixAutomaton(prefix []byte) *PrefixAutomaton {
	return &PrefixAutomaton{prefix: prefix}
}

func (a *PrefixAutomaton) Start() State {
	return 1
}

func (a *PrefixAutomaton) Step(state State, b byte) State {
	if state == prefixDead || a.IsAccept(state) {
		return state
	}
	if b == a.prefix[state-1] {
		return state + 1
	}
	return prefixDead
}

func (a *PrefixAutomaton) IsAccept(state State) bool {
	return int(state) == len(a.prefix)+1
}

func (a *PrefixAutomaton) CanMatch(state State) bool {
	return state != prefixDead
}

func (a *PrefixAutomaton) WillAlwaysMatch(state State) bool {
	return a.IsAccept(state)
}
