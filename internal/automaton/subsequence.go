package automaton

import "github.com/pkg/errors"

// ErrUppercasePattern is wrapped by the panic value of NewSubsequenceAutomaton
// for a pattern that could never match.
var ErrUppercasePattern = errors.New("subsequence pattern contains an ASCII uppercase byte")

// SubsequenceAutomaton accepts inputs that contain the pattern as a
// subsequence, ignoring ASCII case.
//
// States: 0..len(pattern), the number of pattern bytes matched so far.
// State len(pattern) is accepting and loops on any byte. Matching is greedy:
// a pattern byte is consumed at its first occurrence.
type SubsequenceAutomaton struct {
	pattern []byte
}

// NewSubsequenceAutomaton creates an automaton matching inputs that contain
// pattern as an ASCII case-insensitive subsequence. The pattern is borrowed
// and must not be modified while the automaton is in use.
//
// Panics if pattern contains an ASCII uppercase byte.
func NewSubsequenceAutomaton(pattern []byte) *SubsequenceAutomaton {
	if err := ValidateSubsequencePattern(pattern); err != nil {
		panic(err)
	}
	return NewSubsequenceAutomatonUnchecked(pattern)
}

// NewSubsequenceAutomatonUnchecked is NewSubsequenceAutomaton without the
// pattern check. An automaton built from a pattern containing an ASCII
// uppercase byte never accepts.
func NewSubsequenceAutomatonUnchecked(pattern []byte) *SubsequenceAutomaton {
	return &SubsequenceAutomaton{pattern: pattern}
}

// ValidateSubsequencePattern returns an error wrapping ErrUppercasePattern if
// pattern contains an ASCII uppercase byte.
func ValidateSubsequencePattern(pattern []byte) error {
	for i, b := range pattern {
		if isUpperASCII(b) {
			return errors.Wrapf(ErrUppercasePattern, "%q at offset %d", b, i)
		}
	}
	return nil
}

// Len returns the pattern length, which is also the accepting state.
func (a *SubsequenceAutomaton) Len() int {
	return len(a.pattern)
}

func (a *SubsequenceAutomaton) Start() State {
	return 0
}

func (a *SubsequenceAutomaton) Step(state State, b byte) State {
	if a.IsAccept(state) {
		return state
	}
	if toLowerASCII(b) == a.pattern[state] {
		return state + 1
	}
	return state
}

func (a *SubsequenceAutomaton) IsAccept(state State) bool {
	return int(state) == len(a.pattern)
}

// CanMatch is always true: any state can still be completed by more input.
func (a *SubsequenceAutomaton) CanMatch(state State) bool {
	return true
}

func (a *SubsequenceAutomaton) WillAlwaysMatch(state State) bool {
	return a.IsAccept(state)
}

func isUpperASCII(b byte) bool {
	return 'A' <= b && b <= 'Z'
}

func toLowerASCII(b byte) byte {
	if isUpperASCII(b) {
		return b + ('a' - 'A')
	}
	return b
}
