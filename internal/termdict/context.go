package termdict

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrSearchTimeout      = errors.New("term dictionary search timeout")
	ErrStateLimitExceeded = errors.New("automaton state limit exceeded")
	ErrMatchLimitExceeded = errors.New("term match limit exceeded")
)

// ExecutionContext tracks execution limits and cancellation for one search.
// It is not safe for concurrent use.
type ExecutionContext struct {
	ctx context.Context

	MaxStatesVisited int
	MaxTermsMatched  int

	StatesVisited int
	TermsMatched  int

	// checkCounter amortizes context checks.
	checkCounter  int
	checkInterval int

	TimedOut      bool
	LimitExceeded bool
}

// NewExecutionContext creates an execution context bound to ctx with the given limits.
// Non-positive values fall back to the package defaults.
func NewExecutionContext(ctx context.Context, maxStates, maxTerms, checkInterval int) *ExecutionContext {
	if maxStates <= 0 {
		maxStates = DefaultMaxStatesVisited
	}
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTermsMatched
	}
	if checkInterval <= 0 {
		checkInterval = DefaultCheckInterval
	}
	return &ExecutionContext{
		ctx:              ctx,
		MaxStatesVisited: maxStates,
		MaxTermsMatched:  maxTerms,
		checkInterval:    checkInterval,
	}
}

// VisitState records one visited dictionary node and checks the limits.
func (ec *ExecutionContext) VisitState() error {
	ec.StatesVisited++
	return ec.CheckLimits()
}

// AddTerm records one more matched term. It fails, without counting the term,
// once MaxTermsMatched terms were already recorded.
func (ec *ExecutionContext) AddTerm() error {
	if ec.TermsMatched >= ec.MaxTermsMatched {
		ec.LimitExceeded = true
		return ErrMatchLimitExceeded
	}
	ec.TermsMatched++
	return nil
}

// CheckLimits checks whether the state limit has been exceeded or the context is done.
// Context checks are amortized over checkInterval calls.
func (ec *ExecutionContext) CheckLimits() error {
	if ec.StatesVisited > ec.MaxStatesVisited {
		ec.LimitExceeded = true
		return ErrStateLimitExceeded
	}

	ec.checkCounter++
	if ec.checkCounter%ec.checkInterval != 0 {
		return nil
	}
	switch err := ec.ctx.Err(); {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		ec.TimedOut = true
		return ErrSearchTimeout
	default:
		return err
	}
}
