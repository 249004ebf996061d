package lpr3781

import "github.com/pkg/errors"

// Tolerances, centralised per spec.md §9 ("Pervasive small-epsilon
// tolerances"). No numeric comparison anywhere in this package invents a
// new threshold outside these three.
const (
	epsRedCost = 1e-9  // entering-column and optimality test
	epsPivot   = 1e-12 // pivot/ratio-equality and singular-basis test
	epsFeas    = 1e-6  // artificial-at-optimum and integer-feasibility test
)

// ParseError signals malformed input to an external tokeniser. This package
// never parses text itself (spec.md §1) but exports the constructor so a
// caller-side parser can report into the same error taxonomy as the solver.
type ParseError struct{ Msg string }

func (e *ParseError) Error() string { return "parse error: " + e.Msg }

// NewParseError builds a ParseError for use by an external tokeniser.
func NewParseError(msg string) error { return errors.WithStack(&ParseError{Msg: msg}) }

// CanonicalError signals a singular basis or an inconsistent dimension
// while building or re-deriving canonical form.
type CanonicalError struct{ Msg string }

func (e *CanonicalError) Error() string { return "canonical error: " + e.Msg }

// DomainError signals a model given to a solver that cannot handle it, e.g.
// a non-maximisation or non-"<=" first constraint passed to the knapsack
// solver.
type DomainError struct{ Msg string }

func (e *DomainError) Error() string { return "domain error: " + e.Msg }

// UnboundedError is returned by a simplex engine when no leaving row is
// eligible. Log is the solve log up to and including the failing iteration.
type UnboundedError struct {
	Log *SolveLog
}

func (e *UnboundedError) Error() string { return "linear program is unbounded" }

// InfeasibleError is returned when an artificial variable remains basic at
// a positive value once optimality is reached.
type InfeasibleError struct {
	Log *SolveLog
}

func (e *InfeasibleError) Error() string { return "linear program is infeasible" }

// IterationLimitError is returned when a safety cap on iterations is
// tripped before optimality, infeasibility, or unboundedness is detected.
type IterationLimitError struct {
	Log   *SolveLog
	Limit int
}

func (e *IterationLimitError) Error() string {
	return errors.Errorf("iteration limit %d reached without reaching optimality", e.Limit).Error()
}

func wrapCanonical(msg string) error {
	return errors.WithStack(&CanonicalError{Msg: msg})
}

func wrapDomain(msg string) error {
	return errors.WithStack(&DomainError{Msg: msg})
}
