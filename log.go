package lpr3781

import "gonum.org/v1/gonum/mat"

// ProblemStatus is the tagged variant carried by every solve result
// (spec.md §9, "Design Notes").
type ProblemStatus int

const (
	Optimal ProblemStatus = iota
	Unbounded
	Infeasible
	IterationLimit
)

func (s ProblemStatus) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Unbounded:
		return "UNBOUNDED"
	case Infeasible:
		return "INFEASIBLE"
	case IterationLimit:
		return "ITERATION_LIMIT"
	default:
		return "UNKNOWN"
	}
}

// PriceOutEntry records one revised-simplex pricing step (spec.md §4.3.1).
type PriceOutEntry struct {
	Y          []float64 // cB^T B^-1
	ReducedCosts []float64
	Entering   int // -1 if none found
	Z          float64
}

// ProductFormEntry records one revised-simplex ratio-test step (spec.md §4.3.4).
type ProductFormEntry struct {
	D        []float64
	XBBefore []float64
	Theta    float64
	XBAfter  []float64
	Leaving  int // basis position, -1 if unbounded
}

// SolveLog is the append-only audit trail of a simplex solve (spec.md §3,
// "Simplex solve log"). It retains copies of every tableau and basis
// snapshot rather than aliasing into the solver's working buffers, so it
// remains valid after the solver that produced it is gone (spec.md §9,
// "Ownership and aliasing").
type SolveLog struct {
	Tableaus  []*mat.Dense // tableau solver only: one per iteration including the initial tableau
	Bases     [][]int      // the revised solver records one per pivot, with no initial snapshot
	Entering  []int // entering column per iteration; -1 for the tableau solver's initial snapshot
	Leaving   []int // leaving row per iteration; -1 for the tableau solver's initial snapshot

	PriceOuts    []PriceOutEntry    // revised solver only
	ProductForms []ProductFormEntry // revised solver only

	VarNames []string
	CFull    []float64
	M        int // constraint rows
	NCols    int // tableau columns excluding RHS
	Sense    Sense

	Status ProblemStatus
}

func newSolveLog(cm *CanonicalModel) *SolveLog {
	return &SolveLog{
		VarNames: cm.ColNames,
		CFull:    append([]float64(nil), cm.CFull...),
		M:        cm.M,
		NCols:    cm.N,
		Sense:    cm.Sense,
	}
}

func (log *SolveLog) snapshot(T *mat.Dense, basis []int, entering, leaving int) {
	log.Tableaus = append(log.Tableaus, mat.DenseCopyOf(T))
	b := make([]int, len(basis))
	copy(b, basis)
	log.Bases = append(log.Bases, b)
	log.Entering = append(log.Entering, entering)
	log.Leaving = append(log.Leaving, leaving)
}

// Report is the final human-facing result of a solve: the objective value
// (re-negated back into the model's original sense) and each original
// decision variable's value.
type Report struct {
	Status    ProblemStatus
	Objective float64
	Values    map[string]float64
}
