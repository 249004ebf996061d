package lpr3781

import "math"

const defaultCutCap = 30

// CutResult is the outcome of CuttingPlane.
type CutResult struct {
	Status     ProblemStatus
	Objective  float64
	Solution   map[string]float64
	Iterations int
	CutsAdded  []Constraint
}

// CuttingPlane implements the simplified Gomory cutting-plane driver of
// spec.md §4.5. Each iteration solves the LP relaxation of the model plus
// cuts added so far, and — if the solution is not already integer-feasible
// — appends a cut x_j <= floor(x_j*) on the variable with maximum
// fractionality. This is a weak "rounding" cut, not a true fractional-part
// Gomory cut derived from the final tableau row (spec.md §9, Open
// Questions); it is replicated here as specified rather than strengthened.
func CuttingPlane(model Model, cap int) (*CutResult, error) {
	if cap <= 0 {
		cap = defaultCutCap
	}

	current := model
	current.Constraints = append([]Constraint(nil), model.Constraints...)

	for iter := 0; iter < cap; iter++ {
		cm, err := BuildCanonical(current)
		if err != nil {
			return nil, err
		}
		_, report, err := SolveTableau(cm, defaultLPIterCap)
		if err != nil {
			switch err.(type) {
			case *InfeasibleError:
				return &CutResult{Status: Infeasible, Iterations: iter, CutsAdded: current.Constraints[len(model.Constraints):]}, nil
			case *UnboundedError:
				return &CutResult{Status: Unbounded, Iterations: iter, CutsAdded: current.Constraints[len(model.Constraints):]}, nil
			default:
				return nil, err
			}
		}

		branchJ, _ := mostFractional(model, report.Values)
		if branchJ == -1 {
			return &CutResult{
				Status:     Optimal,
				Objective:  report.Objective,
				Solution:   report.Values,
				Iterations: iter,
				CutsAdded:  current.Constraints[len(model.Constraints):],
			}, nil
		}

		v := report.Values[model.VarName(branchJ)]
		cut := Constraint{Coeffs: unitRow(model.NVars(), branchJ), Rel: LE, RHS: math.Floor(v)}
		current.Constraints = append(append([]Constraint(nil), current.Constraints...), cut)
	}

	return &CutResult{Status: IterationLimit, Iterations: cap, CutsAdded: current.Constraints[len(model.Constraints):]}, nil
}
