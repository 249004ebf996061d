package lpr3781

import "gonum.org/v1/gonum/mat"

// SolveTableau runs the tableau-form primal simplex (spec.md §4.2) to
// optimality, or fails with UnboundedError/InfeasibleError/IterationLimitError,
// each carrying the log accumulated up to the failure.
func SolveTableau(cm *CanonicalModel, maxIter int) (*SolveLog, *Report, error) {
	T := mat.DenseCopyOf(cm.T)
	basis := append([]int(nil), cm.Basis...)
	log := newSolveLog(cm)
	log.snapshot(T, basis, -1, -1)

	for iter := 0; ; iter++ {
		if iter >= maxIter {
			log.Status = IterationLimit
			return log, nil, &IterationLimitError{Log: log, Limit: maxIter}
		}

		entering := tableauEnteringColumn(T, cm.M, cm.N)
		if entering == -1 {
			break // optimal
		}

		leaving := tableauLeavingRow(T, cm.M, entering)
		if leaving == -1 {
			log.Status = Unbounded
			return log, nil, &UnboundedError{Log: log}
		}

		pivot(T, leaving, entering)
		basis[leaving] = entering
		// The row-m RHS cell does not follow the same elimination sign as
		// every other cell in row m (row m prices a "virtual" RHS column
		// with the opposite sign convention from the cost columns), so it
		// is recomputed directly from cB·xB rather than trusted from the
		// elimination — the same choice the revised solver makes by
		// recomputing z from scratch every iteration instead of tracking
		// it incrementally.
		T.Set(cm.M, cm.N, dotBasisRHS(cm, T, basis))
		log.snapshot(T, basis, entering, leaving)
	}

	if artificialBasicAtPositive(cm, T, basis) {
		log.Status = Infeasible
		return log, nil, &InfeasibleError{Log: log}
	}

	log.Status = Optimal
	report := cm.ExtractReport(T, basis, Optimal)
	return log, report, nil
}

// tableauEnteringColumn applies Bland's rule: the lowest-index column with
// a strictly positive reduced cost.
func tableauEnteringColumn(T *mat.Dense, m, n int) int {
	for j := 0; j < n; j++ {
		if T.At(m, j) > epsRedCost {
			return j
		}
	}
	return -1
}

// tableauLeavingRow performs the minimum-ratio test, tying lowest row index.
func tableauLeavingRow(T *mat.Dense, m, entering int) int {
	_, cols := T.Dims()
	rhsCol := cols - 1
	leaving := -1
	bestRatio := 0.0
	for i := 0; i < m; i++ {
		a := T.At(i, entering)
		if a <= epsRedCost {
			continue
		}
		ratio := T.At(i, rhsCol) / a
		if leaving == -1 || ratio < bestRatio-epsPivot {
			bestRatio = ratio
			leaving = i
		}
	}
	return leaving
}

// pivot scales the pivot row to make the pivot element 1, then eliminates
// the entering column from every other row including the z-row (spec.md
// §4.2, "Pivot operation").
func pivot(T *mat.Dense, row, col int) {
	rows, cols := T.Dims()
	pv := T.At(row, col)
	for j := 0; j < cols; j++ {
		T.Set(row, j, T.At(row, j)/pv)
	}
	for i := 0; i < rows; i++ {
		if i == row {
			continue
		}
		factor := T.At(i, col)
		if abs(factor) <= epsPivot {
			continue
		}
		for j := 0; j < cols; j++ {
			T.Set(i, j, T.At(i, j)-factor*T.At(row, j))
		}
	}
}

func dotBasisRHS(cm *CanonicalModel, T *mat.Dense, basis []int) float64 {
	z := 0.0
	for i, b := range basis {
		z += cm.CFull[b] * T.At(i, cm.N)
	}
	return z
}

func artificialBasicAtPositive(cm *CanonicalModel, T *mat.Dense, basis []int) bool {
	artStart := cm.NDecision + cm.NSlack
	for i, b := range basis {
		if b >= artStart && T.At(i, cm.N) > epsFeas {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
