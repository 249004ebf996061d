package lpr3781

import "gonum.org/v1/gonum/mat"

// SolveRevised runs the revised primal simplex (spec.md §4.3): same
// external contract and pivot rules as SolveTableau, but the basis inverse
// is maintained explicitly instead of a full tableau. Each iteration
// records a Price-Out entry (pricing) and, unless optimal, a Product-Form
// entry (ratio test).
func SolveRevised(cm *CanonicalModel, maxIter int) (*SolveLog, *Report, error) {
	m, n := cm.M, cm.N
	A := extractA(cm.T, m, n)
	b := extractB(cm.T, m, n)

	basis := append([]int(nil), cm.Basis...)
	log := newSolveLog(cm)

	for iter := 0; ; iter++ {
		if iter >= maxIter {
			log.Status = IterationLimit
			return log, nil, &IterationLimitError{Log: log, Limit: maxIter}
		}

		BInv, err := invertBasis(A, basis, m)
		if err != nil {
			return log, nil, wrapCanonical(err.Error())
		}

		cB := mat.NewDense(1, m, nil)
		for i, bIdx := range basis {
			cB.Set(0, i, cm.CFull[bIdx])
		}
		var y mat.Dense
		y.Mul(cB, BInv)

		z := dotColumn(&y, b)
		reducedCosts := make([]float64, n)
		isBasic := basicMask(basis, n)
		entering := -1
		for j := 0; j < n; j++ {
			if isBasic[j] {
				continue
			}
			reducedCosts[j] = cm.CFull[j] - dotColumn(&y, A.ColView(j))
			if entering == -1 && reducedCosts[j] > epsRedCost {
				entering = j
			}
		}
		log.PriceOuts = append(log.PriceOuts, PriceOutEntry{
			Y:            rowSlice(&y),
			ReducedCosts: reducedCosts,
			Entering:     entering,
			Z:            z,
		})

		if entering == -1 {
			break // optimal
		}

		var d mat.Dense
		d.Mul(BInv, A.ColView(entering))
		var xB mat.Dense
		xB.Mul(BInv, b)

		leavingPos := -1
		bestRatio := 0.0
		for i := 0; i < m; i++ {
			di := d.At(i, 0)
			if di <= epsRedCost {
				continue
			}
			ratio := xB.At(i, 0) / di
			switch {
			case leavingPos == -1:
				bestRatio, leavingPos = ratio, i
			case ratio < bestRatio-epsPivot:
				bestRatio, leavingPos = ratio, i
			case abs(ratio-bestRatio) <= epsPivot && basis[i] < basis[leavingPos]:
				// Tie-break by lowest basis index (spec.md §9, Open
				// Questions: fall back to lowest basis index on ties).
				// The tableau solver instead keeps the lowest row index.
				leavingPos = i
			}
		}

		xBBefore := denseColSlice(&xB)
		if leavingPos == -1 {
			log.ProductForms = append(log.ProductForms, ProductFormEntry{
				D: denseColSlice(&d), XBBefore: xBBefore, Theta: 0, XBAfter: nil, Leaving: -1,
			})
			log.Status = Unbounded
			return log, nil, &UnboundedError{Log: log}
		}

		theta := bestRatio
		xBAfter := make([]float64, m)
		for i := 0; i < m; i++ {
			xBAfter[i] = xB.At(i, 0) - theta*d.At(i, 0)
		}
		xBAfter[leavingPos] = theta

		log.ProductForms = append(log.ProductForms, ProductFormEntry{
			D: denseColSlice(&d), XBBefore: xBBefore, Theta: theta, XBAfter: xBAfter, Leaving: leavingPos,
		})

		basis[leavingPos] = entering
		b2 := make([]int, len(basis))
		copy(b2, basis)
		log.Bases = append(log.Bases, b2)
		log.Entering = append(log.Entering, entering)
		log.Leaving = append(log.Leaving, leavingPos)
	}

	BInv, err := invertBasis(A, basis, m)
	if err != nil {
		return log, nil, wrapCanonical(err.Error())
	}
	var xBFinal mat.Dense
	xBFinal.Mul(BInv, b)
	finalValues := denseColSlice(&xBFinal)

	if revisedArtificialAtPositive(cm, basis, finalValues) {
		log.Status = Infeasible
		return log, nil, &InfeasibleError{Log: log}
	}

	cB := mat.NewDense(1, m, nil)
	for i, bIdx := range basis {
		cB.Set(0, i, cm.CFull[bIdx])
	}
	var yFinal mat.Dense
	yFinal.Mul(cB, BInv)
	zFinal := dotColumn(&yFinal, b)

	log.Status = Optimal
	report := cm.reportFromBasisValues(basis, finalValues, zFinal, Optimal)
	return log, report, nil
}

func extractA(T *mat.Dense, m, n int) *mat.Dense {
	A := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, j, T.At(i, j))
		}
	}
	return A
}

func extractB(T *mat.Dense, m, n int) *mat.Dense {
	b := mat.NewDense(m, 1, nil)
	for i := 0; i < m; i++ {
		b.Set(i, 0, T.At(i, n))
	}
	return b
}

func invertBasis(A *mat.Dense, basis []int, m int) (*mat.Dense, error) {
	B := mat.NewDense(m, m, nil)
	for i, col := range basis {
		for r := 0; r < m; r++ {
			B.Set(r, i, A.At(r, col))
		}
	}
	BInv := mat.NewDense(m, m, nil)
	if err := BInv.Inverse(B); err != nil {
		return nil, err
	}
	return BInv, nil
}

func basicMask(basis []int, n int) []bool {
	mask := make([]bool, n)
	for _, b := range basis {
		mask[b] = true
	}
	return mask
}

func dotColumn(row mat.Matrix, col mat.Matrix) float64 {
	var out mat.Dense
	out.Mul(row, col)
	return out.At(0, 0)
}

func rowSlice(d *mat.Dense) []float64 {
	_, c := d.Dims()
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		out[j] = d.At(0, j)
	}
	return out
}

func denseColSlice(d *mat.Dense) []float64 {
	r, _ := d.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = d.At(i, 0)
	}
	return out
}

func revisedArtificialAtPositive(cm *CanonicalModel, basis []int, values []float64) bool {
	artStart := cm.NDecision + cm.NSlack
	for i, b := range basis {
		if b >= artStart && values[i] > epsFeas {
			return true
		}
	}
	return false
}
