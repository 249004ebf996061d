package lpr3781

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// CanonicalModel is the standard-form maximisation tableau produced by
// BuildCanonical (spec.md §3, "Canonical model", and §4.1).
type CanonicalModel struct {
	T     *mat.Dense // (m+1) x (n+1): rows 0..m-1 constraints, row m reduced-cost row, col n RHS
	Basis []int      // length m, column index of the basic variable per row

	CFull    []float64 // length n, aligned with tableau columns
	ColNames []string  // length n

	M int // constraint rows
	N int // tableau columns excluding RHS

	NDecision   int
	NSlack      int
	NArtificial int

	Sense Sense   // original model sense
	BigM  float64

	// decisionCols/decisionSigns map each original variable (0-based, len
	// n0) to the canonical columns and signs that reconstruct its value:
	// x_j = sum_k decisionSigns[j][k] * T[row(decisionCols[j][k]), N].
	decisionCols  [][]int
	decisionSigns [][]float64
	varNames      []string // original n0 names, for Report construction
}

// BuildCanonical deterministically converts a parsed Model into standard
// form with a known basic-feasible starting point (spec.md §4.1).
func BuildCanonical(model Model) (*CanonicalModel, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	n0 := model.NVars()
	m := len(model.Constraints)

	// Step 1: sense normalisation.
	c0 := make([]float64, n0)
	if model.Sense == Minimize {
		for j, v := range model.Cost {
			c0[j] = -v
		}
	} else {
		copy(c0, model.Cost)
	}

	// Step 2: variable sign transforms, column by column.
	decisionCols := make([][]int, n0)
	decisionSigns := make([][]float64, n0)
	var cFull []float64
	var colNames []string
	varNames := make([]string, n0)
	for j := 0; j < n0; j++ {
		varNames[j] = model.VarName(j)
		switch model.Signs[j] {
		case NonNeg, Integer, Binary:
			col := len(cFull)
			decisionCols[j] = []int{col}
			decisionSigns[j] = []float64{1}
			cFull = append(cFull, c0[j])
			colNames = append(colNames, varNames[j])
		case NonPos:
			col := len(cFull)
			decisionCols[j] = []int{col}
			decisionSigns[j] = []float64{-1}
			cFull = append(cFull, -c0[j])
			colNames = append(colNames, varNames[j]+"'")
		case Free:
			colPos := len(cFull)
			colNeg := colPos + 1
			decisionCols[j] = []int{colPos, colNeg}
			decisionSigns[j] = []float64{1, -1}
			cFull = append(cFull, c0[j], -c0[j])
			colNames = append(colNames, varNames[j]+"+", varNames[j]+"-")
		default:
			return nil, wrapCanonical(fmt.Sprintf("unknown sign restriction for variable %d", j))
		}
	}
	nDecision := len(cFull)

	rows := make([][]float64, m)
	rels := make([]Relation, m)
	rhs := make([]float64, m)
	for i, c := range model.Constraints {
		row := make([]float64, nDecision)
		for j := 0; j < n0; j++ {
			a := c.Coeffs[j]
			switch model.Signs[j] {
			case NonNeg, Integer, Binary:
				row[decisionCols[j][0]] = a
			case NonPos:
				row[decisionCols[j][0]] = -a
			case Free:
				row[decisionCols[j][0]] = a
				row[decisionCols[j][1]] = -a
			}
		}
		rows[i] = row
		rels[i] = c.Rel
		rhs[i] = c.RHS
	}

	// Step 3: RHS normalisation.
	for i := range rows {
		if rhs[i] < 0 {
			for j := range rows[i] {
				rows[i][j] = -rows[i][j]
			}
			rhs[i] = -rhs[i]
			switch rels[i] {
			case LE:
				rels[i] = GE
			case GE:
				rels[i] = LE
			}
		}
	}

	// Big-M, computed from the decision-only coefficients/costs/RHS.
	bigM := computeBigM(cFull, rows, rhs)

	// Step 4: slack/artificial introduction, slacks first then artificials,
	// in row order (Column order invariant).
	basis := make([]int, m)
	for i := range basis {
		basis[i] = -1
	}
	nSlack := 0
	slackCol := make([]int, m) // -1 if row has no slack
	for i := range slackCol {
		slackCol[i] = -1
	}
	for i, rel := range rels {
		switch rel {
		case LE:
			slackCol[i] = nDecision + nSlack
			nSlack++
		case GE:
			slackCol[i] = nDecision + nSlack
			nSlack++
		}
	}
	nArtificial := 0
	artCol := make([]int, m)
	for i := range artCol {
		artCol[i] = -1
	}
	for i, rel := range rels {
		switch rel {
		case EQ, GE:
			artCol[i] = nDecision + nSlack + nArtificial
			nArtificial++
		}
	}
	n := nDecision + nSlack + nArtificial

	for i, rel := range rels {
		switch rel {
		case LE:
			basis[i] = slackCol[i]
		case GE, EQ:
			basis[i] = artCol[i]
		}
	}
	// colNames in true column order: decisions, then all slacks in row
	// order, then all artificials in row order.
	for i, c := range slackCol {
		if c >= 0 {
			colNames = append(colNames, fmt.Sprintf("s%d", i+1))
		}
	}
	for i, c := range artCol {
		if c >= 0 {
			colNames = append(colNames, fmt.Sprintf("a%d", i+1))
		}
	}

	cFullTotal := make([]float64, n)
	copy(cFullTotal, cFull)
	for j := nDecision; j < nDecision+nSlack; j++ {
		cFullTotal[j] = 0
	}
	for j := nDecision + nSlack; j < n; j++ {
		cFullTotal[j] = -bigM
	}

	T := mat.NewDense(m+1, n+1, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < nDecision; j++ {
			T.Set(i, j, rows[i][j])
		}
		if c := slackCol[i]; c >= 0 {
			if rels[i] == LE {
				T.Set(i, c, 1)
			} else { // GE
				T.Set(i, c, -1)
			}
		}
		if c := artCol[i]; c >= 0 {
			T.Set(i, c, 1)
		}
		T.Set(i, n, rhs[i])
	}

	// Step 6: reduced-cost row via B^-1 (gonum Inverse: LU with partial
	// pivoting; a near-singular basis surfaces as a CanonicalError).
	B := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for r := 0; r < m; r++ {
			B.Set(r, i, T.At(r, basis[i]))
		}
	}
	var BInv mat.Dense
	if err := BInv.Inverse(B); err != nil {
		return nil, wrapCanonical("singular basis: " + err.Error())
	}
	if maxAbsDense(&BInv) > 1/epsPivot {
		return nil, wrapCanonical("singular basis: inverse magnitude exceeds tolerance")
	}

	cB := mat.NewDense(1, m, nil)
	for i := 0; i < m; i++ {
		cB.Set(0, i, cFullTotal[basis[i]])
	}
	var y mat.Dense
	y.Mul(cB, &BInv)

	for j := 0; j < n; j++ {
		col := mat.NewDense(m, 1, nil)
		for r := 0; r < m; r++ {
			col.Set(r, 0, T.At(r, j))
		}
		var yaj mat.Dense
		yaj.Mul(&y, col)
		T.Set(m, j, cFullTotal[j]-yaj.At(0, 0))
	}
	bvec := mat.NewDense(m, 1, nil)
	for r := 0; r < m; r++ {
		bvec.Set(r, 0, T.At(r, n))
	}
	var yb mat.Dense
	yb.Mul(&y, bvec)
	T.Set(m, n, yb.At(0, 0))

	return &CanonicalModel{
		T:             T,
		Basis:         basis,
		CFull:         cFullTotal,
		ColNames:      colNames,
		M:             m,
		N:             n,
		NDecision:     nDecision,
		NSlack:        nSlack,
		NArtificial:   nArtificial,
		Sense:         model.Sense,
		BigM:          bigM,
		decisionCols:  decisionCols,
		decisionSigns: decisionSigns,
		varNames:      varNames,
	}, nil
}

func computeBigM(cFull []float64, rows [][]float64, rhs []float64) float64 {
	maxAbs := 1.0
	for _, v := range cFull {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	for _, v := range rhs {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	for _, row := range rows {
		for _, v := range row {
			if a := math.Abs(v); a > maxAbs {
				maxAbs = a
			}
		}
	}
	return 1e6 * maxAbs
}

func maxAbsDense(d *mat.Dense) float64 {
	r, c := d.Dims()
	max := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if a := math.Abs(d.At(i, j)); a > max {
				max = a
			}
		}
	}
	return max
}

// Objective converts an internal (Maximize-convention) objective value back
// to the model's original sense.
func (cm *CanonicalModel) Objective(internalZ float64) float64 {
	if cm.Sense == Minimize {
		return -internalZ
	}
	return internalZ
}

// ExtractReport reads decision-variable values out of a final tableau and
// basis, reconstructing each original variable from its canonical pieces
// (spec.md §4.4.3: "Extract decision-variable values by name").
func (cm *CanonicalModel) ExtractReport(T *mat.Dense, basis []int, status ProblemStatus) *Report {
	colValue := make([]float64, cm.N)
	for i, b := range basis {
		colValue[b] = T.At(i, cm.N)
	}
	return cm.reportFromColumnValues(colValue, T.At(cm.M, cm.N), status)
}

// reportFromBasisValues builds a Report directly from a basis-value vector
// (used by the revised solver, which never materialises a full tableau).
func (cm *CanonicalModel) reportFromBasisValues(basis []int, basicValues []float64, internalZ float64, status ProblemStatus) *Report {
	colValue := make([]float64, cm.N)
	for i, b := range basis {
		colValue[b] = basicValues[i]
	}
	return cm.reportFromColumnValues(colValue, internalZ, status)
}

func (cm *CanonicalModel) reportFromColumnValues(colValue []float64, internalZ float64, status ProblemStatus) *Report {
	values := make(map[string]float64, len(cm.varNames))
	for j, name := range cm.varNames {
		v := 0.0
		for k, col := range cm.decisionCols[j] {
			v += cm.decisionSigns[j][k] * colValue[col]
		}
		values[name] = v
	}
	return &Report{
		Status:    status,
		Objective: cm.Objective(internalZ),
		Values:    values,
	}
}
