package lpr3781

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Range is an inclusive interval, with ±Inf denoting an unbounded side.
type Range struct {
	Lower float64
	Upper float64
}

// Sensitivity performs post-optimality analysis on a final basis (spec.md
// §4.7). It is built once per final basis and reused across shadow-price,
// objective-ranging and RHS-ranging queries, all of which share the same
// B⁻¹ and dual vector y.
type Sensitivity struct {
	cm    *CanonicalModel
	basis []int
	A     *mat.Dense
	b     *mat.Dense
	bInv  *mat.Dense
	y     []float64
}

const sensitivityEps = 1e-12

// NewSensitivity reconstructs A, b, c from the canonical tableau structure
// and the final basis, and forms B⁻¹ and y = cᵦᵀB⁻¹ (shadow prices).
func NewSensitivity(cm *CanonicalModel, basis []int) (*Sensitivity, error) {
	m, n := cm.M, cm.N
	A := extractA(cm.T, m, n)
	b := extractB(cm.T, m, n)

	bInv, err := invertBasis(A, basis, m)
	if err != nil {
		return nil, wrapCanonical(err.Error())
	}
	cB := mat.NewDense(1, m, nil)
	for i, idx := range basis {
		cB.Set(0, i, cm.CFull[idx])
	}
	var y mat.Dense
	y.Mul(cB, bInv)

	return &Sensitivity{cm: cm, basis: basis, A: A, b: b, bInv: bInv, y: rowSlice(&y)}, nil
}

// ShadowPrices returns y, the rate of change of the optimal objective per
// unit increase in each constraint's RHS.
func (s *Sensitivity) ShadowPrices() []float64 {
	return append([]float64(nil), s.y...)
}

func (s *Sensitivity) isBasic(j int) bool {
	for _, b := range s.basis {
		if b == j {
			return true
		}
	}
	return false
}

func (s *Sensitivity) reducedCost(j int) float64 {
	yRow := mat.NewDense(1, s.cm.M, s.y)
	return s.cm.CFull[j] - dotColumn(yRow, s.A.ColView(j))
}

// NonBasicObjRange returns the allowable increase/decrease of c_j for a
// non-basic column j (spec.md §4.7). In the Maximize convention the
// allowable increase is -r_j (keeping r_j <= 0); the allowable decrease is
// unbounded.
func (s *Sensitivity) NonBasicObjRange(j int) (Range, error) {
	if s.isBasic(j) {
		return Range{}, wrapCanonical("column is basic, not non-basic")
	}
	r := s.reducedCost(j)
	return Range{Lower: math.Inf(-1), Upper: -r}, nil
}

// BasicObjRange returns bounds on the change (delta) to the cost coefficient
// of the variable basic at basis position i (spec.md §4.7). For each
// non-basic column j, with a = (B⁻¹A_j)_i and r_j its reduced cost, Upper is
// the smallest r_j/a over a > 0 and Lower the largest r_j/a over a < 0; a
// side no column bounds stays ±Inf. Since r_j <= 0 at an optimum, Upper is
// then <= 0 and Lower >= 0.
func (s *Sensitivity) BasicObjRange(i int) (Range, error) {
	if i < 0 || i >= s.cm.M {
		return Range{}, wrapCanonical("basis position out of range")
	}
	w := rowOf(s.bInv, i)
	lower, upper := math.Inf(-1), math.Inf(1)
	for j := 0; j < s.cm.N; j++ {
		if s.isBasic(j) {
			continue
		}
		a := dotSlice(colOf(s.A, j), w)
		r0 := s.reducedCost(j)
		switch {
		case a > sensitivityEps:
			if v := r0 / a; v < upper {
				upper = v
			}
		case a < -sensitivityEps:
			if v := r0 / a; v > lower {
				lower = v
			}
		}
	}
	return Range{Lower: lower, Upper: upper}, nil
}

// RHSRange returns the allowable range of change to the RHS of constraint
// row i, holding the current basis optimal (spec.md §4.7).
func (s *Sensitivity) RHSRange(i int) (Range, error) {
	if i < 0 || i >= s.cm.M {
		return Range{}, wrapCanonical("row index out of range")
	}
	v := colOf(s.bInv, i)
	var xB mat.Dense
	xB.Mul(s.bInv, s.b)
	xBSlice := denseColSlice(&xB)

	decreaseBound, increaseBound := math.Inf(1), math.Inf(1)
	for r := 0; r < s.cm.M; r++ {
		switch {
		case v[r] > sensitivityEps:
			if c := xBSlice[r] / v[r]; c < decreaseBound {
				decreaseBound = c
			}
		case v[r] < -sensitivityEps:
			if c := -xBSlice[r] / v[r]; c < increaseBound {
				increaseBound = c
			}
		}
	}
	return Range{Lower: -decreaseBound, Upper: increaseBound}, nil
}

func rowOf(d *mat.Dense, i int) []float64 {
	_, c := d.Dims()
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		out[j] = d.At(i, j)
	}
	return out
}

func colOf(d *mat.Dense, j int) []float64 {
	r, _ := d.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = d.At(i, j)
	}
	return out
}

func dotSlice(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
