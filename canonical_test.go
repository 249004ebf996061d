package lpr3781

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample1() Model {
	return Model{
		Sense: Maximize,
		Cost:  []float64{3, 5},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 0}, Rel: LE, RHS: 4},
			{Coeffs: []float64{0, 2}, Rel: LE, RHS: 12},
			{Coeffs: []float64{3, 2}, Rel: LE, RHS: 18},
		},
		Signs: []Sign{NonNeg, NonNeg},
	}
}

func TestBuildCanonicalColumnOrder(t *testing.T) {
	cm, err := BuildCanonical(sample1())
	require.NoError(t, err)

	assert.Equal(t, 2, cm.NDecision)
	assert.Equal(t, 3, cm.NSlack)
	assert.Equal(t, 0, cm.NArtificial)
	assert.Equal(t, 5, cm.N)
	assert.Equal(t, []string{"x1", "x2", "s1", "s2", "s3"}, cm.ColNames)

	// Starting basis is all three slacks, one per row, at the row's RHS.
	assert.Equal(t, []int{2, 3, 4}, cm.Basis)
	assert.InDelta(t, 4.0, cm.T.At(0, cm.N), epsFeas)
	assert.InDelta(t, 12.0, cm.T.At(1, cm.N), epsFeas)
	assert.InDelta(t, 18.0, cm.T.At(2, cm.N), epsFeas)

	// Initial z-row equals the cost row since the starting basis costs 0.
	assert.InDelta(t, 3.0, cm.T.At(cm.M, 0), epsFeas)
	assert.InDelta(t, 5.0, cm.T.At(cm.M, 1), epsFeas)
	assert.InDelta(t, 0.0, cm.T.At(cm.M, cm.N), epsFeas)
}

func TestBuildCanonicalFreeVariableSplit(t *testing.T) {
	m := Model{
		Sense:       Maximize,
		Cost:        []float64{1, -1},
		Constraints: []Constraint{{Coeffs: []float64{1, 1}, Rel: LE, RHS: 10}},
		Signs:       []Sign{Free, NonNeg},
	}
	cm, err := BuildCanonical(m)
	require.NoError(t, err)
	// Free variable x1 splits into x1+ and x1-, so decision columns grow to 3.
	assert.Equal(t, 3, cm.NDecision)
	assert.Equal(t, []string{"x1+", "x1-", "x2", "s1"}, cm.ColNames)
}

func TestBuildCanonicalNonPosNegation(t *testing.T) {
	m := Model{
		Sense:       Maximize,
		Cost:        []float64{4},
		Constraints: []Constraint{{Coeffs: []float64{-1}, Rel: LE, RHS: 5}},
		Signs:       []Sign{NonPos},
	}
	cm, err := BuildCanonical(m)
	require.NoError(t, err)
	// c is negated for the NonPos substitution x = -x'.
	assert.InDelta(t, -4.0, cm.CFull[0], epsFeas)
	// and the constraint coefficient is negated too: -(-1) = 1.
	assert.InDelta(t, 1.0, cm.T.At(0, 0), epsFeas)
}

func TestBuildCanonicalRejectsDimensionMismatch(t *testing.T) {
	m := Model{
		Cost:        []float64{1, 1},
		Constraints: []Constraint{{Coeffs: []float64{1}, Rel: LE, RHS: 1}},
		Signs:       []Sign{NonNeg, NonNeg},
	}
	_, err := BuildCanonical(m)
	require.Error(t, err)
	var canonErr *CanonicalError
	assert.ErrorAs(t, err, &canonErr)
}

func TestObjectiveNegatesForMinimize(t *testing.T) {
	cm, err := BuildCanonical(Model{
		Sense:       Minimize,
		Cost:        []float64{2},
		Constraints: []Constraint{{Coeffs: []float64{1}, Rel: GE, RHS: 1}},
		Signs:       []Sign{NonNeg},
	})
	require.NoError(t, err)
	assert.InDelta(t, -6.0, cm.Objective(6), epsFeas)
	cm.Sense = Maximize
	assert.InDelta(t, 6.0, cm.Objective(6), epsFeas)
}
