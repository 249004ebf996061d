package lpr3781

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveRevisedMatchesTableau(t *testing.T) {
	cm, err := BuildCanonical(sample1())
	require.NoError(t, err)

	log, report, err := SolveRevised(cm, defaultLPIterCap)
	require.NoError(t, err)
	require.Equal(t, Optimal, report.Status)

	assert.InDelta(t, 36.0, report.Objective, epsFeas)
	assert.InDelta(t, 2.0, report.Values["x1"], epsFeas)
	assert.InDelta(t, 6.0, report.Values["x2"], epsFeas)

	require.NotEmpty(t, log.PriceOuts)
	last := log.PriceOuts[len(log.PriceOuts)-1]
	assert.Equal(t, -1, last.Entering)
}

func TestSolveRevisedUnbounded(t *testing.T) {
	m := Model{
		Sense:       Maximize,
		Cost:        []float64{1, 1},
		Constraints: []Constraint{{Coeffs: []float64{1, -1}, Rel: LE, RHS: 1}},
		Signs:       []Sign{NonNeg, NonNeg},
	}
	cm, err := BuildCanonical(m)
	require.NoError(t, err)

	_, _, err = SolveRevised(cm, defaultLPIterCap)
	require.Error(t, err)
	var unbErr *UnboundedError
	require.ErrorAs(t, err, &unbErr)
}

func TestSolveRevisedInfeasible(t *testing.T) {
	m := Model{
		Sense: Maximize,
		Cost:  []float64{1},
		Constraints: []Constraint{
			{Coeffs: []float64{1}, Rel: LE, RHS: 2},
			{Coeffs: []float64{1}, Rel: GE, RHS: 5},
		},
		Signs: []Sign{NonNeg},
	}
	cm, err := BuildCanonical(m)
	require.NoError(t, err)

	_, _, err = SolveRevised(cm, defaultLPIterCap)
	require.Error(t, err)
	var infeasErr *InfeasibleError
	require.ErrorAs(t, err, &infeasErr)
}
