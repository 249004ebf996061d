package lpr3781

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuttingPlaneConvergesToIntegerOptimum(t *testing.T) {
	result, err := CuttingPlane(integerSquareModel(), 0)
	require.NoError(t, err)
	require.Equal(t, Optimal, result.Status)

	assert.InDelta(t, 2.0, result.Objective, epsFeas)
	assert.InDelta(t, 1.0, result.Solution["x1"], epsFeas)
	assert.InDelta(t, 1.0, result.Solution["x2"], epsFeas)
	assert.Len(t, result.CutsAdded, 2)
}

func TestCuttingPlaneCapExhausted(t *testing.T) {
	result, err := CuttingPlane(integerSquareModel(), 1)
	require.NoError(t, err)
	assert.Equal(t, IterationLimit, result.Status)
	assert.Len(t, result.CutsAdded, 1)
}

func TestCuttingPlaneInfeasible(t *testing.T) {
	m := Model{
		Sense: Maximize,
		Cost:  []float64{1},
		Constraints: []Constraint{
			{Coeffs: []float64{1}, Rel: LE, RHS: 2},
			{Coeffs: []float64{1}, Rel: GE, RHS: 5},
		},
		Signs: []Sign{Integer},
	}
	result, err := CuttingPlane(m, 0)
	require.NoError(t, err)
	assert.Equal(t, Infeasible, result.Status)
}
