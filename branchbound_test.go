package lpr3781

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integerSquareModel() Model {
	return Model{
		Sense: Maximize,
		Cost:  []float64{1, 1},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 0}, Rel: LE, RHS: 1.5},
			{Coeffs: []float64{0, 1}, Rel: LE, RHS: 1.5},
		},
		Signs: []Sign{Integer, Integer},
	}
}

func TestBranchAndBoundFindsIntegerOptimum(t *testing.T) {
	result, err := BranchAndBound(integerSquareModel(), 0)
	require.NoError(t, err)
	require.Equal(t, Optimal, result.Status)

	assert.InDelta(t, 2.0, result.Objective, epsFeas)
	assert.InDelta(t, 1.0, result.Solution["x1"], epsFeas)
	assert.InDelta(t, 1.0, result.Solution["x2"], epsFeas)

	// Every node in the audit trail traces back to the root by ParentID.
	seen := map[int]bool{-1: true}
	for _, n := range result.Nodes {
		assert.True(t, seen[n.ParentID], "node %d has unseen parent %d", n.ID, n.ParentID)
		seen[n.ID] = true
	}
}

func TestBranchAndBoundInfeasible(t *testing.T) {
	m := Model{
		Sense: Maximize,
		Cost:  []float64{1},
		Constraints: []Constraint{
			{Coeffs: []float64{1}, Rel: LE, RHS: 2},
			{Coeffs: []float64{1}, Rel: GE, RHS: 5},
		},
		Signs: []Sign{Integer},
	}
	result, err := BranchAndBound(m, 0)
	require.NoError(t, err)
	assert.Equal(t, Infeasible, result.Status)
}

func TestBranchAndBoundNodeCap(t *testing.T) {
	result, err := BranchAndBound(integerSquareModel(), 1)
	require.NoError(t, err)
	assert.Equal(t, IterationLimit, result.Status)
	assert.LessOrEqual(t, len(result.Nodes), 1)
}

func TestMostFractionalSkipsContinuousVars(t *testing.T) {
	m := Model{Cost: []float64{1, 1}, Signs: []Sign{NonNeg, Integer}}
	j, _ := mostFractional(m, map[string]float64{"x1": 2.7, "x2": 2.5})
	assert.Equal(t, 1, j)
}

func TestMostFractionalReturnsMinusOneWhenIntegral(t *testing.T) {
	m := Model{Cost: []float64{1, 1}, Signs: []Sign{Integer, Integer}}
	j, _ := mostFractional(m, map[string]float64{"x1": 3.0, "x2": 4.0})
	assert.Equal(t, -1, j)
}
