package lpr3781

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveKnapsackOptimal(t *testing.T) {
	m := Model{
		Sense: Maximize,
		Cost:  []float64{60, 100, 120},
		Constraints: []Constraint{
			{Coeffs: []float64{10, 20, 30}, Rel: LE, RHS: 50},
		},
		Signs: []Sign{Binary, Binary, Binary},
	}
	result, err := SolveKnapsack(m)
	require.NoError(t, err)

	assert.InDelta(t, 220.0, result.Profit, epsFeas)
	assert.Equal(t, []int{2, 3}, result.Taken)
	assert.NotEmpty(t, result.Nodes)
}

func TestSolveKnapsackRejectsMinimize(t *testing.T) {
	m := Model{
		Sense:       Minimize,
		Cost:        []float64{1},
		Constraints: []Constraint{{Coeffs: []float64{1}, Rel: LE, RHS: 1}},
		Signs:       []Sign{Binary},
	}
	_, err := SolveKnapsack(m)
	require.Error(t, err)
	var domErr *DomainError
	require.ErrorAs(t, err, &domErr)
}

func TestSolveKnapsackRejectsNonCapacityFirstConstraint(t *testing.T) {
	m := Model{
		Sense:       Maximize,
		Cost:        []float64{1},
		Constraints: []Constraint{{Coeffs: []float64{1}, Rel: GE, RHS: 1}},
		Signs:       []Sign{Binary},
	}
	_, err := SolveKnapsack(m)
	require.Error(t, err)
	var domErr *DomainError
	require.ErrorAs(t, err, &domErr)
}
