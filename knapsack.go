package lpr3781

import (
	"math"
	"sort"
)

// KnapsackItem is one sorted entry of the knapsack state (spec.md §3,
// "Knapsack state").
type KnapsackItem struct {
	Index  int // 0-based index into the original model
	Weight float64
	Profit float64
	Ratio  float64
}

// KnapsackNode is one visited node of the exploration log (spec.md §4.6).
type KnapsackNode struct {
	ID          int
	Depth       int // position in the sorted item order
	Bound       float64
	ProfitSoFar float64
	WeightSoFar float64
	Pruned      bool
	Feasible    bool
}

// KnapsackResult is the outcome of SolveKnapsack.
type KnapsackResult struct {
	Profit float64
	Taken  []int // 1-based item indices (spec.md §4.6: "1-based indices used in external output")
	Nodes  []KnapsackNode
}

// SolveKnapsack solves a 0/1 knapsack model bypassing the simplex engine
// entirely (spec.md §4.6). The model must be a maximisation with a "<="
// first constraint encoding capacity; anything else is a DomainError.
func SolveKnapsack(model Model) (*KnapsackResult, error) {
	if model.Sense != Maximize {
		return nil, wrapDomain("knapsack requires a maximisation model")
	}
	if len(model.Constraints) == 0 || model.Constraints[0].Rel != LE {
		return nil, wrapDomain("knapsack requires a \"<=\" first constraint encoding capacity")
	}

	n := model.NVars()
	capacity := math.Floor(model.Constraints[0].RHS)

	items := make([]KnapsackItem, n)
	for j := 0; j < n; j++ {
		w := model.Constraints[0].Coeffs[j]
		p := model.Cost[j]
		ratio := 0.0
		if w > 0 {
			ratio = p / w
		}
		items[j] = KnapsackItem{Index: j, Weight: w, Profit: p, Ratio: ratio}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return items[order[a]].Ratio > items[order[b]].Ratio })

	ks := &knapsackSearch{items: items, order: order, capacity: capacity}
	ks.dfs(0, 0, 0, nil)

	taken := make([]int, 0, len(ks.bestTaken))
	for _, j := range ks.bestTaken {
		taken = append(taken, j+1)
	}
	sort.Ints(taken)

	return &KnapsackResult{Profit: ks.bestProfit, Taken: taken, Nodes: ks.nodes}, nil
}

type knapsackSearch struct {
	items    []KnapsackItem
	order    []int
	capacity float64

	bestProfit float64
	bestTaken  []int
	nodes      []KnapsackNode
	nextID     int
}

// bound computes the LP-relaxation upper bound from position pos onward:
// greedy fill by descending ratio plus a fractional top-up of the next
// item that does not fit whole (spec.md §4.6).
func (ks *knapsackSearch) bound(pos int, profit, weight float64) float64 {
	b := profit
	w := weight
	for i := pos; i < len(ks.order); i++ {
		it := ks.items[ks.order[i]]
		if w+it.Weight <= ks.capacity {
			w += it.Weight
			b += it.Profit
		} else {
			remaining := ks.capacity - w
			if remaining > 0 && it.Weight > 0 {
				b += remaining / it.Weight * it.Profit
			}
			break
		}
	}
	return b
}

// dfs explores include-then-exclude (spec.md §4.6), pruning a branch whose
// bound does not strictly exceed the current best profit.
func (ks *knapsackSearch) dfs(pos int, profit, weight float64, taken []int) {
	id := ks.nextID
	ks.nextID++
	b := ks.bound(pos, profit, weight)
	node := KnapsackNode{ID: id, Depth: pos, Bound: b, ProfitSoFar: profit, WeightSoFar: weight}

	if pos == len(ks.order) {
		node.Feasible = true
		ks.nodes = append(ks.nodes, node)
		return
	}
	if b <= ks.bestProfit+epsFeas {
		node.Pruned = true
		ks.nodes = append(ks.nodes, node)
		return
	}
	ks.nodes = append(ks.nodes, node)

	it := ks.items[ks.order[pos]]
	if weight+it.Weight <= ks.capacity {
		newTaken := append(append([]int(nil), taken...), ks.order[pos])
		if profit+it.Profit > ks.bestProfit {
			ks.bestProfit = profit + it.Profit
			ks.bestTaken = append([]int(nil), newTaken...)
		}
		ks.dfs(pos+1, profit+it.Profit, weight+it.Weight, newTaken)
	}
	ks.dfs(pos+1, profit, weight, taken)
}
