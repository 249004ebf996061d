package lpr3781

import "math"

// NodeStatus tags the outcome of a single branch-and-bound node.
type NodeStatus int

const (
	NodeBranched NodeStatus = iota
	NodeIntegral
	NodeInfeasible
	NodeUnbounded
	NodeFathomedByBound
)

func (s NodeStatus) String() string {
	switch s {
	case NodeBranched:
		return "branched"
	case NodeIntegral:
		return "integral"
	case NodeInfeasible:
		return "infeasible"
	case NodeUnbounded:
		return "unbounded"
	case NodeFathomedByBound:
		return "fathomed-by-bound"
	default:
		return "unknown"
	}
}

// BBNode is one entry of the full visited-node audit list (spec.md §4.4,
// "Return value").
type BBNode struct {
	ID       int
	ParentID int // -1 for the root
	Status   NodeStatus

	BranchVar string // variable branched on to reach this node, "" at the root
	BranchDir string // "<=" or ">=" of the branching constraint added to reach this node

	Objective float64 // LP relaxation objective at this node; zero if infeasible
	Solution  map[string]float64
}

// BBResult is the outcome of a full branch-and-bound search.
type BBResult struct {
	Status    ProblemStatus
	Objective float64
	Solution  map[string]float64
	Nodes     []BBNode
}

const defaultNodeCap = 1000
const defaultLPIterCap = 10000

// BranchAndBound performs recursive depth-first search over LP relaxations
// (spec.md §4.4). nodeCap <= 0 uses the default of 1000.
func BranchAndBound(model Model, nodeCap int) (*BBResult, error) {
	if nodeCap <= 0 {
		nodeCap = defaultNodeCap
	}

	s := &bbSearch{model: model, nodeCap: nodeCap, nextID: 0}
	s.incumbentObj = math.NaN()

	if err := s.visit(-1, "", "", nil); err != nil {
		return nil, err
	}

	result := &BBResult{Nodes: s.nodes}
	switch {
	case s.capped && !s.found:
		result.Status = IterationLimit
	case s.capped:
		result.Status = IterationLimit
		result.Objective = s.incumbentObj
		result.Solution = s.incumbentSol
	case s.found:
		result.Status = Optimal
		result.Objective = s.incumbentObj
		result.Solution = s.incumbentSol
	default:
		result.Status = Infeasible
	}
	return result, nil
}

type bbSearch struct {
	model   Model
	nodeCap int
	nextID  int

	nodes []BBNode

	found        bool
	incumbentObj float64
	incumbentSol map[string]float64

	capped bool
}

func (s *bbSearch) isBetter(candidate float64) bool {
	if !s.found {
		return true
	}
	if s.model.Sense == Minimize {
		return candidate < s.incumbentObj-epsFeas
	}
	return candidate > s.incumbentObj+epsFeas
}

func (s *bbSearch) fathomedByBound(candidate float64) bool {
	if !s.found {
		return false
	}
	if s.model.Sense == Minimize {
		return candidate > s.incumbentObj+epsFeas
	}
	return candidate < s.incumbentObj-epsFeas
}

// visit solves one node's LP relaxation and either fathoms it, records an
// integer-feasible incumbent, or branches into two children.
func (s *bbSearch) visit(parentID int, branchVar, branchDir string, extra []Constraint) error {
	if s.nextID >= s.nodeCap {
		s.capped = true
		return nil
	}
	id := s.nextID
	s.nextID++

	augmented := s.model
	augmented.Constraints = append(append([]Constraint(nil), s.model.Constraints...), extra...)

	cm, err := BuildCanonical(augmented)
	if err != nil {
		return err
	}
	_, report, err := SolveTableau(cm, defaultLPIterCap)
	if err != nil {
		switch err.(type) {
		case *InfeasibleError:
			s.nodes = append(s.nodes, BBNode{ID: id, ParentID: parentID, Status: NodeInfeasible, BranchVar: branchVar, BranchDir: branchDir})
			return nil
		case *UnboundedError:
			s.nodes = append(s.nodes, BBNode{ID: id, ParentID: parentID, Status: NodeUnbounded, BranchVar: branchVar, BranchDir: branchDir})
			return nil
		default:
			return err
		}
	}

	if s.fathomedByBound(report.Objective) {
		s.nodes = append(s.nodes, BBNode{ID: id, ParentID: parentID, Status: NodeFathomedByBound, BranchVar: branchVar, BranchDir: branchDir, Objective: report.Objective, Solution: report.Values})
		return nil
	}

	branchJ, _ := mostFractional(s.model, report.Values)
	if branchJ == -1 {
		s.nodes = append(s.nodes, BBNode{ID: id, ParentID: parentID, Status: NodeIntegral, BranchVar: branchVar, BranchDir: branchDir, Objective: report.Objective, Solution: report.Values})
		if s.isBetter(report.Objective) {
			s.found = true
			s.incumbentObj = report.Objective
			s.incumbentSol = report.Values
		}
		return nil
	}

	s.nodes = append(s.nodes, BBNode{ID: id, ParentID: parentID, Status: NodeBranched, BranchVar: branchVar, BranchDir: branchDir, Objective: report.Objective, Solution: report.Values})

	name := s.model.VarName(branchJ)
	v := report.Values[name]
	floorCoeffs := unitRow(s.model.NVars(), branchJ)
	ceilCoeffs := unitRow(s.model.NVars(), branchJ)

	extraLE := append(append([]Constraint(nil), extra...), Constraint{Coeffs: floorCoeffs, Rel: LE, RHS: math.Floor(v)})
	extraGE := append(append([]Constraint(nil), extra...), Constraint{Coeffs: ceilCoeffs, Rel: GE, RHS: math.Ceil(v)})

	if err := s.visit(id, name, "<=", extraLE); err != nil {
		return err
	}
	if err := s.visit(id, name, ">=", extraGE); err != nil {
		return err
	}
	return nil
}

// mostFractional returns the index of the integer-restricted variable with
// the greatest fractionality (closest to x.5), or -1 if all are
// integer-feasible within epsFeas (spec.md §4.4.4).
func mostFractional(model Model, values map[string]float64) (int, float64) {
	branchJ := -1
	bestFrac := -1.0
	for j := 0; j < model.NVars(); j++ {
		if !model.Signs[j].Integral() {
			continue
		}
		v := values[model.VarName(j)]
		f := v - math.Floor(v)
		dist := math.Min(f, 1-f)
		if dist <= epsFeas {
			continue
		}
		if dist > bestFrac {
			bestFrac = dist
			branchJ = j
		}
	}
	return branchJ, bestFrac
}

func unitRow(n, j int) []float64 {
	row := make([]float64, n)
	row[j] = 1
	return row
}
