package lpr3781

import "fmt"

// Sense is the optimisation direction of a model.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}
	return "maximize"
}

// Relation is the comparison operator of a constraint row.
type Relation int

const (
	LE Relation = iota // <=
	GE                 // >=
	EQ                 // =
)

func (r Relation) String() string {
	switch r {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Sign is the per-variable sign restriction.
type Sign int

const (
	NonNeg  Sign = iota // x >= 0
	NonPos              // x <= 0
	Free                // x unrestricted
	Integer             // x >= 0, integer
	Binary              // x in {0,1}
)

func (s Sign) String() string {
	switch s {
	case NonNeg:
		return "+"
	case NonPos:
		return "-"
	case Free:
		return "urs"
	case Integer:
		return "int"
	case Binary:
		return "bin"
	default:
		return "?"
	}
}

// Integral reports whether a sign restriction implies integrality. Integer
// and Binary otherwise behave as NonNeg for LP relaxations (spec.md §3).
func (s Sign) Integral() bool {
	return s == Integer || s == Binary
}

// Constraint is a single linear row of a Model.
type Constraint struct {
	Coeffs []float64
	Rel    Relation
	RHS    float64
}

// Model is the parsed linear/integer program this package consumes. It is
// the sole input surface of the core: tokenising text into a Model, and
// rendering a Model's solve results back to text, are external-collaborator
// concerns (spec.md §1).
type Model struct {
	Sense       Sense
	Cost        []float64
	Constraints []Constraint
	Signs       []Sign
	// VarNames optionally labels the n0 decision variables. When nil,
	// names default to x1..xn0.
	VarNames []string
}

// NVars returns n0, the number of original decision variables.
func (m Model) NVars() int {
	return len(m.Cost)
}

// VarName returns the display name of original variable j (0-based).
func (m Model) VarName(j int) string {
	if j < len(m.VarNames) && m.VarNames[j] != "" {
		return m.VarNames[j]
	}
	return fmt.Sprintf("x%d", j+1)
}

// Validate checks the dimensional invariants of spec.md §3: every
// constraint's coefficient vector has length n0, and the sign vector has
// length n0.
func (m Model) Validate() error {
	n0 := m.NVars()
	if n0 == 0 {
		return &CanonicalError{Msg: "model has no decision variables"}
	}
	if len(m.Signs) != n0 {
		return &CanonicalError{Msg: fmt.Sprintf("sign vector length %d does not match %d decision variables", len(m.Signs), n0)}
	}
	for i, c := range m.Constraints {
		if len(c.Coeffs) != n0 {
			return &CanonicalError{Msg: fmt.Sprintf("constraint %d has %d coefficients, want %d", i, len(c.Coeffs), n0)}
		}
	}
	return nil
}

// HasIntegerRestrictions reports whether any variable is Integer or Binary.
func (m Model) HasIntegerRestrictions() bool {
	for _, s := range m.Signs {
		if s.Integral() {
			return true
		}
	}
	return false
}
