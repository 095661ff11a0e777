// Package solver models binary selection problems with a linear objective
// and linear constraints, and solves them by branch-and-bound over the LP
// relaxation. It is the only package that touches the underlying LP backend
// (gonum's simplex); callers see solver types exclusively, so the backend
// can be swapped without touching selection logic.
package solver

import (
	"fmt"
	"time"
)

// Status reports the outcome of a solve.
type Status int

const (
	// StatusOptimal means a provably optimal integer solution was found.
	StatusOptimal Status = iota

	// StatusInfeasible means no assignment satisfies all constraints.
	// Infeasibility is an expected domain outcome, not an error.
	StatusInfeasible

	// StatusUnknown means the search stopped at a node or time limit before
	// proving either of the above. Callers must not conflate this with
	// infeasibility.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Sense is the comparator of a linear constraint.
type Sense int

const (
	// LessEq constrains the weighted sum to be <= the bound.
	LessEq Sense = iota

	// GreaterEq constrains the weighted sum to be >= the bound.
	GreaterEq
)

// Term is one variable's coefficient in a constraint.
type Term struct {
	Var   int
	Coeff float64
}

type constraint struct {
	name  string
	terms []Term
	sense Sense
	bound float64
}

// Problem is a minimization problem over binary variables plus optional
// non-negative continuous variables. Variables are referenced by the index
// returned from AddBinary / AddContinuous.
type Problem struct {
	costs  []float64
	binary []bool
	names  []string
	cons   []constraint
}

// NewProblem returns an empty minimization problem.
func NewProblem() *Problem {
	return &Problem{}
}

// AddBinary adds a 0/1 decision variable with the given objective
// coefficient and returns its index.
func (p *Problem) AddBinary(name string, cost float64) int {
	p.costs = append(p.costs, cost)
	p.binary = append(p.binary, true)
	p.names = append(p.names, name)
	return len(p.costs) - 1
}

// AddContinuous adds a continuous decision variable with lower bound zero
// and the given objective coefficient, and returns its index.
func (p *Problem) AddContinuous(name string, cost float64) int {
	p.costs = append(p.costs, cost)
	p.binary = append(p.binary, false)
	p.names = append(p.names, name)
	return len(p.costs) - 1
}

// AddConstraint adds the linear constraint sum(coeff*var) <sense> bound.
func (p *Problem) AddConstraint(name string, terms []Term, sense Sense, bound float64) {
	p.cons = append(p.cons, constraint{name: name, terms: terms, sense: sense, bound: bound})
}

// NumVars returns the number of decision variables added so far.
func (p *Problem) NumVars() int {
	return len(p.costs)
}

// Options controls solve limits. Zero values select the defaults.
type Options struct {
	// TimeLimit bounds wall-clock search time. Default 30s.
	TimeLimit time.Duration

	// MaxNodes bounds the number of branch-and-bound nodes explored.
	// Default 1,000,000.
	MaxNodes int
}

const (
	defaultTimeLimit = 30 * time.Second
	defaultMaxNodes  = 1_000_000

	// integerTol is the distance from 0/1 within which a relaxation value
	// counts as integral.
	integerTol = 1e-6

	// pruneTol guards bound pruning against float noise.
	pruneTol = 1e-6

	// simplexTol is passed through to the LP backend.
	simplexTol = 1e-10
)

// Solution is the result of a solve. Values holds one entry per variable in
// index order; for StatusOptimal binaries are exact 0 or 1. For
// StatusUnknown, Values holds the best incumbent found (possibly none, in
// which case it is nil). Objective is meaningful only when Values is set.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
	Nodes     int
}

// Selected returns the indices of binary variables set to 1.
func (s Solution) Selected() []int {
	var idx []int
	for i, v := range s.Values {
		if v > 0.5 {
			idx = append(idx, i)
		}
	}
	return idx
}
