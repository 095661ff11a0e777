package solver

import (
	"fmt"
	"math"
	"time"
)

// Solve runs depth-first branch-and-bound on the binary variables. The
// exploration order is deterministic for a fixed problem: variables are
// branched most-fractional-first (lowest index on ties) with the x=1 child
// explored before x=0, and the incumbent is only replaced by a strictly
// better objective. Ties between equally optimal selections therefore
// resolve reproducibly, though the specific tie-break is an implementation
// detail callers should not rely on.
func (p *Problem) Solve(opts Options) (Solution, error) {
	if len(p.costs) == 0 {
		return Solution{}, fmt.Errorf("problem has no variables")
	}

	timeLimit := opts.TimeLimit
	if timeLimit <= 0 {
		timeLimit = defaultTimeLimit
	}
	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}
	deadline := time.Now().Add(timeLimit)

	root := make([]int8, len(p.costs))
	for i := range root {
		root[i] = fixedFree
	}
	stack := [][]int8{root}

	incumbent := math.Inf(1)
	var best []float64
	nodes := 0
	limited := false

	for len(stack) > 0 {
		if nodes >= maxNodes || time.Now().After(deadline) {
			limited = true
			break
		}
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		obj, values, err := p.solveRelaxation(node)
		if err == errNodeInfeasible {
			continue
		}
		if err != nil {
			return Solution{Nodes: nodes}, fmt.Errorf("LP relaxation: %w", err)
		}
		if obj >= incumbent-pruneTol {
			continue
		}

		branch := p.pickBranchVar(values, node)
		if branch < 0 {
			// Integral: new incumbent.
			incumbent = obj
			best = snapBinaries(values, p.binary)
			continue
		}

		zero := make([]int8, len(node))
		one := make([]int8, len(node))
		copy(zero, node)
		copy(one, node)
		zero[branch] = 0
		one[branch] = 1
		stack = append(stack, zero, one)
	}

	if limited {
		sol := Solution{Status: StatusUnknown, Nodes: nodes}
		if best != nil {
			sol.Objective = incumbent
			sol.Values = best
		}
		return sol, nil
	}
	if best == nil {
		return Solution{Status: StatusInfeasible, Nodes: nodes}, nil
	}
	return Solution{Status: StatusOptimal, Objective: incumbent, Values: best, Nodes: nodes}, nil
}

// pickBranchVar returns the most fractional free binary variable, or -1 when
// the relaxation is integral on all binaries.
func (p *Problem) pickBranchVar(values []float64, fixed []int8) int {
	branch := -1
	bestFrac := integerTol
	for i, v := range values {
		if !p.binary[i] || fixed[i] != fixedFree {
			continue
		}
		frac := math.Min(v, 1-v)
		if frac > bestFrac {
			bestFrac = frac
			branch = i
		}
	}
	return branch
}

// snapBinaries copies values with binary entries rounded to exact 0/1.
func snapBinaries(values []float64, binary []bool) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for i, isBin := range binary {
		if isBin {
			out[i] = math.Round(out[i])
		}
	}
	return out
}
