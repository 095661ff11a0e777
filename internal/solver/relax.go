package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// errNodeInfeasible marks an infeasible LP relaxation; it prunes the node
// rather than surfacing to the caller.
var errNodeInfeasible = errors.New("relaxation infeasible")

// fixedFree marks a binary variable not yet fixed by branching.
const fixedFree int8 = -1

// solveRelaxation solves the LP relaxation of the problem with the given
// branching assignment (one entry per variable; continuous variables stay
// fixedFree). It returns the relaxation objective and one value per problem
// variable.
func (p *Problem) solveRelaxation(fixed []int8) (float64, []float64, error) {
	n := len(p.costs)

	// Map free variables to LP columns; fold fixed ones into constants.
	colOf := make([]int, n)
	var free []int
	var offset float64
	for i := 0; i < n; i++ {
		if p.binary[i] && fixed[i] != fixedFree {
			colOf[i] = -1
			offset += p.costs[i] * float64(fixed[i])
			continue
		}
		colOf[i] = len(free)
		free = append(free, i)
	}

	// Rewrite every constraint in <= form over the free columns.
	type row struct {
		coeffs []float64
		bound  float64
	}
	var rows []row
	for _, c := range p.cons {
		coeffs := make([]float64, len(free))
		bound := c.bound
		nonzero := false
		for _, t := range c.terms {
			if col := colOf[t.Var]; col >= 0 {
				coeffs[col] += t.Coeff
				if t.Coeff != 0 {
					nonzero = true
				}
			} else {
				bound -= t.Coeff * float64(fixed[t.Var])
			}
		}
		if c.sense == GreaterEq {
			for j := range coeffs {
				coeffs[j] = -coeffs[j]
			}
			bound = -bound
		}
		if !nonzero {
			// Fully fixed constraint: feasibility check only.
			if bound < -integerTol {
				return 0, nil, errNodeInfeasible
			}
			continue
		}
		rows = append(rows, row{coeffs: coeffs, bound: bound})
	}

	// Upper bounds for free binaries (x <= 1). Lower bounds are implicit in
	// the standard form.
	for col, i := range free {
		if !p.binary[i] {
			continue
		}
		coeffs := make([]float64, len(free))
		coeffs[col] = 1
		rows = append(rows, row{coeffs: coeffs, bound: 1})
	}

	if len(free) == 0 {
		// Everything fixed and all constraints satisfied.
		values := p.assembleValues(fixed, nil, nil)
		return offset, values, nil
	}

	// Standard form: minimize c'x subject to Ax = b, x >= 0, with one slack
	// column per row. Rows with negative bounds are negated so b >= 0.
	nRows := len(rows)
	nCols := len(free) + nRows
	a := mat.NewDense(nRows, nCols, nil)
	b := make([]float64, nRows)
	c := make([]float64, nCols)
	for col, i := range free {
		c[col] = p.costs[i]
	}
	for r, rw := range rows {
		sign := 1.0
		if rw.bound < 0 {
			sign = -1.0
		}
		for col, coeff := range rw.coeffs {
			a.Set(r, col, sign*coeff)
		}
		a.Set(r, len(free)+r, sign)
		b[r] = sign * rw.bound
	}

	opt, x, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return 0, nil, errNodeInfeasible
		}
		return 0, nil, err
	}
	if math.IsInf(opt, -1) {
		return 0, nil, lp.ErrUnbounded
	}

	values := p.assembleValues(fixed, free, x[:len(free)])
	return opt + offset, values, nil
}

// assembleValues merges fixed assignments with the relaxation values of the
// free variables into one slice indexed by problem variable.
func (p *Problem) assembleValues(fixed []int8, free []int, freeVals []float64) []float64 {
	values := make([]float64, len(p.costs))
	for i := range values {
		if p.binary[i] && fixed[i] != fixedFree {
			values[i] = float64(fixed[i])
		}
	}
	for col, i := range free {
		values[i] = freeVals[col]
	}
	return values
}
