// Package selector builds fleet selection problems on top of the solver
// package: cost-minimizing base selection, the epsilon-constrained variant
// used by the Pareto sweep, and the min-max robust selection across stress
// scenarios.
package selector

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"fleetselect/internal/fleet"
	"fleetselect/internal/solver"
	"fleetselect/pkg/constants"
)

// Params configures one selection solve.
type Params struct {
	// CargoDemand is the minimum combined DWT of the selected fleet.
	CargoDemand float64

	// MinAvgSafety is the minimum average fleet safety score. The
	// constraint is linearized as sum((safety_i - min) * x_i) >= 0, which
	// is algebraically equivalent to the ratio form and linear in x.
	MinAvgSafety float64

	// RequireAllFuelTypes adds one covering constraint per fuel type.
	RequireAllFuelTypes bool

	// FuelTypes overrides the diversity category set. When nil, the fuel
	// types present in the pool are required.
	FuelTypes []string

	// CO2Cap, when non-nil, caps the selection's total CO2e tonnes. Used
	// by the epsilon-constraint Pareto sweep.
	CO2Cap *float64

	// Objective overrides the cost coefficient per vessel. Defaults to
	// FinalCost. The Pareto sweep uses this to minimize CO2e instead.
	Objective func(fleet.Vessel) float64

	// Solver carries node/time limits through to the solver.
	Solver solver.Options
}

// Result is the plain output of a selection solve. Metrics is nil unless
// Status is StatusOptimal. SelectedIDs is sorted ascending.
type Result struct {
	Status      solver.Status
	SelectedIDs []string
	Metrics     *fleet.Metrics

	// Objective is the optimal objective value (total FinalCost by default,
	// or whatever Params.Objective measures).
	Objective float64
}

// Feasible reports whether the solve produced a usable selection.
func (r Result) Feasible() bool {
	return r.Status == solver.StatusOptimal
}

// Select solves the base selection problem: minimize total cost subject to
// cargo demand, linearized average safety, and (optionally) fuel type
// diversity and a CO2e cap. Infeasibility is returned as a status, never an
// error; errors indicate invalid input or solver failure.
func Select(logger *zap.Logger, pool fleet.Pool, params Params) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(pool) == 0 {
		return Result{}, fmt.Errorf("vessel pool is empty")
	}

	objective := params.Objective
	if objective == nil {
		objective = func(v fleet.Vessel) float64 { return v.FinalCost }
	}

	prob := solver.NewProblem()
	varOf := make([]int, len(pool))
	for i, v := range pool {
		varOf[i] = prob.AddBinary("x_"+v.ID, objective(v))
	}

	addFleetConstraints(prob, pool, varOf, params)

	if params.CO2Cap != nil {
		terms := make([]solver.Term, len(pool))
		for i, v := range pool {
			terms[i] = solver.Term{Var: varOf[i], Coeff: v.CO2eTonnes}
		}
		prob.AddConstraint("co2_cap", terms, solver.LessEq, *params.CO2Cap)
	}

	sol, err := prob.Solve(params.Solver)
	if err != nil {
		return Result{}, fmt.Errorf("fleet selection solve: %w", err)
	}
	if sol.Status != solver.StatusOptimal {
		logger.Debug("fleet selection not optimal",
			zap.String("op", "selector.Select"),
			zap.String("status", sol.Status.String()),
			zap.Int("nodes", sol.Nodes),
		)
		return Result{Status: sol.Status}, nil
	}

	ids := selectedIDs(pool, varOf, sol)
	metrics := fleet.Aggregate(pool, ids)
	logger.Debug("fleet selected",
		zap.String("op", "selector.Select"),
		zap.Int("fleetSize", metrics.FleetSize),
		zap.Float64("objective", sol.Objective),
		zap.Int("nodes", sol.Nodes),
	)

	return Result{
		Status:      sol.Status,
		SelectedIDs: ids,
		Metrics:     &metrics,
		Objective:   sol.Objective,
	}, nil
}

// addFleetConstraints installs the demand, safety, and diversity constraint
// families shared by the base and robust selectors.
func addFleetConstraints(prob *solver.Problem, pool fleet.Pool, varOf []int, params Params) {
	demand := make([]solver.Term, len(pool))
	safety := make([]solver.Term, len(pool))
	for i, v := range pool {
		demand[i] = solver.Term{Var: varOf[i], Coeff: v.DWT}
		safety[i] = solver.Term{Var: varOf[i], Coeff: v.SafetyScore - params.MinAvgSafety}
	}
	prob.AddConstraint("dwt_demand", demand, solver.GreaterEq, params.CargoDemand)
	prob.AddConstraint("safety_average", safety, solver.GreaterEq, 0)

	if !params.RequireAllFuelTypes {
		return
	}
	fuelTypes := params.FuelTypes
	if fuelTypes == nil {
		fuelTypes = pool.FuelTypes()
	}
	sorted := make([]string, len(fuelTypes))
	copy(sorted, fuelTypes)
	sort.Strings(sorted)
	for _, ft := range sorted {
		var terms []solver.Term
		for i, v := range pool {
			if v.FuelType == ft {
				terms = append(terms, solver.Term{Var: varOf[i], Coeff: 1})
			}
		}
		prob.AddConstraint("fuel_type_"+ft, terms, solver.GreaterEq, 1)
	}
}

// selectedIDs extracts the chosen vessel IDs in ascending order.
func selectedIDs(pool fleet.Pool, varOf []int, sol solver.Solution) []string {
	ids := make([]string, 0, len(pool))
	for i := range pool {
		if sol.Values[varOf[i]] > 0.5 {
			ids = append(ids, pool[i].ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// MinCO2Params returns a copy of params that minimizes total CO2e under the
// same feasibility constraints, with any CO2 cap removed. The Pareto sweep
// uses this to find the tightest achievable emission bound.
func MinCO2Params(params Params) Params {
	params.CO2Cap = nil
	params.Objective = func(v fleet.Vessel) float64 { return v.CO2eTonnes }
	return params
}

// defaultBasePrice resolves a zero base carbon price to the configured
// default so callers can leave it unset.
func defaultBasePrice(basePrice float64) float64 {
	if basePrice == 0 {
		return constants.DefaultCarbonPrice
	}
	return basePrice
}
