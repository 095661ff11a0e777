package selector

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"fleetselect/internal/fleet"
	"fleetselect/internal/solver"
)

// RobustParams configures a min-max robust selection solve.
type RobustParams struct {
	// Scenarios is the non-empty named stress scenario set. Each scenario
	// redefines the carbon price and the safety threshold.
	Scenarios map[string]fleet.Scenario

	// BaseCarbonPrice is the carbon price already embedded in FinalCost.
	// Zero selects the configured default.
	BaseCarbonPrice float64

	// CargoDemand is the minimum combined DWT (scenario-independent).
	CargoDemand float64

	// RequireAllFuelTypes adds the diversity constraint family.
	RequireAllFuelTypes bool

	// FuelTypes overrides the diversity category set (nil = pool types).
	FuelTypes []string

	// Solver carries node/time limits through to the solver.
	Solver solver.Options
}

// RobustResult is the output of a min-max robust solve. WorstCaseCost is the
// optimal worst-case variable Z; CostsByScenario re-derives the selection's
// adjusted total per scenario from raw records so callers can verify
// WorstCaseCost equals its maximum.
type RobustResult struct {
	Status          solver.Status
	SelectedIDs     []string
	Metrics         *fleet.Metrics
	WorstCaseCost   float64
	CostsByScenario map[string]float64
}

// Feasible reports whether the solve produced a usable selection.
func (r RobustResult) Feasible() bool {
	return r.Status == solver.StatusOptimal
}

// SelectRobust finds one selection minimizing the worst-case total cost
// across all scenarios simultaneously. One continuous variable Z >= 0
// represents the worst case: the objective is minimize Z with
// sum(adjustedCost_s * x) <= Z per scenario s. Capacity and diversity are
// scenario-independent; the safety constraint is linearized at the
// strictest (maximum) scenario threshold so the selection holds under every
// scenario's bar.
func SelectRobust(logger *zap.Logger, pool fleet.Pool, params RobustParams) (RobustResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(pool) == 0 {
		return RobustResult{}, fmt.Errorf("vessel pool is empty")
	}
	if len(params.Scenarios) == 0 {
		return RobustResult{}, fmt.Errorf("robust selection requires a non-empty scenario map")
	}
	basePrice := defaultBasePrice(params.BaseCarbonPrice)

	strictestSafety := 0.0
	for _, sc := range params.Scenarios {
		if sc.MinAvgSafety > strictestSafety {
			strictestSafety = sc.MinAvgSafety
		}
	}

	prob := solver.NewProblem()
	varOf := make([]int, len(pool))
	for i, v := range pool {
		varOf[i] = prob.AddBinary("x_"+v.ID, 0)
	}
	zVar := prob.AddContinuous("worst_case_cost", 1)

	// Scenario rows in sorted name order for reproducible problem builds.
	names := make([]string, 0, len(params.Scenarios))
	for name := range params.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sc := params.Scenarios[name]
		terms := make([]solver.Term, 0, len(pool)+1)
		for i, v := range pool {
			terms = append(terms, solver.Term{
				Var:   varOf[i],
				Coeff: fleet.AdjustedCost(v, sc.CarbonPrice, basePrice),
			})
		}
		terms = append(terms, solver.Term{Var: zVar, Coeff: -1})
		prob.AddConstraint("scenario_"+name, terms, solver.LessEq, 0)
	}

	addFleetConstraints(prob, pool, varOf, Params{
		CargoDemand:         params.CargoDemand,
		MinAvgSafety:        strictestSafety,
		RequireAllFuelTypes: params.RequireAllFuelTypes,
		FuelTypes:           params.FuelTypes,
	})

	sol, err := prob.Solve(params.Solver)
	if err != nil {
		return RobustResult{}, fmt.Errorf("robust fleet selection solve: %w", err)
	}
	if sol.Status != solver.StatusOptimal {
		logger.Debug("robust fleet selection not optimal",
			zap.String("op", "selector.SelectRobust"),
			zap.String("status", sol.Status.String()),
			zap.Int("nodes", sol.Nodes),
		)
		return RobustResult{Status: sol.Status}, nil
	}

	ids := selectedIDs(pool, varOf, sol)
	metrics := fleet.Aggregate(pool, ids)
	costs := fleet.CostsByScenario(pool, params.Scenarios, ids, basePrice)
	logger.Debug("robust fleet selected",
		zap.String("op", "selector.SelectRobust"),
		zap.Int("fleetSize", metrics.FleetSize),
		zap.Float64("worstCaseCost", sol.Values[zVar]),
		zap.Int("nodes", sol.Nodes),
	)

	return RobustResult{
		Status:          sol.Status,
		SelectedIDs:     ids,
		Metrics:         &metrics,
		WorstCaseCost:   sol.Values[zVar],
		CostsByScenario: costs,
	}, nil
}
