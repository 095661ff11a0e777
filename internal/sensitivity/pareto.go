// Package sensitivity characterizes how the fleet selection responds to
// changing parameters: the epsilon-constraint Pareto frontier over CO2e,
// safety-threshold and carbon-price sweeps, perturbation shadow prices, and
// the diversity what-if comparison. Every sweep is a pure mapping from an
// input value list to an output row list; pools are never mutated and one
// infeasible point never aborts the rest.
package sensitivity

import (
	"fmt"

	"go.uber.org/zap"

	"fleetselect/internal/fleet"
	"fleetselect/internal/selector"
	"fleetselect/internal/solver"
	"fleetselect/pkg/constants"
	"fleetselect/pkg/mathutil"
)

// ParetoPoint is one step of the epsilon-constraint sweep. ShadowCarbonPrice
// is nil for the first feasible point and whenever the preceding feasible
// point achieved no CO2e reduction.
type ParetoPoint struct {
	CO2Cap            float64
	Feasible          bool
	Status            solver.Status
	SelectedIDs       []string
	Metrics           *fleet.Metrics
	ShadowCarbonPrice *float64
}

// ParetoSweep traces the cost/CO2e frontier with the epsilon-constraint
// method:
//
//  1. Solve the base problem (no cap); its achieved CO2e is the frontier's
//     loose end.
//  2. Minimize CO2e under the same feasibility constraints; that total is
//     the tightest achievable cap.
//  3. Sweep nPoints evenly spaced caps between the two, inclusive, solving
//     the constrained problem at each. Infeasible interior points are
//     recorded, not skipped.
//  4. Between consecutive feasible points, report the shadow carbon price
//     (cost increase per tonne of CO2e reduction).
//
// A nil slice is returned when the base problem itself is infeasible.
func ParetoSweep(logger *zap.Logger, pool fleet.Pool, params selector.Params, nPoints int) ([]ParetoPoint, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if nPoints <= 0 {
		nPoints = constants.DefaultParetoPoints
	}
	params.CO2Cap = nil

	base, err := selector.Select(logger, pool, params)
	if err != nil {
		return nil, fmt.Errorf("pareto base solve: %w", err)
	}
	if base.Status == solver.StatusUnknown {
		return nil, fmt.Errorf("pareto base solve stopped at its search limit; raise the solver limits and retry")
	}
	if !base.Feasible() {
		logger.Warn("base problem infeasible, no Pareto frontier",
			zap.String("op", "sensitivity.ParetoSweep"),
			zap.String("status", base.Status.String()),
		)
		return nil, nil
	}
	co2Max := base.Metrics.TotalCO2e

	minCO2, err := selector.Select(logger, pool, selector.MinCO2Params(params))
	if err != nil {
		return nil, fmt.Errorf("pareto min-CO2e solve: %w", err)
	}
	if !minCO2.Feasible() {
		// Cannot happen when the base is feasible, but surface it rather
		// than sweeping a bogus range.
		return nil, fmt.Errorf("min-CO2e problem %s although base is feasible", minCO2.Status)
	}
	co2Min := minCO2.Metrics.TotalCO2e

	points := make([]ParetoPoint, 0, nPoints)
	for _, cap := range mathutil.Linspace(co2Max, co2Min, nPoints) {
		capped := params
		c := cap
		capped.CO2Cap = &c

		res, err := selector.Select(logger, pool, capped)
		if err != nil {
			return nil, fmt.Errorf("pareto solve at cap %.2f: %w", cap, err)
		}
		point := ParetoPoint{CO2Cap: cap, Feasible: res.Feasible(), Status: res.Status}
		if res.Feasible() {
			point.SelectedIDs = res.SelectedIDs
			point.Metrics = res.Metrics
		}
		points = append(points, point)
	}

	attachShadowPrices(points)
	return points, nil
}

// attachShadowPrices fills ShadowCarbonPrice between consecutive feasible
// points. The sweep runs from the loose cap down to the tight one, so each
// step trades a cost increase for a CO2e reduction; no reduction means the
// same fleet was re-selected and the shadow price is undefined.
func attachShadowPrices(points []ParetoPoint) {
	var prev *ParetoPoint
	for i := range points {
		if !points[i].Feasible {
			continue
		}
		if prev != nil {
			reduction := prev.Metrics.TotalCO2e - points[i].Metrics.TotalCO2e
			increase := points[i].Metrics.TotalCost - prev.Metrics.TotalCost
			if reduction > constants.ComparisonTolerance {
				price := increase / reduction
				points[i].ShadowCarbonPrice = &price
			}
		}
		prev = &points[i]
	}
}
