package sensitivity

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"fleetselect/internal/fleet"
	"fleetselect/internal/selector"
	"fleetselect/internal/solver"
	"fleetselect/pkg/constants"
)

// SweepResult is one row of a parameter sweep. Metrics is nil when the
// problem was infeasible at this value; the row itself is never omitted.
// Status distinguishes proven infeasibility from a solver that hit its
// search limits.
type SweepResult struct {
	Value       float64
	Feasible    bool
	Status      solver.Status
	SelectedIDs []string
	Metrics     *fleet.Metrics
}

// SafetySweep re-solves the base selection at each safety threshold and
// collects the full metrics snapshot per value. The input order is
// preserved in the output. A nil threshold list selects the defaults.
func SafetySweep(logger *zap.Logger, pool fleet.Pool, thresholds []float64, params selector.Params) ([]SweepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if thresholds == nil {
		thresholds = constants.DefaultSafetyThresholds()
	}

	results := make([]SweepResult, 0, len(thresholds))
	for _, t := range thresholds {
		p := params
		p.MinAvgSafety = t
		res, err := selector.Select(logger, pool, p)
		if err != nil {
			return nil, fmt.Errorf("safety sweep at threshold %.2f: %w", t, err)
		}
		results = append(results, toSweepResult(t, res))
	}
	return results, nil
}

// CarbonPriceSweep re-solves the base selection at each carbon price. For
// every price a fresh adjusted pool is derived (final cost recomputed at
// that price); the physical fields and the original pool are unchanged. A
// nil price list selects the defaults; a zero basePrice selects the default
// base carbon price.
func CarbonPriceSweep(logger *zap.Logger, pool fleet.Pool, prices []float64, basePrice float64, params selector.Params) ([]SweepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prices == nil {
		prices = constants.DefaultCarbonPrices()
	}
	if basePrice == 0 {
		basePrice = constants.DefaultCarbonPrice
	}

	results := make([]SweepResult, 0, len(prices))
	for _, price := range prices {
		adjusted := fleet.AdjustPool(pool, price, basePrice)
		res, err := selector.Select(logger, adjusted, params)
		if err != nil {
			return nil, fmt.Errorf("carbon price sweep at %.2f: %w", price, err)
		}
		// Metrics come from the adjusted pool so TotalCost reflects the
		// swept price.
		results = append(results, toSweepResult(price, res))
	}
	return results, nil
}

func toSweepResult(value float64, res selector.Result) SweepResult {
	row := SweepResult{Value: value, Feasible: res.Feasible(), Status: res.Status}
	if res.Feasible() {
		row.SelectedIDs = res.SelectedIDs
		row.Metrics = res.Metrics
	}
	return row
}

// WhatIfBranch is one side of the diversity comparison.
type WhatIfBranch struct {
	Feasible    bool
	SelectedIDs []string
	Metrics     *fleet.Metrics
}

// DiversityWhatIf compares selection with and without the fuel diversity
// constraint. CostSavings and FleetSizeDiff are nil unless both branches
// are feasible; FuelTypesLost lists types covered with the constraint but
// absent without it.
type DiversityWhatIf struct {
	With          WhatIfBranch
	Without       WhatIfBranch
	CostSavings   *float64
	FleetSizeDiff *int
	FuelTypesLost []string
}

// RunDiversityWhatIf solves both sides of the diversity comparison.
func RunDiversityWhatIf(logger *zap.Logger, pool fleet.Pool, params selector.Params) (DiversityWhatIf, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	withParams := params
	withParams.RequireAllFuelTypes = true
	withRes, err := selector.Select(logger, pool, withParams)
	if err != nil {
		return DiversityWhatIf{}, fmt.Errorf("diversity what-if (with): %w", err)
	}

	withoutParams := params
	withoutParams.RequireAllFuelTypes = false
	withoutRes, err := selector.Select(logger, pool, withoutParams)
	if err != nil {
		return DiversityWhatIf{}, fmt.Errorf("diversity what-if (without): %w", err)
	}

	out := DiversityWhatIf{
		With:    toWhatIfBranch(withRes),
		Without: toWhatIfBranch(withoutRes),
	}
	if out.With.Feasible && out.Without.Feasible {
		savings := out.Without.Metrics.TotalCost - out.With.Metrics.TotalCost
		diff := out.Without.Metrics.FleetSize - out.With.Metrics.FleetSize
		out.CostSavings = &savings
		out.FleetSizeDiff = &diff
		for ft := range out.With.Metrics.FuelTypeCounts {
			if out.Without.Metrics.FuelTypeCounts[ft] == 0 {
				out.FuelTypesLost = append(out.FuelTypesLost, ft)
			}
		}
		sort.Strings(out.FuelTypesLost)
	}
	return out, nil
}

func toWhatIfBranch(res selector.Result) WhatIfBranch {
	b := WhatIfBranch{Feasible: res.Feasible()}
	if res.Feasible() {
		b.SelectedIDs = res.SelectedIDs
		b.Metrics = res.Metrics
	}
	return b
}
