package sensitivity

import (
	"fmt"

	"go.uber.org/zap"

	"fleetselect/internal/fleet"
	"fleetselect/internal/selector"
	"fleetselect/pkg/constants"
)

// ShadowEntry describes one perturbed constraint. Price is the marginal cost
// per unit of tightening: (perturbed cost - base cost) / perturbation.
type ShadowEntry struct {
	Perturbation       float64
	PerturbedCost      float64
	PerturbedFleetSize int
	Price              float64
}

// ShadowReport holds the perturbation shadow prices for the demand and
// safety constraints. A nil entry means the perturbed problem was
// infeasible: the constraint sits at its feasibility boundary and its
// shadow price is undefined rather than zero.
type ShadowReport struct {
	BaseFeasible    bool
	BaseCost        float64
	BaseFleetSize   int
	CargoDemand     float64
	SafetyThreshold float64
	Demand          *ShadowEntry
	Safety          *ShadowEntry
}

// ShadowPrices perturbs the demand bound by +1% and the safety threshold by
// +0.1, re-solves each, and reports the marginal cost per unit of
// tightening. The base solve and both perturbed solves share all other
// parameters.
func ShadowPrices(logger *zap.Logger, pool fleet.Pool, params selector.Params) (ShadowReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := ShadowReport{
		CargoDemand:     params.CargoDemand,
		SafetyThreshold: params.MinAvgSafety,
	}

	base, err := selector.Select(logger, pool, params)
	if err != nil {
		return report, fmt.Errorf("shadow price base solve: %w", err)
	}
	if !base.Feasible() {
		logger.Warn("base case infeasible, no shadow prices available",
			zap.String("op", "sensitivity.ShadowPrices"),
			zap.String("status", base.Status.String()),
		)
		return report, nil
	}
	report.BaseFeasible = true
	report.BaseCost = base.Metrics.TotalCost
	report.BaseFleetSize = base.Metrics.FleetSize

	demandDelta := params.CargoDemand * constants.DemandPerturbationFraction
	demandParams := params
	demandParams.CargoDemand = params.CargoDemand + demandDelta
	demandRes, err := selector.Select(logger, pool, demandParams)
	if err != nil {
		return report, fmt.Errorf("shadow price demand solve: %w", err)
	}
	if demandRes.Feasible() {
		report.Demand = &ShadowEntry{
			Perturbation:       demandDelta,
			PerturbedCost:      demandRes.Metrics.TotalCost,
			PerturbedFleetSize: demandRes.Metrics.FleetSize,
			Price:              (demandRes.Metrics.TotalCost - report.BaseCost) / demandDelta,
		}
	}

	safetyDelta := constants.SafetyPerturbationDelta
	safetyParams := params
	safetyParams.MinAvgSafety = params.MinAvgSafety + safetyDelta
	safetyRes, err := selector.Select(logger, pool, safetyParams)
	if err != nil {
		return report, fmt.Errorf("shadow price safety solve: %w", err)
	}
	if safetyRes.Feasible() {
		report.Safety = &ShadowEntry{
			Perturbation:       safetyDelta,
			PerturbedCost:      safetyRes.Metrics.TotalCost,
			PerturbedFleetSize: safetyRes.Metrics.FleetSize,
			Price:              (safetyRes.Metrics.TotalCost - report.BaseCost) / safetyDelta,
		}
	}

	return report, nil
}
