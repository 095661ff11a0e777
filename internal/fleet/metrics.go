package fleet

import "math"

// Metrics summarizes a selected fleet. AvgSafety is a simple per-vessel mean
// (fleet quality in this domain is rated per vessel, not per tonne) and is
// NaN when the selection is empty.
type Metrics struct {
	TotalDWT       float64
	TotalCost      float64
	AvgSafety      float64
	FuelTypeCount  int
	FleetSize      int
	TotalCO2e      float64
	TotalFuel      float64
	FuelTypeCounts map[string]int
}

// Aggregate computes fleet metrics for the selected IDs against the pool.
// An empty selection yields zeroed totals with AvgSafety set to NaN rather
// than dividing by a zero fleet size.
func Aggregate(pool Pool, selectedIDs []string) Metrics {
	subset := pool.Subset(selectedIDs)

	m := Metrics{
		FleetSize:      len(subset),
		AvgSafety:      math.NaN(),
		FuelTypeCounts: make(map[string]int),
	}

	var safetySum float64
	for _, v := range subset {
		m.TotalDWT += v.DWT
		m.TotalCost += v.FinalCost
		m.TotalCO2e += v.CO2eTonnes
		m.TotalFuel += v.FuelTonnes
		safetySum += v.SafetyScore
		m.FuelTypeCounts[v.FuelType]++
	}
	m.FuelTypeCount = len(m.FuelTypeCounts)
	if m.FleetSize > 0 {
		m.AvgSafety = safetySum / float64(m.FleetSize)
	}

	return m
}

// Efficiency holds derived per-unit ratios for a selected fleet.
type Efficiency struct {
	CostPerDWT    float64
	CostPerVessel float64
	DWTPerVessel  float64
	CO2PerDWT     float64
	Utilization   float64
}

// ComputeEfficiency derives per-unit ratios from a selection. Ratios with a
// zero denominator are NaN. Utilization is total DWT over cargo demand.
func ComputeEfficiency(pool Pool, selectedIDs []string, cargoDemand float64) Efficiency {
	m := Aggregate(pool, selectedIDs)

	eff := Efficiency{
		CostPerDWT:    math.NaN(),
		CostPerVessel: math.NaN(),
		DWTPerVessel:  math.NaN(),
		CO2PerDWT:     math.NaN(),
		Utilization:   math.NaN(),
	}
	if m.TotalDWT > 0 {
		eff.CostPerDWT = m.TotalCost / m.TotalDWT
		eff.CO2PerDWT = m.TotalCO2e / m.TotalDWT
	}
	if m.FleetSize > 0 {
		eff.CostPerVessel = m.TotalCost / float64(m.FleetSize)
		eff.DWTPerVessel = m.TotalDWT / float64(m.FleetSize)
	}
	if cargoDemand > 0 {
		eff.Utilization = m.TotalDWT / cargoDemand
	}
	return eff
}
