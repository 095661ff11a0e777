package fleet

// Scenario redefines the cost-affecting carbon price and the minimum average
// safety threshold for one stress case. Scenarios never mutate vessel
// records; adjusted costs are derived on the fly.
type Scenario struct {
	CarbonPrice  float64 `yaml:"carbonPrice"`
	MinAvgSafety float64 `yaml:"minAvgSafety"`
}

// DefaultScenarios returns the built-in stress scenario set used by the
// robust min-max selector when the caller supplies none.
func DefaultScenarios() map[string]Scenario {
	return map[string]Scenario{
		"base":          {CarbonPrice: 80, MinAvgSafety: 3.0},
		"high_carbon":   {CarbonPrice: 160, MinAvgSafety: 3.0},
		"strict_safety": {CarbonPrice: 80, MinAvgSafety: 3.5},
		"stress":        {CarbonPrice: 200, MinAvgSafety: 3.5},
	}
}

// AdjustedCost returns the vessel's total cost under a different carbon
// price: the carbon component priced at basePrice is removed from FinalCost
// and re-added at the scenario price.
func AdjustedCost(v Vessel, scenarioPrice, basePrice float64) float64 {
	return v.FinalCost - v.CO2eTonnes*basePrice + v.CO2eTonnes*scenarioPrice
}

// AdjustPool returns a copy of the pool with FinalCost recomputed at the
// given carbon price. The original pool is left untouched.
func AdjustPool(pool Pool, carbonPrice, basePrice float64) Pool {
	adjusted := make(Pool, len(pool))
	for i, v := range pool {
		v.FinalCost = AdjustedCost(v, carbonPrice, basePrice)
		adjusted[i] = v
	}
	return adjusted
}

// CostsByScenario returns the selection's total adjusted cost per scenario,
// recomputed directly from vessel records. Used to verify the robust
// selector's worst-case variable against the formulation.
func CostsByScenario(pool Pool, scenarios map[string]Scenario, selectedIDs []string, basePrice float64) map[string]float64 {
	subset := pool.Subset(selectedIDs)
	costs := make(map[string]float64, len(scenarios))
	for name, sc := range scenarios {
		var total float64
		for _, v := range subset {
			total += AdjustedCost(v, sc.CarbonPrice, basePrice)
		}
		costs[name] = total
	}
	return costs
}
