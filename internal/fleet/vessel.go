// Package fleet defines the vessel data model shared by every selector and
// sweep, and includes functions for validating candidate pools, aggregating
// fleet metrics, and deriving scenario-adjusted costs.
package fleet

// Vessel is one candidate unit in the selection pool. All cost fields are in
// USD for one month of operation; tonnage fields are in metric tonnes.
type Vessel struct {
	// ID uniquely identifies the vessel across the pool.
	ID string

	// DWT is the deadweight tonnage contributing to the cargo demand
	// constraint.
	DWT float64

	// SafetyScore is the per-vessel safety rating on a 1-5 scale.
	SafetyScore float64

	// FuelType is the main engine fuel type, used by the diversity
	// constraint.
	FuelType string

	// BaseCost is the scenario-independent portion of the monthly cost
	// (capex recovery, crew, maintenance).
	BaseCost float64

	// CO2eTonnes is the monthly CO2-equivalent emission. It is both the
	// variable cost basis (carbon cost = CO2eTonnes * carbon price) and the
	// secondary metric swept by the Pareto frontier.
	CO2eTonnes float64

	// FuelTonnes is the monthly fuel consumption, carried through to fleet
	// metrics.
	FuelTonnes float64

	// FinalCost is the total monthly cost at the base carbon price and is
	// the default objective coefficient.
	FinalCost float64
}

// Pool is the full candidate set. Pools are read-only inputs; selectors and
// sweeps never mutate them and derive adjusted copies instead.
type Pool []Vessel

// FuelTypes returns the distinct fuel types present in the pool, in order of
// first appearance.
func (p Pool) FuelTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, v := range p {
		if !seen[v.FuelType] {
			seen[v.FuelType] = true
			types = append(types, v.FuelType)
		}
	}
	return types
}

// Subset returns the vessels whose IDs appear in ids.
func (p Pool) Subset(ids []string) Pool {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var subset Pool
	for _, v := range p {
		if want[v.ID] {
			subset = append(subset, v)
		}
	}
	return subset
}

// ByID returns the vessel with the given ID, or false if absent.
func (p Pool) ByID(id string) (Vessel, bool) {
	for _, v := range p {
		if v.ID == id {
			return v, true
		}
	}
	return Vessel{}, false
}

// TotalDWT returns the summed deadweight tonnage of the pool.
func (p Pool) TotalDWT() float64 {
	var total float64
	for _, v := range p {
		total += v.DWT
	}
	return total
}
