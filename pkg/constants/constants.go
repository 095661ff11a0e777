// Package constants provides shared constants for the fleetselect application.
package constants

// Demand and constraint defaults
const (
	// DefaultCargoDemand is the monthly cargo demand in tonnes
	// (54,920,000 tonnes annual / 12 months).
	DefaultCargoDemand = 4_576_667.0

	// DefaultSafetyThreshold is the minimum average fleet safety score.
	DefaultSafetyThreshold = 3.0

	// DefaultCarbonPrice is the base carbon price in USD per tonne CO2e.
	DefaultCarbonPrice = 80.0

	// SafetyScoreMin and SafetyScoreMax bound the per-vessel safety scale.
	SafetyScoreMin = 1.0
	SafetyScoreMax = 5.0
)

// Sweep defaults
const (
	// DefaultParetoPoints is the number of epsilon-constraint steps in the
	// Pareto frontier sweep.
	DefaultParetoPoints = 15

	// DemandPerturbationFraction is the relative demand perturbation used
	// for shadow price estimation (+1%).
	DemandPerturbationFraction = 0.01

	// SafetyPerturbationDelta is the absolute safety-threshold perturbation
	// used for shadow price estimation (+0.1).
	SafetyPerturbationDelta = 0.1
)

// DefaultSafetyThresholds is the default safety-threshold sweep list.
func DefaultSafetyThresholds() []float64 {
	return []float64{3.0, 3.5, 4.0, 4.5}
}

// DefaultCarbonPrices is the default carbon-price sweep list in USD/tonne.
func DefaultCarbonPrices() []float64 {
	return []float64{80, 120, 160, 200}
}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Numeric tolerances
const (
	// CostTolerance is the tolerance for cost comparisons (1 dollar out of
	// costs in the hundreds of thousands).
	CostTolerance = 1.0

	// ComparisonTolerance is the general tolerance for float comparisons.
	ComparisonTolerance = 1e-6
)
