package fleet

import (
	"fmt"

	"go.uber.org/multierr"

	"fleetselect/pkg/constants"
)

// ValidatePool checks the candidate pool at the ingress boundary. It returns
// an accumulated error describing every violation rather than stopping at the
// first, and never substitutes defaults for bad fields. requiredFuelTypes may
// be nil, in which case no coverage check is performed (the diversity
// constraint then falls back to the fuel types present in the pool).
func ValidatePool(pool Pool, requiredFuelTypes []string) error {
	if len(pool) == 0 {
		return fmt.Errorf("vessel pool is empty")
	}

	var err error
	seen := make(map[string]bool, len(pool))
	for i, v := range pool {
		if v.ID == "" {
			err = multierr.Append(err, fmt.Errorf("vessel at index %d has an empty ID", i))
			continue
		}
		if seen[v.ID] {
			err = multierr.Append(err, fmt.Errorf("duplicate vessel ID %s", v.ID))
		}
		seen[v.ID] = true

		if v.FinalCost <= 0 {
			err = multierr.Append(err, fmt.Errorf("vessel %s: final cost %.2f must be positive", v.ID, v.FinalCost))
		}
		if v.CO2eTonnes < 0 {
			err = multierr.Append(err, fmt.Errorf("vessel %s: CO2e tonnes %.2f must be non-negative", v.ID, v.CO2eTonnes))
		}
		if v.DWT <= 0 {
			err = multierr.Append(err, fmt.Errorf("vessel %s: DWT %.2f must be positive", v.ID, v.DWT))
		}
		if v.SafetyScore < constants.SafetyScoreMin || v.SafetyScore > constants.SafetyScoreMax {
			err = multierr.Append(err, fmt.Errorf("vessel %s: safety score %.2f outside [%g, %g]",
				v.ID, v.SafetyScore, float64(constants.SafetyScoreMin), float64(constants.SafetyScoreMax)))
		}
		if v.FuelType == "" {
			err = multierr.Append(err, fmt.Errorf("vessel %s: fuel type is empty", v.ID))
		}
	}

	if len(requiredFuelTypes) > 0 {
		present := make(map[string]bool)
		for _, v := range pool {
			present[v.FuelType] = true
		}
		for _, ft := range requiredFuelTypes {
			if !present[ft] {
				err = multierr.Append(err, fmt.Errorf("required fuel type %q has no vessel in the pool", ft))
			}
		}
	}

	return err
}

// ValidateSelection re-derives the three constraint families from raw vessel
// records for an already-selected fleet. It mirrors the solver constraints
// independently of the solver and returns one message per violated
// constraint. Used by tests and post-solve assertions.
func ValidateSelection(pool Pool, selectedIDs []string, cargoDemand, minAvgSafety float64, requiredFuelTypes []string) []string {
	subset := pool.Subset(selectedIDs)
	var errors []string

	if dwt := subset.TotalDWT(); dwt < cargoDemand-constants.ComparisonTolerance {
		errors = append(errors, fmt.Sprintf("combined DWT %.0f < demand %.0f", dwt, cargoDemand))
	}

	if len(subset) > 0 {
		var safetySum float64
		for _, v := range subset {
			safetySum += v.SafetyScore
		}
		if avg := safetySum / float64(len(subset)); avg < minAvgSafety-constants.ComparisonTolerance {
			errors = append(errors, fmt.Sprintf("average safety score %.2f < %.2f", avg, minAvgSafety))
		}
	} else {
		errors = append(errors, "selection is empty")
	}

	if len(requiredFuelTypes) > 0 {
		present := make(map[string]bool)
		for _, v := range subset {
			present[v.FuelType] = true
		}
		for _, ft := range requiredFuelTypes {
			if !present[ft] {
				errors = append(errors, fmt.Sprintf("missing fuel type %q", ft))
			}
		}
	}

	return errors
}
