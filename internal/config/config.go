// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"fleetselect/internal/fleet"
	"fleetselect/internal/solver"
	"fleetselect/pkg/constants"
)

// Configuration holds all configuration for fleetselect.
type Configuration struct {
	// CargoDemand is the monthly cargo demand in tonnes.
	CargoDemand float64

	// SafetyThreshold is the minimum average fleet safety score.
	SafetyThreshold float64

	// CarbonPrice is the base carbon price embedded in vessel final costs.
	CarbonPrice float64

	// RequireAllFuelTypes enables the fuel diversity constraint.
	RequireAllFuelTypes bool

	// RequiredFuelTypes optionally pins the diversity category set. Empty
	// means the fuel types present in the vessel pool.
	RequiredFuelTypes []string

	// SafetyThresholds is the safety sweep value list.
	SafetyThresholds []float64

	// CarbonPrices is the carbon price sweep value list.
	CarbonPrices []float64

	// ParetoPoints is the number of epsilon-constraint sweep steps.
	ParetoPoints int

	// Scenarios is the named stress scenario set for robust selection.
	// Empty means the built-in default set.
	Scenarios map[string]fleet.Scenario

	Solver  SolverConfig  `yaml:"solver,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// SolverConfig bounds the branch-and-bound search.
type SolverConfig struct {
	TimeLimitSeconds int `yaml:"timeLimitSeconds,omitempty"`
	MaxNodes         int `yaml:"maxNodes,omitempty"`
}

// Options converts the solver configuration to solver options.
func (s SolverConfig) Options() solver.Options {
	opts := solver.Options{MaxNodes: s.MaxNodes}
	if s.TimeLimitSeconds > 0 {
		opts.TimeLimit = time.Duration(s.TimeLimitSeconds) * time.Second
	}
	return opts
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there, applying defaults for absent keys.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	v.SetDefault("cargoDemand", constants.DefaultCargoDemand)
	v.SetDefault("safetyThreshold", constants.DefaultSafetyThreshold)
	v.SetDefault("carbonPrice", constants.DefaultCarbonPrice)
	v.SetDefault("requireAllFuelTypes", true)
	v.SetDefault("safetyThresholds", constants.DefaultSafetyThresholds())
	v.SetDefault("carbonPrices", constants.DefaultCarbonPrices())
	v.SetDefault("paretoPoints", constants.DefaultParetoPoints)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if len(configuration.Scenarios) == 0 {
		configuration.Scenarios = fleet.DefaultScenarios()
	}

	return &configuration, nil
}

// ValidateConfiguration checks parameter sanity. Values that would make
// every solve meaningless are errors; soft issues come back as warnings.
func (conf *Configuration) ValidateConfiguration() ([]string, error) {
	if conf.CargoDemand <= 0 {
		return nil, fmt.Errorf("cargo demand %.2f must be positive", conf.CargoDemand)
	}
	if conf.SafetyThreshold < constants.SafetyScoreMin || conf.SafetyThreshold > constants.SafetyScoreMax {
		return nil, fmt.Errorf("safety threshold %.2f outside [%g, %g]",
			conf.SafetyThreshold, float64(constants.SafetyScoreMin), float64(constants.SafetyScoreMax))
	}
	if conf.CarbonPrice < 0 {
		return nil, fmt.Errorf("carbon price %.2f must be non-negative", conf.CarbonPrice)
	}
	for name, sc := range conf.Scenarios {
		if sc.CarbonPrice < 0 {
			return nil, fmt.Errorf("scenario %s: carbon price %.2f must be non-negative", name, sc.CarbonPrice)
		}
		if sc.MinAvgSafety < constants.SafetyScoreMin || sc.MinAvgSafety > constants.SafetyScoreMax {
			return nil, fmt.Errorf("scenario %s: safety threshold %.2f outside [%g, %g]",
				name, sc.MinAvgSafety, float64(constants.SafetyScoreMin), float64(constants.SafetyScoreMax))
		}
	}

	var warnings []string
	if conf.ParetoPoints < 2 {
		warnings = append(warnings, fmt.Sprintf("paretoPoints %d is below 2; the frontier degenerates to its endpoints", conf.ParetoPoints))
	}
	if len(conf.SafetyThresholds) == 0 {
		warnings = append(warnings, "safetyThresholds is empty; the safety sweep will produce no rows")
	}
	if len(conf.CarbonPrices) == 0 {
		warnings = append(warnings, "carbonPrices is empty; the carbon price sweep will produce no rows")
	}
	return warnings, nil
}
