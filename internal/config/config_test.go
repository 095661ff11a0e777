package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fleetselect/pkg/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfig(t, `
cargoDemand: 500000
safetyThreshold: 3.5
carbonPrice: 120
requireAllFuelTypes: true
requiredFuelTypes:
  - diesel
  - lng
safetyThresholds: [3.0, 3.5]
carbonPrices: [80, 160]
paretoPoints: 5
scenarios:
  base:
    carbonPrice: 80
    minAvgSafety: 3.0
  stress:
    carbonPrice: 200
    minAvgSafety: 3.5
solver:
  timeLimitSeconds: 10
  maxNodes: 5000
logging:
  level: debug
  format: console
output:
  format: csv
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}
	if conf.CargoDemand != 500000 {
		t.Errorf("CargoDemand = %v, want 500000", conf.CargoDemand)
	}
	if conf.SafetyThreshold != 3.5 {
		t.Errorf("SafetyThreshold = %v, want 3.5", conf.SafetyThreshold)
	}
	if conf.CarbonPrice != 120 {
		t.Errorf("CarbonPrice = %v, want 120", conf.CarbonPrice)
	}
	if len(conf.RequiredFuelTypes) != 2 || conf.RequiredFuelTypes[0] != "diesel" {
		t.Errorf("RequiredFuelTypes = %v", conf.RequiredFuelTypes)
	}
	if conf.ParetoPoints != 5 {
		t.Errorf("ParetoPoints = %d, want 5", conf.ParetoPoints)
	}
	if len(conf.Scenarios) != 2 {
		t.Fatalf("Scenarios = %v, want 2 entries", conf.Scenarios)
	}
	if sc := conf.Scenarios["stress"]; sc.CarbonPrice != 200 || sc.MinAvgSafety != 3.5 {
		t.Errorf("stress scenario = %+v", sc)
	}
	if conf.Solver.MaxNodes != 5000 {
		t.Errorf("Solver.MaxNodes = %d, want 5000", conf.Solver.MaxNodes)
	}
	if conf.Logging.Level != "debug" || conf.Output.Format != "csv" {
		t.Errorf("Logging = %+v, Output = %+v", conf.Logging, conf.Output)
	}

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		t.Errorf("ValidateConfiguration() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ValidateConfiguration() warnings: %v", warnings)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, "cargoDemand: 600000\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}
	if conf.SafetyThreshold != constants.DefaultSafetyThreshold {
		t.Errorf("SafetyThreshold = %v, want default %v", conf.SafetyThreshold, constants.DefaultSafetyThreshold)
	}
	if conf.CarbonPrice != constants.DefaultCarbonPrice {
		t.Errorf("CarbonPrice = %v, want default %v", conf.CarbonPrice, constants.DefaultCarbonPrice)
	}
	if !conf.RequireAllFuelTypes {
		t.Error("RequireAllFuelTypes should default to true")
	}
	if conf.ParetoPoints != constants.DefaultParetoPoints {
		t.Errorf("ParetoPoints = %d, want default %d", conf.ParetoPoints, constants.DefaultParetoPoints)
	}
	if len(conf.Scenarios) == 0 {
		t.Error("Scenarios should default to the built-in set")
	}
	if len(conf.SafetyThresholds) == 0 || len(conf.CarbonPrices) == 0 {
		t.Error("sweep lists should default to the built-in values")
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfiguration() on a missing file should error")
	}
}

func TestValidateConfigurationErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative demand", "cargoDemand: -1\n"},
		{"safety threshold out of range", "safetyThreshold: 7\n"},
		{"negative carbon price", "carbonPrice: -10\n"},
		{"bad scenario", "scenarios:\n  broken:\n    carbonPrice: -5\n    minAvgSafety: 3.0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conf, err := LoadConfiguration(writeConfig(t, c.yaml))
			if err != nil {
				t.Fatalf("LoadConfiguration() error: %v", err)
			}
			if _, err := conf.ValidateConfiguration(); err == nil {
				t.Error("ValidateConfiguration() should error")
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, "paretoPoints: 1\nsafetyThresholds: []\ncarbonPrices: []\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}
	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		t.Fatalf("ValidateConfiguration() error: %v", err)
	}
	if len(warnings) != 3 {
		t.Errorf("ValidateConfiguration() warnings = %v, want 3", warnings)
	}
}

func TestSolverConfigOptions(t *testing.T) {
	opts := SolverConfig{TimeLimitSeconds: 10, MaxNodes: 5000}.Options()
	if opts.TimeLimit != 10*time.Second {
		t.Errorf("TimeLimit = %v, want 10s", opts.TimeLimit)
	}
	if opts.MaxNodes != 5000 {
		t.Errorf("MaxNodes = %d, want 5000", opts.MaxNodes)
	}
	if zero := (SolverConfig{}).Options(); zero.TimeLimit != 0 {
		t.Errorf("zero config TimeLimit = %v, want 0 (solver default applies)", zero.TimeLimit)
	}
}
