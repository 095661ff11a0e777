// Package output provides utilities for formatting and displaying selection
// and sensitivity results.
package output

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fleetselect/internal/fleet"
	"fleetselect/internal/selector"
	"fleetselect/internal/sensitivity"
)

// PrettyMetrics outputs a human-readable fleet summary.
func PrettyMetrics(title string, ids []string, m *fleet.Metrics) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- %s ---\n", title)
	if m == nil {
		fmt.Printf("INFEASIBLE: no fleet satisfies the constraints\n")
		return
	}
	_, _ = p.Printf("Selected vessels:      %s\n", strings.Join(ids, ", "))
	_, _ = p.Printf("Fleet size:            %d\n", m.FleetSize)
	_, _ = p.Printf("Total DWT (t):         %.0f\n", m.TotalDWT)
	_, _ = p.Printf("Total cost ($):        %.2f\n", m.TotalCost)
	_, _ = p.Printf("Average safety score:  %s\n", formatSafety(m.AvgSafety))
	_, _ = p.Printf("Unique fuel types:     %d\n", m.FuelTypeCount)
	_, _ = p.Printf("Total CO2e (t):        %.2f\n", m.TotalCO2e)
	_, _ = p.Printf("Total fuel (t):        %.2f\n", m.TotalFuel)
}

// PrettyRobust outputs a human-readable robust selection summary including
// the per-scenario cost breakdown.
func PrettyRobust(res selector.RobustResult) {
	p := message.NewPrinter(language.English)
	PrettyMetrics("Robust min-max selection", res.SelectedIDs, res.Metrics)
	if !res.Feasible() {
		return
	}
	_, _ = p.Printf("Worst-case cost ($):   %.2f\n", res.WorstCaseCost)
	fmt.Printf("Cost by scenario:\n")
	for _, name := range sortedKeys(res.CostsByScenario) {
		_, _ = p.Printf("  %-16s %.2f\n", name, res.CostsByScenario[name])
	}
}

// PrettySweep outputs one row per swept value, keeping infeasible rows.
func PrettySweep(title, valueLabel string, results []sensitivity.SweepResult) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- %s ---\n", title)
	fmt.Printf("%-14s | %-10s | %-10s | %-16s | %-10s | %-14s\n",
		valueLabel, "Feasible", "Fleet Size", "Total Cost ($)", "Avg Safety", "Total CO2e (t)")
	for _, r := range results {
		if !r.Feasible {
			fmt.Printf("%-14.2f | %-10s | %-10s | %-16s | %-10s | %-14s\n",
				r.Value, "INFEASIBLE", "-", "-", "-", "-")
			continue
		}
		_, _ = p.Printf("%-14.2f | %-10s | %-10d | %-16.2f | %-10s | %-14.2f\n",
			r.Value, "Yes", r.Metrics.FleetSize, r.Metrics.TotalCost,
			formatSafety(r.Metrics.AvgSafety), r.Metrics.TotalCO2e)
	}
}

// PrettyPareto outputs the epsilon-constraint frontier table.
func PrettyPareto(points []sensitivity.ParetoPoint) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Pareto frontier (CO2e cap sweep) ---\n")
	fmt.Printf("%-14s | %-10s | %-10s | %-16s | %-16s | %-20s\n",
		"CO2e Cap (t)", "Feasible", "Fleet Size", "Total Cost ($)", "Actual CO2e (t)", "Shadow Price ($/t)")
	for _, pt := range points {
		if !pt.Feasible {
			fmt.Printf("%-14.2f | %-10s | %-10s | %-16s | %-16s | %-20s\n",
				pt.CO2Cap, "INFEASIBLE", "-", "-", "-", "-")
			continue
		}
		shadow := "-"
		if pt.ShadowCarbonPrice != nil {
			shadow = p.Sprintf("%.2f", *pt.ShadowCarbonPrice)
		}
		_, _ = p.Printf("%-14.2f | %-10s | %-10d | %-16.2f | %-16.2f | %-20s\n",
			pt.CO2Cap, "Yes", pt.Metrics.FleetSize, pt.Metrics.TotalCost,
			pt.Metrics.TotalCO2e, shadow)
	}
}

// PrettyShadow outputs the perturbation shadow price table.
func PrettyShadow(report sensitivity.ShadowReport) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Shadow prices (constraint perturbation) ---\n")
	if !report.BaseFeasible {
		fmt.Printf("Base case is infeasible; no shadow prices available.\n")
		return
	}
	_, _ = p.Printf("Base cost ($): %.2f  (fleet size %d)\n", report.BaseCost, report.BaseFleetSize)
	printShadowRow(p, "DWT demand (+1%)", report.Demand, "$/tonne capacity")
	printShadowRow(p, "Safety threshold (+0.1)", report.Safety, "$/unit safety")
}

func printShadowRow(p *message.Printer, label string, entry *sensitivity.ShadowEntry, unit string) {
	if entry == nil {
		fmt.Printf("%-26s: undefined (perturbed problem infeasible)\n", label)
		return
	}
	_, _ = p.Printf("%-26s: %.2f %s (perturbed cost %.2f, fleet size %d)\n",
		label, entry.Price, unit, entry.PerturbedCost, entry.PerturbedFleetSize)
}

// CsvSweep outputs a sweep in comma-separated value format.
func CsvSweep(valueLabel string, results []sensitivity.SweepResult) {
	fmt.Printf("%q,%q,%q,%q,%q,%q,%q,%q\n",
		valueLabel, "feasible", "fleet_size", "total_cost_usd", "avg_safety_score",
		"total_co2e_tonnes", "total_dwt", "selected_ids")
	for _, r := range results {
		if !r.Feasible {
			fmt.Printf("%.4f,false,,,,,,\n", r.Value)
			continue
		}
		fmt.Printf("%.4f,true,%d,%.2f,%.4f,%.2f,%.0f,%q\n",
			r.Value, r.Metrics.FleetSize, r.Metrics.TotalCost, r.Metrics.AvgSafety,
			r.Metrics.TotalCO2e, r.Metrics.TotalDWT, strings.Join(r.SelectedIDs, " "))
	}
}

// CsvPareto outputs the frontier in comma-separated value format.
func CsvPareto(points []sensitivity.ParetoPoint) {
	fmt.Printf("%q,%q,%q,%q,%q,%q\n",
		"co2e_cap", "feasible", "fleet_size", "total_cost_usd", "total_co2e_tonnes", "shadow_carbon_price")
	for _, pt := range points {
		if !pt.Feasible {
			fmt.Printf("%.4f,false,,,,\n", pt.CO2Cap)
			continue
		}
		shadow := ""
		if pt.ShadowCarbonPrice != nil {
			shadow = fmt.Sprintf("%.4f", *pt.ShadowCarbonPrice)
		}
		fmt.Printf("%.4f,true,%d,%.2f,%.2f,%s\n",
			pt.CO2Cap, pt.Metrics.FleetSize, pt.Metrics.TotalCost, pt.Metrics.TotalCO2e, shadow)
	}
}

func formatSafety(avg float64) string {
	if math.IsNaN(avg) {
		return "-"
	}
	return fmt.Sprintf("%.2f", avg)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
