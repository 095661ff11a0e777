package fleet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvColumns are the required headers in a vessel cost table. The table is
// produced upstream by the cost aggregation pipeline; this loader only
// checks presence and numeric form, then defers to ValidatePool.
var csvColumns = []string{
	"vessel_id",
	"dwt",
	"safety_score",
	"main_engine_fuel_type",
	"base_cost",
	"co2e_tonnes",
	"fuel_tonnes",
	"final_cost",
}

// LoadCSV reads a vessel cost table from path and validates it. Missing
// columns or malformed numbers fail immediately; nothing is defaulted.
func LoadCSV(path string, requiredFuelTypes []string) (Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vessel table: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	pool, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read vessel table %s: %w", path, err)
	}
	if err := ValidatePool(pool, requiredFuelTypes); err != nil {
		return nil, fmt.Errorf("validate vessel table %s: %w", path, err)
	}
	return pool, nil
}

// ReadCSV parses a vessel cost table without validating domain invariants.
func ReadCSV(r io.Reader) (Pool, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range csvColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var pool Pool
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		num := func(name string) (float64, error) {
			val, parseErr := strconv.ParseFloat(record[col[name]], 64)
			if parseErr != nil {
				return 0, fmt.Errorf("row %d: column %q: %w", line, name, parseErr)
			}
			return val, nil
		}

		v := Vessel{
			ID:       record[col["vessel_id"]],
			FuelType: record[col["main_engine_fuel_type"]],
		}
		if v.DWT, err = num("dwt"); err != nil {
			return nil, err
		}
		if v.SafetyScore, err = num("safety_score"); err != nil {
			return nil, err
		}
		if v.BaseCost, err = num("base_cost"); err != nil {
			return nil, err
		}
		if v.CO2eTonnes, err = num("co2e_tonnes"); err != nil {
			return nil, err
		}
		if v.FuelTonnes, err = num("fuel_tonnes"); err != nil {
			return nil, err
		}
		if v.FinalCost, err = num("final_cost"); err != nil {
			return nil, err
		}
		pool = append(pool, v)
	}

	return pool, nil
}
