package fleet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const vesselCSV = `vessel_id,dwt,safety_score,main_engine_fuel_type,base_cost,co2e_tonnes,fuel_tonnes,final_cost
V01,180000,2,diesel,484000,5200,1600,900000
V02,200000,3,ammonia,1082000,2100,1900,1250000
V03,175000,5,lng,746000,3800,1500,1050000
`

func TestReadCSV(t *testing.T) {
	pool, err := ReadCSV(strings.NewReader(vesselCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(pool) != 3 {
		t.Fatalf("ReadCSV() returned %d vessels, want 3", len(pool))
	}
	v := pool[1]
	if v.ID != "V02" || v.DWT != 200000 || v.SafetyScore != 3 || v.FuelType != "ammonia" {
		t.Errorf("vessel 1 = %+v", v)
	}
	if v.BaseCost != 1082000 || v.CO2eTonnes != 2100 || v.FuelTonnes != 1900 || v.FinalCost != 1250000 {
		t.Errorf("vessel 1 costs = %+v", v)
	}
}

func TestReadCSVColumnOrderIndependent(t *testing.T) {
	reordered := `final_cost,vessel_id,main_engine_fuel_type,dwt,safety_score,base_cost,co2e_tonnes,fuel_tonnes
900000,V01,diesel,180000,2,484000,5200,1600
`
	pool, err := ReadCSV(strings.NewReader(reordered))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if pool[0].ID != "V01" || pool[0].FinalCost != 900000 || pool[0].DWT != 180000 {
		t.Errorf("vessel 0 = %+v", pool[0])
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	noSafety := `vessel_id,dwt,main_engine_fuel_type,base_cost,co2e_tonnes,fuel_tonnes,final_cost
V01,180000,diesel,484000,5200,1600,900000
`
	_, err := ReadCSV(strings.NewReader(noSafety))
	if err == nil || !strings.Contains(err.Error(), "safety_score") {
		t.Errorf("ReadCSV() error = %v, want missing safety_score column", err)
	}
}

func TestReadCSVMalformedNumber(t *testing.T) {
	bad := `vessel_id,dwt,safety_score,main_engine_fuel_type,base_cost,co2e_tonnes,fuel_tonnes,final_cost
V01,not_a_number,2,diesel,484000,5200,1600,900000
`
	_, err := ReadCSV(strings.NewReader(bad))
	if err == nil || !strings.Contains(err.Error(), `"dwt"`) {
		t.Errorf("ReadCSV() error = %v, want dwt parse failure", err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vessels.csv")
	if err := os.WriteFile(path, []byte(vesselCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	pool, err := LoadCSV(path, []string{"diesel", "ammonia", "lng"})
	if err != nil {
		t.Fatalf("LoadCSV() error: %v", err)
	}
	if len(pool) != 3 {
		t.Errorf("LoadCSV() returned %d vessels, want 3", len(pool))
	}
}

func TestLoadCSVValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vessels.csv")
	if err := os.WriteFile(path, []byte(vesselCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadCSV(path, []string{"hydrogen"})
	if err == nil || !strings.Contains(err.Error(), "hydrogen") {
		t.Errorf("LoadCSV() error = %v, want missing fuel type hydrogen", err)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"), nil); err == nil {
		t.Error("LoadCSV() on a missing file should error")
	}
}
