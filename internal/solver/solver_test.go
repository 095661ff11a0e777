package solver

import (
	"math"
	"testing"
)

func TestSolvePicksCheapestCover(t *testing.T) {
	p := NewProblem()
	x1 := p.AddBinary("x1", 1)
	x2 := p.AddBinary("x2", 2)
	x3 := p.AddBinary("x3", 3)
	p.AddConstraint("at_least_two", []Term{
		{Var: x1, Coeff: 1},
		{Var: x2, Coeff: 1},
		{Var: x3, Coeff: 1},
	}, GreaterEq, 2)

	sol, err := p.Solve(Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v, want optimal", sol.Status)
	}
	if math.Abs(sol.Objective-3) > 1e-6 {
		t.Errorf("Solve() objective = %v, want 3", sol.Objective)
	}
	if sol.Values[x1] != 1 || sol.Values[x2] != 1 || sol.Values[x3] != 0 {
		t.Errorf("Solve() values = %v, want [1 1 0]", sol.Values)
	}
	if sel := sol.Selected(); len(sel) != 2 || sel[0] != x1 || sel[1] != x2 {
		t.Errorf("Selected() = %v, want [%d %d]", sel, x1, x2)
	}
}

func TestSolveBranchesOnFractionalRelaxation(t *testing.T) {
	// LP relaxation is fractional (x1=0.5, x2=1 or similar); the integer
	// optimum needs both variables.
	p := NewProblem()
	x1 := p.AddBinary("x1", 2)
	x2 := p.AddBinary("x2", 3)
	p.AddConstraint("demand", []Term{
		{Var: x1, Coeff: 2},
		{Var: x2, Coeff: 3},
	}, GreaterEq, 4)

	sol, err := p.Solve(Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v, want optimal", sol.Status)
	}
	if math.Abs(sol.Objective-5) > 1e-6 {
		t.Errorf("Solve() objective = %v, want 5", sol.Objective)
	}
}

func TestSolveInfeasible(t *testing.T) {
	p := NewProblem()
	x1 := p.AddBinary("x1", 1)
	p.AddConstraint("on", []Term{{Var: x1, Coeff: 1}}, GreaterEq, 1)
	p.AddConstraint("off", []Term{{Var: x1, Coeff: 1}}, LessEq, 0)

	sol, err := p.Solve(Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusInfeasible {
		t.Errorf("Solve() status = %v, want infeasible", sol.Status)
	}
	if sol.Values != nil {
		t.Errorf("Solve() values = %v, want nil on infeasibility", sol.Values)
	}
}

func TestSolveNegativeBoundNormalization(t *testing.T) {
	// -x1 <= -1 forces x1 = 1; exercises the b >= 0 row normalization.
	p := NewProblem()
	x1 := p.AddBinary("x1", 4)
	p.AddConstraint("forced", []Term{{Var: x1, Coeff: -1}}, LessEq, -1)

	sol, err := p.Solve(Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v, want optimal", sol.Status)
	}
	if sol.Values[x1] != 1 {
		t.Errorf("Solve() x1 = %v, want 1", sol.Values[x1])
	}
	if math.Abs(sol.Objective-4) > 1e-6 {
		t.Errorf("Solve() objective = %v, want 4", sol.Objective)
	}
}

func TestSolveContinuousWorstCase(t *testing.T) {
	// Min-max shape: minimize Z with per-scenario rows tying Z to the
	// selected binaries.
	p := NewProblem()
	a := p.AddBinary("a", 0)
	b := p.AddBinary("b", 0)
	z := p.AddContinuous("z", 1)
	p.AddConstraint("pick_one", []Term{{Var: a, Coeff: 1}, {Var: b, Coeff: 1}}, GreaterEq, 1)
	p.AddConstraint("scenario_1", []Term{{Var: a, Coeff: 5}, {Var: b, Coeff: 8}, {Var: z, Coeff: -1}}, LessEq, 0)
	p.AddConstraint("scenario_2", []Term{{Var: a, Coeff: 7}, {Var: b, Coeff: 6}, {Var: z, Coeff: -1}}, LessEq, 0)

	sol, err := p.Solve(Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v, want optimal", sol.Status)
	}
	if math.Abs(sol.Objective-7) > 1e-6 {
		t.Errorf("Solve() objective = %v, want 7 (worst case of picking a)", sol.Objective)
	}
	if sol.Values[a] != 1 || sol.Values[b] != 0 {
		t.Errorf("Solve() selection = [%v %v], want a only", sol.Values[a], sol.Values[b])
	}
	if math.Abs(sol.Values[z]-7) > 1e-6 {
		t.Errorf("Solve() z = %v, want 7", sol.Values[z])
	}
}

func TestSolveNodeLimitReturnsUnknown(t *testing.T) {
	// Fractional relaxation forces branching, so one node cannot finish.
	p := NewProblem()
	x1 := p.AddBinary("x1", 2)
	x2 := p.AddBinary("x2", 3)
	p.AddConstraint("demand", []Term{
		{Var: x1, Coeff: 2},
		{Var: x2, Coeff: 3},
	}, GreaterEq, 4)

	sol, err := p.Solve(Options{MaxNodes: 1})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusUnknown {
		t.Errorf("Solve() status = %v, want unknown at node limit", sol.Status)
	}
}

func TestSolveNoVariables(t *testing.T) {
	if _, err := NewProblem().Solve(Options{}); err == nil {
		t.Error("Solve() on an empty problem should error")
	}
}

func TestSolveDeterministic(t *testing.T) {
	build := func() *Problem {
		p := NewProblem()
		vars := make([]int, 4)
		costs := []float64{5, 4, 6, 3}
		weights := []float64{3, 2, 4, 1}
		for i := range vars {
			vars[i] = p.AddBinary("x", costs[i])
		}
		terms := make([]Term, len(vars))
		for i, v := range vars {
			terms[i] = Term{Var: v, Coeff: weights[i]}
		}
		p.AddConstraint("demand", terms, GreaterEq, 5)
		return p
	}

	first, err := build().Solve(Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	second, err := build().Solve(Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if first.Objective != second.Objective {
		t.Errorf("objectives differ across identical solves: %v vs %v", first.Objective, second.Objective)
	}
	for i := range first.Values {
		if first.Values[i] != second.Values[i] {
			t.Errorf("values differ at %d: %v vs %v", i, first.Values[i], second.Values[i])
		}
	}
}

func TestStatusString(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusOptimal, "optimal"},
		{StatusInfeasible, "infeasible"},
		{StatusUnknown, "unknown"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(c.status), got, c.want)
		}
	}
}
