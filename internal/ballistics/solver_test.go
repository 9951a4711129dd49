package ballistics

import (
	"encoding/json"
	"math"
	"testing"
)

const testGravity = 9.76398

func TestSolveLowAngleRoundTrip(t *testing.T) {
	cases := []struct {
		v0, rangeM float64
	}{
		{100, 1},
		{100, 500},
		{300, 4000},
		{850, 12000},
		{900, 500},
	}

	for _, tc := range cases {
		sol := SolveLowAngle(tc.v0, tc.rangeM, testGravity)
		angle, ok := sol.Angle()
		if !ok {
			t.Fatalf("v0=%.1f range=%.1f: expected a solution", tc.v0, tc.rangeM)
		}
		got := RangeFor(tc.v0, angle, testGravity)
		if math.Abs(got-tc.rangeM) > 1e-6*math.Max(1, tc.rangeM) {
			t.Errorf("v0=%.1f range=%.1f: round trip gave %.9f", tc.v0, tc.rangeM, got)
		}
		if angle < 0 || angle > math.Pi/4+1e-12 {
			t.Errorf("v0=%.1f range=%.1f: low angle %.6f outside [0, pi/4]", tc.v0, tc.rangeM, angle)
		}
	}
}

func TestSolveLowAngleOutOfReach(t *testing.T) {
	v0 := 100.0
	maxRange := MaxRange(v0, testGravity)

	for _, rangeM := range []float64{maxRange * 1.0001, maxRange * 10, -1, -0.0001} {
		if sol := SolveLowAngle(v0, rangeM, testGravity); sol.Ok() {
			a, _ := sol.Angle()
			t.Errorf("range=%.4f: expected no solution, got angle %.6f", rangeM, a)
		}
	}
}

func TestSolveLowAngleEdges(t *testing.T) {
	flat := SolveLowAngle(100, 0, 9.8)
	angle, ok := flat.Angle()
	if !ok || math.Abs(angle) > 1e-12 {
		t.Errorf("range 0: expected angle 0, got %.6f (ok=%v)", angle, ok)
	}

	// s == 1 exactly: v0² == g·range
	top := SolveLowAngle(10, 10, 10)
	angle, ok = top.Angle()
	if !ok || math.Abs(angle-math.Pi/4) > 1e-12 {
		t.Errorf("max range: expected pi/4, got %.6f (ok=%v)", angle, ok)
	}
}

func TestSolveLowAngleGuardsInvalidInputs(t *testing.T) {
	inputs := [][3]float64{
		{0, 100, 9.8},
		{-50, 100, 9.8},
		{100, 100, 0},
		{100, 100, -9.8},
		{math.NaN(), 100, 9.8},
		{100, math.NaN(), 9.8},
		{math.Inf(1), 100, 9.8},
	}
	for _, in := range inputs {
		if SolveLowAngle(in[0], in[1], in[2]).Ok() {
			t.Errorf("v0=%v range=%v g=%v: expected no solution", in[0], in[1], in[2])
		}
	}
}

func TestSolveHighAngleIsComplement(t *testing.T) {
	low, _ := SolveLowAngle(300, 4000, testGravity).Angle()
	high, ok := SolveHighAngle(300, 4000, testGravity).Angle()
	if !ok {
		t.Fatal("expected a high-angle solution")
	}
	if math.Abs(low+high-math.Pi/2) > 1e-12 {
		t.Errorf("low + high = %.9f, want pi/2", low+high)
	}
	if got := RangeFor(300, high, testGravity); math.Abs(got-4000) > 1e-6 {
		t.Errorf("high angle lands at %.6f, want 4000", got)
	}
	if SolveHighAngle(300, 1e6, testGravity).Ok() {
		t.Error("expected no high-angle solution beyond max range")
	}
}

func TestSolutionDegreesAndJSON(t *testing.T) {
	sol := Found(math.Pi / 4)
	deg, ok := sol.Degrees()
	if !ok || math.Abs(deg-45) > 1e-12 {
		t.Errorf("Degrees() = %.6f, %v", deg, ok)
	}

	data, err := json.Marshal(sol)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["found"] != true || math.Abs(decoded["angle_deg"].(float64)-45) > 1e-9 {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back Solution
	if err := json.Unmarshal(data, &back); err != nil || back != sol {
		t.Errorf("decoded %+v (err=%v), want %+v", back, err, sol)
	}

	data, _ = json.Marshal(NoSolution())
	if string(data) != `{"found":false}` {
		t.Errorf("no solution JSON = %s", data)
	}
	if _, ok := NoSolution().Degrees(); ok {
		t.Error("NoSolution().Degrees() reported ok")
	}
}

func TestAngleConversions(t *testing.T) {
	if got := RadToMils(math.Pi); math.Abs(got-3200) > 1e-9 {
		t.Errorf("RadToMils(pi) = %.6f", got)
	}
	if got := DegToRad(RadToDeg(0.123)); math.Abs(got-0.123) > 1e-15 {
		t.Errorf("deg/rad round trip = %.17f", got)
	}
}
