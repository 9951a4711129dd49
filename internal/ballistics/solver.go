package ballistics

import (
	"encoding/json"
	"math"
)

// Solution is the outcome of an angle solve: either a launch angle or nothing.
// A missing angle is an ordinary answer (target out of reach), not an error.
type Solution struct {
	angle float64
	ok    bool
}

// Found wraps a launch angle in radians.
func Found(angle float64) Solution {
	return Solution{angle: angle, ok: true}
}

// NoSolution is the empty outcome.
func NoSolution() Solution {
	return Solution{}
}

func (s Solution) Ok() bool { return s.ok }

// Angle returns the launch angle in radians and whether one exists.
func (s Solution) Angle() (float64, bool) {
	return s.angle, s.ok
}

// Degrees returns the launch angle in degrees and whether one exists.
func (s Solution) Degrees() (float64, bool) {
	if !s.ok {
		return 0, false
	}
	return RadToDeg(s.angle), true
}

func (s Solution) MarshalJSON() ([]byte, error) {
	if !s.ok {
		return json.Marshal(struct {
			Found bool `json:"found"`
		}{})
	}
	return json.Marshal(struct {
		Found    bool    `json:"found"`
		AngleRad float64 `json:"angle_rad"`
		AngleDeg float64 `json:"angle_deg"`
	}{true, s.angle, RadToDeg(s.angle)})
}

func (s *Solution) UnmarshalJSON(data []byte) error {
	var raw struct {
		Found    bool    `json:"found"`
		AngleRad float64 `json:"angle_rad"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Found {
		*s = NoSolution()
		return nil
	}
	*s = Found(raw.AngleRad)
	return nil
}

// SolveLowAngle finds the flatter of the two launch angles that put a projectile
// launched at v0 on the ground rangeM metres away, using
//
//	range = v0² · sin(2θ) / g
//
// The result lies in [0, π/4]. When g·range/v0² falls outside [0, 1] the target
// cannot be reached and NoSolution is returned. Non-positive or non-finite v0 and g
// also yield NoSolution rather than NaN.
func SolveLowAngle(v0, rangeM, g float64) Solution {
	s, ok := sinTwoTheta(v0, rangeM, g)
	if !ok {
		return NoSolution()
	}
	return Found(math.Asin(s) / 2)
}

// SolveHighAngle returns the lofted root of the range equation, π/2 minus the low
// angle. Both roots coincide at π/4.
func SolveHighAngle(v0, rangeM, g float64) Solution {
	s, ok := sinTwoTheta(v0, rangeM, g)
	if !ok {
		return NoSolution()
	}
	return Found(math.Pi/2 - math.Asin(s)/2)
}

// RangeFor is the forward range equation: ground distance covered by a shot at
// the given angle.
func RangeFor(v0, angle, g float64) float64 {
	return v0 * v0 * math.Sin(2*angle) / g
}

// MaxRange is the longest reachable range for v0, achieved at 45°.
func MaxRange(v0, g float64) float64 {
	return v0 * v0 / g
}

func sinTwoTheta(v0, rangeM, g float64) (float64, bool) {
	if !finite(v0) || !finite(rangeM) || !finite(g) || v0 <= 0 || g <= 0 {
		return 0, false
	}
	s := (g * rangeM) / (v0 * v0)
	if s > 1.0 || s < 0.0 {
		return 0, false
	}
	return s, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToMils converts radians to NATO mils (6400 per turn).
func RadToMils(rad float64) float64 {
	return rad * 3200 / math.Pi
}
