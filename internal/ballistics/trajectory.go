package ballistics

import "iter"

// Point is one sample of a trajectory: downrange distance, height and elapsed time.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Time float64 `json:"time"`
}

// TimeOfFlight returns how long a shot launched and landing at the same height
// stays in the air.
func TimeOfFlight(v0, angle, g float64) float64 {
	return 2 * Components(v0, angle).Y / g
}

// Apex returns the highest point of the arc.
func Apex(v0, angle, g float64) Point {
	vel := Components(v0, angle)
	t := vel.Y / g
	return Point{X: vel.X * t, Y: vel.Y*t - 0.5*g*t*t, Time: t}
}

// Impact returns the velocity on return to launch height: same horizontal
// component, vertical component reversed.
func Impact(v0, angle float64) Vec2 {
	v := Components(v0, angle)
	return Vec2{X: v.X, Y: -v.Y}
}

// CalculateTrajectory samples the flight from launch to impact at steps+1
// evenly spaced instants. The first point is the origin; the last is the landing
// point with its height clamped to zero.
//
// A zero launch angle gives a zero time of flight, so every sample sits at the
// origin. steps < 1 yields nil.
func CalculateTrajectory(v0, angle, g float64, steps int) []Point {
	if steps < 1 {
		return nil
	}
	points := make([]Point, 0, steps+1)
	for _, p := range Samples(v0, angle, g, steps) {
		points = append(points, p)
	}
	return points
}

// Samples is the lazy form of CalculateTrajectory. It yields the same points,
// indexed 0..steps, and stops early if the consumer does.
func Samples(v0, angle, g float64, steps int) iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		if steps < 1 {
			return
		}
		vel := Components(v0, angle)
		timeOfFlight := 2 * vel.Y / g
		dt := timeOfFlight / float64(steps)
		drop := NewVec2(0, -0.5*g)

		for i := 0; i <= steps; i++ {
			t := float64(i) * dt
			pos := vel.Times(t).Plus(drop.Times(t * t))
			// Floating-point overshoot at the last sample, not a physical re-entry.
			if pos.Y < 0 {
				pos.Y = 0
			}
			if !yield(i, Point{X: pos.X, Y: pos.Y, Time: t}) {
				return
			}
		}
	}
}
