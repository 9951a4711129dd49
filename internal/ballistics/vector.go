package ballistics

import "math"

// Vec2 is a 2D vector in the firing plane: X downrange, Y up.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Elevation returns the angle of v above the X axis in radians.
func (v Vec2) Elevation() float64 {
	return math.Atan2(v.Y, v.X)
}

// Components decomposes a launch speed into horizontal and vertical velocity.
func Components(v0, angle float64) Vec2 {
	return Vec2{X: v0 * math.Cos(angle), Y: v0 * math.Sin(angle)}
}
