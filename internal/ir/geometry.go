package ir

import "math"

// Point is a 2D position or displacement. The y axis grows downward,
// matching display coordinates.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Reference axes used by the turtle.
var (
	Origin = Point{}
	NegX   = Point{X: -1}
	NegY   = Point{Y: -1}
)

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales both components by s.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Min returns the component-wise minimum of p and q.
func (p Point) Min(q Point) Point {
	return Point{X: min(p.X, q.X), Y: min(p.Y, q.Y)}
}

// Max returns the component-wise maximum of p and q.
func (p Point) Max(q Point) Point {
	return Point{X: max(p.X, q.X), Y: max(p.Y, q.Y)}
}

// Rotation is a 2x2 matrix stored as its column vectors. Applying it to v
// yields X*v.X + Y*v.Y.
type Rotation struct {
	X Point `json:"x"`
	Y Point `json:"y"`
}

// Identity is the rotation that leaves every vector unchanged.
var Identity = Rotation{X: Point{X: 1}, Y: Point{Y: 1}}

// RotationFromAngle builds the rotation by angle radians about the plane normal.
func RotationFromAngle(radians float64) Rotation {
	sin, cos := math.Sincos(radians)
	return Rotation{
		X: Point{X: float32(cos), Y: float32(sin)},
		Y: Point{X: float32(-sin), Y: float32(cos)},
	}
}

// Apply rotates v.
func (r Rotation) Apply(v Point) Point {
	return r.X.Mul(v.X).Add(r.Y.Mul(v.Y))
}

// Mul composes r with s; the result applies s first, then r.
func (r Rotation) Mul(s Rotation) Rotation {
	return Rotation{X: r.Apply(s.X), Y: r.Apply(s.Y)}
}

// Radians converts degrees to radians.
func Radians(degrees float32) float64 {
	return float64(degrees) * math.Pi / 180
}

// Rect is an axis-aligned rectangle. Max.Y is the bottom edge.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectFromSize returns the rectangle with its top-left corner at min.
func RectFromSize(min Point, width, height float32) Rect {
	return Rect{Min: min, Max: Point{X: min.X + width, Y: min.Y + height}}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// BottomCenter returns the midpoint of the bottom edge.
func (r Rect) BottomCenter() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: r.Max.Y}
}
