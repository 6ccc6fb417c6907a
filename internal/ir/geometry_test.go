package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertPointInDelta(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
}

func TestRotation_Identity(t *testing.T) {
	v := Point{X: 3, Y: -4}
	assert.Equal(t, v, Identity.Apply(v))
	assert.Equal(t, Identity, Identity.Mul(Identity))
}

func TestRotation_QuarterTurn(t *testing.T) {
	r := RotationFromAngle(math.Pi / 2)
	assertPointInDelta(t, Point{X: 0, Y: 1}, r.Apply(Point{X: 1}))
	assertPointInDelta(t, Point{X: 1, Y: 0}, r.Apply(NegY))
}

func TestRotation_ComposesAngles(t *testing.T) {
	a := RotationFromAngle(Radians(25))
	b := RotationFromAngle(Radians(20))
	want := RotationFromAngle(Radians(45))

	got := a.Mul(b)
	assertPointInDelta(t, want.X, got.X)
	assertPointInDelta(t, want.Y, got.Y)
}

func TestRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, Radians(180), 1e-9)
	assert.InDelta(t, -math.Pi/4, Radians(-45), 1e-9)
}

func TestRect(t *testing.T) {
	r := RectFromSize(Point{X: 10, Y: 20}, 100, 50)
	assert.Equal(t, float32(100), r.Width())
	assert.Equal(t, float32(50), r.Height())
	assert.Equal(t, Point{X: 60, Y: 70}, r.BottomCenter())
}

func TestMesh_Bounds(t *testing.T) {
	assert.Equal(t, Rect{}, NewMesh().Bounds())

	m := NewMesh()
	m.AddVertex(Vertex{Position: Point{X: -1.5, Y: 0}})
	m.AddVertex(Vertex{Position: Point{X: 1.5, Y: 0}})
	m.AddVertex(Vertex{Position: Point{X: 0.5, Y: -10}})

	assert.Equal(t, Rect{Min: Point{X: -1.5, Y: -10}, Max: Point{X: 1.5, Y: 0}}, m.Bounds())
}

func TestMesh_AppendOnly(t *testing.T) {
	m := NewMesh()
	assert.Equal(t, uint32(0), m.AddVertex(Vertex{}))
	assert.Equal(t, uint32(1), m.AddVertex(Vertex{}))
	m.AddTriangle(0, 1, 1)
	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 1}, m.Indices)
}
