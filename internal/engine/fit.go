package engine

import "github.com/roach88/lily/internal/ir"

// Transform is a uniform scale followed by a translation.
type Transform struct {
	Scale  float32  `json:"scale"`
	Offset ir.Point `json:"offset"`
}

// Apply maps p through the transform.
func (t Transform) Apply(p ir.Point) ir.Point {
	return p.Mul(t.Scale).Add(t.Offset)
}

// FitTransform computes the transform that fits bounds into target without
// distortion. The scale is the smaller of the two axis ratios; an axis with
// zero extent does not constrain it, and if neither axis has extent the
// scale is 1. The bottom-center of bounds lands on the bottom-center of
// target (y grows downward, so the bottom edge is Max.Y).
func FitTransform(bounds, target ir.Rect) Transform {
	scale := float32(0)
	if w := bounds.Width(); w > 0 {
		scale = target.Width() / w
	}
	if h := bounds.Height(); h > 0 {
		if s := target.Height() / h; scale == 0 || s < scale {
			scale = s
		}
	}
	if scale == 0 {
		scale = 1
	}

	return Transform{
		Scale:  scale,
		Offset: target.BottomCenter().Sub(bounds.BottomCenter().Mul(scale)),
	}
}

// Fit rescales and repositions mesh in place so it fits target, and
// returns the transform it applied.
func Fit(mesh *ir.Mesh, target ir.Rect) Transform {
	t := FitTransform(mesh.Bounds(), target)
	for i := range mesh.Vertices {
		mesh.Vertices[i].Position = t.Apply(mesh.Vertices[i].Position)
	}
	return t
}
