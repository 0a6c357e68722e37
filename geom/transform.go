package geom

import "math"

// Transform represents a 2D affine transformation as a 2x3 matrix in
// row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// applied as x' = A*x + B*y + C, y' = D*x + E*y + F.
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translation creates a translation transform.
func Translation(v Point) Transform {
	return Transform{A: 1, C: v.X, E: 1, F: v.Y}
}

// Scaling creates a scaling transform about the origin.
func Scaling(sx, sy float64) Transform {
	return Transform{A: sx, E: sy}
}

// ScalingAbout creates a scaling transform about a pivot point.
// Used by the selector pen to resize a selection in place.
func ScalingAbout(sx, sy float64, pivot Point) Transform {
	return Translation(pivot).Mul(Scaling(sx, sy)).Mul(Translation(pivot.Mul(-1)))
}

// Rotation creates a rotation transform (angle in radians).
func Rotation(angle float64) Transform {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Transform{A: cos, B: -sin, D: sin, E: cos}
}

// Mul composes two transforms; the result applies other first, then t.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply transforms a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// ApplyRect transforms a rectangle and returns the bounding box of the
// transformed corners (the image of a rect under rotation is not a rect).
func (t Transform) ApplyRect(r Rect) Rect {
	a := t.Apply(r.Min)
	b := t.Apply(Point{X: r.Max.X, Y: r.Min.Y})
	c := t.Apply(r.Max)
	d := t.Apply(Point{X: r.Min.X, Y: r.Max.Y})
	return NewRect(a, c).Union(NewRect(b, d))
}

// ScaleFactor returns the average absolute scale applied by the transform,
// used to adjust stroke widths under uniform scaling.
func (t Transform) ScaleFactor() float64 {
	sx := math.Hypot(t.A, t.D)
	sy := math.Hypot(t.B, t.E)
	return (sx + sy) / 2
}

// IsIdentity reports whether the transform is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}
