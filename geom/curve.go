package geom

import (
	"math"
	"sort"
)

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t in [0, 1].
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Subsegment returns the portion of the line from t0 to t1.
func (l Line) Subsegment(t0, t1 float64) Line {
	return Line{P0: l.Eval(t0), P1: l.Eval(t1)}
}

// BoundingBox returns the axis-aligned bounding box of the line.
func (l Line) BoundingBox() Rect {
	return NewRect(l.P0, l.P1)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// -------------------------------------------------------------------
// QuadBez - quadratic Bezier curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve.
// P0 is the start point, P1 the control point, P2 the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Raise elevates the quadratic to an exact cubic representation.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// Subsegment returns the portion of the curve from t0 to t1.
func (q QuadBez) Subsegment(t0, t1 float64) QuadBez {
	c := q.Raise().Subsegment(t0, t1)
	// Recover the single control point from the cubic midpoint property.
	ctrl := c.P1.Lerp(c.P2, 0.5).Mul(1.5).Sub(c.P0.Lerp(c.P3, 0.5).Mul(0.5))
	return QuadBez{P0: c.P0, P1: ctrl, P2: c.P3}
}

// extrema returns parameter values in (0, 1) where the derivative vanishes.
func (q QuadBez) extrema() []float64 {
	var result []float64
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	if dd := d1.X - d0.X; dd != 0 {
		if t := -d0.X / dd; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd := d1.Y - d0.Y; dd != 0 {
		if t := -d0.Y / dd; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := NewRect(q.P0, q.P2)
	for _, t := range q.extrema() {
		bbox = bbox.Union(RectFromPoint(q.Eval(t)))
	}
	return bbox
}

// Length returns an approximation of the arc length by chordal sampling.
func (q QuadBez) Length() float64 {
	return sampledLength(q.Eval)
}

// -------------------------------------------------------------------
// CubicBez - cubic Bezier curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve.
// P0 is the start point, P1 and P2 the control points, P3 the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	mt2, t2 := mt*mt, t*t
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// deriv evaluates the curve derivative at parameter t.
func (c CubicBez) deriv(t float64) Point {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	mt := 1 - t
	return Point{
		X: 3 * (d0.X*mt*mt + 2*d1.X*mt*t + d2.X*t*t),
		Y: 3 * (d0.Y*mt*mt + 2*d1.Y*mt*t + d2.Y*t*t),
	}
}

// Subsegment returns the portion of the curve from t0 to t1.
// Control points are reconstructed from the endpoint derivatives.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) / 3
	return CubicBez{
		P0: p0,
		P1: p0.Add(c.deriv(t0).Mul(scale)),
		P2: p3.Sub(c.deriv(t1).Mul(scale)),
		P3: p3,
	}
}

// extrema returns parameter values in (0, 1) where the derivative vanishes.
func (c CubicBez) extrema() []float64 {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result := make([]float64, 0, 4)
	result = append(result, SolveQuadraticInUnitInterval(
		d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, SolveQuadraticInUnitInterval(
		d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.extrema() {
		bbox = bbox.Union(RectFromPoint(c.Eval(t)))
	}
	return bbox
}

// Length returns an approximation of the arc length by chordal sampling.
func (c CubicBez) Length() float64 {
	return sampledLength(c.Eval)
}

// IsDegenerate reports whether all four control points are (nearly)
// coincident, in which case the curve carries no usable direction
// information and callers should fall back to a line or dot.
func (c CubicBez) IsDegenerate() bool {
	const eps = 1e-12
	return c.P0.Sub(c.P1).LengthSq() < eps &&
		c.P0.Sub(c.P2).LengthSq() < eps &&
		c.P0.Sub(c.P3).LengthSq() < eps
}

// CatmullRomToCubic fits a cubic Bezier through p1 and p2, using p0 and p3
// as tangent guides, via the standard uniform Catmull-Rom conversion.
func CatmullRomToCubic(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{
		P0: p1,
		P1: p1.Add(p2.Sub(p0).Mul(1.0 / 6.0)),
		P2: p2.Sub(p3.Sub(p1).Mul(1.0 / 6.0)),
		P3: p2,
	}
}

// sampledLength approximates arc length by summing chord lengths over a
// fixed parameter subdivision. Sufficient for hitbox sizing.
func sampledLength(eval func(float64) Point) float64 {
	const steps = 16
	var length float64
	prev := eval(0)
	for i := 1; i <= steps; i++ {
		p := eval(float64(i) / steps)
		length += prev.Distance(p)
		prev = p
	}
	return length
}

// -------------------------------------------------------------------
// Quadratic solver
// -------------------------------------------------------------------

// SolveQuadratic returns the real roots of a*t^2 + b*t + c = 0.
// A linear equation (a == 0) yields at most one root.
func SolveQuadratic(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
}

// SolveQuadraticInUnitInterval returns the roots of a*t^2 + b*t + c = 0
// that lie strictly inside (0, 1). Used for curve extrema.
func SolveQuadraticInUnitInterval(a, b, c float64) []float64 {
	var result []float64
	for _, t := range SolveQuadratic(a, b, c) {
		if t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	return result
}
